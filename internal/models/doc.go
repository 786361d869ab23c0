// Package models defines the persisted domain records of tabledine.
//
// # Models
//
//   - MenuItem, OptionGroup, OptionItem: a restaurant's menu as served to diners
//   - Order, OrderLine: a cart that has been checked out at a table
//   - CartSession: the stored snapshot of a diner's cart
//
// Every record is scoped to a restaurant slug (the tenant). Money fields use
// shopspring/decimal and are stored as text in SQLite so no precision is lost.
//
// The live cart itself (lines, totals, reducer) lives in package cart; models only
// carries what the storage layer needs to persist it.
package models
