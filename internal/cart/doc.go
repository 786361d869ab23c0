// Package cart implements the diner cart: option normalization, deterministic
// line identity, and a pure reducer that turns (State, Action) into the next State.
//
// The reducer never fails. Malformed option records are dropped and unknown line or
// product ids are treated as no-ops. Engine wraps the reducer as a single-writer
// state holder so concurrent callers are serialized and readers always observe a
// complete snapshot.
//
// All money is shopspring/decimal, rounded with money.Round2 where it is stored on
// a line. Total is derived as max(0, subtotal - discounts + serviceCharge).
package cart
