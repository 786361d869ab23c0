package models

// CartSession is a diner's cart as persisted between requests.
type CartSession struct {
	// ID is the session identifier carried in the session token (UUID format).
	ID string

	Restaurant string
	Table      string

	// Snapshot is the JSON encoding of the cart state.
	Snapshot []byte

	CreatedAt int64
	UpdatedAt int64
}
