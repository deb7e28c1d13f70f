package user

// Principal is the authenticated identity resolved from a bearer token.
type Principal struct {
	UserID   string
	Username string
}
