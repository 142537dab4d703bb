package services

// Session is the identity attached to a request. The zero value is the
// anonymous session.
type Session struct {
	ID       string `json:"-"`
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
}

// Anonymous is the session of a caller that has not logged in.
var Anonymous = Session{}

// Authenticated reports whether the session is bound to an account.
func (s Session) Authenticated() bool {
	return s.UserID != 0
}
