package oauth2

import "github.com/bornholm/courtside/internal/authn"

// User is the identity kept in the session cookie.
type User struct {
	Subject  string
	Provider string

	Nickname string
	Email    string
}

// Provider implements authn.User.
func (u *User) UserProvider() string {
	return u.Provider
}

// Subject implements authn.User.
func (u *User) UserSubject() string {
	return u.Subject
}

var _ authn.User = &User{}
