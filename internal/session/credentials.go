package session

import "crypto/subtle"

// Credentials validates a submitted login against the single configured
// operator account. Comparison is exact: case-sensitive, no trimming,
// no hashing. This models a one-person admin login, not a user store.
type Credentials struct {
	username []byte
	password []byte
}

func NewCredentials(username, password string) *Credentials {
	return &Credentials{
		username: []byte(username),
		password: []byte(password),
	}
}

// Validate reports whether both values match the configured pair.
func (c *Credentials) Validate(username, password string) bool {
	u := subtle.ConstantTimeCompare(c.username, []byte(username))
	p := subtle.ConstantTimeCompare(c.password, []byte(password))
	return u&p == 1
}
