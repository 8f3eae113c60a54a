package domain

import "time"

// SessionClaims is the payload carried inside a signed session token.
// Exp is an absolute Unix timestamp in seconds.
type SessionClaims struct {
	Username string `json:"username"`
	Exp      int64  `json:"exp"`
}

// IsExpired reports whether the claims are no longer valid at the
// reference time. A token is invalid from the expiry instant onward.
func (c *SessionClaims) IsExpired(reference time.Time) bool {
	if c == nil {
		return true
	}
	if reference.IsZero() {
		reference = time.Now()
	}
	return reference.Unix() >= c.Exp
}
