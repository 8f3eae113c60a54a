package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"

	"github.com/devfolio/backend/domain"
)

// Token format: base64url(JSON claims) "." base64url(HMAC-SHA256(secret, data)),
// both segments unpadded. The signature covers the encoded data segment.

var (
	// ErrMalformedToken covers every structural failure: missing separator,
	// empty segment, bad base64, bad JSON.
	ErrMalformedToken = domain.WrapError(domain.ErrCodeUnauthorized, "malformed session token", nil)
	// ErrBadSignature means the token did not verify against the secret.
	ErrBadSignature = domain.WrapError(domain.ErrCodeUnauthorized, "session token signature mismatch", nil)
	// ErrTokenExpired means the token verified but its expiry has passed.
	ErrTokenExpired = domain.WrapError(domain.ErrCodeUnauthorized, "session token expired", nil)
)

// Codec signs and verifies self-contained session tokens. It is stateless:
// the only input besides the token itself is the shared secret, so no
// server-side session store is involved.
type Codec struct {
	secret []byte
}

func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret)}
}

// Strict decoding rejects nonzero trailing padding bits, so flipping any
// character of a segment changes the decode outcome rather than aliasing
// to the same bytes.
var b64 = base64.RawURLEncoding.Strict()

// Encode serializes the claims and appends an HMAC-SHA256 signature.
func (c *Codec) Encode(claims domain.SessionClaims) string {
	payload, _ := json.Marshal(claims)
	data := base64.RawURLEncoding.EncodeToString(payload)
	return data + "." + base64.RawURLEncoding.EncodeToString(c.sign(data))
}

// Decode splits and deserializes a token without checking its signature
// or expiry. Any structural defect yields ErrMalformedToken.
func (c *Codec) Decode(token string) (domain.SessionClaims, error) {
	var claims domain.SessionClaims

	data, _, err := splitToken(token)
	if err != nil {
		return claims, err
	}
	payload, err := b64.DecodeString(data)
	if err != nil {
		return claims, ErrMalformedToken
	}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return claims, ErrMalformedToken
	}
	return claims, nil
}

// Verify decodes a token and checks its signature and expiry against the
// reference time. The signature comparison is constant-time. Callers that
// only need a yes/no answer should collapse every returned error to
// "unauthenticated"; the distinct errors exist for logging and tests.
func (c *Codec) Verify(token string, reference time.Time) (domain.SessionClaims, error) {
	claims, err := c.Decode(token)
	if err != nil {
		return domain.SessionClaims{}, err
	}

	data, encodedSig, _ := splitToken(token)
	sig, err := b64.DecodeString(encodedSig)
	if err != nil {
		return domain.SessionClaims{}, ErrMalformedToken
	}
	if !hmac.Equal(sig, c.sign(data)) {
		return domain.SessionClaims{}, ErrBadSignature
	}
	if claims.IsExpired(reference) {
		return domain.SessionClaims{}, ErrTokenExpired
	}
	return claims, nil
}

func (c *Codec) sign(data string) []byte {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(data))
	return mac.Sum(nil)
}

func splitToken(token string) (data, sig string, err error) {
	data, sig, ok := strings.Cut(token, ".")
	if !ok || data == "" || sig == "" {
		return "", "", ErrMalformedToken
	}
	return data, sig, nil
}
