package auth

import (
	"time"

	"go.uber.org/zap"

	"github.com/devfolio/backend/domain"
	"github.com/devfolio/backend/internal/session"
)

// UseCase issues and verifies stateless session tokens. There is no
// server-side session record: a token is valid iff its signature checks
// out against the shared secret and its expiry has not passed.
type UseCase struct {
	creds  *session.Credentials
	codec  *session.Codec
	maxAge time.Duration
	logger *zap.Logger
	now    func() time.Time
}

func New(creds *session.Credentials, codec *session.Codec, maxAge time.Duration, logger *zap.Logger) *UseCase {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		creds:  creds,
		codec:  codec,
		maxAge: maxAge,
		logger: logger,
		now:    time.Now,
	}
}

// Login validates the submitted credentials and, on success, returns a
// freshly signed token expiring maxAge from now. Tokens are never
// renewed; after expiry a new login is required.
func (uc *UseCase) Login(username, password string) (string, error) {
	if !uc.creds.Validate(username, password) {
		uc.logger.Info("rejected login attempt", zap.String("username", username))
		return "", domain.ErrInvalidCredentials
	}
	claims := domain.SessionClaims{
		Username: username,
		Exp:      uc.now().Add(uc.maxAge).Unix(),
	}
	return uc.codec.Encode(claims), nil
}

// Identify returns the principal embedded in a valid token. Every
// failure mode (malformed, bad signature, expired) comes back as a
// domain error with code UNAUTHORIZED; callers expose no distinction.
func (uc *UseCase) Identify(token string) (string, error) {
	claims, err := uc.codec.Verify(token, uc.now())
	if err != nil {
		return "", err
	}
	return claims.Username, nil
}

// MaxAge is the configured session lifetime, used for the cookie bound.
func (uc *UseCase) MaxAge() time.Duration {
	return uc.maxAge
}
