// Package auth keeps an OAuth bearer credential valid across a session.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/paceline/paceline/internal/core"
)

// ErrTokenExpired reports an expired access token that cannot be refreshed
// locally. The caller decides whether to attempt the request anyway or to
// re-authorize.
var ErrTokenExpired = errors.New("access token is expired and no refresh token is available")

// RefreshError wraps a failed token refresh. The original request must not
// proceed when this is returned.
type RefreshError struct {
	Err error
}

func (e *RefreshError) Error() string {
	return fmt.Sprintf("token refresh failed: %v", e.Err)
}

func (e *RefreshError) Unwrap() error {
	return e.Err
}

// Refresher exchanges a refresh token for a new credential triple. The
// protocol client implements this against the token endpoint; the manager
// stays free of HTTP concerns.
type Refresher interface {
	RefreshToken(ctx context.Context, clientID, clientSecret, refreshToken string) (core.Credential, error)
}

// TokenManager owns the current credential and refreshes it when expired.
//
// The manager holds mutable credential state without internal locking;
// callers sharing one instance across goroutines must serialize calls, as
// concurrent refreshes would race.
type TokenManager struct {
	ClientID     string
	ClientSecret string
	Refresher    Refresher
	Clock        func() time.Time
	Log          *zap.Logger

	// OnUpdate, when set, is invoked with the new credential after every
	// successful refresh, e.g. to persist it.
	OnUpdate func(core.Credential)

	cred           core.Credential
	warnedNoExpiry bool
}

// NewManager returns a TokenManager seeded with the given credential.
func NewManager(cred core.Credential, clientID, clientSecret string, refresher Refresher) *TokenManager {
	return &TokenManager{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Refresher:    refresher,
		cred:         cred,
	}
}

// Credential returns the current credential triple.
func (m *TokenManager) Credential() core.Credential {
	return m.cred
}

// SetCredential replaces the credential, e.g. after an authorization-code
// exchange performed outside the manager.
func (m *TokenManager) SetCredential(cred core.Credential) {
	m.cred = cred
	m.warnedNoExpiry = false
	if m.OnUpdate != nil {
		m.OnUpdate(cred)
	}
}

// EnsureValid checks the credential before an outbound request and
// refreshes it synchronously when expired. A credential with unknown expiry
// is treated as valid, since the token may be managed externally; failing
// closed would break those callers. Requests against the token endpoint
// itself must not call EnsureValid, or a refresh would recurse.
func (m *TokenManager) EnsureValid(ctx context.Context) error {
	if m.cred.ExpiresAt == 0 {
		if !m.warnedNoExpiry {
			m.logger().Warn("token expiry is unknown; set token_expires to enable automatic refresh")
			m.warnedNoExpiry = true
		}
		return nil
	}

	if !m.cred.Expired(m.now()) {
		return nil
	}

	if m.cred.RefreshToken == "" {
		return ErrTokenExpired
	}

	m.logger().Info("access token expired, refreshing")
	return m.Refresh(ctx)
}

// Refresh exchanges the refresh token for a new credential triple,
// replacing all three fields together on success. On failure the current
// credential is left untouched and the error surfaces to the caller.
func (m *TokenManager) Refresh(ctx context.Context) error {
	if m.Refresher == nil {
		return ErrTokenExpired
	}
	if m.cred.RefreshToken == "" {
		return ErrTokenExpired
	}

	cred, err := m.Refresher.RefreshToken(ctx, m.ClientID, m.ClientSecret, m.cred.RefreshToken)
	if err != nil {
		return &RefreshError{Err: err}
	}

	m.cred = cred
	m.warnedNoExpiry = false
	if m.OnUpdate != nil {
		m.OnUpdate(cred)
	}
	return nil
}

func (m *TokenManager) now() time.Time {
	if m != nil && m.Clock != nil {
		return m.Clock()
	}
	return time.Now().UTC()
}

func (m *TokenManager) logger() *zap.Logger {
	if m != nil && m.Log != nil {
		return m.Log
	}
	return zap.NewNop()
}
