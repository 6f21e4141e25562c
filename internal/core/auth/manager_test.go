package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/paceline/paceline/internal/core"
)

type stubRefresher struct {
	cred  core.Credential
	err   error
	calls int
}

func (s *stubRefresher) RefreshToken(ctx context.Context, clientID, clientSecret, refreshToken string) (core.Credential, error) {
	s.calls++
	if s.err != nil {
		return core.Credential{}, s.err
	}
	return s.cred, nil
}

func fixedClock(now time.Time) func() time.Time {
	return func() time.Time { return now }
}

func TestEnsureValidRefreshesExpiredToken(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	refresher := &stubRefresher{
		cred: core.Credential{
			AccessToken:  "new-access",
			RefreshToken: "new-refresh",
			ExpiresAt:    now.Add(6 * time.Hour).Unix(),
		},
	}

	manager := NewManager(core.Credential{
		AccessToken:  "old-access",
		RefreshToken: "old-refresh",
		ExpiresAt:    now.Add(-10 * time.Second).Unix(),
	}, "12345", "secret", refresher)
	manager.Clock = fixedClock(now)

	require.NoError(t, manager.EnsureValid(context.Background()))
	require.Equal(t, 1, refresher.calls)

	// All three fields replaced together.
	cred := manager.Credential()
	require.Equal(t, "new-access", cred.AccessToken)
	require.Equal(t, "new-refresh", cred.RefreshToken)
	require.Equal(t, now.Add(6*time.Hour).Unix(), cred.ExpiresAt)
}

func TestEnsureValidFreshTokenSkipsRefresh(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	refresher := &stubRefresher{}

	manager := NewManager(core.Credential{
		AccessToken:  "access",
		RefreshToken: "refresh",
		ExpiresAt:    now.Add(time.Hour).Unix(),
	}, "12345", "secret", refresher)
	manager.Clock = fixedClock(now)

	require.NoError(t, manager.EnsureValid(context.Background()))
	require.Equal(t, 0, refresher.calls)
}

func TestEnsureValidUnknownExpiryWarnsOnce(t *testing.T) {
	observed, logs := observer.New(zap.WarnLevel)
	refresher := &stubRefresher{}

	manager := NewManager(core.Credential{AccessToken: "access"}, "12345", "secret", refresher)
	manager.Log = zap.New(observed)

	require.NoError(t, manager.EnsureValid(context.Background()))
	require.NoError(t, manager.EnsureValid(context.Background()))
	require.Equal(t, 0, refresher.calls)
	require.Equal(t, 1, logs.Len())
	require.Contains(t, logs.All()[0].Message, "expiry is unknown")
}

func TestEnsureValidExpiredWithoutRefreshToken(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	manager := NewManager(core.Credential{
		AccessToken: "access",
		ExpiresAt:   now.Add(-time.Minute).Unix(),
	}, "12345", "secret", &stubRefresher{})
	manager.Clock = fixedClock(now)

	err := manager.EnsureValid(context.Background())
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestRefreshFailureLeavesCredentialUntouched(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	refresher := &stubRefresher{err: errors.New("boom")}

	original := core.Credential{
		AccessToken:  "old-access",
		RefreshToken: "old-refresh",
		ExpiresAt:    now.Add(-time.Minute).Unix(),
	}
	manager := NewManager(original, "12345", "secret", refresher)
	manager.Clock = fixedClock(now)

	err := manager.EnsureValid(context.Background())

	var refreshErr *RefreshError
	require.ErrorAs(t, err, &refreshErr)
	require.Equal(t, original, manager.Credential())
}

func TestRefreshInvokesUpdateHook(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	next := core.Credential{AccessToken: "a2", RefreshToken: "r2", ExpiresAt: now.Add(time.Hour).Unix()}
	refresher := &stubRefresher{cred: next}

	manager := NewManager(core.Credential{
		AccessToken:  "a1",
		RefreshToken: "r1",
		ExpiresAt:    now.Add(-time.Minute).Unix(),
	}, "12345", "secret", refresher)
	manager.Clock = fixedClock(now)

	var saved core.Credential
	manager.OnUpdate = func(cred core.Credential) { saved = cred }

	require.NoError(t, manager.EnsureValid(context.Background()))
	require.Equal(t, next, saved)
}

func TestRefreshWithoutRefresher(t *testing.T) {
	manager := NewManager(core.Credential{RefreshToken: "r"}, "12345", "secret", nil)
	require.ErrorIs(t, manager.Refresh(context.Background()), ErrTokenExpired)
}
