package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/paceline/paceline/internal/core"
)

// GetCredential returns the cached token triple for an application client.
// A nil credential with nil error means no token has been stored yet.
func (s *Store) GetCredential(ctx context.Context, clientID string) (*core.Credential, error) {
	if s == nil || s.DB == nil {
		return nil, errors.New("store is not initialized")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return nil, errors.New("client id is required")
	}

	var cred core.Credential
	row := s.DB.QueryRowContext(ctx, `
		SELECT access_token, refresh_token, expires_at
		FROM tokens
		WHERE client_id = ?
	`, clientID)

	if err := row.Scan(&cred.AccessToken, &cred.RefreshToken, &cred.ExpiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch credential: %w", err)
	}

	return &cred, nil
}

// SaveCredential upserts the token triple for an application client.
func (s *Store) SaveCredential(ctx context.Context, clientID string, cred core.Credential) error {
	if s == nil || s.DB == nil {
		return errors.New("store is not initialized")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return errors.New("client id is required")
	}
	if strings.TrimSpace(cred.AccessToken) == "" {
		return errors.New("access token is required")
	}

	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO tokens (client_id, access_token, refresh_token, expires_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(client_id) DO UPDATE SET
			access_token = excluded.access_token,
			refresh_token = excluded.refresh_token,
			expires_at = excluded.expires_at,
			updated_at = excluded.updated_at
	`, clientID, cred.AccessToken, cred.RefreshToken, cred.ExpiresAt, time.Now().UTC().Unix())
	if err != nil {
		return fmt.Errorf("store credential: %w", err)
	}

	return nil
}

// DeleteCredential removes the cached token triple for an application client.
func (s *Store) DeleteCredential(ctx context.Context, clientID string) error {
	if s == nil || s.DB == nil {
		return errors.New("store is not initialized")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	if _, err := s.DB.ExecContext(ctx, `DELETE FROM tokens WHERE client_id = ?`, strings.TrimSpace(clientID)); err != nil {
		return fmt.Errorf("delete credential: %w", err)
	}

	return nil
}
