package auth

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/coppermill/crm-core/internal/infrastructure/database"
)

// Session is a persisted refresh session for one logged-in user.
type Session struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id"`
	TokenHash string    `json:"-"` // never serialised
	ExpiresAt time.Time `json:"expires_at"`
	Revoked   bool      `json:"revoked"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionRepository persists refresh sessions through the query executor.
type SessionRepository struct {
	exec *database.Executor
}

// NewSessionRepository creates a session repository over the executor.
func NewSessionRepository(exec *database.Executor) *SessionRepository {
	return &SessionRepository{exec: exec}
}

// HashToken computes the SHA-256 hash of a raw token string for storage.
// Raw tokens are never stored — only their hashes.
func HashToken(raw string) string {
	h := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(h[:])
}

// Create inserts a new session. The ID is generated if empty.
func (r *SessionRepository) Create(ctx context.Context, s *Session) error {
	if s.ID == "" {
		s.ID = "ses-" + uuid.NewString()
	}

	now := time.Now().UTC().Truncate(time.Second)
	s.CreatedAt = now

	_, _, err := r.exec.Exec(ctx,
		`INSERT INTO sessions (session_id, user_id, token_hash, expires_at, revoked, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		s.ID, s.UserID, s.TokenHash,
		s.ExpiresAt.UTC().Format(time.RFC3339),
		boolToInt(s.Revoked),
		now.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("creating session: %w", err)
	}
	return nil
}

// GetByTokenHash retrieves a session by its SHA-256 token hash.
// Returns ErrSessionNotFound if no session matches.
func (r *SessionRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*Session, error) {
	row, err := r.exec.QueryRow(ctx,
		`SELECT session_id, user_id, token_hash, expires_at, revoked, created_at
		 FROM sessions WHERE token_hash = ?`, tokenHash)
	if err != nil {
		return nil, err
	}

	var s Session
	var revoked int
	var expiresAt, createdAt string

	if err := row.Scan(&s.ID, &s.UserID, &s.TokenHash, &expiresAt, &revoked, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("scanning session: %w", err)
	}

	s.Revoked = revoked != 0
	s.ExpiresAt, _ = time.Parse(time.RFC3339, expiresAt) //nolint:errcheck // format is controlled
	s.CreatedAt, _ = time.Parse(time.RFC3339, createdAt) //nolint:errcheck // format is controlled

	return &s, nil
}

// Valid reports whether the session is usable: not revoked, not expired.
func (s *Session) Valid(now time.Time) bool {
	return !s.Revoked && now.Before(s.ExpiresAt)
}

// Revoke marks a single session as revoked.
// Returns ErrSessionNotFound if the id does not exist.
func (r *SessionRepository) Revoke(ctx context.Context, id string) error {
	_, affected, err := r.exec.Exec(ctx,
		"UPDATE sessions SET revoked = 1 WHERE session_id = ?", id)
	if err != nil {
		return fmt.Errorf("revoking session: %w", err)
	}
	if affected == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// RevokeAllForUser marks every session for a user as revoked.
// Used on password change or administrative force-logout.
func (r *SessionRepository) RevokeAllForUser(ctx context.Context, userID int64) error {
	_, _, err := r.exec.Exec(ctx,
		"UPDATE sessions SET revoked = 1 WHERE user_id = ?", userID)
	if err != nil {
		return fmt.Errorf("revoking sessions for user: %w", err)
	}
	return nil
}

// DeleteExpired removes sessions past their expiry, freeing storage.
// Returns the number of deleted rows.
func (r *SessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	now := time.Now().UTC().Format(time.RFC3339)

	_, affected, err := r.exec.Exec(ctx,
		"DELETE FROM sessions WHERE expires_at <= ?", now)
	if err != nil {
		return 0, fmt.Errorf("deleting expired sessions: %w", err)
	}
	return affected, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
