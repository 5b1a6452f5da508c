package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/akimsavar/authwall/internal/model"
)

var _ model.ResetCredentialStore = (*ResetRepository)(nil)

type ResetRepository struct {
	db *Connection
}

func NewResetRepository(db *Connection) *ResetRepository {
	return &ResetRepository{db: db}
}

func (r *ResetRepository) Create(ctx context.Context, credential model.ResetCredential) error {
	ctx, cancel := r.db.opContext(ctx)
	defer cancel()

	const query = `
        INSERT INTO reset_tokens (id, user_id, token, expires_at, created_at)
        VALUES ($1, $2, $3, $4, NOW())
    `

	if credential.ID == uuid.Nil {
		credential.ID = uuid.New()
	}

	_, err := r.db.Exec(ctx, query,
		credential.ID, credential.UserID, credential.Token, credential.ExpiresAt,
	)
	if err != nil {
		return classify(fmt.Errorf("failed to create reset credential: %w", err))
	}
	return nil
}

// Consume deletes the credential and replaces the owner's password
// verifier in one transaction. DELETE ... RETURNING decides the winner
// between racing consumers: only one sees the row, the rest get
// ErrInvalidOrExpiredResetToken. An expired credential is removed but
// does not authorize the password change.
func (r *ResetRepository) Consume(ctx context.Context, token string, newPasswordHash string, now time.Time) error {
	ctx, cancel := r.db.opContext(ctx)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return classify(fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer tx.Rollback(ctx)

	const deleteQuery = `DELETE FROM reset_tokens WHERE token = $1 RETURNING user_id, expires_at`

	var userID uuid.UUID
	var expiresAt time.Time
	err = tx.QueryRow(ctx, deleteQuery, token).Scan(&userID, &expiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrInvalidOrExpiredResetToken
		}
		return classify(fmt.Errorf("failed to consume reset credential: %w", err))
	}

	if now.After(expiresAt) {
		// commit so the dead credential is gone, but reject the change
		if err := tx.Commit(ctx); err != nil {
			return classify(fmt.Errorf("failed to commit expired-credential cleanup: %w", err))
		}
		return model.ErrInvalidOrExpiredResetToken
	}

	const updateQuery = `UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1`
	tag, err := tx.Exec(ctx, updateQuery, userID, newPasswordHash)
	if err != nil {
		return classify(fmt.Errorf("failed to update password hash: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return model.ErrInvalidOrExpiredResetToken
	}

	if err := tx.Commit(ctx); err != nil {
		return classify(fmt.Errorf("failed to commit reset consumption: %w", err))
	}
	return nil
}
