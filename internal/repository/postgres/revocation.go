package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/akimsavar/authwall/internal/model"
)

var _ model.RevocationStore = (*RevocationRepository)(nil)

// RevocationRepository keeps the revocation ledger in postgres. Rows are
// append-only; ON CONFLICT DO NOTHING makes Revoke idempotent.
type RevocationRepository struct {
	db *Connection
}

func NewRevocationRepository(db *Connection) *RevocationRepository {
	return &RevocationRepository{db: db}
}

func (r *RevocationRepository) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	ctx, cancel := r.db.opContext(ctx)
	defer cancel()

	const query = `
        INSERT INTO revoked_tokens (jti, revoked_at, expires_at)
        VALUES ($1, NOW(), $2)
        ON CONFLICT (jti) DO NOTHING
    `
	if _, err := r.db.Exec(ctx, query, jti, expiresAt); err != nil {
		return classify(fmt.Errorf("failed to revoke token: %w", err))
	}
	return nil
}

func (r *RevocationRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	ctx, cancel := r.db.opContext(ctx)
	defer cancel()

	const query = `SELECT 1 FROM revoked_tokens WHERE jti = $1`

	var one int
	err := r.db.QueryRow(ctx, query, jti).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, classify(fmt.Errorf("failed to check revocation: %w", err))
	}
	return true, nil
}
