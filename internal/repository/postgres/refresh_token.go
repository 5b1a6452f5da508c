package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/akimsavar/authwall/internal/model"
)

var _ model.RefreshTokenStore = (*RefreshTokenRepository)(nil)

type RefreshTokenRepository struct {
	db *Connection
}

func NewRefreshTokenRepository(db *Connection) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

func (r *RefreshTokenRepository) Create(ctx context.Context, token model.RefreshToken) error {
	ctx, cancel := r.db.opContext(ctx)
	defer cancel()

	const query = `
        INSERT INTO refresh_tokens (
            id, jti, user_id, token_hash, issued_at, expires_at, created_at
        ) VALUES ($1,$2,$3,$4,$5,$6,NOW())
    `

	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}

	_, err := r.db.Exec(ctx, query,
		token.ID, token.JTI, token.UserID, token.TokenHash, token.IssuedAt, token.ExpiresAt,
	)
	if err != nil {
		return classify(fmt.Errorf("failed to create refresh token: %w", err))
	}
	return nil
}

func (r *RefreshTokenRepository) GetByJTI(ctx context.Context, jti string) (model.RefreshToken, error) {
	ctx, cancel := r.db.opContext(ctx)
	defer cancel()

	const query = `
        SELECT id, jti, user_id, token_hash, issued_at, expires_at, created_at
        FROM refresh_tokens WHERE jti = $1
    `
	var rt model.RefreshToken
	err := r.db.QueryRow(ctx, query, jti).Scan(
		&rt.ID, &rt.JTI, &rt.UserID, &rt.TokenHash, &rt.IssuedAt, &rt.ExpiresAt, &rt.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.RefreshToken{}, model.ErrNotFound
		}
		return model.RefreshToken{}, classify(fmt.Errorf("failed to get refresh token by jti: %w", err))
	}
	return rt, nil
}

func (r *RefreshTokenRepository) DeleteByJTI(ctx context.Context, jti string) error {
	ctx, cancel := r.db.opContext(ctx)
	defer cancel()

	const query = `DELETE FROM refresh_tokens WHERE jti = $1`
	if _, err := r.db.Exec(ctx, query, jti); err != nil {
		return classify(fmt.Errorf("failed to delete refresh token: %w", err))
	}
	return nil
}

func (r *RefreshTokenRepository) DeleteAllByUser(ctx context.Context, userID uuid.UUID) error {
	ctx, cancel := r.db.opContext(ctx)
	defer cancel()

	const query = `DELETE FROM refresh_tokens WHERE user_id = $1`
	if _, err := r.db.Exec(ctx, query, userID); err != nil {
		return classify(fmt.Errorf("failed to delete refresh tokens by user: %w", err))
	}
	return nil
}
