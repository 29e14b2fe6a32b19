package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/bizops-service/internal/domain"
)

// ResetToken is a stored password-reset token. Only the SHA-256 of the raw
// secret is persisted; the raw value leaves the process exactly once, inside
// the reset email.
type ResetToken struct {
	ID          string
	AccountType domain.AccountType
	AccountID   string
	TokenHash   string
	ExpiresAt   time.Time
	UsedAt      *time.Time
	CreatedAt   time.Time
}

// ResetTokenRepository manages password reset token persistence.
type ResetTokenRepository interface {
	Create(ctx context.Context, token *ResetToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*ResetToken, error)
	MarkUsed(ctx context.Context, id string, usedAt time.Time) error
	DeleteByID(ctx context.Context, id string) error
	DeleteForAccount(ctx context.Context, accountType domain.AccountType, accountID string) error
	DeleteForAccountExcept(ctx context.Context, accountType domain.AccountType, accountID, exceptID string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type resetTokenRepository struct {
	pool *pgxpool.Pool
}

// NewResetTokenRepository constructs repository.
func NewResetTokenRepository(pool *pgxpool.Pool) ResetTokenRepository {
	return &resetTokenRepository{pool: pool}
}

func (r *resetTokenRepository) Create(ctx context.Context, token *ResetToken) error {
	const query = `
        INSERT INTO password_reset_tokens (account_type, account_id, token_hash, expires_at)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		token.AccountType,
		token.AccountID,
		token.TokenHash,
		token.ExpiresAt,
	).Scan(&token.ID, &token.CreatedAt)
}

func (r *resetTokenRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*ResetToken, error) {
	const query = `
        SELECT id, account_type, account_id, token_hash, expires_at, used_at, created_at
        FROM password_reset_tokens WHERE token_hash=$1`
	var token ResetToken
	if err := r.pool.QueryRow(ctx, query, tokenHash).Scan(
		&token.ID,
		&token.AccountType,
		&token.AccountID,
		&token.TokenHash,
		&token.ExpiresAt,
		&token.UsedAt,
		&token.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *resetTokenRepository) MarkUsed(ctx context.Context, id string, usedAt time.Time) error {
	const query = `
        UPDATE password_reset_tokens SET used_at=$1
        WHERE id=$2 AND used_at IS NULL`
	cmd, err := r.pool.Exec(ctx, query, usedAt, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *resetTokenRepository) DeleteByID(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM password_reset_tokens WHERE id=$1`, id)
	return err
}

func (r *resetTokenRepository) DeleteForAccount(ctx context.Context, accountType domain.AccountType, accountID string) error {
	const query = `
        DELETE FROM password_reset_tokens WHERE account_type=$1 AND account_id=$2`
	_, err := r.pool.Exec(ctx, query, accountType, accountID)
	return err
}

func (r *resetTokenRepository) DeleteForAccountExcept(ctx context.Context, accountType domain.AccountType, accountID, exceptID string) error {
	const query = `
        DELETE FROM password_reset_tokens WHERE account_type=$1 AND account_id=$2 AND id<>$3`
	_, err := r.pool.Exec(ctx, query, accountType, accountID, exceptID)
	return err
}

func (r *resetTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM password_reset_tokens WHERE expires_at < $1`, now)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
