package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/bizops-service/internal/domain"
)

// TransactionRepository handles persistence for transactions.
type TransactionRepository interface {
	Create(ctx context.Context, tx *domain.Transaction) error
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	List(ctx context.Context, filter TransactionFilter) ([]domain.Transaction, error)
	Summarize(ctx context.Context, from, to time.Time) (*domain.TransactionSummary, error)
}

// TransactionFilter defines query params for transaction listing.
type TransactionFilter struct {
	Type       *domain.TransactionType
	CustomerID *string
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

type transactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository instantiates the repository.
func NewTransactionRepository(pool *pgxpool.Pool) TransactionRepository {
	return &transactionRepository{pool: pool}
}

func (r *transactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	const query = `
        INSERT INTO transactions (type, amount, description, customer_id, recorded_by, recorded_by_type, occurred_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		tx.Type,
		tx.Amount,
		tx.Description,
		tx.CustomerID,
		tx.RecordedBy,
		tx.RecordedByType,
		tx.OccurredAt,
	).Scan(&tx.ID, &tx.CreatedAt)
}

func (r *transactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	const query = `
        SELECT id, type, amount, description, customer_id, recorded_by, recorded_by_type, occurred_at, created_at
        FROM transactions WHERE id=$1`

	var tx domain.Transaction
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&tx.ID,
		&tx.Type,
		&tx.Amount,
		&tx.Description,
		&tx.CustomerID,
		&tx.RecordedBy,
		&tx.RecordedByType,
		&tx.OccurredAt,
		&tx.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *transactionRepository) List(ctx context.Context, filter TransactionFilter) ([]domain.Transaction, error) {
	query := `
        SELECT id, type, amount, description, customer_id, recorded_by, recorded_by_type, occurred_at, created_at
        FROM transactions`
	args := []any{}
	clauses := []string{}

	if filter.Type != nil {
		args = append(args, *filter.Type)
		clauses = append(clauses, fmt.Sprintf("type=$%d", len(args)))
	}
	if filter.CustomerID != nil {
		args = append(args, *filter.CustomerID)
		clauses = append(clauses, fmt.Sprintf("customer_id=$%d", len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		clauses = append(clauses, fmt.Sprintf("occurred_at >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		clauses = append(clauses, fmt.Sprintf("occurred_at < $%d", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	query += " ORDER BY occurred_at DESC"
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Transaction
	for rows.Next() {
		var tx domain.Transaction
		if err := rows.Scan(
			&tx.ID,
			&tx.Type,
			&tx.Amount,
			&tx.Description,
			&tx.CustomerID,
			&tx.RecordedBy,
			&tx.RecordedByType,
			&tx.OccurredAt,
			&tx.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, tx)
	}
	return result, rows.Err()
}

func (r *transactionRepository) Summarize(ctx context.Context, from, to time.Time) (*domain.TransactionSummary, error) {
	const query = `
        SELECT COUNT(*),
               COALESCE(SUM(amount) FILTER (WHERE type='SALE'), 0),
               COALESCE(SUM(amount) FILTER (WHERE type='REFUND'), 0),
               COALESCE(SUM(amount) FILTER (WHERE type='PAYOUT'), 0)
        FROM transactions
        WHERE occurred_at >= $1 AND occurred_at < $2`

	var summary domain.TransactionSummary
	if err := r.pool.QueryRow(ctx, query, from, to).Scan(
		&summary.Count,
		&summary.SaleTotal,
		&summary.RefundTotal,
		&summary.PayoutTotal,
	); err != nil {
		return nil, err
	}
	return &summary, nil
}
