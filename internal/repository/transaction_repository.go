package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/finance-tracker/internal/domain"
)

// TransactionRepository encapsulates transaction persistence. Read queries
// join user and category names for response mapping.
type TransactionRepository interface {
	Create(ctx context.Context, tx *domain.Transaction) error
	Update(ctx context.Context, tx *domain.Transaction) error
	GetByID(ctx context.Context, id int64) (*domain.Transaction, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Transaction, error)
	ListByUserAndDateRange(ctx context.Context, userID int64, start, end time.Time) ([]domain.Transaction, error)
}

type transactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository instantiates repository.
func NewTransactionRepository(pool *pgxpool.Pool) TransactionRepository {
	return &transactionRepository{pool: pool}
}

const transactionSelect = `
        SELECT t.id, t.user_id, t.category_id, t.type, t.amount, t.date, t.description,
               t.active, t.created_at, t.updated_at, u.name, c.name
        FROM transactions t
        JOIN users u ON u.id = t.user_id
        JOIN categories c ON c.id = t.category_id`

func (r *transactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	const query = `
        INSERT INTO transactions (user_id, category_id, type, amount, date, description, active)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		tx.UserID,
		tx.CategoryID,
		tx.Type,
		tx.Amount,
		tx.Date,
		tx.Description,
		tx.Active,
	).Scan(&tx.ID, &tx.CreatedAt, &tx.UpdatedAt)
}

func (r *transactionRepository) Update(ctx context.Context, tx *domain.Transaction) error {
	const query = `
        UPDATE transactions SET category_id=$1, type=$2, amount=$3, date=$4, description=$5, active=$6, updated_at=NOW()
        WHERE id=$7`
	cmd, err := r.pool.Exec(ctx, query,
		tx.CategoryID,
		tx.Type,
		tx.Amount,
		tx.Date,
		tx.Description,
		tx.Active,
		tx.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *transactionRepository) GetByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	const query = transactionSelect + ` WHERE t.id=$1`
	var tx domain.Transaction
	if err := r.scan(r.pool.QueryRow(ctx, query, id), &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *transactionRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Transaction, error) {
	const query = transactionSelect + `
        WHERE t.user_id=$1 AND t.active
        ORDER BY t.date DESC, t.id DESC`
	return r.list(ctx, query, userID)
}

// ListByUserAndDateRange fetches a user's active transactions whose date
// lies inside the inclusive [start, end] window.
func (r *transactionRepository) ListByUserAndDateRange(ctx context.Context, userID int64, start, end time.Time) ([]domain.Transaction, error) {
	const query = transactionSelect + `
        WHERE t.user_id=$1 AND t.active AND t.date BETWEEN $2 AND $3
        ORDER BY t.date DESC, t.id DESC`
	return r.list(ctx, query, userID, start, end)
}

func (r *transactionRepository) list(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := make([]domain.Transaction, 0)
	for rows.Next() {
		var tx domain.Transaction
		if err := r.scan(rows, &tx); err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	return transactions, rows.Err()
}

func (r *transactionRepository) scan(row pgx.Row, tx *domain.Transaction) error {
	return row.Scan(
		&tx.ID,
		&tx.UserID,
		&tx.CategoryID,
		&tx.Type,
		&tx.Amount,
		&tx.Date,
		&tx.Description,
		&tx.Active,
		&tx.CreatedAt,
		&tx.UpdatedAt,
		&tx.UserName,
		&tx.CategoryName,
	)
}
