package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/finance-tracker/internal/domain"
)

// CategoryRepository encapsulates category persistence.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	Update(ctx context.Context, category *domain.Category) error
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	GetByName(ctx context.Context, name string) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
}

type categoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository instantiates repository.
func NewCategoryRepository(pool *pgxpool.Pool) CategoryRepository {
	return &categoryRepository{pool: pool}
}

func (r *categoryRepository) Create(ctx context.Context, category *domain.Category) error {
	const query = `
        INSERT INTO categories (name, description, kind, active)
        VALUES ($1, $2, $3, $4)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		category.Name,
		category.Description,
		category.Kind,
		category.Active,
	).Scan(&category.ID)
}

func (r *categoryRepository) Update(ctx context.Context, category *domain.Category) error {
	const query = `
        UPDATE categories SET name=$1, description=$2, kind=$3, active=$4
        WHERE id=$5`
	cmd, err := r.pool.Exec(ctx, query,
		category.Name,
		category.Description,
		category.Kind,
		category.Active,
		category.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	const query = `
        SELECT id, name, description, kind, active
        FROM categories WHERE id=$1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *categoryRepository) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	const query = `
        SELECT id, name, description, kind, active
        FROM categories WHERE LOWER(name)=LOWER($1)`
	return r.scanOne(r.pool.QueryRow(ctx, query, name))
}

func (r *categoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	const query = `
        SELECT id, name, description, kind, active
        FROM categories ORDER BY name`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]domain.Category, 0)
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(
			&category.ID,
			&category.Name,
			&category.Description,
			&category.Kind,
			&category.Active,
		); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (r *categoryRepository) scanOne(row pgx.Row) (*domain.Category, error) {
	var category domain.Category
	if err := row.Scan(
		&category.ID,
		&category.Name,
		&category.Description,
		&category.Kind,
		&category.Active,
	); err != nil {
		return nil, err
	}
	return &category, nil
}
