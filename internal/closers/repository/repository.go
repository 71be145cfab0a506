package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrCloserNotFound = errors.New("closer not found")

// Repository is the closers admin data access. It runs on the restricted
// pool: every statement is tenant scoped by an authenticated caller.
type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Closer is a sales agent that can receive qualified leads.
type Closer struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	Name      string
	Email     *string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CreateCloserParams struct {
	TenantID uuid.UUID
	Name     string
	Email    *string
}

func (r *Repository) Create(ctx context.Context, params CreateCloserParams) (Closer, error) {
	var closer Closer
	err := r.pool.QueryRow(ctx, `
		INSERT INTO closers (tenant_id, name, email, is_active)
		VALUES ($1, $2, $3, true)
		RETURNING id, tenant_id, name, email, is_active, created_at, updated_at
	`, params.TenantID, params.Name, params.Email).Scan(
		&closer.ID, &closer.TenantID, &closer.Name, &closer.Email,
		&closer.IsActive, &closer.CreatedAt, &closer.UpdatedAt,
	)
	return closer, err
}

func (r *Repository) List(ctx context.Context, tenantID uuid.UUID) ([]Closer, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, tenant_id, name, email, is_active, created_at, updated_at
		FROM closers
		WHERE tenant_id = $1
		ORDER BY created_at DESC
	`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var closers []Closer
	for rows.Next() {
		var closer Closer
		if err := rows.Scan(
			&closer.ID, &closer.TenantID, &closer.Name, &closer.Email,
			&closer.IsActive, &closer.CreatedAt, &closer.UpdatedAt,
		); err != nil {
			return nil, err
		}
		closers = append(closers, closer)
	}
	return closers, rows.Err()
}

func (r *Repository) GetByID(ctx context.Context, id, tenantID uuid.UUID) (Closer, error) {
	var closer Closer
	err := r.pool.QueryRow(ctx, `
		SELECT id, tenant_id, name, email, is_active, created_at, updated_at
		FROM closers
		WHERE id = $1 AND tenant_id = $2
	`, id, tenantID).Scan(
		&closer.ID, &closer.TenantID, &closer.Name, &closer.Email,
		&closer.IsActive, &closer.CreatedAt, &closer.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Closer{}, ErrCloserNotFound
	}
	return closer, err
}

// SetActive flips the availability flag. Deactivated closers stop receiving
// new assignments; existing assignments are untouched.
func (r *Repository) SetActive(ctx context.Context, id, tenantID uuid.UUID, active bool) (Closer, error) {
	var closer Closer
	err := r.pool.QueryRow(ctx, `
		UPDATE closers
		SET is_active = $3, updated_at = now()
		WHERE id = $1 AND tenant_id = $2
		RETURNING id, tenant_id, name, email, is_active, created_at, updated_at
	`, id, tenantID, active).Scan(
		&closer.ID, &closer.TenantID, &closer.Name, &closer.Email,
		&closer.IsActive, &closer.CreatedAt, &closer.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Closer{}, ErrCloserNotFound
	}
	return closer, err
}
