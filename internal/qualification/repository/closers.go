package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Closer is a sales agent eligible for lead assignment.
type Closer struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	Name      string
	Email     *string
	IsActive  bool
	CreatedAt time.Time
}

// GetActiveCloser returns the closer only when it exists, belongs to the
// tenant and is active. Inactive or cross-tenant closers are reported as
// ErrCloserNotFound: they are not eligible assignment targets.
func (r *Repository) GetActiveCloser(ctx context.Context, id uuid.UUID, tenantID uuid.UUID) (Closer, error) {
	var closer Closer
	err := r.pool.QueryRow(ctx, `
		SELECT id, tenant_id, name, email, is_active, created_at
		FROM closers
		WHERE id = $1 AND tenant_id = $2 AND is_active = true
	`, id, tenantID).Scan(&closer.ID, &closer.TenantID, &closer.Name, &closer.Email, &closer.IsActive, &closer.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Closer{}, ErrCloserNotFound
	}
	return closer, err
}
