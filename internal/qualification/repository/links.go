package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AppointmentLink is one row of agendamento_links. Tokens are unique across
// the system (DB constraint); the booking flow consumes single-use links.
type AppointmentLink struct {
	ID          uuid.UUID
	Token       string
	LeadID      uuid.UUID
	CloserID    uuid.UUID
	TenantID    uuid.UUID
	SingleUse   bool
	IsActive    bool
	Description *string
	PreferredAt *time.Time
	CreatedAt   time.Time
}

type CreateAppointmentLinkParams struct {
	Token       string
	LeadID      uuid.UUID
	CloserID    uuid.UUID
	TenantID    uuid.UUID
	SingleUse   bool
	Description *string
	PreferredAt *time.Time
}

func (r *Repository) CreateAppointmentLink(ctx context.Context, params CreateAppointmentLinkParams) (AppointmentLink, error) {
	var link AppointmentLink
	err := r.pool.QueryRow(ctx, `
		INSERT INTO agendamento_links (
			token, lead_id, closer_id, tenant_id, single_use, is_active, description, preferred_at
		) VALUES ($1, $2, $3, $4, $5, true, $6, $7)
		RETURNING id, token, lead_id, closer_id, tenant_id, single_use, is_active, description, preferred_at, created_at
	`,
		params.Token, params.LeadID, params.CloserID, params.TenantID, params.SingleUse, params.Description, params.PreferredAt,
	).Scan(
		&link.ID, &link.Token, &link.LeadID, &link.CloserID, &link.TenantID,
		&link.SingleUse, &link.IsActive, &link.Description, &link.PreferredAt, &link.CreatedAt,
	)
	return link, err
}
