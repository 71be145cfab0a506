package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrLinkNotFound        = errors.New("scheduling link not found")
	ErrAppointmentNotFound = errors.New("appointment not found")
)

// Repository is the booking context data access. It runs on the trusted pool:
// the booking flow acts for anonymous visitors who own neither the link nor
// the appointment rows it writes.
type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Link is a scheduling link joined with display data for the public page.
type Link struct {
	ID          uuid.UUID
	Token       string
	LeadID      uuid.UUID
	CloserID    uuid.UUID
	TenantID    uuid.UUID
	SingleUse   bool
	IsActive    bool
	Description *string
	PreferredAt *time.Time
	CloserName  string
	CloserEmail *string
	LeadName    string
	CreatedAt   time.Time
}

// GetLinkByToken loads a link with its closer and lead display fields.
// Inactive links are returned so the caller can distinguish "consumed"
// from "never existed".
func (r *Repository) GetLinkByToken(ctx context.Context, token string) (Link, error) {
	var link Link
	err := r.pool.QueryRow(ctx, `
		SELECT al.id, al.token, al.lead_id, al.closer_id, al.tenant_id,
			al.single_use, al.is_active, al.description, al.preferred_at,
			c.name, c.email, l.name, al.created_at
		FROM agendamento_links al
		JOIN closers c ON c.id = al.closer_id
		JOIN leads l ON l.id = al.lead_id
		WHERE al.token = $1
	`, token).Scan(
		&link.ID, &link.Token, &link.LeadID, &link.CloserID, &link.TenantID,
		&link.SingleUse, &link.IsActive, &link.Description, &link.PreferredAt,
		&link.CloserName, &link.CloserEmail, &link.LeadName, &link.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Link{}, ErrLinkNotFound
	}
	return link, err
}

// Appointment is one booked slot.
type Appointment struct {
	ID        uuid.UUID
	LinkID    uuid.UUID
	LeadID    uuid.UUID
	CloserID  uuid.UUID
	TenantID  uuid.UUID
	StartTime time.Time
	Status    string
	CreatedAt time.Time
}

type CreateAppointmentParams struct {
	LinkID    uuid.UUID
	LeadID    uuid.UUID
	CloserID  uuid.UUID
	TenantID  uuid.UUID
	StartTime time.Time
}

// CreateAppointment books a slot through a link. Single-use links are
// deactivated in the same transaction; the conditional update doubles as a
// guard against two concurrent confirmations of the same single-use link.
func (r *Repository) CreateAppointment(ctx context.Context, params CreateAppointmentParams, consumeLink bool) (Appointment, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Appointment{}, err
	}
	defer tx.Rollback(ctx)

	if consumeLink {
		tag, err := tx.Exec(ctx, `
			UPDATE agendamento_links
			SET is_active = false
			WHERE id = $1 AND is_active = true
		`, params.LinkID)
		if err != nil {
			return Appointment{}, err
		}
		if tag.RowsAffected() == 0 {
			return Appointment{}, ErrLinkNotFound
		}
	}

	var appt Appointment
	err = tx.QueryRow(ctx, `
		INSERT INTO appointments (link_id, lead_id, closer_id, tenant_id, start_time, status)
		VALUES ($1, $2, $3, $4, $5, 'agendado')
		RETURNING id, link_id, lead_id, closer_id, tenant_id, start_time, status, created_at
	`, params.LinkID, params.LeadID, params.CloserID, params.TenantID, params.StartTime).Scan(
		&appt.ID, &appt.LinkID, &appt.LeadID, &appt.CloserID, &appt.TenantID,
		&appt.StartTime, &appt.Status, &appt.CreatedAt,
	)
	if err != nil {
		return Appointment{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Appointment{}, err
	}
	return appt, nil
}

// AppointmentDetails carries an appointment with the display fields the
// reminder flow needs.
type AppointmentDetails struct {
	Appointment
	CloserName  string
	CloserEmail *string
	LeadName    string
}

// GetAppointmentByID loads an appointment with its closer and lead display
// fields, tenant scoped.
func (r *Repository) GetAppointmentByID(ctx context.Context, id, tenantID uuid.UUID) (AppointmentDetails, error) {
	var appt AppointmentDetails
	err := r.pool.QueryRow(ctx, `
		SELECT a.id, a.link_id, a.lead_id, a.closer_id, a.tenant_id,
			a.start_time, a.status, a.created_at,
			c.name, c.email, l.name
		FROM appointments a
		JOIN closers c ON c.id = a.closer_id
		JOIN leads l ON l.id = a.lead_id
		WHERE a.id = $1 AND a.tenant_id = $2
	`, id, tenantID).Scan(
		&appt.ID, &appt.LinkID, &appt.LeadID, &appt.CloserID, &appt.TenantID,
		&appt.StartTime, &appt.Status, &appt.CreatedAt,
		&appt.CloserName, &appt.CloserEmail, &appt.LeadName,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return AppointmentDetails{}, ErrAppointmentNotFound
	}
	return appt, err
}
