package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrLeadNotFound          = errors.New("lead not found")
	ErrConfigurationNotFound = errors.New("scoring configuration not found")
	ErrCloserNotFound        = errors.New("closer not found")
)

// Repository exposes the qualification engine's data access. The same type
// serves both capability handles: construct one over the restricted pool for
// intake reads and lead creation, and one over the trusted pool for
// assignment writes and link inserts.
type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Ping reports connectivity for health checks.
func (r *Repository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

type Lead struct {
	ID              uuid.UUID
	TenantID        uuid.UUID
	Name            string
	Email           string
	Phone           string
	Company         *string
	Role            *string
	Temperature     *string
	InterestLevel   *string
	BudgetAvailable float64
	IsDecisionMaker bool
	PainPoint       *string
	LeadScore       int
	ScoreBreakdown  json.RawMessage
	CloserID        *uuid.UUID
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type CreateLeadParams struct {
	TenantID        uuid.UUID
	Name            string
	Email           string
	Phone           string
	Company         *string
	Role            *string
	Temperature     *string
	InterestLevel   *string
	BudgetAvailable float64
	IsDecisionMaker bool
	PainPoint       *string
}

const leadColumns = `id, tenant_id, name, email, phone, company, role,
		temperature, interest_level, budget_available, is_decision_maker, pain_point,
		lead_score, score_breakdown, closer_id, status, created_at, updated_at`

func (r *Repository) CreateLead(ctx context.Context, params CreateLeadParams) (Lead, error) {
	var lead Lead
	err := r.pool.QueryRow(ctx, `
		INSERT INTO leads (
			tenant_id, name, email, phone, company, role,
			temperature, interest_level, budget_available, is_decision_maker, pain_point, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 'novo')
		RETURNING `+leadColumns+`
	`,
		params.TenantID, params.Name, params.Email, params.Phone, params.Company, params.Role,
		params.Temperature, params.InterestLevel, params.BudgetAvailable, params.IsDecisionMaker, params.PainPoint,
	).Scan(leadFields(&lead)...)
	return lead, err
}

func (r *Repository) GetLeadByID(ctx context.Context, id uuid.UUID, tenantID uuid.UUID) (Lead, error) {
	var lead Lead
	err := r.pool.QueryRow(ctx, `
		SELECT `+leadColumns+`
		FROM leads
		WHERE id = $1 AND tenant_id = $2
	`, id, tenantID).Scan(leadFields(&lead)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return Lead{}, ErrLeadNotFound
	}
	return lead, err
}

type UpdateLeadQualificationParams struct {
	LeadID         uuid.UUID
	TenantID       uuid.UUID
	LeadScore      int
	ScoreBreakdown json.RawMessage
	CloserID       *uuid.UUID
}

// UpdateLeadQualification persists the computed score and breakdown, and the
// resolved closer when one is present. The closer column is left untouched on
// unassigned runs so a re-run that fails to resolve does not clear an earlier
// assignment. Re-running for the same lead overwrites prior values: last
// write wins.
func (r *Repository) UpdateLeadQualification(ctx context.Context, params UpdateLeadQualificationParams) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE leads
		SET lead_score = $3,
			score_breakdown = $4,
			closer_id = COALESCE($5, closer_id),
			status = CASE WHEN $5::uuid IS NOT NULL THEN 'qualificado' ELSE status END,
			updated_at = now()
		WHERE id = $1 AND tenant_id = $2
	`, params.LeadID, params.TenantID, params.LeadScore, params.ScoreBreakdown, params.CloserID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrLeadNotFound
	}
	return nil
}

func leadFields(lead *Lead) []any {
	return []any{
		&lead.ID, &lead.TenantID, &lead.Name, &lead.Email, &lead.Phone, &lead.Company, &lead.Role,
		&lead.Temperature, &lead.InterestLevel, &lead.BudgetAvailable, &lead.IsDecisionMaker, &lead.PainPoint,
		&lead.LeadScore, &lead.ScoreBreakdown, &lead.CloserID, &lead.Status, &lead.CreatedAt, &lead.UpdatedAt,
	}
}
