package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ScoringConfiguration is one row of scoring_configurations. At most one row
// is active per tenant (enforced by a partial unique index).
type ScoringConfiguration struct {
	ID       uuid.UUID
	TenantID uuid.UUID
	Name     string

	PhoneScore   int
	EmailScore   int
	CompanyScore int
	RoleScore    int

	TemperatureHotScore  int
	TemperatureWarmScore int
	TemperatureColdScore int

	InterestHighScore   int
	InterestMediumScore int
	InterestLowScore    int

	BudgetScore        int
	DecisionMakerScore int
	PainPointScore     int

	LowScoreThreshold int

	HighSegmentCloserID *uuid.UUID
	LowSegmentCloserID  *uuid.UUID

	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

const configurationColumns = `id, tenant_id, name,
		telefone_score, email_score, empresa_score, cargo_score,
		temperatura_quente_score, temperatura_morna_score, temperatura_fria_score,
		nivel_interesse_alto_score, nivel_interesse_medio_score, nivel_interesse_baixo_score,
		orcamento_disponivel_score, decisor_principal_score, dor_principal_score,
		low_score_threshold, closer_quente_id, closer_frio_id,
		is_active, created_at, updated_at`

// GetActiveConfiguration returns the single active configuration for the
// tenant, or ErrConfigurationNotFound when none is active.
func (r *Repository) GetActiveConfiguration(ctx context.Context, tenantID uuid.UUID) (ScoringConfiguration, error) {
	var cfg ScoringConfiguration
	err := r.pool.QueryRow(ctx, `
		SELECT `+configurationColumns+`
		FROM scoring_configurations
		WHERE tenant_id = $1 AND is_active = true
	`, tenantID).Scan(configurationFields(&cfg)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return ScoringConfiguration{}, ErrConfigurationNotFound
	}
	return cfg, err
}

type CreateConfigurationParams struct {
	TenantID uuid.UUID
	Name     string

	PhoneScore   int
	EmailScore   int
	CompanyScore int
	RoleScore    int

	TemperatureHotScore  int
	TemperatureWarmScore int
	TemperatureColdScore int

	InterestHighScore   int
	InterestMediumScore int
	InterestLowScore    int

	BudgetScore        int
	DecisionMakerScore int
	PainPointScore     int

	LowScoreThreshold int

	HighSegmentCloserID *uuid.UUID
	LowSegmentCloserID  *uuid.UUID
}

// CreateAndActivateConfiguration inserts a new configuration as the active
// one for the tenant, deactivating any prior active row in the same
// transaction so the one-active-per-tenant invariant holds throughout.
func (r *Repository) CreateAndActivateConfiguration(ctx context.Context, params CreateConfigurationParams) (ScoringConfiguration, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return ScoringConfiguration{}, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		UPDATE scoring_configurations
		SET is_active = false, updated_at = now()
		WHERE tenant_id = $1 AND is_active = true
	`, params.TenantID); err != nil {
		return ScoringConfiguration{}, err
	}

	var cfg ScoringConfiguration
	err = tx.QueryRow(ctx, `
		INSERT INTO scoring_configurations (
			tenant_id, name,
			telefone_score, email_score, empresa_score, cargo_score,
			temperatura_quente_score, temperatura_morna_score, temperatura_fria_score,
			nivel_interesse_alto_score, nivel_interesse_medio_score, nivel_interesse_baixo_score,
			orcamento_disponivel_score, decisor_principal_score, dor_principal_score,
			low_score_threshold, closer_quente_id, closer_frio_id, is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, true)
		RETURNING `+configurationColumns+`
	`,
		params.TenantID, params.Name,
		params.PhoneScore, params.EmailScore, params.CompanyScore, params.RoleScore,
		params.TemperatureHotScore, params.TemperatureWarmScore, params.TemperatureColdScore,
		params.InterestHighScore, params.InterestMediumScore, params.InterestLowScore,
		params.BudgetScore, params.DecisionMakerScore, params.PainPointScore,
		params.LowScoreThreshold, params.HighSegmentCloserID, params.LowSegmentCloserID,
	).Scan(configurationFields(&cfg)...)
	if err != nil {
		return ScoringConfiguration{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return ScoringConfiguration{}, err
	}
	return cfg, nil
}

func configurationFields(cfg *ScoringConfiguration) []any {
	return []any{
		&cfg.ID, &cfg.TenantID, &cfg.Name,
		&cfg.PhoneScore, &cfg.EmailScore, &cfg.CompanyScore, &cfg.RoleScore,
		&cfg.TemperatureHotScore, &cfg.TemperatureWarmScore, &cfg.TemperatureColdScore,
		&cfg.InterestHighScore, &cfg.InterestMediumScore, &cfg.InterestLowScore,
		&cfg.BudgetScore, &cfg.DecisionMakerScore, &cfg.PainPointScore,
		&cfg.LowScoreThreshold, &cfg.HighSegmentCloserID, &cfg.LowSegmentCloserID,
		&cfg.IsActive, &cfg.CreatedAt, &cfg.UpdatedAt,
	}
}
