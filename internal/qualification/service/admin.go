package service

import (
	"context"
	"errors"

	"qualifica_backend/internal/qualification/repository"
	"qualifica_backend/internal/qualification/transport"
	"qualifica_backend/platform/apperr"

	"github.com/google/uuid"
)

// GetScoringConfig returns the tenant's active rule set. When no
// configuration has ever been activated the engine scores with built-in
// defaults, which is reported as a 404 here.
func (s *Service) GetScoringConfig(ctx context.Context, tenantID uuid.UUID) (*transport.ScoringConfigResponse, error) {
	cfg, err := s.intake.GetActiveConfiguration(ctx, tenantID)
	if errors.Is(err, repository.ErrConfigurationNotFound) {
		return nil, apperr.NotFound("no active scoring configuration")
	}
	if err != nil {
		s.log.DatabaseError("get active configuration", err)
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load scoring configuration", err)
	}
	return configToResponse(cfg), nil
}

// ReplaceScoringConfig activates a new rule set for the tenant. The previous
// active configuration is deactivated in the same transaction; leads already
// scored keep their stored score until re-qualified.
func (s *Service) ReplaceScoringConfig(ctx context.Context, tenantID uuid.UUID, req transport.ScoringConfigRequest) (*transport.ScoringConfigResponse, error) {
	highCloser, err := parseOptionalUUID(req.HighSegmentCloserID)
	if err != nil {
		return nil, apperr.Validation("high_segment_closer_id is not a valid UUID")
	}
	lowCloser, err := parseOptionalUUID(req.LowSegmentCloserID)
	if err != nil {
		return nil, apperr.Validation("low_segment_closer_id is not a valid UUID")
	}

	cfg, err := s.trusted.CreateAndActivateConfiguration(ctx, repository.CreateConfigurationParams{
		TenantID:              tenantID,
		Name:                  req.Name,
		PhoneScore:            req.PhoneScore,
		EmailScore:            req.EmailScore,
		CompanyScore:          req.CompanyScore,
		RoleScore:             req.RoleScore,
		TemperatureHotScore:   req.TemperatureHotScore,
		TemperatureWarmScore:  req.TemperatureWarmScore,
		TemperatureColdScore:  req.TemperatureColdScore,
		InterestHighScore:     req.InterestHighScore,
		InterestMediumScore:   req.InterestMediumScore,
		InterestLowScore:      req.InterestLowScore,
		BudgetScore:           req.BudgetScore,
		DecisionMakerScore:    req.DecisionMakerScore,
		PainPointScore:        req.PainPointScore,
		LowScoreThreshold:     req.LowScoreThreshold,
		HighSegmentCloserID:   highCloser,
		LowSegmentCloserID:    lowCloser,
	})
	if err != nil {
		s.log.DatabaseError("create scoring configuration", err)
		return nil, apperr.Wrap(apperr.KindInternal, "failed to save scoring configuration", err)
	}

	s.log.Info("scoring configuration replaced", "configId", cfg.ID, "tenantId", tenantID, "threshold", cfg.LowScoreThreshold)
	return configToResponse(cfg), nil
}

func configToResponse(cfg repository.ScoringConfiguration) *transport.ScoringConfigResponse {
	return &transport.ScoringConfigResponse{
		ID:                   cfg.ID.String(),
		Name:                 cfg.Name,
		PhoneScore:           cfg.PhoneScore,
		EmailScore:           cfg.EmailScore,
		CompanyScore:         cfg.CompanyScore,
		RoleScore:            cfg.RoleScore,
		TemperatureHotScore:  cfg.TemperatureHotScore,
		TemperatureWarmScore: cfg.TemperatureWarmScore,
		TemperatureColdScore: cfg.TemperatureColdScore,
		InterestHighScore:    cfg.InterestHighScore,
		InterestMediumScore:  cfg.InterestMediumScore,
		InterestLowScore:     cfg.InterestLowScore,
		BudgetScore:          cfg.BudgetScore,
		DecisionMakerScore:   cfg.DecisionMakerScore,
		PainPointScore:       cfg.PainPointScore,
		LowScoreThreshold:    cfg.LowScoreThreshold,
		HighSegmentCloserID:  uuidToString(cfg.HighSegmentCloserID),
		LowSegmentCloserID:   uuidToString(cfg.LowSegmentCloserID),
		IsActive:             cfg.IsActive,
		CreatedAt:            cfg.CreatedAt,
		UpdatedAt:            cfg.UpdatedAt,
	}
}

func parseOptionalUUID(value *string) (*uuid.UUID, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	parsed, err := uuid.Parse(*value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func uuidToString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
