// Package service implements the qualification workflow: validate intake,
// persist the lead, score it, classify it, route it to a closer and provision
// a scheduling link. Only validation and lead persistence are terminal
// failures; every later step degrades into an explicit result field.
package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"qualifica_backend/internal/events"
	"qualifica_backend/internal/qualification/repository"
	"qualifica_backend/internal/qualification/scoring"
	"qualifica_backend/internal/qualification/transport"
	"qualifica_backend/platform/apperr"
	"qualifica_backend/platform/config"
	"qualifica_backend/platform/logger"
	"qualifica_backend/platform/phone"

	"github.com/google/uuid"
)

// Stable reason codes surfaced in AssignmentResult when routing fails.
const (
	ReasonNoCloserConfigured    = "no_closer_configured_for_segment"
	ReasonCloserUnavailable     = "configured_closer_unavailable"
	ReasonAssignmentWriteFailed = "assignment_write_failed"
)

// Service orchestrates qualification runs. It holds two repository handles:
// intake (restricted role) for lead creation and read-only lookups, trusted
// (elevated role) for assignment writes and link inserts.
type Service struct {
	intake  repository.IntakeRepository
	trusted repository.TrustedRepository
	cfg     config.QualificationConfig
	bus     events.Bus
	log     *logger.Logger
}

func New(intake repository.IntakeRepository, trusted repository.TrustedRepository, cfg config.QualificationConfig, bus events.Bus, log *logger.Logger) *Service {
	return &Service{intake: intake, trusted: trusted, cfg: cfg, bus: bus, log: log}
}

// Qualify runs the full workflow for a new submission.
func (s *Service) Qualify(ctx context.Context, req transport.QualificationRequest) (*transport.QualificationResponse, error) {
	if err := validateRequired(req); err != nil {
		return nil, err
	}

	tenantID := s.cfg.GetDefaultTenantID()
	if req.TenantID != "" {
		parsed, err := uuid.Parse(req.TenantID)
		if err != nil {
			return nil, apperr.Validation("tenant_id is not a valid UUID")
		}
		tenantID = parsed
	}

	lead, err := s.intake.CreateLead(ctx, repository.CreateLeadParams{
		TenantID:        tenantID,
		Name:            strings.TrimSpace(req.Name),
		Email:           strings.TrimSpace(req.Email),
		Phone:           phone.NormalizeE164(req.Phone),
		Company:         optional(req.Company),
		Role:            optional(req.Role),
		Temperature:     optional(req.Temperature),
		InterestLevel:   optional(req.InterestLevel),
		BudgetAvailable: req.BudgetAvailable,
		IsDecisionMaker: req.IsDecisionMaker,
		PainPoint:       optional(req.PainPoint),
	})
	if err != nil {
		s.log.DatabaseError("create lead", err)
		return nil, apperr.Wrap(apperr.KindInternal, "failed to create lead", err)
	}

	return s.run(ctx, lead, req.PreferredDatetime), nil
}

// Requalify re-runs scoring and routing for an existing lead. Prior score and
// assignment values are overwritten; no duplicate records are created.
func (s *Service) Requalify(ctx context.Context, leadID, tenantID uuid.UUID) (*transport.QualificationResponse, error) {
	lead, err := s.trusted.GetLeadByID(ctx, leadID, tenantID)
	if err != nil {
		if err == repository.ErrLeadNotFound {
			return nil, apperr.NotFound("lead not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load lead", err)
	}
	return s.run(ctx, lead, nil), nil
}

// run executes the non-terminal tail of the workflow. By this point the lead
// exists; nothing below may fail the qualification as a whole.
func (s *Service) run(ctx context.Context, lead repository.Lead, preferredAt *time.Time) *transport.QualificationResponse {
	rules, activeCfg := s.resolveRules(ctx, lead.TenantID)

	eval := scoring.Evaluate(scoringInput(lead), rules)
	segment := scoring.Classify(eval.Total, rules.Threshold)

	closer, reason := s.resolveCloser(ctx, segment, activeCfg, lead.TenantID)

	assignment := transport.AssignmentResult{Success: false, Reason: reason}
	var closerID *uuid.UUID
	if closer != nil {
		assignment = transport.AssignmentResult{Success: true, CloserID: &closer.ID, CloserName: closer.Name}
		closerID = &closer.ID
	}

	breakdownJSON, err := json.Marshal(eval.Details)
	if err != nil {
		// The breakdown is a slice of plain structs; this cannot realistically fail.
		breakdownJSON = []byte(`[]`)
	}

	writeOK := true
	if err := s.trusted.UpdateLeadQualification(ctx, repository.UpdateLeadQualificationParams{
		LeadID:         lead.ID,
		TenantID:       lead.TenantID,
		LeadScore:      eval.Total,
		ScoreBreakdown: breakdownJSON,
		CloserID:       closerID,
	}); err != nil {
		writeOK = false
		s.log.DatabaseError("update lead qualification", err)
		if closer != nil {
			assignment = transport.AssignmentResult{Success: false, Reason: ReasonAssignmentWriteFailed}
		}
	}

	appointment := transport.AppointmentResult{}
	var bookingURL string
	if closer != nil {
		if url, ok := s.provisionLink(ctx, lead, *closer, preferredAt); ok {
			appointment = transport.AppointmentResult{AppointmentScheduled: true, AppointmentLink: url}
			bookingURL = url
		}
	}

	if s.bus != nil {
		s.bus.Publish(ctx, events.LeadQualified{
			BaseEvent: events.NewBaseEvent(),
			LeadID:    lead.ID,
			TenantID:  lead.TenantID,
			Score:     eval.Total,
			Segment:   string(segment),
		})
		if closer != nil && writeOK {
			s.bus.Publish(ctx, events.LeadAssigned{
				BaseEvent:   events.NewBaseEvent(),
				LeadID:      lead.ID,
				TenantID:    lead.TenantID,
				CloserID:    closer.ID,
				CloserName:  closer.Name,
				CloserEmail: deref(closer.Email),
				LeadName:    lead.Name,
				Score:       eval.Total,
				BookingURL:  bookingURL,
			})
		}
	}

	return &transport.QualificationResponse{
		Success: true,
		LeadID:  lead.ID,
		ScoreResult: transport.ScoreResult{
			TotalScore: eval.Total,
			Threshold:  rules.Threshold,
			ConfigUsed: rules.Name,
			Details:    toScoreDetails(eval.Details),
		},
		AssignmentResult:  assignment,
		AppointmentResult: appointment,
	}
}

// resolveRules loads the tenant's active configuration, falling back to the
// built-in default rule set when none is active. The absence of a
// configuration is an expected state, not an error.
func (s *Service) resolveRules(ctx context.Context, tenantID uuid.UUID) (scoring.Rules, *repository.ScoringConfiguration) {
	cfg, err := s.intake.GetActiveConfiguration(ctx, tenantID)
	if err != nil {
		if err != repository.ErrConfigurationNotFound {
			s.log.DatabaseError("get active configuration", err)
		}
		return scoring.DefaultRules(), nil
	}
	return rulesFromConfiguration(cfg), &cfg
}

// resolveCloser returns the configured closer for the segment, or nil with a
// reason code. Resolver failures are non-fatal to the workflow.
func (s *Service) resolveCloser(ctx context.Context, segment scoring.Segment, cfg *repository.ScoringConfiguration, tenantID uuid.UUID) (*repository.Closer, string) {
	var configured *uuid.UUID
	if cfg != nil {
		if segment == scoring.SegmentHigh {
			configured = cfg.HighSegmentCloserID
		} else {
			configured = cfg.LowSegmentCloserID
		}
	}
	if configured == nil {
		return nil, ReasonNoCloserConfigured
	}

	closer, err := s.intake.GetActiveCloser(ctx, *configured, tenantID)
	if err != nil {
		if err != repository.ErrCloserNotFound {
			s.log.DatabaseError("get active closer", err)
		}
		return nil, ReasonCloserUnavailable
	}
	return &closer, ""
}

func rulesFromConfiguration(cfg repository.ScoringConfiguration) scoring.Rules {
	return scoring.Rules{
		Name:                  cfg.Name,
		PhonePoints:           cfg.PhoneScore,
		EmailPoints:           cfg.EmailScore,
		CompanyPoints:         cfg.CompanyScore,
		RolePoints:            cfg.RoleScore,
		TemperatureHotPoints:  cfg.TemperatureHotScore,
		TemperatureWarmPoints: cfg.TemperatureWarmScore,
		TemperatureColdPoints: cfg.TemperatureColdScore,
		InterestHighPoints:    cfg.InterestHighScore,
		InterestMediumPoints:  cfg.InterestMediumScore,
		InterestLowPoints:     cfg.InterestLowScore,
		BudgetPoints:          cfg.BudgetScore,
		DecisionMakerPoints:   cfg.DecisionMakerScore,
		PainPointPoints:       cfg.PainPointScore,
		Threshold:             cfg.LowScoreThreshold,
	}
}

func scoringInput(lead repository.Lead) scoring.Input {
	return scoring.Input{
		Phone:           lead.Phone,
		Email:           lead.Email,
		Company:         deref(lead.Company),
		Role:            deref(lead.Role),
		Temperature:     deref(lead.Temperature),
		InterestLevel:   deref(lead.InterestLevel),
		BudgetAvailable: lead.BudgetAvailable,
		IsDecisionMaker: lead.IsDecisionMaker,
		PainPoint:       deref(lead.PainPoint),
	}
}

func toScoreDetails(details []scoring.Detail) []transport.ScoreDetail {
	out := make([]transport.ScoreDetail, 0, len(details))
	for _, detail := range details {
		out = append(out, transport.ScoreDetail{Field: detail.Field, Score: detail.Score})
	}
	return out
}

func validateRequired(req transport.QualificationRequest) error {
	missing := make([]string, 0, 3)
	if strings.TrimSpace(req.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(req.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(req.Phone) == "" {
		missing = append(missing, "phone")
	}
	if len(missing) > 0 {
		return apperr.Validation("missing required fields").WithDetails(missing)
	}
	return nil
}

func optional(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
