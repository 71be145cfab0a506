package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"qualifica_backend/internal/qualification/repository"
	"qualifica_backend/internal/qualification/transport"
	"qualifica_backend/platform/apperr"
	"qualifica_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeIntake struct {
	createdLeads []repository.CreateLeadParams
	createErr    error

	config    *repository.ScoringConfiguration
	configErr error

	closer    *repository.Closer
	closerErr error
}

func (f *fakeIntake) CreateLead(_ context.Context, params repository.CreateLeadParams) (repository.Lead, error) {
	if f.createErr != nil {
		return repository.Lead{}, f.createErr
	}
	f.createdLeads = append(f.createdLeads, params)
	return repository.Lead{
		ID:              uuid.New(),
		TenantID:        params.TenantID,
		Name:            params.Name,
		Email:           params.Email,
		Phone:           params.Phone,
		Company:         params.Company,
		Role:            params.Role,
		Temperature:     params.Temperature,
		InterestLevel:   params.InterestLevel,
		BudgetAvailable: params.BudgetAvailable,
		IsDecisionMaker: params.IsDecisionMaker,
		PainPoint:       params.PainPoint,
		Status:          "novo",
	}, nil
}

func (f *fakeIntake) GetActiveConfiguration(_ context.Context, _ uuid.UUID) (repository.ScoringConfiguration, error) {
	if f.configErr != nil {
		return repository.ScoringConfiguration{}, f.configErr
	}
	if f.config == nil {
		return repository.ScoringConfiguration{}, repository.ErrConfigurationNotFound
	}
	return *f.config, nil
}

func (f *fakeIntake) GetActiveCloser(_ context.Context, id uuid.UUID, _ uuid.UUID) (repository.Closer, error) {
	if f.closerErr != nil {
		return repository.Closer{}, f.closerErr
	}
	if f.closer == nil || f.closer.ID != id {
		return repository.Closer{}, repository.ErrCloserNotFound
	}
	return *f.closer, nil
}

type fakeTrusted struct {
	lead   *repository.Lead
	getErr error

	updates   []repository.UpdateLeadQualificationParams
	updateErr error

	links   []repository.CreateAppointmentLinkParams
	linkErr error
}

func (f *fakeTrusted) GetLeadByID(_ context.Context, id uuid.UUID, tenantID uuid.UUID) (repository.Lead, error) {
	if f.getErr != nil {
		return repository.Lead{}, f.getErr
	}
	if f.lead == nil || f.lead.ID != id || f.lead.TenantID != tenantID {
		return repository.Lead{}, repository.ErrLeadNotFound
	}
	return *f.lead, nil
}

func (f *fakeTrusted) UpdateLeadQualification(_ context.Context, params repository.UpdateLeadQualificationParams) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates = append(f.updates, params)
	return nil
}

func (f *fakeTrusted) CreateAppointmentLink(_ context.Context, params repository.CreateAppointmentLinkParams) (repository.AppointmentLink, error) {
	if f.linkErr != nil {
		return repository.AppointmentLink{}, f.linkErr
	}
	f.links = append(f.links, params)
	return repository.AppointmentLink{
		ID:          uuid.New(),
		Token:       params.Token,
		LeadID:      params.LeadID,
		CloserID:    params.CloserID,
		TenantID:    params.TenantID,
		SingleUse:   params.SingleUse,
		IsActive:    true,
		Description: params.Description,
		PreferredAt: params.PreferredAt,
	}, nil
}

func (f *fakeTrusted) CreateAndActivateConfiguration(_ context.Context, params repository.CreateConfigurationParams) (repository.ScoringConfiguration, error) {
	return repository.ScoringConfiguration{
		ID:                  uuid.New(),
		TenantID:            params.TenantID,
		Name:                params.Name,
		LowScoreThreshold:   params.LowScoreThreshold,
		HighSegmentCloserID: params.HighSegmentCloserID,
		LowSegmentCloserID:  params.LowSegmentCloserID,
		IsActive:            true,
	}, nil
}

type stubConfig struct {
	tenantID uuid.UUID
}

func (s stubConfig) GetDefaultTenantID() uuid.UUID { return s.tenantID }
func (s stubConfig) GetBookingBaseURL() string     { return "https://agenda.example.com" }

func newTestService(intake *fakeIntake, trusted *fakeTrusted) *Service {
	return New(intake, trusted, stubConfig{tenantID: uuid.New()}, nil, logger.New("development"))
}

func hotLeadRequest() transport.QualificationRequest {
	return transport.QualificationRequest{
		Name:            "Maria Souza",
		Email:           "maria@empresa.com.br",
		Phone:           "+5511999998888",
		Temperature:     "quente",
		InterestLevel:   "alto",
		BudgetAvailable: 5000,
		IsDecisionMaker: true,
		PainPoint:       "time comercial sem processo",
	}
}

func TestQualify_MissingRequiredFieldsCreatesNoLead(t *testing.T) {
	intake := &fakeIntake{}
	svc := newTestService(intake, &fakeTrusted{})

	_, err := svc.Qualify(context.Background(), transport.QualificationRequest{Name: "Maria"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected validation kind, got %v", apperr.GetKind(err))
	}
	if len(intake.createdLeads) != 0 {
		t.Fatalf("expected no lead created, got %d", len(intake.createdLeads))
	}
}

func TestQualify_InvalidTenantIDRejected(t *testing.T) {
	intake := &fakeIntake{}
	svc := newTestService(intake, &fakeTrusted{})

	req := hotLeadRequest()
	req.TenantID = "not-a-uuid"

	_, err := svc.Qualify(context.Background(), req)
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected validation kind, got %v", apperr.GetKind(err))
	}
	if len(intake.createdLeads) != 0 {
		t.Fatalf("expected no lead created, got %d", len(intake.createdLeads))
	}
}

func TestQualify_DefaultRulesWhenNoConfiguration(t *testing.T) {
	intake := &fakeIntake{}
	trusted := &fakeTrusted{}
	svc := newTestService(intake, trusted)

	resp, err := svc.Qualify(context.Background(), hotLeadRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !resp.Success {
		t.Fatal("expected success response")
	}
	if resp.ScoreResult.TotalScore != 85 {
		t.Fatalf("expected score 85, got %d", resp.ScoreResult.TotalScore)
	}
	if resp.ScoreResult.ConfigUsed != "default" {
		t.Fatalf("expected default config, got %q", resp.ScoreResult.ConfigUsed)
	}
	if resp.AssignmentResult.Success {
		t.Fatal("expected no assignment without configuration")
	}
	if resp.AssignmentResult.Reason != ReasonNoCloserConfigured {
		t.Fatalf("expected reason %q, got %q", ReasonNoCloserConfigured, resp.AssignmentResult.Reason)
	}
	if len(trusted.updates) != 1 {
		t.Fatalf("expected 1 qualification write, got %d", len(trusted.updates))
	}
	if trusted.updates[0].CloserID != nil {
		t.Fatal("expected no closer on the qualification write")
	}
}

func TestQualify_RoutesHighSegmentToConfiguredCloser(t *testing.T) {
	closerID := uuid.New()
	intake := &fakeIntake{
		config: &repository.ScoringConfiguration{
			Name:                 "producao",
			PhoneScore:           10,
			EmailScore:           10,
			TemperatureHotScore:  20,
			InterestHighScore:    15,
			BudgetScore:          10,
			DecisionMakerScore:   10,
			PainPointScore:       10,
			LowScoreThreshold:    60,
			HighSegmentCloserID:  &closerID,
		},
		closer: &repository.Closer{ID: closerID, Name: "Carlos", IsActive: true},
	}
	trusted := &fakeTrusted{}
	svc := newTestService(intake, trusted)

	resp, err := svc.Qualify(context.Background(), hotLeadRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !resp.AssignmentResult.Success {
		t.Fatalf("expected assignment, got reason %q", resp.AssignmentResult.Reason)
	}
	if resp.AssignmentResult.CloserName != "Carlos" {
		t.Fatalf("expected closer Carlos, got %q", resp.AssignmentResult.CloserName)
	}
	if !resp.AppointmentResult.AppointmentScheduled {
		t.Fatal("expected a scheduling link")
	}
	if !strings.HasPrefix(resp.AppointmentResult.AppointmentLink, "https://agenda.example.com/agendamento/") {
		t.Fatalf("unexpected link %q", resp.AppointmentResult.AppointmentLink)
	}
	if len(trusted.updates) != 1 || trusted.updates[0].CloserID == nil {
		t.Fatal("expected qualification write with closer")
	}
}

func TestQualify_ConfiguredCloserUnavailable(t *testing.T) {
	closerID := uuid.New()
	intake := &fakeIntake{
		config: &repository.ScoringConfiguration{
			Name:                "producao",
			LowScoreThreshold:   60,
			HighSegmentCloserID: &closerID,
		},
		// closer nil: lookup reports not found (deactivated or removed)
	}
	trusted := &fakeTrusted{}
	svc := newTestService(intake, trusted)

	resp, err := svc.Qualify(context.Background(), hotLeadRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !resp.Success {
		t.Fatal("closer unavailability must not fail the qualification")
	}
	if resp.AssignmentResult.Success {
		t.Fatal("expected no assignment")
	}
	if resp.AssignmentResult.Reason != ReasonCloserUnavailable {
		t.Fatalf("expected reason %q, got %q", ReasonCloserUnavailable, resp.AssignmentResult.Reason)
	}
	if resp.AppointmentResult.AppointmentScheduled {
		t.Fatal("expected no scheduling link without a closer")
	}
}

func TestQualify_LowSegmentRoutesToLowCloser(t *testing.T) {
	lowCloserID := uuid.New()
	highCloserID := uuid.New()
	intake := &fakeIntake{
		config: &repository.ScoringConfiguration{
			Name:                "producao",
			PhoneScore:          10,
			EmailScore:          10,
			LowScoreThreshold:   60,
			HighSegmentCloserID: &highCloserID,
			LowSegmentCloserID:  &lowCloserID,
		},
		closer: &repository.Closer{ID: lowCloserID, Name: "Ana", IsActive: true},
	}
	svc := newTestService(intake, &fakeTrusted{})

	req := transport.QualificationRequest{
		Name:  "José Lima",
		Email: "jose@exemplo.com",
		Phone: "+5511988887777",
	}
	resp, err := svc.Qualify(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.ScoreResult.TotalScore != 20 {
		t.Fatalf("expected score 20, got %d", resp.ScoreResult.TotalScore)
	}
	if !resp.AssignmentResult.Success || resp.AssignmentResult.CloserName != "Ana" {
		t.Fatalf("expected low-segment assignment to Ana, got %+v", resp.AssignmentResult)
	}
}

func TestQualify_AssignmentWriteFailureReported(t *testing.T) {
	closerID := uuid.New()
	intake := &fakeIntake{
		config: &repository.ScoringConfiguration{
			Name:                "producao",
			PhoneScore:          10,
			EmailScore:          10,
			TemperatureHotScore: 60,
			LowScoreThreshold:   60,
			HighSegmentCloserID: &closerID,
		},
		closer: &repository.Closer{ID: closerID, Name: "Carlos", IsActive: true},
	}
	trusted := &fakeTrusted{updateErr: context.DeadlineExceeded}
	svc := newTestService(intake, trusted)

	resp, err := svc.Qualify(context.Background(), hotLeadRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !resp.Success {
		t.Fatal("a failed assignment write must not fail the qualification")
	}
	if resp.AssignmentResult.Success {
		t.Fatal("expected assignment reported as failed")
	}
	if resp.AssignmentResult.Reason != ReasonAssignmentWriteFailed {
		t.Fatalf("expected reason %q, got %q", ReasonAssignmentWriteFailed, resp.AssignmentResult.Reason)
	}
}

func TestQualify_LinkFailureDegradesGracefully(t *testing.T) {
	closerID := uuid.New()
	intake := &fakeIntake{
		config: &repository.ScoringConfiguration{
			Name:                "producao",
			PhoneScore:          10,
			EmailScore:          10,
			TemperatureHotScore: 60,
			LowScoreThreshold:   60,
			HighSegmentCloserID: &closerID,
		},
		closer: &repository.Closer{ID: closerID, Name: "Carlos", IsActive: true},
	}
	trusted := &fakeTrusted{linkErr: context.DeadlineExceeded}
	svc := newTestService(intake, trusted)

	resp, err := svc.Qualify(context.Background(), hotLeadRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !resp.AssignmentResult.Success {
		t.Fatal("link failure must not undo the assignment")
	}
	if resp.AppointmentResult.AppointmentScheduled {
		t.Fatal("expected no scheduling link")
	}
}

func TestQualify_PreferredDatetimeCreatesSingleUseLink(t *testing.T) {
	closerID := uuid.New()
	intake := &fakeIntake{
		config: &repository.ScoringConfiguration{
			Name:                "producao",
			PhoneScore:          10,
			EmailScore:          10,
			TemperatureHotScore: 60,
			LowScoreThreshold:   60,
			HighSegmentCloserID: &closerID,
		},
		closer: &repository.Closer{ID: closerID, Name: "Carlos", IsActive: true},
	}
	trusted := &fakeTrusted{}
	svc := newTestService(intake, trusted)

	preferred := time.Now().Add(48 * time.Hour)
	req := hotLeadRequest()
	req.PreferredDatetime = &preferred

	if _, err := svc.Qualify(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(trusted.links) != 1 {
		t.Fatalf("expected 1 link, got %d", len(trusted.links))
	}
	if !trusted.links[0].SingleUse {
		t.Fatal("expected single-use link for a preferred datetime")
	}
	if trusted.links[0].PreferredAt == nil {
		t.Fatal("expected preferred datetime stored on the link")
	}
}

func TestRequalify_UnknownLead(t *testing.T) {
	svc := newTestService(&fakeIntake{}, &fakeTrusted{})

	_, err := svc.Requalify(context.Background(), uuid.New(), uuid.New())
	if apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRequalify_OverwritesScore(t *testing.T) {
	tenantID := uuid.New()
	lead := &repository.Lead{
		ID:        uuid.New(),
		TenantID:  tenantID,
		Name:      "Maria Souza",
		Email:     "maria@empresa.com.br",
		Phone:     "+5511999998888",
		LeadScore: 12,
		Status:    "novo",
	}
	trusted := &fakeTrusted{lead: lead}
	svc := newTestService(&fakeIntake{}, trusted)

	resp, err := svc.Requalify(context.Background(), lead.ID, tenantID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.ScoreResult.TotalScore != 20 {
		t.Fatalf("expected recomputed score 20, got %d", resp.ScoreResult.TotalScore)
	}
	if len(trusted.updates) != 1 {
		t.Fatalf("expected 1 qualification write, got %d", len(trusted.updates))
	}
	if trusted.updates[0].LeadScore != 20 {
		t.Fatalf("expected stored score 20, got %d", trusted.updates[0].LeadScore)
	}
}
