package repository

import (
	"context"

	"github.com/google/uuid"
)

// IntakeRepository is the read/insert surface the orchestrator uses on the
// restricted connection: lead creation on behalf of an anonymous submitter
// plus read-only access to configurations and closers.
type IntakeRepository interface {
	CreateLead(ctx context.Context, params CreateLeadParams) (Lead, error)
	GetActiveConfiguration(ctx context.Context, tenantID uuid.UUID) (ScoringConfiguration, error)
	GetActiveCloser(ctx context.Context, id uuid.UUID, tenantID uuid.UUID) (Closer, error)
}

// TrustedRepository is the write surface the orchestrator uses on the
// trusted connection: mutating a lead the submitter does not own, inserting
// scheduling links on its behalf and replacing scoring configurations.
type TrustedRepository interface {
	GetLeadByID(ctx context.Context, id uuid.UUID, tenantID uuid.UUID) (Lead, error)
	UpdateLeadQualification(ctx context.Context, params UpdateLeadQualificationParams) error
	CreateAppointmentLink(ctx context.Context, params CreateAppointmentLinkParams) (AppointmentLink, error)
	CreateAndActivateConfiguration(ctx context.Context, params CreateConfigurationParams) (ScoringConfiguration, error)
}

// Compile-time checks that Repository satisfies both capability surfaces.
var (
	_ IntakeRepository  = (*Repository)(nil)
	_ TrustedRepository = (*Repository)(nil)
)
