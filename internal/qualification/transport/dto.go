// Package transport defines the request/response contracts of the
// qualification HTTP surface.
package transport

import (
	"time"

	"github.com/google/uuid"
)

// QualificationRequest is the public intake payload. Name, email and phone
// are required; everything else only influences scoring.
type QualificationRequest struct {
	Name              string     `json:"name" validate:"required,min=2,max=200"`
	Email             string     `json:"email" validate:"required,email,max=320"`
	Phone             string     `json:"phone" validate:"required,min=8,max=25"`
	Company           string     `json:"company" validate:"omitempty,max=200"`
	Role              string     `json:"role" validate:"omitempty,max=120"`
	Temperature       string     `json:"temperature_self_report" validate:"omitempty,max=40"`
	InterestLevel     string     `json:"interest_level" validate:"omitempty,max=40"`
	BudgetAvailable   float64    `json:"budget_available" validate:"omitempty,gte=0"`
	IsDecisionMaker   bool       `json:"is_decision_maker"`
	PainPoint         string     `json:"stated_pain_point" validate:"omitempty,max=2000"`
	PreferredDatetime *time.Time `json:"preferred_datetime"`
	TenantID          string     `json:"tenant_id" validate:"omitempty,uuid"`
}

// ScoreDetail is one per-field contribution to the total score.
type ScoreDetail struct {
	Field string `json:"field"`
	Score int    `json:"score"`
}

// ScoreResult reports the evaluator outcome. ConfigUsed names the rule set
// that was applied ("default" when no configuration is active).
type ScoreResult struct {
	TotalScore int           `json:"total_score"`
	Threshold  int           `json:"threshold"`
	ConfigUsed string        `json:"config_used"`
	Details    []ScoreDetail `json:"details"`
}

// AssignmentResult reports the routing outcome. Reason carries a stable
// machine-readable code when Success is false.
type AssignmentResult struct {
	Success    bool       `json:"success"`
	CloserID   *uuid.UUID `json:"closer_id,omitempty"`
	CloserName string     `json:"closer_name,omitempty"`
	Reason     string     `json:"reason,omitempty"`
}

// AppointmentResult reports the scheduling-link outcome.
type AppointmentResult struct {
	AppointmentScheduled bool   `json:"appointment_scheduled"`
	AppointmentLink      string `json:"appointment_link,omitempty"`
}

// QualificationResponse is the structured result of one qualification run.
type QualificationResponse struct {
	Success           bool              `json:"success"`
	LeadID            uuid.UUID         `json:"lead_id"`
	ScoreResult       ScoreResult       `json:"score_result"`
	AssignmentResult  AssignmentResult  `json:"assignment_result"`
	AppointmentResult AppointmentResult `json:"appointment_result"`
}
