// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"time"

	"qualifica_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
	InMemoryBus = events.InMemoryBus
)

// Re-export platform functions
var (
	NewBaseEvent   = events.NewBaseEvent
	NewInMemoryBus = events.NewInMemoryBus
)

// =============================================================================
// Qualification Domain Events
// =============================================================================

// LeadQualified is published after a qualification run finished, whether or
// not a closer could be assigned.
type LeadQualified struct {
	BaseEvent
	LeadID   uuid.UUID `json:"leadId"`
	TenantID uuid.UUID `json:"tenantId"`
	Score    int       `json:"score"`
	Segment  string    `json:"segment"`
}

func (e LeadQualified) EventName() string { return "qualification.lead.qualified" }

// LeadAssigned is published when a qualified lead was routed to a closer.
type LeadAssigned struct {
	BaseEvent
	LeadID      uuid.UUID `json:"leadId"`
	TenantID    uuid.UUID `json:"tenantId"`
	CloserID    uuid.UUID `json:"closerId"`
	CloserName  string    `json:"closerName"`
	CloserEmail string    `json:"closerEmail,omitempty"`
	LeadName    string    `json:"leadName"`
	Score       int       `json:"score"`
	BookingURL  string    `json:"bookingUrl,omitempty"`
}

func (e LeadAssigned) EventName() string { return "qualification.lead.assigned" }

// AppointmentLinkCreated is published when a scheduling link was provisioned.
type AppointmentLinkCreated struct {
	BaseEvent
	LinkID    uuid.UUID `json:"linkId"`
	LeadID    uuid.UUID `json:"leadId"`
	CloserID  uuid.UUID `json:"closerId"`
	TenantID  uuid.UUID `json:"tenantId"`
	Token     string    `json:"token"`
	SingleUse bool      `json:"singleUse"`
}

func (e AppointmentLinkCreated) EventName() string { return "qualification.link.created" }

// =============================================================================
// Booking Domain Events
// =============================================================================

// AppointmentBooked is published when a lead confirmed a slot through a
// scheduling link.
type AppointmentBooked struct {
	BaseEvent
	AppointmentID uuid.UUID `json:"appointmentId"`
	LinkID        uuid.UUID `json:"linkId"`
	LeadID        uuid.UUID `json:"leadId"`
	CloserID      uuid.UUID `json:"closerId"`
	TenantID      uuid.UUID `json:"tenantId"`
	StartTime     time.Time `json:"startTime"`
	CloserName    string    `json:"closerName"`
	CloserEmail   string    `json:"closerEmail,omitempty"`
	LeadName      string    `json:"leadName"`
}

func (e AppointmentBooked) EventName() string { return "booking.appointment.booked" }

// AppointmentReminderDue is published by the scheduler worker when a
// previously enqueued reminder task fires.
type AppointmentReminderDue struct {
	BaseEvent
	AppointmentID uuid.UUID `json:"appointmentId"`
	TenantID      uuid.UUID `json:"tenantId"`
	StartTime     time.Time `json:"startTime"`
	CloserName    string    `json:"closerName"`
	CloserEmail   string    `json:"closerEmail,omitempty"`
	LeadName      string    `json:"leadName"`
}

func (e AppointmentReminderDue) EventName() string { return "booking.appointment.reminder_due" }
