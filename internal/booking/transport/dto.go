// Package transport defines the public booking API contracts.
package transport

import (
	"time"

	"github.com/google/uuid"
)

// LinkInfoResponse describes a scheduling link to the public booking page.
type LinkInfoResponse struct {
	CloserName        string     `json:"closer_name"`
	Description       string     `json:"description,omitempty"`
	SingleUse         bool       `json:"single_use"`
	PreferredDatetime *time.Time `json:"preferred_datetime,omitempty"`
}

// ConfirmBookingRequest books a slot through a link.
type ConfirmBookingRequest struct {
	StartTime time.Time `json:"start_time" validate:"required"`
}

// ConfirmBookingResponse reports the booked appointment.
type ConfirmBookingResponse struct {
	AppointmentID uuid.UUID `json:"appointment_id"`
	CloserName    string    `json:"closer_name"`
	StartTime     time.Time `json:"start_time"`
}
