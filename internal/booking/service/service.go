// Package service implements the public booking flow that consumes
// scheduling links provisioned during qualification.
package service

import (
	"context"
	"strings"
	"time"

	"qualifica_backend/internal/booking/repository"
	"qualifica_backend/internal/booking/transport"
	"qualifica_backend/internal/events"
	"qualifica_backend/internal/scheduler"
	"qualifica_backend/platform/apperr"
	"qualifica_backend/platform/config"
	"qualifica_backend/platform/logger"
)

// reminderLeadTime is how long before the appointment the reminder fires.
const reminderLeadTime = 24 * time.Hour

// BookingRepository is the data access surface the booking service needs.
type BookingRepository interface {
	GetLinkByToken(ctx context.Context, token string) (repository.Link, error)
	CreateAppointment(ctx context.Context, params repository.CreateAppointmentParams, consumeLink bool) (repository.Appointment, error)
}

// Service handles public booking-link reads and slot confirmations.
type Service struct {
	repo      BookingRepository
	reminders scheduler.ReminderScheduler
	cfg       config.BookingConfig
	bus       events.Bus
	log       *logger.Logger
}

func New(repo BookingRepository, reminders scheduler.ReminderScheduler, cfg config.BookingConfig, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, reminders: reminders, cfg: cfg, bus: bus, log: log}
}

// GetLink returns the public display data for a booking token.
func (s *Service) GetLink(ctx context.Context, token string) (*transport.LinkInfoResponse, error) {
	link, err := s.loadActiveLink(ctx, token)
	if err != nil {
		return nil, err
	}

	resp := &transport.LinkInfoResponse{
		CloserName:        link.CloserName,
		SingleUse:         link.SingleUse,
		PreferredDatetime: link.PreferredAt,
	}
	if link.Description != nil {
		resp.Description = *link.Description
	}
	return resp, nil
}

// Confirm books a slot through the link and deactivates single-use links.
func (s *Service) Confirm(ctx context.Context, token string, req transport.ConfirmBookingRequest) (*transport.ConfirmBookingResponse, error) {
	link, err := s.loadActiveLink(ctx, token)
	if err != nil {
		return nil, err
	}

	if !req.StartTime.After(time.Now()) {
		return nil, apperr.Validation("start_time must be in the future")
	}

	appt, err := s.repo.CreateAppointment(ctx, repository.CreateAppointmentParams{
		LinkID:    link.ID,
		LeadID:    link.LeadID,
		CloserID:  link.CloserID,
		TenantID:  link.TenantID,
		StartTime: req.StartTime.UTC(),
	}, link.SingleUse)
	if err != nil {
		if err == repository.ErrLinkNotFound {
			// Lost the race against a concurrent confirmation.
			return nil, apperr.Gone("this scheduling link has already been used")
		}
		s.log.DatabaseError("create appointment", err)
		return nil, apperr.Wrap(apperr.KindInternal, "failed to book appointment", err)
	}

	s.scheduleReminder(ctx, appt)

	if s.bus != nil {
		s.bus.Publish(ctx, events.AppointmentBooked{
			BaseEvent:     events.NewBaseEvent(),
			AppointmentID: appt.ID,
			LinkID:        link.ID,
			LeadID:        link.LeadID,
			CloserID:      link.CloserID,
			TenantID:      link.TenantID,
			StartTime:     appt.StartTime,
			CloserName:    link.CloserName,
			CloserEmail:   derefString(link.CloserEmail),
			LeadName:      link.LeadName,
		})
	}

	return &transport.ConfirmBookingResponse{
		AppointmentID: appt.ID,
		CloserName:    link.CloserName,
		StartTime:     appt.StartTime,
	}, nil
}

// BookingURL returns the public URL for a token, used by the QR endpoint.
func (s *Service) BookingURL(token string) string {
	return strings.TrimRight(s.cfg.GetBookingBaseURL(), "/") + "/agendamento/" + token
}

func (s *Service) loadActiveLink(ctx context.Context, token string) (repository.Link, error) {
	link, err := s.repo.GetLinkByToken(ctx, token)
	if err != nil {
		if err == repository.ErrLinkNotFound {
			return repository.Link{}, apperr.NotFound("scheduling link not found")
		}
		s.log.DatabaseError("get link by token", err)
		return repository.Link{}, apperr.Wrap(apperr.KindInternal, "failed to load scheduling link", err)
	}
	if !link.IsActive {
		return repository.Link{}, apperr.Gone("this scheduling link has already been used")
	}
	return link, nil
}

// scheduleReminder enqueues the appointment reminder; best-effort, bookings
// never fail because Redis is down.
func (s *Service) scheduleReminder(ctx context.Context, appt repository.Appointment) {
	if s.reminders == nil {
		return
	}

	runAt := appt.StartTime.Add(-reminderLeadTime)
	if runAt.Before(time.Now()) {
		return
	}

	err := s.reminders.ScheduleAppointmentReminder(ctx, scheduler.AppointmentReminderPayload{
		AppointmentID: appt.ID.String(),
		TenantID:      appt.TenantID.String(),
	}, runAt)
	if err != nil {
		s.log.Error("failed to schedule appointment reminder", "error", err, "appointmentId", appt.ID)
	}
}

func derefString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
