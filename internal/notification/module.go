// Package notification subscribes to domain events and sends the
// corresponding operational email to closers. Domain modules publish events
// and never touch email providers or templates directly.
package notification

import (
	"context"
	"strings"

	"qualifica_backend/internal/events"
	"qualifica_backend/platform/config"
	"qualifica_backend/platform/logger"
)

// Module handles notification-related event subscriptions.
type Module struct {
	sender Sender
	log    *logger.Logger
}

// New creates the notification module. When email is disabled the module is
// still registered but every handler becomes a no-op.
func New(cfg config.EmailConfig, log *logger.Logger) *Module {
	var sender Sender
	if cfg.GetEmailEnabled() && cfg.GetSMTPHost() != "" {
		sender = NewSMTPSender(
			cfg.GetSMTPHost(),
			cfg.GetSMTPPort(),
			cfg.GetSMTPUsername(),
			cfg.GetSMTPPassword(),
			cfg.GetEmailFromAddress(),
			cfg.GetEmailFromName(),
		)
	} else {
		log.Info("email notifications disabled")
	}

	return &Module{sender: sender, log: log}
}

// RegisterHandlers subscribes to the domain events this module reacts to.
func (m *Module) RegisterHandlers(bus *events.InMemoryBus) {
	bus.Subscribe(events.LeadAssigned{}.EventName(), m)
	bus.Subscribe(events.AppointmentBooked{}.EventName(), m)
	bus.Subscribe(events.AppointmentReminderDue{}.EventName(), m)

	m.log.Info("notification module registered event handlers")
}

// Handle routes events to the appropriate handler method.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	if m.sender == nil {
		return nil
	}

	switch e := event.(type) {
	case events.LeadAssigned:
		return m.handleLeadAssigned(ctx, e)
	case events.AppointmentBooked:
		return m.handleAppointmentBooked(ctx, e)
	case events.AppointmentReminderDue:
		return m.handleAppointmentReminderDue(ctx, e)
	default:
		m.log.Warn("unhandled event type", "event", event.EventName())
		return nil
	}
}

func (m *Module) handleLeadAssigned(ctx context.Context, e events.LeadAssigned) error {
	if strings.TrimSpace(e.CloserEmail) == "" {
		m.log.Debug("closer has no email, skipping assignment notification", "closerId", e.CloserID)
		return nil
	}

	if err := m.sender.SendLeadAssignedEmail(ctx, e.CloserEmail, e.CloserName, e.LeadName, e.Score); err != nil {
		m.log.Error("failed to send lead assigned email",
			"leadId", e.LeadID,
			"closerId", e.CloserID,
			"error", err,
		)
		return err
	}
	m.log.Info("lead assigned email sent", "leadId", e.LeadID, "closerId", e.CloserID)
	return nil
}

func (m *Module) handleAppointmentBooked(ctx context.Context, e events.AppointmentBooked) error {
	if strings.TrimSpace(e.CloserEmail) == "" {
		m.log.Debug("closer has no email, skipping booking notification", "closerId", e.CloserID)
		return nil
	}

	if err := m.sender.SendAppointmentBookedEmail(ctx, e.CloserEmail, e.CloserName, e.LeadName, e.StartTime); err != nil {
		m.log.Error("failed to send appointment booked email",
			"appointmentId", e.AppointmentID,
			"closerId", e.CloserID,
			"error", err,
		)
		return err
	}
	m.log.Info("appointment booked email sent", "appointmentId", e.AppointmentID, "closerId", e.CloserID)
	return nil
}

func (m *Module) handleAppointmentReminderDue(ctx context.Context, e events.AppointmentReminderDue) error {
	if strings.TrimSpace(e.CloserEmail) == "" {
		return nil
	}

	if err := m.sender.SendAppointmentReminderEmail(ctx, e.CloserEmail, e.CloserName, e.LeadName, e.StartTime); err != nil {
		m.log.Error("failed to send appointment reminder email",
			"appointmentId", e.AppointmentID,
			"error", err,
		)
		return err
	}
	m.log.Info("appointment reminder email sent", "appointmentId", e.AppointmentID)
	return nil
}
