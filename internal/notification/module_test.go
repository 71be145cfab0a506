package notification

import (
	"context"
	"testing"
	"time"

	"qualifica_backend/internal/events"
	"qualifica_backend/platform/logger"

	"github.com/google/uuid"
)

type testSender struct {
	leadAssignedCalls        int
	appointmentBookedCalls   int
	appointmentReminderCalls int

	lastTo         string
	lastCloserName string
	lastLeadName   string
	lastScore      int
	lastStartTime  time.Time
}

func (s *testSender) SendLeadAssignedEmail(_ context.Context, to, closerName, leadName string, score int) error {
	s.leadAssignedCalls++
	s.lastTo = to
	s.lastCloserName = closerName
	s.lastLeadName = leadName
	s.lastScore = score
	return nil
}

func (s *testSender) SendAppointmentBookedEmail(_ context.Context, to, closerName, leadName string, startTime time.Time) error {
	s.appointmentBookedCalls++
	s.lastTo = to
	s.lastCloserName = closerName
	s.lastLeadName = leadName
	s.lastStartTime = startTime
	return nil
}

func (s *testSender) SendAppointmentReminderEmail(_ context.Context, to, closerName, leadName string, startTime time.Time) error {
	s.appointmentReminderCalls++
	s.lastTo = to
	s.lastStartTime = startTime
	return nil
}

func TestHandleLeadAssignedSendsEmailToCloser(t *testing.T) {
	sender := &testSender{}
	m := &Module{sender: sender, log: logger.New("development")}

	err := m.Handle(context.Background(), events.LeadAssigned{
		LeadID:      uuid.New(),
		TenantID:    uuid.New(),
		CloserID:    uuid.New(),
		CloserEmail: "carlos@example.com",
		CloserName:  "Carlos",
		LeadName:    "Maria Souza",
		Score:       85,
	})
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if sender.leadAssignedCalls != 1 {
		t.Fatalf("expected 1 lead assigned email, got %d", sender.leadAssignedCalls)
	}
	if sender.lastTo != "carlos@example.com" {
		t.Fatalf("unexpected recipient: %q", sender.lastTo)
	}
	if sender.lastScore != 85 {
		t.Fatalf("unexpected score in email: %d", sender.lastScore)
	}
}

func TestHandleLeadAssignedSkipsCloserWithoutEmail(t *testing.T) {
	sender := &testSender{}
	m := &Module{sender: sender, log: logger.New("development")}

	err := m.Handle(context.Background(), events.LeadAssigned{
		LeadID:      uuid.New(),
		TenantID:    uuid.New(),
		CloserID:    uuid.New(),
		CloserEmail: "  ",
		CloserName:  "Carlos",
		LeadName:    "Maria Souza",
		Score:       85,
	})
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if sender.leadAssignedCalls != 0 {
		t.Fatalf("expected no email for closer without address, got %d calls", sender.leadAssignedCalls)
	}
}

func TestHandleAppointmentReminderDue(t *testing.T) {
	sender := &testSender{}
	m := &Module{sender: sender, log: logger.New("development")}
	start := time.Date(2026, 4, 10, 14, 0, 0, 0, time.UTC)

	err := m.Handle(context.Background(), events.AppointmentReminderDue{
		AppointmentID: uuid.New(),
		TenantID:      uuid.New(),
		StartTime:     start,
		CloserName:    "Ana",
		CloserEmail:   "ana@example.com",
		LeadName:      "João Lima",
	})
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if sender.appointmentReminderCalls != 1 {
		t.Fatalf("expected 1 reminder email, got %d", sender.appointmentReminderCalls)
	}
	if !sender.lastStartTime.Equal(start) {
		t.Fatalf("unexpected start time: %v", sender.lastStartTime)
	}
}

func TestHandleWithoutSenderIsNoOp(t *testing.T) {
	m := &Module{sender: nil, log: logger.New("development")}

	err := m.Handle(context.Background(), events.AppointmentBooked{
		AppointmentID: uuid.New(),
		CloserEmail:   "ana@example.com",
	})
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
}
