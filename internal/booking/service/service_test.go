package service

import (
	"context"
	"testing"
	"time"

	"qualifica_backend/internal/booking/repository"
	"qualifica_backend/internal/booking/transport"
	"qualifica_backend/internal/scheduler"
	"qualifica_backend/platform/apperr"
	"qualifica_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeRepo struct {
	link    *repository.Link
	linkErr error

	appointments []repository.CreateAppointmentParams
	consumed     []bool
	createErr    error
}

func (f *fakeRepo) GetLinkByToken(_ context.Context, token string) (repository.Link, error) {
	if f.linkErr != nil {
		return repository.Link{}, f.linkErr
	}
	if f.link == nil || f.link.Token != token {
		return repository.Link{}, repository.ErrLinkNotFound
	}
	return *f.link, nil
}

func (f *fakeRepo) CreateAppointment(_ context.Context, params repository.CreateAppointmentParams, consumeLink bool) (repository.Appointment, error) {
	if f.createErr != nil {
		return repository.Appointment{}, f.createErr
	}
	f.appointments = append(f.appointments, params)
	f.consumed = append(f.consumed, consumeLink)
	return repository.Appointment{
		ID:        uuid.New(),
		LinkID:    params.LinkID,
		LeadID:    params.LeadID,
		CloserID:  params.CloserID,
		TenantID:  params.TenantID,
		StartTime: params.StartTime,
		Status:    "agendado",
	}, nil
}

type fakeReminders struct {
	scheduled []scheduler.AppointmentReminderPayload
	runAts    []time.Time
}

func (f *fakeReminders) ScheduleAppointmentReminder(_ context.Context, payload scheduler.AppointmentReminderPayload, runAt time.Time) error {
	f.scheduled = append(f.scheduled, payload)
	f.runAts = append(f.runAts, runAt)
	return nil
}

type stubConfig struct{}

func (stubConfig) GetBookingBaseURL() string { return "https://agenda.example.com/" }

func activeLink() *repository.Link {
	return &repository.Link{
		ID:         uuid.New(),
		Token:      "abc123xyz",
		LeadID:     uuid.New(),
		CloserID:   uuid.New(),
		TenantID:   uuid.New(),
		SingleUse:  true,
		IsActive:   true,
		CloserName: "Carlos",
		LeadName:   "Maria Souza",
	}
}

func newTestService(repo *fakeRepo, reminders *fakeReminders) *Service {
	var sched scheduler.ReminderScheduler
	if reminders != nil {
		sched = reminders
	}
	return New(repo, sched, stubConfig{}, nil, logger.New("development"))
}

func TestGetLink_UnknownToken(t *testing.T) {
	svc := newTestService(&fakeRepo{}, nil)

	_, err := svc.GetLink(context.Background(), "nope")
	if apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestGetLink_ConsumedTokenReportedGone(t *testing.T) {
	link := activeLink()
	link.IsActive = false
	svc := newTestService(&fakeRepo{link: link}, nil)

	_, err := svc.GetLink(context.Background(), link.Token)
	if apperr.GetKind(err) != apperr.KindGone {
		t.Fatalf("expected gone, got %v", err)
	}
}

func TestConfirm_BooksAndConsumesSingleUseLink(t *testing.T) {
	link := activeLink()
	repo := &fakeRepo{link: link}
	svc := newTestService(repo, nil)

	start := time.Now().Add(72 * time.Hour)
	resp, err := svc.Confirm(context.Background(), link.Token, transport.ConfirmBookingRequest{StartTime: start})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.CloserName != "Carlos" {
		t.Fatalf("expected closer Carlos, got %q", resp.CloserName)
	}
	if len(repo.appointments) != 1 {
		t.Fatalf("expected 1 appointment, got %d", len(repo.appointments))
	}
	if !repo.consumed[0] {
		t.Fatal("expected single-use link to be consumed")
	}
}

func TestConfirm_ReusableLinkNotConsumed(t *testing.T) {
	link := activeLink()
	link.SingleUse = false
	repo := &fakeRepo{link: link}
	svc := newTestService(repo, nil)

	start := time.Now().Add(72 * time.Hour)
	if _, err := svc.Confirm(context.Background(), link.Token, transport.ConfirmBookingRequest{StartTime: start}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.consumed[0] {
		t.Fatal("reusable link must stay active after booking")
	}
}

func TestConfirm_PastStartTimeRejected(t *testing.T) {
	link := activeLink()
	repo := &fakeRepo{link: link}
	svc := newTestService(repo, nil)

	start := time.Now().Add(-time.Hour)
	_, err := svc.Confirm(context.Background(), link.Token, transport.ConfirmBookingRequest{StartTime: start})
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(repo.appointments) != 0 {
		t.Fatal("expected no appointment for a past slot")
	}
}

func TestConfirm_ConcurrentConsumptionReportedGone(t *testing.T) {
	link := activeLink()
	repo := &fakeRepo{link: link, createErr: repository.ErrLinkNotFound}
	svc := newTestService(repo, nil)

	start := time.Now().Add(72 * time.Hour)
	_, err := svc.Confirm(context.Background(), link.Token, transport.ConfirmBookingRequest{StartTime: start})
	if apperr.GetKind(err) != apperr.KindGone {
		t.Fatalf("expected gone, got %v", err)
	}
}

func TestConfirm_SchedulesReminderBeforeStart(t *testing.T) {
	link := activeLink()
	repo := &fakeRepo{link: link}
	reminders := &fakeReminders{}
	svc := newTestService(repo, reminders)

	start := time.Now().Add(72 * time.Hour)
	if _, err := svc.Confirm(context.Background(), link.Token, transport.ConfirmBookingRequest{StartTime: start}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(reminders.scheduled) != 1 {
		t.Fatalf("expected 1 reminder, got %d", len(reminders.scheduled))
	}
	expected := start.UTC().Add(-24 * time.Hour)
	if diff := reminders.runAts[0].Sub(expected); diff < -time.Second || diff > time.Second {
		t.Fatalf("reminder scheduled at %v, expected about %v", reminders.runAts[0], expected)
	}
}

func TestConfirm_NoReminderForImminentAppointment(t *testing.T) {
	link := activeLink()
	repo := &fakeRepo{link: link}
	reminders := &fakeReminders{}
	svc := newTestService(repo, reminders)

	start := time.Now().Add(2 * time.Hour)
	if _, err := svc.Confirm(context.Background(), link.Token, transport.ConfirmBookingRequest{StartTime: start}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(reminders.scheduled) != 0 {
		t.Fatal("expected no reminder inside the lead time window")
	}
}

func TestBookingURL(t *testing.T) {
	svc := newTestService(&fakeRepo{}, nil)

	got := svc.BookingURL("tok42")
	if got != "https://agenda.example.com/agendamento/tok42" {
		t.Fatalf("unexpected booking URL %q", got)
	}
}
