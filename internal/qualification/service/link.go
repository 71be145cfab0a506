package service

import (
	"context"
	"crypto/rand"
	"strconv"
	"strings"
	"time"

	"qualifica_backend/internal/events"
	"qualifica_backend/internal/qualification/repository"
)

const tokenAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
const tokenRandomLength = 8

// provisionLink creates a scheduling link for the assigned closer and returns
// the public booking URL. Link provisioning is best-effort: any failure is
// logged and reported as "no link" without affecting the qualification.
//
// When the submitter supplied a preferred datetime the link is single-use and
// carries the requested slot; otherwise it is a reusable general booking link.
func (s *Service) provisionLink(ctx context.Context, lead repository.Lead, closer repository.Closer, preferredAt *time.Time) (string, bool) {
	token, err := generateLinkToken()
	if err != nil {
		s.log.Error("scheduling link token generation failed", "error", err, "leadId", lead.ID)
		return "", false
	}

	singleUse := preferredAt != nil
	description := "Link de agendamento geral"
	if singleUse {
		description = "Agendamento dedicado para " + lead.Name
	}

	link, err := s.trusted.CreateAppointmentLink(ctx, repository.CreateAppointmentLinkParams{
		Token:       token,
		LeadID:      lead.ID,
		CloserID:    closer.ID,
		TenantID:    lead.TenantID,
		SingleUse:   singleUse,
		Description: &description,
		PreferredAt: preferredAt,
	})
	if err != nil {
		s.log.DatabaseError("create appointment link", err)
		return "", false
	}

	if s.bus != nil {
		s.bus.Publish(ctx, events.AppointmentLinkCreated{
			BaseEvent: events.NewBaseEvent(),
			LinkID:    link.ID,
			LeadID:    lead.ID,
			CloserID:  closer.ID,
			TenantID:  lead.TenantID,
			Token:     link.Token,
			SingleUse: singleUse,
		})
	}

	return s.bookingURL(link.Token), true
}

func (s *Service) bookingURL(token string) string {
	return strings.TrimRight(s.cfg.GetBookingBaseURL(), "/") + "/agendamento/" + token
}

// generateLinkToken builds a token from a short random alphanumeric prefix
// and a base36 millisecond timestamp. Collisions are unlikely; uniqueness is
// ultimately enforced by the unique constraint on agendamento_links.token.
func generateLinkToken() (string, error) {
	buf := make([]byte, tokenRandomLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	random := make([]byte, tokenRandomLength)
	for i, b := range buf {
		random[i] = tokenAlphabet[int(b)%len(tokenAlphabet)]
	}
	return string(random) + strconv.FormatInt(time.Now().UnixMilli(), 36), nil
}
