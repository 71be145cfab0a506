package notification

import (
	"context"
	"fmt"
	"net"
	"time"

	gomail "github.com/wneessen/go-mail"
)

// Sender delivers operational email to closers.
type Sender interface {
	SendLeadAssignedEmail(ctx context.Context, toEmail, closerName, leadName string, score int) error
	SendAppointmentBookedEmail(ctx context.Context, toEmail, closerName, leadName string, startTime time.Time) error
	SendAppointmentReminderEmail(ctx context.Context, toEmail, closerName, leadName string, startTime time.Time) error
}

// SMTPSender implements Sender over a direct SMTP connection via go-mail.
type SMTPSender struct {
	host      string
	port      int
	username  string
	password  string
	fromName  string
	fromEmail string
}

func NewSMTPSender(host string, port int, username, password, fromEmail, fromName string) *SMTPSender {
	return &SMTPSender{
		host:      host,
		port:      port,
		username:  username,
		password:  password,
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

func (s *SMTPSender) send(ctx context.Context, toEmail, subject, htmlContent string) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}

func (s *SMTPSender) SendLeadAssignedEmail(ctx context.Context, toEmail, closerName, leadName string, score int) error {
	content, err := renderEmailTemplate("lead_assigned.html", leadAssignedEmailData{
		baseEmailData: baseEmailData{
			Title:   subjectLeadAssigned,
			Heading: "Novo lead qualificado",
		},
		CloserName: closerName,
		LeadName:   leadName,
		Score:      score,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subjectLeadAssigned, content)
}

func (s *SMTPSender) SendAppointmentBookedEmail(ctx context.Context, toEmail, closerName, leadName string, startTime time.Time) error {
	content, err := renderEmailTemplate("appointment_booked.html", appointmentBookedEmailData{
		baseEmailData: baseEmailData{
			Title:   subjectAppointmentBooked,
			Heading: "Agendamento confirmado",
		},
		CloserName: closerName,
		LeadName:   leadName,
		StartsAt:   formatStartTime(startTime),
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subjectAppointmentBooked, content)
}

func (s *SMTPSender) SendAppointmentReminderEmail(ctx context.Context, toEmail, closerName, leadName string, startTime time.Time) error {
	content, err := renderEmailTemplate("appointment_reminder.html", appointmentReminderEmailData{
		baseEmailData: baseEmailData{
			Title:   subjectAppointmentReminder,
			Heading: "Lembrete de reunião",
		},
		CloserName: closerName,
		LeadName:   leadName,
		StartsAt:   formatStartTime(startTime),
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subjectAppointmentReminder, content)
}

func formatStartTime(t time.Time) string {
	return t.Format("02/01/2006 15:04")
}
