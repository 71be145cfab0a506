package notification

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

type baseEmailData struct {
	Title    string
	Heading  string
	CTALabel string
	CTAURL   string
}

type leadAssignedEmailData struct {
	baseEmailData
	CloserName string
	LeadName   string
	Score      int
}

type appointmentBookedEmailData struct {
	baseEmailData
	CloserName string
	LeadName   string
	StartsAt   string
}

type appointmentReminderEmailData struct {
	baseEmailData
	CloserName string
	LeadName   string
	StartsAt   string
}

func renderEmailTemplate(name string, data any) (string, error) {
	templates := []string{"templates/base.html", "templates/" + name}
	tmpl, err := template.New("base.html").ParseFS(templateFS, templates...)
	if err != nil {
		return "", fmt.Errorf("parse email template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "email", data); err != nil {
		return "", fmt.Errorf("execute email template %s: %w", name, err)
	}
	return buf.String(), nil
}
