package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

type baseEmailData struct {
	Title      string
	Heading    string
	Subheading string
}

type hotLeadEmailData struct {
	baseEmailData
	HotLeadAlert
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

// RenderHotLeadAlert renders the HTML body of a hot lead alert.
func RenderHotLeadAlert(alert HotLeadAlert) (string, error) {
	return renderEmailTemplate("hot_lead.html", hotLeadEmailData{
		baseEmailData: baseEmailData{
			Title:      "Hot lead",
			Heading:    alert.Name + " is ready for sales",
			Subheading: alert.Explanation,
		},
		HotLeadAlert: alert,
	})
}

// HotLeadSubject is the subject line for a hot lead alert.
func HotLeadSubject(alert HotLeadAlert) string {
	return fmt.Sprintf(subjectHotLeadFmt, alert.Name, alert.Score)
}
