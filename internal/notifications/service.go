package notifications

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/callsheet/mentions-bot/internal/config"
	"github.com/callsheet/mentions-bot/internal/models"
	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// Service handles sending notifications via webhook and email channels
type Service struct {
	config *config.Config
	client *resty.Client
}

// Ensure Service implements NotificationInterface
var _ NotificationInterface = (*Service)(nil)

// WebhookMessage is the JSON payload posted to the configured webhook.
type WebhookMessage struct {
	Kind        string         `json:"kind"` // "report" or "alert"
	Title       string         `json:"title"`
	Text        string         `json:"text"`
	GeneratedAt time.Time      `json:"generated_at"`
	Matches     []WebhookMatch `json:"matches,omitempty"`
	Alert       *models.Alert  `json:"alert,omitempty"`
}

// WebhookMatch is the trimmed match view carried in webhook payloads.
type WebhookMatch struct {
	ContactName   string `json:"contact_name"`
	Category      string `json:"category"`
	DocumentTitle string `json:"document_title"`
	URL           string `json:"url"`
	MatchType     string `json:"match_type"`
	Score         int    `json:"score"`
}

// NewService creates a new notification service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
		client: resty.New().SetTimeout(30 * time.Second),
	}
}

// SendReport sends a scan report via every configured channel.
func (s *Service) SendReport(report *models.Report) error {
	var errors []string

	if s.config.WebhookURL != "" {
		if err := s.sendReportWebhook(report); err != nil {
			logrus.Errorf("Failed to send webhook notification: %v", err)
			errors = append(errors, fmt.Sprintf("webhook: %v", err))
		} else {
			logrus.Info("Successfully sent report to webhook")
		}
	}

	if s.config.NotificationEmail != "" {
		if err := s.sendReportEmail(report); err != nil {
			logrus.Errorf("Failed to send email notification: %v", err)
			errors = append(errors, fmt.Sprintf("email: %v", err))
		} else {
			logrus.Info("Successfully sent report via email")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("notification errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

// SendAlert sends an immediate notification, e.g. for a premiere credit.
func (s *Service) SendAlert(alert *models.Alert) error {
	var errors []string

	if s.config.WebhookURL != "" {
		message := &WebhookMessage{
			Kind:        "alert",
			Title:       alert.Title,
			Text:        alert.Message,
			GeneratedAt: alert.CreatedAt,
			Alert:       alert,
		}
		if err := s.postWebhook(message); err != nil {
			logrus.Errorf("Failed to send alert webhook: %v", err)
			errors = append(errors, fmt.Sprintf("webhook: %v", err))
		}
	}

	if s.config.NotificationEmail != "" {
		if err := s.sendAlertEmail(alert); err != nil {
			logrus.Errorf("Failed to send alert email: %v", err)
			errors = append(errors, fmt.Sprintf("email: %v", err))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("alert errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

func (s *Service) sendReportWebhook(report *models.Report) error {
	message := &WebhookMessage{
		Kind:        "report",
		Title:       fmt.Sprintf("Contact Mentions Report - %s", report.Period),
		Text:        fmt.Sprintf("Found %d contact mentions", report.TotalMatches),
		GeneratedAt: report.GeneratedAt,
	}
	for _, m := range report.Matches {
		message.Matches = append(message.Matches, WebhookMatch{
			ContactName:   m.ContactName,
			Category:      string(m.Category),
			DocumentTitle: m.DocumentTitle,
			URL:           m.URL,
			MatchType:     m.MatchType,
			Score:         m.Score,
		})
	}
	return s.postWebhook(message)
}

func (s *Service) postWebhook(message *WebhookMessage) error {
	resp, err := s.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(message).
		Post(s.config.WebhookURL)

	if err != nil {
		return fmt.Errorf("failed to post webhook: %w", err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return fmt.Errorf("webhook returned status %d: %s", resp.StatusCode(), string(resp.Body()))
	}
	return nil
}

func (s *Service) sendReportEmail(report *models.Report) error {
	subject := fmt.Sprintf("Contact Mentions Report - %s (%d mentions)",
		report.Period, report.TotalMatches)

	htmlBody, err := s.buildEmailHTML(report)
	if err != nil {
		return fmt.Errorf("failed to build email HTML: %w", err)
	}

	return s.sendEmail(subject, s.buildEmailText(report), htmlBody)
}

func (s *Service) sendAlertEmail(alert *models.Alert) error {
	var text strings.Builder
	text.WriteString(alert.Message + "\n")
	if alert.Match != nil {
		text.WriteString(fmt.Sprintf("\nContact: %s (%s)\n", alert.Match.ContactName, alert.Match.Category))
		text.WriteString(fmt.Sprintf("Production: %s\n", alert.Match.DocumentTitle))
		text.WriteString(fmt.Sprintf("Details: %s\n", alert.Match.URL))
	}
	return s.sendEmail(alert.Title, text.String(), "")
}

func (s *Service) sendEmail(subject, textBody, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.config.SMTPUsername)
	m.SetHeader("To", s.config.NotificationEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", textBody)
	if htmlBody != "" {
		m.AddAlternative("text/html", htmlBody)
	}

	d := gomail.NewDialer(s.config.SMTPHost, s.config.SMTPPort, s.config.SMTPUsername, s.config.SMTPPassword)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *Service) buildEmailHTML(report *models.Report) (string, error) {
	tmpl := `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Contact Mentions Report</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; }
        .header { background-color: #1a1a2e; color: white; padding: 20px; border-radius: 5px; }
        .summary { background-color: #f5f5f5; padding: 15px; margin: 20px 0; border-radius: 5px; }
        .match { border-left: 4px solid #1a1a2e; padding: 10px; margin: 10px 0; background-color: #fafafa; }
        .match-title { font-weight: bold; margin-bottom: 5px; }
        .match-meta { color: #666; font-size: 0.9em; }
        .exact { border-left-color: #107c10; }
        .nickname { border-left-color: #0078d4; }
        .fuzzy { border-left-color: #ca5010; }
        .partial { border-left-color: #605e5c; }
    </style>
</head>
<body>
    <div class="header">
        <h1>Contact Mentions Report</h1>
        <p>{{.Period}} report generated on {{.GeneratedAt.Format "January 2, 2006 at 3:04 PM UTC"}}</p>
    </div>

    <div class="summary">
        <h2>Summary</h2>
        <p><strong>Total Mentions:</strong> {{.TotalMatches}}</p>
    </div>

    {{if .Matches}}
    <h2>New Mentions</h2>
    {{range $index, $match := .Matches}}
        {{if lt $index 25}}
        <div class="match {{$match.MatchType}}">
            <div class="match-title">
                {{$match.ContactName}} ({{$match.Category}}) in
                <a href="{{$match.URL}}" target="_blank">{{$match.DocumentTitle}}</a>
            </div>
            <div class="match-meta">
                {{$match.Source}} | found in {{$match.Location}} | {{$match.MatchType}} match, score {{$match.Score}}
            </div>
            {{if $match.Excerpt}}
            <p>{{$match.Excerpt | truncate 200}}</p>
            {{end}}
        </div>
        {{end}}
    {{end}}
    {{end}}

    <hr>
    <p><small>This report was generated automatically by the Callsheet Mentions Bot.</small></p>
</body>
</html>
`

	t := template.New("email").Funcs(template.FuncMap{
		"truncate": func(length int, s string) string {
			if len(s) <= length {
				return s
			}
			return s[:length] + "..."
		},
	})

	t, err := t.Parse(tmpl)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, report); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func (s *Service) buildEmailText(report *models.Report) string {
	var text strings.Builder

	text.WriteString(fmt.Sprintf("Contact Mentions Report - %s\n", report.Period))
	text.WriteString(fmt.Sprintf("Generated: %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05 UTC")))

	text.WriteString("SUMMARY\n")
	text.WriteString("=======\n")
	text.WriteString(fmt.Sprintf("Total Mentions: %d\n", report.TotalMatches))

	if len(report.Matches) > 0 {
		text.WriteString("\nNEW MENTIONS\n")
		text.WriteString("============\n")

		limit := 25
		if len(report.Matches) < limit {
			limit = len(report.Matches)
		}

		for i := 0; i < limit; i++ {
			match := report.Matches[i]
			text.WriteString(fmt.Sprintf("\n%d. %s (%s)\n", i+1, match.ContactName, match.Category))
			text.WriteString(fmt.Sprintf("   In: %s\n", match.DocumentTitle))
			text.WriteString(fmt.Sprintf("   Source: %s | Location: %s | %s match, score %d\n",
				match.Source, match.Location, match.MatchType, match.Score))
			text.WriteString(fmt.Sprintf("   URL: %s\n", match.URL))
			if match.Excerpt != "" {
				excerpt := match.Excerpt
				if len(excerpt) > 200 {
					excerpt = excerpt[:200] + "..."
				}
				text.WriteString(fmt.Sprintf("   Excerpt: %s\n", excerpt))
			}
		}
	}

	text.WriteString("\n---\nThis report was generated automatically by the Callsheet Mentions Bot.\n")

	return text.String()
}
