package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"

	"github.com/resend/resend-go/v3"

	"notice-board/internal/config"
	"notice-board/internal/domain"
)

type Service interface {
	SendNoticePublished(ctx context.Context, to []string, notice *domain.Notice) error
	SendNoticeUpdated(ctx context.Context, to []string, notice *domain.Notice) error
	SendReminderConfirmation(ctx context.Context, to string, notice *domain.Notice) error
}

type service struct {
	client *resend.Client
	config *config.Config
}

func NewService(cfg *config.Config) Service {
	return &service{
		client: resend.NewClient(cfg.ResendAPIKey),
		config: cfg,
	}
}

var (
	publishedTmpl = template.Must(template.New("published").Parse(`
		<h2>New Notice Posted</h2>
		<p><strong>Category:</strong> {{.Category}}</p>
		<p>{{.Content}}</p>
		<p>Login to the notice board to view more details.</p>`))

	updatedTmpl = template.Must(template.New("updated").Parse(`
		<p>The notice you are following has been updated.</p>
		<h3>{{.Title}}</h3>
		<p>{{.Content}}</p>`))

	reminderTmpl = template.Must(template.New("reminder").Parse(`
		<h2>Reminder Set Successfully</h2>
		<p>You have set a reminder for the following notice:</p>
		<p><strong>Title:</strong> {{.Title}}</p>
		<p><strong>Category:</strong> {{.Category}}</p>
		<hr />
		<p>{{.Content}}</p>
		<p>We will notify you of any updates to this notice.</p>`))
)

func (s *service) sendEmail(to []string, subject string, tmpl *template.Template, notice *domain.Notice) error {
	if len(to) == 0 {
		return nil
	}

	if s.config.ResendAPIKey == "" {
		log.Printf("Email credentials not configured, skipping send: %q to %d recipient(s)", subject, len(to))
		return nil
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, notice); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("University Notice Board <%s>", s.config.FromEmail),
		To:      to,
		Html:    body.String(),
		Subject: subject,
	}

	_, err := s.client.Emails.Send(params)
	return err
}

func (s *service) SendNoticePublished(ctx context.Context, to []string, notice *domain.Notice) error {
	return s.sendEmail(to, fmt.Sprintf("New Notice: %s", notice.Title), publishedTmpl, notice)
}

func (s *service) SendNoticeUpdated(ctx context.Context, to []string, notice *domain.Notice) error {
	return s.sendEmail(to, fmt.Sprintf("Notice Updated: %s", notice.Title), updatedTmpl, notice)
}

func (s *service) SendReminderConfirmation(ctx context.Context, to string, notice *domain.Notice) error {
	return s.sendEmail([]string{to}, fmt.Sprintf("Reminder Set: %s", notice.Title), reminderTmpl, notice)
}
