package service

import (
	"context"
	"encoding/base64"
	"learning_center_backend/internal/config"
	"learning_center_backend/pkg/logger"
	"learning_center_backend/pkg/monitoring"
	"net/http"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

type MailMessage struct {
	To          []string
	Subject     string
	HTML        string
	Attachments []Attachment
}

// Mailer delivers one message. Delivery is synchronous so that a failed
// send surfaces to the caller.
type Mailer interface {
	Send(ctx context.Context, msg *MailMessage) error
}

// NewMailer picks the transport named by mail.provider.
func NewMailer(cfg *config.MailConfig) Mailer {
	if cfg.Provider == "sendgrid" && cfg.SendgridAPIKey != "" {
		return NewSendgridMailer(cfg)
	}
	return &ConsoleMailer{From: cfg.From}
}

type SendgridMailer struct {
	client *sendgrid.Client
	from   *sgmail.Email
}

func NewSendgridMailer(cfg *config.MailConfig) *SendgridMailer {
	name := cfg.FromName
	if name == "" {
		name = "Phonetics Learning Centre"
	}
	return &SendgridMailer{
		client: sendgrid.NewSendClient(cfg.SendgridAPIKey),
		from:   sgmail.NewEmail(name, cfg.From),
	}
}

func (m *SendgridMailer) prepare(msg *MailMessage) *sgmail.SGMailV3 {
	p := sgmail.NewPersonalization()
	p.Subject = msg.Subject
	for _, to := range msg.To {
		p.AddTos(sgmail.NewEmail("", to))
	}

	mail := sgmail.NewV3Mail()
	mail.SetFrom(m.from)
	mail.AddPersonalizations(p)
	mail.AddContent(sgmail.NewContent("text/html", msg.HTML))

	for _, at := range msg.Attachments {
		mail.AddAttachment(&sgmail.Attachment{
			Content:     base64.StdEncoding.EncodeToString(at.Content),
			Type:        at.ContentType,
			Filename:    at.Filename,
			Disposition: "attachment",
		})
	}
	return mail
}

func (m *SendgridMailer) Send(ctx context.Context, msg *MailMessage) error {
	res, err := m.client.SendWithContext(ctx, m.prepare(msg))
	if err != nil {
		return errors.Wrap(err, "sendgrid request")
	}
	if res.StatusCode >= http.StatusBadRequest {
		return errors.Errorf("sendgrid responded %d: %s", res.StatusCode, res.Body)
	}
	return nil
}

// ConsoleMailer writes messages to the log instead of sending them.
type ConsoleMailer struct {
	From string
}

func (m *ConsoleMailer) Send(_ context.Context, msg *MailMessage) error {
	names := make([]string, 0, len(msg.Attachments))
	for _, at := range msg.Attachments {
		names = append(names, at.Filename)
	}
	logger.Log.Info("mail",
		zap.String("from", m.From),
		zap.String("to", strings.Join(msg.To, ", ")),
		zap.String("subject", msg.Subject),
		zap.Strings("attachments", names),
		zap.String("html", msg.HTML),
	)
	return nil
}

// MemoryMailer keeps every message in memory. Tests read Sent.
type MemoryMailer struct {
	mu   sync.Mutex
	Sent []MailMessage
	Err  error
}

func (m *MemoryMailer) Send(_ context.Context, msg *MailMessage) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, *msg)
	return nil
}

func (m *MemoryMailer) Last() *MailMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Sent) == 0 {
		return nil
	}
	msg := m.Sent[len(m.Sent)-1]
	return &msg
}

// sendTemplate renders a mail template and delivers it to a single recipient.
func sendTemplate(ctx context.Context, mailer Mailer, to, subject, name string, data interface{}) error {
	html, err := renderMail(name, data)
	if err != nil {
		return errors.Wrapf(err, "render %s mail", name)
	}
	return deliver(ctx, mailer, &MailMessage{To: []string{to}, Subject: subject, HTML: html})
}

func deliver(ctx context.Context, mailer Mailer, msg *MailMessage) error {
	if err := mailer.Send(ctx, msg); err != nil {
		monitoring.MailsSent.WithLabelValues("failed").Inc()
		logger.Log.Error("mail delivery failed", zap.String("subject", msg.Subject), zap.Error(err))
		return err
	}
	monitoring.MailsSent.WithLabelValues("sent").Inc()
	return nil
}
