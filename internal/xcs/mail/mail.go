// Package mail sends transactional email. Delivery is best effort: callers
// log failures and carry on.
package mail

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"time"

	"gopkg.in/gomail.v2"
)

// Template names a message layout.
type Template string

const (
	TemplateVerifyEmail            Template = "verify-email"
	TemplateOrganizationInvitation Template = "organization-invitation"
)

var ErrUnknownTemplate = errors.New("mail: unknown template")

// Message is one email to send. Data feeds the template.
type Message struct {
	To       string
	Template Template
	Data     map[string]string
}

// Dispatcher delivers messages.
type Dispatcher interface {
	Send(ctx context.Context, msg Message) error
}

type layout struct {
	subject string
	body    *template.Template
}

var layouts = map[Template]layout{
	TemplateVerifyEmail: {
		subject: "Verify your email address",
		body: template.Must(template.New("verify").Parse(
			`<p>Hi {{.username}},</p>
<p>Your verification code is <strong>{{.code}}</strong>. It expires in {{.expires}}.</p>
<p>If you did not request this, you can ignore this email.</p>`)),
	},
	TemplateOrganizationInvitation: {
		subject: "You have been invited to an organization",
		body: template.Must(template.New("invitation").Parse(
			`<p>Hi {{.username}},</p>
<p><strong>{{.sender}}</strong> invited you to join <strong>{{.organization}}</strong> as {{.role}}.</p>
<p>Open your notifications to accept or decline.</p>`)),
	},
}

// Render returns the subject and HTML body of msg.
func Render(msg Message) (subject, body string, err error) {
	l, ok := layouts[msg.Template]
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrUnknownTemplate, msg.Template)
	}
	var buf bytes.Buffer
	if err := l.body.Execute(&buf, msg.Data); err != nil {
		return "", "", err
	}
	return l.subject, buf.String(), nil
}

// SMTPConfig configures SMTPDispatcher.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
	Timeout  time.Duration
}

// SMTPDispatcher sends through an SMTP relay.
type SMTPDispatcher struct {
	cfg    SMTPConfig
	dialer *gomail.Dialer
}

func NewSMTPDispatcher(cfg SMTPConfig) *SMTPDispatcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &SMTPDispatcher{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

func (d *SMTPDispatcher) Send(ctx context.Context, msg Message) error {
	subject, body, err := Render(msg)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(d.cfg.From, d.cfg.FromName))
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	// gomail has no context support; bound the dial and send instead.
	ctx, cancel := context.WithTimeout(ctx, d.cfg.Timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- d.dialer.DialAndSend(m) }()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("mail: send %s: %w", msg.Template, err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("mail: send %s: %w", msg.Template, ctx.Err())
	}
}

// LogDispatcher only logs messages. Used when no SMTP relay is configured.
type LogDispatcher struct {
	Logger *slog.Logger
}

func (d LogDispatcher) Send(ctx context.Context, msg Message) error {
	if _, _, err := Render(msg); err != nil {
		return err
	}
	if d.Logger != nil {
		d.Logger.Info("email not sent, no SMTP relay configured",
			slog.String("to", msg.To),
			slog.String("template", string(msg.Template)),
		)
	}
	return nil
}

var (
	_ Dispatcher = (*SMTPDispatcher)(nil)
	_ Dispatcher = LogDispatcher{}
)
