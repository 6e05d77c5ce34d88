// Package mail implements the Mailer domain service over SMTP.
package mail

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"log/slog"

	gomail "github.com/wneessen/go-mail"

	"orderdesk/config"
	"orderdesk/internal/domain/service"

	"github.com/pkg/errors"
)

//go:embed templates/*.html
var templateFS embed.FS

// smtpMailer sends transactional mail through a configured SMTP relay.
type smtpMailer struct {
	cfg       *config.MailConfig
	logger    *slog.Logger
	templates *template.Template
}

// NewSMTPMailer is the constructor for smtpMailer.
func NewSMTPMailer(cfg *config.Config, logger *slog.Logger) (service.Mailer, error) {
	if cfg.Mail == nil {
		return nil, errors.New("mail configuration must be provided")
	}

	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse mail templates")
	}

	return &smtpMailer{
		cfg:       cfg.Mail,
		logger:    logger,
		templates: templates,
	}, nil
}

// SendPasswordReset mails the reset link to the account's address.
func (m *smtpMailer) SendPasswordReset(ctx context.Context, to, displayName, resetURL string) error {
	var body bytes.Buffer
	data := struct {
		DisplayName string
		ResetURL    string
	}{
		DisplayName: displayName,
		ResetURL:    resetURL,
	}
	if err := m.templates.ExecuteTemplate(&body, "password_reset.html", data); err != nil {
		return errors.Wrap(err, "failed to render reset mail")
	}

	msg := gomail.NewMsg()
	if err := msg.FromFormat(m.cfg.DisplayName, m.cfg.Email); err != nil {
		return errors.Wrap(err, "invalid sender address")
	}
	if err := msg.To(to); err != nil {
		return errors.Wrap(err, "invalid recipient address")
	}
	msg.Subject("重設密碼")
	msg.SetBodyString(gomail.TypeTextHTML, body.String())

	client, err := gomail.NewClient(m.cfg.Host,
		gomail.WithPort(m.cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(m.cfg.Email),
		gomail.WithPassword(m.cfg.Password),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	)
	if err != nil {
		return errors.Wrap(err, "failed to create smtp client")
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return errors.Wrap(err, "failed to send reset mail")
	}

	m.logger.Info("password reset mail sent", slog.String("to", to))

	return nil
}
