package notification

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"path/filepath"

	"loyalty-program/pkg/utils"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Mailer sends templated HTML email over SMTP.
type Mailer struct {
	config    utils.MailConfig
	templates *template.Template
	dialer    *gomail.Dialer
	log       *zap.Logger
}

func NewMailer(config utils.MailConfig, log *zap.Logger) (*Mailer, error) {
	templates, err := template.ParseGlob(filepath.Join(config.TemplateDir, "email", "*.html"))
	if err != nil {
		return nil, fmt.Errorf("parse email templates: %w", err)
	}

	return &Mailer{
		config:    config,
		templates: templates,
		dialer:    gomail.NewDialer(config.Host, config.Port, config.User, config.Password),
		log:       log.With(zap.String("component", "mailer")),
	}, nil
}

func (m *Mailer) Send(ctx context.Context, tpl string, to Recipient, subject string, vars map[string]any) error {
	var body bytes.Buffer
	if err := m.templates.ExecuteTemplate(&body, tpl+".html", vars); err != nil {
		m.log.Error("Failed to render email template",
			zap.Error(err),
			zap.String("template", tpl),
		)
		return fmt.Errorf("render template %s: %w", tpl, err)
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.config.From, m.config.FromName)
	msg.SetAddressHeader("To", to.Address, to.Name)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body.String())

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.log.Error("Failed to send email",
			zap.Error(err),
			zap.String("template", tpl),
			zap.String("to", to.Address),
		)
		return &DeliveryError{Provider: "smtp", Err: err}
	}

	m.log.Info("Email sent",
		zap.String("template", tpl),
		zap.String("to", to.Address),
		zap.String("subject", subject),
	)

	return nil
}
