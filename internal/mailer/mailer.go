// Package mailer sends account confirmation email. Delivery failures are
// logged and never surfaced to the auth workflow.
package mailer

import (
	"bytes"
	"context"
	"crypto/tls"
	"embed"
	"fmt"
	"html/template"
	"net"
	"net/smtp"
	"time"

	"go.uber.org/zap"

	"github.com/avolodin/contacthub/internal/token"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Notifier delivers a confirmation message for the given address.
type Notifier interface {
	// SendConfirmation renders and sends the confirmation mail. The message
	// embeds a link of the form {baseURL}/auth/confirmed_email/{token}.
	SendConfirmation(ctx context.Context, email, name, baseURL string) error
}

// SMTPConfig holds delivery settings for the SMTP notifier.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// authEnabled reports whether AUTH should be attempted. Servers that relay
// without credentials often do not advertise AUTH at all.
func (c SMTPConfig) authEnabled() bool {
	return c.Username != ""
}

// SMTP is a Notifier speaking SMTP over implicit TLS.
type SMTP struct {
	cfg      SMTPConfig
	codec    *token.Codec
	tokenTTL time.Duration
	log      *zap.Logger
	tmpl     *template.Template
}

// NewSMTP constructs the SMTP notifier. tokenTTL bounds the confirmation
// token embedded in the mail.
func NewSMTP(cfg SMTPConfig, codec *token.Codec, tokenTTL time.Duration, log *zap.Logger) (*SMTP, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &SMTP{cfg: cfg, codec: codec, tokenTTL: tokenTTL, log: log, tmpl: tmpl}, nil
}

type confirmationData struct {
	Name    string
	BaseURL string
	Token   string
}

// SendConfirmation issues an email-confirmation token, renders the template
// and delivers it. Errors are logged here; callers run this fire-and-forget.
func (m *SMTP) SendConfirmation(ctx context.Context, email, name, baseURL string) error {
	tok, _, err := m.codec.Issue(email, token.PurposeEmailConfirm, m.tokenTTL)
	if err != nil {
		m.log.Error("issue confirmation token", zap.Error(err))
		return err
	}

	body, err := m.renderConfirmation(name, baseURL, tok)
	if err != nil {
		m.log.Error("render confirmation mail", zap.Error(err))
		return err
	}

	msg := bytes.Buffer{}
	fmt.Fprintf(&msg, "From: %s <%s>\r\n", m.cfg.FromName, m.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", email)
	msg.WriteString("Subject: Confirm your email\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.Write(body)

	if err := m.deliver(ctx, email, msg.Bytes()); err != nil {
		m.log.Error("send confirmation mail", zap.String("to", email), zap.Error(err))
		return err
	}
	m.log.Info("confirmation mail sent", zap.String("to", email))
	return nil
}

// renderConfirmation produces the HTML body with the confirmation link.
func (m *SMTP) renderConfirmation(name, baseURL, tok string) ([]byte, error) {
	var body bytes.Buffer
	err := m.tmpl.ExecuteTemplate(&body, "confirmation.html", confirmationData{
		Name:    name,
		BaseURL: baseURL,
		Token:   tok,
	})
	return body.Bytes(), err
}

// deliver dials the SMTP server over implicit TLS and submits the message.
func (m *SMTP) deliver(ctx context.Context, to string, msg []byte) error {
	addr := net.JoinHostPort(m.cfg.Host, fmt.Sprint(m.cfg.Port))
	d := tls.Dialer{Config: &tls.Config{ServerName: m.cfg.Host}}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	client, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		conn.Close()
		return err
	}
	defer client.Close()

	if m.cfg.authEnabled() {
		auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
		if err := client.Auth(auth); err != nil {
			return err
		}
	}
	if err := client.Mail(m.cfg.From); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}
