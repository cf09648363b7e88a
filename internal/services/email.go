package services

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/Senthuron/Gym-Backend/internal/config"
	"github.com/Senthuron/Gym-Backend/pkg/logger"
)

// EmailMessage is one outbound mail.
type EmailMessage struct {
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Body    string   `json:"body"` // text/html
}

type EmailService struct {
	cfg   *config.EmailConfig
	queue TaskQueue
}

func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// SetQueue routes outbound mail through the task queue instead of sending
// inline. Optional; without a queue every send is synchronous.
func (s *EmailService) SetQueue(q TaskQueue) {
	s.queue = q
}

func (s *EmailService) Enabled() bool {
	return s.cfg.Enabled && s.cfg.Host != ""
}

func (s *EmailService) SendPasswordResetCode(ctx context.Context, to, code string) error {
	var sb strings.Builder
	sb.WriteString("<html><body style=\"font-family: Arial, sans-serif;\">")
	sb.WriteString("<h2>Password Reset</h2>")
	sb.WriteString("<p>Use this code to reset your password. It expires in 10 minutes.</p>")
	sb.WriteString(fmt.Sprintf("<p style=\"font-size: 28px; letter-spacing: 6px; font-weight: bold;\">%s</p>", code))
	sb.WriteString("<p style=\"color: #888; font-size: 12px;\">If you did not request this, ignore this email.</p>")
	sb.WriteString("</body></html>")

	return s.send(ctx, &EmailMessage{
		To:      []string{to},
		Subject: "Your password reset code",
		Body:    sb.String(),
	})
}

// SendWelcome tells a freshly created account its login email and that an
// initial password was set by the admin.
func (s *EmailService) SendWelcome(ctx context.Context, to, name string) error {
	var sb strings.Builder
	sb.WriteString("<html><body style=\"font-family: Arial, sans-serif;\">")
	sb.WriteString(fmt.Sprintf("<h2>Welcome, %s</h2>", name))
	sb.WriteString(fmt.Sprintf("<p>Your gym portal account has been created for <b>%s</b>.</p>", to))
	sb.WriteString("<p>Log in with the password you were given and change it right away.</p>")
	sb.WriteString("</body></html>")

	return s.send(ctx, &EmailMessage{
		To:      []string{to},
		Subject: "Your gym portal account",
		Body:    sb.String(),
	})
}

func (s *EmailService) send(ctx context.Context, msg *EmailMessage) error {
	if !s.Enabled() {
		logger.Debug().Str("subject", msg.Subject).Msg("email disabled, dropping message")
		return nil
	}
	if s.queue != nil && s.queue.IsAsync() {
		return s.queue.Enqueue(msg)
	}
	return s.Deliver(ctx, msg)
}

// Deliver sends the message over SMTP immediately. It is also the worker's
// processor for queued mail.
func (s *EmailService) Deliver(_ context.Context, msg *EmailMessage) error {
	if !s.Enabled() {
		return nil
	}

	from := s.cfg.From
	if from == "" {
		from = s.cfg.Username
	}

	headers := map[string]string{
		"From":         from,
		"To":           strings.Join(msg.To, ","),
		"Subject":      msg.Subject,
		"MIME-Version": "1.0",
		"Content-Type": "text/html; charset=UTF-8",
	}

	var message strings.Builder
	for k, v := range headers {
		message.WriteString(fmt.Sprintf("%s: %s\r\n", k, v))
	}
	message.WriteString("\r\n")
	message.WriteString(msg.Body)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var auth smtp.Auth
	if s.cfg.Username != "" && s.cfg.Password != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	var err error
	if s.cfg.UseTLS {
		err = s.deliverTLS(addr, auth, from, msg.To, message.String())
	} else {
		err = smtp.SendMail(addr, auth, from, msg.To, []byte(message.String()))
	}
	if err != nil {
		logger.Error().Err(err).Strs("to", msg.To).Msg("email send failed")
		return err
	}
	logger.Info().Strs("to", msg.To).Str("subject", msg.Subject).Msg("email sent")
	return nil
}

func (s *EmailService) deliverTLS(addr string, auth smtp.Auth, from string, to []string, message string) error {
	tlsConfig := &tls.Config{ServerName: s.cfg.Host}

	conn, err := tls.Dial("tcp", addr, tlsConfig)
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		return err
	}
	defer client.Close()

	if auth != nil {
		if err := client.Auth(auth); err != nil {
			return err
		}
	}
	if err := client.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write([]byte(message)); err != nil {
		return err
	}
	return w.Close()
}
