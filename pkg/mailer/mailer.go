package mailer

import (
	"Moments/config"
	"Moments/pkg/log"
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Sender 邮件投递
type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

// NewSender 调试模式或未配置 SMTP 时只记录日志
func NewSender(cfg *config.Config) Sender {
	if cfg.Debug() || cfg.Mail.Server == "" {
		return LogSender{}
	}
	return &SMTPSender{conf: cfg.Mail}
}

type LogSender struct{}

func (LogSender) Send(_ context.Context, msg *Message) error {
	log.L.Info("mail suppressed",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.Text),
	)
	return nil
}

type SMTPSender struct {
	conf *config.Mail
}

func (s *SMTPSender) Send(ctx context.Context, msg *Message) error {
	m := mail.NewMsg()
	if err := m.From(s.conf.DefaultSender); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return fmt.Errorf("mail to: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.Text)
	if msg.HTML != "" {
		m.AddAlternativeString(mail.TypeTextHTML, msg.HTML)
	}

	opts := []mail.Option{mail.WithPort(s.conf.Port)}
	if s.conf.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.conf.Username),
			mail.WithPassword(s.conf.Password),
		)
	}
	if s.conf.UseSSL {
		opts = append(opts, mail.WithSSL())
	}
	c, err := mail.NewClient(s.conf.Server, opts...)
	if err != nil {
		return fmt.Errorf("mail client: %w", err)
	}
	return c.DialAndSendWithContext(ctx, m)
}
