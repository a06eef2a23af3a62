package service

import (
	"Moments/config"
	"Moments/dao"
	"Moments/models"
	"Moments/pkg/log"
	"Moments/pkg/mailer"
	"Moments/pkg/snowflake"
	"context"
	"strings"
	"time"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

var _ IMailService = (*MailService)(nil)

type IMailService interface {
	SendConfirmation(ctx context.Context, user *models.User, token string) error
	SendResetPassword(ctx context.Context, user *models.User, token string) error
	SendChangeEmail(ctx context.Context, user *models.User, newEmail, token string) error
}

// MailService 邮件写入发件箱, 由 Dispatcher 投递
type MailService struct {
	Config    *config.Config
	OutboxDAO *dao.MailOutboxDAO
}

func (s *MailService) SendConfirmation(ctx context.Context, user *models.User, token string) error {
	return s.enqueue(ctx, user.Email, "Email Confirm", mailer.TemplateConfirm, map[string]any{
		"username": user.Username,
		"link":     s.link("/api/v1/auth/confirm/" + token),
	})
}

func (s *MailService) SendResetPassword(ctx context.Context, user *models.User, token string) error {
	return s.enqueue(ctx, user.Email, "Password Reset", mailer.TemplateResetPassword, map[string]any{
		"username": user.Username,
		"link":     s.link("/api/v1/auth/reset-password/" + token),
	})
}

func (s *MailService) SendChangeEmail(ctx context.Context, user *models.User, newEmail, token string) error {
	return s.enqueue(ctx, newEmail, "Change Email Confirm", mailer.TemplateChangeEmail, map[string]any{
		"username": user.Username,
		"link":     s.link("/api/v1/settings/email/" + token),
	})
}

func (s *MailService) link(path string) string {
	return strings.TrimRight(s.Config.App.BaseURL, "/") + path
}

func (s *MailService) enqueue(ctx context.Context, to, subject, template string, data map[string]any) error {
	now := time.Now()
	return s.OutboxDAO.Create(ctx, &models.MailOutbox{
		ID:            snowflake.GenID(),
		To:            to,
		Subject:       s.Config.Mail.SubjectPrefix + " " + subject,
		Template:      template,
		Data:          data,
		Status:        models.MailPending,
		NextAttemptAt: now,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
}

// Dispatcher 轮询发件箱并用 worker pool 投递, 失败按指数退避重试
type Dispatcher struct {
	Config    *config.Config
	OutboxDAO *dao.MailOutboxDAO
	Sender    mailer.Sender
}

func (d *Dispatcher) Run(ctx context.Context) error {
	interval := time.Duration(d.Config.Mail.PollInterval) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.L.Info("mail dispatcher started", zap.Duration("interval", interval))
	for {
		if _, err := d.DispatchOnce(ctx); err != nil {
			log.L.Error("dispatch mail outbox", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			log.L.Info("mail dispatcher stopped")
			return nil
		case <-ticker.C:
		}
	}
}

// DispatchOnce 投递当前到期的一批邮件, 返回处理条数
func (d *Dispatcher) DispatchOnce(ctx context.Context) (int, error) {
	workers := d.Config.Mail.Workers
	items, err := d.OutboxDAO.Due(ctx, time.Now(), workers*8)
	if err != nil {
		return 0, err
	}
	if len(items) == 0 {
		return 0, nil
	}

	p := pool.New().WithMaxGoroutines(workers)
	for _, item := range items {
		p.Go(func() {
			d.deliver(ctx, item)
		})
	}
	p.Wait()
	return len(items), nil
}

func (d *Dispatcher) deliver(ctx context.Context, item *models.MailOutbox) {
	attempts := item.Attempts + 1
	text, html, err := mailer.Render(item.Template, item.Data)
	if err != nil {
		log.L.Error("render mail", zap.Int64("id", item.ID), zap.Error(err))
		if err := d.OutboxDAO.MarkFailed(ctx, item.ID, attempts, err.Error()); err != nil {
			log.L.Error("mark mail failed", zap.Int64("id", item.ID), zap.Error(err))
		}
		return
	}

	err = d.Sender.Send(ctx, &mailer.Message{
		To:      item.To,
		Subject: item.Subject,
		Text:    text,
		HTML:    html,
	})
	if err == nil {
		if err := d.OutboxDAO.MarkSent(ctx, item.ID, attempts); err != nil {
			log.L.Error("mark mail sent", zap.Int64("id", item.ID), zap.Error(err))
		}
		return
	}

	log.L.Warn("send mail", zap.Int64("id", item.ID), zap.String("to", item.To), zap.Int("attempts", attempts), zap.Error(err))
	if attempts >= d.Config.Mail.MaxAttempts {
		err = d.OutboxDAO.MarkFailed(ctx, item.ID, attempts, err.Error())
	} else {
		err = d.OutboxDAO.MarkRetry(ctx, item.ID, attempts, time.Now().Add(d.backoff(attempts)), err.Error())
	}
	if err != nil {
		log.L.Error("update mail outbox", zap.Int64("id", item.ID), zap.Error(err))
	}
}

// backoff 第 n 次失败后的等待时间 base * 2^(n-1)
func (d *Dispatcher) backoff(attempts int) time.Duration {
	base := time.Duration(d.Config.Mail.RetryBackoff) * time.Second
	return base << (attempts - 1)
}
