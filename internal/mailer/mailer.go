// Package mailer 通过 SMTP 发送反馈通知
package mailer

import (
	"context"
	"fmt"
	"html"

	"gopkg.in/gomail.v2"

	"github.com/abhaysingh-22/EcoTerra/internal/models"
)

// Config SMTP 配置
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
	To       string // 反馈通知收件人
}

// Mailer SMTP 邮件发送
type Mailer struct {
	cfg    Config
	dialer *gomail.Dialer
}

// New 创建邮件发送器
func New(cfg Config) *Mailer {
	return &Mailer{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

// NotifyFeedback 将新反馈转发给管理员
func (m *Mailer) NotifyFeedback(ctx context.Context, f models.Feedback) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := m.dialer.DialAndSend(m.feedbackMessage(f)); err != nil {
		return fmt.Errorf("send feedback mail: %w", err)
	}
	return nil
}

func (m *Mailer) feedbackMessage(f models.Feedback) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.cfg.From, m.cfg.FromName)
	msg.SetHeader("To", m.cfg.To)
	msg.SetAddressHeader("Reply-To", f.Email, f.Name)
	msg.SetHeader("Subject", fmt.Sprintf("EcoTerra feedback from %s", f.Name))

	text := fmt.Sprintf("Name: %s\nEmail: %s\n\n%s\n", f.Name, f.Email, f.Message)
	msg.SetBody("text/plain", text)
	msg.AddAlternative("text/html", fmt.Sprintf(
		"<p><strong>Name:</strong> %s<br><strong>Email:</strong> %s</p><p>%s</p>",
		html.EscapeString(f.Name), html.EscapeString(f.Email), html.EscapeString(f.Message),
	))
	return msg
}
