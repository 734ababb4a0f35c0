package service

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/mail"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/gemledger/internal/config"
	"github.com/gemledger/internal/i18n"
	"github.com/gemledger/internal/models"
)

// EmailService 邮件发送服务
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// Enabled 是否已开启并配置完整
func (s *EmailService) Enabled() bool {
	return s != nil && s.cfg != nil && s.cfg.Enabled && s.cfg.Host != "" && s.cfg.Port != 0 && s.cfg.From != ""
}

// SendQuoteNotification 通知销售团队有新的询价单，回复直达访客
func (s *EmailService) SendQuoteNotification(toEmail string, quote *models.QuoteRequest, locale string) error {
	subject, body := buildQuoteNotifyContent(quote, locale)
	return s.send(outgoingMail{to: toEmail, replyTo: quote.Email, subject: subject, body: body})
}

// SendQuoteAcknowledgement 向访客确认已收到询价
func (s *EmailService) SendQuoteAcknowledgement(quote *models.QuoteRequest, locale string) error {
	subject, body := buildQuoteAckContent(quote, locale)
	return s.send(outgoingMail{to: quote.Email, subject: subject, body: body})
}

type outgoingMail struct {
	to      string
	replyTo string
	subject string
	body    string
}

func (s *EmailService) send(m outgoingMail) error {
	if s.cfg == nil || !s.cfg.Enabled {
		return ErrEmailServiceDisabled
	}
	if s.cfg.Host == "" || s.cfg.Port == 0 || s.cfg.From == "" {
		return ErrEmailServiceNotConfigured
	}
	if _, err := mail.ParseAddress(m.to); err != nil {
		return ErrInvalidEmail
	}
	msg := s.compose(m, time.Now())
	return normalizeEmailSendError(s.deliver(m.to, msg))
}

// compose 生成纯文本邮件，主题按 RFC 2047 编码
func (s *EmailService) compose(m outgoingMail, now time.Time) []byte {
	from := s.cfg.From
	if name := strings.TrimSpace(s.cfg.FromName); name != "" {
		from = (&mail.Address{Name: mime.QEncoding.Encode("UTF-8", name), Address: s.cfg.From}).String()
	}
	var buf bytes.Buffer
	header := func(k, v string) { fmt.Fprintf(&buf, "%s: %s\r\n", k, v) }
	header("From", from)
	header("To", m.to)
	if m.replyTo != "" {
		if _, err := mail.ParseAddress(m.replyTo); err == nil {
			header("Reply-To", m.replyTo)
		}
	}
	header("Subject", mime.QEncoding.Encode("UTF-8", m.subject))
	header("Date", now.Format(time.RFC1123Z))
	header("MIME-Version", "1.0")
	header("Content-Type", "text/plain; charset=UTF-8")
	buf.WriteString("\r\n")
	buf.WriteString(m.body)
	return buf.Bytes()
}

// dial 按配置建立连接：SSL 直连、STARTTLS 升级或明文
func (s *EmailService) dial() (*smtp.Client, error) {
	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	tlsCfg := &tls.Config{ServerName: s.cfg.Host}
	if s.cfg.UseSSL {
		conn, err := tls.Dial("tcp", addr, tlsCfg)
		if err != nil {
			return nil, err
		}
		client, err := smtp.NewClient(conn, s.cfg.Host)
		if err != nil {
			conn.Close()
			return nil, err
		}
		return client, nil
	}
	client, err := smtp.Dial(addr)
	if err != nil {
		return nil, err
	}
	if s.cfg.UseTLS {
		if err := client.StartTLS(tlsCfg); err != nil {
			client.Close()
			return nil, err
		}
	}
	return client, nil
}

func (s *EmailService) deliver(to string, msg []byte) error {
	client, err := s.dial()
	if err != nil {
		return err
	}
	defer client.Close()

	if s.cfg.Username != "" || s.cfg.Password != "" {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)); err != nil {
				return err
			}
		}
	}
	if err := client.Mail(s.cfg.From); err != nil {
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
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

func buildQuoteNotifyContent(quote *models.QuoteRequest, locale string) (string, string) {
	normalized := i18n.NormalizeLocale(locale)
	lines := make([]string, 0, len(quote.Items))
	for _, item := range quote.Items {
		lines = append(lines, i18n.Sprintf(normalized, "email.quote.item",
			item.SKU, item.Shape, item.Carat, item.Color, item.Clarity, item.TotalAmount.String()))
	}
	subject := i18n.Sprintf(normalized, "email.quote.subject", quote.RequestNo)
	body := i18n.Sprintf(normalized, "email.quote.body",
		quote.Name, quote.Email, quote.RequestNo, len(quote.Items), quote.TotalAmount.String(),
		strings.Join(lines, "\n"), strings.TrimSpace(quote.Message))
	return subject, body
}

func buildQuoteAckContent(quote *models.QuoteRequest, locale string) (string, string) {
	normalized := i18n.NormalizeLocale(locale)
	subject := i18n.Sprintf(normalized, "email.quote.ack_subject", quote.RequestNo)
	body := i18n.Sprintf(normalized, "email.quote.ack_body", quote.Name, quote.RequestNo, len(quote.Items))
	return subject, body
}

func normalizeEmailSendError(err error) error {
	if err == nil {
		return nil
	}
	if isEmailRecipientRejected(err) {
		return ErrEmailRecipientRejected
	}
	return err
}

var (
	recipientRejectedPhrases = []string{
		"no such recipient", "no such user", "recipient not found",
		"recipient address rejected", "invalid recipient",
		"user unknown", "unknown user", "unknown mailbox", "mailbox unavailable",
	}
	// 550 只有同时提到收件人相关字样时才算拒收
	recipient550Hints = []string{"recipient", "user", "mailbox", "address", "rcpt"}
)

func isEmailRecipientRejected(err error) bool {
	if err == nil {
		return false
	}
	message := strings.ToLower(err.Error())
	for _, phrase := range recipientRejectedPhrases {
		if strings.Contains(message, phrase) {
			return true
		}
	}
	if !strings.Contains(message, "550") {
		return false
	}
	for _, hint := range recipient550Hints {
		if strings.Contains(message, hint) {
			return true
		}
	}
	return false
}
