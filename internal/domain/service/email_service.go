package service

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"

	"agromarket/internal/domain/entity"
	"agromarket/internal/domain/repository"
	"agromarket/pkg/errors"
	"agromarket/pkg/logger"
)

// EmailService decides what to send and renders it; the SMTP dialog is
// the only network side effect. Failures surface as TRANSPORT_FAILURE
// and callers treat sends as best-effort.
type EmailService interface {
	SendPriceDropAlert(ctx context.Context, to, userName string, drop *entity.PriceDropNotification) error
	SendTestEmail(ctx context.Context, to string) error
	TestConnection(ctx context.Context, config *entity.SMTPConfig) error
}

type smtpEmailService struct {
	configRepo repository.SMTPConfigRepository
	siteURL    string
}

func NewSMTPEmailService(configRepo repository.SMTPConfigRepository, siteURL string) EmailService {
	return &smtpEmailService{
		configRepo: configRepo,
		siteURL:    siteURL,
	}
}

// ValidateSMTPConfig checks an admin-submitted configuration before it
// is saved or used for a test connection.
func ValidateSMTPConfig(config *entity.SMTPConfig) error {
	var problems []string

	if strings.TrimSpace(config.Host) == "" {
		problems = append(problems, "host is required")
	}
	if config.Port < 1 || config.Port > 65535 {
		problems = append(problems, fmt.Sprintf("port must be between 1 and 65535, got %d", config.Port))
	}
	if strings.TrimSpace(config.User) == "" {
		problems = append(problems, "user is required")
	}
	if strings.TrimSpace(config.Password) == "" {
		problems = append(problems, "password is required")
	}
	if !strings.Contains(config.FromEmail, "@") {
		problems = append(problems, "fromEmail is invalid")
	}
	if strings.TrimSpace(config.FromName) == "" {
		problems = append(problems, "fromName is required")
	}
	switch config.Encryption {
	case entity.SMTPEncryptionSSL, entity.SMTPEncryptionTLS, entity.SMTPEncryptionNone:
	default:
		problems = append(problems, fmt.Sprintf("encryption must be SSL, TLS or NONE, got %q", config.Encryption))
	}

	if len(problems) > 0 {
		return errors.InvalidInput("Invalid SMTP configuration: "+strings.Join(problems, "; "), nil)
	}
	return nil
}

// EncodeSMTPPassword obfuscates the password for storage.
func EncodeSMTPPassword(plain string) string {
	return base64.StdEncoding.EncodeToString([]byte(plain))
}

// DecodeSMTPPassword reverses EncodeSMTPPassword; malformed input
// decodes to the empty string so dialing fails loudly at auth time.
func DecodeSMTPPassword(encoded string) string {
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return ""
	}
	return string(decoded)
}

var priceDropTemplate = template.Must(template.New("priceDrop").Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head><meta charset="UTF-8"><title>Alerta de Preço - AgroMarket</title></head>
<body style="margin:0;padding:0;font-family:sans-serif;background-color:#f8fafc;">
  <div style="max-width:600px;margin:40px auto;background:white;border-radius:12px;overflow:hidden;">
    <div style="background:#15803d;padding:32px;text-align:center;">
      <h1 style="margin:0;color:white;font-size:24px;">🔥 Alerta de Preço!</h1>
      <p style="margin:8px 0 0;color:rgba(255,255,255,0.9);font-size:14px;">O item que você favoritou teve uma redução de preço</p>
    </div>
    <div style="padding:32px;">
      <p style="margin:0 0 24px;color:#334155;font-size:16px;">Olá, <strong>{{.UserName}}</strong>!</p>
      <div style="background:#f1f5f9;padding:20px;border-radius:8px;margin-bottom:24px;">
        <h2 style="margin:0 0 12px;color:#0f172a;font-size:18px;">{{.AdTitle}}</h2>
        <p style="margin:0;font-size:18px;color:#64748b;text-decoration:line-through;">{{.OldPrice}}</p>
        <p style="margin:4px 0 0;font-size:24px;color:#15803d;font-weight:700;">{{.NewPrice}}</p>
        <p style="margin:16px 0 0;color:#15803d;font-size:14px;font-weight:600;">💰 Você economiza {{.PercentDrop}}% neste anúncio!</p>
      </div>
      <a href="{{.AdURL}}" style="display:block;padding:14px 24px;background:#15803d;color:white;text-align:center;text-decoration:none;border-radius:8px;font-weight:600;">Ver Anúncio Completo</a>
      <p style="margin:24px 0 0;color:#64748b;font-size:12px;text-align:center;">Esta é uma notificação automática baseada em seus favoritos.</p>
    </div>
  </div>
</body>
</html>`))

type priceDropEmailData struct {
	UserName    string
	AdTitle     string
	OldPrice    string
	NewPrice    string
	PercentDrop string
	AdURL       string
}

func (s *smtpEmailService) SendPriceDropAlert(ctx context.Context, to, userName string, drop *entity.PriceDropNotification) error {
	config, err := s.activeConfig(ctx)
	if err != nil {
		return err
	}

	var body bytes.Buffer
	data := priceDropEmailData{
		UserName:    userName,
		AdTitle:     drop.AdTitle,
		OldPrice:    FormatBRL(drop.OldPrice),
		NewPrice:    FormatBRL(drop.NewPrice),
		PercentDrop: fmt.Sprintf("%.0f", drop.PercentDrop),
		AdURL:       fmt.Sprintf("%s/anuncio/%s", s.siteURL, drop.AdID),
	}
	if err := priceDropTemplate.Execute(&body, data); err != nil {
		return errors.Internal("Failed to render price drop email", err)
	}

	subject := fmt.Sprintf("🔥 Preço Reduzido: %s", drop.AdTitle)
	return s.send(config, to, subject, body.String())
}

func (s *smtpEmailService) SendTestEmail(ctx context.Context, to string) error {
	config, err := s.activeConfig(ctx)
	if err != nil {
		return err
	}

	body := fmt.Sprintf("<p>E-mail de teste enviado pelo painel administrativo do %s.</p>", config.FromName)
	return s.send(config, to, "E-mail de teste - AgroMarket", body)
}

// TestConnection dials and authenticates without sending a message,
// for the admin test-connection flow. The config may be unsaved.
func (s *smtpEmailService) TestConnection(ctx context.Context, config *entity.SMTPConfig) error {
	if err := ValidateSMTPConfig(config); err != nil {
		return err
	}

	client, err := s.dial(config)
	if err != nil {
		return err
	}
	defer client.Close()

	return client.Quit()
}

func (s *smtpEmailService) activeConfig(ctx context.Context) (*entity.SMTPConfig, error) {
	config, err := s.configRepo.Get(ctx)
	if err != nil {
		return nil, errors.TransportFailure("SMTP configuration not found", err)
	}
	if !config.IsActive {
		return nil, errors.TransportFailure("SMTP configuration is inactive", nil)
	}
	return config, nil
}

func (s *smtpEmailService) dial(config *entity.SMTPConfig) (*smtp.Client, error) {
	addr := fmt.Sprintf("%s:%d", config.Host, config.Port)

	var client *smtp.Client
	var err error

	if config.Encryption == entity.SMTPEncryptionSSL {
		conn, dialErr := tls.Dial("tcp", addr, &tls.Config{ServerName: config.Host})
		if dialErr != nil {
			return nil, errors.TransportFailure("Failed to connect to SMTP server via SSL", dialErr)
		}
		client, err = smtp.NewClient(conn, config.Host)
		if err != nil {
			conn.Close()
			return nil, errors.TransportFailure("Failed to create SMTP client", err)
		}
	} else {
		client, err = smtp.Dial(addr)
		if err != nil {
			return nil, errors.TransportFailure("Failed to connect to SMTP server", err)
		}
		if config.Encryption == entity.SMTPEncryptionTLS {
			if err := client.StartTLS(&tls.Config{ServerName: config.Host}); err != nil {
				client.Close()
				return nil, errors.TransportFailure("Failed to start TLS", err)
			}
		}
	}

	if config.User != "" {
		auth := smtp.PlainAuth("", config.User, DecodeSMTPPassword(config.Password), config.Host)
		if err := client.Auth(auth); err != nil {
			client.Close()
			return nil, errors.TransportFailure("SMTP authentication failed", err)
		}
	}

	return client, nil
}

func (s *smtpEmailService) send(config *entity.SMTPConfig, to, subject, htmlBody string) error {
	client, err := s.dial(config)
	if err != nil {
		return err
	}
	defer client.Close()

	message := buildMessage(config, to, subject, htmlBody)

	if err := client.Mail(config.FromEmail); err != nil {
		return errors.TransportFailure("Failed to set sender", err)
	}
	if err := client.Rcpt(to); err != nil {
		return errors.TransportFailure("Failed to set recipient", err)
	}

	w, err := client.Data()
	if err != nil {
		return errors.TransportFailure("Failed to open data writer", err)
	}
	if _, err := w.Write(message); err != nil {
		w.Close()
		return errors.TransportFailure("Failed to write message", err)
	}
	if err := w.Close(); err != nil {
		return errors.TransportFailure("Failed to close data writer", err)
	}

	logger.Info("Email sent to %s: %s", to, subject)
	return client.Quit()
}

func buildMessage(config *entity.SMTPConfig, to, subject, htmlBody string) []byte {
	headers := []string{
		fmt.Sprintf("From: %s <%s>", config.FromName, config.FromEmail),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-version: 1.0;",
		`Content-Type: text/html; charset="UTF-8"`,
		"",
		htmlBody,
	}
	return []byte(strings.Join(headers, "\r\n"))
}

// FormatBRL renders a price the way the marketplace shows it, whole
// reais with dot thousand separators.
func FormatBRL(price float64) string {
	whole := int64(price + 0.5)

	digits := fmt.Sprintf("%d", whole)
	negative := false
	if strings.HasPrefix(digits, "-") {
		negative = true
		digits = digits[1:]
	}

	var parts []string
	for len(digits) > 3 {
		parts = append([]string{digits[len(digits)-3:]}, parts...)
		digits = digits[:len(digits)-3]
	}
	parts = append([]string{digits}, parts...)

	formatted := "R$ " + strings.Join(parts, ".")
	if negative {
		formatted = "-" + formatted
	}
	return formatted
}
