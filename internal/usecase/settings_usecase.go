package usecase

import (
	"context"
	"log"

	"agromarket/internal/domain/entity"
	"agromarket/internal/domain/repository"
	"agromarket/internal/domain/service"
	"agromarket/pkg/errors"
)

// SettingsUseCase backs the admin mail configuration panel.
type SettingsUseCase struct {
	smtpRepo     repository.SMTPConfigRepository
	emailService service.EmailService
}

func NewSettingsUseCase(
	smtpRepo repository.SMTPConfigRepository,
	emailService service.EmailService,
) *SettingsUseCase {
	return &SettingsUseCase{
		smtpRepo:     smtpRepo,
		emailService: emailService,
	}
}

// GetSMTPConfig returns the stored configuration with the password
// blanked out.
func (uc *SettingsUseCase) GetSMTPConfig(ctx context.Context) (*entity.SMTPConfig, error) {
	config, err := uc.smtpRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	config.Password = ""
	return config, nil
}

// SaveSMTPConfig validates and persists the configuration. An empty
// password keeps the stored one; a new password is encoded at rest.
func (uc *SettingsUseCase) SaveSMTPConfig(ctx context.Context, config *entity.SMTPConfig) error {
	if config.Password == "" {
		existing, err := uc.smtpRepo.Get(ctx)
		if err != nil {
			return errors.InvalidInput("Password is required for a new SMTP configuration", err)
		}
		config.Password = existing.Password
	} else {
		config.Password = service.EncodeSMTPPassword(config.Password)
	}

	if err := service.ValidateSMTPConfig(config); err != nil {
		return err
	}

	if err := uc.smtpRepo.Save(ctx, config); err != nil {
		log.Printf("SaveSMTPConfig Error: %v", err)
		return err
	}
	return nil
}

// TestSMTPConnection dials with an unsaved configuration. A plaintext
// password is encoded before handing off; an empty one falls back to
// the stored configuration's password.
func (uc *SettingsUseCase) TestSMTPConnection(ctx context.Context, config *entity.SMTPConfig) error {
	if config.Password == "" {
		existing, err := uc.smtpRepo.Get(ctx)
		if err != nil {
			return errors.InvalidInput("Password is required to test the connection", err)
		}
		config.Password = existing.Password
	} else {
		config.Password = service.EncodeSMTPPassword(config.Password)
	}

	return uc.emailService.TestConnection(ctx, config)
}

func (uc *SettingsUseCase) SendTestEmail(ctx context.Context, to string) error {
	if to == "" {
		return errors.InvalidInput("Recipient email is required", nil)
	}
	return uc.emailService.SendTestEmail(ctx, to)
}
