package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agromarket/internal/domain/entity"
	"agromarket/internal/domain/service"
	"agromarket/pkg/errors"
)

func validConfigInput() *entity.SMTPConfig {
	return &entity.SMTPConfig{
		Host:       "smtp.example.com",
		Port:       587,
		User:       "mailer",
		Password:   "secret",
		Encryption: entity.SMTPEncryptionTLS,
		FromEmail:  "noreply@agromarket.com.br",
		FromName:   "AgroMarket",
		IsActive:   true,
	}
}

func TestSaveSMTPConfigEncodesPassword(t *testing.T) {
	smtpRepo := &memSMTPConfigRepo{}
	uc := NewSettingsUseCase(smtpRepo, &fakeEmailService{})

	require.NoError(t, uc.SaveSMTPConfig(context.Background(), validConfigInput()))

	require.NotNil(t, smtpRepo.config)
	assert.NotEqual(t, "secret", smtpRepo.config.Password)
	assert.Equal(t, "secret", service.DecodeSMTPPassword(smtpRepo.config.Password))
}

func TestSaveSMTPConfigKeepsStoredPasswordWhenBlank(t *testing.T) {
	smtpRepo := &memSMTPConfigRepo{}
	uc := NewSettingsUseCase(smtpRepo, &fakeEmailService{})

	require.NoError(t, uc.SaveSMTPConfig(context.Background(), validConfigInput()))
	stored := smtpRepo.config.Password

	update := validConfigInput()
	update.Password = ""
	update.FromName = "AgroMarket Brasil"
	require.NoError(t, uc.SaveSMTPConfig(context.Background(), update))

	assert.Equal(t, stored, smtpRepo.config.Password)
	assert.Equal(t, "AgroMarket Brasil", smtpRepo.config.FromName)
}

func TestSaveSMTPConfigRequiresPasswordOnFirstSave(t *testing.T) {
	uc := NewSettingsUseCase(&memSMTPConfigRepo{}, &fakeEmailService{})

	config := validConfigInput()
	config.Password = ""
	err := uc.SaveSMTPConfig(context.Background(), config)

	require.Error(t, err)
	assert.True(t, errors.Is(err, "INVALID_INPUT"))
}

func TestGetSMTPConfigBlanksPassword(t *testing.T) {
	smtpRepo := &memSMTPConfigRepo{}
	uc := NewSettingsUseCase(smtpRepo, &fakeEmailService{})
	require.NoError(t, uc.SaveSMTPConfig(context.Background(), validConfigInput()))

	config, err := uc.GetSMTPConfig(context.Background())

	require.NoError(t, err)
	assert.Empty(t, config.Password)
	// The stored copy still has it.
	assert.NotEmpty(t, smtpRepo.config.Password)
}

func TestSendTestEmailRequiresRecipient(t *testing.T) {
	uc := NewSettingsUseCase(&memSMTPConfigRepo{}, &fakeEmailService{})

	err := uc.SendTestEmail(context.Background(), "")

	require.Error(t, err)
	assert.True(t, errors.Is(err, "INVALID_INPUT"))
}

func TestTestSMTPConnectionPropagatesTransportFailure(t *testing.T) {
	uc := NewSettingsUseCase(&memSMTPConfigRepo{}, &fakeEmailService{fail: true})

	err := uc.TestSMTPConnection(context.Background(), validConfigInput())

	require.Error(t, err)
	assert.True(t, errors.Is(err, "TRANSPORT_FAILURE"))
}
