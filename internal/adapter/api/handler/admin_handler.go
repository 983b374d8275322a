package handler

import (
	"github.com/labstack/echo/v4"

	"agromarket/internal/domain/entity"
	"agromarket/internal/usecase"
	"agromarket/pkg/response"
)

// AdminHandler backs the administration panel: SMTP settings, credit
// top-ups and the price-update simulator.
type AdminHandler struct {
	settingsUseCase  *usecase.SettingsUseCase
	priceDropUseCase *usecase.PriceDropUseCase
	creditUseCase    *usecase.CreditUseCase
}

func NewAdminHandler(
	settingsUseCase *usecase.SettingsUseCase,
	priceDropUseCase *usecase.PriceDropUseCase,
	creditUseCase *usecase.CreditUseCase,
) *AdminHandler {
	return &AdminHandler{
		settingsUseCase:  settingsUseCase,
		priceDropUseCase: priceDropUseCase,
		creditUseCase:    creditUseCase,
	}
}

type smtpConfigRequest struct {
	Host       string `json:"host" validate:"required"`
	Port       int    `json:"port" validate:"required,min=1,max=65535"`
	User       string `json:"user" validate:"required"`
	Password   string `json:"password"`
	Encryption string `json:"encryption" validate:"required,oneof=SSL TLS NONE"`
	FromEmail  string `json:"from_email" validate:"required,email"`
	FromName   string `json:"from_name" validate:"required"`
	IsActive   bool   `json:"is_active"`
}

type testEmailRequest struct {
	To string `json:"to" validate:"required,email"`
}

type updatePriceRequest struct {
	Price float64 `json:"price" validate:"required,gt=0"`
}

type addCreditsRequest struct {
	UserID      string `json:"user_id" validate:"required"`
	Amount      int    `json:"amount" validate:"required,gt=0"`
	Description string `json:"description"`
}

func (r *smtpConfigRequest) toEntity() *entity.SMTPConfig {
	return &entity.SMTPConfig{
		Host:       r.Host,
		Port:       r.Port,
		User:       r.User,
		Password:   r.Password,
		Encryption: r.Encryption,
		FromEmail:  r.FromEmail,
		FromName:   r.FromName,
		IsActive:   r.IsActive,
	}
}

func (h *AdminHandler) GetSMTPConfig(c echo.Context) error {
	config, err := h.settingsUseCase.GetSMTPConfig(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, config)
}

func (h *AdminHandler) SaveSMTPConfig(c echo.Context) error {
	var req smtpConfigRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.settingsUseCase.SaveSMTPConfig(c.Request().Context(), req.toEntity()); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "saved"})
}

func (h *AdminHandler) TestSMTPConnection(c echo.Context) error {
	var req smtpConfigRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.settingsUseCase.TestSMTPConnection(c.Request().Context(), req.toEntity()); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "connected"})
}

func (h *AdminHandler) SendTestEmail(c echo.Context) error {
	var req testEmailRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.settingsUseCase.SendTestEmail(c.Request().Context(), req.To); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "sent"})
}

// UpdateAdPrice changes a listing's price and triggers an immediate
// watcher scan. Meant for operations and manual testing.
func (h *AdminHandler) UpdateAdPrice(c echo.Context) error {
	var req updatePriceRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	adID := c.Param("id")

	ad, err := h.priceDropUseCase.UpdateAdPrice(c.Request().Context(), adID, req.Price)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, ad)
}

func (h *AdminHandler) AddCredits(c echo.Context) error {
	var req addCreditsRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	description := req.Description
	if description == "" {
		description = "Crédito adicionado pelo administrador"
	}

	balance, err := h.creditUseCase.AddCredits(c.Request().Context(), req.UserID, req.Amount, description)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, balance)
}
