package handler

import (
	"github.com/labstack/echo/v4"

	"agromarket/internal/usecase"
	"agromarket/pkg/response"
)

type LeadHandler struct {
	leadUseCase *usecase.LeadUseCase
}

func NewLeadHandler(leadUseCase *usecase.LeadUseCase) *LeadHandler {
	return &LeadHandler{
		leadUseCase: leadUseCase,
	}
}

// UnlockLead charges the seller to reveal the buyer's contact info.
func (h *LeadHandler) UnlockLead(c echo.Context) error {
	userID := c.Get("uid").(string)
	chatID := c.Param("id")

	lead, err := h.leadUseCase.UnlockLead(c.Request().Context(), userID, chatID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, lead)
}

// GetContactInfo resolves the other participant's contact details,
// masked for sellers while the lead is pending.
func (h *LeadHandler) GetContactInfo(c echo.Context) error {
	userID := c.Get("uid").(string)
	chatID := c.Param("id")

	info, err := h.leadUseCase.GetContactInfo(c.Request().Context(), userID, chatID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, info)
}
