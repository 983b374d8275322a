package handler

import (
	"github.com/labstack/echo/v4"

	"agromarket/internal/usecase"
	"agromarket/pkg/response"
	"agromarket/pkg/utils"
)

type CreditHandler struct {
	creditUseCase *usecase.CreditUseCase
}

func NewCreditHandler(creditUseCase *usecase.CreditUseCase) *CreditHandler {
	return &CreditHandler{
		creditUseCase: creditUseCase,
	}
}

func (h *CreditHandler) GetBalance(c echo.Context) error {
	userID := c.Get("uid").(string)

	balance, err := h.creditUseCase.GetBalance(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, balance)
}

func (h *CreditHandler) ListTransactions(c echo.Context) error {
	userID := c.Get("uid").(string)

	pagination := utils.GetPaginationParams(c)

	txns, total, err := h.creditUseCase.ListTransactions(c.Request().Context(), userID, pagination.Limit, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.SuccessPaginated(c, txns, total, pagination.Limit, pagination.Offset)
}
