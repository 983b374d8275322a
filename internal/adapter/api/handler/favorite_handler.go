package handler

import (
	"github.com/labstack/echo/v4"

	"agromarket/internal/usecase"
	"agromarket/pkg/response"
)

type FavoriteHandler struct {
	favoriteUseCase  *usecase.FavoriteUseCase
	priceDropUseCase *usecase.PriceDropUseCase
}

func NewFavoriteHandler(favoriteUseCase *usecase.FavoriteUseCase, priceDropUseCase *usecase.PriceDropUseCase) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteUseCase:  favoriteUseCase,
		priceDropUseCase: priceDropUseCase,
	}
}

type toggleFavoriteRequest struct {
	AdID string `json:"ad_id" validate:"required"`
}

func (h *FavoriteHandler) ToggleFavorite(c echo.Context) error {
	var req toggleFavoriteRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	favorited, err := h.favoriteUseCase.ToggleFavorite(c.Request().Context(), userID, req.AdID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]bool{"favorited": favorited})
}

func (h *FavoriteHandler) ListFavorites(c echo.Context) error {
	userID := c.Get("uid").(string)

	items, err := h.favoriteUseCase.ListFavorites(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, items)
}

func (h *FavoriteHandler) GetFavoriteStats(c echo.Context) error {
	userID := c.Get("uid").(string)

	stats, err := h.favoriteUseCase.GetStats(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, stats)
}

func (h *FavoriteHandler) GetFavoriteStatus(c echo.Context) error {
	userID := c.Get("uid").(string)
	adID := c.Param("adId")

	favorited, err := h.favoriteUseCase.IsFavorited(c.Request().Context(), userID, adID)
	if err != nil {
		return response.Error(c, err)
	}

	opportunity, err := h.priceDropUseCase.IsOpportunity(c.Request().Context(), userID, adID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]bool{
		"favorited":      favorited,
		"is_opportunity": opportunity,
	})
}
