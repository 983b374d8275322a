package handler

import (
	"agromarket/internal/usecase"
)

var (
	chatHandler         *ChatHandler
	leadHandler         *LeadHandler
	creditHandler       *CreditHandler
	favoriteHandler     *FavoriteHandler
	notificationHandler *NotificationHandler
	adminHandler        *AdminHandler
)

func Setup(
	chatUseCase *usecase.ChatUseCase,
	leadUseCase *usecase.LeadUseCase,
	creditUseCase *usecase.CreditUseCase,
	favoriteUseCase *usecase.FavoriteUseCase,
	notificationUseCase *usecase.NotificationUseCase,
	priceDropUseCase *usecase.PriceDropUseCase,
	settingsUseCase *usecase.SettingsUseCase,
) {
	chatHandler = NewChatHandler(chatUseCase)
	leadHandler = NewLeadHandler(leadUseCase)
	creditHandler = NewCreditHandler(creditUseCase)
	favoriteHandler = NewFavoriteHandler(favoriteUseCase, priceDropUseCase)
	notificationHandler = NewNotificationHandler(notificationUseCase)
	adminHandler = NewAdminHandler(settingsUseCase, priceDropUseCase, creditUseCase)
}

func GetChatHandler() *ChatHandler {
	return chatHandler
}

func GetLeadHandler() *LeadHandler {
	return leadHandler
}

func GetCreditHandler() *CreditHandler {
	return creditHandler
}

func GetFavoriteHandler() *FavoriteHandler {
	return favoriteHandler
}

func GetNotificationHandler() *NotificationHandler {
	return notificationHandler
}

func GetAdminHandler() *AdminHandler {
	return adminHandler
}
