package router

import (
	"github.com/labstack/echo/v4"

	"agromarket/internal/adapter/api/handler"
	"agromarket/internal/adapter/api/middleware"
)

func SetupChatRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	chatHandler := handler.GetChatHandler()
	leadHandler := handler.GetLeadHandler()

	chatGroup := e.Group("/v1/chats")
	chatGroup.Use(authMiddleware.Authenticate)

	chatGroup.POST("", chatHandler.StartChat)
	chatGroup.GET("", chatHandler.GetUserChats)
	chatGroup.GET("/unread-count", chatHandler.GetUnreadCount)
	chatGroup.POST("/:id/messages", chatHandler.SendMessage)
	chatGroup.GET("/:id/messages", chatHandler.GetChatMessages)
	chatGroup.PUT("/:id/read", chatHandler.MarkChatAsRead)

	// Lead gating lives under the chat it monetizes.
	chatGroup.POST("/:id/unlock", leadHandler.UnlockLead)
	chatGroup.GET("/:id/contact", leadHandler.GetContactInfo)
}
