package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"

	"agromarket/internal/domain/entity"
	"agromarket/internal/domain/repository"
	"agromarket/internal/domain/service"
	"agromarket/internal/infrastructure/ratelimit"
	ws "agromarket/internal/infrastructure/websocket"
	"agromarket/pkg/errors"
)

type ChatUseCase struct {
	chatRepo         repository.ChatRepository
	leadRepo         repository.LeadRepository
	userRepo         repository.UserRepository
	adRepo           repository.AdRepository
	notificationRepo repository.NotificationRepository
	wsManager        *ws.Manager
	rateLimiter      *ratelimit.RateLimiter
}

func NewChatUseCase(
	chatRepo repository.ChatRepository,
	leadRepo repository.LeadRepository,
	userRepo repository.UserRepository,
	adRepo repository.AdRepository,
	notificationRepo repository.NotificationRepository,
	wsManager *ws.Manager,
) *ChatUseCase {
	rateLimiter := ratelimit.NewRateLimiter()
	rateLimiter.StartCleanupRoutine()

	return &ChatUseCase{
		chatRepo:         chatRepo,
		leadRepo:         leadRepo,
		userRepo:         userRepo,
		adRepo:           adRepo,
		notificationRepo: notificationRepo,
		wsManager:        wsManager,
		rateLimiter:      rateLimiter,
	}
}

type StartChatInput struct {
	AdID           string
	InitialMessage string
}

type SendMessageInput struct {
	ChatID  string
	Content string
}

type ChatResponse struct {
	*entity.Chat
	OtherUser *entity.User `json:"other_user,omitempty"`
}

// StartChat opens (or returns) the buyer's conversation about an ad.
// The chat ID is deterministic per (ad, seller, buyer), so retries and
// double-clicks land on the same conversation. A new chat also creates
// its pending lead.
func (uc *ChatUseCase) StartChat(ctx context.Context, buyerID string, input StartChatInput) (*entity.Chat, error) {
	allowed, waitTime := uc.rateLimiter.Allow(buyerID, "start_chat")
	if !allowed {
		log.Printf("StartChat Rate Limited: User %s must wait %v", buyerID, waitTime)
		return nil, errors.TooManyRequests("Rate limit exceeded. Please wait before starting another conversation")
	}

	ad, err := uc.adRepo.GetByID(ctx, input.AdID)
	if err != nil {
		log.Printf("StartChat Error: Ad %s not found: %v", input.AdID, err)
		return nil, err
	}

	if ad.SellerID == buyerID {
		log.Printf("StartChat Error: User %s attempted to chat about their own ad %s", buyerID, input.AdID)
		return nil, errors.BadRequest("You cannot start a conversation about your own ad", nil)
	}

	chatID := entity.ChatID(ad.ID, ad.SellerID, buyerID)

	existing, err := uc.chatRepo.GetByID(ctx, chatID)
	if err == nil {
		if input.InitialMessage != "" {
			if _, err := uc.SendMessage(ctx, buyerID, SendMessageInput{ChatID: chatID, Content: input.InitialMessage}); err != nil {
				return nil, err
			}
			return uc.chatRepo.GetByID(ctx, chatID)
		}
		return existing, nil
	}
	if !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	buyer, err := uc.userRepo.GetByID(ctx, buyerID)
	if err != nil {
		log.Printf("StartChat Error: Buyer %s not found: %v", buyerID, err)
		return nil, err
	}
	seller, err := uc.userRepo.GetByID(ctx, ad.SellerID)
	if err != nil {
		log.Printf("StartChat Error: Seller %s not found: %v", ad.SellerID, err)
		return nil, err
	}

	chat := &entity.Chat{
		ID:         chatID,
		AdID:       ad.ID,
		AdTitle:    ad.Title,
		AdPrice:    ad.Price,
		AdImage:    ad.FirstImage(),
		SellerID:   seller.ID,
		SellerName: seller.Name,
		BuyerID:    buyer.ID,
		BuyerName:  buyer.Name,
		Status:     entity.LeadStatusPending,
	}
	if err := uc.chatRepo.Create(ctx, chat); err != nil {
		log.Printf("StartChat Error: Failed to create chat %s: %v", chatID, err)
		return nil, err
	}

	lead := &entity.Lead{
		ChatID:   chatID,
		AdID:     ad.ID,
		SellerID: seller.ID,
		BuyerID:  buyer.ID,
		Status:   entity.LeadStatusPending,
	}
	if err := uc.leadRepo.Create(ctx, lead); err != nil {
		log.Printf("StartChat Error: Failed to create lead for chat %s: %v", chatID, err)
		return nil, err
	}

	if input.InitialMessage != "" {
		if _, err := uc.SendMessage(ctx, buyerID, SendMessageInput{ChatID: chatID, Content: input.InitialMessage}); err != nil {
			return nil, err
		}
		return uc.chatRepo.GetByID(ctx, chatID)
	}

	return chat, nil
}

// SendMessage appends a message to the chat. Seller messages in a
// pending conversation pass through the contact filter before storage;
// the original text is not retained.
func (uc *ChatUseCase) SendMessage(ctx context.Context, senderID string, input SendMessageInput) (*entity.Message, error) {
	allowed, waitTime := uc.rateLimiter.Allow(senderID, "send_message")
	if !allowed {
		log.Printf("SendMessage Rate Limited: User %s must wait %v", senderID, waitTime)
		return nil, errors.TooManyRequests("Rate limit exceeded. Please wait before sending another message")
	}

	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, errors.InvalidInput("Message content cannot be empty", nil)
	}

	chat, err := uc.chatRepo.GetByID(ctx, input.ChatID)
	if err != nil {
		log.Printf("SendMessage Error: Chat %s not found: %v", input.ChatID, err)
		return nil, err
	}

	if !chat.IsParticipant(senderID) {
		log.Printf("SendMessage Error: User %s is not a participant of chat %s", senderID, input.ChatID)
		return nil, errors.Unauthorized("You are not a participant of this conversation", nil)
	}

	sender, err := uc.userRepo.GetByID(ctx, senderID)
	if err != nil {
		log.Printf("SendMessage Error: Sender %s not found: %v", senderID, err)
		return nil, err
	}

	// Only the seller's messages are gated, and only while the lead is
	// still pending. Buyer messages always pass untouched.
	filtered := false
	if senderID == chat.SellerID {
		unlocked := chat.Status == entity.LeadStatusUnlocked
		if lead, leadErr := uc.leadRepo.GetByChatID(ctx, input.ChatID); leadErr == nil {
			unlocked = lead.IsUnlocked()
		}
		content, filtered = service.FilterContactInfo(content, unlocked)
	}

	message := &entity.Message{
		ChatID:     input.ChatID,
		SenderID:   senderID,
		SenderName: sender.Name,
		Content:    content,
		IsFiltered: filtered,
	}
	if err := uc.chatRepo.CreateMessage(ctx, message); err != nil {
		log.Printf("SendMessage Error: Failed to create message in chat %s: %v", input.ChatID, err)
		return nil, err
	}

	receiverID := chat.OtherParticipant(senderID)

	chat.LastMessage = content
	chat.LastMessageAt = message.CreatedAt
	if chat.UnreadCount == nil {
		chat.UnreadCount = map[string]int{}
	}
	chat.UnreadCount[receiverID]++
	if err := uc.chatRepo.Update(ctx, chat); err != nil {
		log.Printf("SendMessage Error: Failed to update chat %s: %v", input.ChatID, err)
		return nil, err
	}

	uc.notifyNewMessage(ctx, chat, message, receiverID)

	return message, nil
}

func (uc *ChatUseCase) notifyNewMessage(ctx context.Context, chat *entity.Chat, message *entity.Message, receiverID string) {
	notification := &entity.Notification{
		UserID:  receiverID,
		Type:    entity.NotificationTypeNewMessage,
		Title:   "Nova mensagem",
		Content: fmt.Sprintf("%s enviou uma mensagem sobre %q", message.SenderName, chat.AdTitle),
		Link:    fmt.Sprintf("/mensagens?chat=%s", chat.ID),
	}
	if err := uc.notificationRepo.Create(ctx, notification); err != nil {
		log.Printf("SendMessage Warning: Failed to create notification for user %s: %v", receiverID, err)
	}

	if uc.wsManager != nil {
		uc.wsManager.SendEventToUser(receiverID, ws.EventNewMessage, message)
	}
}

// MarkChatAsRead zeroes the reader's unread counter and flips unread
// messages from the other participant to read. Idempotent.
func (uc *ChatUseCase) MarkChatAsRead(ctx context.Context, userID, chatID string) error {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return err
	}

	if !chat.IsParticipant(userID) {
		return errors.Unauthorized("You are not a participant of this conversation", nil)
	}

	if err := uc.chatRepo.MarkMessagesRead(ctx, chatID, userID); err != nil {
		log.Printf("MarkChatAsRead Error: Failed to mark messages read in chat %s: %v", chatID, err)
		return err
	}

	if chat.UnreadCount[userID] == 0 {
		return nil
	}

	chat.UnreadCount[userID] = 0
	if err := uc.chatRepo.Update(ctx, chat); err != nil {
		log.Printf("MarkChatAsRead Error: Failed to update chat %s: %v", chatID, err)
		return err
	}

	return nil
}

func (uc *ChatUseCase) GetChatMessages(ctx context.Context, userID, chatID string) ([]*entity.Message, error) {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}

	if !chat.IsParticipant(userID) {
		return nil, errors.Unauthorized("You are not a participant of this conversation", nil)
	}

	return uc.chatRepo.GetMessagesByChat(ctx, chatID)
}

func (uc *ChatUseCase) GetUserChats(ctx context.Context, userID string, limit, offset int) ([]*entity.Chat, int64, error) {
	return uc.chatRepo.ListByUserID(ctx, userID, limit, offset)
}

// GetUnreadCount sums the caller's unread counters across every chat.
func (uc *ChatUseCase) GetUnreadCount(ctx context.Context, userID string) (int, error) {
	chats, _, err := uc.chatRepo.ListByUserID(ctx, userID, 0, 0)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, chat := range chats {
		total += chat.UnreadCount[userID]
	}
	return total, nil
}
