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

func seedChatFixture(t *testing.T) (*ChatUseCase, *memChatRepo, *memLeadRepo, *memNotificationRepo) {
	t.Helper()

	userRepo := newMemUserRepo(
		&entity.User{ID: "seller-1", Name: "Carlos", Plan: entity.PlanSeed},
		&entity.User{ID: "buyer-1", Name: "Ana", Plan: entity.PlanSeed},
	)
	adRepo := newMemAdRepo(&entity.Ad{
		ID:       "ad-1",
		Title:    "Trator Valtra BM125",
		Price:    185000,
		SellerID: "seller-1",
		Status:   entity.AdStatusActive,
	})
	chatRepo := newMemChatRepo()
	leadRepo := newMemLeadRepo()
	notifRepo := newMemNotificationRepo()

	uc := NewChatUseCase(chatRepo, leadRepo, userRepo, adRepo, notifRepo, nil)
	return uc, chatRepo, leadRepo, notifRepo
}

func startChat(t *testing.T, uc *ChatUseCase) *entity.Chat {
	t.Helper()

	chat, err := uc.StartChat(context.Background(), "buyer-1", StartChatInput{AdID: "ad-1"})
	require.NoError(t, err)
	return chat
}

func TestStartChatCreatesDeterministicChatAndLead(t *testing.T) {
	uc, _, leadRepo, _ := seedChatFixture(t)

	chat := startChat(t, uc)

	assert.Equal(t, "chat_ad-1_seller-1_buyer-1", chat.ID)
	assert.Equal(t, "Trator Valtra BM125", chat.AdTitle)
	assert.Equal(t, float64(185000), chat.AdPrice)
	assert.Equal(t, entity.LeadStatusPending, chat.Status)

	lead, err := leadRepo.GetByChatID(context.Background(), chat.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.LeadStatusPending, lead.Status)
	assert.Equal(t, "seller-1", lead.SellerID)
	assert.Equal(t, "buyer-1", lead.BuyerID)
}

func TestStartChatIsIdempotent(t *testing.T) {
	uc, chatRepo, _, _ := seedChatFixture(t)

	first := startChat(t, uc)
	second := startChat(t, uc)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, chatRepo.chats, 1)
}

func TestStartChatRejectsOwnAd(t *testing.T) {
	uc, _, _, _ := seedChatFixture(t)

	_, err := uc.StartChat(context.Background(), "seller-1", StartChatInput{AdID: "ad-1"})

	assert.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestSendMessageRejectsEmptyContent(t *testing.T) {
	uc, _, _, _ := seedChatFixture(t)
	chat := startChat(t, uc)

	_, err := uc.SendMessage(context.Background(), "buyer-1", SendMessageInput{ChatID: chat.ID, Content: "   "})

	assert.Error(t, err)
	assert.True(t, errors.Is(err, "INVALID_INPUT"))
}

func TestSendMessageRejectsNonParticipant(t *testing.T) {
	uc, _, _, _ := seedChatFixture(t)
	chat := startChat(t, uc)

	_, err := uc.SendMessage(context.Background(), "stranger", SendMessageInput{ChatID: chat.ID, Content: "oi"})

	assert.Error(t, err)
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))
}

func TestSendMessageBuyerNeverFiltered(t *testing.T) {
	uc, _, _, _ := seedChatFixture(t)
	chat := startChat(t, uc)

	content := "Me liga no 11987654321, tenho whatsapp"
	message, err := uc.SendMessage(context.Background(), "buyer-1", SendMessageInput{ChatID: chat.ID, Content: content})

	require.NoError(t, err)
	assert.Equal(t, content, message.Content)
	assert.False(t, message.IsFiltered)
}

func TestSendMessageSellerFilteredWhilePending(t *testing.T) {
	uc, _, _, _ := seedChatFixture(t)
	chat := startChat(t, uc)

	message, err := uc.SendMessage(context.Background(), "seller-1", SendMessageInput{
		ChatID:  chat.ID,
		Content: "Me chama no whatsapp 11987654321",
	})

	require.NoError(t, err)
	assert.True(t, message.IsFiltered)
	assert.NotContains(t, message.Content, "11987654321")
	assert.NotContains(t, message.Content, "whatsapp")
	assert.Contains(t, message.Content, service.RedactionMarker)
}

func TestSendMessageSellerUnfilteredAfterUnlock(t *testing.T) {
	uc, _, leadRepo, _ := seedChatFixture(t)
	chat := startChat(t, uc)

	lead := leadRepo.leads[chat.ID]
	lead.Status = entity.LeadStatusUnlocked

	content := "Meu telefone é 11987654321"
	message, err := uc.SendMessage(context.Background(), "seller-1", SendMessageInput{ChatID: chat.ID, Content: content})

	require.NoError(t, err)
	assert.Equal(t, content, message.Content)
	assert.False(t, message.IsFiltered)
}

func TestSendMessageCleanSellerContentNotMarkedFiltered(t *testing.T) {
	uc, _, _, _ := seedChatFixture(t)
	chat := startChat(t, uc)

	content := "Sim, ainda tenho as 50 sacas disponíveis"
	message, err := uc.SendMessage(context.Background(), "seller-1", SendMessageInput{ChatID: chat.ID, Content: content})

	require.NoError(t, err)
	assert.Equal(t, content, message.Content)
	assert.False(t, message.IsFiltered)
}

func TestSendMessageIncrementsReceiverUnreadOnly(t *testing.T) {
	uc, chatRepo, _, _ := seedChatFixture(t)
	chat := startChat(t, uc)

	_, err := uc.SendMessage(context.Background(), "buyer-1", SendMessageInput{ChatID: chat.ID, Content: "oi"})
	require.NoError(t, err)
	_, err = uc.SendMessage(context.Background(), "buyer-1", SendMessageInput{ChatID: chat.ID, Content: "tudo bem?"})
	require.NoError(t, err)

	stored := chatRepo.chats[chat.ID]
	assert.Equal(t, 2, stored.UnreadCount["seller-1"])
	assert.Equal(t, 0, stored.UnreadCount["buyer-1"])
	assert.Equal(t, "tudo bem?", stored.LastMessage)
}

func TestSendMessageCreatesNotificationForReceiver(t *testing.T) {
	uc, _, _, notifRepo := seedChatFixture(t)
	chat := startChat(t, uc)

	_, err := uc.SendMessage(context.Background(), "buyer-1", SendMessageInput{ChatID: chat.ID, Content: "oi"})
	require.NoError(t, err)

	require.Len(t, notifRepo.notifications, 1)
	notification := notifRepo.notifications[0]
	assert.Equal(t, "seller-1", notification.UserID)
	assert.Equal(t, entity.NotificationTypeNewMessage, notification.Type)
	assert.Equal(t, "Nova mensagem", notification.Title)
	assert.Contains(t, notification.Content, "Ana")
	assert.Contains(t, notification.Link, chat.ID)
}

func TestMarkChatAsReadIsIdempotent(t *testing.T) {
	uc, chatRepo, _, _ := seedChatFixture(t)
	chat := startChat(t, uc)

	_, err := uc.SendMessage(context.Background(), "buyer-1", SendMessageInput{ChatID: chat.ID, Content: "oi"})
	require.NoError(t, err)

	require.NoError(t, uc.MarkChatAsRead(context.Background(), "seller-1", chat.ID))
	require.NoError(t, uc.MarkChatAsRead(context.Background(), "seller-1", chat.ID))

	stored := chatRepo.chats[chat.ID]
	assert.Equal(t, 0, stored.UnreadCount["seller-1"])

	messages, err := uc.GetChatMessages(context.Background(), "seller-1", chat.ID)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.True(t, messages[0].IsRead)
}

func TestGetChatMessagesEmptyChatReturnsEmptyList(t *testing.T) {
	uc, _, _, _ := seedChatFixture(t)
	chat := startChat(t, uc)

	messages, err := uc.GetChatMessages(context.Background(), "seller-1", chat.ID)
	require.NoError(t, err)

	assert.NotNil(t, messages)
	assert.Empty(t, messages)
}

func TestGetUnreadCountSumsAcrossChats(t *testing.T) {
	uc, _, _, _ := seedChatFixture(t)
	chat := startChat(t, uc)

	_, err := uc.SendMessage(context.Background(), "buyer-1", SendMessageInput{ChatID: chat.ID, Content: "oi"})
	require.NoError(t, err)
	_, err = uc.SendMessage(context.Background(), "seller-1", SendMessageInput{ChatID: chat.ID, Content: "ola"})
	require.NoError(t, err)

	sellerUnread, err := uc.GetUnreadCount(context.Background(), "seller-1")
	require.NoError(t, err)
	buyerUnread, err := uc.GetUnreadCount(context.Background(), "buyer-1")
	require.NoError(t, err)

	assert.Equal(t, 1, sellerUnread)
	assert.Equal(t, 1, buyerUnread)
}
