package repository

import (
	"context"

	"agromarket/internal/domain/entity"
)

type ChatRepository interface {
	Create(ctx context.Context, chat *entity.Chat) error
	GetByID(ctx context.Context, id string) (*entity.Chat, error)
	ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Chat, int64, error)
	Update(ctx context.Context, chat *entity.Chat) error

	// Message methods. Messages are an append-only log per chat, ordered
	// by creation time.
	CreateMessage(ctx context.Context, message *entity.Message) error
	GetMessagesByChat(ctx context.Context, chatID string) ([]*entity.Message, error)
	MarkMessagesRead(ctx context.Context, chatID, readerID string) error
}
