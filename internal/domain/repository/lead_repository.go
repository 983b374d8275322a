package repository

import (
	"context"

	"agromarket/internal/domain/entity"
)

type LeadRepository interface {
	Create(ctx context.Context, lead *entity.Lead) error
	GetByChatID(ctx context.Context, chatID string) (*entity.Lead, error)
	Update(ctx context.Context, lead *entity.Lead) error
}
