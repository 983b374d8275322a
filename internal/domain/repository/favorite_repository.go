package repository

import (
	"context"

	"agromarket/internal/domain/entity"
)

type FavoriteRepository interface {
	Create(ctx context.Context, favorite *entity.Favorite) error
	Delete(ctx context.Context, id string) error
	GetByUserAndAd(ctx context.Context, userID, adID string) (*entity.Favorite, error)
	ListByUserID(ctx context.Context, userID string) ([]*entity.Favorite, error)

	// ListAll feeds the price-drop sweep across every watcher.
	ListAll(ctx context.Context) ([]*entity.Favorite, error)
	ListByAdID(ctx context.Context, adID string) ([]*entity.Favorite, error)
}
