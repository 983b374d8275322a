package repository

import (
	"context"

	"agromarket/internal/domain/entity"
)

type AdRepository interface {
	Create(ctx context.Context, ad *entity.Ad) error
	GetByID(ctx context.Context, id string) (*entity.Ad, error)
	Update(ctx context.Context, ad *entity.Ad) error
	UpdatePrice(ctx context.Context, id string, price float64) (*entity.Ad, error)
}
