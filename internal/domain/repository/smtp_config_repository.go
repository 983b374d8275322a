package repository

import (
	"context"

	"agromarket/internal/domain/entity"
)

type SMTPConfigRepository interface {
	Get(ctx context.Context) (*entity.SMTPConfig, error)
	Save(ctx context.Context, config *entity.SMTPConfig) error
}
