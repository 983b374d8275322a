package repository

import (
	"context"
	"time"

	"agromarket/internal/domain/entity"
)

type NotificationRepository interface {
	// Create prepends the notification to the user's feed, keeping only
	// the most recent entries (capped per user).
	Create(ctx context.Context, notification *entity.Notification) error
	ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Notification, int64, error)
	MarkRead(ctx context.Context, userID, notificationID string) error
	MarkAllRead(ctx context.Context, userID string) error
}

type PriceDropHistoryRepository interface {
	Create(ctx context.Context, record *entity.PriceDropNotification) error

	// GetLatest returns the most recent record for (user, ad), or a
	// NOT_FOUND error when none exists.
	GetLatest(ctx context.Context, userID, adID string) (*entity.PriceDropNotification, error)
	ListByUserID(ctx context.Context, userID string) ([]*entity.PriceDropNotification, error)
}

type OpportunityRepository interface {
	// Mark upserts the (user, ad) marker, replacing any prior timestamp.
	Mark(ctx context.Context, userID, adID string, markedAt time.Time) error
	Get(ctx context.Context, userID, adID string) (*entity.Opportunity, error)
	Remove(ctx context.Context, userID, adID string) error
}
