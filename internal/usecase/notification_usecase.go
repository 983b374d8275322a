package usecase

import (
	"context"
	"time"

	"agromarket/internal/domain/entity"
	"agromarket/internal/domain/repository"
)

type NotificationUseCase struct {
	notifRepo   repository.NotificationRepository
	historyRepo repository.PriceDropHistoryRepository

	now func() time.Time
}

func NewNotificationUseCase(
	notifRepo repository.NotificationRepository,
	historyRepo repository.PriceDropHistoryRepository,
) *NotificationUseCase {
	return &NotificationUseCase{
		notifRepo:   notifRepo,
		historyRepo: historyRepo,
		now:         time.Now,
	}
}

type NotificationStats struct {
	TotalNotifications int     `json:"total_notifications"`
	Last24Hours        int     `json:"last_24_hours"`
	TotalSavings       float64 `json:"total_savings"`
}

func (uc *NotificationUseCase) ListNotifications(ctx context.Context, userID string, limit, offset int) ([]*entity.Notification, int64, error) {
	return uc.notifRepo.ListByUserID(ctx, userID, limit, offset)
}

func (uc *NotificationUseCase) MarkRead(ctx context.Context, userID, notificationID string) error {
	return uc.notifRepo.MarkRead(ctx, userID, notificationID)
}

func (uc *NotificationUseCase) MarkAllRead(ctx context.Context, userID string) error {
	return uc.notifRepo.MarkAllRead(ctx, userID)
}

func (uc *NotificationUseCase) ListPriceDropHistory(ctx context.Context, userID string) ([]*entity.PriceDropNotification, error) {
	return uc.historyRepo.ListByUserID(ctx, userID)
}

// GetStats summarizes the user's price-drop history: total alerts,
// alerts in the last 24 hours, and the summed price reductions.
func (uc *NotificationUseCase) GetStats(ctx context.Context, userID string) (*NotificationStats, error) {
	records, err := uc.historyRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &NotificationStats{TotalNotifications: len(records)}
	cutoff := uc.now().Add(-24 * time.Hour)

	for _, record := range records {
		if record.NotifiedAt.After(cutoff) {
			stats.Last24Hours++
		}
		stats.TotalSavings += record.OldPrice - record.NewPrice
	}

	return stats, nil
}
