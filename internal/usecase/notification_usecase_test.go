package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agromarket/internal/domain/entity"
)

func TestGetStatsSummarizesHistory(t *testing.T) {
	historyRepo := newMemHistoryRepo()
	uc := NewNotificationUseCase(newMemNotificationRepo(), historyRepo)

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return now }

	records := []*entity.PriceDropNotification{
		{UserID: "buyer-1", AdID: "ad-1", OldPrice: 185000, NewPrice: 166500, NotifiedAt: now.Add(-2 * time.Hour)},
		{UserID: "buyer-1", AdID: "ad-2", OldPrice: 1500, NewPrice: 1200, NotifiedAt: now.Add(-30 * time.Hour)},
		{UserID: "other", AdID: "ad-3", OldPrice: 900, NewPrice: 800, NotifiedAt: now},
	}
	for _, record := range records {
		require.NoError(t, historyRepo.Create(context.Background(), record))
	}

	stats, err := uc.GetStats(context.Background(), "buyer-1")

	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalNotifications)
	assert.Equal(t, 1, stats.Last24Hours)
	assert.Equal(t, float64(18500+300), stats.TotalSavings)
}

func TestMarkReadRejectsOtherUsersNotification(t *testing.T) {
	notifRepo := newMemNotificationRepo()
	uc := NewNotificationUseCase(notifRepo, newMemHistoryRepo())

	require.NoError(t, notifRepo.Create(context.Background(), &entity.Notification{
		ID:     "notif-1",
		UserID: "other",
		Type:   entity.NotificationTypePromo,
	}))

	err := uc.MarkRead(context.Background(), "buyer-1", "notif-1")

	assert.Error(t, err)
}

func TestMarkAllRead(t *testing.T) {
	notifRepo := newMemNotificationRepo()
	uc := NewNotificationUseCase(notifRepo, newMemHistoryRepo())

	for i := 0; i < 3; i++ {
		require.NoError(t, notifRepo.Create(context.Background(), &entity.Notification{
			UserID: "buyer-1",
			Type:   entity.NotificationTypeNewMessage,
		}))
	}

	require.NoError(t, uc.MarkAllRead(context.Background(), "buyer-1"))

	notifications, _, err := uc.ListNotifications(context.Background(), "buyer-1", 10, 0)
	require.NoError(t, err)
	for _, notification := range notifications {
		assert.True(t, notification.IsRead)
	}
}
