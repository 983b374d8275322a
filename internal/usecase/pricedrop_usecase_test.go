package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agromarket/internal/domain/entity"
)

type priceDropFixture struct {
	uc              *PriceDropUseCase
	favoriteRepo    *memFavoriteRepo
	adRepo          *memAdRepo
	historyRepo     *memHistoryRepo
	opportunityRepo *memOpportunityRepo
	notifRepo       *memNotificationRepo
	email           *fakeEmailService
	clock           time.Time
}

func seedPriceDropFixture(t *testing.T) *priceDropFixture {
	t.Helper()

	f := &priceDropFixture{
		favoriteRepo:    newMemFavoriteRepo(),
		adRepo:          newMemAdRepo(&entity.Ad{ID: "ad-1", Title: "Trator Valtra BM125", Price: 185000, SellerID: "seller-1"}),
		historyRepo:     newMemHistoryRepo(),
		opportunityRepo: newMemOpportunityRepo(),
		notifRepo:       newMemNotificationRepo(),
		email:           &fakeEmailService{},
		clock:           time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
	}
	userRepo := newMemUserRepo(&entity.User{ID: "buyer-1", Name: "Ana", Email: "ana@sitio.com.br"})

	f.uc = NewPriceDropUseCase(
		f.favoriteRepo,
		f.adRepo,
		userRepo,
		f.historyRepo,
		f.opportunityRepo,
		f.notifRepo,
		f.email,
		nil,
		24*time.Hour,
		7*24*time.Hour,
	)
	f.uc.now = func() time.Time { return f.clock }

	require.NoError(t, f.favoriteRepo.Create(context.Background(), &entity.Favorite{
		ID:              "fav-1",
		UserID:          "buyer-1",
		AdID:            "ad-1",
		PriceAtFavorite: 185000,
	}))

	return f
}

func (f *priceDropFixture) dropPriceTo(t *testing.T, price float64) {
	t.Helper()
	_, err := f.adRepo.UpdatePrice(context.Background(), "ad-1", price)
	require.NoError(t, err)
}

func TestScanAdRecordsDropAndNotifies(t *testing.T) {
	f := seedPriceDropFixture(t)
	f.dropPriceTo(t, 166500) // 10% down

	require.NoError(t, f.uc.ScanAd(context.Background(), "ad-1"))

	require.Len(t, f.historyRepo.records, 1)
	record := f.historyRepo.records[0]
	assert.Equal(t, "buyer-1", record.UserID)
	assert.Equal(t, float64(185000), record.OldPrice)
	assert.Equal(t, float64(166500), record.NewPrice)
	assert.InDelta(t, 10.0, record.PercentDrop, 0.01)
	assert.True(t, record.PushSent)
	assert.True(t, record.EmailSent)
	assert.ElementsMatch(t, []string{"push", "email"}, record.Channels)

	require.Len(t, f.notifRepo.notifications, 1)
	notification := f.notifRepo.notifications[0]
	assert.Equal(t, entity.NotificationTypePromo, notification.Type)
	assert.Contains(t, notification.Content, "R$ 185.000")
	assert.Contains(t, notification.Content, "R$ 166.500")
	assert.Equal(t, "/anuncio/ad-1", notification.Link)

	assert.Equal(t, []string{"ana@sitio.com.br"}, f.email.sent)

	opportunity, err := f.opportunityRepo.Get(context.Background(), "buyer-1", "ad-1")
	require.NoError(t, err)
	assert.Equal(t, f.clock, opportunity.MarkedAt)
}

func TestScanAdIgnoresPriceIncrease(t *testing.T) {
	f := seedPriceDropFixture(t)
	f.dropPriceTo(t, 190000)

	require.NoError(t, f.uc.ScanAd(context.Background(), "ad-1"))

	assert.Empty(t, f.historyRepo.records)
	assert.Empty(t, f.notifRepo.notifications)
	assert.Empty(t, f.email.sent)
}

func TestScanAdIgnoresUnchangedPrice(t *testing.T) {
	f := seedPriceDropFixture(t)

	require.NoError(t, f.uc.ScanAd(context.Background(), "ad-1"))

	assert.Empty(t, f.historyRepo.records)
}

func TestScanAdRespectsCooldown(t *testing.T) {
	f := seedPriceDropFixture(t)
	f.dropPriceTo(t, 166500)

	require.NoError(t, f.uc.ScanAd(context.Background(), "ad-1"))
	require.Len(t, f.historyRepo.records, 1)

	// A further drop 12 hours later stays silent.
	f.clock = f.clock.Add(12 * time.Hour)
	f.dropPriceTo(t, 150000)
	require.NoError(t, f.uc.ScanAd(context.Background(), "ad-1"))
	assert.Len(t, f.historyRepo.records, 1)

	// Once the full cooldown has elapsed the next drop alerts again.
	f.clock = f.clock.Add(12 * time.Hour)
	require.NoError(t, f.uc.ScanAd(context.Background(), "ad-1"))
	assert.Len(t, f.historyRepo.records, 2)
}

func TestScanAdEmailFailureIsBestEffort(t *testing.T) {
	f := seedPriceDropFixture(t)
	f.email.fail = true
	f.dropPriceTo(t, 166500)

	require.NoError(t, f.uc.ScanAd(context.Background(), "ad-1"))

	require.Len(t, f.historyRepo.records, 1)
	record := f.historyRepo.records[0]
	assert.False(t, record.EmailSent)
	assert.Equal(t, []string{"push"}, record.Channels)
	assert.Len(t, f.notifRepo.notifications, 1)
}

func TestRemarkOpportunityReplacesTimestamp(t *testing.T) {
	f := seedPriceDropFixture(t)
	f.dropPriceTo(t, 166500)
	require.NoError(t, f.uc.ScanAd(context.Background(), "ad-1"))
	firstMark := f.clock

	f.clock = f.clock.Add(48 * time.Hour)
	f.dropPriceTo(t, 150000)
	require.NoError(t, f.uc.ScanAd(context.Background(), "ad-1"))

	opportunity, err := f.opportunityRepo.Get(context.Background(), "buyer-1", "ad-1")
	require.NoError(t, err)
	assert.NotEqual(t, firstMark, opportunity.MarkedAt)
	assert.Equal(t, f.clock, opportunity.MarkedAt)
}

func TestOpportunityMarkersCappedPerUser(t *testing.T) {
	f := seedPriceDropFixture(t)

	for i := 0; i < 25; i++ {
		adID := fmt.Sprintf("ad-%02d", i)
		markedAt := f.clock.Add(time.Duration(i) * time.Minute)
		require.NoError(t, f.opportunityRepo.Mark(context.Background(), "buyer-1", adID, markedAt))
	}

	assert.Len(t, f.opportunityRepo.opportunities, maxOpportunitiesPerUser)

	// The five oldest markers were dropped; the newest survive.
	_, err := f.opportunityRepo.Get(context.Background(), "buyer-1", "ad-04")
	assert.Error(t, err)
	_, err = f.opportunityRepo.Get(context.Background(), "buyer-1", "ad-05")
	assert.NoError(t, err)
	_, err = f.opportunityRepo.Get(context.Background(), "buyer-1", "ad-24")
	assert.NoError(t, err)
}

func TestIsOpportunityWindow(t *testing.T) {
	f := seedPriceDropFixture(t)
	f.dropPriceTo(t, 166500)
	require.NoError(t, f.uc.ScanAd(context.Background(), "ad-1"))

	active, err := f.uc.IsOpportunity(context.Background(), "buyer-1", "ad-1")
	require.NoError(t, err)
	assert.True(t, active)

	// Still inside the window just before day seven.
	f.clock = f.clock.Add(7*24*time.Hour - time.Minute)
	active, err = f.uc.IsOpportunity(context.Background(), "buyer-1", "ad-1")
	require.NoError(t, err)
	assert.True(t, active)

	// Expired at the boundary; the marker is also removed.
	f.clock = f.clock.Add(time.Minute)
	active, err = f.uc.IsOpportunity(context.Background(), "buyer-1", "ad-1")
	require.NoError(t, err)
	assert.False(t, active)

	_, err = f.opportunityRepo.Get(context.Background(), "buyer-1", "ad-1")
	assert.Error(t, err)
}

func TestIsOpportunityWithoutMarker(t *testing.T) {
	f := seedPriceDropFixture(t)

	active, err := f.uc.IsOpportunity(context.Background(), "buyer-1", "ad-1")

	require.NoError(t, err)
	assert.False(t, active)
}

func TestUpdateAdPriceScansWatchers(t *testing.T) {
	f := seedPriceDropFixture(t)

	ad, err := f.uc.UpdateAdPrice(context.Background(), "ad-1", 166500)

	require.NoError(t, err)
	assert.Equal(t, float64(166500), ad.Price)
	assert.Len(t, f.historyRepo.records, 1)
}

func TestUpdateAdPriceRejectsNonPositive(t *testing.T) {
	f := seedPriceDropFixture(t)

	_, err := f.uc.UpdateAdPrice(context.Background(), "ad-1", 0)

	assert.Error(t, err)
	assert.Empty(t, f.historyRepo.records)
}
