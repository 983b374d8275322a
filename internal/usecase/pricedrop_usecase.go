package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"agromarket/internal/domain/entity"
	"agromarket/internal/domain/repository"
	"agromarket/internal/domain/service"
	ws "agromarket/internal/infrastructure/websocket"
	"agromarket/pkg/errors"
)

type PriceDropUseCase struct {
	favoriteRepo    repository.FavoriteRepository
	adRepo          repository.AdRepository
	userRepo        repository.UserRepository
	historyRepo     repository.PriceDropHistoryRepository
	opportunityRepo repository.OpportunityRepository
	notifRepo       repository.NotificationRepository
	emailService    service.EmailService
	wsManager       *ws.Manager

	cooldown          time.Duration
	opportunityWindow time.Duration

	now func() time.Time
}

func NewPriceDropUseCase(
	favoriteRepo repository.FavoriteRepository,
	adRepo repository.AdRepository,
	userRepo repository.UserRepository,
	historyRepo repository.PriceDropHistoryRepository,
	opportunityRepo repository.OpportunityRepository,
	notifRepo repository.NotificationRepository,
	emailService service.EmailService,
	wsManager *ws.Manager,
	cooldown time.Duration,
	opportunityWindow time.Duration,
) *PriceDropUseCase {
	return &PriceDropUseCase{
		favoriteRepo:      favoriteRepo,
		adRepo:            adRepo,
		userRepo:          userRepo,
		historyRepo:       historyRepo,
		opportunityRepo:   opportunityRepo,
		notifRepo:         notifRepo,
		emailService:      emailService,
		wsManager:         wsManager,
		cooldown:          cooldown,
		opportunityWindow: opportunityWindow,
		now:               time.Now,
	}
}

// UpdateAdPrice changes a listing's price and immediately scans its
// watchers. Used by the admin simulation endpoint.
func (uc *PriceDropUseCase) UpdateAdPrice(ctx context.Context, adID string, newPrice float64) (*entity.Ad, error) {
	if newPrice <= 0 {
		return nil, errors.InvalidInput("Price must be positive", nil)
	}

	ad, err := uc.adRepo.UpdatePrice(ctx, adID, newPrice)
	if err != nil {
		log.Printf("UpdateAdPrice Error: Failed to update price of ad %s: %v", adID, err)
		return nil, err
	}

	if err := uc.ScanAd(ctx, adID); err != nil {
		log.Printf("UpdateAdPrice Warning: Scan after price update of ad %s failed: %v", adID, err)
	}

	return ad, nil
}

// ScanAd checks every watcher of one ad for a price drop. A failure on
// one (user, ad) pair never stops the others.
func (uc *PriceDropUseCase) ScanAd(ctx context.Context, adID string) error {
	ad, err := uc.adRepo.GetByID(ctx, adID)
	if err != nil {
		return err
	}

	favorites, err := uc.favoriteRepo.ListByAdID(ctx, adID)
	if err != nil {
		return err
	}

	for _, favorite := range favorites {
		if err := uc.processFavorite(ctx, favorite, ad); err != nil {
			log.Printf("ScanAd Warning: Processing favorite %s failed: %v", favorite.ID, err)
		}
	}
	return nil
}

// ScanAll sweeps every favorite in the system. Ads are fetched once per
// distinct ID.
func (uc *PriceDropUseCase) ScanAll(ctx context.Context) error {
	favorites, err := uc.favoriteRepo.ListAll(ctx)
	if err != nil {
		return err
	}

	ads := make(map[string]*entity.Ad)
	for _, favorite := range favorites {
		ad, ok := ads[favorite.AdID]
		if !ok {
			var err error
			ad, err = uc.adRepo.GetByID(ctx, favorite.AdID)
			if err != nil {
				log.Printf("ScanAll Warning: Ad %s unavailable: %v", favorite.AdID, err)
				ads[favorite.AdID] = nil
				continue
			}
			ads[favorite.AdID] = ad
		}
		if ad == nil {
			continue
		}

		if err := uc.processFavorite(ctx, favorite, ad); err != nil {
			log.Printf("ScanAll Warning: Processing favorite %s failed: %v", favorite.ID, err)
		}
	}
	return nil
}

func (uc *PriceDropUseCase) processFavorite(ctx context.Context, favorite *entity.Favorite, ad *entity.Ad) error {
	change := entity.ComputePriceChange(favorite.PriceAtFavorite, ad.Price)
	if !change.IsReduced {
		return nil
	}

	// Cooldown: at most one alert per (user, ad) per window, measured
	// against the latest history record.
	latest, err := uc.historyRepo.GetLatest(ctx, favorite.UserID, favorite.AdID)
	if err == nil && uc.now().Sub(latest.NotifiedAt) < uc.cooldown {
		return nil
	}
	if err != nil && !errors.Is(err, "NOT_FOUND") {
		return err
	}

	record := &entity.PriceDropNotification{
		UserID:      favorite.UserID,
		AdID:        favorite.AdID,
		AdTitle:     ad.Title,
		OldPrice:    favorite.PriceAtFavorite,
		NewPrice:    ad.Price,
		PercentDrop: change.PercentChange,
		NotifiedAt:  uc.now(),
		Channels:    []string{"push"},
	}

	uc.notifyPriceDrop(ctx, record)

	if err := uc.opportunityRepo.Mark(ctx, favorite.UserID, favorite.AdID, uc.now()); err != nil {
		log.Printf("processFavorite Warning: Failed to mark opportunity for user %s, ad %s: %v", favorite.UserID, favorite.AdID, err)
	}

	uc.sendPriceDropEmail(ctx, record)

	if err := uc.historyRepo.Create(ctx, record); err != nil {
		log.Printf("processFavorite Error: Failed to record price drop for user %s, ad %s: %v", favorite.UserID, favorite.AdID, err)
		return err
	}

	return nil
}

func (uc *PriceDropUseCase) notifyPriceDrop(ctx context.Context, record *entity.PriceDropNotification) {
	notification := &entity.Notification{
		UserID: record.UserID,
		Type:   entity.NotificationTypePromo,
		Title:  "Queda de preço em um favorito",
		Content: fmt.Sprintf("%s caiu de %s para %s (-%.0f%%)",
			record.AdTitle,
			service.FormatBRL(record.OldPrice),
			service.FormatBRL(record.NewPrice),
			record.PercentDrop),
		Link: fmt.Sprintf("/anuncio/%s", record.AdID),
	}
	if err := uc.notifRepo.Create(ctx, notification); err != nil {
		log.Printf("notifyPriceDrop Warning: Failed to create notification for user %s: %v", record.UserID, err)
		return
	}
	record.PushSent = true

	if uc.wsManager != nil {
		uc.wsManager.SendEventToUser(record.UserID, ws.EventPriceDrop, record)
	}
}

// sendPriceDropEmail is best-effort. Transport failures are logged and
// never abort the scan.
func (uc *PriceDropUseCase) sendPriceDropEmail(ctx context.Context, record *entity.PriceDropNotification) {
	if uc.emailService == nil {
		return
	}

	user, err := uc.userRepo.GetByID(ctx, record.UserID)
	if err != nil {
		log.Printf("sendPriceDropEmail Warning: User %s not found: %v", record.UserID, err)
		return
	}
	if user.Email == "" {
		return
	}

	if err := uc.emailService.SendPriceDropAlert(ctx, user.Email, user.Name, record); err != nil {
		log.Printf("sendPriceDropEmail Warning: Failed to email user %s about ad %s: %v", record.UserID, record.AdID, err)
		return
	}

	record.EmailSent = true
	record.Channels = append(record.Channels, "email")
}

// IsOpportunity reports whether the (user, ad) marker is still inside
// its window. Expired markers are removed on read.
func (uc *PriceDropUseCase) IsOpportunity(ctx context.Context, userID, adID string) (bool, error) {
	opportunity, err := uc.opportunityRepo.Get(ctx, userID, adID)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return false, nil
		}
		return false, err
	}

	if uc.now().Sub(opportunity.MarkedAt) >= uc.opportunityWindow {
		if err := uc.opportunityRepo.Remove(ctx, userID, adID); err != nil {
			log.Printf("IsOpportunity Warning: Failed to remove expired opportunity for user %s, ad %s: %v", userID, adID, err)
		}
		return false, nil
	}

	return true, nil
}

// StartPriceScanJob sweeps all favorites on a fixed interval until ctx
// is cancelled.
func (uc *PriceDropUseCase) StartPriceScanJob(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		log.Printf("Price scan job started with interval %v", interval)
		for {
			select {
			case <-ticker.C:
				if err := uc.ScanAll(ctx); err != nil {
					log.Printf("Price scan job error: %v", err)
				}
			case <-ctx.Done():
				log.Printf("Price scan job stopped")
				return
			}
		}
	}()
}
