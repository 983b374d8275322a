package usecase

import (
	"context"
	"log"

	"agromarket/internal/domain/entity"
	"agromarket/internal/domain/repository"
	"agromarket/pkg/errors"
)

type FavoriteUseCase struct {
	favoriteRepo repository.FavoriteRepository
	adRepo       repository.AdRepository
}

func NewFavoriteUseCase(
	favoriteRepo repository.FavoriteRepository,
	adRepo repository.AdRepository,
) *FavoriteUseCase {
	return &FavoriteUseCase{
		favoriteRepo: favoriteRepo,
		adRepo:       adRepo,
	}
}

type FavoriteItem struct {
	*entity.Favorite
	Ad          *entity.Ad         `json:"ad,omitempty"`
	PriceChange entity.PriceChange `json:"price_change"`
}

// ToggleFavorite adds or removes the ad from the user's favorites.
// Returns true when the ad ends up favorited. A new favorite snapshots
// the current listing price for later drop detection.
func (uc *FavoriteUseCase) ToggleFavorite(ctx context.Context, userID, adID string) (bool, error) {
	existing, err := uc.favoriteRepo.GetByUserAndAd(ctx, userID, adID)
	if err == nil {
		if err := uc.favoriteRepo.Delete(ctx, existing.ID); err != nil {
			log.Printf("ToggleFavorite Error: Failed to remove favorite %s: %v", existing.ID, err)
			return true, err
		}
		return false, nil
	}
	if !errors.Is(err, "NOT_FOUND") {
		return false, err
	}

	ad, err := uc.adRepo.GetByID(ctx, adID)
	if err != nil {
		log.Printf("ToggleFavorite Error: Ad %s not found: %v", adID, err)
		return false, err
	}

	favorite := &entity.Favorite{
		UserID:          userID,
		AdID:            adID,
		PriceAtFavorite: ad.Price,
	}
	if err := uc.favoriteRepo.Create(ctx, favorite); err != nil {
		log.Printf("ToggleFavorite Error: Failed to create favorite for user %s, ad %s: %v", userID, adID, err)
		return false, err
	}

	return true, nil
}

// ListFavorites returns the user's favorites enriched with the live ad
// and the price movement since the snapshot. Favorites pointing at
// deleted ads are skipped.
func (uc *FavoriteUseCase) ListFavorites(ctx context.Context, userID string) ([]FavoriteItem, error) {
	favorites, err := uc.favoriteRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]FavoriteItem, 0, len(favorites))
	for _, favorite := range favorites {
		ad, err := uc.adRepo.GetByID(ctx, favorite.AdID)
		if err != nil {
			log.Printf("ListFavorites Warning: Ad %s unavailable for favorite %s: %v", favorite.AdID, favorite.ID, err)
			continue
		}

		items = append(items, FavoriteItem{
			Favorite:    favorite,
			Ad:          ad,
			PriceChange: entity.ComputePriceChange(favorite.PriceAtFavorite, ad.Price),
		})
	}

	return items, nil
}

type FavoriteStats struct {
	Total              int `json:"total"`
	WithPriceReduction int `json:"with_price_reduction"`
	SoldOrPaused       int `json:"sold_or_paused"`
}

// GetStats summarizes the user's favorites: how many track a reduced
// price and how many point at ads no longer active.
func (uc *FavoriteUseCase) GetStats(ctx context.Context, userID string) (*FavoriteStats, error) {
	favorites, err := uc.favoriteRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &FavoriteStats{Total: len(favorites)}
	for _, favorite := range favorites {
		ad, err := uc.adRepo.GetByID(ctx, favorite.AdID)
		if err != nil {
			continue
		}
		if entity.ComputePriceChange(favorite.PriceAtFavorite, ad.Price).IsReduced {
			stats.WithPriceReduction++
		}
		if ad.Status == entity.AdStatusSold || ad.Status == entity.AdStatusPaused {
			stats.SoldOrPaused++
		}
	}

	return stats, nil
}

func (uc *FavoriteUseCase) IsFavorited(ctx context.Context, userID, adID string) (bool, error) {
	_, err := uc.favoriteRepo.GetByUserAndAd(ctx, userID, adID)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, "NOT_FOUND") {
		return false, nil
	}
	return false, err
}
