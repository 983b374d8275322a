package entity

import "time"

type Favorite struct {
	ID     string `json:"id" firestore:"id"`
	UserID string `json:"user_id" firestore:"userId"`
	AdID   string `json:"ad_id" firestore:"adId"`

	// PriceAtFavorite is the listing price snapshotted when the user
	// favorited the ad. It never updates; price-drop detection compares
	// the live price against it.
	PriceAtFavorite float64 `json:"price_at_favorite" firestore:"priceAtFavorite"`

	FavoritedAt time.Time `json:"favorited_at" firestore:"favoritedAt"`
}

type PriceChange struct {
	HasChanged    bool    `json:"has_changed"`
	IsReduced     bool    `json:"is_reduced"`
	PercentChange float64 `json:"percent_change"`
}

// ComputePriceChange compares a favorite's snapshot price with the
// current listing price.
func ComputePriceChange(priceAtFavorite, currentPrice float64) PriceChange {
	if currentPrice == priceAtFavorite || priceAtFavorite == 0 {
		return PriceChange{}
	}

	percent := (currentPrice - priceAtFavorite) / priceAtFavorite * 100
	if percent < 0 {
		percent = -percent
	}

	return PriceChange{
		HasChanged:    true,
		IsReduced:     currentPrice < priceAtFavorite,
		PercentChange: percent,
	}
}
