package entity

import "time"

// Ad statuses mirror the listing lifecycle.
const (
	AdStatusActive  = "ACTIVE"
	AdStatusPaused  = "PAUSED"
	AdStatusExpired = "EXPIRED"
	AdStatusBlocked = "BLOCKED"
	AdStatusPending = "PENDING"
	AdStatusSold    = "SOLD"
)

type Ad struct {
	ID          string    `json:"id" firestore:"id"`
	Title       string    `json:"title" firestore:"title"`
	Description string    `json:"description" firestore:"description"`
	Price       float64   `json:"price" firestore:"price"`
	City        string    `json:"city,omitempty" firestore:"city,omitempty"`
	State       string    `json:"state,omitempty" firestore:"state,omitempty"`
	CategoryID  string    `json:"category_id" firestore:"categoryId"`
	Images      []string  `json:"images" firestore:"images"`
	SellerID    string    `json:"seller_id" firestore:"sellerId"`
	Status      string    `json:"status" firestore:"status"`
	Views       int       `json:"views" firestore:"views"`
	IsPremium   bool      `json:"is_premium" firestore:"isPremium"`
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt   time.Time `json:"updated_at" firestore:"updatedAt"`
}

func (a *Ad) FirstImage() string {
	if len(a.Images) > 0 {
		return a.Images[0]
	}
	return ""
}
