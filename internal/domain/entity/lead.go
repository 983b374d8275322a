package entity

import "time"

// Lead is the monetized side of a Chat, keyed by the same deterministic
// chat ID. Status only ever moves pending -> unlocked.
type Lead struct {
	ChatID   string `json:"chat_id" firestore:"chatId"`
	AdID     string `json:"ad_id" firestore:"adId"`
	SellerID string `json:"seller_id" firestore:"sellerId"`
	BuyerID  string `json:"buyer_id" firestore:"buyerId"`
	Status   string `json:"status" firestore:"status"` // "pending" | "unlocked"

	UnlockedAt    *time.Time `json:"unlocked_at,omitempty" firestore:"unlockedAt,omitempty"`
	CostInCredits int        `json:"cost_in_credits,omitempty" firestore:"costInCredits,omitempty"`
	CreatedAt     time.Time  `json:"created_at" firestore:"createdAt"`
}

func (l *Lead) IsUnlocked() bool {
	return l.Status == LeadStatusUnlocked
}
