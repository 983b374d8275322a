package entity

import "time"

// Notification types shown in the user's feed.
const (
	NotificationTypeSystem     = "SYSTEM"
	NotificationTypeSecurity   = "SECURITY"
	NotificationTypePromo      = "PROMO"
	NotificationTypeAdStatus   = "AD_STATUS"
	NotificationTypeNewMessage = "NEW_MESSAGE"
)

type Notification struct {
	ID        string    `json:"id" firestore:"id"`
	UserID    string    `json:"user_id" firestore:"userId"`
	Type      string    `json:"type" firestore:"type"`
	Title     string    `json:"title" firestore:"title"`
	Content   string    `json:"content" firestore:"content"`
	Link      string    `json:"link,omitempty" firestore:"link,omitempty"`
	IsRead    bool      `json:"is_read" firestore:"isRead"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}

// PriceDropNotification is the append-only history record behind the
// 24-hour per (user, ad) cooldown. Most recent wins on lookup.
type PriceDropNotification struct {
	ID          string    `json:"id" firestore:"id"`
	UserID      string    `json:"user_id" firestore:"userId"`
	AdID        string    `json:"ad_id" firestore:"adId"`
	AdTitle     string    `json:"ad_title" firestore:"adTitle"`
	OldPrice    float64   `json:"old_price" firestore:"oldPrice"`
	NewPrice    float64   `json:"new_price" firestore:"newPrice"`
	PercentDrop float64   `json:"percent_drop" firestore:"percentDrop"`
	NotifiedAt  time.Time `json:"notified_at" firestore:"notifiedAt"`
	Channels    []string  `json:"channels" firestore:"channels"` // "email", "push"
	EmailSent   bool      `json:"email_sent" firestore:"emailSent"`
	PushSent    bool      `json:"push_sent" firestore:"pushSent"`
}

// Opportunity marks an ad whose price recently dropped for a user.
// Active for a fixed window from MarkedAt; re-marking replaces the
// timestamp rather than stacking windows.
type Opportunity struct {
	UserID   string    `json:"user_id" firestore:"userId"`
	AdID     string    `json:"ad_id" firestore:"adId"`
	MarkedAt time.Time `json:"marked_at" firestore:"markedAt"`
}
