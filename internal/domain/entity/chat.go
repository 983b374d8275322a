package entity

import (
	"fmt"
	"time"
)

// Lead/chat status values. A chat starts pending and flips to unlocked
// exactly once, when the seller pays for the lead.
const (
	LeadStatusPending  = "pending"
	LeadStatusUnlocked = "unlocked"
)

type Chat struct {
	ID string `json:"id" firestore:"id"`

	// Ad snapshot captured at chat creation. Not live-synced with the
	// listing: the conversation keeps the context it was opened under.
	AdID    string  `json:"ad_id" firestore:"adId"`
	AdTitle string  `json:"ad_title" firestore:"adTitle"`
	AdPrice float64 `json:"ad_price" firestore:"adPrice"`
	AdImage string  `json:"ad_image,omitempty" firestore:"adImage,omitempty"`

	SellerID   string `json:"seller_id" firestore:"sellerId"`
	SellerName string `json:"seller_name" firestore:"sellerName"`
	BuyerID    string `json:"buyer_id" firestore:"buyerId"`
	BuyerName  string `json:"buyer_name" firestore:"buyerName"`

	// Participants duplicates [SellerID, BuyerID] for array-contains
	// queries.
	Participants []string `json:"-" firestore:"participants"`

	LastMessage   string    `json:"last_message,omitempty" firestore:"lastMessage,omitempty"`
	LastMessageAt time.Time `json:"last_message_at" firestore:"lastMessageAt"`

	// Unread counters per participant ID. Incremented for the receiver on
	// every send, zeroed only when that participant marks the chat read.
	UnreadCount map[string]int `json:"unread_count" firestore:"unreadCount"`

	Status    string    `json:"status" firestore:"status"` // "pending" | "unlocked"
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// ChatID derives the deterministic conversation key. One chat per
// (ad, seller, buyer) triple.
func ChatID(adID, sellerID, buyerID string) string {
	return fmt.Sprintf("chat_%s_%s_%s", adID, sellerID, buyerID)
}

func (c *Chat) IsParticipant(userID string) bool {
	return userID == c.SellerID || userID == c.BuyerID
}

// OtherParticipant returns the counterpart of userID in this chat, or ""
// when userID is not a participant.
func (c *Chat) OtherParticipant(userID string) string {
	switch userID {
	case c.SellerID:
		return c.BuyerID
	case c.BuyerID:
		return c.SellerID
	}
	return ""
}
