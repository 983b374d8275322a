package entity

import "time"

type Message struct {
	ID         string `json:"id" firestore:"id"`
	ChatID     string `json:"chat_id" firestore:"chatId"`
	SenderID   string `json:"sender_id" firestore:"senderId"`
	SenderName string `json:"sender_name" firestore:"senderName"`

	// Content is stored post-filter. When IsFiltered is true the original
	// text was redacted destructively and is not retained anywhere.
	Content    string `json:"content" firestore:"content"`
	IsFiltered bool   `json:"is_filtered" firestore:"isFiltered"`

	IsRead    bool      `json:"is_read" firestore:"isRead"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}
