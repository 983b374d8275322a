package entity

import "time"

// CreditBalance holds a user's lead credits. Balance is a non-negative
// integer; deductions floor at zero.
type CreditBalance struct {
	UserID    string    `json:"user_id" firestore:"userId"`
	Balance   int       `json:"balance" firestore:"balance"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

type CreditTransaction struct {
	ID              string    `json:"id" firestore:"id"`
	UserID          string    `json:"user_id" firestore:"userId"`
	Type            string    `json:"type" firestore:"type"` // "add", "deduct"
	Amount          int       `json:"amount" firestore:"amount"`
	PreviousBalance int       `json:"previous_balance" firestore:"previousBalance"`
	NewBalance      int       `json:"new_balance" firestore:"newBalance"`
	Reference       string    `json:"reference,omitempty" firestore:"reference,omitempty"` // e.g. unlocked chat ID
	Description     string    `json:"description" firestore:"description"`
	CreatedAt       time.Time `json:"created_at" firestore:"createdAt"`
}
