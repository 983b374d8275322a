package entity

import "time"

// SMTP encryption modes.
const (
	SMTPEncryptionSSL  = "SSL"
	SMTPEncryptionTLS  = "TLS"
	SMTPEncryptionNone = "NONE"
)

// SMTPConfig is the admin-managed outbound mail configuration. Password
// is stored base64-encoded at rest and decoded when dialing.
type SMTPConfig struct {
	ID         string    `json:"id" firestore:"id"`
	Host       string    `json:"host" firestore:"host"`
	Port       int       `json:"port" firestore:"port"`
	User       string    `json:"user" firestore:"user"`
	Password   string    `json:"password" firestore:"password"`
	Encryption string    `json:"encryption" firestore:"encryption"` // "SSL" | "TLS" | "NONE"
	FromEmail  string    `json:"from_email" firestore:"fromEmail"`
	FromName   string    `json:"from_name" firestore:"fromName"`
	IsActive   bool      `json:"is_active" firestore:"isActive"`
	UpdatedAt  time.Time `json:"updated_at" firestore:"updatedAt"`
}

// ContactInfo is what the contact resolver hands out: either the real
// values from the user profile, or fixed masked placeholders.
type ContactInfo struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	WhatsApp string `json:"whatsapp,omitempty"`
}
