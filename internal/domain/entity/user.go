package entity

import "time"

// Plan tiers. PlanHarvest grants unlimited lead unlocks.
const (
	PlanSeed    = "seed"
	PlanBoost   = "boost"
	PlanHarvest = "harvest"
)

type User struct {
	ID       string `json:"id" firestore:"id"`
	Email    string `json:"email" firestore:"email"`
	Name     string `json:"name" firestore:"name"`
	Phone    string `json:"phone" firestore:"phone"`
	WhatsApp string `json:"whatsapp,omitempty" firestore:"whatsapp,omitempty"`
	Role     string `json:"role" firestore:"role"` // "user", "admin"
	Plan     string `json:"plan" firestore:"plan"` // "seed", "boost", "harvest"
	Status   string `json:"status" firestore:"status"`

	Location  string    `json:"location,omitempty" firestore:"location,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty" firestore:"avatarURL,omitempty"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

func (u *User) HasUnlimitedUnlocks() bool {
	return u.Plan == PlanHarvest
}
