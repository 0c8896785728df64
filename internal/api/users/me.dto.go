package users

import "time"

type MeResponse struct {
	User    UserDTO    `json:"user"`
	Premium PremiumDTO `json:"premium"`
	Access  AccessDTO  `json:"access"`
}

/* ---------- USER ---------- */

type UserDTO struct {
	ID          uint   `json:"id"`
	Email       string `json:"email"`
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Role        string `json:"role"`
	Status      string `json:"status"`
	IsVerified  bool   `json:"is_verified"`
}

/* ---------- PREMIUM ---------- */

type PremiumDTO struct {
	IsPremium   bool       `json:"isPremium"`
	Plan        *string    `json:"plan"`
	PurchasedAt *time.Time `json:"purchasedAt,omitempty"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
}

/* ---------- ACCESS ---------- */

type AccessDTO struct {
	State        string   `json:"state"`
	Badge        string   `json:"badge,omitempty"`
	Capabilities []string `json:"capabilities"`
}
