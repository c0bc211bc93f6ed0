package domain

import "time"

// Client is a tenant: a merchant account that owns products and subscribes to
// at most one Plan at a time.
type Client struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	PasswordHash string    `json:"-"`
	PlanID       *uint     `json:"plan_id,omitempty"`
	Plan         *Plan     `json:"plan,omitempty"`
	Blocked      bool      `json:"blocked"`
	Paid         bool      `json:"paid"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Plan is a named bundle of boolean feature entitlements.
type Plan struct {
	ID          uint       `json:"id"`
	Name        string     `json:"name"`
	Features    FeatureSet `json:"features"`
	DefaultPlan bool       `json:"default_plan"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
