package model

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	StatusRequested = "requested"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
)

type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"-"`
	Role     string `json:"role"`
}

type Component struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Quantity int    `json:"quantity"`
}

type CheckoutRequest struct {
	ID              int       `json:"id"`
	UserID          int       `json:"user_id"`
	ComponentID     int       `json:"component_id"`
	Quantity        int       `json:"quantity"`
	Status          string    `json:"status"`
	RejectionReason *string   `json:"rejection_reason,omitempty"`
	CheckoutDate    time.Time `json:"checkout_date"`
}

// PendingCheckout is the admin review view: a requested checkout joined
// with the requester and the component it targets.
type PendingCheckout struct {
	ID            int       `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"-"`
	ComponentID   int       `json:"component_id"`
	ComponentName string    `json:"component"`
	Quantity      int       `json:"quantity"`
	CheckoutDate  time.Time `json:"checkout_date"`
}

// UserRequest is a user's own checkout joined with the component name.
type UserRequest struct {
	ID              int       `json:"id"`
	ComponentName   string    `json:"component"`
	Quantity        int       `json:"quantity"`
	Status          string    `json:"status"`
	RejectionReason *string   `json:"rejection_reason"`
	CheckoutDate    time.Time `json:"checkout_date"`
}
