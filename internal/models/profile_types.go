package models

import "time"

// ShippingProfile is the single primary profile of a user, table 'customer_profiles'.
type ShippingProfile struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	FirstName string    `json:"firstName" db:"first_name"`
	LastName  string    `json:"lastName" db:"last_name"`
	Phone     string    `json:"phone" db:"phone"`
	Address   string    `json:"address" db:"address"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// FullName joins first and last name, skipping the "-" placeholder.
func (p ShippingProfile) FullName() string {
	if p.LastName == "" || p.LastName == "-" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// Address is one of many saved addresses of a user, table 'addresses'.
// At most one address per user has IsPrimary set.
type Address struct {
	ID            int64     `json:"id" db:"id"`
	UserID        int64     `json:"userId" db:"user_id"`
	Label         string    `json:"label" db:"label"`
	RecipientName string    `json:"recipientName" db:"recipient_name"`
	Phone         string    `json:"phone" db:"phone"`
	Address       string    `json:"address" db:"address"`
	IsPrimary     bool      `json:"isPrimary" db:"is_primary"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}
