package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Property represents a listing owned by exactly one user
type Property struct {
	ID            int64
	OwnerID       int64 // immutable after creation
	Name          string
	Description   string
	Address       string
	PricePerNight decimal.Decimal
	Rooms         int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOwnedBy returns true if userID is the lister of the property
func (p *Property) IsOwnedBy(userID int64) bool {
	return p.OwnerID == userID
}
