package domain

import "time"

// Review represents a renter's rating of a property
type Review struct {
	ID         int64
	PropertyID int64
	RenterID   int64
	Rating     int
	Comment    string

	CreatedAt time.Time
}
