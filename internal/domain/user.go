package domain

import "time"

// User represents a registered account (renter and/or lister)
type User struct {
	ID           int64
	Username     string
	PasswordHash string // opaque to the booking core
	Salt         string
	Role         string
	Email        *string
	FirstName    string
	LastName     string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserUpdate partial update of a user: one field per updatable column,
// nil means "leave as is"
type UserUpdate struct {
	Username     *string
	PasswordHash *string
	Salt         *string
	Role         *string
	Email        *string
	FirstName    *string
	LastName     *string
}

// IsEmpty returns true if nothing is to be updated
func (u *UserUpdate) IsEmpty() bool {
	return u.Username == nil &&
		u.PasswordHash == nil &&
		u.Salt == nil &&
		u.Role == nil &&
		u.Email == nil &&
		u.FirstName == nil &&
		u.LastName == nil
}
