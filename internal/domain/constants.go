package domain

import "github.com/shopspring/decimal"

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Money
const (
	PriceScale = 2 // digits after the decimal point for every stored amount
)

// Верхние границы сумм совпадают с колонками схемы:
// price_per_night NUMERIC(10, 2), total_price NUMERIC(12, 2)
var (
	MaxNightlyPrice = decimal.RequireFromString("99999999.99")
	MaxBookingTotal = decimal.RequireFromString("9999999999.99")
)

// Business validation constants
const (
	MinRating           = 1
	MaxRating           = 5
	DefaultRooms        = 1
	MaxRooms            = 100
	MaxUsernameLength   = 64
	MaxPropertyName     = 200
	MaxDescriptionChars = 5000
	MaxCommentLength    = 2000
)

// DefaultRole роль пользователя при регистрации, если не указана
const DefaultRole = "user"

// Roles допустимые роли пользователя
var Roles = []string{"user", "lister", "admin"}
