package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// Request модели

// CreatePropertyRequest запрос на создание объекта
type CreatePropertyRequest struct {
	OwnerID       int64           `json:"-"` // из заголовка авторизации
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Address       string          `json:"address,omitempty"`
	PricePerNight decimal.Decimal `json:"pricePerNight"`
	Rooms         int             `json:"rooms,omitempty"` // 0 = DefaultRooms
}

// Response модели

// PropertyResponse ответ с данными объекта
type PropertyResponse struct {
	ID            int64     `json:"id"`
	OwnerID       int64     `json:"ownerId"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Address       string    `json:"address"`
	PricePerNight string    `json:"pricePerNight"` // "100.00"
	Rooms         int       `json:"rooms"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// PropertyListResponse ответ со списком объектов
type PropertyListResponse struct {
	Properties []PropertyResponse `json:"properties"`
}

// DeletePropertyResponse сколько зависимых строк удалено вместе с объектом
type DeletePropertyResponse struct {
	PropertyID      int64 `json:"propertyId"`
	BookingsDeleted int64 `json:"bookingsDeleted"`
	ReviewsDeleted  int64 `json:"reviewsDeleted"`
}

// Методы конвертации

// FromDomainProperty конвертирует domain модель в DTO
func FromDomainProperty(p *domain.Property) *PropertyResponse {
	if p == nil {
		return nil
	}

	return &PropertyResponse{
		ID:            p.ID,
		OwnerID:       p.OwnerID,
		Name:          p.Name,
		Description:   p.Description,
		Address:       p.Address,
		PricePerNight: p.PricePerNight.StringFixed(domain.PriceScale),
		Rooms:         p.Rooms,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// FromDomainPropertyList конвертирует список domain моделей в DTO
func FromDomainPropertyList(properties []*domain.Property) *PropertyListResponse {
	resp := &PropertyListResponse{
		Properties: make([]PropertyResponse, 0, len(properties)),
	}

	for _, p := range properties {
		resp.Properties = append(resp.Properties, *FromDomainProperty(p))
	}

	return resp
}
