package models

import (
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// CreateReviewRequest запрос на создание отзыва
type CreateReviewRequest struct {
	PropertyID int64  `json:"-"`
	RenterID   int64  `json:"-"` // из заголовка авторизации
	Rating     int    `json:"rating"`
	Comment    string `json:"comment,omitempty"`
}

// ReviewResponse ответ с данными отзыва
type ReviewResponse struct {
	ID         int64     `json:"id"`
	PropertyID int64     `json:"propertyId"`
	RenterID   int64     `json:"renterId"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ReviewListResponse ответ со списком отзывов
type ReviewListResponse struct {
	Reviews []ReviewResponse `json:"reviews"`
}

// FromDomainReview конвертирует domain модель в DTO
func FromDomainReview(r *domain.Review) *ReviewResponse {
	if r == nil {
		return nil
	}

	return &ReviewResponse{
		ID:         r.ID,
		PropertyID: r.PropertyID,
		RenterID:   r.RenterID,
		Rating:     r.Rating,
		Comment:    r.Comment,
		CreatedAt:  r.CreatedAt,
	}
}

// FromDomainReviewList конвертирует список domain моделей в DTO
func FromDomainReviewList(reviews []*domain.Review) *ReviewListResponse {
	resp := &ReviewListResponse{
		Reviews: make([]ReviewResponse, 0, len(reviews)),
	}

	for _, r := range reviews {
		resp.Reviews = append(resp.Reviews, *FromDomainReview(r))
	}

	return resp
}
