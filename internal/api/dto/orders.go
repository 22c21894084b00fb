package dto

import (
	"freight-matching-service/internal/domain"
	"freight-matching-service/internal/services"
)

type ValidateOrderRequest struct {
	Order *domain.Order `json:"order" binding:"required"`
	Route *domain.Route `json:"route" binding:"required"`
	Truck *domain.Truck `json:"truck" binding:"required"`
}

type BatchRequest struct {
	Orders []domain.Order `json:"orders" binding:"required"`
	Routes []domain.Route `json:"routes"`
	Trucks []domain.Truck `json:"trucks"`
}

// BatchResponse maps order ids to their chosen match.
type BatchResponse struct {
	Results services.BatchResult `json:"results"`
	Valid   int                  `json:"valid_count"`
	Invalid int                  `json:"invalid_count"`
}
