package dto

import (
	"freight-matching-service/internal/domain"
	"freight-matching-service/internal/services"
)

// ComplianceRequest carries a snapshot to audit. BaselineDailyLoss falls back
// to the configured value when omitted.
type ComplianceRequest struct {
	Orders            []domain.Order `json:"orders"`
	Routes            []domain.Route `json:"routes"`
	Trucks            []domain.Truck `json:"trucks"`
	BaselineDailyLoss *float64       `json:"baseline_daily_loss" binding:"omitempty,gte=0"`
}

func (r ComplianceRequest) Snapshot() domain.FleetSnapshot {
	return domain.FleetSnapshot{Orders: r.Orders, Routes: r.Routes, Trucks: r.Trucks}
}

type ComplianceResponse struct {
	Reports []services.ValidationReport `json:"reports"`
	Summary services.SummaryReport      `json:"summary"`
}
