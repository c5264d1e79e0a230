package inventory

import (
	"context"
	"time"

	"github.com/erp/erpcore/internal/domain/inventory"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AlertService lists and resolves inventory alerts
type AlertService struct {
	repo   inventory.AlertRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewAlertService creates a new AlertService
func NewAlertService(repo inventory.AlertRepository, logger *zap.Logger) *AlertService {
	return &AlertService{repo: repo, logger: logger, now: time.Now}
}

// List returns alerts newest first, optionally filtered by resolution
func (s *AlertService) List(ctx context.Context, query AlertListFilter) ([]AlertResponse, error) {
	alerts, err := s.repo.FindAll(ctx, inventory.AlertFilter{Resolved: query.Resolved})
	if err != nil {
		return nil, err
	}
	result := make([]AlertResponse, 0, len(alerts))
	for _, a := range alerts {
		result = append(result, ToAlertResponse(a))
	}
	return result, nil
}

// Resolve closes an open alert
func (s *AlertService) Resolve(ctx context.Context, id uuid.UUID) (*AlertResponse, error) {
	alert, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := alert.Resolve(s.now().UTC()); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, alert); err != nil {
		return nil, err
	}

	s.logger.Info("Inventory alert resolved",
		zap.String("alert_id", alert.ID.String()),
		zap.String("product_id", alert.ProductID.String()))

	resp := ToAlertResponse(alert)
	return &resp, nil
}
