package inventory

import (
	"context"

	"github.com/erp/erpcore/internal/domain/inventory"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SupplierService manages suppliers
type SupplierService struct {
	repo   inventory.SupplierRepository
	logger *zap.Logger
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(repo inventory.SupplierRepository, logger *zap.Logger) *SupplierService {
	return &SupplierService{repo: repo, logger: logger}
}

// Create adds a supplier
func (s *SupplierService) Create(ctx context.Context, req SupplierRequest) (*SupplierResponse, error) {
	supplier, err := inventory.NewSupplier(req.details())
	if err != nil {
		return nil, err
	}
	if req.IsActive != nil {
		supplier.SetActive(*req.IsActive)
	}
	if err := s.repo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	s.logger.Info("Supplier created",
		zap.String("supplier_id", supplier.ID.String()),
		zap.String("name", supplier.Name))

	resp := ToSupplierResponse(supplier)
	return &resp, nil
}

// Update replaces a supplier's details
func (s *SupplierService) Update(ctx context.Context, id uuid.UUID, req SupplierRequest) (*SupplierResponse, error) {
	supplier, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := supplier.Update(req.details()); err != nil {
		return nil, err
	}
	if req.IsActive != nil {
		supplier.SetActive(*req.IsActive)
	}
	if err := s.repo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	resp := ToSupplierResponse(supplier)
	return &resp, nil
}

// Get returns a supplier
func (s *SupplierService) Get(ctx context.Context, id uuid.UUID) (*SupplierResponse, error) {
	supplier, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToSupplierResponse(supplier)
	return &resp, nil
}

// List returns suppliers ordered by name
func (s *SupplierService) List(ctx context.Context, includeInactive bool) ([]SupplierResponse, error) {
	suppliers, err := s.repo.FindAll(ctx, includeInactive)
	if err != nil {
		return nil, err
	}
	result := make([]SupplierResponse, 0, len(suppliers))
	for _, sp := range suppliers {
		result = append(result, ToSupplierResponse(sp))
	}
	return result, nil
}
