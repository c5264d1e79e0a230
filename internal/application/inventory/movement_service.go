package inventory

import (
	"context"

	"github.com/erp/erpcore/internal/domain/inventory"
	"github.com/erp/erpcore/internal/domain/shared"
	"github.com/erp/erpcore/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// MovementService records stock movements
type MovementService struct {
	productRepo  inventory.ProductRepository
	movementRepo inventory.MovementRepository
	events       shared.EventPublisher
	metrics      *telemetry.BusinessMetrics
	logger       *zap.Logger
}

// NewMovementService creates a new MovementService. events and metrics may be nil.
func NewMovementService(
	productRepo inventory.ProductRepository,
	movementRepo inventory.MovementRepository,
	events shared.EventPublisher,
	metrics *telemetry.BusinessMetrics,
	logger *zap.Logger,
) *MovementService {
	return &MovementService{
		productRepo:  productRepo,
		movementRepo: movementRepo,
		events:       events,
		metrics:      metrics,
		logger:       logger,
	}
}

// Record applies a movement to its product and stores both at once.
// OUT movements beyond the available stock fail with INSUFFICIENT_STOCK.
func (s *MovementService) Record(ctx context.Context, req RecordMovementRequest, userID uuid.UUID) (result *MovementResult, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "MovementService", "Record",
		attribute.String("movement.type", req.Type))
	defer func() { telemetry.EndSpan(span, err) }()

	movement, err := inventory.NewMovement(req.ProductID, inventory.MovementType(req.Type), req.Quantity, req.Reason)
	if err != nil {
		return nil, err
	}
	movement.WithReference(req.Reference).RecordedBy(userID)

	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if err := product.ApplyMovement(movement); err != nil {
		return nil, err
	}
	if err := s.productRepo.SaveWithMovement(ctx, product, movement); err != nil {
		return nil, err
	}

	s.publish(ctx, product)
	s.metrics.RecordMovement(ctx, movement.Type.String())
	s.logger.Info("Stock movement recorded",
		zap.String("product_id", product.ID.String()),
		zap.String("sku", product.SKU),
		zap.String("type", movement.Type.String()),
		zap.Int("quantity", movement.Quantity),
		zap.Int("stock_before", movement.StockBefore),
		zap.Int("stock_after", movement.StockAfter))

	return &MovementResult{
		Movement: ToMovementResponse(movement),
		Product:  ToProductResponse(product),
	}, nil
}

// List returns a page of movements, newest first
func (s *MovementService) List(ctx context.Context, query MovementListFilter) (*shared.Paginated[MovementResponse], error) {
	filter := inventory.MovementFilter{
		Filter:    pageOf(query.Page, query.Limit),
		ProductID: query.ProductID,
	}
	if query.Type != "" {
		t := inventory.MovementType(query.Type)
		filter.Type = &t
	}

	movements, total, err := s.movementRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]MovementResponse, 0, len(movements))
	for _, m := range movements {
		items = append(items, ToMovementResponse(m))
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

func (s *MovementService) publish(ctx context.Context, product *inventory.Product) {
	events := product.GetDomainEvents()
	product.ClearDomainEvents()
	if s.events == nil || len(events) == 0 {
		return
	}
	if err := s.events.Publish(ctx, events...); err != nil {
		s.logger.Warn("Failed to publish movement events", zap.Error(err))
	}
}
