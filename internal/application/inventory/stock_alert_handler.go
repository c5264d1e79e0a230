package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/erp/erpcore/internal/domain/inventory"
	"github.com/erp/erpcore/internal/domain/shared"
	"github.com/erp/erpcore/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// StockAlertHandler handles MovementRecorded events and raises LOW_STOCK or
// OVER_STOCK alerts when a product's stock leaves the normal range.
// At most one open alert per product and type exists.
type StockAlertHandler struct {
	productRepo inventory.ProductRepository
	alertRepo   inventory.AlertRepository
	notifier    StockAlertNotifier
	metrics     *telemetry.BusinessMetrics
	logger      *zap.Logger
}

// StockAlertNotifier is the interface for sending stock alerts
// Implementations can support different channels (in-app, email, SMS, etc.)
type StockAlertNotifier interface {
	// SendAlert sends a stock alert notification
	SendAlert(ctx context.Context, alert *inventory.InventoryAlert) error
}

// NewStockAlertHandler creates a new handler for movement events
func NewStockAlertHandler(productRepo inventory.ProductRepository, alertRepo inventory.AlertRepository, logger *zap.Logger) *StockAlertHandler {
	return &StockAlertHandler{
		productRepo: productRepo,
		alertRepo:   alertRepo,
		logger:      logger,
	}
}

// WithNotifier sets the notifier for sending alerts
func (h *StockAlertHandler) WithNotifier(notifier StockAlertNotifier) *StockAlertHandler {
	h.notifier = notifier
	return h
}

// WithMetrics counts raised alerts
func (h *StockAlertHandler) WithMetrics(metrics *telemetry.BusinessMetrics) *StockAlertHandler {
	h.metrics = metrics
	return h
}

// EventTypes returns the event types this handler is interested in
func (h *StockAlertHandler) EventTypes() []string {
	return []string{inventory.EventTypeMovementRecorded}
}

// Handle processes a MovementRecordedEvent
func (h *StockAlertHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	recorded, ok := event.(*inventory.MovementRecordedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", inventory.EventTypeMovementRecorded),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			inventory.EventTypeMovementRecorded, event.EventType())
	}
	if !recorded.Status.NeedsAttention() {
		return nil
	}

	// the alert message reflects the stored product, not the event snapshot
	product, err := h.productRepo.FindByID(ctx, recorded.ProductID)
	if err != nil {
		return fmt.Errorf("failed to load product %s: %w", recorded.ProductID, err)
	}
	alert, needed := inventory.AlertFor(product)
	if !needed {
		return nil
	}

	_, err = h.alertRepo.FindOpen(ctx, product.ID, alert.Type)
	switch {
	case err == nil:
		h.logger.Debug("alert already open",
			zap.String("product_id", product.ID.String()),
			zap.String("alert_type", string(alert.Type)))
		return nil
	case !errors.Is(err, shared.ErrNotFound):
		return fmt.Errorf("failed to look up open alerts: %w", err)
	}

	if err := h.alertRepo.Save(ctx, alert); err != nil {
		// a concurrent movement opened the same alert first
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil
		}
		return fmt.Errorf("failed to save alert: %w", err)
	}

	h.metrics.RecordAlertRaised(ctx, string(alert.Type))
	h.logger.Warn("inventory alert raised",
		zap.String("product_id", product.ID.String()),
		zap.String("sku", product.SKU),
		zap.String("alert_type", string(alert.Type)),
		zap.Int("current_stock", product.CurrentStock),
		zap.Int("min_stock", product.MinStock),
	)

	if h.notifier != nil {
		if err := h.notifier.SendAlert(ctx, alert); err != nil {
			h.logger.Error("failed to send stock alert notification",
				zap.String("alert_id", alert.ID.String()),
				zap.Error(err),
			)
			// notification failure shouldn't fail the event handling
		}
	}
	return nil
}

// Ensure StockAlertHandler implements shared.EventHandler
var _ shared.EventHandler = (*StockAlertHandler)(nil)

// LoggingStockAlertNotifier is a simple notifier that logs alerts
type LoggingStockAlertNotifier struct {
	logger *zap.Logger
}

// NewLoggingStockAlertNotifier creates a new logging notifier
func NewLoggingStockAlertNotifier(logger *zap.Logger) *LoggingStockAlertNotifier {
	return &LoggingStockAlertNotifier{logger: logger}
}

// SendAlert logs the stock alert
func (n *LoggingStockAlertNotifier) SendAlert(_ context.Context, alert *inventory.InventoryAlert) error {
	n.logger.Warn("STOCK ALERT",
		zap.String("type", string(alert.Type)),
		zap.String("product_id", alert.ProductID.String()),
		zap.String("message", alert.Message),
	)
	return nil
}

var _ StockAlertNotifier = (*LoggingStockAlertNotifier)(nil)
