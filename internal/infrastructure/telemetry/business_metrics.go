package telemetry

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// ErrMeterNil is returned when business metrics are built without a meter
var ErrMeterNil = errors.New("telemetry: meter is nil")

// LowStockCounter reports how many active products are at or below their minimum stock
type LowStockCounter interface {
	CountLowStock(ctx context.Context) (int64, error)
}

// BusinessMetrics records invoice and inventory activity.
// A nil *BusinessMetrics is valid and records nothing.
type BusinessMetrics struct {
	logger *zap.Logger

	invoiceCreated *Counter
	invoiceTotal   *Histogram
	invoiceStatus  *Counter
	movements      *Counter
	alertsRaised   *Counter
	lowStock       *Gauge

	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewBusinessMetrics registers the business instruments on meter
func NewBusinessMetrics(meter metric.Meter, logger *zap.Logger) (*BusinessMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	bm := &BusinessMetrics{logger: logger, stopCh: make(chan struct{})}

	var err error
	if bm.invoiceCreated, err = NewCounter(meter, "erp_invoice_created_total", "Invoices created", "{invoices}"); err != nil {
		return nil, err
	}
	if bm.invoiceTotal, err = NewHistogram(meter, "erp_invoice_total_amount", "Invoice totals", "{currency}", AmountBuckets...); err != nil {
		return nil, err
	}
	if bm.invoiceStatus, err = NewCounter(meter, "erp_invoice_status_changed_total", "Invoice status transitions", "{transitions}"); err != nil {
		return nil, err
	}
	if bm.movements, err = NewCounter(meter, "erp_inventory_movement_total", "Inventory movements recorded", "{movements}"); err != nil {
		return nil, err
	}
	if bm.alertsRaised, err = NewCounter(meter, "erp_inventory_alert_raised_total", "Inventory alerts raised", "{alerts}"); err != nil {
		return nil, err
	}
	if bm.lowStock, err = NewGauge(meter, "erp_inventory_low_stock_count", "Products at or below minimum stock", "{products}"); err != nil {
		return nil, err
	}
	return bm, nil
}

// RecordInvoiceCreated counts a new invoice and records its total
func (bm *BusinessMetrics) RecordInvoiceCreated(ctx context.Context, invoiceType string, total decimal.Decimal) {
	if bm == nil {
		return
	}
	bm.invoiceCreated.Inc(ctx, AttrInvoiceType.String(invoiceType))
	bm.invoiceTotal.Record(ctx, total.InexactFloat64(), AttrInvoiceType.String(invoiceType))
}

// RecordInvoiceStatus counts a status transition by target status
func (bm *BusinessMetrics) RecordInvoiceStatus(ctx context.Context, status string) {
	if bm == nil {
		return
	}
	bm.invoiceStatus.Inc(ctx, AttrInvoiceStatus.String(status))
}

// RecordMovement counts an inventory movement
func (bm *BusinessMetrics) RecordMovement(ctx context.Context, movementType string) {
	if bm == nil {
		return
	}
	bm.movements.Inc(ctx, AttrMovementType.String(movementType))
}

// RecordAlertRaised counts a newly opened inventory alert
func (bm *BusinessMetrics) RecordAlertRaised(ctx context.Context, alertType string) {
	if bm == nil {
		return
	}
	bm.alertsRaised.Inc(ctx, AttrAlertType.String(alertType))
}

// StartLowStockCollection samples the low stock count every interval until Stop
func (bm *BusinessMetrics) StartLowStockCollection(ctx context.Context, counter LowStockCounter, interval time.Duration) {
	if bm == nil || counter == nil {
		return
	}
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		bm.collectLowStock(ctx, counter)
		for {
			select {
			case <-ctx.Done():
				return
			case <-bm.stopCh:
				return
			case <-ticker.C:
				bm.collectLowStock(ctx, counter)
			}
		}
	}()
}

func (bm *BusinessMetrics) collectLowStock(ctx context.Context, counter LowStockCounter) {
	n, err := counter.CountLowStock(ctx)
	if err != nil {
		bm.logger.Warn("failed to collect low stock count", zap.Error(err))
		return
	}
	bm.lowStock.Record(ctx, n)
}

// Stop ends periodic collection
func (bm *BusinessMetrics) Stop() {
	if bm == nil {
		return
	}
	bm.stopOnce.Do(func() { close(bm.stopCh) })
}
