package inventory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/erp/erpcore/internal/domain/inventory"
	"github.com/erp/erpcore/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// MockStockAlertNotifier is a mock notifier for testing
type MockStockAlertNotifier struct {
	mu     sync.Mutex
	alerts []*inventory.InventoryAlert
}

func (n *MockStockAlertNotifier) SendAlert(_ context.Context, alert *inventory.InventoryAlert) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.alerts = append(n.alerts, alert)
	return nil
}

func (n *MockStockAlertNotifier) GetAlerts() []*inventory.InventoryAlert {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]*inventory.InventoryAlert(nil), n.alerts...)
}

// recordOut applies an OUT movement to p and returns the raised event
func recordOut(t *testing.T, p *inventory.Product, qty int) *inventory.MovementRecordedEvent {
	t.Helper()
	m, err := inventory.NewMovement(p.ID, inventory.MovementTypeOut, qty, "sale")
	require.NoError(t, err)
	require.NoError(t, p.ApplyMovement(m))
	events := p.GetDomainEvents()
	p.ClearDomainEvents()
	require.Len(t, events, 1)
	return events[0].(*inventory.MovementRecordedEvent)
}

func TestStockAlertHandler_Handle(t *testing.T) {
	logger := zaptest.NewLogger(t)

	t.Run("raises low stock alert", func(t *testing.T) {
		products := new(MockProductRepository)
		alerts := new(MockAlertRepository)
		notifier := &MockStockAlertNotifier{}
		handler := NewStockAlertHandler(products, alerts, logger).WithNotifier(notifier)

		product := newTestProduct(15, 10, nil)
		event := recordOut(t, product, 10)

		products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		alerts.On("FindOpen", mock.Anything, product.ID, inventory.AlertTypeLowStock).Return(nil, shared.NewNotFoundError("Alert"))
		alerts.On("Save", mock.Anything, mock.MatchedBy(func(a *inventory.InventoryAlert) bool {
			return a.ProductID == product.ID && a.Type == inventory.AlertTypeLowStock && !a.IsResolved
		})).Return(nil)

		require.NoError(t, handler.Handle(context.Background(), event))

		sent := notifier.GetAlerts()
		require.Len(t, sent, 1)
		assert.Contains(t, sent[0].Message, "BOLT-10")
		assert.Contains(t, sent[0].Message, "5 units, minimum 10")
		alerts.AssertExpectations(t)
	})

	t.Run("keeps a single open alert", func(t *testing.T) {
		products := new(MockProductRepository)
		alerts := new(MockAlertRepository)
		handler := NewStockAlertHandler(products, alerts, logger)

		product := newTestProduct(12, 10, nil)
		event := recordOut(t, product, 4)
		existing, err := inventory.NewInventoryAlert(product.ID, inventory.AlertTypeLowStock, "low")
		require.NoError(t, err)

		products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		alerts.On("FindOpen", mock.Anything, product.ID, inventory.AlertTypeLowStock).Return(existing, nil)

		require.NoError(t, handler.Handle(context.Background(), event))
		alerts.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("concurrent duplicate is ignored", func(t *testing.T) {
		products := new(MockProductRepository)
		alerts := new(MockAlertRepository)
		handler := NewStockAlertHandler(products, alerts, logger)

		product := newTestProduct(12, 10, nil)
		event := recordOut(t, product, 4)

		products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		alerts.On("FindOpen", mock.Anything, product.ID, inventory.AlertTypeLowStock).Return(nil, shared.NewNotFoundError("Alert"))
		alerts.On("Save", mock.Anything, mock.Anything).Return(shared.NewDomainError(shared.CodeAlreadyExists, "Alert already exists"))

		assert.NoError(t, handler.Handle(context.Background(), event))
	})

	t.Run("normal stock raises nothing", func(t *testing.T) {
		products := new(MockProductRepository)
		alerts := new(MockAlertRepository)
		handler := NewStockAlertHandler(products, alerts, logger)

		product := newTestProduct(40, 10, intPtr(50))
		event := recordOut(t, product, 5)

		require.NoError(t, handler.Handle(context.Background(), event))
		products.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("repository failure is returned", func(t *testing.T) {
		products := new(MockProductRepository)
		alerts := new(MockAlertRepository)
		handler := NewStockAlertHandler(products, alerts, logger)

		product := newTestProduct(12, 10, nil)
		event := recordOut(t, product, 4)

		products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		alerts.On("FindOpen", mock.Anything, product.ID, inventory.AlertTypeLowStock).Return(nil, errors.New("connection reset"))

		assert.Error(t, handler.Handle(context.Background(), event))
	})

	t.Run("rejects other events", func(t *testing.T) {
		handler := NewStockAlertHandler(new(MockProductRepository), new(MockAlertRepository), logger)
		other := shared.NewBaseDomainEvent("accounting.invoice.created", "Invoice", uuid.New())
		assert.Error(t, handler.Handle(context.Background(), &other))
	})
}

func TestStockAlertHandler_EventTypes(t *testing.T) {
	handler := NewStockAlertHandler(nil, nil, zaptest.NewLogger(t))
	assert.Equal(t, []string{inventory.EventTypeMovementRecorded}, handler.EventTypes())
}
