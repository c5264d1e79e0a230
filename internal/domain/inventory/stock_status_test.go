package inventory_test

import (
	"testing"

	"github.com/erp/erpcore/internal/domain/inventory"
	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestClassifyStock(t *testing.T) {
	tests := []struct {
		name    string
		active  bool
		current int
		min     int
		max     *int
		want    inventory.StockStatus
	}{
		{"inactive wins over low", false, 0, 10, intPtr(50), inventory.StockStatusInactive},
		{"inactive wins over over", false, 100, 10, intPtr(50), inventory.StockStatusInactive},
		{"below minimum", true, 5, 10, intPtr(50), inventory.StockStatusLow},
		{"equal to minimum is low", true, 10, 10, intPtr(50), inventory.StockStatusLow},
		{"between thresholds", true, 11, 10, intPtr(50), inventory.StockStatusNormal},
		{"equal to maximum is normal", true, 50, 10, intPtr(50), inventory.StockStatusNormal},
		{"above maximum", true, 51, 10, intPtr(50), inventory.StockStatusOver},
		{"no maximum never over", true, 1000000, 10, nil, inventory.StockStatusNormal},
		{"zero minimum with zero stock", true, 0, 0, nil, inventory.StockStatusLow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := inventory.ClassifyStock(tt.active, tt.current, tt.min, tt.max)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, inventory.ClassifyStock(tt.active, tt.current, tt.min, tt.max), "classification is idempotent")
		})
	}
}
