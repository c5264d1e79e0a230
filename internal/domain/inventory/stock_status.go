package inventory

// StockStatus is the stock level label of a product
type StockStatus string

const (
	StockStatusLow      StockStatus = "LOW"
	StockStatusNormal   StockStatus = "NORMAL"
	StockStatusOver     StockStatus = "OVER"
	StockStatusInactive StockStatus = "INACTIVE"
)

// String returns the string representation of StockStatus
func (s StockStatus) String() string {
	return string(s)
}

// NeedsAttention reports whether the status should raise an alert
func (s StockStatus) NeedsAttention() bool {
	return s == StockStatusLow || s == StockStatusOver
}

// ClassifyStock derives the stock status from the product's active flag,
// current stock and thresholds. Stock equal to the minimum counts as LOW;
// stock equal to the maximum is still NORMAL.
func ClassifyStock(isActive bool, current, minStock int, maxStock *int) StockStatus {
	switch {
	case !isActive:
		return StockStatusInactive
	case current <= minStock:
		return StockStatusLow
	case maxStock != nil && current > *maxStock:
		return StockStatusOver
	default:
		return StockStatusNormal
	}
}
