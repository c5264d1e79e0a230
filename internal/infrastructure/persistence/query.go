package persistence

import (
	"errors"
	"strings"

	"github.com/erp/erpcore/internal/domain/shared"
	"gorm.io/gorm"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	if strings.ToUpper(strings.TrimSpace(orderDir)) == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is empty or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

var (
	accountSortFields = map[string]bool{
		"code": true, "name": true, "type": true, "created_at": true,
	}
	transactionSortFields = map[string]bool{
		"date": true, "amount": true, "created_at": true,
	}
	invoiceSortFields = map[string]bool{
		"date": true, "number": true, "total": true, "client_name": true, "status": true, "created_at": true,
	}
	productSortFields = map[string]bool{
		"name": true, "sku": true, "price": true, "cost": true, "current_stock": true, "created_at": true,
	}
	movementSortFields = map[string]bool{
		"created_at": true, "quantity": true, "type": true,
	}
	userSortFields = map[string]bool{
		"name": true, "email": true, "created_at": true, "last_login_at": true,
	}
)

// orderAndPage applies a whitelisted ORDER BY plus LIMIT/OFFSET from filter.
// The id tie-breaker keeps pagination stable when sort keys repeat.
func orderAndPage(query *gorm.DB, filter shared.Filter, allowed map[string]bool, defaultField, defaultDir string) *gorm.DB {
	field := ValidateSortField(filter.OrderBy, allowed, defaultField)
	dir := defaultDir
	if filter.OrderBy != "" || filter.OrderDir != "" {
		dir = ValidateSortOrder(filter.OrderDir)
	}
	query = query.Order(field + " " + dir).Order("id " + dir)

	if filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	return query
}

// likePattern builds a case-insensitive LIKE pattern; columns must be wrapped in LOWER()
func likePattern(search string) string {
	return "%" + strings.ToLower(strings.TrimSpace(search)) + "%"
}

// translateError maps driver errors onto domain errors
func translateError(err error, resource string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.NewNotFoundError(resource)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.NewDomainError(shared.CodeAlreadyExists, resource+" already exists")
	default:
		return err
	}
}
