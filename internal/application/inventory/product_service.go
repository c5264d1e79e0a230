package inventory

import (
	"context"
	"errors"

	"github.com/erp/erpcore/internal/domain/inventory"
	"github.com/erp/erpcore/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductService manages the product catalog. Stock levels are read-only
// here; MovementService changes them.
type ProductService struct {
	productRepo  inventory.ProductRepository
	categoryRepo inventory.CategoryRepository
	supplierRepo inventory.SupplierRepository
	logger       *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo inventory.ProductRepository,
	categoryRepo inventory.CategoryRepository,
	supplierRepo inventory.SupplierRepository,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		supplierRepo: supplierRepo,
		logger:       logger,
	}
}

// Create adds a product with zero stock
func (s *ProductService) Create(ctx context.Context, req ProductRequest) (*ProductResponse, error) {
	if err := s.ensureSKUFree(ctx, req.SKU, nil); err != nil {
		return nil, err
	}
	category, supplier, err := s.resolveRefs(ctx, req.CategoryID, req.SupplierID)
	if err != nil {
		return nil, err
	}

	product, err := inventory.NewProduct(req.details())
	if err != nil {
		return nil, err
	}
	if req.IsActive != nil {
		product.SetActive(*req.IsActive)
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("sku", product.SKU))

	resp := withRefs(ToProductResponse(product), category, supplier)
	return &resp, nil
}

// Update replaces a product's details. The current stock is kept.
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req ProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureSKUFree(ctx, req.SKU, &id); err != nil {
		return nil, err
	}
	category, supplier, err := s.resolveRefs(ctx, req.CategoryID, req.SupplierID)
	if err != nil {
		return nil, err
	}

	if err := product.Update(req.details()); err != nil {
		return nil, err
	}
	if req.IsActive != nil {
		product.SetActive(*req.IsActive)
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	resp := withRefs(ToProductResponse(product), category, supplier)
	return &resp, nil
}

// Get returns a product with its category and supplier
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	category, _ := s.categoryRepo.FindByID(ctx, product.CategoryID)
	var supplier *inventory.Supplier
	if product.SupplierID != nil {
		supplier, _ = s.supplierRepo.FindByID(ctx, *product.SupplierID)
	}

	resp := withRefs(ToProductResponse(product), category, supplier)
	return &resp, nil
}

// List returns a page of products ordered by name
func (s *ProductService) List(ctx context.Context, query ProductListFilter) (*shared.Paginated[ProductResponse], error) {
	filter := inventory.ProductFilter{
		Filter:          pageOf(query.Page, query.Limit),
		CategoryID:      query.CategoryID,
		SupplierID:      query.SupplierID,
		IncludeInactive: query.IncludeInactive,
	}
	filter.Search = query.Search

	products, total, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	categories, err := s.categoryRepo.FindAll(ctx, true)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*inventory.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	items := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, withRefs(ToProductResponse(p), byID[p.CategoryID], nil))
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

func (s *ProductService) ensureSKUFree(ctx context.Context, sku string, excludeID *uuid.UUID) error {
	exists, err := s.productRepo.ExistsBySKU(ctx, sku, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainError(shared.CodeAlreadyExists, "Product with this SKU already exists")
	}
	return nil
}

// resolveRefs checks that the category and the optional supplier exist
func (s *ProductService) resolveRefs(ctx context.Context, categoryID uuid.UUID, supplierID *uuid.UUID) (*inventory.Category, *inventory.Supplier, error) {
	category, err := s.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil, shared.NewValidationError("categoryId", "Category does not exist")
		}
		return nil, nil, err
	}
	if supplierID == nil {
		return category, nil, nil
	}
	supplier, err := s.supplierRepo.FindByID(ctx, *supplierID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil, shared.NewValidationError("supplierId", "Supplier does not exist")
		}
		return nil, nil, err
	}
	return category, supplier, nil
}

func withRefs(resp ProductResponse, category *inventory.Category, supplier *inventory.Supplier) ProductResponse {
	if category != nil {
		resp.Category = &NamedRef{ID: category.ID, Name: category.Name}
	}
	if supplier != nil {
		resp.Supplier = &NamedRef{ID: supplier.ID, Name: supplier.Name}
	}
	return resp
}
