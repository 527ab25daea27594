package catalog

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kopitoko/backend/internal/domain/catalog"
	"github.com/kopitoko/backend/internal/domain/shared"
)

// ProductCache caches storefront product listings. Implementations may
// be backed by Redis or an in-process map; cache failures are treated
// as misses.
type ProductCache interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*ProductResponse, bool)
	SetProduct(ctx context.Context, resp ProductResponse)
	Invalidate(ctx context.Context, id uuid.UUID)
}

// ProductService handles product catalog operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	cache        ProductCache
	logger       *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, categoryRepo catalog.CategoryRepository, cache ProductCache, logger *zap.Logger) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		cache:        cache,
		logger:       logger,
	}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	if existing, err := s.productRepo.FindByCode(ctx, req.Code); err == nil && existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product code is already in use")
	}

	product, err := catalog.NewProduct(req.Code, req.Name, req.Description, req.Price, req.Stock)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *req.CategoryID); err != nil {
			return nil, shared.NewDomainError("CATEGORY_NOT_FOUND", "Category does not exist")
		}
		product.AssignCategory(*req.CategoryID)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.logger.Info("product created",
		zap.String("product_id", product.ID.String()),
		zap.String("code", product.Code))

	resp := ToProductResponse(product)
	return &resp, nil
}

// GetByID retrieves a product, serving from cache when possible
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	if cached, ok := s.cache.GetProduct(ctx, id); ok {
		return cached, nil
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := ToProductResponse(product)
	s.cache.SetProduct(ctx, resp)
	return &resp, nil
}

// List retrieves products for the storefront. Only active products are
// returned; inactive products are admin-only.
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	products, total, err := s.productRepo.FindActive(ctx, toSharedFilter(filter))
	if err != nil {
		return nil, 0, err
	}
	return toProductResponses(products), total, nil
}

// ListAll retrieves all products including inactive ones, for admins
func (s *ProductService) ListAll(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	products, total, err := s.productRepo.FindAll(ctx, toSharedFilter(filter))
	if err != nil {
		return nil, 0, err
	}
	return toProductResponses(products), total, nil
}

// Update updates product details
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Description != nil {
		name := product.Name
		description := product.Description
		if req.Name != nil {
			name = *req.Name
		}
		if req.Description != nil {
			description = *req.Description
		}
		if err := product.UpdateDetails(name, description); err != nil {
			return nil, err
		}
	}
	if req.Price != nil {
		if err := product.ChangePrice(*req.Price); err != nil {
			return nil, err
		}
	}
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *req.CategoryID); err != nil {
			return nil, shared.NewDomainError("CATEGORY_NOT_FOUND", "Category does not exist")
		}
		product.AssignCategory(*req.CategoryID)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, id)

	resp := ToProductResponse(product)
	return &resp, nil
}

// AdjustStock sets the stock level for a product
func (s *ProductService) AdjustStock(ctx context.Context, id uuid.UUID, req AdjustStockRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := product.AdjustStock(req.Stock); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, id)
	s.logger.Info("product stock adjusted",
		zap.String("product_id", id.String()),
		zap.Int64("stock", req.Stock))

	resp := ToProductResponse(product)
	return &resp, nil
}

// Activate makes a product visible on the storefront
func (s *ProductService) Activate(ctx context.Context, id uuid.UUID) error {
	return s.setStatus(ctx, id, true)
}

// Deactivate hides a product from the storefront
func (s *ProductService) Deactivate(ctx context.Context, id uuid.UUID) error {
	return s.setStatus(ctx, id, false)
}

func (s *ProductService) setStatus(ctx context.Context, id uuid.UUID, active bool) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if active {
		product.Activate()
	} else {
		product.Deactivate()
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, id)
	return nil
}

// Delete soft-deletes a product
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.productRepo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, id)
	return nil
}

func toSharedFilter(f ProductListFilter) shared.Filter {
	filter := shared.DefaultFilter()
	if f.Page > 0 {
		filter.Page = f.Page
	}
	if f.PageSize > 0 {
		filter.PageSize = f.PageSize
	}
	if f.OrderBy != "" {
		filter.OrderBy = f.OrderBy
	}
	if f.OrderDir != "" {
		filter.OrderDir = f.OrderDir
	}
	filter.Search = f.Search
	return filter
}

func toProductResponses(products []*catalog.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, ToProductResponse(p))
	}
	return out
}
