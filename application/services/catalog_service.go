package services

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sweetshop-backend/application/ports"
	"sweetshop-backend/domain/catalog"
	apperrors "sweetshop-backend/pkg/errors"
	"sweetshop-backend/pkg/utils"
)

const (
	cacheKeyProducts   = "catalog:products"
	cacheKeyCategories = "catalog:categories"
	catalogCacheTTL    = 60 // seconds
)

// CatalogService serves the product and category catalog. List reads scan
// the full table, filter in process and cache the scanned set briefly;
// every write invalidates the cache.
type CatalogService struct {
	products   ports.ProductRepository
	categories ports.CategoryRepository
	cache      ports.Cache
	logger     *zap.Logger
}

// NewCatalogService creates the catalog service.
func NewCatalogService(
	products ports.ProductRepository,
	categories ports.CategoryRepository,
	cache ports.Cache,
	logger *zap.Logger,
) *CatalogService {
	return &CatalogService{
		products:   products,
		categories: categories,
		cache:      cache,
		logger:     logger,
	}
}

// ListProducts returns the catalog narrowed by the filter.
func (s *CatalogService) ListProducts(ctx context.Context, filter catalog.ListFilter) ([]catalog.Product, error) {
	all, err := s.scanProducts(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Apply(all), nil
}

// GetProduct fetches one product by id.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*catalog.Product, error) {
	if id == "" {
		return nil, apperrors.NewValidationError("product id is required")
	}
	p, err := s.products.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperrors.NewNotFoundError("product")
	}
	return p, nil
}

// CreateProduct stores a new product and returns it with generated fields
// filled in.
func (s *CatalogService) CreateProduct(ctx context.Context, p catalog.Product) (*catalog.Product, error) {
	if strings.TrimSpace(p.Name) == "" {
		return nil, apperrors.NewValidationError("product name is required")
	}
	if p.Price < 0 {
		return nil, apperrors.NewValidationError("product price cannot be negative")
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := utils.NowRFC3339()
	p.CreatedAt = now
	p.UpdatedAt = now

	if err := s.products.Put(ctx, p); err != nil {
		return nil, err
	}
	s.invalidate(ctx, cacheKeyProducts)
	s.logger.Info("product created", zap.String("productID", p.ID), zap.String("name", p.Name))
	return &p, nil
}

// UpdateProduct applies a partial patch to an existing product. Returns
// the refreshed record.
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, patch map[string]interface{}) (*catalog.Product, error) {
	if id == "" {
		return nil, apperrors.NewValidationError("product id is required")
	}
	if len(patch) == 0 {
		return nil, apperrors.NewValidationError("no fields to update")
	}
	delete(patch, "id")
	patch["updatedAt"] = utils.NowRFC3339()

	if err := s.products.Update(ctx, id, patch); err != nil {
		return nil, err
	}
	s.invalidate(ctx, cacheKeyProducts)

	updated, err := s.products.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperrors.NewNotFoundError("product")
	}
	return updated, nil
}

// DeleteProduct removes a product.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.NewValidationError("product id is required")
	}
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, cacheKeyProducts)
	return nil
}

// ListCategories returns all categories ordered by their sort index.
func (s *CatalogService) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, cacheKeyCategories); ok {
			if cats, ok := cached.([]catalog.Category); ok {
				return cats, nil
			}
		}
	}

	cats, err := s.categories.Scan(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(cats, func(i, j int) bool { return cats[i].SortOrder < cats[j].SortOrder })

	if s.cache != nil {
		_ = s.cache.Set(ctx, cacheKeyCategories, cats, catalogCacheTTL)
	}
	return cats, nil
}

// CreateCategory stores a new category.
func (s *CatalogService) CreateCategory(ctx context.Context, c catalog.Category) (*catalog.Category, error) {
	if strings.TrimSpace(c.Name) == "" {
		return nil, apperrors.NewValidationError("category name is required")
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.Slug == "" {
		c.Slug = slugify(c.Name)
	}
	if err := s.categories.Put(ctx, c); err != nil {
		return nil, err
	}
	s.invalidate(ctx, cacheKeyCategories)
	return &c, nil
}

// DeleteCategory removes a category. Products keep their categoryId and
// simply stop matching the navigation filter.
func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.NewValidationError("category id is required")
	}
	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, cacheKeyCategories)
	return nil
}

func (s *CatalogService) scanProducts(ctx context.Context) ([]catalog.Product, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, cacheKeyProducts); ok {
			if products, ok := cached.([]catalog.Product); ok {
				return products, nil
			}
		}
	}

	products, err := s.products.Scan(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, cacheKeyProducts, products, catalogCacheTTL)
	}
	return products, nil
}

func (s *CatalogService) invalidate(ctx context.Context, key string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, key); err != nil {
		s.logger.Warn("cache invalidation failed", zap.String("key", key), zap.Error(err))
	}
}

func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Join(strings.Fields(slug), "-")
	return slug
}
