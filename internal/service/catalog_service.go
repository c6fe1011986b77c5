package service

import (
	"context"
	"regexp"
	"time"

	"autohub-api/internal/core/apperr"
	"autohub-api/internal/core/cache"
	"autohub-api/internal/domain"
)

const (
	featuredProductsKey   = "catalog:featured:products"
	featuredCategoriesKey = "catalog:featured:categories"
	featuredProductLimit  = 6
	maxCategoryDepth      = 8
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// CatalogService owns product and category reads/writes plus the featured
// list cache. Cache may be nil (tests, cache-less deploys); everything then
// reads through to the store.
type CatalogService struct {
	products   domain.ProductRepository
	categories domain.CategoryRepository
	cache      *cache.Cache
	cacheTTL   time.Duration
}

func NewCatalogService(products domain.ProductRepository, categories domain.CategoryRepository, c *cache.Cache, ttl time.Duration) *CatalogService {
	return &CatalogService{products: products, categories: categories, cache: c, cacheTTL: ttl}
}

func (s *CatalogService) ListProducts(ctx context.Context, includeAll bool) ([]domain.Product, error) {
	return s.products.List(ctx, domain.ProductFilter{IncludeAll: includeAll})
}

func (s *CatalogService) FeaturedProducts(ctx context.Context) ([]domain.Product, error) {
	load := func(ctx context.Context) ([]domain.Product, error) {
		return s.products.List(ctx, domain.ProductFilter{FeaturedOnly: true, Limit: featuredProductLimit})
	}
	if s.cache == nil {
		return load(ctx)
	}
	out, err := cache.GetOrLoadJSON(s.cache, ctx, featuredProductsKey, s.cacheTTL, load)
	if err != nil {
		// degraded cache must not take the catalog down
		return load(ctx)
	}
	return out, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*domain.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal("load product failed", err)
	}
	if p == nil {
		return nil, apperr.NotFound("product not found")
	}
	return p, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, p *domain.Product) error {
	if p.Name == "" || p.SKU == "" || p.Price <= 0 {
		return apperr.Validation("required fields: name, sku, price")
	}
	if p.Status == "" {
		p.Status = domain.ProductActive
	}
	if !validProductStatus(p.Status) {
		return apperr.Validation("invalid product status: " + p.Status)
	}
	if p.InventoryStatus == "" {
		p.InventoryStatus = domain.InventoryInStock
	}
	if p.LowStockThreshold == 0 {
		p.LowStockThreshold = 5
	}
	if p.CategoryID != nil {
		c, err := s.categories.FindByID(ctx, *p.CategoryID)
		if err != nil {
			return apperr.Internal("create product failed", err)
		}
		if c == nil {
			return apperr.Validation("category does not exist")
		}
	}

	exists, err := s.products.SKUExists(ctx, p.SKU, 0)
	if err != nil {
		return apperr.Internal("create product failed", err)
	}
	if exists {
		return apperr.Conflict("SKU already exists")
	}

	if err := s.products.Create(ctx, p); err != nil {
		return err
	}
	s.invalidateFeatured(ctx)
	return nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, p *domain.Product) error {
	if p.ID == 0 {
		return apperr.Validation("id is required")
	}
	if p.Status != "" && !validProductStatus(p.Status) {
		return apperr.Validation("invalid product status: " + p.Status)
	}
	existing, err := s.products.FindByID(ctx, p.ID)
	if err != nil {
		return apperr.Internal("update product failed", err)
	}
	if existing == nil {
		return apperr.NotFound("product not found")
	}
	if p.SKU != "" && p.SKU != existing.SKU {
		dup, err := s.products.SKUExists(ctx, p.SKU, p.ID)
		if err != nil {
			return apperr.Internal("update product failed", err)
		}
		if dup {
			return apperr.Conflict("SKU already exists")
		}
	}

	if err := s.products.Update(ctx, p); err != nil {
		return err
	}
	s.invalidateFeatured(ctx)
	return nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	if id == 0 {
		return apperr.Validation("id is required")
	}
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateFeatured(ctx)
	return nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx, false)
}

func (s *CatalogService) FeaturedCategories(ctx context.Context) ([]domain.Category, error) {
	load := func(ctx context.Context) ([]domain.Category, error) {
		return s.categories.List(ctx, true)
	}
	if s.cache == nil {
		return load(ctx)
	}
	out, err := cache.GetOrLoadJSON(s.cache, ctx, featuredCategoriesKey, s.cacheTTL, load)
	if err != nil {
		return load(ctx)
	}
	return out, nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, c *domain.Category) error {
	if c.Name == "" || c.Slug == "" {
		return apperr.Validation("required fields: name, slug")
	}
	if !slugPattern.MatchString(c.Slug) {
		return apperr.Validation("slug must be lowercase letters, digits and hyphens")
	}
	if err := s.checkParentChain(ctx, c.ID, c.ParentID); err != nil {
		return err
	}

	if err := s.categories.Create(ctx, c); err != nil {
		return err
	}
	s.invalidateFeatured(ctx)
	return nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, c *domain.Category) error {
	if c.ID == 0 {
		return apperr.Validation("id is required")
	}
	if c.Slug != "" && !slugPattern.MatchString(c.Slug) {
		return apperr.Validation("slug must be lowercase letters, digits and hyphens")
	}
	existing, err := s.categories.FindByID(ctx, c.ID)
	if err != nil {
		return apperr.Internal("update category failed", err)
	}
	if existing == nil {
		return apperr.NotFound("category not found")
	}
	if err := s.checkParentChain(ctx, c.ID, c.ParentID); err != nil {
		return err
	}

	if err := s.categories.Update(ctx, c); err != nil {
		return err
	}
	s.invalidateFeatured(ctx)
	return nil
}

// DeleteCategory refuses while children or active products remain; callers
// must re-home them first.
func (s *CatalogService) DeleteCategory(ctx context.Context, id uint) error {
	if id == 0 {
		return apperr.Validation("id is required")
	}
	children, err := s.categories.CountChildren(ctx, id)
	if err != nil {
		return apperr.Internal("delete category failed", err)
	}
	if children > 0 {
		return apperr.Conflict("category still has child categories")
	}
	active, err := s.categories.CountActiveProducts(ctx, id)
	if err != nil {
		return apperr.Internal("delete category failed", err)
	}
	if active > 0 {
		return apperr.Conflict("category still has active products")
	}

	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateFeatured(ctx)
	return nil
}

// checkParentChain walks up from the proposed parent, rejecting missing
// parents, cycles through selfID, and chains deeper than maxCategoryDepth.
func (s *CatalogService) checkParentChain(ctx context.Context, selfID uint, parentID *uint) error {
	depth := 0
	for parentID != nil {
		if depth++; depth > maxCategoryDepth {
			return apperr.Validation("category tree too deep")
		}
		if selfID != 0 && *parentID == selfID {
			return apperr.Validation("category parent chain contains a cycle")
		}
		parent, err := s.categories.FindByID(ctx, *parentID)
		if err != nil {
			return apperr.Internal("resolve parent category failed", err)
		}
		if parent == nil {
			return apperr.Validation("parent category does not exist")
		}
		parentID = parent.ParentID
	}
	return nil
}

func (s *CatalogService) invalidateFeatured(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, featuredProductsKey, featuredCategoriesKey)
	}
}

func validProductStatus(st string) bool {
	switch st {
	case domain.ProductActive, domain.ProductInactive, domain.ProductDiscontinued:
		return true
	}
	return false
}
