package service

import (
	"context"

	"github.com/milestonetrucks/voice-agent/internal/catalog"
	"github.com/milestonetrucks/voice-agent/internal/domain/model"
	"github.com/milestonetrucks/voice-agent/internal/service/cache"
)

const (
	zipKeyPrefix = "zip:"
	skuKeyPrefix = "sku:"
)

// CachedCatalog is a read-through cache over product lookups. A call typically checks
// the service area, asks for recommendations and calculates quantities within minutes,
// hitting the same ZIP and SKUs each time. Orders are never cached.
type CachedCatalog struct {
	next  catalog.Catalog
	cache cache.Cache[[]model.Product]
}

// NewCachedCatalog wraps next with c.
func NewCachedCatalog(next catalog.Catalog, c cache.Cache[[]model.Product]) *CachedCatalog {
	return &CachedCatalog{next: next, cache: c}
}

// ProductsByZip returns cached products for zip, fetching on a miss. Empty results are
// cached too so an unserved ZIP does not hit the store on every retry.
func (c *CachedCatalog) ProductsByZip(ctx context.Context, zip string) ([]model.Product, error) {
	key := zipKeyPrefix + zip
	if products, ok := c.cache.Get(ctx, key); ok {
		return products, nil
	}

	products, err := c.next.ProductsByZip(ctx, zip)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []model.Product{}
	}
	c.cache.Set(ctx, key, products)
	return products, nil
}

// ProductBySKU returns the cached product for sku. A cached empty slice is a known miss.
func (c *CachedCatalog) ProductBySKU(ctx context.Context, sku string) (*model.Product, error) {
	key := skuKeyPrefix + sku
	if products, ok := c.cache.Get(ctx, key); ok {
		return first(products), nil
	}

	p, err := c.next.ProductBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}

	entry := []model.Product{}
	if p != nil {
		entry = append(entry, *p)
	}
	c.cache.Set(ctx, key, entry)
	return p, nil
}

// OrderByID is not cached.
func (c *CachedCatalog) OrderByID(ctx context.Context, id string) (*model.Order, error) {
	return c.next.OrderByID(ctx, id)
}

// OrdersByCustomer is not cached.
func (c *CachedCatalog) OrdersByCustomer(ctx context.Context, q catalog.CustomerQuery) ([]model.Order, error) {
	return c.next.OrdersByCustomer(ctx, q)
}

// InvalidateZip drops the cached products for zip.
func (c *CachedCatalog) InvalidateZip(ctx context.Context, zip string) {
	c.cache.Invalidate(ctx, zipKeyPrefix+zip)
}

func first(products []model.Product) *model.Product {
	if len(products) == 0 {
		return nil
	}
	p := products[0]
	return &p
}
