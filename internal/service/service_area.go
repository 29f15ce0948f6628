package service

import (
	"context"
	"fmt"

	"github.com/milestonetrucks/voice-agent/internal/catalog"
	"github.com/milestonetrucks/voice-agent/internal/domain/model"
)

// ServiceAreaService checks whether the business delivers to a ZIP code.
type ServiceAreaService interface {
	// CheckServiceArea expects a cleaned five-digit ZIP code.
	CheckServiceArea(ctx context.Context, zip string) (model.ServiceArea, error)
}

// ServiceAreaServiceImpl implements ServiceAreaService on top of the store catalog.
type ServiceAreaServiceImpl struct {
	catalog catalog.Catalog
}

// NewServiceAreaService creates a new service area checker.
func NewServiceAreaService(c catalog.Catalog) ServiceAreaService {
	return &ServiceAreaServiceImpl{catalog: c}
}

// CheckServiceArea lists the products tagged with zip. No products means the ZIP is not
// served; that is an answer, not an error.
func (s *ServiceAreaServiceImpl) CheckServiceArea(ctx context.Context, zip string) (model.ServiceArea, error) {
	products, err := s.catalog.ProductsByZip(ctx, zip)
	if err != nil {
		return model.ServiceArea{}, fmt.Errorf("check service area %s: %w", zip, err)
	}

	if len(products) == 0 {
		return model.ServiceArea{
			Serviceable:       false,
			ZipCode:           zip,
			AvailableProducts: []model.AvailableProduct{},
			Message: fmt.Sprintf("I'm sorry, we don't currently deliver to ZIP code %s. "+
				"We service areas in Ohio, Indiana, Pennsylvania, West Virginia, Kentucky, and Michigan. "+
				"Would you like me to check a different ZIP code, or I can give you our phone number to ask about delivery options?", zip),
		}, nil
	}

	yard := products[0].Yard()
	available := make([]model.AvailableProduct, 0, len(products))
	names := make(map[string]struct{}, len(products))
	for _, p := range products {
		ap := toAvailableProduct(p)
		available = append(available, ap)
		names[ap.Name] = struct{}{}
	}

	return model.ServiceArea{
		Serviceable:       true,
		ZipCode:           zip,
		ZoneName:          &yard,
		YardLocation:      &yard,
		AvailableProducts: available,
		Message: fmt.Sprintf("Great news! We service your area from our %s location. "+
			"We have %d different materials available for delivery. What kind of project are you working on?",
			yard, len(names)),
	}, nil
}

func toAvailableProduct(p model.Product) model.AvailableProduct {
	return model.AvailableProduct{
		ProductID:   p.ID,
		SKU:         p.SKU,
		Name:        p.CleanName(),
		FullName:    p.Name,
		PricePerTon: p.PricePerTon(),
		MaxLoadTons: p.TruckCapacity(),
		MinimumTons: p.MinimumOrder(),
		Density:     p.Density(),
		InStock:     p.InStock(),
		Description: p.ShortDescription,
	}
}
