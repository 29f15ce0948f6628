package app

import (
	"github.com/milestonetrucks/voice-agent/config"
	"github.com/milestonetrucks/voice-agent/internal/catalog"
	"github.com/milestonetrucks/voice-agent/internal/http"
	"github.com/milestonetrucks/voice-agent/internal/knowledge"
	"github.com/milestonetrucks/voice-agent/internal/service"
)

// InitializeServices builds the seven tool services over the catalog.
func InitializeServices(cfg config.BusinessConfig, cat catalog.Catalog, rec *knowledge.Recommender) http.Services {
	delivery := service.DefaultDeliveryConfig()
	delivery.TruckCapacityTons = cfg.TruckCapacityTons
	delivery.BaseFee = cfg.DeliveryBaseFee
	delivery.AdditionalTruckFee = cfg.DeliveryAdditionalTruckFee

	return http.Services{
		ServiceArea:     service.NewServiceAreaService(cat),
		Recommendations: service.NewRecommendationService(cat, rec),
		Materials:       service.NewMaterialsService(cat, cfg.TruckCapacityTons),
		Delivery:        service.NewDeliveryService(delivery),
		Cart:            service.NewCartService(cfg.TaxRate),
		Checkout: service.NewCheckoutService(service.CheckoutConfig{
			StoreURL:     cfg.CheckoutBaseURL,
			DefaultState: cfg.DefaultState,
		}),
		OrderStatus: service.NewOrderStatusService(cat),
	}
}
