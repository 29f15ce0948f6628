package service

import (
	"fmt"

	"github.com/milestonetrucks/voice-agent/internal/calc"
	"github.com/milestonetrucks/voice-agent/internal/domain/model"
)

// DeliveryConfig holds the delivery fee structure.
type DeliveryConfig struct {
	TruckCapacityTons  float64
	BaseFee            float64
	AdditionalTruckFee float64
}

// DefaultDeliveryConfig returns the published fee structure: $200 for the first truck
// and $150 for each additional 18 ton load.
func DefaultDeliveryConfig() DeliveryConfig {
	return DeliveryConfig{
		TruckCapacityTons:  calc.DefaultTruckCapacity,
		BaseFee:            200,
		AdditionalTruckFee: 150,
	}
}

var deliveryRequirements = []string{
	"10 feet overhead clearance for truck",
	"45 feet turning radius",
	"Accessible from paved road",
	"Driver will call 24 hours before delivery",
}

// DeliveryService estimates delivery fees. The real fee is computed by the store at
// checkout from the exact address.
type DeliveryService interface {
	Estimate(zip string, weightTons float64) (model.DeliveryEstimate, error)
}

// DeliveryServiceImpl implements DeliveryService.
type DeliveryServiceImpl struct {
	cfg DeliveryConfig
}

// NewDeliveryService creates a fee estimator.
func NewDeliveryService(cfg DeliveryConfig) DeliveryService {
	return &DeliveryServiceImpl{cfg: cfg}
}

// Estimate splits weightTons into truck loads and prices them.
func (s *DeliveryServiceImpl) Estimate(zip string, weightTons float64) (model.DeliveryEstimate, error) {
	trucks, err := calc.TruckLoads(weightTons, s.cfg.TruckCapacityTons)
	if err != nil {
		return model.DeliveryEstimate{}, err
	}

	fee := s.cfg.BaseFee
	if trucks > 1 {
		fee += float64(trucks-1) * s.cfg.AdditionalTruckFee
	}

	msg := fmt.Sprintf("Delivery to %s is approximately %s", zip, calc.FormatCurrency(fee))
	if trucks > 1 {
		msg += fmt.Sprintf(" for %d truck loads", trucks)
	}
	msg += ". The driver will call you 24 hours before delivery to confirm timing. " +
		"Just make sure you have about 10 feet of overhead clearance where you want the material dumped."

	reqs := make([]string, len(deliveryRequirements))
	copy(reqs, deliveryRequirements)

	return model.DeliveryEstimate{
		DeliveryFee:        calc.Round2(fee),
		DeliveryFeeTaxable: true,
		DeliveryFeeNote:    "Estimated. Final fee calculated at checkout based on exact address.",
		TrucksRequired:     trucks,
		TruckCapacityTons:  s.cfg.TruckCapacityTons,
		TotalWeightTons:    weightTons,
		DeliveryTimeframe:  "2-3 business days after order",
		DeliveryNotes: "Our delivery trucks require 10 feet of overhead clearance and about 45 feet of turning space. " +
			"The driver will call you 24 hours before delivery to confirm timing and access.",
		DeliveryRequirements: reqs,
		Message:              msg,
	}, nil
}
