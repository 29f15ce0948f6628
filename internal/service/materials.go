package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/milestonetrucks/voice-agent/internal/calc"
	"github.com/milestonetrucks/voice-agent/internal/catalog"
	"github.com/milestonetrucks/voice-agent/internal/domain/model"
	"github.com/milestonetrucks/voice-agent/internal/metrics"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const defaultLookupConcurrency = 4

// MaterialsInput is a validated calculation request.
type MaterialsInput struct {
	LengthFt    float64
	WidthFt     float64
	DepthInches float64
	SKUs        []string
}

// MaterialsService calculates quantities and prices for store products over an area.
type MaterialsService interface {
	Calculate(ctx context.Context, in MaterialsInput) (model.MaterialsResult, error)
}

// MaterialsServiceImpl implements MaterialsService.
type MaterialsServiceImpl struct {
	catalog       catalog.Catalog
	truckCapacity float64
	concurrency   int
}

// NewMaterialsService creates a calculator that totals truck loads against truckCapacity.
func NewMaterialsService(c catalog.Catalog, truckCapacity float64) MaterialsService {
	if truckCapacity <= 0 {
		truckCapacity = calc.DefaultTruckCapacity
	}
	return &MaterialsServiceImpl{
		catalog:       c,
		truckCapacity: truckCapacity,
		concurrency:   defaultLookupConcurrency,
	}
}

type quoted struct {
	quote model.MaterialQuote
	tons  float64
	price float64
}

// Calculate looks the SKUs up concurrently and prices each found product. SKUs that
// are unknown or fail to load are skipped; results keep request order. Totals are
// summed before rounding.
func (s *MaterialsServiceImpl) Calculate(ctx context.Context, in MaterialsInput) (model.MaterialsResult, error) {
	start := time.Now()
	status := "success"
	defer func() {
		metrics.RecordMaterialCalculation(time.Since(start), status)
	}()

	slots := make([]*quoted, len(in.SKUs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, sku := range in.SKUs {
		g.Go(func() error {
			slots[i] = s.quote(gctx, in, sku)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		status = "cancelled"
		return model.MaterialsResult{}, err
	}

	var (
		quotes    = make([]model.MaterialQuote, 0, len(slots))
		lines     = make([]string, 0, len(slots))
		totalTons float64
		subtotal  float64
	)
	for _, q := range slots {
		if q == nil {
			continue
		}
		quotes = append(quotes, q.quote)
		lines = append(lines, fmt.Sprintf("%s tons of %s", calc.FormatNumber(q.quote.QuantityTons), q.quote.ProductName))
		totalTons += q.tons
		subtotal += q.price
	}

	if len(quotes) == 0 {
		status = "no_materials"
		return model.MaterialsResult{}, ErrNoValidMaterials
	}

	trucks, err := calc.TruckLoads(totalTons, s.truckCapacity)
	if err != nil {
		status = "error"
		return model.MaterialsResult{}, err
	}

	squareFeet := calc.SquareFeet(in.LengthFt, in.WidthFt)
	return model.MaterialsResult{
		Dimensions: calc.Dimensions{
			LengthFt:    in.LengthFt,
			WidthFt:     in.WidthFt,
			DepthInches: in.DepthInches,
			SquareFeet:  squareFeet,
		},
		Materials: quotes,
		Totals: model.MaterialTotals{
			Subtotal:        calc.Round2(subtotal),
			TotalTons:       calc.Round1(totalTons),
			TotalTruckLoads: trucks,
		},
		Message: fmt.Sprintf("For your %s by %s foot area (%s square feet) at %s inches deep, here's what you'll need: %s. Your material total is %s.",
			calc.FormatNumber(in.LengthFt), calc.FormatNumber(in.WidthFt), calc.FormatNumber(calc.Round2(squareFeet)),
			calc.FormatNumber(in.DepthInches), strings.Join(lines, ", "), calc.FormatCurrency(subtotal)),
	}, nil
}

// quote prices one SKU, or returns nil when it cannot be priced.
func (s *MaterialsServiceImpl) quote(ctx context.Context, in MaterialsInput, sku string) *quoted {
	product, err := s.catalog.ProductBySKU(ctx, sku)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			log.Warn().Err(err).Str("sku", sku).Msg("Skipping material that failed to load")
		}
		return nil
	}
	if product == nil {
		log.Warn().Str("sku", sku).Msg("Skipping unknown material")
		return nil
	}

	res, err := calc.Compute(calc.Request{
		LengthFt:      in.LengthFt,
		WidthFt:       in.WidthFt,
		DepthInches:   in.DepthInches,
		PricePerTon:   product.PricePerTon(),
		Density:       product.Density(),
		TruckCapacity: float64(product.TruckCapacity()),
	})
	if err != nil {
		log.Warn().Err(err).Str("sku", sku).Msg("Skipping material that could not be calculated")
		return nil
	}

	name := product.CleanName()
	return &quoted{
		quote: model.MaterialQuote{
			SKU:                sku,
			ProductID:          product.ID,
			ProductName:        name,
			QuantityCubicYards: res.Quantities.CubicYards,
			QuantityTons:       res.Quantities.Tons,
			QuantityTruckLoads: res.Quantities.TruckLoads,
			PricePerTon:        res.Pricing.PricePerTon,
			TotalPrice:         res.Pricing.TotalPrice,
			PricePerSqFt:       res.Pricing.PricePerSqFt,
			Explanation:        fmt.Sprintf("%s tons of %s - %s", calc.FormatTons(res.Quantities.Tons), name, calc.ExplainQuantity(res.Quantities.Tons)),
		},
		tons:  res.ExactTons(),
		price: res.ExactPrice(),
	}
}
