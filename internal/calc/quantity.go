package calc

// Request holds the inputs of one material calculation. Callers validate that the
// dimensions and price are positive before calling Compute.
type Request struct {
	LengthFt    float64
	WidthFt     float64
	DepthInches float64
	PricePerTon float64
	// Density in tons per cubic yard. Zero selects DefaultDensity.
	Density float64
	// TruckCapacity in tons. Zero selects DefaultTruckCapacity; negative is rejected.
	TruckCapacity float64
}

// Dimensions echoes the footprint back to the caller.
type Dimensions struct {
	LengthFt    float64 `json:"length_ft"`
	WidthFt     float64 `json:"width_ft"`
	DepthInches float64 `json:"depth_inches"`
	SquareFeet  float64 `json:"square_feet"`
}

// Quantities are rounded for display.
type Quantities struct {
	CubicYards float64 `json:"cubic_yards"`
	Tons       float64 `json:"tons"`
	TruckLoads int     `json:"truck_loads"`
}

// Pricing is rounded to cents.
type Pricing struct {
	PricePerTon  float64 `json:"price_per_ton"`
	TotalPrice   float64 `json:"total_price"`
	PricePerSqFt float64 `json:"price_per_sq_ft"`
}

// Explanations are the spoken forms of the result.
type Explanations struct {
	Quantity string `json:"quantity"`
	Depth    string `json:"depth"`
	Summary  string `json:"summary"`
}

// Result is the full breakdown for one material.
type Result struct {
	Dimensions   Dimensions   `json:"dimensions"`
	Quantities   Quantities   `json:"quantities"`
	Pricing      Pricing      `json:"pricing"`
	Explanations Explanations `json:"explanations"`

	exactTons  float64
	exactPrice float64
}

// ExactTons returns the weight before display rounding.
func (r Result) ExactTons() float64 { return r.exactTons }

// ExactPrice returns the total price before rounding to cents.
func (r Result) ExactPrice() float64 { return r.exactPrice }

// Compute runs the full dimension → volume → weight → trucks → price pipeline.
// Truck loads and the total price are derived from the unrounded weight.
func Compute(req Request) (Result, error) {
	density := req.Density
	if density == 0 {
		density = DefaultDensity
	}
	capacity := req.TruckCapacity
	if capacity == 0 {
		capacity = DefaultTruckCapacity
	}

	squareFeet := SquareFeet(req.LengthFt, req.WidthFt)
	cubicYards := CubicYards(req.LengthFt, req.WidthFt, req.DepthInches)
	tons := CubicYardsToTons(cubicYards, density)

	trucks, err := TruckLoads(tons, capacity)
	if err != nil {
		return Result{}, err
	}

	totalPrice := tons * req.PricePerTon
	pricePerSqFt := totalPrice / squareFeet

	return Result{
		Dimensions: Dimensions{
			LengthFt:    req.LengthFt,
			WidthFt:     req.WidthFt,
			DepthInches: req.DepthInches,
			SquareFeet:  squareFeet,
		},
		Quantities: Quantities{
			CubicYards: Round2(cubicYards),
			Tons:       Round1(tons),
			TruckLoads: trucks,
		},
		Pricing: Pricing{
			PricePerTon:  req.PricePerTon,
			TotalPrice:   Round2(totalPrice),
			PricePerSqFt: Round2(pricePerSqFt),
		},
		Explanations: Explanations{
			Quantity: ExplainQuantity(tons),
			Depth:    ExplainDepth(req.DepthInches),
			Summary:  Summarize(req.LengthFt, req.WidthFt, req.DepthInches, tons),
		},
		exactTons:  tons,
		exactPrice: totalPrice,
	}, nil
}
