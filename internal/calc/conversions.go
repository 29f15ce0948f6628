// Package calc converts project dimensions into material quantities, truck loads and prices.
//
// Lengths and widths are in feet, depths in inches, volumes in cubic yards and weights in
// short tons. Every function here is pure and safe for concurrent use.
package calc

import (
	"errors"
	"math"
)

const (
	// InchesPerFoot converts depth inputs to the unit used for length and width.
	InchesPerFoot = 12.0
	// CubicFeetPerCubicYard converts cubic feet to cubic yards.
	CubicFeetPerCubicYard = 27.0
	// DefaultDensity is the gravel/stone density in tons per cubic yard.
	DefaultDensity = 1.4
	// DefaultTruckCapacity is the maximum load of one delivery truck in tons.
	DefaultTruckCapacity = 18.0
)

// ErrInvalidTruckCapacity is returned when a truck capacity is zero or negative.
var ErrInvalidTruckCapacity = errors.New("calc: truck capacity must be positive")

// CubicYards returns the volume of a rectangular area filled to the given depth.
func CubicYards(lengthFt, widthFt, depthInches float64) float64 {
	depthFt := depthInches / InchesPerFoot
	cubicFeet := lengthFt * widthFt * depthFt
	return cubicFeet / CubicFeetPerCubicYard
}

// CubicYardsToTons converts a volume to weight using density in tons per cubic yard.
func CubicYardsToTons(cubicYards, density float64) float64 {
	return cubicYards * density
}

// TonsToCubicYards is the inverse of CubicYardsToTons.
func TonsToCubicYards(tons, density float64) float64 {
	return tons / density
}

// TruckLoads returns how many trucks are needed to haul tons, rounding up.
func TruckLoads(tons, capacity float64) (int, error) {
	if capacity <= 0 || math.IsNaN(capacity) {
		return 0, ErrInvalidTruckCapacity
	}
	return int(math.Ceil(tons / capacity)), nil
}

// SquareFeet returns the area of the project footprint.
func SquareFeet(lengthFt, widthFt float64) float64 {
	return lengthFt * widthFt
}

// CoveragePerTon returns how many square feet one ton covers at the given depth.
// Used for advisory text only.
func CoveragePerTon(depthInches, density float64) float64 {
	cubicFeetPerTon := (1 / density) * CubicFeetPerCubicYard
	return cubicFeetPerTon / (depthInches / InchesPerFoot)
}

// round rounds v to the given number of decimal places.
func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// Round2 rounds to cents.
func Round2(v float64) float64 { return round(v, 2) }

// Round1 rounds to one decimal place, the precision tons are spoken with.
func Round1(v float64) float64 { return round(v, 1) }
