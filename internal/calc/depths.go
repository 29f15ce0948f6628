package calc

import "strings"

// Traffic levels used by the depth table.
const (
	TrafficLight  = "light_traffic"
	TrafficNormal = "normal_traffic"
	TrafficHeavy  = "heavy_traffic"
)

// DepthGuide is one row of the recommended depth table.
type DepthGuide struct {
	Description string             `json:"description"`
	Default     float64            `json:"default,omitempty"`
	ByTraffic   map[string]float64 `json:"by_traffic,omitempty"`
}

// RecommendedDepths maps "<project>_<layer>" to depth guidance in inches.
var RecommendedDepths = map[string]DepthGuide{
	"driveway_base": {
		Description: "Base layer for driveways",
		ByTraffic: map[string]float64{
			TrafficLight:  4,
			TrafficNormal: 4,
			TrafficHeavy:  6,
		},
	},
	"driveway_surface": {Description: "Surface layer for driveways", Default: 2},
	"walkway_base":     {Description: "Base layer for walkways", Default: 2},
	"walkway_surface":  {Description: "Surface layer for walkways", Default: 2},
	"patio_base":       {Description: "Base layer for patios", Default: 4},
	"french_drain":     {Description: "French drain fill", Default: 4},
	"landscaping":      {Description: "Decorative landscaping", Default: 2},
}

// RecommendedDepth looks up the depth for a project layer. An empty layer means "base"
// and an empty traffic level means normal traffic. Unknown rows fall back to 4 inches
// for a base and 2 inches for anything else.
func RecommendedDepth(project, layer, traffic string) float64 {
	if layer == "" {
		layer = "base"
	}
	if traffic == "" {
		traffic = TrafficNormal
	}

	key := strings.ToLower(project) + "_" + strings.ToLower(layer)
	if guide, ok := RecommendedDepths[key]; ok {
		if d, ok := guide.ByTraffic[traffic]; ok && d > 0 {
			return d
		}
		if guide.Default > 0 {
			return guide.Default
		}
		return 4
	}

	if layer == "base" {
		return 4
	}
	return 2
}
