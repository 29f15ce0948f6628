package knowledge

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// VehicleClass is the traffic weight a driveway has to carry.
type VehicleClass string

const (
	VehicleLight  VehicleClass = "light"
	VehicleNormal VehicleClass = "normal"
	VehicleHeavy  VehicleClass = "heavy"
)

// fallbackDepth is used when a layer carries no depth at all.
const fallbackDepth = 4.0

const (
	fallbackDescription = "Let me help you figure out what materials you need."
	fallbackQuestion    = "Can you tell me more about what you're trying to do?"
)

// ErrUnknownLayerMaterial is returned when a template layer points at a material the
// knowledge base does not have.
var ErrUnknownLayerMaterial = errors.New("knowledge: layer references unknown material")

// Layer is one material layer of a project, listed bottom-up.
type Layer struct {
	Name        string  `yaml:"name" json:"layer"`
	Material    string  `yaml:"material" json:"material"`
	Depth       float64 `yaml:"depth" json:"-"`
	DepthLight  float64 `yaml:"depth_light" json:"-"`
	DepthNormal float64 `yaml:"depth_normal" json:"-"`
	DepthHeavy  float64 `yaml:"depth_heavy" json:"-"`
	Purpose     string  `yaml:"purpose" json:"purpose"`
	Why         string  `yaml:"why" json:"why"`
	Essential   *bool   `yaml:"essential" json:"-"`
	Alternative string  `yaml:"alternative" json:"alternative,omitempty"`
}

// IsEssential reports whether the layer must be bought. An omitted flag means essential.
func (l Layer) IsEssential() bool {
	return l.Essential == nil || *l.Essential
}

// ProjectTemplate is the layer plan for one kind of project.
type ProjectTemplate struct {
	Type             string   `yaml:"type"`
	Description      string   `yaml:"description"`
	VehicleSensitive bool     `yaml:"vehicle_sensitive"`
	Layers           []Layer  `yaml:"layers"`
	QuestionsToAsk   []string `yaml:"questions_to_ask"`
	CommonMistakes   []string `yaml:"common_mistakes"`
	ProTips          []string `yaml:"pro_tips"`
}

// Modifiers refine a recommendation. All fields are optional.
type Modifiers struct {
	CurrentSurface string
	FinalSurface   string
	VehicleType    string
}

// ResolvedLayer is a layer with its depth fixed for the given modifiers.
type ResolvedLayer struct {
	Name        string  `json:"layer"`
	Material    string  `json:"material"`
	DepthInches float64 `json:"depth_inches"`
	Purpose     string  `json:"purpose"`
	Why         string  `json:"why"`
	Essential   bool    `json:"essential"`
	Alternative string  `json:"alternative,omitempty"`
}

// Recommendation is the outcome of Recommend.
type Recommendation struct {
	ProjectType    string          `json:"project_type"`
	Known          bool            `json:"known"`
	Description    string          `json:"description"`
	Layers         []ResolvedLayer `json:"layers"`
	QuestionsToAsk []string        `json:"questions_to_ask"`
	CommonMistakes []string        `json:"common_mistakes,omitempty"`
	ProTips        []string        `json:"pro_tips,omitempty"`
}

// Recommender turns a project type into material layers.
type Recommender struct {
	templates map[string]ProjectTemplate
	order     []string
	kb        *KnowledgeBase
}

// NewRecommender indexes templates by normalized type and checks every layer against kb.
func NewRecommender(templates []ProjectTemplate, kb *KnowledgeBase) (*Recommender, error) {
	r := &Recommender{
		templates: make(map[string]ProjectTemplate, len(templates)),
		kb:        kb,
	}

	for _, t := range templates {
		key := normalizeProjectType(t.Type)
		if key == "" {
			return nil, errors.New("knowledge: project template with empty type")
		}
		for _, l := range t.Layers {
			if _, ok := kb.Material(l.Material); !ok {
				return nil, fmt.Errorf("%w: %s/%s uses %q", ErrUnknownLayerMaterial, t.Type, l.Name, l.Material)
			}
		}
		if _, dup := r.templates[key]; !dup {
			r.order = append(r.order, key)
		}
		r.templates[key] = t
	}

	return r, nil
}

// ProjectTypes lists the known project types in table order.
func (r *Recommender) ProjectTypes() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// KnowledgeBase returns the materials the recommender was validated against.
func (r *Recommender) KnowledgeBase() *KnowledgeBase {
	return r.kb
}

// Recommend returns the layer plan for projectType. Unknown types get a generic plan with
// no layers and a clarifying question.
func (r *Recommender) Recommend(projectType string, mods Modifiers) Recommendation {
	key := normalizeProjectType(projectType)

	t, ok := r.templates[key]
	if !ok {
		return Recommendation{
			ProjectType:    key,
			Description:    fallbackDescription,
			Layers:         []ResolvedLayer{},
			QuestionsToAsk: []string{fallbackQuestion},
		}
	}

	class := VehicleNormal
	if t.VehicleSensitive {
		class = ClassifyVehicle(mods.VehicleType)
	}

	layers := make([]ResolvedLayer, 0, len(t.Layers))
	for _, l := range t.Layers {
		layers = append(layers, ResolvedLayer{
			Name:        l.Name,
			Material:    l.Material,
			DepthInches: ResolveDepth(l, class),
			Purpose:     l.Purpose,
			Why:         l.Why,
			Essential:   l.IsEssential(),
			Alternative: l.Alternative,
		})
	}

	return Recommendation{
		ProjectType:    key,
		Known:          true,
		Description:    t.Description,
		Layers:         layers,
		QuestionsToAsk: t.QuestionsToAsk,
		CommonMistakes: t.CommonMistakes,
		ProTips:        t.ProTips,
	}
}

// ClassifyVehicle maps the caller's description of vehicles to a traffic class.
// Anything unrecognised, including an empty value, is light traffic.
func ClassifyVehicle(vehicleType string) VehicleClass {
	switch strings.ToLower(strings.TrimSpace(vehicleType)) {
	case "heavy trucks", "heavy", "rvs", "rv":
		return VehicleHeavy
	case "light trucks", "light":
		return VehicleNormal
	default:
		return VehicleLight
	}
}

// ResolveDepth picks the layer depth for a vehicle class. A fixed depth wins, then the
// per-class depth, then 4 inches.
func ResolveDepth(l Layer, class VehicleClass) float64 {
	if l.Depth > 0 {
		return l.Depth
	}

	var d float64
	switch class {
	case VehicleHeavy:
		d = l.DepthHeavy
	case VehicleNormal:
		d = l.DepthNormal
	default:
		d = l.DepthLight
	}
	if d > 0 {
		return d
	}
	return fallbackDepth
}

// normalizeProjectType lowercases and keeps letters only.
func normalizeProjectType(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
