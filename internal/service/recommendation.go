package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/milestonetrucks/voice-agent/internal/catalog"
	"github.com/milestonetrucks/voice-agent/internal/domain/model"
	"github.com/milestonetrucks/voice-agent/internal/knowledge"
)

const (
	questionVehicles   = "What kind of vehicles will use this driveway - mainly cars, pickup trucks, or heavier equipment like RVs?"
	questionDrainage   = "Where is the water pooling, and where do you want it to drain to?"
	questionDimensions = "What are the dimensions of the area? I'll need the length and width in feet."
	questionConfirmZip = "Can you confirm your delivery ZIP code?"
)

// RecommendationInput describes the caller's project.
type RecommendationInput struct {
	ProjectType    string
	ZipCode        string
	CurrentSurface string
	FinalSurface   string
	VehicleType    string
}

// RecommendationService matches a project's material layers to local products.
type RecommendationService interface {
	Recommend(ctx context.Context, in RecommendationInput) (model.RecommendationResult, error)
}

// RecommendationServiceImpl implements RecommendationService.
type RecommendationServiceImpl struct {
	catalog     catalog.Catalog
	recommender *knowledge.Recommender
}

// NewRecommendationService creates a new recommendation service.
func NewRecommendationService(c catalog.Catalog, r *knowledge.Recommender) RecommendationService {
	return &RecommendationServiceImpl{catalog: c, recommender: r}
}

// Recommend builds the layer plan for the project and keeps the layers a local product
// can fill. Layers with no matching product are left out.
func (s *RecommendationServiceImpl) Recommend(ctx context.Context, in RecommendationInput) (model.RecommendationResult, error) {
	products, err := s.catalog.ProductsByZip(ctx, in.ZipCode)
	if err != nil {
		return model.RecommendationResult{}, fmt.Errorf("recommend %s for %s: %w", in.ProjectType, in.ZipCode, err)
	}

	if len(products) == 0 {
		explanation := fmt.Sprintf("I don't have product availability for ZIP code %s. Let me check if we service your area first.", in.ZipCode)
		return model.RecommendationResult{
			Recommendations: []model.MaterialRecommendation{},
			Explanation:     explanation,
			QuestionsToAsk:  []string{},
			CommonMistakes:  []string{},
			NextQuestion:    questionConfirmZip,
			Message:         explanation + " " + questionConfirmZip,
		}, nil
	}

	plan := s.recommender.Recommend(in.ProjectType, knowledge.Modifiers{
		CurrentSurface: in.CurrentSurface,
		FinalSurface:   in.FinalSurface,
		VehicleType:    in.VehicleType,
	})
	kb := s.recommender.KnowledgeBase()

	recs := make([]model.MaterialRecommendation, 0, len(plan.Layers))
	for _, layer := range plan.Layers {
		material, ok := kb.Material(layer.Material)
		if !ok {
			continue
		}
		product, ok := knowledge.MatchLayer(kb, layer, products)
		if !ok {
			continue
		}
		recs = append(recs, model.MaterialRecommendation{
			SKU:                    product.SKU,
			ProductID:              product.ID,
			ProductName:            product.CleanName(),
			Layer:                  layer.Name,
			Purpose:                layer.Purpose,
			RecommendedDepthInches: layer.DepthInches,
			PricePerTon:            product.PricePerTon(),
			Density:                product.Density(),
			MinOrderTons:           product.MinimumOrder(),
			MaxLoadTons:            product.TruckCapacity(),
			Why:                    layer.Why,
			Essential:              layer.Essential,
			ProTip:                 optional(material.FirstTip()),
			CommonMistake:          optional(material.FirstMistake()),
			HowItWorks:             material.HowItWorks,
		})
	}

	next := nextQuestion(in.ProjectType, in.VehicleType)
	return model.RecommendationResult{
		Recommendations: recs,
		Explanation:     plan.Description,
		ProjectType:     in.ProjectType,
		QuestionsToAsk:  nonNil(plan.QuestionsToAsk),
		CommonMistakes:  nonNil(plan.CommonMistakes),
		NextQuestion:    next,
		Message:         plan.Description + " " + next,
	}, nil
}

func nextQuestion(projectType, vehicleType string) string {
	switch strings.ToLower(projectType) {
	case "driveway":
		if vehicleType == "" {
			return questionVehicles
		}
	case "drainage":
		return questionDrainage
	}
	return questionDimensions
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
