package http

import (
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/milestonetrucks/voice-agent/internal/calc"
	"github.com/milestonetrucks/voice-agent/internal/domain/dto"
	"github.com/milestonetrucks/voice-agent/internal/i18n"
	"github.com/milestonetrucks/voice-agent/internal/knowledge"
)

// MaterialSummary is one entry of the material list.
type MaterialSummary struct {
	Key         string             `json:"key" example:"crusher_run"`
	CommonNames []string           `json:"common_names"`
	Category    knowledge.Category `json:"category" swaggertype:"string" example:"base"`
	Description string             `json:"description"`
	Density     float64            `json:"density" example:"1.4"`
} // @name MaterialSummary

// MaterialDetail is a material with its customer-facing explanation.
type MaterialDetail struct {
	Material    knowledge.Material    `json:"material"`
	Explanation knowledge.Explanation `json:"explanation"`
} // @name MaterialDetail

// DepthRecommendation is the answer to a single depth lookup.
type DepthRecommendation struct {
	Project     string  `json:"project" example:"driveway"`
	Layer       string  `json:"layer" example:"base"`
	Traffic     string  `json:"traffic" example:"heavy_traffic"`
	DepthInches float64 `json:"depth_inches" example:"6"`
	Explanation string  `json:"explanation"`
} // @name DepthRecommendation

// KnowledgeHandler serves the material knowledge base and the plain calculator.
type KnowledgeHandler struct {
	kb            *knowledge.KnowledgeBase
	truckCapacity float64
}

// NewKnowledgeHandler creates a KnowledgeHandler. truckCapacity is used when a quote
// does not name one.
func NewKnowledgeHandler(kb *knowledge.KnowledgeBase, truckCapacity float64) *KnowledgeHandler {
	return &KnowledgeHandler{kb: kb, truckCapacity: truckCapacity}
}

// Quote handles POST /api/quote requests.
//
// @Summary      Quote one material
// @Description  Runs the quantity calculator for a single material at a caller-supplied price, without a store lookup.
// @Tags         Knowledge
// @Accept       json
// @Produce      json
// @Param        request body dto.QuoteRequest true "Area and price"
// @Success      200 {object} dto.SuccessResponse{data=calc.Result}
// @Failure      400 {object} dto.ErrorResponse "Invalid request"
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /api/quote [post]
func (h *KnowledgeHandler) Quote(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequest[dto.QuoteRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, err)
		return
	}

	capacity := req.TruckCapacity
	if capacity == 0 {
		capacity = h.truckCapacity
	}

	result, err := calc.Compute(calc.Request{
		LengthFt:      req.LengthFt,
		WidthFt:       req.WidthFt,
		DepthInches:   req.DepthInches,
		PricePerTon:   req.PricePerTon,
		Density:       req.Density,
		TruckCapacity: capacity,
	})
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidTruckCapacity, err)
		return
	}

	builder.SuccessOK(result)
}

// ListMaterials handles GET /api/materials requests.
//
// @Summary      List materials
// @Description  Lists the bulk materials the agent can explain, sorted by key.
// @Tags         Knowledge
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=[]MaterialSummary}
// @Router       /api/materials [get]
func (h *KnowledgeHandler) ListMaterials(c *gin.Context) {
	materials := h.kb.Materials()
	out := make([]MaterialSummary, 0, len(materials))
	for _, m := range materials {
		out = append(out, MaterialSummary{
			Key:         m.Key,
			CommonNames: m.CommonNames,
			Category:    m.Category,
			Description: m.Description,
			Density:     m.Density,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })

	NewResponseBuilder(c).SuccessOK(out)
}

// GetMaterial handles GET /api/materials/:name requests.
//
// @Summary      Explain a material
// @Description  Resolves a material by key or common name ("57 stone", "crusher run") and returns its explanation.
// @Tags         Knowledge
// @Produce      json
// @Param        name path string true "Material key or common name"
// @Success      200 {object} dto.SuccessResponse{data=MaterialDetail}
// @Failure      404 {object} dto.ErrorResponse "Unknown material"
// @Router       /api/materials/{name} [get]
func (h *KnowledgeHandler) GetMaterial(c *gin.Context) {
	builder := NewResponseBuilder(c)

	material, ok := h.kb.Resolve(c.Param("name"))
	if !ok {
		builder.Error(http.StatusNotFound, i18n.ErrKeyMaterialNotFound, nil)
		return
	}
	explanation, _ := h.kb.Explain(material.Key)

	builder.SuccessOK(MaterialDetail{Material: material, Explanation: explanation})
}

// GetDepths handles GET /api/depths requests.
//
// @Summary      Recommended depths
// @Description  Without a project, returns the whole depth table. With one, returns the depth for that project layer and traffic level, read back as the agent would say it.
// @Tags         Knowledge
// @Produce      json
// @Param        project query string false "Project, e.g. driveway"
// @Param        layer   query string false "Layer, e.g. base or surface" default(base)
// @Param        traffic query string false "light_traffic, normal_traffic or heavy_traffic" default(normal_traffic)
// @Success      200 {object} dto.SuccessResponse{data=DepthRecommendation}
// @Router       /api/depths [get]
func (h *KnowledgeHandler) GetDepths(c *gin.Context) {
	builder := NewResponseBuilder(c)

	project := strings.TrimSpace(c.Query("project"))
	if project == "" {
		builder.SuccessOK(calc.RecommendedDepths)
		return
	}

	layer := c.DefaultQuery("layer", "base")
	traffic := c.DefaultQuery("traffic", calc.TrafficNormal)
	depth := calc.RecommendedDepth(project, layer, traffic)

	builder.SuccessOK(DepthRecommendation{
		Project:     project,
		Layer:       layer,
		Traffic:     traffic,
		DepthInches: depth,
		Explanation: calc.ExplainDepth(depth),
	})
}
