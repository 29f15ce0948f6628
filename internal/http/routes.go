package http

import (
	"github.com/gin-gonic/gin"
)

// RouteGroup registers a set of routes on the /api group.
type RouteGroup interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// WebhookRoutes are the voice agent tools, one POST route per tool.
type WebhookRoutes struct {
	handler *Handler
}

// NewWebhookRoutes creates the tool routes.
func NewWebhookRoutes(handler *Handler) *WebhookRoutes {
	return &WebhookRoutes{handler: handler}
}

// RegisterRoutes registers the tool routes.
func (r *WebhookRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/"+ToolCheckServiceArea, r.handler.CheckServiceArea)
	rg.POST("/"+ToolRecommendMaterials, r.handler.GetMaterialRecommendations)
	rg.POST("/"+ToolCalculateMaterials, r.handler.CalculateMaterials)
	rg.POST("/"+ToolCalculateDelivery, r.handler.CalculateDelivery)
	rg.POST("/"+ToolAddToCart, r.handler.AddToCart)
	rg.POST("/"+ToolPrefillCheckout, r.handler.PrefillCheckout)
	rg.POST("/"+ToolCheckOrderStatus, r.handler.CheckOrderStatus)
}

// KnowledgeRoutes serve the knowledge base and the plain calculator.
type KnowledgeRoutes struct {
	handler *KnowledgeHandler
}

// NewKnowledgeRoutes creates the knowledge routes.
func NewKnowledgeRoutes(handler *KnowledgeHandler) *KnowledgeRoutes {
	return &KnowledgeRoutes{handler: handler}
}

// RegisterRoutes registers the knowledge routes.
func (r *KnowledgeRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/quote", r.handler.Quote)
	rg.GET("/materials", r.handler.ListMaterials)
	rg.GET("/materials/:name", r.handler.GetMaterial)
	rg.GET("/depths", r.handler.GetDepths)
}

// LogsRoutes expose the stored request and tool-call logs.
type LogsRoutes struct {
	handler *LogsHandler
}

// NewLogsRoutes creates the log query routes.
func NewLogsRoutes(handler *LogsHandler) *LogsRoutes {
	return &LogsRoutes{handler: handler}
}

// RegisterRoutes registers the log query routes.
func (r *LogsRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/logs", r.handler.QueryLogs)
}
