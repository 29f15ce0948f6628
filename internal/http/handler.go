// Package http exposes the voice agent tools and knowledge endpoints over gin.
package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/milestonetrucks/voice-agent/internal/calc"
	"github.com/milestonetrucks/voice-agent/internal/domain/dto"
	"github.com/milestonetrucks/voice-agent/internal/i18n"
	"github.com/milestonetrucks/voice-agent/internal/logger"
	"github.com/milestonetrucks/voice-agent/internal/metrics"
	"github.com/milestonetrucks/voice-agent/internal/middleware"
	"github.com/milestonetrucks/voice-agent/internal/service"
)

// Tool names as configured on the voice platform. They are also the route names.
const (
	ToolCheckServiceArea   = "check-service-area"
	ToolRecommendMaterials = "get-material-recommendations"
	ToolCalculateMaterials = "calculate-materials"
	ToolCalculateDelivery  = "calculate-delivery"
	ToolAddToCart          = "add-to-cart"
	ToolPrefillCheckout    = "prefill-checkout"
	ToolCheckOrderStatus   = "check-order-status"
)

// troubleKeys is the spoken apology per tool when a dependency fails.
var troubleKeys = map[string]string{
	ToolCheckServiceArea:   i18n.TroubleServiceArea,
	ToolRecommendMaterials: i18n.TroubleRecommendations,
	ToolCalculateMaterials: i18n.TroubleCalculation,
	ToolCalculateDelivery:  i18n.TroubleDelivery,
	ToolAddToCart:          i18n.TroubleCart,
	ToolPrefillCheckout:    i18n.TroubleCheckout,
	ToolCheckOrderStatus:   i18n.TroubleOrderStatus,
}

// Services are the business services behind the webhook tools.
type Services struct {
	ServiceArea     service.ServiceAreaService
	Recommendations service.RecommendationService
	Materials       service.MaterialsService
	Delivery        service.DeliveryService
	Cart            service.CartService
	Checkout        service.CheckoutService
	OrderStatus     service.OrderStatusService
}

// Handler provides the webhook tool handlers.
type Handler struct {
	svc Services
}

// NewHandler creates a new Handler instance.
func NewHandler(svc Services) *Handler {
	return &Handler{svc: svc}
}

// CheckServiceArea handles POST /api/check-service-area requests.
//
// @Summary      Check service area
// @Description  Tells the caller whether we deliver to a ZIP code and which products the local yard stocks. A ZIP with no products is answered with serviceable=false, not an error.
// @Tags         Tools
// @Accept       json
// @Produce      json
// @Param        request body dto.ServiceAreaRequest true "ZIP code to check"
// @Success      200 {object} dto.SuccessResponse{data=model.ServiceArea}
// @Failure      400 {object} dto.ErrorResponse "Missing or invalid ZIP code"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Failure      502 {object} dto.ErrorResponse "Store API unavailable"
// @Failure      504 {object} dto.ErrorResponse "Timed out"
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /api/check-service-area [post]
func (h *Handler) CheckServiceArea(c *gin.Context) {
	req, ok := bind[dto.ServiceAreaRequest](c, ToolCheckServiceArea)
	if !ok {
		return
	}

	zip := req.CleanZip()
	fields := map[string]any{"zip_code": zip}

	result, err := h.svc.ServiceArea.CheckServiceArea(c.Request.Context(), zip)
	if err != nil {
		fail(c, ToolCheckServiceArea, err, fields)
		return
	}

	fields["serviceable"] = result.Serviceable
	fields["products"] = len(result.AvailableProducts)
	succeed(c, ToolCheckServiceArea, result, fields)
}

// GetMaterialRecommendations handles POST /api/get-material-recommendations requests.
//
// @Summary      Recommend materials
// @Description  Builds the layer plan for a project (driveway, walkway, patio, drainage, landscaping) and matches each layer to a product sold near the caller.
// @Tags         Tools
// @Accept       json
// @Produce      json
// @Param        request body dto.RecommendationRequest true "Project description"
// @Success      200 {object} dto.SuccessResponse{data=model.RecommendationResult}
// @Failure      400 {object} dto.ErrorResponse "Missing project type or ZIP code"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Failure      502 {object} dto.ErrorResponse "Store API unavailable"
// @Failure      504 {object} dto.ErrorResponse "Timed out"
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /api/get-material-recommendations [post]
func (h *Handler) GetMaterialRecommendations(c *gin.Context) {
	req, ok := bind[dto.RecommendationRequest](c, ToolRecommendMaterials)
	if !ok {
		return
	}

	in := service.RecommendationInput{
		ProjectType:    req.ProjectType,
		ZipCode:        dto.CleanZip(req.ZipCode),
		CurrentSurface: req.CurrentSurface,
		FinalSurface:   req.FinalSurface,
		VehicleType:    req.VehicleType,
	}
	fields := map[string]any{
		"project_type": in.ProjectType,
		"zip_code":     in.ZipCode,
		"vehicle_type": in.VehicleType,
	}

	result, err := h.svc.Recommendations.Recommend(c.Request.Context(), in)
	if err != nil {
		fail(c, ToolRecommendMaterials, err, fields)
		return
	}

	fields["recommendations"] = len(result.Recommendations)
	succeed(c, ToolRecommendMaterials, result, fields)
}

// CalculateMaterials handles POST /api/calculate-materials requests.
//
// @Summary      Calculate material quantities
// @Description  Converts the area into cubic yards, tons and truck loads for each product and prices them. Dimensions may be numbers or spoken strings such as "50 feet". Unknown SKUs are skipped.
// @Tags         Tools
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        request body dto.CalculateMaterialsRequest true "Area and materials"
// @Success      200 {object} dto.SuccessResponse{data=model.MaterialsResult}
// @Failure      400 {object} dto.ErrorResponse "Missing, unreadable or non-positive dimensions, or no valid materials"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Failure      502 {object} dto.ErrorResponse "Store API unavailable"
// @Failure      504 {object} dto.ErrorResponse "Timed out"
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /api/calculate-materials [post]
func (h *Handler) CalculateMaterials(c *gin.Context) {
	req, ok := bind[dto.CalculateMaterialsRequest](c, ToolCalculateMaterials)
	if !ok {
		return
	}

	length, width, depth := req.Dimensions()
	in := service.MaterialsInput{LengthFt: length, WidthFt: width, DepthInches: depth, SKUs: req.SKUs()}
	fields := map[string]any{
		"length_ft":    length,
		"width_ft":     width,
		"depth_inches": depth,
		"skus":         in.SKUs,
	}

	result, err := h.svc.Materials.Calculate(c.Request.Context(), in)
	if err != nil {
		fail(c, ToolCalculateMaterials, err, fields)
		return
	}

	fields["total_tons"] = result.Totals.TotalTons
	fields["subtotal"] = result.Totals.Subtotal
	succeed(c, ToolCalculateMaterials, result, fields)
}

// CalculateDelivery handles POST /api/calculate-delivery requests.
//
// @Summary      Estimate delivery
// @Description  Splits the order weight into truck loads and estimates the delivery fee. The final fee is set at checkout.
// @Tags         Tools
// @Accept       json
// @Produce      json
// @Param        request body dto.DeliveryRequest true "Delivery ZIP and weight"
// @Success      200 {object} dto.SuccessResponse{data=model.DeliveryEstimate}
// @Failure      400 {object} dto.ErrorResponse "Missing ZIP code or weight"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Failure      500 {object} dto.ErrorResponse "Misconfigured truck capacity"
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /api/calculate-delivery [post]
func (h *Handler) CalculateDelivery(c *gin.Context) {
	req, ok := bind[dto.DeliveryRequest](c, ToolCalculateDelivery)
	if !ok {
		return
	}

	zip := dto.CleanZip(req.ZipCode)
	fields := map[string]any{"zip_code": zip, "total_weight_tons": req.Weight()}

	result, err := h.svc.Delivery.Estimate(zip, req.Weight())
	if err != nil {
		fail(c, ToolCalculateDelivery, err, fields)
		return
	}

	fields["trucks"] = result.TrucksRequired
	succeed(c, ToolCalculateDelivery, result, fields)
}

// AddToCart handles POST /api/add-to-cart requests.
//
// @Summary      Build a cart
// @Description  Totals the calculated items, the accepted delivery fee and estimated tax into a cart summary the agent reads back. Carts are not stored.
// @Tags         Tools
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        request body dto.AddToCartRequest true "Session and items"
// @Success      200 {object} dto.SuccessResponse{data=model.Cart}
// @Failure      400 {object} dto.ErrorResponse "Missing session or items"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /api/add-to-cart [post]
func (h *Handler) AddToCart(c *gin.Context) {
	req, ok := bind[dto.AddToCartRequest](c, ToolAddToCart)
	if !ok {
		return
	}

	cart := h.svc.Cart.AddToCart(*req)
	succeed(c, ToolAddToCart, cart, map[string]any{
		"session_id": req.SessionID,
		"cart_id":    cart.CartID,
		"items":      len(cart.Items),
		"total":      cart.CartTotal,
	})
}

// PrefillCheckout handles POST /api/prefill-checkout requests.
//
// @Summary      Prefill checkout
// @Description  Maps the caller's spoken details onto checkout billing and shipping fields and returns the checkout URL.
// @Tags         Tools
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        request body dto.CheckoutRequest true "Customer details"
// @Success      200 {object} dto.SuccessResponse{data=model.Checkout}
// @Failure      400 {object} dto.ErrorResponse "Missing cart, name or phone"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /api/prefill-checkout [post]
func (h *Handler) PrefillCheckout(c *gin.Context) {
	req, ok := bind[dto.CheckoutRequest](c, ToolPrefillCheckout)
	if !ok {
		return
	}

	checkout := h.svc.Checkout.Prefill(*req)
	succeed(c, ToolPrefillCheckout, checkout, map[string]any{
		"cart_id":         req.CartID,
		"prefilled_count": len(checkout.PrefilledFields),
	})
}

// CheckOrderStatus handles POST /api/check-order-status requests.
//
// @Summary      Check order status
// @Description  Looks an order up by number, or the most recent order by phone or email, and describes its status and delivery.
// @Tags         Tools
// @Accept       json
// @Produce      json
// @Param        request body dto.OrderStatusRequest true "Order number, phone or email"
// @Success      200 {object} dto.SuccessResponse{data=model.OrderStatus}
// @Failure      400 {object} dto.ErrorResponse "No identifier given"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Failure      404 {object} dto.ErrorResponse "No matching order"
// @Failure      502 {object} dto.ErrorResponse "Store API unavailable"
// @Failure      504 {object} dto.ErrorResponse "Timed out"
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /api/check-order-status [post]
func (h *Handler) CheckOrderStatus(c *gin.Context) {
	req, ok := bind[dto.OrderStatusRequest](c, ToolCheckOrderStatus)
	if !ok {
		return
	}

	in := service.OrderLookup{OrderID: req.OrderID.String(), Phone: req.Phone.String(), Email: req.Email}
	fields := map[string]any{"order_id": in.OrderID, "by_phone": in.Phone != "", "by_email": in.Email != ""}

	result, err := h.svc.OrderStatus.Lookup(c.Request.Context(), in)
	if err != nil {
		fail(c, ToolCheckOrderStatus, err, fields)
		return
	}

	fields["status"] = result.Status
	succeed(c, ToolCheckOrderStatus, result, fields)
}

// bind decodes and validates the tool arguments, answering 400 itself on failure.
func bind[T any](c *gin.Context, tool string) (*T, bool) {
	req, err := BuildRequestAndValidate[T](c)
	if err == nil {
		return req, true
	}

	if _, ok := isValidation(err); ok {
		fail(c, tool, err, nil)
		return nil, false
	}

	recordOutcome(c, tool, middleware.OutcomeValidationError, err, nil)
	NewResponseBuilder(c).Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
	return nil, false
}

func succeed(c *gin.Context, tool string, data any, fields map[string]any) {
	recordOutcome(c, tool, middleware.OutcomeSuccess, nil, fields)
	NewResponseBuilder(c).SuccessOK(data)
}

// fail maps a service error to a status and spoken message.
func fail(c *gin.Context, tool string, err error, fields map[string]any) {
	builder := NewResponseBuilder(c)

	var notFound *service.NotFoundError
	switch ve, isVal := isValidation(err); {
	case isVal:
		recordOutcome(c, tool, middleware.OutcomeValidationError, err, fields)
		builder.WithDetails(map[string]string{"field": ve.Field, "reason": ve.Message}).
			Prompt(http.StatusBadRequest, ve.Key, ve.Args, err)
	case errors.As(err, &notFound):
		recordOutcome(c, tool, middleware.OutcomeNotFound, err, fields)
		builder.Prompt(http.StatusNotFound, notFound.Key, notFound.Args, err)
	case errors.Is(err, service.ErrNoValidMaterials):
		recordOutcome(c, tool, middleware.OutcomeValidationError, err, fields)
		builder.Error(http.StatusBadRequest, i18n.PromptNoValidMaterials, err)
	case errors.Is(err, context.DeadlineExceeded):
		recordOutcome(c, tool, middleware.OutcomeTimeout, err, fields)
		builder.Error(http.StatusGatewayTimeout, i18n.ErrKeyTimeout, err)
	case errors.Is(err, calc.ErrInvalidTruckCapacity):
		recordOutcome(c, tool, middleware.OutcomeInternalError, err, fields)
		builder.Error(http.StatusInternalServerError, troubleKeys[tool], err)
	default:
		recordOutcome(c, tool, middleware.OutcomeUpstreamError, err, fields)
		builder.Error(http.StatusBadGateway, troubleKeys[tool], err)
	}
}

func recordOutcome(c *gin.Context, tool, outcome string, err error, fields map[string]any) {
	metrics.RecordToolCall(tool, outcome)

	if err != nil {
		l := logger.ForCall(middleware.GetCallID(c), tool)
		ev := l.Warn()
		if outcome == middleware.OutcomeUpstreamError || outcome == middleware.OutcomeInternalError {
			ev = l.Error()
		}
		ev.Err(err).Str("outcome", outcome).Str("request_id", middleware.GetRequestID(c)).Msg("Tool call failed")
	}

	ls := loggingServiceFrom(c)
	if ls == nil {
		return
	}
	if outcome == middleware.OutcomeSuccess {
		middleware.AuditLog(ls, c, tool, outcome, fields)
		return
	}
	middleware.AuditLogError(ls, c, tool, outcome, err, fields)
}

// loggingServiceFrom returns the log store set on the context by the router, if any.
func loggingServiceFrom(c *gin.Context) service.LoggingService {
	if v, exists := c.Get(loggingServiceKey); exists {
		if ls, ok := v.(service.LoggingService); ok {
			return ls
		}
	}
	return nil
}
