// Package i18n provides internationalization support for the voice agent webhooks.
package i18n

// Error message translation keys.
const (
	// ErrKeyInvalidRequest indicates an invalid request.
	ErrKeyInvalidRequest = "error.invalid_request"
	// ErrKeyInvalidRequestBody indicates an invalid request body.
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	// ErrKeyInternalError indicates an internal server error.
	ErrKeyInternalError = "error.internal_error"
	// ErrKeyUnauthorized indicates missing or invalid authentication.
	ErrKeyUnauthorized = "error.unauthorized"
	// ErrKeyAPIKeyRequired indicates that an API key is required.
	ErrKeyAPIKeyRequired = "error.api_key_required"
	// ErrKeyInvalidAPIKey indicates an invalid API key.
	ErrKeyInvalidAPIKey = "error.invalid_api_key"
	// ErrKeyNotFound indicates a resource was not found.
	ErrKeyNotFound = "error.not_found"
	// ErrKeyRateLimitExceeded indicates rate limit exceeded.
	ErrKeyRateLimitExceeded = "error.rate_limit_exceeded"
	// ErrKeyConflict indicates a conflict with current state.
	ErrKeyConflict = "error.conflict"
	// ErrKeyInvalidToken indicates an invalid or expired webhook token.
	ErrKeyInvalidToken = "error.invalid_token"
	// ErrKeyTokenRequired indicates that a webhook token is required.
	ErrKeyTokenRequired = "error.token_required"
	// ErrKeyTimeout indicates a request timeout.
	ErrKeyTimeout = "error.timeout"
	// ErrKeyMaterialNotFound indicates an unknown material name.
	ErrKeyMaterialNotFound = "error.material_not_found"
	// ErrKeyInvalidTruckCapacity indicates a non-positive truck capacity.
	ErrKeyInvalidTruckCapacity = "error.invalid_truck_capacity"
)

// Spoken prompts returned in the message field of webhook errors.
// PromptZipInvalid takes the ZIP code as said, PromptOrderNotFound the order number and
// PromptOrdersNotFound a description of what was searched.
const (
	PromptZipRequired               = "prompt.zip_required"
	PromptZipInvalid                = "prompt.zip_invalid"
	PromptProjectTypeRequired       = "prompt.project_type_required"
	PromptRecommendationZipRequired = "prompt.recommendation_zip_required"
	PromptDimensionsRequired        = "prompt.dimensions_required"
	PromptMaterialsRequired         = "prompt.materials_required"
	PromptDimensionsUnreadable      = "prompt.dimensions_unreadable"
	PromptDimensionsNotPositive     = "prompt.dimensions_not_positive"
	PromptNoValidMaterials          = "prompt.no_valid_materials"
	PromptDeliveryZipRequired       = "prompt.delivery_zip_required"
	PromptWeightRequired            = "prompt.weight_required"
	PromptWeightUnreadable          = "prompt.weight_unreadable"
	PromptSessionRequired           = "prompt.session_required"
	PromptCartItemsRequired         = "prompt.cart_items_required"
	PromptCartIDRequired            = "prompt.cart_id_required"
	PromptNameRequired              = "prompt.name_required"
	PromptPhoneRequired             = "prompt.phone_required"
	PromptOrderLookupRequired       = "prompt.order_lookup_required"
	PromptOrderNotFound             = "prompt.order_not_found"
	PromptOrdersNotFound            = "prompt.orders_not_found"
)

// Spoken prompts for failures on our side, one per tool.
const (
	TroubleServiceArea     = "trouble.service_area"
	TroubleRecommendations = "trouble.recommendations"
	TroubleCalculation     = "trouble.calculation"
	TroubleDelivery        = "trouble.delivery"
	TroubleCart            = "trouble.cart"
	TroubleCheckout        = "trouble.checkout"
	TroubleOrderStatus     = "trouble.order_status"
)
