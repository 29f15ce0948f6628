// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// Webhook requests come from a voice platform that extracts arguments from speech, so
// numeric fields accept numbers or strings and validation errors carry a spoken prompt
// key rather than a terse field message.
package dto

import (
	"github.com/milestonetrucks/voice-agent/internal/i18n"
)

// ValidationError represents a field validation error. Key names the i18n prompt the
// voice agent reads back; Args fill its placeholders.
type ValidationError struct {
	Field   string
	Message string
	Key     string
	Args    []any
}

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func invalid(field, message, key string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: message, Key: key, Args: args}
}

var (
	ErrZipRequired           = invalid("zip_code", "is required", i18n.PromptZipRequired)
	ErrProjectTypeRequired   = invalid("project_type", "is required", i18n.PromptProjectTypeRequired)
	ErrRecommendationZip     = invalid("zip_code", "is required", i18n.PromptRecommendationZipRequired)
	ErrDimensionsRequired    = invalid("dimensions", "length_ft, width_ft and depth_inches are required", i18n.PromptDimensionsRequired)
	ErrMaterialsRequired     = invalid("materials", "at least one material is required", i18n.PromptMaterialsRequired)
	ErrDimensionsUnreadable  = invalid("dimensions", "must be numbers", i18n.PromptDimensionsUnreadable)
	ErrDimensionsNotPositive = invalid("dimensions", "must be greater than zero", i18n.PromptDimensionsNotPositive)
	ErrDeliveryZipRequired   = invalid("zip_code", "is required", i18n.PromptDeliveryZipRequired)
	ErrWeightRequired        = invalid("total_weight_tons", "must be a positive number", i18n.PromptWeightRequired)
	ErrWeightUnreadable      = invalid("total_weight_tons", "must be a number", i18n.PromptWeightUnreadable)
	ErrSessionRequired       = invalid("session_id", "is required", i18n.PromptSessionRequired)
	ErrCartItemsRequired     = invalid("items", "at least one item is required", i18n.PromptCartItemsRequired)
	ErrCartIDRequired        = invalid("cart_id", "is required", i18n.PromptCartIDRequired)
	ErrNameRequired          = invalid("customer_name", "is required", i18n.PromptNameRequired)
	ErrPhoneRequired         = invalid("phone", "is required", i18n.PromptPhoneRequired)
	ErrOrderLookupRequired   = invalid("order_id", "order_id, phone or email is required", i18n.PromptOrderLookupRequired)
)

// ServiceAreaRequest asks whether a ZIP code is served.
//
// @Description Service area check
// @Example {"zip_code": "43004"}
type ServiceAreaRequest struct {
	ZipCode FlexibleString `json:"zip_code" swaggertype:"string" example:"43004"`
} // @name ServiceAreaRequest

// Validate checks the ZIP code is present and has five digits.
func (r *ServiceAreaRequest) Validate() error {
	if r.ZipCode.Empty() {
		return ErrZipRequired
	}
	if len(r.CleanZip()) != 5 {
		return invalid("zip_code", "must be a 5-digit ZIP code", i18n.PromptZipInvalid, r.ZipCode.String())
	}
	return nil
}

// CleanZip returns the first five digits of the ZIP code.
func (r *ServiceAreaRequest) CleanZip() string {
	return CleanZip(r.ZipCode)
}

// CleanZip keeps the first five digits of a ZIP code, dropping spaces and ZIP+4 suffixes.
func CleanZip(zip FlexibleString) string {
	d := zip.Digits()
	if len(d) > 5 {
		d = d[:5]
	}
	return d
}

// RecommendationRequest asks for the materials a project needs.
//
// @Description Material recommendation request
// @Example {"project_type": "driveway", "zip_code": "43004", "vehicle_type": "heavy trucks"}
type RecommendationRequest struct {
	ProjectType    string         `json:"project_type" example:"driveway"`
	ZipCode        FlexibleString `json:"zip_code" swaggertype:"string" example:"43004"`
	CurrentSurface string         `json:"current_surface,omitempty" example:"dirt"`
	FinalSurface   string         `json:"final_surface,omitempty" example:"stay gravel"`
	VehicleType    string         `json:"vehicle_type,omitempty" example:"heavy trucks"`
} // @name RecommendationRequest

// Validate checks the project type and ZIP code are present.
func (r *RecommendationRequest) Validate() error {
	if r.ProjectType == "" {
		return ErrProjectTypeRequired
	}
	if r.ZipCode.Empty() {
		return ErrRecommendationZip
	}
	return nil
}

// MaterialSelection names a store product by SKU.
type MaterialSelection struct {
	SKU FlexibleString `json:"sku" swaggertype:"string" example:"OHMS-6"`
}

// CalculateMaterialsRequest asks for quantities and prices of materials over an area.
//
// @Description Material quantity calculation request
// @Example {"length_ft": 50, "width_ft": "12 feet", "depth_inches": 4, "materials": [{"sku": "OHMS-6"}]}
type CalculateMaterialsRequest struct {
	LengthFt    FlexibleNumber      `json:"length_ft" swaggertype:"number" example:"50"`
	WidthFt     FlexibleNumber      `json:"width_ft" swaggertype:"number" example:"12"`
	DepthInches FlexibleNumber      `json:"depth_inches" swaggertype:"number" example:"4"`
	Materials   []MaterialSelection `json:"materials"`
	ZipCode     FlexibleString      `json:"zip_code,omitempty" swaggertype:"string" example:"43004"`
} // @name CalculateMaterialsRequest

// Dimensions returns the parsed length, width and depth. Call after Validate.
func (r *CalculateMaterialsRequest) Dimensions() (length, width, depth float64) {
	length, _ = r.LengthFt.Float()
	width, _ = r.WidthFt.Float()
	depth, _ = r.DepthInches.Float()
	return length, width, depth
}

// SKUs returns the non-empty SKUs in request order.
func (r *CalculateMaterialsRequest) SKUs() []string {
	out := make([]string, 0, len(r.Materials))
	for _, m := range r.Materials {
		if sku := m.SKU.String(); sku != "" {
			out = append(out, sku)
		}
	}
	return out
}

// Validate checks presence first, then that the dimensions read as positive numbers.
func (r *CalculateMaterialsRequest) Validate() error {
	if r.LengthFt.Missing() || r.WidthFt.Missing() || r.DepthInches.Missing() {
		return ErrDimensionsRequired
	}
	if len(r.Materials) == 0 {
		return ErrMaterialsRequired
	}

	l, okL := r.LengthFt.Float()
	w, okW := r.WidthFt.Float()
	d, okD := r.DepthInches.Float()
	if !okL || !okW || !okD {
		return ErrDimensionsUnreadable
	}
	if l <= 0 || w <= 0 || d <= 0 {
		return ErrDimensionsNotPositive
	}
	return nil
}

// DeliveryRequest asks for a delivery fee estimate.
//
// @Description Delivery fee request
// @Example {"zip_code": "43004", "total_weight_tons": 25}
type DeliveryRequest struct {
	ZipCode               FlexibleString `json:"zip_code" swaggertype:"string" example:"43004"`
	DeliveryAddress       string         `json:"delivery_address,omitempty"`
	TotalWeightTons       FlexibleNumber `json:"total_weight_tons" swaggertype:"number" example:"25"`
	TotalVolumeCubicYards FlexibleNumber `json:"total_volume_cubic_yards,omitempty" swaggertype:"number"`
	YardCode              string         `json:"yard_code,omitempty"`
} // @name DeliveryRequest

// Weight returns the parsed total weight. Call after Validate.
func (r *DeliveryRequest) Weight() float64 {
	w, _ := r.TotalWeightTons.Float()
	return w
}

// Validate checks the ZIP code and weight.
func (r *DeliveryRequest) Validate() error {
	if r.ZipCode.Empty() {
		return ErrDeliveryZipRequired
	}
	if r.TotalWeightTons.Missing() {
		return ErrWeightRequired
	}
	w, ok := r.TotalWeightTons.Float()
	if !ok {
		return ErrWeightUnreadable
	}
	if w <= 0 {
		return ErrWeightRequired
	}
	return nil
}

// CartItemRequest is one line the caller wants to buy.
type CartItemRequest struct {
	SKU         FlexibleString `json:"sku" swaggertype:"string" example:"OHMS-6"`
	ProductName string         `json:"product_name,omitempty" example:"Crusher Run"`
	Quantity    FlexibleNumber `json:"quantity" swaggertype:"number" example:"10.4"`
	Unit        string         `json:"unit,omitempty" example:"tons"`
	PricePerTon FlexibleNumber `json:"price_per_ton" swaggertype:"number" example:"45"`
}

// CartDeliveryRequest is the delivery the caller accepted.
type CartDeliveryRequest struct {
	Fee     FlexibleNumber `json:"fee" swaggertype:"number" example:"200"`
	Trucks  int            `json:"trucks,omitempty" example:"1"`
	ZipCode FlexibleString `json:"zip_code,omitempty" swaggertype:"string" example:"43004"`
	Address string         `json:"address,omitempty"`
}

// AddToCartRequest builds a cart from calculated items.
//
// @Description Add to cart request
// @Example {"session_id": "abc123", "items": [{"sku": "OHMS-6", "quantity": 10.4, "price_per_ton": 45}]}
type AddToCartRequest struct {
	SessionID   string               `json:"session_id" example:"abc123"`
	Items       []CartItemRequest    `json:"items"`
	Delivery    *CartDeliveryRequest `json:"delivery,omitempty"`
	CustomerZip FlexibleString       `json:"customer_zip,omitempty" swaggertype:"string" example:"43004"`
} // @name AddToCartRequest

// Validate checks the session and items are present.
func (r *AddToCartRequest) Validate() error {
	if r.SessionID == "" {
		return ErrSessionRequired
	}
	if len(r.Items) == 0 {
		return ErrCartItemsRequired
	}
	return nil
}

// CheckoutRequest carries the customer details to prefill checkout with.
//
// @Description Checkout prefill request
// @Example {"cart_id": "cart_abc123_1767225600000", "customer_name": "Jane Doe", "phone": "(614) 555-0100"}
type CheckoutRequest struct {
	CartID          string         `json:"cart_id" example:"cart_abc123_1767225600000"`
	CustomerName    string         `json:"customer_name" example:"Jane Doe"`
	DeliveryAddress string         `json:"delivery_address,omitempty" example:"123 Main St"`
	City            string         `json:"city,omitempty" example:"Columbus"`
	State           string         `json:"state,omitempty" example:"OH"`
	ZipCode         FlexibleString `json:"zip_code,omitempty" swaggertype:"string" example:"43004"`
	Phone           FlexibleString `json:"phone" swaggertype:"string" example:"(614) 555-0100"`
	Email           string         `json:"email,omitempty" example:"jane@example.com"`
	Company         string         `json:"company,omitempty"`
	DeliveryNotes   string         `json:"delivery_notes,omitempty"`
	DeliveryDate    string         `json:"delivery_date,omitempty" example:"next Tuesday"`
} // @name CheckoutRequest

// Validate checks the cart, name and phone are present.
func (r *CheckoutRequest) Validate() error {
	if r.CartID == "" {
		return ErrCartIDRequired
	}
	if r.CustomerName == "" {
		return ErrNameRequired
	}
	if r.Phone.Empty() {
		return ErrPhoneRequired
	}
	return nil
}

// OrderStatusRequest looks an order up by number, phone or email.
//
// @Description Order status request
// @Example {"order_id": "5123"}
type OrderStatusRequest struct {
	OrderID FlexibleString `json:"order_id,omitempty" swaggertype:"string" example:"5123"`
	Phone   FlexibleString `json:"phone,omitempty" swaggertype:"string" example:"6145550100"`
	Email   string         `json:"email,omitempty" example:"jane@example.com"`
} // @name OrderStatusRequest

// Validate checks at least one identifier is present.
func (r *OrderStatusRequest) Validate() error {
	if r.OrderID.Empty() && r.Phone.Empty() && r.Email == "" {
		return ErrOrderLookupRequired
	}
	return nil
}

// QuoteRequest is a direct calculation with a caller-supplied price.
//
// @Description Single material quote
// @Example {"length_ft": 50, "width_ft": 12, "depth_inches": 4, "price_per_ton": 45}
type QuoteRequest struct {
	LengthFt      float64 `json:"length_ft" binding:"required,gt=0" example:"50"`
	WidthFt       float64 `json:"width_ft" binding:"required,gt=0" example:"12"`
	DepthInches   float64 `json:"depth_inches" binding:"required,gt=0" example:"4"`
	PricePerTon   float64 `json:"price_per_ton" binding:"required,gt=0" example:"45"`
	Density       float64 `json:"density,omitempty" binding:"omitempty,gt=0" example:"1.4"`
	TruckCapacity float64 `json:"truck_capacity,omitempty" binding:"omitempty,gt=0" example:"18"`
} // @name QuoteRequest
