package model

import "github.com/milestonetrucks/voice-agent/internal/calc"

// AvailableProduct is a product that can be delivered to a ZIP code.
//
// @Description Product available in the caller's service area
type AvailableProduct struct {
	ProductID   int64   `json:"product_id" example:"1042"`
	SKU         string  `json:"sku" example:"OHMS-6"`
	Name        string  `json:"name" example:"Crusher Run"`
	FullName    string  `json:"full_name" example:"Crusher Run | STONE DELIVERY | Columbus"`
	PricePerTon float64 `json:"price_per_ton" example:"45"`
	MaxLoadTons int     `json:"max_load_tons" example:"18"`
	MinimumTons int     `json:"minimum_tons" example:"3"`
	Density     float64 `json:"density" example:"1.4"`
	InStock     bool    `json:"in_stock" example:"true"`
	Description string  `json:"description"`
}

// ServiceArea is the result of a service area check.
//
// @Description Whether the business delivers to a ZIP code, and from which yard
type ServiceArea struct {
	Serviceable       bool               `json:"serviceable" example:"true"`
	ZipCode           string             `json:"zip_code" example:"43004"`
	ZoneName          *string            `json:"zone_name" example:"Columbus"`
	YardLocation      *string            `json:"yard_location" example:"Columbus"`
	AvailableProducts []AvailableProduct `json:"available_products"`
	Message           string             `json:"message"`
} // @name ServiceArea

// MaterialRecommendation is one store product recommended for a project layer.
type MaterialRecommendation struct {
	SKU                    string  `json:"sku" example:"OHMS-6"`
	ProductID              int64   `json:"product_id" example:"1042"`
	ProductName            string  `json:"product_name" example:"Crusher Run"`
	Layer                  string  `json:"layer" example:"base"`
	Purpose                string  `json:"purpose"`
	RecommendedDepthInches float64 `json:"recommended_depth_inches" example:"4"`
	PricePerTon            float64 `json:"price_per_ton" example:"45"`
	Density                float64 `json:"density" example:"1.4"`
	MinOrderTons           int     `json:"min_order_tons" example:"3"`
	MaxLoadTons            int     `json:"max_load_tons" example:"18"`
	Why                    string  `json:"why"`
	Essential              bool    `json:"essential" example:"true"`
	ProTip                 *string `json:"pro_tip"`
	CommonMistake          *string `json:"common_mistake"`
	HowItWorks             string  `json:"how_it_works"`
}

// RecommendationResult is the material plan for a project in a service area.
//
// @Description Recommended materials for a project, matched to local products
type RecommendationResult struct {
	Recommendations []MaterialRecommendation `json:"recommendations"`
	Explanation     string                   `json:"explanation"`
	ProjectType     string                   `json:"project_type,omitempty" example:"driveway"`
	QuestionsToAsk  []string                 `json:"questions_to_ask"`
	CommonMistakes  []string                 `json:"common_mistakes"`
	NextQuestion    string                   `json:"next_question"`
	Message         string                   `json:"message"`
} // @name RecommendationResult

// MaterialQuote is the calculated quantity and price of one material.
type MaterialQuote struct {
	SKU                string  `json:"sku" example:"OHMS-6"`
	ProductID          int64   `json:"product_id" example:"1042"`
	ProductName        string  `json:"product_name" example:"Crusher Run"`
	QuantityCubicYards float64 `json:"quantity_cubic_yards" example:"7.41"`
	QuantityTons       float64 `json:"quantity_tons" example:"10.4"`
	QuantityTruckLoads int     `json:"quantity_truck_loads" example:"1"`
	PricePerTon        float64 `json:"price_per_ton" example:"45"`
	TotalPrice         float64 `json:"total_price" example:"466.67"`
	PricePerSqFt       float64 `json:"price_per_sq_ft" example:"0.78"`
	Explanation        string  `json:"explanation"`
}

// MaterialTotals sums all quoted materials.
type MaterialTotals struct {
	Subtotal        float64 `json:"subtotal" example:"466.67"`
	TotalTons       float64 `json:"total_tons" example:"10.4"`
	TotalTruckLoads int     `json:"total_truck_loads" example:"1"`
}

// MaterialsResult is the outcome of a multi-material calculation.
//
// @Description Quantities and prices for every requested material
type MaterialsResult struct {
	Dimensions calc.Dimensions `json:"dimensions"`
	Materials  []MaterialQuote `json:"materials"`
	Totals     MaterialTotals  `json:"totals"`
	Message    string          `json:"message"`
} // @name MaterialsResult

// DeliveryEstimate is the estimated delivery fee for a load.
//
// @Description Delivery fee estimate and site requirements
type DeliveryEstimate struct {
	DeliveryFee          float64  `json:"delivery_fee" example:"200"`
	DeliveryFeeTaxable   bool     `json:"delivery_fee_taxable" example:"true"`
	DeliveryFeeNote      string   `json:"delivery_fee_note"`
	TrucksRequired       int      `json:"trucks_required" example:"1"`
	TruckCapacityTons    float64  `json:"truck_capacity_tons" example:"18"`
	TotalWeightTons      float64  `json:"total_weight_tons" example:"10.4"`
	DeliveryTimeframe    string   `json:"delivery_timeframe"`
	DeliveryNotes        string   `json:"delivery_notes"`
	DeliveryRequirements []string `json:"delivery_requirements"`
	Message              string   `json:"message"`
} // @name DeliveryEstimate

// CartItem is a priced cart line.
type CartItem struct {
	SKU          string  `json:"sku" example:"OHMS-6"`
	ProductName  string  `json:"product_name" example:"Crusher Run"`
	Quantity     float64 `json:"quantity" example:"10.4"`
	Unit         string  `json:"unit" example:"tons"`
	PricePerUnit float64 `json:"price_per_unit" example:"45"`
	LineTotal    float64 `json:"line_total" example:"468"`
}

// CartDelivery is the delivery attached to a cart.
type CartDelivery struct {
	Fee     float64 `json:"fee" example:"200"`
	Trucks  int     `json:"trucks" example:"1"`
	ZipCode string  `json:"zip_code,omitempty" example:"43004"`
	Address string  `json:"address,omitempty"`
}

// Cart is a priced cart. It is computed per request and never stored.
//
// @Description Cart summary with tax estimate
type Cart struct {
	CartID        string        `json:"cart_id" example:"cart_abc123_1767225600000"`
	SessionID     string        `json:"session_id" example:"abc123"`
	ItemsAdded    int           `json:"items_added" example:"1"`
	Items         []CartItem    `json:"items"`
	Delivery      *CartDelivery `json:"delivery"`
	Subtotal      float64       `json:"subtotal" example:"668"`
	TaxEstimate   float64       `json:"tax_estimate" example:"46.76"`
	TaxNote       string        `json:"tax_note"`
	CartTotal     float64       `json:"cart_total" example:"714.76"`
	CheckoutReady bool          `json:"checkout_ready" example:"true"`
	Message       string        `json:"message"`
} // @name Cart

// CustomerData is the checkout form content.
type CustomerData struct {
	Billing      Address `json:"billing"`
	Shipping     Address `json:"shipping"`
	CustomerNote string  `json:"customer_note"`
}

// Checkout is a prefilled checkout hand-off.
//
// @Description Checkout link and prefilled customer details
type Checkout struct {
	CheckoutURL      string       `json:"checkout_url" example:"https://milestonetrucks.com/checkout/"`
	CartID           string       `json:"cart_id"`
	CustomerData     CustomerData `json:"customer_data"`
	PrefilledFields  []string     `json:"prefilled_fields"`
	DeliveryDate     *string      `json:"delivery_date"`
	DeliveryNotes    *string      `json:"delivery_notes"`
	ReadyForCheckout bool         `json:"ready_for_checkout" example:"true"`
	Message          string       `json:"message"`
} // @name Checkout

// OrderItem is an order line as read back to the customer.
type OrderItem struct {
	Name     string  `json:"name" example:"Crusher Run"`
	Quantity float64 `json:"quantity" example:"10"`
	Total    float64 `json:"total" example:"450"`
}

// OrderDelivery is the scheduled delivery of an order.
type OrderDelivery struct {
	Date    *string `json:"date"`
	Time    *string `json:"time"`
	Address *string `json:"address"`
}

// OrderContact is the billing contact of an order.
type OrderContact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// OrderStatus is the spoken status of an order.
//
// @Description Order status lookup result
type OrderStatus struct {
	Found             bool          `json:"found" example:"true"`
	OrderID           int64         `json:"order_id" example:"5123"`
	OrderNumber       string        `json:"order_number" example:"5123"`
	Status            string        `json:"status" example:"processing"`
	StatusDisplay     string        `json:"status_display" example:"Processing"`
	StatusDescription string        `json:"status_description"`
	OrderDate         string        `json:"order_date"`
	Total             float64       `json:"total" example:"714.76"`
	Items             []OrderItem   `json:"items"`
	Delivery          OrderDelivery `json:"delivery"`
	Billing           OrderContact  `json:"billing"`
	TotalOrdersFound  int           `json:"total_orders_found,omitempty"`
	Message           string        `json:"message"`
} // @name OrderStatus
