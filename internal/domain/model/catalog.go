// Package model holds the store, webhook and log types shared across the service.
package model

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Catalog defaults applied when a product has no usable meta value.
const (
	DefaultDensity       = 1.4
	DefaultTruckCapacity = 18
	DefaultMinimumOrder  = 3
	DefaultYard          = "Local Yard"
)

// Product meta keys maintained by the store.
const (
	MetaDensity       = "density"
	MetaTruckCapacity = "truck_max_quantity"
	MetaMinimumOrder  = "minimum_quantity"
	MetaMapTitle      = "map_title"
)

// StockStatusInStock is the stock status of a product that can be ordered now.
const StockStatusInStock = "instock"

var (
	yardCategoryPattern = regexp.MustCompile(`Gravel & Stone (.+)`)
	leadingNumber       = regexp.MustCompile(`^\s*[-+]?(\d+\.?\d*|\.\d+)`)
)

// MetaData is one custom field on a store product or order. Values arrive as strings,
// numbers or objects depending on the plugin that wrote them.
type MetaData struct {
	ID    int64  `json:"id,omitempty"`
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// ProductCategory is a store category reference.
type ProductCategory struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Product is a store product as returned by the WooCommerce REST API.
// Names follow "<material> | <DELIVERY TYPE> | <yard>".
type Product struct {
	ID               int64             `json:"id"`
	Name             string            `json:"name"`
	SKU              string            `json:"sku"`
	Price            string            `json:"price"`
	Status           string            `json:"status,omitempty"`
	StockStatus      string            `json:"stock_status"`
	ShortDescription string            `json:"short_description"`
	Categories       []ProductCategory `json:"categories"`
	MetaData         []MetaData        `json:"meta_data"`
}

// CatalogName is the full store name, used for material matching.
func (p Product) CatalogName() string { return p.Name }

// CleanName strips the delivery and yard suffix from the product name.
func (p Product) CleanName() string {
	return CleanProductName(p.Name)
}

// Meta returns the value stored under key, if any.
func (p Product) Meta(key string) (any, bool) {
	return findMeta(p.MetaData, key)
}

// PricePerTon parses the product price. Unparseable prices read as zero.
func (p Product) PricePerTon() float64 {
	v, _ := parseLeadingFloat(p.Price)
	return v
}

// InStock reports whether the product can be ordered now.
func (p Product) InStock() bool {
	return p.StockStatus == StockStatusInStock
}

// Density returns tons per cubic yard, defaulting to 1.4.
func (p Product) Density() float64 {
	if v, ok := p.metaNumber(MetaDensity); ok && v > 0 {
		return v
	}
	return DefaultDensity
}

// TruckCapacity returns the tons one truck can haul, defaulting to 18.
// Fractional values are truncated.
func (p Product) TruckCapacity() int {
	if v, ok := p.metaNumber(MetaTruckCapacity); ok && int(v) > 0 {
		return int(v)
	}
	return DefaultTruckCapacity
}

// MinimumOrder returns the minimum order in tons, defaulting to 3.
func (p Product) MinimumOrder() int {
	if v, ok := p.metaNumber(MetaMinimumOrder); ok && int(v) > 0 {
		return int(v)
	}
	return DefaultMinimumOrder
}

// Yard names the location a product ships from. It tries the map title, then the
// first category, then the third segment of the product name.
func (p Product) Yard() string {
	if v, ok := p.Meta(MetaMapTitle); ok {
		if s := metaString(v); s != "" {
			return s
		}
	}

	if len(p.Categories) > 0 {
		name := p.Categories[0].Name
		if m := yardCategoryPattern.FindStringSubmatch(name); m != nil {
			return m[1]
		}
		return name
	}

	if parts := strings.Split(p.Name, "|"); len(parts) >= 3 {
		return strings.TrimSpace(parts[2])
	}

	return DefaultYard
}

func (p Product) metaNumber(key string) (float64, bool) {
	v, ok := p.Meta(key)
	if !ok {
		return 0, false
	}
	return parseLeadingFloat(metaString(v))
}

// CleanProductName returns the part of a store name before the first "|".
func CleanProductName(fullName string) string {
	name, _, _ := strings.Cut(fullName, "|")
	return strings.TrimSpace(name)
}

// Address is a billing or shipping address on an order.
type Address struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Company   string `json:"company,omitempty"`
	Address1  string `json:"address_1"`
	Address2  string `json:"address_2,omitempty"`
	City      string `json:"city"`
	State     string `json:"state"`
	Postcode  string `json:"postcode"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// FullName joins first and last name.
func (a Address) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// OneLine formats the address for speech: "123 Main St, Columbus, OH 43004".
func (a Address) OneLine() string {
	return fmt.Sprintf("%s, %s, %s %s", a.Address1, a.City, a.State, a.Postcode)
}

// LineItem is one product line on an order.
type LineItem struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	ProductID int64   `json:"product_id"`
	SKU       string  `json:"sku"`
	Quantity  float64 `json:"quantity"`
	Total     string  `json:"total"`
}

// Order is a store order as returned by the WooCommerce REST API.
type Order struct {
	ID          int64      `json:"id"`
	Number      string     `json:"number"`
	Status      string     `json:"status"`
	DateCreated string     `json:"date_created"`
	Total       string     `json:"total"`
	Billing     Address    `json:"billing"`
	Shipping    *Address   `json:"shipping"`
	LineItems   []LineItem `json:"line_items"`
	MetaData    []MetaData `json:"meta_data"`
}

// Meta returns the string form of the value stored under key, or "".
func (o Order) Meta(key string) string {
	v, ok := findMeta(o.MetaData, key)
	if !ok {
		return ""
	}
	return metaString(v)
}

// FirstMeta returns the first non-empty meta value among keys.
func (o Order) FirstMeta(keys ...string) string {
	for _, k := range keys {
		if v := o.Meta(k); v != "" {
			return v
		}
	}
	return ""
}

// TotalAmount parses the order total.
func (o Order) TotalAmount() float64 {
	v, _ := parseLeadingFloat(o.Total)
	return v
}

// DisplayNumber is the customer-facing order number, falling back to the id.
func (o Order) DisplayNumber() string {
	if o.Number != "" {
		return o.Number
	}
	return strconv.FormatInt(o.ID, 10)
}

// TotalAmount parses the line total.
func (li LineItem) TotalAmount() float64 {
	v, _ := parseLeadingFloat(li.Total)
	return v
}

func findMeta(meta []MetaData, key string) (any, bool) {
	for _, m := range meta {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

func metaString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

// parseLeadingFloat reads the number at the start of s, ignoring trailing text,
// so "1.35 tons/cy" reads 1.35.
func parseLeadingFloat(s string) (float64, bool) {
	m := leadingNumber.FindString(s)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(m), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
