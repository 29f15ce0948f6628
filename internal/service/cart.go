package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/milestonetrucks/voice-agent/internal/calc"
	"github.com/milestonetrucks/voice-agent/internal/domain/dto"
	"github.com/milestonetrucks/voice-agent/internal/domain/model"
)

// DefaultTaxRate is the average Ohio sales tax on materials.
const DefaultTaxRate = 0.07

const defaultUnit = "tons"

// CartService prices a cart. Carts are handed to checkout, not stored.
type CartService interface {
	AddToCart(req dto.AddToCartRequest) model.Cart
}

// CartServiceImpl implements CartService.
type CartServiceImpl struct {
	taxRate float64
	now     func() time.Time
}

// NewCartService creates a cart pricer with the given tax estimate rate.
func NewCartService(taxRate float64) CartService {
	return newCartService(taxRate, time.Now)
}

func newCartService(taxRate float64, now func() time.Time) *CartServiceImpl {
	if taxRate < 0 {
		taxRate = DefaultTaxRate
	}
	return &CartServiceImpl{taxRate: taxRate, now: now}
}

// AddToCart prices each line, adds the delivery fee and estimates tax. Lines without a
// SKU or quantity are dropped.
func (s *CartServiceImpl) AddToCart(req dto.AddToCartRequest) model.Cart {
	items := make([]model.CartItem, 0, len(req.Items))
	descriptions := make([]string, 0, len(req.Items))
	var subtotal float64

	for _, it := range req.Items {
		sku := it.SKU.String()
		if sku == "" || it.Quantity.Missing() {
			continue
		}
		qty, ok := it.Quantity.Float()
		if !ok {
			continue
		}
		price, ok := it.PricePerTon.Float()
		if !ok {
			price = 0
		}

		name := it.ProductName
		if name == "" {
			name = sku
		}
		unit := it.Unit
		if unit == "" {
			unit = defaultUnit
		}

		lineTotal := qty * price
		subtotal += lineTotal
		items = append(items, model.CartItem{
			SKU:          sku,
			ProductName:  name,
			Quantity:     qty,
			Unit:         unit,
			PricePerUnit: price,
			LineTotal:    calc.Round2(lineTotal),
		})
		descriptions = append(descriptions, fmt.Sprintf("%s tons of %s", calc.FormatNumber(qty), name))
	}

	var delivery *model.CartDelivery
	var deliveryFee float64
	if d := req.Delivery; d != nil {
		if fee, ok := d.Fee.Float(); ok && fee > 0 {
			deliveryFee = fee
			subtotal += fee
		}
		trucks := d.Trucks
		if trucks <= 0 {
			trucks = 1
		}
		zip := d.ZipCode.String()
		if zip == "" {
			zip = req.CustomerZip.String()
		}
		delivery = &model.CartDelivery{
			Fee:     deliveryFee,
			Trucks:  trucks,
			ZipCode: zip,
			Address: d.Address,
		}
	}

	tax := subtotal * s.taxRate
	total := subtotal + tax

	msg := fmt.Sprintf("I've added %s to your cart.", strings.Join(descriptions, ", "))
	if deliveryFee > 0 {
		msg += fmt.Sprintf(" With delivery, your subtotal is %s.", calc.FormatCurrency(subtotal))
	} else {
		msg += fmt.Sprintf(" Your subtotal is %s.", calc.FormatCurrency(subtotal))
	}
	msg += fmt.Sprintf(" Including estimated tax, your total is about %s.", calc.FormatCurrency(total))
	msg += " Would you like to proceed to checkout?"

	return model.Cart{
		CartID:        fmt.Sprintf("cart_%s_%d", req.SessionID, s.now().UnixMilli()),
		SessionID:     req.SessionID,
		ItemsAdded:    len(items),
		Items:         items,
		Delivery:      delivery,
		Subtotal:      calc.Round2(subtotal),
		TaxEstimate:   calc.Round2(tax),
		TaxNote:       "Tax calculated at checkout based on delivery address",
		CartTotal:     calc.Round2(total),
		CheckoutReady: true,
		Message:       msg,
	}
}
