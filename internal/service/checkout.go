package service

import (
	"strings"

	"github.com/milestonetrucks/voice-agent/internal/domain/dto"
	"github.com/milestonetrucks/voice-agent/internal/domain/model"
)

const (
	// DefaultStoreURL is used when no store URL is configured.
	DefaultStoreURL = "https://milestonetrucks.com"
	// DefaultState is the billing state assumed when the caller gives none.
	DefaultState = "OH"
)

// CheckoutConfig locates the store checkout page.
type CheckoutConfig struct {
	StoreURL     string
	DefaultState string
}

// CheckoutService prepares the hand-off to the store checkout page.
type CheckoutService interface {
	Prefill(req dto.CheckoutRequest) model.Checkout
}

// CheckoutServiceImpl implements CheckoutService.
type CheckoutServiceImpl struct {
	checkoutURL  string
	defaultState string
}

// NewCheckoutService creates a checkout prefiller.
func NewCheckoutService(cfg CheckoutConfig) CheckoutService {
	base := strings.TrimRight(strings.TrimSpace(cfg.StoreURL), "/")
	if base == "" {
		base = DefaultStoreURL
	}
	state := cfg.DefaultState
	if state == "" {
		state = DefaultState
	}
	return &CheckoutServiceImpl{
		checkoutURL:  base + "/checkout/",
		defaultState: state,
	}
}

// Prefill maps the spoken customer details onto checkout billing and shipping fields.
func (s *CheckoutServiceImpl) Prefill(req dto.CheckoutRequest) model.Checkout {
	first, last := splitName(req.CustomerName)
	phone := req.Phone.Digits()
	zip := req.ZipCode.String()

	state := req.State
	if state == "" {
		state = s.defaultState
	}

	billing := model.Address{
		FirstName: first,
		LastName:  last,
		Company:   req.Company,
		Address1:  req.DeliveryAddress,
		City:      req.City,
		State:     state,
		Postcode:  zip,
		Phone:     phone,
		Email:     req.Email,
	}
	shipping := billing
	shipping.Phone = ""
	shipping.Email = ""

	note := req.DeliveryNotes
	if req.DeliveryDate != "" {
		note = "Requested delivery date: " + req.DeliveryDate + ". " + note
	}

	prefilled := []string{"first_name", "last_name", "phone"}
	for _, f := range []struct {
		name string
		set  bool
	}{
		{"address", req.DeliveryAddress != ""},
		{"city", req.City != ""},
		{"state", req.State != ""},
		{"postcode", zip != ""},
		{"email", req.Email != ""},
		{"company", req.Company != ""},
	} {
		if f.set {
			prefilled = append(prefilled, f.name)
		}
	}

	var b strings.Builder
	b.WriteString("Perfect! I'm sending you to checkout now.")
	if req.DeliveryDate != "" {
		b.WriteString(" I've noted that you'd like delivery on " + req.DeliveryDate + ".")
	}
	b.WriteString(" Your information is ready - you'll just need to review it and add your payment details to complete the order.")
	if req.DeliveryNotes != "" {
		b.WriteString(" I've included your delivery instructions.")
	}
	b.WriteString(" After you place the order, you'll get a confirmation email and our driver will call you 24 hours before delivery.")

	return model.Checkout{
		CheckoutURL: s.checkoutURL,
		CartID:      req.CartID,
		CustomerData: model.CustomerData{
			Billing:      billing,
			Shipping:     shipping,
			CustomerNote: note,
		},
		PrefilledFields:  prefilled,
		DeliveryDate:     optional(req.DeliveryDate),
		DeliveryNotes:    optional(req.DeliveryNotes),
		ReadyForCheckout: true,
		Message:          b.String(),
	}
}

// splitName treats the first word as the first name and the rest as the last name.
func splitName(full string) (first, last string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
