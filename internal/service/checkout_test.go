//go:build !integration

package service

import (
	"testing"

	"github.com/milestonetrucks/voice-agent/internal/domain/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckoutService_Prefill(t *testing.T) {
	svc := NewCheckoutService(CheckoutConfig{StoreURL: "https://shop.example.com/"})

	t.Run("full details", func(t *testing.T) {
		got := svc.Prefill(dto.CheckoutRequest{
			CartID:          "cart_abc_1",
			CustomerName:    "  Mary Ann  van Buren ",
			Phone:           "(614) 555-0100",
			DeliveryAddress: "123 Main St",
			City:            "Columbus",
			ZipCode:         "43004",
			Email:           "mary@example.com",
			DeliveryNotes:   "Dump by the garage",
			DeliveryDate:    "next Tuesday",
		})

		assert.Equal(t, "https://shop.example.com/checkout/", got.CheckoutURL)
		assert.Equal(t, "cart_abc_1", got.CartID)

		billing := got.CustomerData.Billing
		assert.Equal(t, "Mary", billing.FirstName)
		assert.Equal(t, "Ann van Buren", billing.LastName)
		assert.Equal(t, "6145550100", billing.Phone)
		assert.Equal(t, "OH", billing.State)
		assert.Equal(t, "43004", billing.Postcode)
		assert.Equal(t, "mary@example.com", billing.Email)

		shipping := got.CustomerData.Shipping
		assert.Equal(t, "123 Main St", shipping.Address1)
		assert.Empty(t, shipping.Phone)
		assert.Empty(t, shipping.Email)

		assert.Equal(t, "Requested delivery date: next Tuesday. Dump by the garage", got.CustomerData.CustomerNote)
		assert.Equal(t, []string{"first_name", "last_name", "phone", "address", "city", "postcode", "email"}, got.PrefilledFields)
		require.NotNil(t, got.DeliveryDate)
		assert.Equal(t, "next Tuesday", *got.DeliveryDate)
		require.NotNil(t, got.DeliveryNotes)
		assert.True(t, got.ReadyForCheckout)

		assert.Equal(t, "Perfect! I'm sending you to checkout now. I've noted that you'd like delivery on next Tuesday. "+
			"Your information is ready - you'll just need to review it and add your payment details to complete the order. "+
			"I've included your delivery instructions. After you place the order, you'll get a confirmation email and "+
			"our driver will call you 24 hours before delivery.", got.Message)
	})

	t.Run("minimal details", func(t *testing.T) {
		got := svc.Prefill(dto.CheckoutRequest{
			CartID:       "cart_x",
			CustomerName: "Prince",
			Phone:        "614.555.0100",
			State:        "IN",
		})

		assert.Equal(t, "Prince", got.CustomerData.Billing.FirstName)
		assert.Empty(t, got.CustomerData.Billing.LastName)
		assert.Equal(t, "IN", got.CustomerData.Billing.State)
		assert.Empty(t, got.CustomerData.CustomerNote)
		assert.Equal(t, []string{"first_name", "last_name", "phone", "state"}, got.PrefilledFields)
		assert.Nil(t, got.DeliveryDate)
		assert.Nil(t, got.DeliveryNotes)
		assert.NotContains(t, got.Message, "noted that you'd like delivery")
		assert.NotContains(t, got.Message, "delivery instructions")
	})
}

func TestNewCheckoutService_Defaults(t *testing.T) {
	svc, ok := NewCheckoutService(CheckoutConfig{}).(*CheckoutServiceImpl)
	require.True(t, ok)
	assert.Equal(t, "https://milestonetrucks.com/checkout/", svc.checkoutURL)
	assert.Equal(t, "OH", svc.defaultState)
}

func TestSplitName(t *testing.T) {
	tests := []struct {
		in          string
		first, last string
	}{
		{"Jane Doe", "Jane", "Doe"},
		{"Jane", "Jane", ""},
		{"", "", ""},
		{"  José  de la  Cruz ", "José", "de la Cruz"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			first, last := splitName(tt.in)
			assert.Equal(t, tt.first, first)
			assert.Equal(t, tt.last, last)
		})
	}
}
