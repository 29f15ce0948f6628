package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/milestonetrucks/voice-agent/internal/catalog"
	"github.com/milestonetrucks/voice-agent/internal/domain/model"
)

type statusInfo struct {
	display     string
	description string
	nextStep    string
}

var orderStatuses = map[string]statusInfo{
	"pending": {
		display:     "Pending",
		description: "Waiting for payment confirmation",
		nextStep:    "Once payment is confirmed, we'll schedule your delivery.",
	},
	"processing": {
		display:     "Processing",
		description: "Being processed and scheduled for delivery",
		nextStep:    "Our team is preparing your order. You'll receive a call 24 hours before delivery.",
	},
	"on-hold": {
		display:     "On Hold",
		description: "On hold - our team will contact you",
		nextStep:    "Someone from our team will reach out to you shortly.",
	},
	"completed": {
		display:     "Delivered",
		description: "Has been delivered",
		nextStep:    "We hope everything looks great! Let us know if you need anything else.",
	},
	"cancelled": {
		display:     "Cancelled",
		description: "Was cancelled",
		nextStep:    "If you'd like to place a new order, I can help with that.",
	},
	"refunded": {
		display:     "Refunded",
		description: "Has been refunded",
		nextStep:    "The refund should appear in your account within 5-7 business days.",
	},
	"failed": {
		display:     "Payment Failed",
		description: "Payment failed",
		nextStep:    "You may need to update your payment method or try again.",
	},
}

func lookupStatus(status string) statusInfo {
	if info, ok := orderStatuses[status]; ok {
		return info
	}
	return statusInfo{
		display:     status,
		description: "is being processed",
		nextStep:    "Our team is working on it.",
	}
}

// OrderLookup identifies the order to read back. At least one field is set.
type OrderLookup struct {
	OrderID string
	Phone   string
	Email   string
}

// OrderStatusService reads orders back to returning customers.
type OrderStatusService interface {
	// Lookup returns a *NotFoundError, matching ErrOrderNotFound, on a miss.
	Lookup(ctx context.Context, in OrderLookup) (model.OrderStatus, error)
}

// OrderStatusServiceImpl implements OrderStatusService.
type OrderStatusServiceImpl struct {
	catalog catalog.Catalog
}

// NewOrderStatusService creates a new order status service.
func NewOrderStatusService(c catalog.Catalog) OrderStatusService {
	return &OrderStatusServiceImpl{catalog: c}
}

// Lookup tries the order number first. Without a usable number it searches by phone
// and email and reports the most recent match.
func (s *OrderStatusServiceImpl) Lookup(ctx context.Context, in OrderLookup) (model.OrderStatus, error) {
	if id := digitsOf(in.OrderID); id != "" {
		order, err := s.catalog.OrderByID(ctx, id)
		if err != nil {
			return model.OrderStatus{}, fmt.Errorf("lookup order %s: %w", id, err)
		}
		if order == nil {
			return model.OrderStatus{}, orderNotFound(id)
		}
		return describeOrder(*order, 1), nil
	}
	if in.Phone == "" && in.Email == "" {
		// An unfiltered search would list other customers' orders.
		return model.OrderStatus{}, orderNotFound(in.OrderID)
	}

	orders, err := s.catalog.OrdersByCustomer(ctx, catalog.CustomerQuery{Phone: in.Phone, Email: in.Email})
	if err != nil {
		return model.OrderStatus{}, fmt.Errorf("lookup orders by customer: %w", err)
	}
	if len(orders) == 0 {
		return model.OrderStatus{}, ordersNotFound(searchedBy(in.Phone, in.Email))
	}
	return describeOrder(orders[0], len(orders)), nil
}

func describeOrder(o model.Order, found int) model.OrderStatus {
	info := lookupStatus(o.Status)
	date := o.FirstMeta("delivery_date", "_delivery_date")
	when := o.FirstMeta("delivery_time", "_delivery_time")

	items := make([]model.OrderItem, 0, len(o.LineItems))
	for _, li := range o.LineItems {
		items = append(items, model.OrderItem{
			Name:     model.CleanProductName(li.Name),
			Quantity: li.Quantity,
			Total:    li.TotalAmount(),
		})
	}

	var address *string
	if o.Shipping != nil {
		line := o.Shipping.OneLine()
		address = &line
	}

	var b strings.Builder
	fmt.Fprintf(&b, "I found your order number %d. Your order %s. ", o.ID, info.description)
	if date != "" {
		b.WriteString("Delivery is scheduled for " + date)
		if when != "" {
			b.WriteString(" between " + when)
		}
		b.WriteString(". ")
	}
	b.WriteString(info.nextStep)

	status := model.OrderStatus{
		Found:             true,
		OrderID:           o.ID,
		OrderNumber:       o.DisplayNumber(),
		Status:            o.Status,
		StatusDisplay:     info.display,
		StatusDescription: info.description,
		OrderDate:         o.DateCreated,
		Total:             o.TotalAmount(),
		Items:             items,
		Delivery: model.OrderDelivery{
			Date:    optional(date),
			Time:    optional(when),
			Address: address,
		},
		Billing: model.OrderContact{
			Name:  o.Billing.FullName(),
			Email: o.Billing.Email,
			Phone: o.Billing.Phone,
		},
	}

	if found > 1 {
		fmt.Fprintf(&b, " I found %d orders on your account. This is the most recent one. Would you like information about a different order?", found)
		status.TotalOrdersFound = found
	}
	status.Message = b.String()
	return status
}

func searchedBy(phone, email string) string {
	var parts []string
	if phone != "" {
		last4 := phone
		if len(last4) > 4 {
			last4 = last4[len(last4)-4:]
		}
		parts = append(parts, "phone number ending in "+last4)
	}
	if email != "" {
		parts = append(parts, "email "+email)
	}
	return strings.Join(parts, " or ")
}

func digitsOf(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
