// Package service contains the business logic behind the voice agent webhooks.
package service

import (
	"errors"

	"github.com/milestonetrucks/voice-agent/internal/i18n"
)

var (
	// ErrNoValidMaterials means none of the requested SKUs resolved to a product.
	ErrNoValidMaterials = errors.New("service: no valid materials")
	// ErrOrderNotFound is matched by every *NotFoundError from order lookups.
	ErrOrderNotFound = errors.New("service: order not found")
)

// NotFoundError is an order lookup miss. Key and Args form the spoken prompt.
type NotFoundError struct {
	Key  string
	Args []any
}

func (e *NotFoundError) Error() string {
	return ErrOrderNotFound.Error()
}

// Is reports whether target is ErrOrderNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrOrderNotFound
}

func orderNotFound(id string) *NotFoundError {
	return &NotFoundError{Key: i18n.PromptOrderNotFound, Args: []any{id}}
}

func ordersNotFound(searchedBy string) *NotFoundError {
	return &NotFoundError{Key: i18n.PromptOrdersNotFound, Args: []any{searchedBy}}
}
