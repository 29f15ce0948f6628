// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/milestonetrucks/voice-agent/internal/catalog"
	"github.com/milestonetrucks/voice-agent/internal/domain/model"
	"github.com/stretchr/testify/mock"
)

type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) ProductsByZip(ctx context.Context, zip string) ([]model.Product, error) {
	args := m.Called(ctx, zip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockCatalog) ProductBySKU(ctx context.Context, sku string) (*model.Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockCatalog) OrderByID(ctx context.Context, id string) (*model.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockCatalog) OrdersByCustomer(ctx context.Context, q catalog.CustomerQuery) ([]model.Order, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}
