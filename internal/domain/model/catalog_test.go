package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProduct_CleanName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Crusher Run | STONE DELIVERY | Columbus", "Crusher Run"},
		{"  #57 Limestone |PICKUP", "#57 Limestone"},
		{"Topsoil", "Topsoil"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Product{Name: tt.name}.CleanName())
		})
	}
}

func TestProduct_MetaDefaults(t *testing.T) {
	tests := []struct {
		name         string
		meta         []MetaData
		wantDensity  float64
		wantCapacity int
		wantMinimum  int
	}{
		{
			name:         "no meta",
			wantDensity:  1.4,
			wantCapacity: 18,
			wantMinimum:  3,
		},
		{
			name: "string values with units",
			meta: []MetaData{
				{Key: MetaDensity, Value: "1.35 tons/cy"},
				{Key: MetaTruckCapacity, Value: "15"},
				{Key: MetaMinimumOrder, Value: "5 tons"},
			},
			wantDensity:  1.35,
			wantCapacity: 15,
			wantMinimum:  5,
		},
		{
			name: "numeric values and truncated capacity",
			meta: []MetaData{
				{Key: MetaDensity, Value: 1.5},
				{Key: MetaTruckCapacity, Value: 16.8},
			},
			wantDensity:  1.5,
			wantCapacity: 16,
			wantMinimum:  3,
		},
		{
			name: "unusable values fall back",
			meta: []MetaData{
				{Key: MetaDensity, Value: "heavy"},
				{Key: MetaTruckCapacity, Value: "0"},
				{Key: MetaMinimumOrder, Value: nil},
			},
			wantDensity:  1.4,
			wantCapacity: 18,
			wantMinimum:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Product{MetaData: tt.meta}
			assert.Equal(t, tt.wantDensity, p.Density())
			assert.Equal(t, tt.wantCapacity, p.TruckCapacity())
			assert.Equal(t, tt.wantMinimum, p.MinimumOrder())
		})
	}
}

func TestProduct_Yard(t *testing.T) {
	tests := []struct {
		name    string
		product Product
		want    string
	}{
		{
			name: "map title wins",
			product: Product{
				Name:       "Crusher Run | STONE DELIVERY | Columbus",
				Categories: []ProductCategory{{Name: "Gravel & Stone Dayton"}},
				MetaData:   []MetaData{{Key: MetaMapTitle, Value: " Lancaster Yard "}},
			},
			want: "Lancaster Yard",
		},
		{
			name: "category prefix stripped",
			product: Product{
				Name:       "Crusher Run | STONE DELIVERY | Columbus",
				Categories: []ProductCategory{{Name: "Gravel & Stone Dayton"}},
			},
			want: "Dayton",
		},
		{
			name:    "category without prefix",
			product: Product{Categories: []ProductCategory{{Name: "Mulch"}}},
			want:    "Mulch",
		},
		{
			name:    "third name segment",
			product: Product{Name: "Crusher Run | STONE DELIVERY | Columbus"},
			want:    "Columbus",
		},
		{
			name:    "default",
			product: Product{Name: "Crusher Run"},
			want:    DefaultYard,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.product.Yard())
		})
	}
}

func TestProduct_PriceAndStock(t *testing.T) {
	p := Product{Price: "45.00", StockStatus: StockStatusInStock}
	assert.Equal(t, 45.0, p.PricePerTon())
	assert.True(t, p.InStock())

	p = Product{Price: "", StockStatus: "outofstock"}
	assert.Zero(t, p.PricePerTon())
	assert.False(t, p.InStock())
}

func TestAddress(t *testing.T) {
	a := Address{FirstName: "Jane", LastName: "Doe", Address1: "123 Main St", City: "Columbus", State: "OH", Postcode: "43004"}
	assert.Equal(t, "Jane Doe", a.FullName())
	assert.Equal(t, "123 Main St, Columbus, OH 43004", a.OneLine())
	assert.Equal(t, "Jane", Address{FirstName: "Jane"}.FullName())
}

func TestOrder_Meta(t *testing.T) {
	o := Order{
		ID:    5123,
		Total: "714.76",
		MetaData: []MetaData{
			{Key: "_delivery_date", Value: "October 20"},
			{Key: "delivery_time", Value: ""},
			{Key: "_delivery_time", Value: "8am and noon"},
			{Key: "priority", Value: true},
		},
	}

	assert.Equal(t, "October 20", o.FirstMeta("delivery_date", "_delivery_date"))
	assert.Equal(t, "8am and noon", o.FirstMeta("delivery_time", "_delivery_time"))
	assert.Equal(t, "true", o.Meta("priority"))
	assert.Empty(t, o.Meta("missing"))
	assert.Equal(t, 714.76, o.TotalAmount())
	assert.Equal(t, "5123", o.DisplayNumber())

	o.Number = "MT-5123"
	assert.Equal(t, "MT-5123", o.DisplayNumber())
}

func TestLineItem_TotalAmount(t *testing.T) {
	assert.Equal(t, 450.0, LineItem{Total: "450.00"}.TotalAmount())
	assert.Zero(t, LineItem{Total: "n/a"}.TotalAmount())
}
