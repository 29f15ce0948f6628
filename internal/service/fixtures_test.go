//go:build !integration

package service

import (
	"github.com/milestonetrucks/voice-agent/internal/domain/model"
)

func crusherRun() model.Product {
	return model.Product{
		ID:          101,
		Name:        "Crusher Run | STONE DELIVERY | Columbus",
		SKU:         "OHMS-6",
		Price:       "45.00",
		StockStatus: model.StockStatusInStock,
		Categories:  []model.ProductCategory{{ID: 7, Name: "Gravel & Stone Columbus"}},
		MetaData: []model.MetaData{
			{Key: model.MetaDensity, Value: "1.4"},
			{Key: model.MetaTruckCapacity, Value: "18"},
		},
	}
}

func cleanStone() model.Product {
	return model.Product{
		ID:          102,
		Name:        "3/4 Clean Stone | STONE DELIVERY | Columbus",
		SKU:         "C57",
		Price:       "52.50",
		StockStatus: model.StockStatusInStock,
		MetaData: []model.MetaData{
			{Key: model.MetaDensity, Value: 1.35},
		},
	}
}

func topsoil() model.Product {
	return model.Product{
		ID:          103,
		Name:        "Screened Topsoil | SOIL DELIVERY | Columbus",
		SKU:         "TOP-1",
		Price:       "38",
		StockStatus: "outofstock",
	}
}
