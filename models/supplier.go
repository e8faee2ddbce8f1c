package models

import (
	"context"
	"time"

	"github.com/flowstate/tractor-beam/config"
	"github.com/shopspring/decimal"
)

// Supplier is static reference data: per-component unit prices and a
// base lead time in days.
type Supplier struct {
	ID               string    `gorm:"primaryKey;size:50" json:"id" validate:"required"`
	Name             string    `gorm:"size:100;not null" json:"name" validate:"required"`
	BaseLeadTimeDays int       `gorm:"not null;default:7" json:"base_lead_time_days" validate:"gte=1"`
	ComponentPrices  PriceMap  `gorm:"type:json" json:"component_prices"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// PriceFor reports the unit price for a component and whether this
// supplier sells it at all.
func (s *Supplier) PriceFor(componentId string) (decimal.Decimal, bool) {
	price, ok := s.ComponentPrices[componentId]
	return price, ok
}

func ListSuppliers(ctx context.Context) ([]Supplier, error) {
	var suppliers []Supplier
	db := config.GetDB()
	if err := db.WithContext(ctx).Order("id").Find(&suppliers).Error; err != nil {
		return nil, err
	}
	return suppliers, nil
}
