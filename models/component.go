package models

import (
	"context"
	"time"

	"github.com/flowstate/tractor-beam/config"
)

// Component is static reference data: a purchasable tractor part with a
// baseline failure rate (fraction, e.g. 0.03 = 3%).
type Component struct {
	ID          string    `gorm:"primaryKey;size:50" json:"id" validate:"required"`
	Name        string    `gorm:"size:100;not null" json:"name" validate:"required"`
	FailureRate float64   `gorm:"type:decimal(6,4);not null;default:0" json:"failure_rate" validate:"gte=0,lte=1"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func ListComponents(ctx context.Context) ([]Component, error) {
	var components []Component
	db := config.GetDB()
	if err := db.WithContext(ctx).Order("id").Find(&components).Error; err != nil {
		return nil, err
	}
	return components, nil
}
