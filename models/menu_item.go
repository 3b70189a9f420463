package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices go over the wire as numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

type MenuItem struct {
	ID              uint            `gorm:"primaryKey" json:"_id"`
	Name            string          `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Description     string          `gorm:"type:text;not null" json:"description" validate:"required"`
	Price           decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Image           string          `gorm:"type:varchar(512);not null" json:"image" validate:"required"`
	Category        string          `gorm:"type:varchar(100);not null;index" json:"category" validate:"required"`
	IsVegetarian    bool            `gorm:"not null" json:"isVegetarian"`
	SpicyLevel      int             `gorm:"not null" json:"spicyLevel" validate:"min=1,max=5"`
	PreparationTime int             `gorm:"not null" json:"preparationTime" validate:"min=0"`
	Available       bool            `gorm:"not null;index" json:"available"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// LineTotal is price × quantity.
func (m *MenuItem) LineTotal(quantity int) decimal.Decimal {
	return m.Price.Mul(decimal.NewFromInt(int64(quantity)))
}
