package models

import "github.com/shopspring/decimal"

// OrderItem freezes name and unit price at checkout time. MenuItem is filled in
// for display when the referenced item still exists.
type OrderItem struct {
	ID         uint            `gorm:"primaryKey" json:"-"`
	OrderID    uint            `gorm:"not null;index" json:"-"`
	MenuItemID uint            `gorm:"not null" json:"menuItemId"`
	MenuItem   *MenuItem       `gorm:"-" json:"menuItem"`
	Name       string          `gorm:"type:varchar(255);not null" json:"name"`
	Quantity   int             `gorm:"not null" json:"quantity"`
	Price      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
}
