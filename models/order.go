package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is written once at checkout and never updated.
type Order struct {
	ID                  uint            `gorm:"primaryKey" json:"_id"`
	UserID              uint            `gorm:"not null;index;uniqueIndex:idx_orders_user_request" json:"user"`
	RequestID           *string         `gorm:"type:varchar(64);uniqueIndex:idx_orders_user_request" json:"requestId,omitempty"`
	Items               []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"totalAmount"`
	DeliveryAddress     string          `gorm:"type:text;not null" json:"deliveryAddress"`
	PaymentMethod       string          `gorm:"type:varchar(50);not null" json:"paymentMethod"`
	SpecialInstructions string          `gorm:"type:text" json:"specialInstructions,omitempty"`
	CreatedAt           time.Time       `gorm:"not null;index" json:"createdAt"`
}

// MenuItemIDs lists the distinct menu items referenced by the order.
func (o *Order) MenuItemIDs() []uint {
	seen := make(map[uint]struct{}, len(o.Items))
	ids := make([]uint, 0, len(o.Items))
	for _, item := range o.Items {
		if _, ok := seen[item.MenuItemID]; ok {
			continue
		}
		seen[item.MenuItemID] = struct{}{}
		ids = append(ids, item.MenuItemID)
	}
	return ids
}
