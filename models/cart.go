package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart is the single pending selection list of a user. TotalAmount caches the
// priced sum of Items as of the last mutation.
type Cart struct {
	ID          uint            `gorm:"primaryKey" json:"_id"`
	UserID      uint            `gorm:"not null;uniqueIndex" json:"user"`
	Items       []CartLine      `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"totalAmount"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// CartLine points at a menu item by id only; the item may since have been deleted.
type CartLine struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	CartID     uint      `gorm:"not null;uniqueIndex:idx_cart_lines_cart_item" json:"-"`
	MenuItemID uint      `gorm:"not null;uniqueIndex:idx_cart_lines_cart_item" json:"menuItemId"`
	MenuItem   *MenuItem `gorm:"-" json:"menuItem"`
	Quantity   int       `gorm:"not null" json:"quantity"`
}

// Line returns the line for menuItemID, or nil.
func (c *Cart) Line(menuItemID uint) *CartLine {
	for i := range c.Items {
		if c.Items[i].MenuItemID == menuItemID {
			return &c.Items[i]
		}
	}
	return nil
}

// MenuItemIDs lists the distinct menu items referenced by the cart, in line order.
func (c *Cart) MenuItemIDs() []uint {
	seen := make(map[uint]struct{}, len(c.Items))
	ids := make([]uint, 0, len(c.Items))
	for _, line := range c.Items {
		if _, ok := seen[line.MenuItemID]; ok {
			continue
		}
		seen[line.MenuItemID] = struct{}{}
		ids = append(ids, line.MenuItemID)
	}
	return ids
}
