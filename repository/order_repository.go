package repository

import (
	"context"

	"github.com/yeremiapane/food-ordering/models"
	"gorm.io/gorm"
)

type OrderRepository struct{ DB *gorm.DB }

func NewOrderRepository(db *gorm.DB) *OrderRepository { return &OrderRepository{DB: db} }

func (r *OrderRepository) WithTx(tx *gorm.DB) *OrderRepository { return &OrderRepository{DB: tx} }

// Create inserts the order together with its items.
func (r *OrderRepository) Create(ctx context.Context, o *models.Order) error {
	return r.DB.WithContext(ctx).Create(o).Error
}

func (r *OrderRepository) FindByRequestID(ctx context.Context, userID uint, requestID string) (*models.Order, error) {
	var o models.Order
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND request_id = ?", userID, requestID).
		Preload("Items", orderItemsInOrder).
		First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// ListByUser returns the user's orders, most recent first.
func (r *OrderRepository) ListByUser(ctx context.Context, userID uint) ([]models.Order, error) {
	orders := make([]models.Order, 0)
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Items", orderItemsInOrder).
		Order("created_at DESC").
		Order("id DESC").
		Find(&orders).Error
	return orders, err
}

func orderItemsInOrder(db *gorm.DB) *gorm.DB {
	return db.Order("order_items.id ASC")
}
