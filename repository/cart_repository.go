package repository

import (
	"context"

	"github.com/yeremiapane/food-ordering/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartRepository struct{ DB *gorm.DB }

func NewCartRepository(db *gorm.DB) *CartRepository { return &CartRepository{DB: db} }

func (r *CartRepository) WithTx(tx *gorm.DB) *CartRepository { return &CartRepository{DB: tx} }

// FindByUser loads the user's cart with its lines in insertion order. It
// returns gorm.ErrRecordNotFound if the user has no cart yet.
func (r *CartRepository) FindByUser(ctx context.Context, userID uint) (*models.Cart, error) {
	var c models.Cart
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("cart_lines.id ASC")
		}).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	if c.Items == nil {
		c.Items = []models.CartLine{}
	}
	return &c, nil
}

func (r *CartRepository) Create(ctx context.Context, c *models.Cart) error {
	if c.Items == nil {
		c.Items = []models.CartLine{}
	}
	return r.DB.WithContext(ctx).Omit(clause.Associations).Create(c).Error
}

// Save writes the cart row and replaces its whole line collection, the way a
// cart document is rewritten. Call inside a transaction.
func (r *CartRepository) Save(ctx context.Context, c *models.Cart) error {
	db := r.DB.WithContext(ctx)
	if err := db.Omit(clause.Associations).Save(c).Error; err != nil {
		return err
	}
	if err := db.Where("cart_id = ?", c.ID).Delete(&models.CartLine{}).Error; err != nil {
		return err
	}
	if len(c.Items) == 0 {
		return nil
	}
	for i := range c.Items {
		c.Items[i].ID = 0
		c.Items[i].CartID = c.ID
	}
	return db.Create(&c.Items).Error
}
