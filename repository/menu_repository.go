package repository

import (
	"context"

	"github.com/yeremiapane/food-ordering/models"
	"gorm.io/gorm"
)

type MenuRepository struct{ DB *gorm.DB }

func NewMenuRepository(db *gorm.DB) *MenuRepository { return &MenuRepository{DB: db} }

// WithTx returns a repository bound to tx.
func (r *MenuRepository) WithTx(tx *gorm.DB) *MenuRepository { return &MenuRepository{DB: tx} }

func (r *MenuRepository) ListAvailable(ctx context.Context) ([]models.MenuItem, error) {
	items := make([]models.MenuItem, 0)
	err := r.DB.WithContext(ctx).Where("available = ?", true).Order("id ASC").Find(&items).Error
	return items, err
}

func (r *MenuRepository) ListAll(ctx context.Context) ([]models.MenuItem, error) {
	items := make([]models.MenuItem, 0)
	err := r.DB.WithContext(ctx).Order("id ASC").Find(&items).Error
	return items, err
}

// FindByID returns gorm.ErrRecordNotFound when the item does not exist.
func (r *MenuRepository) FindByID(ctx context.Context, id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := r.DB.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// FindByIDs fetches every existing item among ids in one query, keyed by id.
// Missing ids are simply absent from the result.
func (r *MenuRepository) FindByIDs(ctx context.Context, ids []uint) (map[uint]*models.MenuItem, error) {
	out := make(map[uint]*models.MenuItem, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var items []models.MenuItem
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	for i := range items {
		out[items[i].ID] = &items[i]
	}
	return out, nil
}

func (r *MenuRepository) Create(ctx context.Context, item *models.MenuItem) error {
	return r.DB.WithContext(ctx).Create(item).Error
}

func (r *MenuRepository) Save(ctx context.Context, item *models.MenuItem) error {
	return r.DB.WithContext(ctx).Save(item).Error
}

func (r *MenuRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&models.MenuItem{}, id).Error
}
