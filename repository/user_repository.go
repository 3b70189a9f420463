package repository

import (
	"context"

	"github.com/yeremiapane/food-ordering/models"
	"gorm.io/gorm"
)

type UserRepository struct{ DB *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{DB: db} }

func (r *UserRepository) WithTx(tx *gorm.DB) *UserRepository { return &UserRepository{DB: tx} }

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.User{}).Count(&n).Error
	return n, err
}

// FindByEmailOrUsername returns the first user holding either value.
func (r *UserRepository) FindByEmailOrUsername(ctx context.Context, email, username string) (*models.User, error) {
	var u models.User
	err := r.DB.WithContext(ctx).
		Where("email = ?", email).
		Or("username = ?", username).
		Order("id ASC").
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := r.DB.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	return r.DB.WithContext(ctx).Create(u).Error
}
