package database

import (
	"github.com/yeremiapane/food-ordering/models"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.MenuItem{},
		&models.Cart{},
		&models.CartLine{},
		&models.Order{},
		&models.OrderItem{},
	)
}
