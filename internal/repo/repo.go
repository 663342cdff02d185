package repo

import (
	"gorm.io/gorm"

	"github.com/Skotchmaster/shopcart/internal/models"
)

type GormRepo struct {
	DB *gorm.DB
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.Product{}, &models.CartItem{})
}
