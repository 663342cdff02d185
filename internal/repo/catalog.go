package repo

import (
	"context"

	"github.com/Skotchmaster/shopcart/internal/models"
)

func (r *GormRepo) FetchProducts(ctx context.Context) ([]models.Product, error) {
	items := make([]models.Product, 0)
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		return nil, classify("fetch products", err)
	}
	return items, nil
}

func (r *GormRepo) FetchProduct(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, classify("fetch product", err)
	}
	return &product, nil
}
