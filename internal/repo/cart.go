package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/shopcart/internal/models"
)

const cartLine = "user_id = ? AND product_id = ?"

// AddToCart inserts the line or adds to its quantity in a single upsert and
// returns the stored line.
func (r *GormRepo) AddToCart(ctx context.Context, item models.CartItem) (*models.CartItem, error) {
	var line models.CartItem
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"quantity": gorm.Expr("cart_items.quantity + excluded.quantity"),
			}),
		}).Create(&item).Error; err != nil {
			return err
		}
		return tx.Where(cartLine, item.UserID, item.ProductID).First(&line).Error
	})
	if err != nil {
		return nil, classify("add to cart", err)
	}
	return &line, nil
}

func (r *GormRepo) FetchCartDetails(ctx context.Context, userID int64) ([]models.CartDetail, error) {
	lines := make([]models.CartDetail, 0)
	err := r.DB.WithContext(ctx).
		Table("cart_items AS c").
		Select("p.id AS product_id, p.name, p.price, p.image, p.brand, p.category, c.quantity, (p.price * c.quantity) AS total_price").
		Joins("JOIN products p ON c.product_id = p.id").
		Where("c.user_id = ?", userID).
		Order("p.id ASC").
		Scan(&lines).Error
	if err != nil {
		return nil, classify("fetch cart details", err)
	}
	return lines, nil
}

// RemoveFromCart takes quantity off a line under a row lock. The line is
// deleted when nothing would remain; deleted reports which branch ran.
func (r *GormRepo) RemoveFromCart(ctx context.Context, userID, productID int64, quantity int) (item *models.CartItem, deleted bool, err error) {
	var line models.CartItem

	err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(cartLine, userID, productID).
			First(&line).Error; err != nil {
			return err
		}

		remaining := line.Quantity - quantity
		if remaining > 0 {
			line.Quantity = remaining
			return tx.Model(&models.CartItem{}).
				Where(cartLine, userID, productID).
				Update("quantity", remaining).Error
		}

		deleted = true
		line.Quantity = 0
		return tx.Where(cartLine, userID, productID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, false, classify("remove from cart", err)
	}
	return &line, deleted, nil
}
