package repo

import (
	"context"

	"github.com/Skotchmaster/shopcart/internal/models"
)

func (r *GormRepo) FetchUser(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, classify("fetch user", err)
	}
	return &user, nil
}

// InsertUser relies on the unique index on username; a concurrent duplicate
// surfaces as ErrDuplicate.
func (r *GormRepo) InsertUser(ctx context.Context, u *models.User) error {
	return classify("insert user", r.DB.WithContext(ctx).Create(u).Error)
}
