package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/Skotchmaster/shopcart/internal/events"
	"github.com/Skotchmaster/shopcart/internal/models"
	"github.com/Skotchmaster/shopcart/internal/repo"
	"github.com/Skotchmaster/shopcart/pkg/logging"
)

const (
	MsgCartIDsRequired  = "user_id and product_id are required"
	MsgInvalidQuantity  = "quantity must be a positive integer"
	DefaultCartQuantity = 1
)

type CartService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
}

// RemoveResult is the line after a removal. Quantity is zero when the line
// was deleted.
type RemoveResult struct {
	Item    models.CartItem
	Deleted bool
}

func validateLine(userID, productID int64, quantity int) error {
	if userID <= 0 || productID <= 0 {
		return invalid(MsgCartIDsRequired)
	}
	if quantity < 1 {
		return invalid(MsgInvalidQuantity)
	}
	return nil
}

func (s *CartService) AddToCart(ctx context.Context, userID, productID int64, quantity int) (*models.CartItem, error) {
	l := logging.FromContext(ctx).With("svc", "cart.add", "user_id", userID, "product_id", productID)

	if err := validateLine(userID, productID, quantity); err != nil {
		return nil, err
	}

	item, err := s.Repo.AddToCart(ctx, models.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	})
	if err != nil {
		return nil, storeErr("add to cart", err)
	}

	l.Info("cart_item_added", "added", quantity, "quantity", item.Quantity)
	publish(ctx, s.Events, events.TopicCart, strconv.FormatInt(userID, 10),
		events.New(events.TypeCartItemAdded, map[string]any{
			"user_id":    userID,
			"product_id": productID,
			"added":      quantity,
			"quantity":   item.Quantity,
		}))
	return item, nil
}

func (s *CartService) GetCart(ctx context.Context, userID int64) ([]models.CartDetail, error) {
	if userID <= 0 {
		return nil, invalid("user_id must be a positive integer")
	}
	lines, err := s.Repo.FetchCartDetails(ctx, userID)
	if err != nil {
		return nil, storeErr("get cart", err)
	}
	return lines, nil
}

func (s *CartService) RemoveFromCart(ctx context.Context, userID, productID int64, quantity int) (*RemoveResult, error) {
	l := logging.FromContext(ctx).With("svc", "cart.remove", "user_id", userID, "product_id", productID)

	if err := validateLine(userID, productID, quantity); err != nil {
		return nil, err
	}

	item, deleted, err := s.Repo.RemoveFromCart(ctx, userID, productID, quantity)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, fmt.Errorf("cart line %d/%d: %w", userID, productID, ErrNotFound)
		}
		return nil, storeErr("remove from cart", err)
	}

	l.Info("cart_item_removed", "removed", quantity, "quantity", item.Quantity, "deleted", deleted)
	publish(ctx, s.Events, events.TopicCart, strconv.FormatInt(userID, 10),
		events.New(events.TypeCartItemRemoved, map[string]any{
			"user_id":    userID,
			"product_id": productID,
			"removed":    quantity,
			"quantity":   item.Quantity,
			"deleted":    deleted,
		}))
	return &RemoveResult{Item: *item, Deleted: deleted}, nil
}
