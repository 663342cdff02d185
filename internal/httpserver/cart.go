package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shopcart/internal/service"
	"github.com/Skotchmaster/shopcart/internal/transport"
	"github.com/Skotchmaster/shopcart/pkg/logging"
)

const msgCartLineNotFound = "Product not found in cart"

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	var req transport.CartRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_failed", "status", 400, "reason", "invalid body", "error", err)
		return c.JSON(http.StatusBadRequest, transport.Fail(msgInvalidBody))
	}

	quantity := req.QuantityOrDefault(service.DefaultCartQuantity)
	item, err := h.Svc.AddToCart(ctx, req.UserID, req.ProductID, quantity)
	if err != nil {
		return h.fail(c, "add_to_cart_failed", err)
	}

	l.Info("add_to_cart_success", "user_id", req.UserID, "product_id", req.ProductID, "quantity", item.Quantity)
	return c.JSON(http.StatusOK, transport.OK("Product added to cart successfully", transport.CartLineData{
		UserID:       req.UserID,
		ProductID:    req.ProductID,
		Quantity:     quantity,
		CartQuantity: item.Quantity,
	}))
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.details")

	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil || userID <= 0 {
		l.Warn("get_cart_failed", "status", 400, "reason", "user_id is not a positive integer", "user_id", c.Param("user_id"))
		return c.JSON(http.StatusBadRequest, transport.Fail("user_id must be a positive integer"))
	}

	lines, err := h.Svc.GetCart(ctx, userID)
	if err != nil {
		return h.fail(c, "get_cart_failed", err)
	}

	l.Info("get_cart_success", "user_id", userID, "count", len(lines))
	return c.JSON(http.StatusOK, transport.OK("Fetched cart details successfully", transport.CartDetailsData{
		Products: lines,
		Count:    len(lines),
	}))
}

func (h *CartHTTP) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove")

	var req transport.CartRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("remove_from_cart_failed", "status", 400, "reason", "invalid body", "error", err)
		return c.JSON(http.StatusBadRequest, transport.Fail(msgInvalidBody))
	}

	quantity := req.QuantityOrDefault(service.DefaultCartQuantity)
	res, err := h.Svc.RemoveFromCart(ctx, req.UserID, req.ProductID, quantity)
	if err != nil {
		return h.fail(c, "remove_from_cart_failed", err)
	}

	l.Info("remove_from_cart_success", "user_id", req.UserID, "product_id", req.ProductID, "deleted", res.Deleted)
	deleted := res.Deleted
	return c.JSON(http.StatusOK, transport.OK("Product removed from cart successfully", transport.CartLineData{
		UserID:       req.UserID,
		ProductID:    req.ProductID,
		Quantity:     quantity,
		CartQuantity: res.Item.Quantity,
		Deleted:      &deleted,
	}))
}

func (h *CartHTTP) fail(c echo.Context, event string, err error) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "cart")
	status, msg := failure(err, msgCartLineNotFound)
	if status >= http.StatusInternalServerError {
		l.Error(event, "status", status, "error", err)
	} else {
		l.Warn(event, "status", status, "error", err)
	}
	return c.JSON(status, transport.Fail(msg))
}
