package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shopcart/internal/service"
	"github.com/Skotchmaster/shopcart/internal/transport"
	"github.com/Skotchmaster/shopcart/pkg/logging"
)

const (
	msgProductsFetched      = "fetched products successfully"
	msgProductFetched       = "fetched product details successfully"
	msgProductsFailed       = "An error occurred getting products"
	msgProductDetailsFailed = "An error occurred getting product details"
	msgProductNotFound      = "Product not found"
)

// CatalogHTTP serves the read-only catalog. With LegacyErrors set, failures
// answer 200 with a message and a missing product answers 200 without data,
// as older clients expect.
type CatalogHTTP struct {
	Svc          *service.CatalogService
	LegacyErrors bool
}

func (h *CatalogHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_products")

	products, err := h.Svc.GetProducts(ctx)
	if err != nil {
		l.Error("get_products_failed", "status", 500, "error", err)
		if h.LegacyErrors {
			return c.JSON(http.StatusOK, transport.OK(msgProductsFailed, nil))
		}
		return c.JSON(http.StatusInternalServerError, transport.Fail(msgProductsFailed))
	}

	l.Info("get_products_success", "count", len(products))
	return c.JSON(http.StatusOK, transport.OK(msgProductsFetched, transport.ProductsData{Products: products}))
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_product")

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		l.Warn("get_product_failed", "status", 400, "reason", "id is not a positive integer", "id", c.Param("id"))
		if h.LegacyErrors {
			return c.JSON(http.StatusOK, transport.OK(msgProductFetched, nil))
		}
		return c.JSON(http.StatusBadRequest, transport.Fail("product id must be a positive integer"))
	}

	product, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		status, msg := failure(err, msgProductNotFound)
		switch {
		case status == http.StatusNotFound:
			l.Warn("get_product_failed", "status", status, "product_id", id)
			if h.LegacyErrors {
				return c.JSON(http.StatusOK, transport.OK(msgProductFetched, nil))
			}
		case status >= http.StatusInternalServerError:
			l.Error("get_product_failed", "status", status, "product_id", id, "error", err)
			if h.LegacyErrors {
				return c.JSON(http.StatusOK, transport.OK(msgProductDetailsFailed, nil))
			}
			msg = msgProductDetailsFailed
		default:
			l.Warn("get_product_failed", "status", status, "product_id", id, "error", err)
		}
		return c.JSON(status, transport.Fail(msg))
	}

	l.Info("get_product_success", "product_id", id)
	return c.JSON(http.StatusOK, transport.OK(msgProductFetched, product))
}
