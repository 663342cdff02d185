package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Skotchmaster/shopcart/internal/models"
	"github.com/Skotchmaster/shopcart/internal/repo"
	"github.com/Skotchmaster/shopcart/pkg/logging"
)

// ProductCache is the read-through cache in front of the catalog. Get
// methods return an error on a miss.
type ProductCache interface {
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	SetProduct(ctx context.Context, p *models.Product) error
	GetProducts(ctx context.Context) ([]models.Product, error)
	SetProducts(ctx context.Context, products []models.Product) error
}

type CatalogService struct {
	Repo  *repo.GormRepo
	Cache ProductCache
}

func (s *CatalogService) GetProducts(ctx context.Context) ([]models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.get_products")

	if s.Cache != nil {
		cached, err := s.Cache.GetProducts(ctx)
		if err == nil {
			return cached, nil
		}
		l.Debug("cache_lookup_failed", "error", err)
	}

	products, err := s.Repo.FetchProducts(ctx)
	if err != nil {
		return nil, storeErr("get products", err)
	}

	if s.Cache != nil {
		if err := s.Cache.SetProducts(ctx, products); err != nil {
			l.Warn("cache_store_failed", "error", err)
		}
	}
	return products, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.get_product", "product_id", id)

	if id <= 0 {
		return nil, invalid("product id must be a positive integer")
	}

	if s.Cache != nil {
		cached, err := s.Cache.GetProduct(ctx, id)
		if err == nil {
			return cached, nil
		}
		l.Debug("cache_lookup_failed", "error", err)
	}

	p, err := s.Repo.FetchProduct(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
		}
		return nil, storeErr("get product", err)
	}

	if s.Cache != nil {
		if err := s.Cache.SetProduct(ctx, p); err != nil {
			l.Warn("cache_store_failed", "error", err)
		}
	}
	return p, nil
}
