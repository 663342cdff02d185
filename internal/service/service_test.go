package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Skotchmaster/shopcart/internal/events"
	"github.com/Skotchmaster/shopcart/internal/models"
	"github.com/Skotchmaster/shopcart/internal/repo"
)

const testIterations = 1000

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, repo.Migrate(db))
	return &repo.GormRepo{DB: db}
}

func seedProduct(t *testing.T, r *repo.GormRepo, name string, price float64) models.Product {
	t.Helper()
	p := models.Product{Name: name, Price: price, Image: name + ".png", Brand: "Acme", Category: "misc"}
	require.NoError(t, r.DB.Create(&p).Error)
	return p
}

type published struct {
	Topic string
	Key   string
	Event events.Event
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []published
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, topic, key string, ev events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, published{Topic: topic, Key: key, Event: ev})
	return p.err
}

func (p *recordingPublisher) all() []published {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]published(nil), p.events...)
}

var errCacheMiss = errors.New("miss")

type memoryCache struct {
	mu       sync.Mutex
	products map[int64]models.Product
	list     []models.Product
	hasList  bool
	setErr   error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{products: map[int64]models.Product{}}
}

func (c *memoryCache) GetProduct(_ context.Context, id int64) (*models.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.products[id]
	if !ok {
		return nil, errCacheMiss
	}
	return &p, nil
}

func (c *memoryCache) SetProduct(_ context.Context, p *models.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.setErr != nil {
		return c.setErr
	}
	c.products[p.ID] = *p
	return nil
}

func (c *memoryCache) GetProducts(context.Context) ([]models.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.hasList {
		return nil, errCacheMiss
	}
	return append([]models.Product(nil), c.list...), nil
}

func (c *memoryCache) SetProducts(_ context.Context, products []models.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.setErr != nil {
		return c.setErr
	}
	c.list = append([]models.Product(nil), products...)
	c.hasList = true
	return nil
}
