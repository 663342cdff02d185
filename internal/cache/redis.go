package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/Skotchmaster/shopcart/internal/models"
)

const (
	DefaultTTL = 5 * time.Minute

	productsKey   = "shopcart:products"
	productPrefix = "shopcart:product:"
)

// ErrMiss is returned when the key is not cached.
var ErrMiss = errors.New("cache miss")

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis connects to the instance at url (redis://host:port/db) and checks
// it answers within five seconds.
func NewRedis(url string, ttl time.Duration) (*RedisCache, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return NewWithClient(client, ttl), nil
}

func NewWithClient(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisCache{client: client, ttl: ttl}
}

func productKey(id int64) string {
	return productPrefix + strconv.FormatInt(id, 10)
}

func (c *RedisCache) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	var p models.Product
	if err := c.get(ctx, productKey(id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *RedisCache) SetProduct(ctx context.Context, p *models.Product) error {
	return c.set(ctx, productKey(p.ID), p)
}

func (c *RedisCache) GetProducts(ctx context.Context) ([]models.Product, error) {
	products := make([]models.Product, 0)
	if err := c.get(ctx, productsKey, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *RedisCache) SetProducts(ctx context.Context, products []models.Product) error {
	return c.set(ctx, productsKey, products)
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) get(ctx context.Context, key string, dst any) error {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return ErrMiss
	}
	if err != nil {
		return fmt.Errorf("redis get %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (c *RedisCache) set(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}
