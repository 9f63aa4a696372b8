// Package cache implementa la caché Redis de lectura del catálogo de productos.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/supplychain-inventory/internal/application/ports"
	"github.com/jhoicas/supplychain-inventory/internal/domain/entity"
	"github.com/jhoicas/supplychain-inventory/internal/domain/repository"
	"github.com/jhoicas/supplychain-inventory/pkg/config"
	"github.com/jhoicas/supplychain-inventory/pkg/logger"
)

const keyPrefix = "inventory:product:"

// Store subconjunto de comandos Redis usados por la caché (*redis.Client lo implementa).
type Store interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

var (
	_ ports.ProductDirectory       = (*ProductCache)(nil)
	_ repository.ProductRepository = (*InvalidatingRepository)(nil)
)

// NewClient crea el cliente Redis y verifica la conexión.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: 20,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// ProductCache caché read-through delante de otro ProductDirectory.
// Con store nil no cachea nada. Una falla de Redis nunca hace fallar la consulta.
type ProductCache struct {
	store Store
	next  ports.ProductDirectory
	ttl   time.Duration
	log   *logger.Logger
}

// NewProductCache construye la caché. ttl <= 0 usa 5 minutos.
func NewProductCache(store Store, next ports.ProductDirectory, ttl time.Duration, log *logger.Logger) *ProductCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ProductCache{store: store, next: next, ttl: ttl, log: log.Component("product-cache")}
}

// GetProduct busca en Redis y, si no está, en el directorio subyacente.
func (c *ProductCache) GetProduct(ctx context.Context, productID string) (*entity.ProductInfo, error) {
	if c.store == nil {
		return c.next.GetProduct(ctx, productID)
	}

	if p, ok := c.get(ctx, productID); ok {
		return p, nil
	}

	p, err := c.next.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	c.set(ctx, p)
	return p, nil
}

// Invalidate elimina la entrada del producto.
func (c *ProductCache) Invalidate(ctx context.Context, productID string) {
	if c.store == nil {
		return
	}
	if err := c.store.Del(ctx, keyPrefix+productID).Err(); err != nil {
		c.log.Warn().Err(err).Str("product_id", productID).Msg("no se pudo invalidar la caché")
	}
}

func (c *ProductCache) get(ctx context.Context, productID string) (*entity.ProductInfo, bool) {
	val, err := c.store.Get(ctx, keyPrefix+productID).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn().Err(err).Str("product_id", productID).Msg("error leyendo caché")
		}
		return nil, false
	}
	var p entity.ProductInfo
	if err := json.Unmarshal([]byte(val), &p); err != nil {
		c.log.Warn().Err(err).Str("product_id", productID).Msg("entrada de caché corrupta")
		return nil, false
	}
	return &p, true
}

func (c *ProductCache) set(ctx context.Context, p *entity.ProductInfo) {
	raw, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := c.store.Set(ctx, keyPrefix+p.ID, raw, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("product_id", p.ID).Msg("error escribiendo caché")
	}
}

// InvalidatingRepository envuelve la réplica de productos e invalida la caché en cada escritura.
type InvalidatingRepository struct {
	repository.ProductRepository
	cache *ProductCache
}

// NewInvalidatingRepository construye el decorador.
func NewInvalidatingRepository(repo repository.ProductRepository, cache *ProductCache) *InvalidatingRepository {
	return &InvalidatingRepository{ProductRepository: repo, cache: cache}
}

func (r *InvalidatingRepository) Upsert(ctx context.Context, product *entity.ProductInfo) error {
	if err := r.ProductRepository.Upsert(ctx, product); err != nil {
		return err
	}
	r.cache.Invalidate(ctx, product.ID)
	return nil
}

func (r *InvalidatingRepository) Delete(ctx context.Context, id string) error {
	if err := r.ProductRepository.Delete(ctx, id); err != nil {
		return err
	}
	r.cache.Invalidate(ctx, id)
	return nil
}
