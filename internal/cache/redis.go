package cache

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v7"
)

// ErrCacheMiss is returned by Conn.Get when the key does not exist.
var ErrCacheMiss = errors.New("cache miss")

// FilterKey is the composite cache key for a filtered photo. Which
// filters exist is the caller's business; this package stays a plain
// key/value adapter.
func FilterKey(photoID int, filterType string) string {
	return fmt.Sprintf("photo:%d:%s", photoID, filterType)
}

// Cache wraps a shared redis client. The client pools connections, but
// callers check out a dedicated connection per operation via Acquire so
// each request holds and releases its own handle.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(address, password string, db int, defaultTTL time.Duration) *Cache {
	return &Cache{
		client: redis.NewClient(&redis.Options{
			Addr:         address,
			Password:     password,
			DB:           db,
			DialTimeout:  3 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		}),
		ttl: defaultTTL,
	}
}

func (c *Cache) Ping() (string, error) {
	return c.client.Ping().Result()
}

func (c *Cache) Close() error {
	return c.client.Close()
}

// DefaultTTL is the expiration applied to entries written with ttl <= 0.
func (c *Cache) DefaultTTL() time.Duration {
	return c.ttl
}

// Acquire checks out a dedicated connection. The caller must Close it on
// every exit path.
func (c *Cache) Acquire() *Conn {
	return &Conn{conn: c.client.Conn(), ttl: c.ttl}
}

// Conn is a request-scoped cache connection.
type Conn struct {
	conn *redis.Conn
	ttl  time.Duration
}

func (c *Conn) Get(key string) (string, error) {
	val, err := c.conn.Get(key).Result()
	if err == redis.Nil {
		return "", ErrCacheMiss
	}
	if err != nil {
		return "", fmt.Errorf("cache get %s: %w", key, err)
	}
	return val, nil
}

// Set writes val under key. A ttl <= 0 uses the cache default.
func (c *Conn) Set(key, val string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.ttl
	}
	if err := c.conn.Set(key, val, ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

func (c *Conn) Del(keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := c.conn.Del(keys...).Err(); err != nil {
		return fmt.Errorf("cache del: %w", err)
	}
	return nil
}

func (c *Conn) Close() error {
	return c.conn.Close()
}
