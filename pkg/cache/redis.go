package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client *redis.Client
	config *RedisConfig
}

type RedisConfig struct {
	Host         string
	Port         int
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func NewRedisCache(config *RedisConfig) (*RedisCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", config.Host, config.Port),
		Password:     config.Password,
		DB:           config.DB,
		PoolSize:     config.PoolSize,
		MinIdleConns: config.MinIdleConns,
		DialTimeout:  config.DialTimeout,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := rdb.Ping(ctx).Result()
	if err != nil {
		return nil, err
	}

	return &RedisCache{
		client: rdb,
		config: config,
	}, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, expiration).Err()
}

func (r *RedisCache) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

func (r *RedisCache) Delete(ctx context.Context, keys ...string) error {
	return r.client.Del(ctx, keys...).Err()
}

func (r *RedisCache) Exists(ctx context.Context, key string) (bool, error) {
	count, err := r.client.Exists(ctx, key).Result()
	return count > 0, err
}

// IsMiss reports whether an error from Get means the key was absent rather
// than a transport failure.
func IsMiss(err error) bool {
	return err == redis.Nil
}

// Market snapshot cache

func snapshotKey(city string, vehicleType string) string {
	return fmt.Sprintf("market:snapshot:%s:%s", city, vehicleType)
}

func (r *RedisCache) CacheMarketSnapshot(ctx context.Context, city, vehicleType string, snapshot interface{}, ttl time.Duration) error {
	return r.Set(ctx, snapshotKey(city, vehicleType), snapshot, ttl)
}

func (r *RedisCache) GetMarketSnapshot(ctx context.Context, city, vehicleType string, dest interface{}) error {
	return r.Get(ctx, snapshotKey(city, vehicleType), dest)
}

// Favorites, kept as a redis set per user.

func favoritesKey(userID string) string {
	return fmt.Sprintf("user:%s:favorites", userID)
}

func (r *RedisCache) AddFavorite(ctx context.Context, userID, listingID string) error {
	return r.client.SAdd(ctx, favoritesKey(userID), listingID).Err()
}

func (r *RedisCache) RemoveFavorite(ctx context.Context, userID, listingID string) error {
	return r.client.SRem(ctx, favoritesKey(userID), listingID).Err()
}

func (r *RedisCache) GetFavorites(ctx context.Context, userID string) ([]string, error) {
	return r.client.SMembers(ctx, favoritesKey(userID)).Result()
}

func (r *RedisCache) IsFavorite(ctx context.Context, userID, listingID string) (bool, error) {
	return r.client.SIsMember(ctx, favoritesKey(userID), listingID).Result()
}

func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}
