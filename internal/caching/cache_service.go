package caching

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"pharmamart/internal/models"
)

// LookupTTL bounds staleness of the dropdown lookup caches; writes also
// invalidate eagerly.
const LookupTTL = 10 * time.Minute

// ErrCacheMiss is returned when a key is absent.
var ErrCacheMiss = errors.New("cache miss")

type CacheService interface {
	// Dropdown lookup caching
	GetCountries(ctx context.Context) ([]*models.Country, error)
	SetCountries(ctx context.Context, countries []*models.Country, ttl time.Duration) error
	DeleteCountries(ctx context.Context) error
	GetItemStatuses(ctx context.Context) ([]*models.ItemStatus, error)
	SetItemStatuses(ctx context.Context, statuses []*models.ItemStatus, ttl time.Duration) error
	DeleteItemStatuses(ctx context.Context) error

	// One-request-scoped slots for the password reset flow
	SetString(ctx context.Context, key, value string, ttl time.Duration) error
	GetString(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error

	// Maintenance
	PurgeResetTokens(ctx context.Context) (int, error)
	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	// Accept redis://host:port as well as bare host:port.
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		parsedAddr = strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", err, parsedAddr)
	}

	return &redisCacheService{client: client}
}

const (
	countriesKey      = "lookup:countries"
	itemStatusesKey   = "lookup:item_statuses"
	resetTokenKeyScan = "reset_token:*"
)

func (s *redisCacheService) GetCountries(ctx context.Context) ([]*models.Country, error) {
	data, err := s.client.Get(ctx, countriesKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	var countries []*models.Country
	if err := json.Unmarshal(data, &countries); err != nil {
		return nil, err
	}
	return countries, nil
}

func (s *redisCacheService) SetCountries(ctx context.Context, countries []*models.Country, ttl time.Duration) error {
	data, err := json.Marshal(countries)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, countriesKey, data, ttl).Err()
}

func (s *redisCacheService) DeleteCountries(ctx context.Context) error {
	return s.client.Del(ctx, countriesKey).Err()
}

func (s *redisCacheService) GetItemStatuses(ctx context.Context) ([]*models.ItemStatus, error) {
	data, err := s.client.Get(ctx, itemStatusesKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	var statuses []*models.ItemStatus
	if err := json.Unmarshal(data, &statuses); err != nil {
		return nil, err
	}
	return statuses, nil
}

func (s *redisCacheService) SetItemStatuses(ctx context.Context, statuses []*models.ItemStatus, ttl time.Duration) error {
	data, err := json.Marshal(statuses)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, itemStatusesKey, data, ttl).Err()
}

func (s *redisCacheService) DeleteItemStatuses(ctx context.Context) error {
	return s.client.Del(ctx, itemStatusesKey).Err()
}

func (s *redisCacheService) SetString(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

func (s *redisCacheService) GetString(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCacheMiss
	}
	return value, err
}

func (s *redisCacheService) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

// PurgeResetTokens removes reset-token slots left without a TTL; slots with a
// TTL expire on their own.
func (s *redisCacheService) PurgeResetTokens(ctx context.Context) (int, error) {
	var purged int
	iter := s.client.Scan(ctx, 0, resetTokenKeyScan, 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		ttl, err := s.client.TTL(ctx, key).Result()
		if err != nil {
			continue
		}
		if ttl < 0 {
			if err := s.client.Del(ctx, key).Err(); err == nil {
				purged++
			}
		}
	}
	return purged, iter.Err()
}

func (s *redisCacheService) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
