package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"crediwallet/internal/models"

	"github.com/redis/go-redis/v9"
)

// Service is a thin JSON cache on top of Redis. It holds sanitized user
// records only; credential hashes never enter the cache.
type Service struct {
	client *redis.Client
	ttl    time.Duration
}

func NewService(client *redis.Client, defaultTTL time.Duration) *Service {
	return &Service{
		client: client,
		ttl:    defaultTTL,
	}
}

func (s *Service) Set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, s.ttl).Err()
}

// Get unmarshals the cached value into dest. The bool reports whether the
// key was present; a miss is not an error.
func (s *Service) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache value: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return true, nil
}

func (s *Service) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

// UserKey builds the cache key for a user id.
func (s *Service) UserKey(id uint) string {
	return fmt.Sprintf("user:id:%d", id)
}

// CacheUser stores a sanitized copy of the user.
func (s *Service) CacheUser(ctx context.Context, user *models.User) error {
	if user == nil {
		return errors.New("cannot cache nil user")
	}
	sanitized := *user
	sanitized.Sanitize()
	return s.Set(ctx, s.UserKey(user.ID), &sanitized)
}

// GetUser fetches a cached user by id. Returns (nil, nil) on a miss.
func (s *Service) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	found, err := s.Get(ctx, s.UserKey(id), &user)
	if err != nil || !found {
		return nil, err
	}
	return &user, nil
}

// InvalidateUser drops the cached copy after any user mutation.
func (s *Service) InvalidateUser(ctx context.Context, id uint) error {
	return s.Delete(ctx, s.UserKey(id))
}

func (s *Service) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	return nil
}

func (s *Service) FlushAll(ctx context.Context) error {
	return s.client.FlushAll(ctx).Err()
}

func (s *Service) Close() error {
	return s.client.Close()
}
