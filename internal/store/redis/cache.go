package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/seeyoulater/internal/domain"
)

// DefaultMetadataTTL is how long fetched page metadata stays cached (7 days)
const DefaultMetadataTTL = 7 * 24 * time.Hour

// Store handles Redis operations for the metadata cache
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore creates a new Redis store. A ttl <= 0 uses DefaultMetadataTTL.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultMetadataTTL
	}
	return &Store{
		client: client,
		ttl:    ttl,
	}
}

// Ping checks that Redis answers.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// GetMetadata returns the cached metadata for url and whether it was found.
func (s *Store) GetMetadata(ctx context.Context, url string) (domain.Metadata, bool, error) {
	data, err := s.client.Get(ctx, MetadataKey(url)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Metadata{}, false, nil // Cache miss
		}
		return domain.Metadata{}, false, fmt.Errorf("failed to get cached metadata: %w", err)
	}

	var meta domain.Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return domain.Metadata{}, false, fmt.Errorf("failed to unmarshal metadata: %w", err)
	}
	return meta, true, nil
}

// SaveMetadata caches the metadata fetched for url.
func (s *Store) SaveMetadata(ctx context.Context, url string, meta domain.Metadata) error {
	data, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}
	if err := s.client.Set(ctx, MetadataKey(url), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache metadata: %w", err)
	}
	return nil
}

// InvalidateMetadata removes the cached metadata of url
func (s *Store) InvalidateMetadata(ctx context.Context, url string) error {
	if err := s.client.Del(ctx, MetadataKey(url)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate metadata: %w", err)
	}
	return nil
}

// FlushMetadata removes all cached metadata
func (s *Store) FlushMetadata(ctx context.Context) error {
	iter := s.client.Scan(ctx, 0, KeyPrefixMetadata+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete metadata key: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to flush metadata: %w", err)
	}
	return nil
}
