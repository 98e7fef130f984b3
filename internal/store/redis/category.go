package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/muralboard/mural/internal/domain"
)

// SaveCategory stores a category in Redis
func (s *Store) SaveCategory(ctx context.Context, c *domain.Category) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal category: %w", err)
	}

	if err := s.client.Set(ctx, CategoryKey(c.ID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save category: %w", err)
	}

	if err := s.client.SAdd(ctx, KeyAllCategories, c.ID).Err(); err != nil {
		return fmt.Errorf("failed to add category to set: %w", err)
	}

	return nil
}

// GetAllCategories retrieves all categories from Redis, skipping records
// that fail to load or parse.
func (s *Store) GetAllCategories(ctx context.Context) ([]*domain.Category, int, error) {
	ids, err := s.client.SMembers(ctx, KeyAllCategories).Result()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get category IDs: %w", err)
	}

	categories := make([]*domain.Category, 0, len(ids))
	skipped := 0
	for _, id := range ids {
		data, err := s.client.Get(ctx, CategoryKey(id)).Bytes()
		if err != nil {
			skipped++
			continue
		}
		var c domain.Category
		if err := json.Unmarshal(data, &c); err != nil {
			skipped++
			continue
		}
		categories = append(categories, &c)
	}

	return categories, skipped, nil
}

// DeleteCategory removes a category from Redis
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, CategoryKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	if err := s.client.SRem(ctx, KeyAllCategories, id).Err(); err != nil {
		return fmt.Errorf("failed to remove category from set: %w", err)
	}

	return nil
}

// SaveCategoriesMany stores multiple categories in Redis (bulk operation)
func (s *Store) SaveCategoriesMany(ctx context.Context, categories []*domain.Category) error {
	if len(categories) == 0 {
		return nil
	}

	pipe := s.client.Pipeline()
	for _, c := range categories {
		data, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("failed to marshal category %s: %w", c.ID, err)
		}
		pipe.Set(ctx, CategoryKey(c.ID), data, 0)
		pipe.SAdd(ctx, KeyAllCategories, c.ID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save categories: %w", err)
	}

	return nil
}

// ReplaceAllCategories wipes the category set and writes the given
// collection. Used by import, which is all-or-nothing.
func (s *Store) ReplaceAllCategories(ctx context.Context, categories []*domain.Category) error {
	ids, err := s.client.SMembers(ctx, KeyAllCategories).Result()
	if err != nil {
		return fmt.Errorf("failed to get category IDs: %w", err)
	}

	pipe := s.client.Pipeline()
	for _, id := range ids {
		pipe.Del(ctx, CategoryKey(id))
	}
	pipe.Del(ctx, KeyAllCategories)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to clear categories: %w", err)
	}

	return s.SaveCategoriesMany(ctx, categories)
}

// Ping checks the Redis connection (used by the infra endpoint).
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// boardMeta helpers below keep order and project name as simple keys.

// SaveOrder persists the board's display order.
func (s *Store) SaveOrder(ctx context.Context, order []string) error {
	data, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("failed to marshal order: %w", err)
	}
	if err := s.client.Set(ctx, KeyBoardOrder, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}
	return nil
}

// GetOrder retrieves the board's display order. A missing key is an
// empty order, not an error.
func (s *Store) GetOrder(ctx context.Context) ([]string, error) {
	data, err := s.client.Get(ctx, KeyBoardOrder).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	var order []string
	if err := json.Unmarshal(data, &order); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order: %w", err)
	}
	return order, nil
}

// SaveName persists the project name.
func (s *Store) SaveName(ctx context.Context, name string) error {
	if err := s.client.Set(ctx, KeyBoardName, name, 0).Err(); err != nil {
		return fmt.Errorf("failed to save project name: %w", err)
	}
	return nil
}

// GetName retrieves the project name ("" when unset).
func (s *Store) GetName(ctx context.Context) (string, error) {
	name, err := s.client.Get(ctx, KeyBoardName).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get project name: %w", err)
	}
	return name, nil
}
