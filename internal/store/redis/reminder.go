package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/muralboard/mural/internal/domain"
)

// Store handles Redis persistence for the board. Board data is durable
// state, not cache, so nothing written here carries a TTL.
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis store
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

// SaveReminder stores a reminder in Redis
func (s *Store) SaveReminder(ctx context.Context, r *domain.Reminder) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal reminder: %w", err)
	}

	key := ReminderKey(r.ID)

	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save reminder: %w", err)
	}

	if err := s.client.SAdd(ctx, KeyAllReminders, r.ID).Err(); err != nil {
		return fmt.Errorf("failed to add reminder to set: %w", err)
	}

	return nil
}

// GetReminder retrieves a reminder from Redis by ID
func (s *Store) GetReminder(ctx context.Context, id string) (*domain.Reminder, error) {
	key := ReminderKey(id)
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("reminder not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get reminder: %w", err)
	}

	var r domain.Reminder
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to unmarshal reminder: %w", err)
	}

	return &r, nil
}

// GetAllReminders retrieves all reminders from Redis. Records that fail
// to load or parse are skipped, not fatal; the skipped count lets the
// caller log what was lost.
func (s *Store) GetAllReminders(ctx context.Context) ([]*domain.Reminder, int, error) {
	ids, err := s.client.SMembers(ctx, KeyAllReminders).Result()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get reminder IDs: %w", err)
	}

	if len(ids) == 0 {
		return []*domain.Reminder{}, 0, nil
	}

	reminders := make([]*domain.Reminder, 0, len(ids))
	skipped := 0
	for _, id := range ids {
		r, err := s.GetReminder(ctx, id)
		if err != nil {
			skipped++
			continue
		}
		reminders = append(reminders, r)
	}

	return reminders, skipped, nil
}

// DeleteReminder removes a reminder from Redis
func (s *Store) DeleteReminder(ctx context.Context, id string) error {
	key := ReminderKey(id)

	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}

	if err := s.client.SRem(ctx, KeyAllReminders, id).Err(); err != nil {
		return fmt.Errorf("failed to remove reminder from set: %w", err)
	}

	return nil
}

// SaveRemindersMany stores multiple reminders in Redis (bulk operation)
func (s *Store) SaveRemindersMany(ctx context.Context, reminders []*domain.Reminder) error {
	if len(reminders) == 0 {
		return nil
	}

	pipe := s.client.Pipeline()

	for _, r := range reminders {
		data, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("failed to marshal reminder %s: %w", r.ID, err)
		}

		pipe.Set(ctx, ReminderKey(r.ID), data, 0)
		pipe.SAdd(ctx, KeyAllReminders, r.ID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save reminders: %w", err)
	}

	return nil
}

// ReplaceAllReminders wipes the reminder set and writes the given
// collection. Used by import, which is all-or-nothing.
func (s *Store) ReplaceAllReminders(ctx context.Context, reminders []*domain.Reminder) error {
	ids, err := s.client.SMembers(ctx, KeyAllReminders).Result()
	if err != nil {
		return fmt.Errorf("failed to get reminder IDs: %w", err)
	}

	pipe := s.client.Pipeline()
	for _, id := range ids {
		pipe.Del(ctx, ReminderKey(id))
	}
	pipe.Del(ctx, KeyAllReminders)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to clear reminders: %w", err)
	}

	return s.SaveRemindersMany(ctx, reminders)
}
