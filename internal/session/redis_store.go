package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists sessions as JSON documents under a key prefix,
// with a companion index set so listing never needs SCAN. Records
// carry no TTL: the persisted variant never expires on its own.
type RedisStore struct {
	client *redis.Client
	prefix string
	index  string
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "session:",
		index:  "sessions:index",
	}
}

func (r *RedisStore) key(sessionID string) string {
	return r.prefix + sessionID
}

func (r *RedisStore) Create(ctx context.Context, s Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("session: failed to marshal: %w", err)
	}

	ok, err := r.client.SetNX(ctx, r.key(s.SessionID), data, 0).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrDuplicateID
	}

	return r.client.SAdd(ctx, r.index, s.SessionID).Err()
}

func (r *RedisStore) FindByID(ctx context.Context, sessionID string) (*Session, error) {
	val, err := r.client.Get(ctx, r.key(sessionID)).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var s Session
	if err := json.Unmarshal([]byte(val), &s); err != nil {
		return nil, fmt.Errorf("session: failed to unmarshal: %w", err)
	}

	return &s, nil
}

func (r *RedisStore) FindAll(ctx context.Context, status Status) ([]Session, error) {
	ids, err := r.client.SMembers(ctx, r.index).Result()
	if err != nil {
		return nil, err
	}

	out := make([]Session, 0, len(ids))
	for _, id := range ids {
		s, err := r.FindByID(ctx, id)
		if err == ErrNotFound {
			// Index entry without a document, drop it.
			_ = r.client.SRem(ctx, r.index, id).Err()
			continue
		}
		if err != nil {
			return nil, err
		}
		if status != StatusAny && s.Status != status {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

func (r *RedisStore) Save(ctx context.Context, s Session) error {
	if s.SessionID == "" {
		return &ValidationError{Field: "sessionId"}
	}

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("session: failed to marshal: %w", err)
	}

	if err := r.client.Set(ctx, r.key(s.SessionID), data, 0).Err(); err != nil {
		return err
	}
	return r.client.SAdd(ctx, r.index, s.SessionID).Err()
}

func (r *RedisStore) DeleteAll(ctx context.Context) (int64, error) {
	ids, err := r.client.SMembers(ctx, r.index).Result()
	if err != nil {
		return 0, err
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, r.key(id))
	}

	var count int64
	if len(keys) > 0 {
		count, err = r.client.Del(ctx, keys...).Result()
		if err != nil {
			return 0, err
		}
	}

	if err := r.client.Del(ctx, r.index).Err(); err != nil {
		return count, err
	}
	return count, nil
}
