package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	chatKeyPrefix = "triage:chat:"
	listKeyPrefix = "triage:diseases:"
)

// Store keeps session state in Redis so sessions survive process restarts
// and can be shared across instances. Chat logs and candidate lists are
// Redis lists under per-session keys.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// Options configures the Redis connection and an optional TTL applied to
// session keys on every write (zero means no expiry).
type Options struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

func NewStore(opts Options) *Store {
	return &Store{
		client: redis.NewClient(&redis.Options{
			Addr:     opts.Addr,
			Password: opts.Password,
			DB:       opts.DB,
		}),
		ttl: opts.TTL,
	}
}

// Ping verifies connectivity at startup.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Close() error { return s.client.Close() }

func (s *Store) AppendChat(ctx context.Context, sessionID string, entries ...string) error {
	if len(entries) == 0 {
		return nil
	}
	key := chatKeyPrefix + sessionID
	args := make([]interface{}, len(entries))
	for i, e := range entries {
		args[i] = e
	}
	if err := s.client.RPush(ctx, key, args...).Err(); err != nil {
		return err
	}
	return s.touch(ctx, key)
}

func (s *Store) ChatLog(ctx context.Context, sessionID string) ([]string, error) {
	return s.client.LRange(ctx, chatKeyPrefix+sessionID, 0, -1).Result()
}

func (s *Store) SetCandidates(ctx context.Context, sessionID string, diseases []string) error {
	key := listKeyPrefix + sessionID
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, key)
	if len(diseases) > 0 {
		args := make([]interface{}, len(diseases))
		for i, d := range diseases {
			args[i] = d
		}
		pipe.RPush(ctx, key, args...)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}
	return s.touch(ctx, key)
}

func (s *Store) Candidates(ctx context.Context, sessionID string) ([]string, error) {
	list, err := s.client.LRange(ctx, listKeyPrefix+sessionID, 0, -1).Result()
	if err == redis.Nil {
		return nil, nil
	}
	return list, err
}

func (s *Store) touch(ctx context.Context, key string) error {
	if s.ttl <= 0 {
		return nil
	}
	return s.client.Expire(ctx, key, s.ttl).Err()
}
