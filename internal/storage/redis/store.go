// Package redis is a storage.Backend over a Redis server.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/julianstephens/fitcoach/internal/constants"
	"github.com/julianstephens/fitcoach/internal/logger"
	"github.com/julianstephens/fitcoach/internal/storage"
)

// KeyPrefix namespaces every record key on a shared server.
const KeyPrefix = constants.AppName + ":"

type Store struct {
	url    string
	prefix string
	client *goredis.Client
}

func New(url string) *Store {
	return &Store{url: url, prefix: KeyPrefix}
}

// NewWithClient wraps an existing client, for callers that manage their own pool.
func NewWithClient(client *goredis.Client, prefix string) *Store {
	return &Store{client: client, prefix: prefix}
}

func (s *Store) connect(ctx context.Context) error {
	if s.client == nil {
		opt, err := goredis.ParseURL(s.url)
		if err != nil {
			return fmt.Errorf("invalid redis url: %w", err)
		}
		opt.PoolSize = 10
		opt.MinIdleConns = 2
		opt.MaxRetries = 3
		opt.DialTimeout = 5 * time.Second
		opt.ReadTimeout = 3 * time.Second
		opt.WriteTimeout = 3 * time.Second
		opt.PoolTimeout = 4 * time.Second
		opt.ConnMaxIdleTime = 5 * time.Minute
		s.client = goredis.NewClient(opt)
	}

	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	logger.Debug("Connected to Redis", "prefix", s.prefix)
	return nil
}

// Init and Load both just connect; Redis needs no schema.
func (s *Store) Init(ctx context.Context) error { return s.connect(ctx) }
func (s *Store) Load(ctx context.Context) error { return s.connect(ctx) }

func (s *Store) Close() error {
	if s.client != nil {
		err := s.client.Close()
		s.client = nil
		return err
	}
	return nil
}

func (s *Store) Location() string {
	return "redis"
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if s.client == nil {
		return "", false, storage.ErrNotInitialized
	}
	v, err := s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if s.client == nil {
		return storage.ErrNotInitialized
	}
	return s.client.Set(ctx, s.prefix+key, value, 0).Err()
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if s.client == nil {
		return storage.ErrNotInitialized
	}
	return s.client.Del(ctx, s.prefix+key).Err()
}

func (s *Store) Keys(ctx context.Context, prefix string) ([]string, error) {
	if s.client == nil {
		return nil, storage.ErrNotInitialized
	}
	var keys []string
	iter := s.client.Scan(ctx, 0, s.prefix+prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, strings.TrimPrefix(iter.Val(), s.prefix))
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}
