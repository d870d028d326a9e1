package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/rowgrid/pkg/cache"
	"github.com/matzehuels/rowgrid/pkg/errors"
	pkgio "github.com/matzehuels/rowgrid/pkg/io"
)

const (
	redisKeyPrefix = "rowgrid:layout:"
	redisIndexKey  = "rowgrid:layouts"
)

// RedisConfig configures the Redis backend.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RedisStore keeps each document as a JSON string plus a set of IDs.
type RedisStore struct {
	client *redis.Client
	logger *log.Logger
}

// NewRedisStore connects to Redis and verifies the connection, retrying
// transient failures.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	if cfg.Addr == "" {
		cfg.Addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	err := cache.RetryWithBackoff(ctx, 200*time.Millisecond, func() error {
		if err := client.Ping(ctx).Err(); err != nil {
			return cache.Retryable(fmt.Errorf("%w: ping %s: %v", cache.ErrUnavailable, cfg.Addr, err))
		}
		return nil
	})
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	return &RedisStore{client: client, logger: discardLogger()}, nil
}

func redisKey(id string) string { return redisKeyPrefix + id }

func (s *RedisStore) Get(ctx context.Context, id string) (*pkgio.Document, error) {
	data, err := s.client.Get(ctx, redisKey(id)).Bytes()
	if err == redis.Nil {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", id, err)
	}
	return pkgio.Decode(data, pkgio.FormatJSON)
}

func (s *RedisStore) List(ctx context.Context) ([]*pkgio.Document, error) {
	ids, err := s.client.SMembers(ctx, redisIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("redis list: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = redisKey(id)
	}
	vals, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis list: %w", err)
	}

	docs := make([]*pkgio.Document, 0, len(vals))
	for i, v := range vals {
		raw, ok := v.(string)
		if !ok {
			// MGET yields nil for an indexed ID whose key is gone.
			skipEntry(s.logger, BackendRedis, ids[i], fmt.Errorf("indexed but missing"))
			continue
		}
		d, err := pkgio.Decode([]byte(raw), pkgio.FormatJSON)
		if err != nil {
			skipEntry(s.logger, BackendRedis, ids[i], err)
			continue
		}
		docs = append(docs, d)
	}
	sortDocuments(docs)
	return docs, nil
}

func (s *RedisStore) setLogger(l *log.Logger) { s.logger = l }

func (s *RedisStore) Put(ctx context.Context, d *pkgio.Document) error {
	if err := errors.ValidateDocumentID(d.ID); err != nil {
		return err
	}
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, redisKey(d.ID), data, 0)
		pipe.SAdd(ctx, redisIndexKey, d.ID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis put %s: %w", d.ID, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	var del *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, redisKey(id))
		pipe.SRem(ctx, redisIndexKey, id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis delete %s: %w", id, err)
	}
	if del.Val() == 0 {
		return notFound(id)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

var _ Store = (*RedisStore)(nil)
