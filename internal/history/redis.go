package history

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"mediagent/config"
)

// RedisStore keeps each session as a Redis list under agent_history:<key>,
// with a TTL renewed on every append.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *log.Logger
}

// NewRedisStore connects and pings before returning, so a misconfigured
// backend fails at startup rather than on the first run.
func NewRedisStore(ctx context.Context, cfg config.RedisConfig, ttl time.Duration) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.Timeout,
	})
	pong, err := client.Ping(ctx).Result()
	if err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	if pong != "PONG" {
		return nil, fmt.Errorf("redis ping: expected PONG, got %q", pong)
	}
	return &RedisStore{
		client: client,
		ttl:    ttl,
		logger: log.New(log.Writer(), "[HISTORY] ", log.LstdFlags),
	}, nil
}

func (s *RedisStore) Append(ctx context.Context, sessionKey, task, answer string) error {
	userEntry, err := json.Marshal(Entry{Role: "user", Content: task})
	if err != nil {
		return fmt.Errorf("encode user entry: %w", err)
	}
	assistantEntry, err := json.Marshal(Entry{Role: "assistant", Content: answer})
	if err != nil {
		return fmt.Errorf("encode assistant entry: %w", err)
	}

	// Both entries and the expiry renewal go out in one pipeline, so a run
	// never leaves a dangling user entry behind.
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, redisKey(sessionKey), userEntry, assistantEntry)
	pipe.Expire(ctx, redisKey(sessionKey), s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append session %s: %w", sessionKey, err)
	}
	s.logger.Printf("history written key=%s%s", keyPrefix, sessionKey)
	return nil
}

func (s *RedisStore) History(ctx context.Context, sessionKey string, limit int) ([]string, error) {
	raw, err := s.client.LRange(ctx, redisKey(sessionKey), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read session %s: %w", sessionKey, err)
	}
	if len(raw) == 0 {
		return nil, ErrSessionNotFound
	}
	answers := make([]string, 0, len(raw)/2)
	for _, item := range raw {
		var e Entry
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			s.logger.Printf("skipping malformed entry in %s: %v", sessionKey, err)
			continue
		}
		if e.Role == "assistant" {
			answers = append(answers, e.Content)
		}
	}
	if limit > 0 && len(answers) > limit {
		answers = answers[len(answers)-limit:]
	}
	return answers, nil
}

func (s *RedisStore) Sessions(ctx context.Context) ([]SessionInfo, error) {
	var sessions []SessionInfo
	iter := s.client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		first, err := s.client.LIndex(ctx, key, 0).Result()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			return nil, fmt.Errorf("index session %s: %w", key, err)
		}
		info := SessionInfo{SessionKey: key[len(keyPrefix):]}
		var e Entry
		if err := json.Unmarshal([]byte(first), &e); err == nil && e.Role == "user" {
			info.Task = e.Content
		}
		sessions = append(sessions, info)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan sessions: %w", err)
	}
	return sessions, nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionKey string) error {
	n, err := s.client.Del(ctx, redisKey(sessionKey)).Result()
	if err != nil {
		return fmt.Errorf("delete session %s: %w", sessionKey, err)
	}
	if n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (s *RedisStore) Close() error { return s.client.Close() }
