package utils

import (
	"context"
	"errors"
	"fmt"
	"time"

	"readquest/backend/config"

	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/redis/go-redis/v9"
)

const redisSessionPrefix = "readquest:session:"

// RedisStorage keeps fiber sessions in Redis so admin logins survive restarts
// and are shared across instances.
type RedisStorage struct {
	client *redis.Client
	prefix string
}

func NewRedisStorage(client *redis.Client) *RedisStorage {
	return &RedisStorage{client: client, prefix: redisSessionPrefix}
}

func (s *RedisStorage) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	val, err := s.client.Get(context.Background(), s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return val, err
}

func (s *RedisStorage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	return s.client.Set(context.Background(), s.prefix+key, val, exp).Err()
}

func (s *RedisStorage) Delete(key string) error {
	if key == "" {
		return nil
	}
	return s.client.Del(context.Background(), s.prefix+key).Err()
}

// Reset drops every session this storage owns, leaving other keys alone.
func (s *RedisStorage) Reset() error {
	ctx := context.Background()
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (s *RedisStorage) Close() error {
	return s.client.Close()
}

const defaultSessionCookie = "readquest_admin"

// SessionCookieName is the cookie that carries the admin session id.
func SessionCookieName(cfg *config.Config) string {
	if cfg.SessionCookieName == "" {
		return defaultSessionCookie
	}
	return cfg.SessionCookieName
}

// NewSessionStore builds the admin session store. Sessions live in Redis when
// REDIS_ADDR is set and in process memory otherwise.
func NewSessionStore(cfg *config.Config, log *Logger) (*session.Store, error) {
	sessCfg := session.Config{
		Expiration:     cfg.AdminSessionTTL,
		KeyLookup:      "cookie:" + SessionCookieName(cfg),
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	}
	if sessCfg.Expiration <= 0 {
		sessCfg.Expiration = 24 * time.Hour
	}

	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("redis ping %s: %w", cfg.RedisAddr, err)
		}
		log.Info("admin sessions stored in redis", "addr", cfg.RedisAddr)
		sessCfg.Storage = NewRedisStorage(client)
	} else {
		log.Info("admin sessions stored in memory")
	}

	return session.New(sessCfg), nil
}
