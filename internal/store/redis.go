package store

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
)

const scanBatch = 100

// RedisConfig holds the connection parameters of a Redis compatible server
// (Redis, KeyDB, ...).
type RedisConfig struct {
	Host     string
	Port     int
	DB       int
	Password string
	// KeyPrefix scopes the key space. Empty means the whole database is
	// treated as article keys.
	KeyPrefix string
}

// Addr returns host:port.
func (c RedisConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Redis is a Store backed by Redis hashes over one shared connection.
type Redis struct {
	client *redis.Client
	prefix string
}

var _ Store = (*Redis)(nil)

// DialRedis returns a Store whose connection is opened on first use. An
// unreachable server surfaces as an error from each operation.
func DialRedis(cfg RedisConfig) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: 1,
	})

	return NewRedisWithClient(client, cfg.KeyPrefix)
}

// NewRedis connects to the server and verifies it answers PING.
func NewRedis(ctx context.Context, cfg RedisConfig) (*Redis, error) {
	r := DialRedis(cfg)
	if err := r.Ping(ctx); err != nil {
		_ = r.Close()

		return nil, err
	}

	return r, nil
}

// NewRedisWithClient wraps an existing client.
func NewRedisWithClient(client *redis.Client, prefix string) *Redis {
	return &Redis{client: client, prefix: prefix}
}

// Ping checks that the server answers.
func (r *Redis) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping %s: %w", r.client.Options().Addr, err)
	}

	return nil
}

// Exists reports whether key holds a value.
func (r *Redis) Exists(ctx context.Context, key string) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(key)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists %q: %w", key, err)
	}

	return n > 0, nil
}

// WriteFields sets all fields with a single HSET.
func (r *Redis) WriteFields(ctx context.Context, key string, fields map[string]string) error {
	values := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		values[k] = v
	}

	if err := r.client.HSet(ctx, r.key(key), values).Err(); err != nil {
		return fmt.Errorf("redis hset %q: %w", key, err)
	}

	return nil
}

// WriteField sets one hash field.
func (r *Redis) WriteField(ctx context.Context, key, field, value string) error {
	if err := r.client.HSet(ctx, r.key(key), field, value).Err(); err != nil {
		return fmt.Errorf("redis hset %q %s: %w", key, field, err)
	}

	return nil
}

// ReadFields returns the hash under key, empty when key is absent.
func (r *Redis) ReadFields(ctx context.Context, key string) (map[string]string, error) {
	fields, err := r.client.HGetAll(ctx, r.key(key)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall %q: %w", key, err)
	}

	return fields, nil
}

// Delete removes key. Removing an absent key is not an error.
func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del %q: %w", key, err)
	}

	return nil
}

// ListKeys enumerates the key space with SCAN. With a prefix configured only
// prefixed keys are returned, with the prefix stripped. SCAN may repeat a
// key across iterations; each key is returned once.
func (r *Redis) ListKeys(ctx context.Context) ([]string, error) {
	var raw []string

	iter := r.client.Scan(ctx, 0, escapeGlob(r.prefix)+"*", scanBatch).Iterator()
	for iter.Next(ctx) {
		raw = append(raw, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis scan: %w", err)
	}

	return trimUnique(raw, r.prefix), nil
}

// Close releases the connection.
func (r *Redis) Close() error {
	return r.client.Close()
}

func (r *Redis) key(id string) string {
	return r.prefix + id
}

// trimUnique strips prefix from each key and drops repeats, keeping first
// occurrence order.
func trimUnique(raw []string, prefix string) []string {
	keys := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, k := range raw {
		k = strings.TrimPrefix(k, prefix)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}

	return keys
}

// escapeGlob quotes the MATCH metacharacters so s matches literally.
func escapeGlob(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}

	return b.String()
}
