package source

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/vijay-prabhu/unimatch/internal/university"
)

// hashStore is the subset of the Redis client the gateway needs
type hashStore interface {
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
	HSet(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Ping(ctx context.Context) *redis.StatusCmd
}

// RedisGateway stores one JSON document per university in a Redis hash,
// keyed by university ID.
type RedisGateway struct {
	client hashStore
	closer func() error
	key    string
}

// NewRedisGateway connects to redisURL and verifies the connection
func NewRedisGateway(redisURL, key string) (*RedisGateway, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisGateway{client: client, closer: client.Close, key: key}, nil
}

func newRedisGateway(client hashStore, key string) *RedisGateway {
	return &RedisGateway{client: client, key: key}
}

// FetchAllUniversities decodes every document in the hash, ordered by ID
func (g *RedisGateway) FetchAllUniversities(ctx context.Context) ([]university.University, error) {
	fields, err := g.client.HGetAll(ctx, g.key).Result()
	if err != nil {
		return nil, fmt.Errorf("redis source %s: %w", g.key, err)
	}

	ids := make([]string, 0, len(fields))
	for id := range fields {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	universities := make([]university.University, 0, len(ids))
	for _, id := range ids {
		var u university.University
		if err := json.Unmarshal([]byte(fields[id]), &u); err != nil {
			return nil, fmt.Errorf("redis source %s: document %s: %w", g.key, id, err)
		}
		if u.ID == "" {
			u.ID = id
		}
		u.Normalize()
		universities = append(universities, u)
	}
	return universities, nil
}

// Store replaces the hash contents with the given universities
func (g *RedisGateway) Store(ctx context.Context, universities []university.University) error {
	values := make([]interface{}, 0, len(universities)*2)
	for _, u := range universities {
		if u.ID == "" {
			return fmt.Errorf("university %q has no id", u.Name)
		}
		doc, err := json.Marshal(u)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", u.ID, err)
		}
		values = append(values, u.ID, string(doc))
	}

	if err := g.client.Del(ctx, g.key).Err(); err != nil {
		return err
	}
	if len(values) == 0 {
		return nil
	}
	return g.client.HSet(ctx, g.key, values...).Err()
}

// Health pings the server
func (g *RedisGateway) Health(ctx context.Context) error {
	return g.client.Ping(ctx).Err()
}

// Close releases the connection
func (g *RedisGateway) Close() error {
	if g.closer == nil {
		return nil
	}
	return g.closer()
}
