// internal/rating/redis.go
package rating

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each rating under "rating:<profile>:<team>"; the store's
// key/value contract maps directly onto Redis strings.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects and pings a Redis client for the given address.
func NewRedisStore(addr string, db int) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to Redis at %s: %w", addr, err)
	}
	return &RedisStore{client: client}, nil
}

func ratingKey(profileID, team string) string {
	return "rating:" + profileID + ":" + team
}

func (s *RedisStore) Load(ctx context.Context, profileID string, teams []string) (map[string]float64, error) {
	if len(teams) == 0 {
		return map[string]float64{}, nil
	}
	keys := make([]string, len(teams))
	for i, team := range teams {
		keys[i] = ratingKey(profileID, team)
	}
	vals, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("load ratings: %w", err)
	}
	out := make(map[string]float64)
	for i, v := range vals {
		str, ok := v.(string)
		if !ok {
			continue // no record for this team
		}
		r, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return nil, fmt.Errorf("parse rating for %q: %w", teams[i], err)
		}
		out[teams[i]] = r
	}
	return out, nil
}

func (s *RedisStore) Save(ctx context.Context, profileID string, ratings map[string]float64) error {
	pipe := s.client.Pipeline()
	for team, r := range ratings {
		pipe.Set(ctx, ratingKey(profileID, team), strconv.FormatFloat(r, 'f', -1, 64), 0)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save ratings: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
