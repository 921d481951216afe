package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"nba_stats/ingestion/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	teamsKey       = "nba:teams"
	failedDatesKey = "nba:failed_dates"
)

// RedisCache caches the team list and keeps the log of dates that failed
// both pipeline passes. The service degrades gracefully without it.
type RedisCache struct {
	client *redis.Client
}

// Config holds Redis connection configuration
type Config struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// NewRedisCache connects to Redis and verifies the connection
func NewRedisCache(cfg Config) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &RedisCache{client: client}, nil
}

// Close closes the Redis connection
func (c *RedisCache) Close() {
	if err := c.client.Close(); err != nil {
		log.Warn().Err(err).Msg("Failed to close redis connection")
	}
}

// CacheTeams stores the team list with a TTL
func (c *RedisCache) CacheTeams(ctx context.Context, teams []*models.Team, ttl time.Duration) error {
	data, err := json.Marshal(teams)
	if err != nil {
		return fmt.Errorf("failed to marshal teams: %w", err)
	}

	if err := c.client.Set(ctx, teamsKey, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache teams: %w", err)
	}

	return nil
}

// GetCachedTeams returns the cached team list, or nil on a cache miss
func (c *RedisCache) GetCachedTeams(ctx context.Context) ([]*models.Team, error) {
	data, err := c.client.Get(ctx, teamsKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached teams: %w", err)
	}

	var teams []*models.Team
	if err := json.Unmarshal(data, &teams); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached teams: %w", err)
	}

	return teams, nil
}

// RecordPermanentFailures appends dates that failed both passes to a
// persistent set, so a later manual run can pick them up
func (c *RedisCache) RecordPermanentFailures(ctx context.Context, dates []string) error {
	if len(dates) == 0 {
		return nil
	}

	members := make([]interface{}, len(dates))
	for i, d := range dates {
		members[i] = d
	}

	if err := c.client.SAdd(ctx, failedDatesKey, members...).Err(); err != nil {
		return fmt.Errorf("failed to record failed dates: %w", err)
	}

	log.Info().Int("count", len(dates)).Msg("Permanently failed dates recorded")
	return nil
}

// PermanentFailures returns the logged failed dates
func (c *RedisCache) PermanentFailures(ctx context.Context) ([]string, error) {
	dates, err := c.client.SMembers(ctx, failedDatesKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read failed dates: %w", err)
	}
	return dates, nil
}

// ClearPermanentFailures empties the failed-date log, used after a manual
// re-run resolves them
func (c *RedisCache) ClearPermanentFailures(ctx context.Context) error {
	if err := c.client.Del(ctx, failedDatesKey).Err(); err != nil {
		return fmt.Errorf("failed to clear failed dates: %w", err)
	}
	return nil
}
