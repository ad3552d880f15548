package player

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/kcorless/UpNDown/internal/models"
)

const (
	// Key prefix for Redis
	profileKeyPrefix = "profile:"

	fieldName        = "name"
	fieldGamesPlayed = "gamesPlayed"
	fieldGamesWon    = "gamesWon"
	fieldLastSeen    = "lastSeen"
)

// ErrProfileNotFound is returned when a profile does not exist
var ErrProfileNotFound = errors.New("profile not found")

// Config holds configuration for the Redis player repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed player repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// SaveProfile upserts the identity fields of a profile. Profiles are stored
// as hashes so the game counters can be bumped atomically without a
// read-modify-write.
func (r *redisRepository) SaveProfile(ctx context.Context, input *SaveProfileInput) error {
	if input == nil || input.PlayerUUID == "" {
		return errors.New("input and player UUID cannot be empty")
	}

	err := r.client.HSet(ctx, profileKey(input.PlayerUUID),
		fieldName, input.Name,
		fieldLastSeen, input.LastSeen,
	).Err()
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	return nil
}

// GetProfile retrieves a profile by player UUID.
func (r *redisRepository) GetProfile(ctx context.Context, input *GetProfileInput) (*models.Profile, error) {
	if input == nil || input.PlayerUUID == "" {
		return nil, errors.New("input and player UUID cannot be empty")
	}

	fields, err := r.client.HGetAll(ctx, profileKey(input.PlayerUUID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if len(fields) == 0 {
		return nil, ErrProfileNotFound
	}

	profile := &models.Profile{
		UUID:        input.PlayerUUID,
		Name:        fields[fieldName],
		GamesPlayed: atoi(fields[fieldGamesPlayed]),
		GamesWon:    atoi(fields[fieldGamesWon]),
	}
	if raw, ok := fields[fieldLastSeen]; ok {
		profile.LastSeen, _ = strconv.ParseInt(raw, 10, 64)
	}

	return profile, nil
}

// RecordGameResult bumps the finished-game counters for every listed player.
func (r *redisRepository) RecordGameResult(ctx context.Context, input *RecordGameResultInput) error {
	if input == nil || len(input.PlayerUUIDs) == 0 {
		return errors.New("input and player UUIDs cannot be empty")
	}

	pipe := r.client.Pipeline()
	for _, uuid := range input.PlayerUUIDs {
		key := profileKey(uuid)
		pipe.HIncrBy(ctx, key, fieldGamesPlayed, 1)
		if input.Won {
			pipe.HIncrBy(ctx, key, fieldGamesWon, 1)
		}
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record game result: %w", err)
	}

	return nil
}

func profileKey(playerUUID string) string {
	return profileKeyPrefix + playerUUID
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
