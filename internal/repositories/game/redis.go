package game

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/kcorless/UpNDown/internal/models"
)

const (
	// Key prefixes for Redis
	gameKeyPrefix     = "game:"
	gameChannelPrefix = "game:updates:"

	// deletedPayload is published when a document is removed
	deletedPayload = "null"
)

var (
	// ErrGameNotFound is returned when a game document does not exist
	ErrGameNotFound = errors.New("game not found")

	// ErrTransactionConflict is returned when an atomic update lost a race
	// with a concurrent writer, or the base document vanished mid-flight
	ErrTransactionConflict = errors.New("transaction conflict")
)

// Config holds configuration for the Redis game repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed game repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// SaveGame persists a game document and publishes it to subscribers.
func (r *redisRepository) SaveGame(ctx context.Context, input *SaveGameInput) error {
	if input == nil || input.Game == nil {
		return errors.New("input and game cannot be nil")
	}

	gameJSON, err := json.Marshal(input.Game)
	if err != nil {
		return fmt.Errorf("failed to marshal game: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, gameKey(input.Game.GameID), gameJSON, 0)
	pipe.Publish(ctx, gameChannel(input.Game.GameID), gameJSON)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}

	return nil
}

// GetGame retrieves a game document by ID.
func (r *redisRepository) GetGame(ctx context.Context, input *GetGameInput) (*models.GameState, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.New("input and game ID cannot be empty")
	}

	gameJSON, err := r.client.Get(ctx, gameKey(input.GameID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	var game models.GameState
	if err := json.Unmarshal([]byte(gameJSON), &game); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &game, nil
}

// UpdateGame runs one atomic read-transform-write against the current
// document. The key is watched for the duration; if a concurrent writer
// commits first the transaction fails with ErrTransactionConflict. Exactly
// one attempt is made — retrying is the caller's decision.
func (r *redisRepository) UpdateGame(ctx context.Context, input *UpdateGameInput) (*models.GameState, error) {
	if input == nil || input.GameID == "" || input.Transform == nil {
		return nil, errors.New("input, game ID and transform cannot be empty")
	}

	key := gameKey(input.GameID)
	var updated *models.GameState

	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		gameJSON, err := tx.Get(ctx, key).Result()
		if err != nil {
			if err == redis.Nil {
				return ErrGameNotFound
			}
			return fmt.Errorf("failed to get game: %w", err)
		}

		var current models.GameState
		if err := json.Unmarshal([]byte(gameJSON), &current); err != nil {
			return fmt.Errorf("failed to unmarshal game: %w", err)
		}

		updated, err = input.Transform(&current)
		if err != nil {
			return err
		}

		updatedJSON, err := json.Marshal(updated)
		if err != nil {
			return fmt.Errorf("failed to marshal game: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, updatedJSON, 0)
			pipe.Publish(ctx, gameChannel(input.GameID), updatedJSON)
			return nil
		})
		return err
	}, key)

	if err != nil {
		if errors.Is(err, redis.TxFailedErr) {
			return nil, ErrTransactionConflict
		}
		return nil, err
	}

	return updated, nil
}

// DeleteGame removes a game document and publishes a deletion notice.
func (r *redisRepository) DeleteGame(ctx context.Context, input *DeleteGameInput) error {
	if input == nil || input.GameID == "" {
		return errors.New("input and game ID cannot be empty")
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, gameKey(input.GameID))
	pipe.Publish(ctx, gameChannel(input.GameID), deletedPayload)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	return nil
}

// Subscribe opens a live feed of committed documents for one game. Each
// message carries the full document; a deletion is delivered as nil.
func (r *redisRepository) Subscribe(ctx context.Context, input *SubscribeInput) (*Subscription, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.New("input and game ID cannot be empty")
	}

	pubsub := r.client.Subscribe(ctx, gameChannel(input.GameID))

	// Confirm the subscription before handing it out, so no committed write
	// published after this call can be missed.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe: %w", err)
	}

	updates := make(chan *models.GameState)
	quit := make(chan struct{})
	go func() {
		defer close(updates)
		for msg := range pubsub.Channel() {
			var game *models.GameState
			if msg.Payload != deletedPayload {
				game = &models.GameState{}
				if err := json.Unmarshal([]byte(msg.Payload), game); err != nil {
					// A malformed payload is dropped; the next committed write
					// carries the full document again.
					continue
				}
			}

			// Close can arrive while a delivery is still pending; quit
			// unblocks the send so the goroutine always exits.
			select {
			case updates <- game:
			case <-quit:
				return
			}
		}
	}()

	return &Subscription{
		Updates: updates,
		quit:    quit,
		close:   pubsub.Close,
	}, nil
}

func gameKey(gameID string) string {
	return gameKeyPrefix + gameID
}

func gameChannel(gameID string) string {
	return gameChannelPrefix + gameID
}
