package characters

import (
	"context"
	"fmt"
	"strconv"

	"github.com/KirkDiggler/scum-bot-discord/internal/domain/character"
	dnderr "github.com/KirkDiggler/scum-bot-discord/internal/errors"
	"github.com/redis/go-redis/v9"
)

const (
	fieldChannelID = "channel_id"
	fieldUserID    = "user_id"
)

// redisRepo stores each character as a hash of its twelve ratings
type redisRepo struct {
	client redis.UniversalClient
}

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client redis.UniversalClient
}

// NewRedisRepository creates a new Redis-backed character repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil {
		panic("RedisRepoConfig cannot be nil")
	}
	if cfg.Client == nil {
		panic("Redis client cannot be nil")
	}

	return &redisRepo{
		client: cfg.Client,
	}
}

// NewRedis creates a new Redis-backed character repository
func NewRedis(client redis.UniversalClient) Repository {
	return NewRedisRepository(&RedisRepoConfig{Client: client})
}

// Key generates the Redis key for a character. The channel length prefix keeps
// ids containing ':' from colliding.
func Key(key character.Key) string {
	return fmt.Sprintf("character:%d:%s:%s", len(key.ChannelID), key.ChannelID, key.UserID)
}

// Load reads the character hash; a missing hash is a fresh character
func (r *redisRepo) Load(ctx context.Context, key character.Key) (*character.Character, error) {
	values, err := r.client.HGetAll(ctx, Key(key)).Result()
	if err != nil {
		return nil, dnderr.Storagef(err, "failed to load character %s", key).
			WithMeta("channel_id", key.ChannelID).
			WithMeta("user_id", key.UserID)
	}

	char := character.NewCharacter(key)
	for _, action := range character.Actions {
		raw, ok := values[action.String()]
		if !ok {
			continue
		}
		rating, err := strconv.Atoi(raw)
		if err != nil {
			return nil, dnderr.Storagef(err, "corrupt %s rating for character %s", action, key)
		}
		if _, err := char.SetRating(action, rating); err != nil {
			return nil, dnderr.Storage(err, "failed to decode character")
		}
	}

	return char, nil
}

// Save writes every field with one HSET so a record is never half written
func (r *redisRepo) Save(ctx context.Context, char *character.Character) error {
	if err := validateForSave(char); err != nil {
		return err
	}

	if err := r.client.HSet(ctx, Key(char.Key()), hashValues(char)...).Err(); err != nil {
		return dnderr.Storagef(err, "failed to save character %s", char.Key()).
			WithMeta("channel_id", char.ChannelID).
			WithMeta("user_id", char.UserID)
	}

	return nil
}

// Ping checks the connection
func (r *redisRepo) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return dnderr.Storage(err, "redis ping failed")
	}
	return nil
}

// hashValues flattens a character into HSET arguments in a stable order
func hashValues(char *character.Character) []any {
	values := make([]any, 0, 4+2*len(character.Actions))
	values = append(values, fieldChannelID, char.ChannelID, fieldUserID, char.UserID)
	for _, action := range character.Actions {
		values = append(values, action.String(), char.Rating(action))
	}
	return values
}
