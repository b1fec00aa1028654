// Package ledger owns the action ratings of every character and serializes changes per character
package ledger

//go:generate mockgen -destination=mock/mock_service.go -package=mockledger -source=service.go

import (
	"context"

	"github.com/KirkDiggler/scum-bot-discord/internal/domain/character"
	"github.com/KirkDiggler/scum-bot-discord/internal/observability"
	"github.com/KirkDiggler/scum-bot-discord/internal/repositories/characters"
	"go.uber.org/zap"
)

// Repository is an alias for the character repository interface
type Repository = characters.Repository

// Service reads and adjusts action ratings.
//
// Operations on the same key are totally ordered; operations on different keys never wait on each other.
type Service interface {
	// GetRating returns the current rating of an action, 0 for a character never seen before
	GetRating(ctx context.Context, key character.Key, actionName string) (int, error)

	// Adjust adds delta to an action rating, clamps the result to [MinRating, MaxRating],
	// persists it and returns the new value
	Adjust(ctx context.Context, key character.Key, actionName string, delta int) (int, error)

	// Show returns a snapshot of all twelve ratings
	Show(ctx context.Context, key character.Key) (*character.Character, error)

	// GetAttributeRating returns how many of the attribute's actions are rated above zero
	GetAttributeRating(ctx context.Context, key character.Key, attributeName string) (int, error)
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository Repository  // Required
	Logger     *zap.Logger // Optional, defaults to a no-op logger
}

type service struct {
	repository Repository
	logger     *zap.Logger
	locks      *keyLocks
}

// NewService creates a new ledger service
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil {
		panic("ServiceConfig cannot be nil")
	}
	if cfg.Repository == nil {
		panic("repository is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &service{
		repository: cfg.Repository,
		logger:     logger.Named("ledger"),
		locks:      newKeyLocks(),
	}
}

// GetRating returns the current rating of an action
func (s *service) GetRating(ctx context.Context, key character.Key, actionName string) (int, error) {
	action, err := character.ParseAction(actionName)
	if err != nil {
		return 0, err
	}

	unlock := s.locks.RLock(key)
	defer unlock()

	char, err := s.repository.Load(ctx, key)
	if err != nil {
		s.logFailure(ctx, "load", key, err)
		return 0, err
	}

	return char.Rating(action), nil
}

// Adjust is a read-modify-write under the key's write lock
func (s *service) Adjust(ctx context.Context, key character.Key, actionName string, delta int) (int, error) {
	action, err := character.ParseAction(actionName)
	if err != nil {
		return 0, err
	}

	unlock := s.locks.Lock(key)
	defer unlock()

	char, err := s.repository.Load(ctx, key)
	if err != nil {
		s.logFailure(ctx, "load", key, err)
		return 0, err
	}

	previous := char.Rating(action)
	value, err := char.SetRating(action, previous+boundDelta(delta))
	if err != nil {
		return 0, err
	}

	if err := s.repository.Save(ctx, char); err != nil {
		s.logFailure(ctx, "save", key, err)
		return 0, err
	}

	observability.WithContextLogger(s.logger, ctx).Debug("adjusted rating",
		zap.String("channel_id", key.ChannelID),
		zap.String("user_id", key.UserID),
		zap.String("action", action.String()),
		zap.Int("delta", delta),
		zap.Int("previous", previous),
		zap.Int("value", value),
	)

	return value, nil
}

// Show returns a snapshot of the character
func (s *service) Show(ctx context.Context, key character.Key) (*character.Character, error) {
	unlock := s.locks.RLock(key)
	defer unlock()

	char, err := s.repository.Load(ctx, key)
	if err != nil {
		s.logFailure(ctx, "load", key, err)
		return nil, err
	}

	return char, nil
}

// GetAttributeRating derives an attribute rating from one consistent snapshot
func (s *service) GetAttributeRating(ctx context.Context, key character.Key, attributeName string) (int, error) {
	attribute, err := character.ParseAttribute(attributeName)
	if err != nil {
		return 0, err
	}

	char, err := s.Show(ctx, key)
	if err != nil {
		return 0, err
	}

	return char.AttributeRating(attribute), nil
}

func (s *service) logFailure(ctx context.Context, op string, key character.Key, err error) {
	observability.WithContextLogger(s.logger, ctx).Error("character storage failed",
		zap.String("op", op),
		zap.String("channel_id", key.ChannelID),
		zap.String("user_id", key.UserID),
		zap.Error(err),
	)
}

// boundDelta keeps current+delta from overflowing; anything beyond the rating span clamps the same way
func boundDelta(delta int) int {
	span := character.MaxRating - character.MinRating
	switch {
	case delta > span:
		return span
	case delta < -span:
		return -span
	}
	return delta
}
