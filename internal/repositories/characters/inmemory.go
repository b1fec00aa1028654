package characters

import (
	"context"
	"sync"

	"github.com/KirkDiggler/scum-bot-discord/internal/domain/character"
)

// InMemoryRepository keeps characters in a map.
// Useful for testing and as the fallback when no backend is configured.
type InMemoryRepository struct {
	mu         sync.RWMutex
	characters map[character.Key]*character.Character
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		characters: make(map[character.Key]*character.Character),
	}
}

// Load returns a copy of the stored character or a default one
func (r *InMemoryRepository) Load(ctx context.Context, key character.Key) (*character.Character, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if stored, ok := r.characters[key]; ok {
		return stored.Clone(), nil
	}
	return character.NewCharacter(key), nil
}

// Save stores a copy so later changes by the caller are not visible
func (r *InMemoryRepository) Save(ctx context.Context, char *character.Character) error {
	if err := validateForSave(char); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.characters[char.Key()] = char.Clone()
	return nil
}

// Ping always succeeds
func (r *InMemoryRepository) Ping(ctx context.Context) error {
	return nil
}

// Len reports how many characters are stored
func (r *InMemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.characters)
}
