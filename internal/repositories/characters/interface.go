package characters

//go:generate mockgen -destination=mock/mock.go -package=mockcharacters -source=interface.go

import (
	"context"

	"github.com/KirkDiggler/scum-bot-discord/internal/domain/character"
	dnderr "github.com/KirkDiggler/scum-bot-discord/internal/errors"
)

// Repository persists one character per (channel, user).
//
// Implementations never report a missing key: Load returns the all-zero character instead.
// Save writes the whole record in a single atomic operation and fails with a storage error
// when the backend does.
type Repository interface {
	// Load returns the stored character or a default one
	Load(ctx context.Context, key character.Key) (*character.Character, error)

	// Save upserts the full character
	Save(ctx context.Context, char *character.Character) error

	// Ping reports whether the backend is reachable
	Ping(ctx context.Context) error
}

// validateForSave guards the invariant that out of range ratings never reach a backend
func validateForSave(char *character.Character) error {
	if char == nil {
		return dnderr.InvalidArgument("character cannot be nil")
	}
	for _, action := range character.Actions {
		if value := char.Rating(action); !character.ValidRating(value) {
			return dnderr.InvalidArgumentf("%s rating %d is outside [%d, %d]",
				action, value, character.MinRating, character.MaxRating).
				WithMeta("channel_id", char.ChannelID).
				WithMeta("user_id", char.UserID)
		}
	}
	return nil
}
