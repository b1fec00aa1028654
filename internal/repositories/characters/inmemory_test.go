package characters_test

import (
	"context"
	"testing"

	"github.com/KirkDiggler/scum-bot-discord/internal/domain/character"
	dnderr "github.com/KirkDiggler/scum-bot-discord/internal/errors"
	"github.com/KirkDiggler/scum-bot-discord/internal/repositories/characters"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryRepository_LoadMissingIsDefault(t *testing.T) {
	repo := characters.NewInMemoryRepository()
	key := character.Key{ChannelID: "chan", UserID: "user"}

	char, err := repo.Load(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, character.NewCharacter(key), char)
	assert.Equal(t, 0, repo.Len(), "load must not create a record")
}

func TestInMemoryRepository_SaveCopies(t *testing.T) {
	ctx := context.Background()
	repo := characters.NewInMemoryRepository()
	char := &character.Character{ChannelID: "c", UserID: "u", Hack: 2}

	require.NoError(t, repo.Save(ctx, char))
	char.Hack = 3

	loaded, err := repo.Load(ctx, char.Key())
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Hack)

	loaded.Hack = 4
	again, err := repo.Load(ctx, char.Key())
	require.NoError(t, err)
	assert.Equal(t, 2, again.Hack)
}

func TestInMemoryRepository_RejectsInvalid(t *testing.T) {
	ctx := context.Background()
	repo := characters.NewInMemoryRepository()

	err := repo.Save(ctx, nil)
	assert.True(t, dnderr.IsInvalidArgument(err))

	err = repo.Save(ctx, &character.Character{ChannelID: "c", UserID: "u", Rig: 5})
	assert.True(t, dnderr.IsInvalidArgument(err))
	assert.Equal(t, 0, repo.Len())

	assert.NoError(t, repo.Ping(ctx))
}
