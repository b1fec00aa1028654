package discord

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/KirkDiggler/scum-bot-discord/internal/dice"
	"github.com/KirkDiggler/scum-bot-discord/internal/domain/character"
	dnderr "github.com/KirkDiggler/scum-bot-discord/internal/errors"
	"github.com/KirkDiggler/scum-bot-discord/internal/services/command"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustResolve(t *testing.T, pool int, faces ...int) *dice.Outcome {
	t.Helper()
	outcome, err := dice.Resolve(pool, faces)
	require.NoError(t, err)
	return outcome
}

func TestRenderRoll(t *testing.T) {
	testCases := []struct {
		name     string
		out      func(t *testing.T) *command.RollOutput
		expected string
	}{
		{
			name: "action partial",
			out: func(t *testing.T) *command.RollOutput {
				return &command.RollOutput{Kind: command.RollKindAction, Name: "hack", Rating: 2, Outcome: mustResolve(t, 2, 5, 2)}
			},
			expected: "rolled Hack (2d) = **5** = max(5, 2) — Partial Success 😑",
		},
		{
			name: "single die has no breakdown",
			out: func(t *testing.T) *command.RollOutput {
				return &command.RollOutput{Kind: command.RollKindAction, Name: "sway", Rating: 1, Outcome: mustResolve(t, 1, 6)}
			},
			expected: "rolled Sway (1d) = **6** — Full Success 😄",
		},
		{
			name: "zero dice takes the lowest",
			out: func(t *testing.T) *command.RollOutput {
				return &command.RollOutput{Kind: command.RollKindAction, Name: "rig", Outcome: mustResolve(t, 0, 3, 5)}
			},
			expected: "rolled Rig (0d) = **3** = min(3, 5) — Failure 😰",
		},
		{
			name: "bonus dice",
			out: func(t *testing.T) *command.RollOutput {
				return &command.RollOutput{Kind: command.RollKindAction, Name: "scrap", Rating: 1, BonusDice: 1, Outcome: mustResolve(t, 2, 6, 6)}
			},
			expected: "rolled Scrap (2d, 1 bonus) = **6** = max(6, 6) — Critical Success 🤩",
		},
		{
			name: "resistance",
			out: func(t *testing.T) *command.RollOutput {
				return &command.RollOutput{Kind: command.RollKindResistance, Name: "insight", Rating: 3, Outcome: mustResolve(t, 3, 1, 4, 2)}
			},
			expected: "rolled Insight (3d) = **4** = max(1, 4, 2) — Partial Success 😑",
		},
		{
			name: "plain dice",
			out: func(t *testing.T) *command.RollOutput {
				return &command.RollOutput{Kind: command.RollKindDice, Rating: 3, Outcome: mustResolve(t, 3, 2, 2, 1)}
			},
			expected: "rolled 3d = **2** = max(2, 2, 1) — Failure 😰",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, RenderRoll(tc.out(t)))
		})
	}
}

func TestRenderOutcome_ShowsAtMostTenFaces(t *testing.T) {
	faces := make([]int, 12)
	for i := range faces {
		faces[i] = i%5 + 1
	}
	faces[11] = 6

	rendered := RenderOutcome(mustResolve(t, 12, faces...))
	assert.Equal(t, "**6** = max(1, 2, 3, 4, 5, 1, 2, 3, 4, 5, …) — Full Success 😄", rendered)
}

func TestRenderAdjust(t *testing.T) {
	out := &command.AdjustOutput{Action: character.ActionHelm, Delta: 1, Value: 3}
	assert.Equal(t, "Helm is now ●●●○ (3)", RenderAdjust(out))
}

func TestRenderSheet(t *testing.T) {
	char := character.NewCharacter(character.Key{ChannelID: "c", UserID: "u"})
	char.Hack = 2
	char.Sway = 4

	embed := RenderSheet("Rook", &command.ShowOutput{
		Character: char,
		Attributes: map[character.Attribute]int{
			character.AttributeInsight: 1,
			character.AttributeProwess: 0,
			character.AttributeResolve: 1,
		},
	})

	assert.Equal(t, "Rook's character sheet", embed.Title)
	require.Len(t, embed.Fields, 3)
	assert.Equal(t, "Insight (1)", embed.Fields[0].Name)
	assert.Contains(t, embed.Fields[0].Value, "●●○○ Hack")
	assert.Equal(t, "Prowess (0)", embed.Fields[1].Name)
	assert.Equal(t, "Resolve (1)", embed.Fields[2].Name)
	assert.Contains(t, embed.Fields[2].Value, "●●●● Sway")
	assert.Len(t, strings.Split(embed.Fields[1].Value, "\n"), 4)
}

func TestRenderError(t *testing.T) {
	reply := RenderError(dnderr.UnknownAttribute("luck"))
	assert.True(t, reply.Ephemeral)
	assert.Contains(t, reply.Content, `"luck"`)
	assert.Contains(t, reply.Content, "hack")

	reply = RenderError(dnderr.WrapWithCode(dice.ErrTooManyDice, dnderr.CodeInvalidArgument, "dice pool too large"))
	assert.Equal(t, fmt.Sprintf("That's too many dice! Try rolling %d or fewer dice.", dice.MaxDice), reply.Content)

	reply = RenderError(dnderr.InvalidArgument("bonus dice cannot be negative, got -1"))
	assert.Equal(t, "That doesn't work: bonus dice cannot be negative, got -1.", reply.Content)

	reply = RenderError(dnderr.Storage(errors.New("database is locked"), "failed to load character"))
	assert.NotContains(t, reply.Content, "database is locked")
	assert.True(t, reply.Ephemeral)
}

func TestRenderHelp(t *testing.T) {
	help := RenderHelp()
	for _, sub := range []string{"roll", "resist", "dice", "adjust", "show"} {
		assert.Contains(t, help, "/sv "+sub)
	}
}
