package dice_test

import (
	"testing"

	"github.com/KirkDiggler/scum-bot-discord/internal/dice"
	mockdice "github.com/KirkDiggler/scum-bot-discord/internal/dice/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManualMockRoller_Roll(t *testing.T) {
	tests := []struct {
		name       string
		setupRolls []int
		count      int
		sides      int
		wantRolls  []int
		wantHigh   int
		wantLow    int
		wantErr    bool
	}{
		{
			name:       "single die",
			setupRolls: []int{5},
			count:      1,
			sides:      6,
			wantRolls:  []int{5},
			wantHigh:   5,
			wantLow:    5,
		},
		{
			name:       "three dice",
			setupRolls: []int{2, 6, 4},
			count:      3,
			sides:      6,
			wantRolls:  []int{2, 6, 4},
			wantHigh:   6,
			wantLow:    2,
		},
		{
			name:       "not enough rolls",
			setupRolls: []int{3},
			count:      2,
			sides:      6,
			wantErr:    true,
		},
		{
			name:       "invalid roll for die size",
			setupRolls: []int{7},
			count:      1,
			sides:      6,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roller := mockdice.NewManualMockRoller()
			roller.SetRolls(tt.setupRolls)

			result, err := roller.Roll(tt.count, tt.sides)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantRolls, result.Rolls)
			assert.Equal(t, tt.count, result.Count)
			assert.Equal(t, tt.wantHigh, result.Highest)
			assert.Equal(t, tt.wantLow, result.Lowest)
		})
	}
}

func TestManualMockRoller_SequentialRolls(t *testing.T) {
	roller := mockdice.NewManualMockRoller(6, 1, 3)

	result, err := roller.Roll(1, 6)
	require.NoError(t, err)
	assert.Equal(t, []int{6}, result.Rolls)

	result, err = roller.Roll(2, 6)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, result.Rolls)
	assert.Equal(t, 0, roller.Remaining())

	_, err = roller.Roll(1, 6)
	assert.Error(t, err)
	assert.Equal(t, [][2]int{{1, 6}, {2, 6}, {1, 6}}, roller.Calls())
}

func TestRandomRoller_BasicFunctionality(t *testing.T) {
	roller := dice.NewRandomRoller()

	for i := 0; i < 50; i++ {
		result, err := roller.Roll(4, 6)
		require.NoError(t, err)
		require.Len(t, result.Rolls, 4)
		for _, roll := range result.Rolls {
			assert.GreaterOrEqual(t, roll, 1)
			assert.LessOrEqual(t, roll, 6)
		}
		assert.GreaterOrEqual(t, result.Highest, result.Lowest)
	}

	_, err := roller.Roll(0, 6)
	assert.ErrorIs(t, err, dice.ErrInvalidCount)
	_, err = roller.Roll(1, 0)
	assert.ErrorIs(t, err, dice.ErrInvalidSides)
}

func TestSeededRoller_IsDeterministic(t *testing.T) {
	first := dice.NewSeededRoller(42)
	second := dice.NewSeededRoller(42)

	for i := 0; i < 10; i++ {
		a, err := first.Roll(3, 6)
		require.NoError(t, err)
		b, err := second.Roll(3, 6)
		require.NoError(t, err)
		assert.Equal(t, a.Rolls, b.Rolls)
	}
}
