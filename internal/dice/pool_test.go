package dice_test

import (
	"testing"

	"github.com/KirkDiggler/scum-bot-discord/internal/dice"
	mockdice "github.com/KirkDiggler/scum-bot-discord/internal/dice/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRollPool_Degrees(t *testing.T) {
	tests := []struct {
		name       string
		rating     int
		faces      []int
		wantDegree dice.Degree
		wantResult int
		wantRule   dice.Rule
		wantRolled int
	}{
		{
			name:       "two sixes is critical",
			rating:     2,
			faces:      []int{6, 6},
			wantDegree: dice.DegreeCriticalSuccess,
			wantResult: 6,
			wantRolled: 2,
		},
		{
			name:       "one six is full success",
			rating:     2,
			faces:      []int{6, 3},
			wantDegree: dice.DegreeFullSuccess,
			wantResult: 6,
			wantRolled: 2,
		},
		{
			name:       "five is partial",
			rating:     2,
			faces:      []int{5, 2},
			wantDegree: dice.DegreePartialSuccess,
			wantResult: 5,
			wantRolled: 2,
		},
		{
			name:       "four is partial",
			rating:     3,
			faces:      []int{1, 4, 2},
			wantDegree: dice.DegreePartialSuccess,
			wantResult: 4,
			wantRolled: 3,
		},
		{
			name:       "low dice fail",
			rating:     2,
			faces:      []int{2, 1},
			wantDegree: dice.DegreeFailure,
			wantResult: 2,
			wantRolled: 2,
		},
		{
			name:       "single six is never critical",
			rating:     1,
			faces:      []int{6},
			wantDegree: dice.DegreeFullSuccess,
			wantResult: 6,
			wantRolled: 1,
		},
		{
			name:       "zero dice keeps the lowest",
			rating:     0,
			faces:      []int{3, 5},
			wantDegree: dice.DegreeFailure,
			wantResult: 3,
			wantRule:   dice.RuleLowest,
			wantRolled: 2,
		},
		{
			name:       "zero dice double six is only full",
			rating:     0,
			faces:      []int{6, 6},
			wantDegree: dice.DegreeFullSuccess,
			wantResult: 6,
			wantRule:   dice.RuleLowest,
			wantRolled: 2,
		},
		{
			name:       "negative rating is an empty pool",
			rating:     -2,
			faces:      []int{4, 5},
			wantDegree: dice.DegreePartialSuccess,
			wantResult: 4,
			wantRule:   dice.RuleLowest,
			wantRolled: 2,
		},
		{
			name:       "three sixes in four dice",
			rating:     4,
			faces:      []int{6, 1, 6, 6},
			wantDegree: dice.DegreeCriticalSuccess,
			wantResult: 6,
			wantRolled: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roller := mockdice.NewManualMockRoller(tt.faces...)

			outcome, err := dice.RollPool(tt.rating, roller)
			require.NoError(t, err)

			assert.Equal(t, tt.wantDegree, outcome.Degree)
			assert.Equal(t, tt.wantResult, outcome.Result)
			assert.Equal(t, tt.wantRule, outcome.Rule)
			assert.Equal(t, tt.wantRolled, outcome.DiceRolled)
			assert.Equal(t, tt.faces, outcome.Faces)
			assert.Equal(t, tt.wantDegree == dice.DegreeCriticalSuccess, outcome.Critical())
			assert.Equal(t, 0, roller.Remaining())
		})
	}
}

func TestRollPool_ZeroDiceRollsTwo(t *testing.T) {
	roller := mockdice.NewManualMockRoller(2, 2)

	outcome, err := dice.RollPool(0, roller)
	require.NoError(t, err)

	assert.Equal(t, 0, outcome.Pool)
	assert.Equal(t, 2, outcome.DiceRolled)
	assert.Equal(t, [][2]int{{2, dice.Sides}}, roller.Calls())
}

func TestRollPool_Errors(t *testing.T) {
	_, err := dice.RollPool(1, nil)
	assert.ErrorIs(t, err, dice.ErrNoRoller)

	_, err = dice.RollPool(dice.MaxDice+1, mockdice.NewManualMockRoller())
	assert.ErrorIs(t, err, dice.ErrTooManyDice)

	_, err = dice.RollPool(2, mockdice.NewManualMockRoller(3))
	assert.Error(t, err)
}

func TestRollPool_RandomStaysInRange(t *testing.T) {
	roller := dice.NewRandomRoller()
	for rating := 0; rating <= 4; rating++ {
		outcome, err := dice.RollPool(rating, roller)
		require.NoError(t, err)
		assert.Len(t, outcome.Faces, outcome.DiceRolled)
		assert.GreaterOrEqual(t, outcome.Result, 1)
		assert.LessOrEqual(t, outcome.Result, 6)
	}
}

func TestResolve_RejectsBadFaces(t *testing.T) {
	_, err := dice.Resolve(2, []int{0, 3})
	assert.Error(t, err)

	_, err = dice.Resolve(1, []int{7})
	assert.Error(t, err)

	_, err = dice.Resolve(0, []int{3})
	assert.Error(t, err)
}

func TestDegree_String(t *testing.T) {
	assert.Equal(t, "Critical Success", dice.DegreeCriticalSuccess.String())
	assert.Equal(t, "Full Success", dice.DegreeFullSuccess.String())
	assert.Equal(t, "Partial Success", dice.DegreePartialSuccess.String())
	assert.Equal(t, "Failure", dice.DegreeFailure.String())
	assert.Equal(t, "max", dice.RuleHighest.String())
	assert.Equal(t, "min", dice.RuleLowest.String())
}
