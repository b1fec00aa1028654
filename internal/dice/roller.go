package dice

//go:generate mockgen -destination=mock/mock_roller.go -package=mockdice -source=roller.go

// Roller is the entropy source for every roll. Production code uses NewRandomRoller,
// tests inject scripted faces so outcomes are reproducible.
type Roller interface {
	// Roll rolls count dice with the given number of sides
	Roll(count, sides int) (*RollResult, error)
}

// RollResult holds the raw faces of one physical roll
type RollResult struct {
	Rolls   []int
	Count   int
	Sides   int
	Highest int
	Lowest  int
}

// NewRollResult builds a result from faces, filling in the extremes
func NewRollResult(sides int, rolls []int) *RollResult {
	result := &RollResult{
		Rolls: rolls,
		Count: len(rolls),
		Sides: sides,
	}
	for i, roll := range rolls {
		if i == 0 || roll > result.Highest {
			result.Highest = roll
		}
		if i == 0 || roll < result.Lowest {
			result.Lowest = roll
		}
	}
	return result
}
