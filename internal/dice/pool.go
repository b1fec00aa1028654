// Package dice resolves Forged in the Dark dice pools.
//
// A pool is a number of six-sided dice sized by a rating. The highest die decides the
// outcome; more than one six is a critical. An empty pool rolls two dice and keeps the
// lowest, and can never be a critical.
package dice

import (
	"errors"
	"fmt"
)

const (
	// Sides of every die in a pool
	Sides = 6

	// MaxDice caps a single pool
	MaxDice = 100

	// zeroDice is how many dice an empty pool physically rolls
	zeroDice = 2
)

// ErrTooManyDice is returned for pools above MaxDice
var ErrTooManyDice = fmt.Errorf("must roll no more than %d dice", MaxDice)

// ErrNoRoller is returned when no entropy source was supplied
var ErrNoRoller = errors.New("dice roller is required")

// Degree is how well a roll went
type Degree int

const (
	DegreeFailure Degree = iota
	DegreePartialSuccess
	DegreeFullSuccess
	DegreeCriticalSuccess
)

func (d Degree) String() string {
	switch d {
	case DegreeFailure:
		return "Failure"
	case DegreePartialSuccess:
		return "Partial Success"
	case DegreeFullSuccess:
		return "Full Success"
	case DegreeCriticalSuccess:
		return "Critical Success"
	default:
		return "Unknown"
	}
}

// Rule says which face controls the outcome
type Rule int

const (
	RuleHighest Rule = iota
	RuleLowest
)

func (r Rule) String() string {
	if r == RuleLowest {
		return "min"
	}
	return "max"
}

// Outcome is the resolved result of one pool
type Outcome struct {
	// Pool is the number of dice the rating granted, before the empty pool rule
	Pool int
	// DiceRolled is how many dice were physically rolled (2 for an empty pool)
	DiceRolled int
	// Faces are the rolled values in roll order
	Faces []int
	// Result is the controlling face
	Result int
	Rule   Rule
	Degree Degree
}

// Critical reports whether the roll was a critical success
func (o *Outcome) Critical() bool {
	return o.Degree == DegreeCriticalSuccess
}

// RollPool rolls a pool of max(rating, 0) dice and resolves it
func RollPool(rating int, roller Roller) (*Outcome, error) {
	if roller == nil {
		return nil, ErrNoRoller
	}

	pool := max(rating, 0)
	if pool > MaxDice {
		return nil, ErrTooManyDice
	}

	count := pool
	if pool == 0 {
		count = zeroDice
	}

	result, err := roller.Roll(count, Sides)
	if err != nil {
		return nil, fmt.Errorf("failed to roll %dd%d: %w", count, Sides, err)
	}

	return Resolve(pool, result.Rolls)
}

// Resolve classifies faces already rolled for a pool of the given size
func Resolve(pool int, faces []int) (*Outcome, error) {
	pool = max(pool, 0)
	expected := pool
	if pool == 0 {
		expected = zeroDice
	}
	if len(faces) != expected {
		return nil, fmt.Errorf("pool of %d needs %d dice, got %d", pool, expected, len(faces))
	}

	sixes := 0
	for _, face := range faces {
		if face < 1 || face > Sides {
			return nil, fmt.Errorf("invalid face %d for d%d", face, Sides)
		}
		if face == Sides {
			sixes++
		}
	}

	rolled := NewRollResult(Sides, append([]int(nil), faces...))
	outcome := &Outcome{
		Pool:       pool,
		DiceRolled: len(faces),
		Faces:      rolled.Rolls,
	}

	if pool == 0 {
		outcome.Rule = RuleLowest
		outcome.Result = rolled.Lowest
		outcome.Degree = degreeFor(rolled.Lowest, false)
		return outcome, nil
	}

	outcome.Rule = RuleHighest
	outcome.Result = rolled.Highest
	outcome.Degree = degreeFor(rolled.Highest, pool >= 2 && sixes >= 2)
	return outcome, nil
}

func degreeFor(result int, critical bool) Degree {
	switch {
	case critical:
		return DegreeCriticalSuccess
	case result >= 6:
		return DegreeFullSuccess
	case result >= 4:
		return DegreePartialSuccess
	default:
		return DegreeFailure
	}
}
