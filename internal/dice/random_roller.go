package dice

import (
	"errors"
	"math/rand/v2"
	"sync"
)

var (
	// ErrInvalidCount is returned when asked to roll fewer than one die
	ErrInvalidCount = errors.New("invalid dice count")

	// ErrInvalidSides is returned for dice with fewer than one side
	ErrInvalidSides = errors.New("invalid dice size")
)

// randomRoller draws from the runtime's goroutine-safe generator
type randomRoller struct{}

// NewRandomRoller creates a roller backed by ambient randomness
func NewRandomRoller() Roller {
	return &randomRoller{}
}

// Roll implements Roller.Roll
func (r *randomRoller) Roll(count, sides int) (*RollResult, error) {
	if err := validate(count, sides); err != nil {
		return nil, err
	}

	out := make([]int, count)
	for i := range out {
		out[i] = rand.IntN(sides) + 1
	}
	return NewRollResult(sides, out), nil
}

// seededRoller replays the same sequence for the same seed
type seededRoller struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededRoller creates a deterministic roller. It is safe for concurrent use,
// but the interleaving of concurrent callers decides who gets which faces.
func NewSeededRoller(seed uint64) Roller {
	return &seededRoller{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Roll implements Roller.Roll
func (r *seededRoller) Roll(count, sides int) (*RollResult, error) {
	if err := validate(count, sides); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]int, count)
	for i := range out {
		out[i] = r.rng.IntN(sides) + 1
	}
	return NewRollResult(sides, out), nil
}

func validate(count, sides int) error {
	if count < 1 {
		return ErrInvalidCount
	}
	if sides < 1 {
		return ErrInvalidSides
	}
	return nil
}
