package mockdice

import (
	"fmt"
	"sync"

	"github.com/KirkDiggler/scum-bot-discord/internal/dice"
)

// ManualMockRoller implements dice.Roller by handing out predetermined faces in order
type ManualMockRoller struct {
	mu        sync.Mutex
	rolls     []int
	rollIndex int
	calls     [][2]int
}

// NewManualMockRoller creates a roller with the given faces queued
func NewManualMockRoller(rolls ...int) *ManualMockRoller {
	return &ManualMockRoller{
		rolls: append([]int{}, rolls...),
	}
}

// SetNextRoll queues one more face
func (m *ManualMockRoller) SetNextRoll(roll int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = append(m.rolls, roll)
}

// SetRolls replaces the queue
func (m *ManualMockRoller) SetRolls(rolls []int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = rolls
	m.rollIndex = 0
}

// Reset clears all rolls and resets the index
func (m *ManualMockRoller) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = []int{}
	m.rollIndex = 0
	m.calls = nil
}

// Remaining reports how many queued faces are unused
func (m *ManualMockRoller) Remaining() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rolls) - m.rollIndex
}

// Calls returns the (count, sides) pairs Roll was called with
func (m *ManualMockRoller) Calls() [][2]int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][2]int(nil), m.calls...)
}

// Roll implements dice.Roller.Roll
func (m *ManualMockRoller) Roll(count, sides int) (*dice.RollResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, [2]int{count, sides})
	if m.rollIndex+count > len(m.rolls) {
		return nil, fmt.Errorf("no more predetermined rolls available (need %d, have %d)", count, len(m.rolls)-m.rollIndex)
	}

	rolls := make([]int, count)
	for i := range rolls {
		roll := m.rolls[m.rollIndex]
		if roll < 1 || roll > sides {
			return nil, fmt.Errorf("invalid roll %d for d%d", roll, sides)
		}
		rolls[i] = roll
		m.rollIndex++
	}

	return dice.NewRollResult(sides, rolls), nil
}
