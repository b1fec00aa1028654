// Package character holds the Scum and Villainy character model: action ratings keyed by
// channel and user, and the attributes derived from them.
package character

import "fmt"

// Key identifies a character. A user has one character per channel.
type Key struct {
	ChannelID string
	UserID    string
}

// String is used in logs and error metadata
func (k Key) String() string {
	return fmt.Sprintf("%s/%s", k.ChannelID, k.UserID)
}

// Character is the persisted record: twelve action ratings for one key.
// The zero value of the ratings is the default sheet for a key never seen before.
type Character struct {
	ChannelID string `json:"channel_id"`
	UserID    string `json:"user_id"`

	Attune   int `json:"attune"`
	Command  int `json:"command"`
	Consort  int `json:"consort"`
	Doctor   int `json:"doctor"`
	Hack     int `json:"hack"`
	Helm     int `json:"helm"`
	Rig      int `json:"rig"`
	Scramble int `json:"scramble"`
	Scrap    int `json:"scrap"`
	Skulk    int `json:"skulk"`
	Study    int `json:"study"`
	Sway     int `json:"sway"`
}

// NewCharacter returns the default all-zero character for a key
func NewCharacter(key Key) *Character {
	return &Character{
		ChannelID: key.ChannelID,
		UserID:    key.UserID,
	}
}

// Key returns the identity of the character
func (c *Character) Key() Key {
	return Key{ChannelID: c.ChannelID, UserID: c.UserID}
}

// Rating returns the current rating for an action, 0 for anything unknown
func (c *Character) Rating(action Action) int {
	if field := c.field(action); field != nil {
		return *field
	}
	return 0
}

// SetRating stores a clamped rating and returns the value actually stored
func (c *Character) SetRating(action Action, value int) (int, error) {
	field := c.field(action)
	if field == nil {
		return 0, fmt.Errorf("no rating for action %q", action)
	}
	*field = ClampRating(value)
	return *field, nil
}

// Ratings returns every action rating in sheet order
func (c *Character) Ratings() map[Action]int {
	out := make(map[Action]int, len(Actions))
	for _, action := range Actions {
		out[action] = c.Rating(action)
	}
	return out
}

// AttributeRating is the number of the attribute's actions rated above zero
func (c *Character) AttributeRating(attr Attribute) int {
	rating := 0
	for _, action := range attr.Actions() {
		if c.Rating(action) > 0 {
			rating++
		}
	}
	return rating
}

// Normalize clamps every rating into range. Stores call it on load so bad rows never leak out.
func (c *Character) Normalize() {
	for _, action := range Actions {
		field := c.field(action)
		*field = ClampRating(*field)
	}
}

// Clone returns an independent copy
func (c *Character) Clone() *Character {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

func (c *Character) field(action Action) *int {
	switch action {
	case ActionAttune:
		return &c.Attune
	case ActionCommand:
		return &c.Command
	case ActionConsort:
		return &c.Consort
	case ActionDoctor:
		return &c.Doctor
	case ActionHack:
		return &c.Hack
	case ActionHelm:
		return &c.Helm
	case ActionRig:
		return &c.Rig
	case ActionScramble:
		return &c.Scramble
	case ActionScrap:
		return &c.Scrap
	case ActionSkulk:
		return &c.Skulk
	case ActionStudy:
		return &c.Study
	case ActionSway:
		return &c.Sway
	default:
		return nil
	}
}
