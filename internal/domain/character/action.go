package character

import (
	"strings"

	dnderr "github.com/KirkDiggler/scum-bot-discord/internal/errors"
)

// Action is one of the twelve action ratings on a Scum and Villainy character
type Action string

const (
	ActionAttune   Action = "attune"
	ActionCommand  Action = "command"
	ActionConsort  Action = "consort"
	ActionDoctor   Action = "doctor"
	ActionHack     Action = "hack"
	ActionHelm     Action = "helm"
	ActionRig      Action = "rig"
	ActionScramble Action = "scramble"
	ActionScrap    Action = "scrap"
	ActionSkulk    Action = "skulk"
	ActionStudy    Action = "study"
	ActionSway     Action = "sway"
)

// Actions lists every action in sheet (and column) order
var Actions = []Action{
	ActionAttune,
	ActionCommand,
	ActionConsort,
	ActionDoctor,
	ActionHack,
	ActionHelm,
	ActionRig,
	ActionScramble,
	ActionScrap,
	ActionSkulk,
	ActionStudy,
	ActionSway,
}

// ParseAction resolves a caller supplied name, ignoring case and surrounding space
func ParseAction(name string) (Action, error) {
	candidate := Action(strings.ToLower(strings.TrimSpace(name)))
	for _, action := range Actions {
		if action == candidate {
			return action, nil
		}
	}
	return "", dnderr.UnknownAttribute(name)
}

// String returns the action's storage name
func (a Action) String() string {
	return string(a)
}

// Attribute returns the attribute this action contributes to
func (a Action) Attribute() Attribute {
	for _, attr := range Attributes {
		for _, action := range attr.Actions() {
			if action == a {
				return attr
			}
		}
	}
	return AttributeNone
}
