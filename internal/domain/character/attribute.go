package character

import (
	"strings"

	dnderr "github.com/KirkDiggler/scum-bot-discord/internal/errors"
)

// Attribute groups four actions and is rolled for resistance
type Attribute string

const (
	AttributeNone    Attribute = ""
	AttributeInsight Attribute = "insight"
	AttributeProwess Attribute = "prowess"
	AttributeResolve Attribute = "resolve"
)

// Attributes lists the three attributes
var Attributes = []Attribute{AttributeInsight, AttributeProwess, AttributeResolve}

var attributeActions = map[Attribute][]Action{
	AttributeInsight: {ActionDoctor, ActionHack, ActionRig, ActionStudy},
	AttributeProwess: {ActionHelm, ActionScramble, ActionScrap, ActionSkulk},
	AttributeResolve: {ActionAttune, ActionCommand, ActionConsort, ActionSway},
}

// ParseAttribute resolves a caller supplied attribute name
func ParseAttribute(name string) (Attribute, error) {
	candidate := Attribute(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := attributeActions[candidate]; ok {
		return candidate, nil
	}
	return AttributeNone, dnderr.UnknownAttribute(name)
}

// Actions returns the four actions under this attribute
func (a Attribute) Actions() []Action {
	return attributeActions[a]
}

// String returns the attribute name
func (a Attribute) String() string {
	return string(a)
}
