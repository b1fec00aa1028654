package discord

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/KirkDiggler/scum-bot-discord/internal/dice"
	"github.com/KirkDiggler/scum-bot-discord/internal/domain/character"
	dnderr "github.com/KirkDiggler/scum-bot-discord/internal/errors"
	"github.com/KirkDiggler/scum-bot-discord/internal/services/command"
	"github.com/bwmarrin/discordgo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// maxFacesShown caps how many dice are listed in a reply
const maxFacesShown = 10

const sheetColor = 0x9b59b6

var titleCaser = cases.Title(language.English)

var degreeEmoji = map[dice.Degree]string{
	dice.DegreeCriticalSuccess: "🤩",
	dice.DegreeFullSuccess:     "😄",
	dice.DegreePartialSuccess:  "😑",
	dice.DegreeFailure:         "😰",
}

// Reply is what the bot sends back for one interaction
type Reply struct {
	Content   string
	Embeds    []*discordgo.MessageEmbed
	Ephemeral bool
}

// RenderRoll formats a roll as "rolled Hack (2d) = **5** = max(5, 2)" followed by the degree
func RenderRoll(out *command.RollOutput) string {
	var b strings.Builder
	b.WriteString("rolled ")
	switch out.Kind {
	case command.RollKindDice:
		fmt.Fprintf(&b, "%dd", out.Outcome.Pool)
	default:
		fmt.Fprintf(&b, "%s (%dd", titleCaser.String(out.Name), out.Outcome.Pool)
		if out.BonusDice > 0 {
			fmt.Fprintf(&b, ", %d bonus", out.BonusDice)
		}
		b.WriteString(")")
	}
	b.WriteString(" = ")
	b.WriteString(RenderOutcome(out.Outcome))
	return b.String()
}

// RenderOutcome formats the result, the faces behind it and the degree
func RenderOutcome(outcome *dice.Outcome) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%d**", outcome.Result)

	if len(outcome.Faces) > 1 {
		shown := outcome.Faces
		if len(shown) > maxFacesShown {
			shown = shown[:maxFacesShown]
		}
		faces := make([]string, 0, len(shown)+1)
		for _, face := range shown {
			faces = append(faces, strconv.Itoa(face))
		}
		if len(outcome.Faces) > maxFacesShown {
			faces = append(faces, "…")
		}
		fmt.Fprintf(&b, " = %s(%s)", outcome.Rule, strings.Join(faces, ", "))
	}

	fmt.Fprintf(&b, " — %s", outcome.Degree)
	if emoji, ok := degreeEmoji[outcome.Degree]; ok {
		b.WriteString(" ")
		b.WriteString(emoji)
	}
	return b.String()
}

// RenderAdjust confirms a rating change
func RenderAdjust(out *command.AdjustOutput) string {
	return fmt.Sprintf("%s is now %s (%d)",
		titleCaser.String(out.Action.String()), ratingDots(out.Value), out.Value)
}

// RenderSheet lays out all ratings grouped by attribute
func RenderSheet(userName string, out *command.ShowOutput) *discordgo.MessageEmbed {
	fields := make([]*discordgo.MessageEmbedField, 0, len(character.Attributes))
	for _, attr := range character.Attributes {
		lines := make([]string, 0, len(attr.Actions()))
		for _, action := range attr.Actions() {
			value := out.Character.Rating(action)
			lines = append(lines, fmt.Sprintf("%s %s", ratingDots(value), titleCaser.String(action.String())))
		}
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   fmt.Sprintf("%s (%d)", titleCaser.String(attr.String()), out.Attributes[attr]),
			Value:  strings.Join(lines, "\n"),
			Inline: true,
		})
	}

	title := "Character sheet"
	if userName != "" {
		title = fmt.Sprintf("%s's character sheet", userName)
	}

	return &discordgo.MessageEmbed{
		Title:  title,
		Color:  sheetColor,
		Fields: fields,
	}
}

// RenderHelp lists example commands
func RenderHelp() string {
	return strings.Join([]string{
		"Try typing the following:",
		"• `/sv roll action:hack` to roll an action",
		"• `/sv roll action:skulk bonus:1` to roll with a bonus die",
		"• `/sv resist attribute:insight` for a resistance roll",
		"• `/sv dice count:3` to roll three dice",
		"• `/sv adjust action:helm delta:1` to raise a rating",
		"• `/sv show` to see your ratings",
	}, "\n")
}

// RenderError turns a failed intent into a user facing reply
func RenderError(err error) Reply {
	switch {
	case dnderr.IsUnknownAttribute(err):
		name, _ := dnderr.GetMeta(err)["name"].(string)
		return Reply{
			Content:   fmt.Sprintf("I'm not sure what %q is. Actions are %s; attributes are %s.", name, actionList(), attributeList()),
			Ephemeral: true,
		}
	case errors.Is(err, dice.ErrTooManyDice):
		return Reply{
			Content:   fmt.Sprintf("That's too many dice! Try rolling %d or fewer dice.", dice.MaxDice),
			Ephemeral: true,
		}
	case dnderr.IsInvalidArgument(err):
		var coded *dnderr.Error
		message := err.Error()
		if errors.As(err, &coded) {
			message = coded.Message
		}
		return Reply{
			Content:   fmt.Sprintf("That doesn't work: %s.", message),
			Ephemeral: true,
		}
	default:
		return Reply{
			Content:   "Something went wrong reaching your character sheet. Please try again in a moment.",
			Ephemeral: true,
		}
	}
}

func ratingDots(value int) string {
	value = character.ClampRating(value)
	return strings.Repeat("●", value) + strings.Repeat("○", character.MaxRating-value)
}

func actionList() string {
	names := make([]string, 0, len(character.Actions))
	for _, action := range character.Actions {
		names = append(names, action.String())
	}
	return strings.Join(names, ", ")
}

func attributeList() string {
	names := make([]string, 0, len(character.Attributes))
	for _, attr := range character.Attributes {
		names = append(names, attr.String())
	}
	return strings.Join(names, ", ")
}
