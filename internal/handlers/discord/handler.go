// Package discord adapts Discord slash commands to the command service
package discord

import (
	"context"
	"fmt"

	"github.com/KirkDiggler/scum-bot-discord/internal/dice"
	"github.com/KirkDiggler/scum-bot-discord/internal/domain/character"
	dnderr "github.com/KirkDiggler/scum-bot-discord/internal/errors"
	"github.com/KirkDiggler/scum-bot-discord/internal/observability"
	"github.com/KirkDiggler/scum-bot-discord/internal/services/command"
	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// CommandName is the top level slash command
const CommandName = "sv"

const (
	subcommandRoll   = "roll"
	subcommandResist = "resist"
	subcommandDice   = "dice"
	subcommandAdjust = "adjust"
	subcommandShow   = "show"
	subcommandHelp   = "help"
)

// Handler handles all Discord interactions
type Handler struct {
	commands command.Service
	logger   *zap.Logger
}

// HandlerConfig holds configuration for the Discord handler
type HandlerConfig struct {
	CommandService command.Service // Required
	Logger         *zap.Logger     // Optional, defaults to a no-op logger
}

// NewHandler creates a new Discord handler
func NewHandler(cfg *HandlerConfig) *Handler {
	if cfg == nil || cfg.CommandService == nil {
		panic("command service is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Handler{
		commands: cfg.CommandService,
		logger:   logger.Named("discord"),
	}
}

// Commands describes the slash commands the bot registers
func Commands() []*discordgo.ApplicationCommand {
	minZero := float64(0)
	maxDice := float64(dice.MaxDice)

	actionChoices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(character.Actions))
	for _, action := range character.Actions {
		actionChoices = append(actionChoices, &discordgo.ApplicationCommandOptionChoice{
			Name:  titleCaser.String(action.String()),
			Value: action.String(),
		})
	}
	attributeChoices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(character.Attributes))
	for _, attr := range character.Attributes {
		attributeChoices = append(attributeChoices, &discordgo.ApplicationCommandOptionChoice{
			Name:  titleCaser.String(attr.String()),
			Value: attr.String(),
		})
	}

	return []*discordgo.ApplicationCommand{
		{
			Name:        CommandName,
			Description: "Scum and Villainy rolls and action ratings",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        subcommandRoll,
					Description: "Roll an action",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Name:        "action",
							Description: "Action to roll",
							Type:        discordgo.ApplicationCommandOptionString,
							Required:    true,
							Choices:     actionChoices,
						},
						{
							Name:        "bonus",
							Description: "Bonus dice to add to the pool",
							Type:        discordgo.ApplicationCommandOptionInteger,
							MinValue:    &minZero,
							MaxValue:    maxDice,
						},
					},
				},
				{
					Name:        subcommandResist,
					Description: "Roll a resistance roll",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Name:        "attribute",
							Description: "Attribute to resist with",
							Type:        discordgo.ApplicationCommandOptionString,
							Required:    true,
							Choices:     attributeChoices,
						},
					},
				},
				{
					Name:        subcommandDice,
					Description: "Roll a number of dice",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Name:        "count",
							Description: "How many dice",
							Type:        discordgo.ApplicationCommandOptionInteger,
							Required:    true,
							MinValue:    &minZero,
							MaxValue:    maxDice,
						},
					},
				},
				{
					Name:        subcommandAdjust,
					Description: "Raise or lower an action rating",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Name:        "action",
							Description: "Action to change",
							Type:        discordgo.ApplicationCommandOptionString,
							Required:    true,
							Choices:     actionChoices,
						},
						{
							Name:        "delta",
							Description: "Amount to add, negative to lower",
							Type:        discordgo.ApplicationCommandOptionInteger,
							Required:    true,
						},
					},
				},
				{
					Name:        subcommandShow,
					Description: "Show your action ratings",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
				},
				{
					Name:        subcommandHelp,
					Description: "Show example commands",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
				},
			},
		},
	}
}

// RegisterCommands registers all slash commands with Discord
func (h *Handler) RegisterCommands(s *discordgo.Session, appID, guildID string) error {
	for _, cmd := range Commands() {
		if _, err := s.ApplicationCommandCreate(appID, guildID, cmd); err != nil {
			return fmt.Errorf("failed to create command %s: %w", cmd.Name, err)
		}
		h.logger.Info("registered command", zap.String("command", cmd.Name), zap.String("guild_id", guildID))
	}
	return nil
}

// HandleInteraction handles all Discord interactions
func (h *Handler) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	data := i.ApplicationCommandData()
	if data.Name != CommandName || len(data.Options) == 0 {
		return
	}

	ctx := observability.WithCorrelationID(context.Background(), i.ID)
	logger := observability.WithContextLogger(h.logger, ctx)

	user := interactionUser(i)
	if user == nil {
		logger.Warn("interaction without a user")
		return
	}
	key := character.Key{ChannelID: i.ChannelID, UserID: user.ID}

	sub := data.Options[0]
	logger.Debug("received interaction",
		zap.String("subcommand", sub.Name),
		zap.String("channel_id", key.ChannelID),
		zap.String("user_id", key.UserID),
	)

	reply, err := h.Execute(ctx, key, sub)
	if err != nil {
		if dnderr.IsStorage(err) || dnderr.GetCode(err) == dnderr.CodeInternal {
			logger.Error("command failed", zap.String("subcommand", sub.Name), zap.Error(err))
		}
		reply = RenderError(err)
	}
	if reply.Content != "" && !reply.Ephemeral && sub.Name != subcommandHelp {
		reply.Content = fmt.Sprintf("<@%s> %s", user.ID, reply.Content)
	}
	if sub.Name == subcommandShow && reply.Embeds != nil {
		reply.Embeds[0].Title = fmt.Sprintf("%s's character sheet", user.Username)
	}

	if err := respond(s, i, reply); err != nil {
		logger.Error("failed to send response", zap.String("subcommand", sub.Name), zap.Error(err))
	}
}

// Execute runs one subcommand for a character and builds the reply
func (h *Handler) Execute(ctx context.Context, key character.Key, sub *discordgo.ApplicationCommandInteractionDataOption) (Reply, error) {
	options := optionMap(sub.Options)

	switch sub.Name {
	case subcommandRoll:
		out, err := h.commands.Roll(ctx, &command.RollInput{
			Key:       key,
			Action:    stringOption(options, "action"),
			BonusDice: intOption(options, "bonus"),
		})
		if err != nil {
			return Reply{}, err
		}
		return Reply{Content: RenderRoll(out)}, nil

	case subcommandResist:
		out, err := h.commands.Resist(ctx, &command.ResistInput{
			Key:       key,
			Attribute: stringOption(options, "attribute"),
		})
		if err != nil {
			return Reply{}, err
		}
		return Reply{Content: RenderRoll(out)}, nil

	case subcommandDice:
		out, err := h.commands.RollDice(ctx, &command.RollDiceInput{
			Count: intOption(options, "count"),
		})
		if err != nil {
			return Reply{}, err
		}
		return Reply{Content: RenderRoll(out)}, nil

	case subcommandAdjust:
		out, err := h.commands.Adjust(ctx, &command.AdjustInput{
			Key:    key,
			Action: stringOption(options, "action"),
			Delta:  intOption(options, "delta"),
		})
		if err != nil {
			return Reply{}, err
		}
		return Reply{Content: RenderAdjust(out)}, nil

	case subcommandShow:
		out, err := h.commands.Show(ctx, &command.ShowInput{Key: key})
		if err != nil {
			return Reply{}, err
		}
		return Reply{Embeds: []*discordgo.MessageEmbed{RenderSheet("", out)}, Ephemeral: true}, nil

	case subcommandHelp:
		return Reply{Content: RenderHelp(), Ephemeral: true}, nil
	}

	return Reply{}, dnderr.InvalidArgumentf("unknown subcommand %q", sub.Name)
}

func respond(s *discordgo.Session, i *discordgo.InteractionCreate, reply Reply) error {
	data := &discordgo.InteractionResponseData{
		Content: reply.Content,
		Embeds:  reply.Embeds,
	}
	if reply.Ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
}

// interactionUser returns the invoking user in guilds and in DMs
func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

func optionMap(options []*discordgo.ApplicationCommandInteractionDataOption) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	byName := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		byName[opt.Name] = opt
	}
	return byName
}

func stringOption(options map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	opt, ok := options[name]
	if !ok || opt.Type != discordgo.ApplicationCommandOptionString {
		return ""
	}
	return opt.StringValue()
}

func intOption(options map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) int {
	opt, ok := options[name]
	if !ok || opt.Type != discordgo.ApplicationCommandOptionInteger {
		return 0
	}
	return int(opt.IntValue())
}
