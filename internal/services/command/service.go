// Package command turns already parsed chat intents into ledger reads, adjustments and dice rolls
package command

//go:generate mockgen -destination=mock/mock_service.go -package=mockcommand -source=service.go

import (
	"context"
	"errors"

	"github.com/KirkDiggler/scum-bot-discord/internal/dice"
	"github.com/KirkDiggler/scum-bot-discord/internal/domain/character"
	dnderr "github.com/KirkDiggler/scum-bot-discord/internal/errors"
	"github.com/KirkDiggler/scum-bot-discord/internal/observability"
	"github.com/KirkDiggler/scum-bot-discord/internal/services/ledger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "github.com/KirkDiggler/scum-bot-discord/internal/services/command"

// Service executes chat intents
type Service interface {
	// Roll rolls the character's rating in an action plus any bonus dice
	Roll(ctx context.Context, input *RollInput) (*RollOutput, error)

	// Adjust changes an action rating by delta, clamped
	Adjust(ctx context.Context, input *AdjustInput) (*AdjustOutput, error)

	// Show returns every rating and the derived attribute ratings
	Show(ctx context.Context, input *ShowInput) (*ShowOutput, error)

	// Resist rolls a resistance roll on an attribute
	Resist(ctx context.Context, input *ResistInput) (*RollOutput, error)

	// RollDice rolls a plain pool of Count dice without touching any character
	RollDice(ctx context.Context, input *RollDiceInput) (*RollOutput, error)
}

// RollInput asks for an action roll
type RollInput struct {
	Key       character.Key
	Action    string
	BonusDice int // Optional, must not be negative
}

// ResistInput asks for a resistance roll
type ResistInput struct {
	Key       character.Key
	Attribute string
}

// RollDiceInput asks for a plain dice pool
type RollDiceInput struct {
	Count int
}

// RollKind says what a roll was made against
type RollKind int

const (
	RollKindAction RollKind = iota
	RollKindResistance
	RollKindDice
)

// RollOutput is a resolved roll and what it was rolled for
type RollOutput struct {
	Kind RollKind
	Key  character.Key
	// Name is the action or attribute rolled, empty for plain dice
	Name      string
	Rating    int
	BonusDice int
	Outcome   *dice.Outcome
}

// AdjustInput asks to change one action rating
type AdjustInput struct {
	Key    character.Key
	Action string
	Delta  int
}

// AdjustOutput holds the rating after the change
type AdjustOutput struct {
	Key    character.Key
	Action character.Action
	Delta  int
	Value  int
}

// ShowInput asks for a character sheet
type ShowInput struct {
	Key character.Key
}

// ShowOutput is a character sheet snapshot
type ShowOutput struct {
	Character  *character.Character
	Attributes map[character.Attribute]int
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Ledger         ledger.Service       // Required
	Roller         dice.Roller          // Optional, defaults to a random roller
	Logger         *zap.Logger          // Optional, defaults to a no-op logger
	TracerProvider trace.TracerProvider // Optional, defaults to the global provider
}

type service struct {
	ledger ledger.Service
	roller dice.Roller
	logger *zap.Logger
	tracer trace.Tracer
}

// NewService creates a new command service
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil {
		panic("ServiceConfig cannot be nil")
	}
	if cfg.Ledger == nil {
		panic("ledger service is required")
	}

	roller := cfg.Roller
	if roller == nil {
		roller = dice.NewRandomRoller()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	provider := cfg.TracerProvider
	if provider == nil {
		provider = otel.GetTracerProvider()
	}

	return &service{
		ledger: cfg.Ledger,
		roller: roller,
		logger: logger.Named("command"),
		tracer: provider.Tracer(tracerName),
	}
}

// Roll reads the action rating and rolls it
func (s *service) Roll(ctx context.Context, input *RollInput) (out *RollOutput, err error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input cannot be nil")
	}

	ctx, span := s.start(ctx, "command.Roll", input.Key,
		attribute.String("action", input.Action),
		attribute.Int("bonus_dice", input.BonusDice),
	)
	defer func() { s.finish(ctx, span, "roll", err) }()

	if input.BonusDice < 0 {
		return nil, dnderr.InvalidArgumentf("bonus dice cannot be negative, got %d", input.BonusDice)
	}
	if input.BonusDice > dice.MaxDice {
		return nil, dnderr.InvalidArgumentf("must roll no more than %d dice", dice.MaxDice)
	}

	action, err := character.ParseAction(input.Action)
	if err != nil {
		return nil, err
	}

	rating, err := s.ledger.GetRating(ctx, input.Key, action.String())
	if err != nil {
		return nil, err
	}

	outcome, err := s.rollPool(rating + input.BonusDice)
	if err != nil {
		return nil, err
	}

	return &RollOutput{
		Kind:      RollKindAction,
		Key:       input.Key,
		Name:      action.String(),
		Rating:    rating,
		BonusDice: input.BonusDice,
		Outcome:   outcome,
	}, nil
}

// Adjust changes a rating through the ledger
func (s *service) Adjust(ctx context.Context, input *AdjustInput) (out *AdjustOutput, err error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input cannot be nil")
	}

	ctx, span := s.start(ctx, "command.Adjust", input.Key,
		attribute.String("action", input.Action),
		attribute.Int("delta", input.Delta),
	)
	defer func() { s.finish(ctx, span, "adjust", err) }()

	action, err := character.ParseAction(input.Action)
	if err != nil {
		return nil, err
	}

	value, err := s.ledger.Adjust(ctx, input.Key, action.String(), input.Delta)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("value", value))

	return &AdjustOutput{
		Key:    input.Key,
		Action: action,
		Delta:  input.Delta,
		Value:  value,
	}, nil
}

// Show returns a snapshot of the sheet with attribute ratings derived from it
func (s *service) Show(ctx context.Context, input *ShowInput) (out *ShowOutput, err error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input cannot be nil")
	}

	ctx, span := s.start(ctx, "command.Show", input.Key)
	defer func() { s.finish(ctx, span, "show", err) }()

	char, err := s.ledger.Show(ctx, input.Key)
	if err != nil {
		return nil, err
	}

	attributes := make(map[character.Attribute]int, len(character.Attributes))
	for _, attr := range character.Attributes {
		attributes[attr] = char.AttributeRating(attr)
	}

	return &ShowOutput{
		Character:  char,
		Attributes: attributes,
	}, nil
}

// Resist rolls the attribute rating
func (s *service) Resist(ctx context.Context, input *ResistInput) (out *RollOutput, err error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input cannot be nil")
	}

	ctx, span := s.start(ctx, "command.Resist", input.Key,
		attribute.String("attribute", input.Attribute),
	)
	defer func() { s.finish(ctx, span, "resist", err) }()

	attr, err := character.ParseAttribute(input.Attribute)
	if err != nil {
		return nil, err
	}

	rating, err := s.ledger.GetAttributeRating(ctx, input.Key, attr.String())
	if err != nil {
		return nil, err
	}

	outcome, err := s.rollPool(rating)
	if err != nil {
		return nil, err
	}

	return &RollOutput{
		Kind:    RollKindResistance,
		Key:     input.Key,
		Name:    attr.String(),
		Rating:  rating,
		Outcome: outcome,
	}, nil
}

// RollDice rolls a bare pool
func (s *service) RollDice(ctx context.Context, input *RollDiceInput) (out *RollOutput, err error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input cannot be nil")
	}

	ctx, span := s.start(ctx, "command.RollDice", character.Key{},
		attribute.Int("count", input.Count),
	)
	defer func() { s.finish(ctx, span, "dice", err) }()

	if input.Count < 0 {
		return nil, dnderr.InvalidArgumentf("dice count cannot be negative, got %d", input.Count)
	}

	outcome, err := s.rollPool(input.Count)
	if err != nil {
		return nil, err
	}

	return &RollOutput{
		Kind:    RollKindDice,
		Rating:  input.Count,
		Outcome: outcome,
	}, nil
}

func (s *service) rollPool(pool int) (*dice.Outcome, error) {
	outcome, err := dice.RollPool(pool, s.roller)
	if errors.Is(err, dice.ErrTooManyDice) {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeInvalidArgument, "dice pool too large").
			WithMeta("pool", pool)
	}
	if err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeInternal, "failed to roll dice")
	}
	return outcome, nil
}

func (s *service) start(ctx context.Context, name string, key character.Key, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if key != (character.Key{}) {
		attrs = append(attrs,
			attribute.String("channel_id", key.ChannelID),
			attribute.String("user_id", key.UserID),
		)
	}
	return s.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// finish ends the span and logs the intent. Caller mistakes are logged at debug,
// everything else at warn or error.
func (s *service) finish(ctx context.Context, span trace.Span, intent string, err error) {
	defer span.End()

	logger := observability.WithContextLogger(s.logger, ctx).With(zap.String("intent", intent))
	if err == nil {
		logger.Debug("intent handled")
		return
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	switch dnderr.GetCode(err) {
	case dnderr.CodeUnknownAttribute, dnderr.CodeInvalidArgument:
		logger.Debug("intent rejected", zap.Error(err))
	case dnderr.CodeStorage:
		logger.Error("intent failed on storage", zap.Error(err))
	default:
		logger.Warn("intent failed", zap.Error(err))
	}
}
