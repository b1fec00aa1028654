package services

import (
	"github.com/KirkDiggler/scum-bot-discord/internal/dice"
	"github.com/KirkDiggler/scum-bot-discord/internal/repositories/characters"
	"github.com/KirkDiggler/scum-bot-discord/internal/services/command"
	"github.com/KirkDiggler/scum-bot-discord/internal/services/ledger"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Provider holds all service instances
type Provider struct {
	CharacterRepository characters.Repository
	LedgerService       ledger.Service
	CommandService      command.Service
}

// ProviderConfig holds configuration for creating services
type ProviderConfig struct {
	CharacterRepository characters.Repository
	Roller              dice.Roller
	Logger              *zap.Logger
	TracerProvider      trace.TracerProvider
}

// NewProvider creates a new service provider with all services initialized
func NewProvider(cfg *ProviderConfig) *Provider {
	if cfg == nil {
		cfg = &ProviderConfig{}
	}

	// Use in-memory repository if none provided
	charRepo := cfg.CharacterRepository
	if charRepo == nil {
		charRepo = characters.NewInMemoryRepository()
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	ledgerService := ledger.NewService(&ledger.ServiceConfig{
		Repository: charRepo,
		Logger:     logger,
	})

	commandService := command.NewService(&command.ServiceConfig{
		Ledger:         ledgerService,
		Roller:         cfg.Roller,
		Logger:         logger,
		TracerProvider: cfg.TracerProvider,
	})

	return &Provider{
		CharacterRepository: charRepo,
		LedgerService:       ledgerService,
		CommandService:      commandService,
	}
}
