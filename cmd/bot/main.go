package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/scum-bot-discord/internal/config"
	"github.com/KirkDiggler/scum-bot-discord/internal/handlers/discord"
	"github.com/KirkDiggler/scum-bot-discord/internal/health"
	"github.com/KirkDiggler/scum-bot-discord/internal/observability"
	"github.com/KirkDiggler/scum-bot-discord/internal/services"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load .env file
	envErr := godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.ValidateDiscord(); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if envErr != nil {
		logger.Info("no .env file found")
	}

	if err := run(cfg, logger); err != nil {
		logger.Fatal("bot stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	shutdownTracing, err := observability.SetupTracing(ctx, cfg.Tracing.Endpoint, observability.ServiceName)
	if err != nil {
		return fmt.Errorf("failed to set up tracing: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Warn("failed to flush traces", zap.Error(err))
		}
	}()

	repo, closeRepo, err := services.OpenCharacterRepository(ctx, &cfg.Storage, logger)
	if err != nil {
		return fmt.Errorf("failed to open character storage: %w", err)
	}
	defer func() {
		if err := closeRepo(); err != nil {
			logger.Warn("failed to close character storage", zap.Error(err))
		}
	}()

	serviceProvider := services.NewProvider(&services.ProviderConfig{
		CharacterRepository: repo,
		Logger:              logger,
	})

	handler := discord.NewHandler(&discord.HandlerConfig{
		CommandService: serviceProvider.CommandService,
		Logger:         logger,
	})

	dg, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		return fmt.Errorf("failed to create Discord session: %w", err)
	}
	dg.AddHandler(discord.RecoverMiddleware(logger, "interaction", handler.HandleInteraction))

	if err := dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}
	defer func() {
		if err := dg.Close(); err != nil {
			logger.Warn("failed to close Discord connection", zap.Error(err))
		}
	}()

	// Use empty string for global commands, or set a specific guild ID for testing
	if err := handler.RegisterCommands(dg, cfg.Discord.AppID, cfg.Discord.GuildID); err != nil {
		return err
	}
	if cfg.Discord.GuildID == "" {
		logger.Info("registered global commands (may take up to 1 hour to propagate)")
	}

	g, gctx := errgroup.WithContext(ctx)

	if cfg.Health.Addr != "" {
		srv := health.NewServer(cfg.Health.Addr, health.NewRouter(
			health.Check{Name: "storage", Pinger: repo},
		))
		g.Go(func() error {
			logger.Info("health server listening", zap.String("addr", cfg.Health.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("health server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	logger.Info("bot is now running, press CTRL-C to exit")

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		return nil
	})

	return g.Wait()
}
