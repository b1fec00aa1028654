package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/KirkDiggler/scum-bot-discord/internal/config"
	"github.com/KirkDiggler/scum-bot-discord/internal/domain/character"
	"github.com/KirkDiggler/scum-bot-discord/internal/observability"
	"github.com/KirkDiggler/scum-bot-discord/internal/services"
)

type attributeView struct {
	Name   string `json:"name"`
	Rating int    `json:"rating"`
}

type sheetView struct {
	*character.Character
	Attributes []attributeView `json:"attributes"`
}

func main() {
	var channelID, userID string
	flag.StringVar(&channelID, "channel", "", "Discord channel ID")
	flag.StringVar(&userID, "user", "", "Discord user ID")
	flag.Parse()

	if channelID == "" || userID == "" {
		fmt.Fprintln(os.Stderr, "Usage: show-character -channel <channel-id> -user <user-id>")
		os.Exit(2)
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := observability.NewLogger("warn")
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	repo, closeRepo, err := services.OpenCharacterRepository(ctx, &cfg.Storage, logger)
	if err != nil {
		log.Fatalf("Failed to open character storage: %v", err)
	}
	defer func() { _ = closeRepo() }()

	provider := services.NewProvider(&services.ProviderConfig{
		CharacterRepository: repo,
		Logger:              logger,
	})

	key := character.Key{ChannelID: channelID, UserID: userID}
	char, err := provider.LedgerService.Show(ctx, key)
	if err != nil {
		log.Fatalf("Failed to load character %s: %v", key, err)
	}

	view := sheetView{Character: char}
	for _, attr := range character.Attributes {
		view.Attributes = append(view.Attributes, attributeView{
			Name:   attr.String(),
			Rating: char.AttributeRating(attr),
		})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(view); err != nil {
		log.Fatalf("Failed to encode character: %v", err)
	}
}
