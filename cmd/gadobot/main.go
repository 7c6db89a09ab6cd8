package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/gadobot/gadobot/internal/biz"
	"github.com/gadobot/gadobot/internal/conf"
	"github.com/gadobot/gadobot/internal/data"
	"github.com/gadobot/gadobot/internal/server"
	"github.com/gadobot/gadobot/internal/service"
)

// version is stamped at build time via -ldflags.
var version = "dev"

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := conf.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	// Connect to Telegram
	bot, err := data.NewTelegramBot(cfg.Bot.Token)
	if err != nil {
		log.Fatalf("Failed to connect to Telegram: %v", err)
	}
	fmt.Printf("[GadoBot] Authorized as @%s\n", bot.GetSelf().UserName)

	// Initialize repository layer
	repos, err := data.NewRepositories(cfg.DB.Path, bot, cfg.Bot.Token)
	if err != nil {
		log.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()
	fmt.Printf("[GadoBot] DB: %s\n", cfg.DB.Path)

	// Initialize usecase layer
	ucs := biz.NewUsecases(repos.Rules, repos.Moderation, repos.Transport)

	// Initialize service layer
	svc := service.NewCommandService(
		ucs.Rules, ucs.Matcher, ucs.Moderation, ucs.Backup, ucs.Responder,
		repos.Chats, repos.Transport, cfg.Locales, cfg.Bot.AdminIDs, version,
	)

	// Initialize server
	srv := server.NewTelegramServer(bot, svc)

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Println("\nShutting down...")
		srv.Stop()
	}()

	fmt.Printf("Starting GadoBot %s...\n", version)
	if err := srv.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
