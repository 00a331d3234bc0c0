// Package main is the entry point for the Celebration Bot.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"celebration-bot/internal/bot"
	"celebration-bot/internal/config"
	"celebration-bot/internal/game"
	"celebration-bot/internal/game/hangman"
	"celebration-bot/internal/game/numguess"
	"celebration-bot/internal/game/trivia"
	"celebration-bot/internal/game/wordle"
	"celebration-bot/internal/genai"
	"celebration-bot/internal/handler"
	"celebration-bot/internal/opentdb"
	"celebration-bot/internal/pkg/db"
	"celebration-bot/internal/pkg/lock"
	"celebration-bot/internal/repository"
	"celebration-bot/internal/scheduler"
	"celebration-bot/internal/service"
	"celebration-bot/internal/session"
	"celebration-bot/internal/words"
)

func main() {
	// Configure zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load .env before viper reads the environment
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found")
	}

	// Load configuration
	cfg, err := config.Load("config")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	log.Info().Msg("Configuration loaded successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	dbPool, err := db.NewPool(ctx, &cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer dbPool.Close()

	if err := runMigrations(ctx, dbPool); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Initialize repositories
	birthdayRepo := repository.NewBirthdayRepository(dbPool.Pool)
	anniversaryRepo := repository.NewAnniversaryRepository(dbPool.Pool)
	settingsRepo := repository.NewSettingsRepository(dbPool.Pool)

	// Load word pools
	pools, err := words.Load(words.Config{
		AnswersFile: cfg.Games.Wordle.AnswersFile,
		GuessesFile: cfg.Games.Wordle.GuessesFile,
		HangmanFile: cfg.Games.Hangman.WordsFile,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load word lists")
	}

	// External services
	generator := genai.NewClient(genai.Config{
		APIKey:  cfg.Generator.APIKey,
		Model:   cfg.Generator.Model,
		BaseURL: cfg.Generator.BaseURL,
		Timeout: cfg.Generator.Timeout,
	})
	if !generator.Configured() {
		log.Warn().Msg("Text generation API not configured, all callers will use local fallbacks")
	}
	triviaClient := opentdb.NewClient(opentdb.Config{
		BaseURL: cfg.Trivia.BaseURL,
		Timeout: cfg.Trivia.Timeout,
	})

	// Game framework
	sessions := session.NewManager()
	userLock := lock.NewUserLock()
	registry := game.NewRegistry()

	for _, g := range []game.Game{
		wordle.New(pools, sessions, generator, generator),
		numguess.New(sessions, cfg.Games.NumberGuesser.Limit),
		trivia.New(sessions, triviaClient, cfg.Trivia.Questions),
		hangman.New(pools, sessions, generator),
	} {
		if err := registry.Register(g); err != nil {
			log.Fatal().Err(err).Str("game", g.Key()).Msg("Failed to register game")
		}
	}
	router := game.NewRouter(sessions, registry, userLock)

	log.Info().
		Int("game_count", registry.Count()).
		Strs("games", registry.Keys()).
		Msg("Games registered")

	// Telegram bot and messenger
	teleBot, err := bot.NewTelebot(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create bot")
	}
	messenger := bot.NewMessenger(teleBot)

	// Services
	celebrationService := service.NewCelebrationService(
		birthdayRepo,
		anniversaryRepo,
		settingsRepo,
		generator,
		messenger,
		messenger,
		router,
		messenger,
	)
	dateService := service.NewDateService(birthdayRepo, cfg.Announce.DateFormat)

	// Schedule the announcement jobs from persisted settings
	sched := scheduler.New()
	defer sched.Stop()
	if err := celebrationService.Reschedule(ctx, sched); err != nil {
		log.Fatal().Err(err).Msg("Failed to schedule announcement jobs")
	}

	// Wire the bot
	celebrationBot := bot.New(teleBot, &bot.Dependencies{
		Config:             cfg,
		DMHandler:          handler.NewDMHandler(router, dateService, messenger),
		CelebrationHandler: handler.NewCelebrationHandler(birthdayRepo, anniversaryRepo, dateService),
		SettingsHandler:    handler.NewSettingsHandler(settingsRepo, celebrationService, sched, cfg.Announce.DefaultTime),
		GameHandler:        handler.NewGameHandler(registry, router, celebrationService, messenger),
	})

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info().Msg("Bot is starting...")
		celebrationBot.Start()
	}()

	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

	celebrationBot.Stop()
	log.Info().Msg("Bot stopped gracefully")
}

// runMigrations executes database migrations.
func runMigrations(ctx context.Context, pool *db.Pool) error {
	log.Info().Msg("Running database migrations...")

	// Migration 1: birthdays table
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS birthdays (
			user_id BIGINT PRIMARY KEY,
			month_day CHAR(5) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_birthdays_month_day ON birthdays(month_day);
	`)
	if err != nil {
		return err
	}

	// Migration 2: anniversaries table
	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS anniversaries (
			user_id BIGINT PRIMARY KEY,
			start_date DATE NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`)
	if err != nil {
		return err
	}

	// Migration 3: settings tables
	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS announce_settings (
			kind VARCHAR(20) PRIMARY KEY,
			chat_id BIGINT NOT NULL,
			announce_time CHAR(5) NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE TABLE IF NOT EXISTS game_settings (
			id SMALLINT PRIMARY KEY,
			enabled BOOLEAN NOT NULL DEFAULT FALSE,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`)
	if err != nil {
		return err
	}

	log.Info().Msg("Database migrations complete")
	return nil
}
