package bot

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	tele "gopkg.in/telebot.v3"

	"celebration-bot/internal/config"
	"celebration-bot/internal/handler"
)

// Bot wraps the telebot instance with application dependencies.
type Bot struct {
	bot *tele.Bot
	cfg *config.Config

	dmHandler          *handler.DMHandler
	celebrationHandler *handler.CelebrationHandler
	settingsHandler    *handler.SettingsHandler
	gameHandler        *handler.GameHandler
}

// Dependencies holds the handlers the bot routes to.
type Dependencies struct {
	Config             *config.Config
	DMHandler          *handler.DMHandler
	CelebrationHandler *handler.CelebrationHandler
	SettingsHandler    *handler.SettingsHandler
	GameHandler        *handler.GameHandler
}

// NewTelebot creates the underlying telebot instance.
func NewTelebot(cfg *config.Config) (*tele.Bot, error) {
	if cfg.Bot.Token == "" {
		return nil, fmt.Errorf("bot token is required")
	}

	pref := tele.Settings{
		Token:  cfg.Bot.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	teleBot, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}
	return teleBot, nil
}

// New wires the handlers onto an existing telebot instance.
func New(teleBot *tele.Bot, deps *Dependencies) *Bot {
	b := &Bot{
		bot:                teleBot,
		cfg:                deps.Config,
		dmHandler:          deps.DMHandler,
		celebrationHandler: deps.CelebrationHandler,
		settingsHandler:    deps.SettingsHandler,
		gameHandler:        deps.GameHandler,
	}

	b.registerMiddleware()
	b.registerHandlers()

	return b
}

// registerMiddleware registers all middleware.
func (b *Bot) registerMiddleware() {
	b.bot.Use(RecoveryMiddleware())
	b.bot.Use(LoggingMiddleware())
}

// registerHandlers registers all command and message handlers.
func (b *Bot) registerHandlers() {
	b.bot.Handle("/start", b.dmHandler.HandleStart)
	b.bot.Handle("/help", b.gameHandler.HandleHelp)

	// Admin commands
	adminGroup := b.bot.Group()
	adminGroup.Use(AdminMiddleware(b.cfg))
	adminGroup.Handle("/setup_birthdays", b.settingsHandler.HandleSetupBirthdays)
	adminGroup.Handle("/setup_anniversaries", b.settingsHandler.HandleSetupAnniversaries)
	adminGroup.Handle("/set_game", b.settingsHandler.HandleSetGame)
	adminGroup.Handle("/reset_bot", b.settingsHandler.HandleReset)
	adminGroup.Handle("/set_birthday", b.celebrationHandler.HandleSetBirthday)
	adminGroup.Handle("/set_anniversary", b.celebrationHandler.HandleSetAnniversary)
	adminGroup.Handle("/delete_birthday", b.celebrationHandler.HandleDeleteBirthday)
	adminGroup.Handle("/delete_anniversary", b.celebrationHandler.HandleDeleteAnniversary)
	adminGroup.Handle("/list_birthdays", b.celebrationHandler.HandleListBirthdays)
	adminGroup.Handle("/list_anniversaries", b.celebrationHandler.HandleListAnniversaries)
	adminGroup.Handle("/test_game", b.gameHandler.HandleTestGame)
	adminGroup.Handle("/test_birthday", b.gameHandler.HandleTestBirthday)
	adminGroup.Handle("/test_anniversary", b.gameHandler.HandleTestAnniversary)

	// Free text: game moves and birthday submissions
	b.bot.Handle(tele.OnText, b.dmHandler.HandleText)
}

// Start starts the bot polling.
func (b *Bot) Start() {
	log.Info().Msg("Starting bot...")
	b.bot.Start()
}

// Stop stops the bot gracefully.
func (b *Bot) Stop() {
	log.Info().Msg("Stopping bot...")
	b.bot.Stop()
}
