// Copybot - Copy-trading companion for Polymarket
//
// Watches a set of trader wallets on the Polymarket live-data feed and
// mirrors their activity: every detected trade is rendered to the console,
// persisted, and optionally forwarded to Telegram.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/web3guy0/polycopy/bot"
	"github.com/web3guy0/polycopy/display"
	"github.com/web3guy0/polycopy/feeds"
	"github.com/web3guy0/polycopy/internal/config"
	"github.com/web3guy0/polycopy/storage"
)

const spinnerTick = 2 * time.Second

func main() {
	// Setup logging
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	// Load environment
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found, using environment variables")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	disp := display.NewAt(cfg.LogsDir)
	disp.Startup(cfg.TraderAddresses, cfg.WalletAddress)

	// Connect storage
	db, err := storage.Open(cfg.DatabasePath, cfg.DatabaseURL)
	if err != nil {
		disp.Error("Database connection failed: " + err.Error())
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer db.Close()

	counts, err := db.CountsByTrader(cfg.TraderAddresses)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to load trade counts")
	}
	disp.DBConnection(cfg.TraderAddresses, counts)

	// Telegram notifications
	notifier, err := bot.NewNotifier(cfg.TelegramToken, cfg.TelegramChatID)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to init Telegram notifier")
	}

	// Live trade feed
	feed := feeds.NewUserFeed(cfg.PolymarketWSURL, cfg.TraderAddresses)
	events := feed.Subscribe()
	feed.Start()
	defer feed.Stop()

	disp.Success(fmt.Sprintf("Watching %d trader(s)", len(cfg.TraderAddresses)))
	if cfg.DryRun {
		disp.Warning("DRY_RUN enabled, orders will not be placed")
	}
	disp.Separator()

	// Shutdown handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(spinnerTick)
	defer ticker.Stop()

	for {
		select {
		case <-sigCh:
			disp.ClearLine()
			disp.Info("Shutting down...")
			return

		case ev := <-events:
			disp.ClearLine()
			disp.Trade(ev.Trader, ev.Action, ev.Details)
			if err := db.SaveTrade(ev); err == nil {
				disp.Success("Trade recorded")
			}
			notifier.NotifyTrade(ev)

		case <-ticker.C:
			disp.Waiting(len(cfg.TraderAddresses), "")
		}
	}
}
