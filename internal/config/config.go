package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Config holds all configuration for the bot
type Config struct {
	// Tracked traders
	TraderAddresses []string

	// Wallet
	WalletAddress string

	// Telegram
	TelegramToken  string
	TelegramChatID int64

	// Mode
	DryRun bool
	Debug  bool

	// Polymarket API
	PolymarketWSURL string

	// Display
	LogsDir string

	// Database
	DatabasePath string
	DatabaseURL  string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		WalletAddress: os.Getenv("WALLET_ADDRESS"),

		TelegramToken: os.Getenv("TELEGRAM_BOT_TOKEN"),

		DryRun: getEnvBool("DRY_RUN", true),
		Debug:  getEnvBool("DEBUG", false),

		PolymarketWSURL: getEnv("POLYMARKET_WS_URL", "wss://ws-live-data.polymarket.com"),

		LogsDir: getEnv("LOGS_DIR", "logs"),

		DatabasePath: getEnv("DATABASE_PATH", "data/polycopy.db"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
	}

	// Parse chat ID
	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		cfg.TelegramChatID = id
	}

	// Parse and validate tracked traders
	traders, err := parseAddressList(os.Getenv("TRADER_ADDRESSES"))
	if err != nil {
		return nil, err
	}
	cfg.TraderAddresses = traders

	// Validate required fields
	if len(cfg.TraderAddresses) == 0 {
		return nil, fmt.Errorf("TRADER_ADDRESSES is required")
	}
	if cfg.WalletAddress == "" {
		return nil, fmt.Errorf("WALLET_ADDRESS is required")
	}
	if !common.IsHexAddress(cfg.WalletAddress) {
		return nil, fmt.Errorf("invalid WALLET_ADDRESS: %q", cfg.WalletAddress)
	}

	return cfg, nil
}

// parseAddressList splits a comma-separated address list, validating and
// normalizing each entry to its checksummed form.
func parseAddressList(raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}

	var addresses []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if !common.IsHexAddress(part) {
			return nil, fmt.Errorf("invalid trader address: %q", part)
		}
		addresses = append(addresses, common.HexToAddress(part).Hex())
	}
	return addresses, nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}
