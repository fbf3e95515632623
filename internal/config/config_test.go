package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("TRADER_ADDRESSES", "0x56687bf447db6ffa42ffe2204a05edaa20f55839, 0x8888888888888888888888888888888888888888")
	t.Setenv("WALLET_ADDRESS", "0xaaaabbbbccccddddeeeeffff0000111122223333")
	t.Setenv("TELEGRAM_CHAT_ID", "12345")
	t.Setenv("DRY_RUN", "false")

	cfg, err := Load()
	require.NoError(t, err)

	require.Len(t, cfg.TraderAddresses, 2)
	// Addresses come back normalized (checksummed, whitespace trimmed).
	assert.Equal(t, "0x56687bf447db6ffa42ffe2204a05edaa20f55839", strings.ToLower(cfg.TraderAddresses[0]))
	assert.Equal(t, "0x8888888888888888888888888888888888888888", strings.ToLower(cfg.TraderAddresses[1]))
	assert.Equal(t, int64(12345), cfg.TelegramChatID)
	assert.False(t, cfg.DryRun)
	assert.Equal(t, "logs", cfg.LogsDir)
	assert.Equal(t, "data/polycopy.db", cfg.DatabasePath)
}

func TestLoadRequiresTraders(t *testing.T) {
	t.Setenv("TRADER_ADDRESSES", "")
	t.Setenv("WALLET_ADDRESS", "0xaaaabbbbccccddddeeeeffff0000111122223333")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TRADER_ADDRESSES")
}

func TestLoadRejectsBadAddress(t *testing.T) {
	t.Setenv("TRADER_ADDRESSES", "not-an-address")
	t.Setenv("WALLET_ADDRESS", "0xaaaabbbbccccddddeeeeffff0000111122223333")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid trader address")
}

func TestLoadRejectsBadChatID(t *testing.T) {
	t.Setenv("TRADER_ADDRESSES", "0x56687bf447db6ffa42ffe2204a05edaa20f55839")
	t.Setenv("WALLET_ADDRESS", "0xaaaabbbbccccddddeeeeffff0000111122223333")
	t.Setenv("TELEGRAM_CHAT_ID", "abc")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TELEGRAM_CHAT_ID")
}
