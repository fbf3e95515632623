package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/web3guy0/polycopy/types"
)

const (
	traderA = "0x56687bf447db6ffa42ffe2204a05edaa20f55839"
	traderB = "0x8888888888888888888888888888888888888888"
)

func openTestDB(t *testing.T) *Database {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "nested", "test.db"), "")
	require.NoError(t, err)
	t.Cleanup(db.Close)
	return db
}

func event(trader string, amount float64) types.TradeEvent {
	return types.TradeEvent{
		Trader: trader,
		Action: "TRADE",
		Details: types.TradeDetails{
			Side:      "BUY",
			Amount:    decimal.NewFromFloat(amount),
			Price:     decimal.NewFromFloat(0.45),
			Title:     "Will BTC close above 100k?",
			EventSlug: "btc-above-100k",
		},
		Timestamp: time.Now(),
	}
}

func TestSaveAndCount(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.SaveTrade(event(traderA, 100)))
	require.NoError(t, db.SaveTrade(event(traderA, 50)))
	require.NoError(t, db.SaveTrade(event(traderB, 25)))

	counts, err := db.CountsByTrader([]string{traderA, traderB})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1}, counts)
}

func TestCountsCaseInsensitive(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.SaveTrade(event(traderA, 100)))

	// Checksummed lookup still matches the lowercased stored row.
	counts, err := db.CountsByTrader([]string{"0x56687bF447dB6fFa42FFe2204a05EdAa20F55839"})
	require.NoError(t, err)
	assert.Equal(t, []int{1}, counts)
}

func TestCountsForUnknownTrader(t *testing.T) {
	db := openTestDB(t)

	counts, err := db.CountsByTrader([]string{traderA})
	require.NoError(t, err)
	assert.Equal(t, []int{0}, counts)
}

func TestRecentTrades(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.SaveTrade(event(traderA, 100)))
	require.NoError(t, db.SaveTrade(event(traderA, 50)))

	trades, err := db.RecentTrades(traderA, 1)
	require.NoError(t, err)
	require.Len(t, trades, 1)
	assert.Equal(t, "BUY", trades[0].Side)
	assert.Equal(t, "btc-above-100k", trades[0].Slug)
}
