package feeds

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseActivitySingle(t *testing.T) {
	payload := []byte(`{
		"type": "trade",
		"proxyWallet": "0x56687bf447db6ffa42ffe2204a05edaa20f55839",
		"asset": "0x11111111111111111111111111111111111111aa",
		"side": "buy",
		"size": "100",
		"price": "0.45",
		"title": "Will BTC close above 100k?",
		"eventSlug": "btc-above-100k",
		"transactionHash": "0xdeadbeef",
		"timestamp": 1741944413
	}`)

	events := parseActivity(payload)
	require.Len(t, events, 1)

	ev := events[0]
	assert.Equal(t, "0x56687bf447db6ffa42ffe2204a05edaa20f55839", ev.Trader)
	assert.Equal(t, "TRADE", ev.Action)
	assert.Equal(t, "BUY", ev.Details.Side)
	assert.Equal(t, "100", ev.Details.Amount.String())
	assert.Equal(t, "0.45", ev.Details.Price.String())
	assert.Equal(t, "btc-above-100k", ev.Details.MarketSlug())
	assert.Equal(t, time.Unix(1741944413, 0), ev.Timestamp)
}

func TestParseActivityBatch(t *testing.T) {
	payload := []byte(`[
		{"proxyWallet": "0xaaa0000000000000000000000000000000000001", "side": "buy", "size": "5"},
		{"proxyWallet": "0xaaa0000000000000000000000000000000000002", "side": "sell", "size": "7"}
	]`)

	events := parseActivity(payload)
	require.Len(t, events, 2)
	assert.Equal(t, "BUY", events[0].Details.Side)
	assert.Equal(t, "SELL", events[1].Details.Side)
}

func TestParseActivityMissingOptionalFields(t *testing.T) {
	payload := []byte(`{"proxyWallet": "0xaaa0000000000000000000000000000000000001"}`)

	events := parseActivity(payload)
	require.Len(t, events, 1)
	assert.True(t, events[0].Details.Amount.IsZero())
	assert.True(t, events[0].Details.Price.IsZero())
	assert.Equal(t, "TRADE", events[0].Action)
	assert.False(t, events[0].Timestamp.IsZero())
}

func TestParseActivityGarbage(t *testing.T) {
	assert.Nil(t, parseActivity([]byte("not json")))
	// Connection acks carry no wallet and are ignored.
	assert.Nil(t, parseActivity([]byte(`{"type":"connected"}`)))
}

func TestProcessMessageFiltersUntracked(t *testing.T) {
	f := NewUserFeed("", []string{"0x56687bF447dB6fFa42FFe2204a05EdAa20F55839"})
	ch := f.Subscribe()

	f.processMessage([]byte(`[
		{"proxyWallet": "0x56687bf447db6ffa42ffe2204a05edaa20f55839", "side": "buy"},
		{"proxyWallet": "0x9999999999999999999999999999999999999999", "side": "sell"}
	]`))

	require.Len(t, ch, 1)
	ev := <-ch
	assert.Equal(t, "BUY", ev.Details.Side)
}
