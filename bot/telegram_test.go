package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/web3guy0/polycopy/types"
)

func TestDisabledNotifierIsNoOp(t *testing.T) {
	n, err := NewNotifier("", 0)
	require.NoError(t, err)
	assert.False(t, n.enabled)

	// Sends must not panic without an API client.
	assert.NotPanics(t, func() {
		n.NotifyTrade(types.TradeEvent{Trader: "0x56687bf447db6ffa42ffe2204a05edaa20f55839"})
		n.NotifyOrderResult(true, "bought 10 shares")
		n.NotifyOrderResult(false, "insufficient balance")
	})
}
