package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// ═══════════════════════════════════════════════════════════════════════════════
// SHARED TYPES - Avoid import cycles
// ═══════════════════════════════════════════════════════════════════════════════

// TradeDetails carries the optional display fields of a detected trade.
// Zero-valued fields are treated as absent and skipped by renderers.
type TradeDetails struct {
	Asset           string          // Token ID
	Side            string          // "BUY" or "SELL"
	Amount          decimal.Decimal // USD amount
	Price           decimal.Decimal
	Title           string // Market question
	Slug            string
	EventSlug       string // Preferred over Slug when both are set
	TransactionHash string
}

// MarketSlug returns the slug to build the market URL from,
// preferring EventSlug.
func (d TradeDetails) MarketSlug() string {
	if d.EventSlug != "" {
		return d.EventSlug
	}
	return d.Slug
}

// TradeEvent is emitted by the user feed when a tracked trader acts.
type TradeEvent struct {
	Trader    string // Proxy wallet address
	Action    string // "TRADE", "MERGE", "SPLIT", ...
	Details   TradeDetails
	Timestamp time.Time
}

// DisplayPosition is a read-only view of an open position for reporting.
type DisplayPosition struct {
	Outcome      string // "Yes" / "No"
	Title        string
	CurrentValue decimal.Decimal
	PercentPnl   float64
	AvgPrice     decimal.Decimal
	CurPrice     decimal.Decimal
}
