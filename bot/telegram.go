package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"github.com/web3guy0/polycopy/display"
	"github.com/web3guy0/polycopy/types"
)

// ═══════════════════════════════════════════════════════════════════════════════
// TELEGRAM NOTIFIER - Trade alerts for the copied wallet
// ═══════════════════════════════════════════════════════════════════════════════

// Notifier forwards trade activity to a Telegram chat. A Notifier built
// without a token is disabled and all sends become no-ops.
type Notifier struct {
	api     *tgbotapi.BotAPI
	chatID  int64
	enabled bool
}

// NewNotifier creates a notifier. An empty token disables it.
func NewNotifier(token string, chatID int64) (*Notifier, error) {
	if token == "" {
		log.Warn().Msg("TELEGRAM_BOT_TOKEN not set, notifications disabled")
		return &Notifier{}, nil
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram init: %w", err)
	}

	log.Info().Str("bot", api.Self.UserName).Msg("📱 Telegram notifier ready")
	return &Notifier{api: api, chatID: chatID, enabled: true}, nil
}

// NotifyTrade sends an alert for a detected trade.
func (n *Notifier) NotifyTrade(ev types.TradeEvent) {
	msg := fmt.Sprintf("📊 New trade by %s\nAction: %s", display.FormatAddress(ev.Trader), ev.Action)
	if ev.Details.Side != "" {
		msg += "\nSide: " + ev.Details.Side
	}
	if !ev.Details.Amount.IsZero() {
		msg += "\nAmount: $" + ev.Details.Amount.String()
	}
	if !ev.Details.Price.IsZero() {
		msg += "\nPrice: " + ev.Details.Price.String()
	}
	if ev.Details.Title != "" {
		msg += "\nMarket: " + ev.Details.Title
	}
	n.send(msg)
}

// NotifyOrderResult sends the outcome of a copied order.
func (n *Notifier) NotifyOrderResult(ok bool, message string) {
	if ok {
		n.send("✅ Order executed: " + message)
	} else {
		n.send("❌ Order failed: " + message)
	}
}

func (n *Notifier) send(text string) {
	if !n.enabled {
		return
	}
	if _, err := n.api.Send(tgbotapi.NewMessage(n.chatID, text)); err != nil {
		log.Error().Err(err).Msg("Failed to send Telegram message")
	}
}
