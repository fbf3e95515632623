package feeds

import (
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/web3guy0/polycopy/types"
)

// ═══════════════════════════════════════════════════════════════════════════════
// USER ACTIVITY FEED
// ═══════════════════════════════════════════════════════════════════════════════
//
// Connects to the Polymarket live-data WebSocket and watches the activity
// of the tracked trader wallets. Every trade they make is fanned out to
// subscribers as a types.TradeEvent.
//
// ═══════════════════════════════════════════════════════════════════════════════

const (
	DefaultWSURL   = "wss://ws-live-data.polymarket.com"
	reconnectDelay = 5 * time.Second
	pingInterval   = 30 * time.Second
)

// UserFeed manages the WebSocket connection and trade event distribution
type UserFeed struct {
	mu sync.RWMutex

	wsURL     string
	traders   map[string]bool // lowercased tracked addresses
	conn      *websocket.Conn
	connected bool
	running   bool
	stopCh    chan struct{}

	subscribers []chan types.TradeEvent
}

// NewUserFeed creates a feed watching the given trader addresses
func NewUserFeed(wsURL string, traders []string) *UserFeed {
	if wsURL == "" {
		wsURL = DefaultWSURL
	}
	tracked := make(map[string]bool, len(traders))
	for _, t := range traders {
		tracked[strings.ToLower(t)] = true
	}
	return &UserFeed{
		wsURL:       wsURL,
		traders:     tracked,
		stopCh:      make(chan struct{}),
		subscribers: make([]chan types.TradeEvent, 0),
	}
}

// Start connects and begins processing
func (f *UserFeed) Start() {
	f.mu.Lock()
	if f.running {
		f.mu.Unlock()
		return
	}
	f.running = true
	f.mu.Unlock()

	go f.connectionLoop()
	log.Info().Int("traders", len(f.traders)).Msg("📡 User feed started")
}

// Stop closes the connection
func (f *UserFeed) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.running {
		return
	}

	f.running = false
	close(f.stopCh)

	if f.conn != nil {
		f.conn.Close()
	}

	log.Info().Msg("User feed stopped")
}

// Subscribe returns a channel that receives trade events
func (f *UserFeed) Subscribe() chan types.TradeEvent {
	f.mu.Lock()
	defer f.mu.Unlock()

	ch := make(chan types.TradeEvent, 100)
	f.subscribers = append(f.subscribers, ch)
	return ch
}

// connectionLoop maintains the WebSocket connection
func (f *UserFeed) connectionLoop() {
	for {
		select {
		case <-f.stopCh:
			return
		default:
		}

		if err := f.connect(); err != nil {
			log.Error().Err(err).Msg("Connection failed, retrying...")
			time.Sleep(reconnectDelay)
			continue
		}

		f.readLoop()
		time.Sleep(reconnectDelay)
	}
}

// connect establishes the WebSocket connection and subscribes to the
// activity of the tracked wallets
func (f *UserFeed) connect() error {
	conn, _, err := websocket.DefaultDialer.Dial(f.wsURL, nil)
	if err != nil {
		return err
	}

	f.mu.Lock()
	f.conn = conn
	f.connected = true
	addresses := make([]string, 0, len(f.traders))
	for t := range f.traders {
		addresses = append(addresses, t)
	}
	f.mu.Unlock()

	log.Info().Msg("🔌 WebSocket connected")

	sub := map[string]interface{}{
		"action": "subscribe",
		"subscriptions": []map[string]interface{}{
			{
				"topic":   "activity",
				"type":    "trades",
				"filters": map[string]interface{}{"proxyWallets": addresses},
			},
		},
	}
	if err := conn.WriteJSON(sub); err != nil {
		conn.Close()
		return err
	}

	go f.pingLoop()

	return nil
}

// pingLoop sends periodic pings to keep connection alive
func (f *UserFeed) pingLoop() {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-f.stopCh:
			return
		case <-ticker.C:
			f.mu.RLock()
			conn := f.conn
			connected := f.connected
			f.mu.RUnlock()

			if connected && conn != nil {
				conn.WriteMessage(websocket.PingMessage, nil)
			}
		}
	}
}

// readLoop reads messages from the WebSocket
func (f *UserFeed) readLoop() {
	for {
		select {
		case <-f.stopCh:
			return
		default:
		}

		f.mu.RLock()
		conn := f.conn
		f.mu.RUnlock()

		if conn == nil {
			return
		}

		_, message, err := conn.ReadMessage()
		if err != nil {
			log.Warn().Err(err).Msg("Read error")
			f.mu.Lock()
			f.connected = false
			f.mu.Unlock()
			return
		}

		f.processMessage(message)
	}
}

// activityMessage is a trade entry on the live-data activity topic
type activityMessage struct {
	Type            string `json:"type"`
	ProxyWallet     string `json:"proxyWallet"`
	Asset           string `json:"asset"`
	Side            string `json:"side"`
	Size            string `json:"size"`
	Price           string `json:"price"`
	Title           string `json:"title"`
	Slug            string `json:"slug"`
	EventSlug       string `json:"eventSlug"`
	Outcome         string `json:"outcome"`
	TransactionHash string `json:"transactionHash"`
	Timestamp       int64  `json:"timestamp"`
}

// processMessage parses incoming messages and publishes trade events for
// tracked traders
func (f *UserFeed) processMessage(data []byte) {
	for _, ev := range parseActivity(data) {
		f.mu.RLock()
		tracked := f.traders[strings.ToLower(ev.Trader)]
		subscribers := f.subscribers
		f.mu.RUnlock()

		if !tracked {
			continue
		}

		for _, ch := range subscribers {
			select {
			case ch <- ev:
			default:
				log.Warn().Msg("Subscriber channel full, dropping event")
			}
		}
	}
}

// parseActivity decodes an activity payload (single message or batch) into
// trade events. Malformed entries are skipped.
func parseActivity(data []byte) []types.TradeEvent {
	var msgs []activityMessage
	if err := json.Unmarshal(data, &msgs); err != nil {
		var msg activityMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return nil
		}
		msgs = []activityMessage{msg}
	}

	var events []types.TradeEvent
	for _, msg := range msgs {
		if msg.ProxyWallet == "" {
			continue
		}

		details := types.TradeDetails{
			Asset:           msg.Asset,
			Side:            strings.ToUpper(msg.Side),
			Title:           msg.Title,
			Slug:            msg.Slug,
			EventSlug:       msg.EventSlug,
			TransactionHash: msg.TransactionHash,
		}
		if size, err := decimal.NewFromString(msg.Size); err == nil {
			details.Amount = size
		}
		if price, err := decimal.NewFromString(msg.Price); err == nil {
			details.Price = price
		}

		action := strings.ToUpper(msg.Type)
		if action == "" {
			action = "TRADE"
		}

		ts := time.Now()
		if msg.Timestamp > 0 {
			ts = time.Unix(msg.Timestamp, 0)
		}

		events = append(events, types.TradeEvent{
			Trader:    msg.ProxyWallet,
			Action:    action,
			Details:   details,
			Timestamp: ts,
		})
	}
	return events
}
