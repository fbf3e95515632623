package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/web3guy0/polycopy/types"
)

// ═══════════════════════════════════════════════════════════════════════════════
// STORAGE - Copied trade persistence
// ═══════════════════════════════════════════════════════════════════════════════

type Database struct {
	db *gorm.DB
}

// CopiedTrade records a trade we mirrored from a tracked trader.
type CopiedTrade struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	Trader    string `gorm:"index"`
	Action    string
	Asset     string
	Side      string
	Amount    decimal.Decimal `gorm:"type:decimal(20,6)"`
	Price     decimal.Decimal `gorm:"type:decimal(10,6)"`
	Title     string
	Slug      string
	TxHash    string
	CreatedAt time.Time
}

// Open connects to Postgres when dsn is set, otherwise to a local SQLite
// file at path (parent directory created as needed).
func Open(path, dsn string) (*Database, error) {
	var dialector gorm.Dialector
	if dsn != "" {
		dialector = postgres.Open(dsn)
	} else {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create database dir: %w", err)
			}
		}
		dialector = sqlite.Open(path)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.AutoMigrate(&CopiedTrade{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Msg("💾 Database connected")
	return &Database{db: db}, nil
}

// SaveTrade persists a trade event from the feed.
func (d *Database) SaveTrade(ev types.TradeEvent) error {
	record := CopiedTrade{
		Trader:    strings.ToLower(ev.Trader),
		Action:    ev.Action,
		Asset:     ev.Details.Asset,
		Side:      ev.Details.Side,
		Amount:    ev.Details.Amount,
		Price:     ev.Details.Price,
		Title:     ev.Details.Title,
		Slug:      ev.Details.MarketSlug(),
		TxHash:    ev.Details.TransactionHash,
		CreatedAt: ev.Timestamp,
	}
	if err := d.db.Create(&record).Error; err != nil {
		log.Error().Err(err).Str("trader", ev.Trader).Msg("Failed to save trade")
		return err
	}
	return nil
}

// CountsByTrader returns stored trade counts aligned with the given
// trader list, for the database status display.
func (d *Database) CountsByTrader(traders []string) ([]int, error) {
	counts := make([]int, len(traders))
	for i, trader := range traders {
		var n int64
		err := d.db.Model(&CopiedTrade{}).
			Where("trader = ?", strings.ToLower(trader)).
			Count(&n).Error
		if err != nil {
			return nil, err
		}
		counts[i] = int(n)
	}
	return counts, nil
}

// RecentTrades returns the latest stored trades for a trader.
func (d *Database) RecentTrades(trader string, limit int) ([]CopiedTrade, error) {
	var trades []CopiedTrade
	err := d.db.
		Where("trader = ?", strings.ToLower(trader)).
		Order("created_at DESC").
		Limit(limit).
		Find(&trades).Error
	return trades, err
}

// Close closes the underlying connection.
func (d *Database) Close() {
	if sqlDB, err := d.db.DB(); err == nil {
		sqlDB.Close()
	}
}
