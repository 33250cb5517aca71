// Package db はローソク足ストア用のデータベース接続を提供します。
package db

import (
	"os"

	platformsqlite "market_backend/internal/platform/sqlite"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const defaultPath = "data/candles.db"

// Config holds database configuration.
type Config struct {
	Path string // SQLiteデータベースファイルのパス
}

// LoadConfig loads database configuration from environment variables.
func LoadConfig() Config {
	path := os.Getenv("CANDLE_DB_PATH")
	if path == "" {
		path = defaultPath
	}
	return Config{Path: path}
}

// Open はSQLiteデータベースを開き、ローソク足テーブルをマイグレーションします。
func Open(cfg Config) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&platformsqlite.CandleModel{}); err != nil {
		return nil, err
	}

	return db, nil
}
