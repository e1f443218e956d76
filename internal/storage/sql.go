package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Entry is one stored document.
type Entry struct {
	Name      string `gorm:"column:name;primaryKey;size:64"`
	Value     string `gorm:"type:longtext"`
	UpdatedAt time.Time
}

// TableName pins the table name independent of gorm's pluralization.
func (Entry) TableName() string {
	return "kv_entries"
}

// SQLStore keeps documents in a single key/value table.
type SQLStore struct {
	db *gorm.DB
}

// SQLitePath returns the database file used inside dir.
func SQLitePath(dir string) string {
	if dir == "" {
		if configDir, err := os.UserConfigDir(); err == nil {
			dir = filepath.Join(configDir, "crossroads")
		}
	}
	return filepath.Join(dir, "crossroads.db")
}

// OpenSQLite opens (creating if needed) a SQLite database at path.
// The path ":memory:" gives a private in-memory database.
func OpenSQLite(path string) (*SQLStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := gorm.Open(sqlite.Open(path), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if path == ":memory:" {
		// Each connection would otherwise see its own empty database.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(5)
		sqlDB.SetMaxIdleConns(2)
		sqlDB.SetConnMaxLifetime(time.Hour)
		sqlDB.Exec("PRAGMA journal_mode = WAL")
		sqlDB.Exec("PRAGMA synchronous = NORMAL")
		sqlDB.Exec("PRAGMA busy_timeout = 5000")
	}
	return newSQLStore(db)
}

// OpenMySQL connects to a MySQL database using dsn.
func OpenMySQL(dsn string) (*SQLStore, error) {
	if dsn == "" {
		return nil, fmt.Errorf("mysql storage requires a DSN")
	}
	db, err := gorm.Open(mysql.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mysql: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(5)
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetConnMaxLifetime(time.Hour)
	return newSQLStore(db)
}

func gormConfig() *gorm.Config {
	// The TUI owns stdout, so gorm must stay quiet.
	return &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
}

func newSQLStore(db *gorm.DB) (*SQLStore, error) {
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate storage table: %w", err)
	}
	return &SQLStore{db: db}, nil
}

// Get implements Store.
func (s *SQLStore) Get(key string, v any) (bool, error) {
	var rows []Entry
	if err := s.db.Where("name = ?", key).Limit(1).Find(&rows).Error; err != nil {
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if len(rows) == 0 {
		return false, nil
	}
	if err := json.Unmarshal([]byte(rows[0].Value), v); err != nil {
		return false, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return true, nil
}

// Set implements Store.
func (s *SQLStore) Set(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	row := Entry{Name: key, Value: string(data), UpdatedAt: time.Now()}
	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Close releases the database handle.
func (s *SQLStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
