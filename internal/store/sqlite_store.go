package store

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/bharatshaala/wishsync/internal/events"
	"github.com/bharatshaala/wishsync/internal/models"
)

// SQLiteStore implements SQLite-based guest collection storage.
type SQLiteStore struct {
	db     *sql.DB
	logger *events.Logger

	mu sync.Mutex
}

// NewSQLiteStore creates a SQLite guest store.
func NewSQLiteStore(dbPath string, logger *events.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal=WAL&_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	store := &SQLiteStore{
		db:     db,
		logger: logger.WithField("component", "sqlite_store"),
	}

	if err := store.initialize(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize database: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initialize() error {
	schema := `
    CREATE TABLE IF NOT EXISTS collection_items (
        kind TEXT NOT NULL,
        position INTEGER NOT NULL,
        id TEXT NOT NULL,
        name TEXT NOT NULL DEFAULT '',
        price REAL NOT NULL DEFAULT 0,
        image TEXT NOT NULL DEFAULT '',
        category TEXT NOT NULL DEFAULT '',
        vendor TEXT NOT NULL DEFAULT '',
        market TEXT NOT NULL DEFAULT '',
        in_stock INTEGER NOT NULL DEFAULT 1,
        added_at TIMESTAMP NOT NULL,
        PRIMARY KEY (kind, id)
    );

    CREATE INDEX IF NOT EXISTS idx_collection_items_kind ON collection_items(kind, position);

    CREATE TABLE IF NOT EXISTS schema_info (
        version INTEGER PRIMARY KEY
    );

    INSERT OR IGNORE INTO schema_info (version) VALUES (?);
    `

	if _, err := s.db.Exec(schema, CurrentSchemaVersion); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	return nil
}

// Read returns the stored sequence for a kind in insertion order.
func (s *SQLiteStore) Read(kind models.CollectionKind) ([]models.CollectionItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`
        SELECT id, name, price, image, category, vendor, market, in_stock, added_at
        FROM collection_items WHERE kind = ? ORDER BY position`, string(kind))
	if err != nil {
		s.logger.WithError(err).Warn("Unreadable local store, treating as empty")
		return nil, nil
	}
	defer rows.Close()

	var items []models.CollectionItem
	for rows.Next() {
		var item models.CollectionItem
		var inStock int
		var addedAt time.Time
		if err := rows.Scan(&item.ID, &item.Name, &item.Price, &item.Image,
			&item.Category, &item.Vendor, &item.Market, &inStock, &addedAt); err != nil {
			s.logger.WithError(err).Warn("Corrupt local store row, skipping")
			continue
		}
		item.InStock = inStock != 0
		item.AddedAt = addedAt
		items = append(items, item)
	}

	return items, rows.Err()
}

// Write replaces the stored sequence for a kind in one transaction.
func (s *SQLiteStore) Write(kind models.CollectionKind, items []models.CollectionItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.WithFields(map[string]interface{}{
		"kind":  string(kind),
		"items": len(items),
	}).Debug("Writing local store")

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM collection_items WHERE kind = ?`, string(kind)); err != nil {
		return fmt.Errorf("clear kind: %w", err)
	}

	stmt, err := tx.Prepare(`
        INSERT INTO collection_items
        (kind, position, id, name, price, image, category, vendor, market, in_stock, added_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for pos, item := range items {
		inStock := 0
		if item.InStock {
			inStock = 1
		}
		if _, err := stmt.Exec(string(kind), pos, item.ID, item.Name, item.Price,
			item.Image, item.Category, item.Vendor, item.Market, inStock, item.AddedAt); err != nil {
			return fmt.Errorf("insert item %s: %w", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Clear removes the stored sequence for a kind.
func (s *SQLiteStore) Clear(kind models.CollectionKind) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.WithField("kind", string(kind)).Debug("Clearing local store")

	if _, err := s.db.Exec(`DELETE FROM collection_items WHERE kind = ?`, string(kind)); err != nil {
		return fmt.Errorf("clear kind: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
