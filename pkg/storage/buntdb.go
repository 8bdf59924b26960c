// Package storage keeps the readings carried from one cycle to the next
package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/raykavin/ratebot/pkg/core"
	"github.com/tidwall/buntdb"
)

const readingsKey = "cycle:readings"

// BuntStorage implements the core.StateStore interface using BuntDB
type BuntStorage struct {
	db *buntdb.DB
}

// FromMemory creates an in-memory storage. Nothing survives a restart.
func FromMemory() (*BuntStorage, error) {
	return NewBuntStorage(":memory:")
}

// NewBuntStorage creates a new BuntDB storage instance
func NewBuntStorage(sourceFile string) (*BuntStorage, error) {
	db, err := buntdb.Open(sourceFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open buntdb: %w", err)
	}

	return &BuntStorage{db: db}, nil
}

// Load returns the last saved readings, all absent before the first save
func (b *BuntStorage) Load() (core.Readings, error) {
	var readings core.Readings

	err := b.db.View(func(tx *buntdb.Tx) error {
		content, err := tx.Get(readingsKey)
		if errors.Is(err, buntdb.ErrNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read readings: %w", err)
		}

		if err := json.Unmarshal([]byte(content), &readings); err != nil {
			return fmt.Errorf("failed to unmarshal readings: %w", err)
		}
		return nil
	})
	if err != nil {
		return core.Readings{}, err
	}

	return readings, nil
}

// Save replaces the stored readings
func (b *BuntStorage) Save(readings core.Readings) error {
	return b.db.Update(func(tx *buntdb.Tx) error {
		content, err := json.Marshal(readings)
		if err != nil {
			return fmt.Errorf("failed to marshal readings: %w", err)
		}

		if _, _, err := tx.Set(readingsKey, string(content), nil); err != nil {
			return fmt.Errorf("failed to store readings: %w", err)
		}

		return nil
	})
}

// Close closes the database connection
func (b *BuntStorage) Close() error {
	if b.db != nil {
		return b.db.Close()
	}
	return nil
}
