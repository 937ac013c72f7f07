// ABOUTME: Interface definition for diary entry storage.
// ABOUTME: Defines the contract for reading, writing, deleting, and listing day entries.
package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/2389-research/minidiary/internal/models"
)

var (
	// ErrNotFound is returned when no entry exists for a date.
	ErrNotFound = errors.New("entry not found")

	// ErrFutureEntry is returned when writing a day after today while future
	// entries are not allowed.
	ErrFutureEntry = errors.New("entries for future dates are not allowed")
)

// EntryStore defines operations for diary entry persistence.
type EntryStore interface {
	// WriteEntry persists an entry. Writing an empty entry deletes the day.
	WriteEntry(entry *models.Entry) error

	// ReadEntry reads the entry for the given index date.
	ReadEntry(date string) (*models.Entry, error)

	// DeleteEntry removes the entry for the given index date.
	DeleteEntry(date string) error

	// Entries returns every stored entry keyed by index date.
	Entries() (models.Entries, error)

	// Close releases any resources held by the store.
	Close() error
}

// CheckDate returns ErrFutureEntry when date lies after now and future entries
// are not allowed.
func CheckDate(date string, now time.Time, allowFuture bool) error {
	future, err := models.IsFutureDate(date, now)
	if err != nil {
		return err
	}
	if future && !allowFuture {
		return ErrFutureEntry
	}
	return nil
}

// InheritID gives entry the ID of the entry already stored for its day, so an
// overwrite keeps the day's identity. A missing day leaves entry unchanged;
// any other read failure is returned rather than overwritten.
func InheritID(store EntryStore, entry *models.Entry) error {
	existing, err := store.ReadEntry(entry.Date)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to read existing entry for %s: %w", entry.Date, err)
	}
	entry.ID = existing.ID
	return nil
}
