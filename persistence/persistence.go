package persistence

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/jfuentesr/butaca/entities"
)

// Archive records completed purchases outside the backend, so a user
// keeps a local trail of what they bought even if the account moves.
type Archive interface {
	WritePurchase(ctx context.Context, entry entities.PurchaseLogEntry) error
}

// NoopArchive discards everything. The default when archiving is off.
type NoopArchive struct{}

func (NoopArchive) WritePurchase(ctx context.Context, entry entities.PurchaseLogEntry) error {
	return nil
}

// FileArchive appends one JSON line per purchase.
type FileArchive struct {
	mu   sync.Mutex
	path string
}

func NewFileArchive(path string) *FileArchive {
	return &FileArchive{path: path}
}

func (a *FileArchive) WritePurchase(ctx context.Context, entry entities.PurchaseLogEntry) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	raw, err := json.Marshal(entry)
	if err != nil {
		return errors.Wrap(err, "encoding purchase entry")
	}

	file, err := os.OpenFile(a.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return errors.Wrap(err, "opening purchase archive")
	}
	defer file.Close()

	if _, err := file.Write(append(raw, '\n')); err != nil {
		return errors.Wrap(err, "writing purchase entry")
	}
	return nil
}

// ReadAll returns every archived purchase in write order.
func (a *FileArchive) ReadAll() ([]entities.PurchaseLogEntry, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	raw, err := os.ReadFile(a.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading purchase archive")
	}

	var entries []entities.PurchaseLogEntry
	dec := json.NewDecoder(bytes.NewReader(raw))
	for dec.More() {
		var entry entities.PurchaseLogEntry
		if err := dec.Decode(&entry); err != nil {
			return entries, errors.Wrap(err, "decoding purchase entry")
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
