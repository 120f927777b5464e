package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"kas/internal/core"
)

// Repository implements Adapter on top of any KV backend. The JSON
// codec lives here so every backend persists the exact same bytes.
type Repository struct {
	kv   KV
	name string
}

func NewRepository(kv KV, name string) *Repository {
	return &Repository{kv: kv, name: name}
}

// LoadTransactions reads the full collection. A missing key or corrupt
// payload loads as an empty collection: stored data must never crash
// the app, it only costs a warning in the log.
func (r *Repository) LoadTransactions(ctx context.Context) ([]core.Transaction, error) {
	raw, found, err := r.kv.Get(ctx, KeyTransactions)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	if !found {
		return nil, nil
	}

	var records []core.Transaction
	if err := json.Unmarshal(raw, &records); err != nil {
		slog.WarnContext(ctx, "Stored transactions are corrupt, starting empty",
			"backend", r.name, "error", err, "bytes", len(raw))
		return nil, nil
	}
	return records, nil
}

// SaveTransactions writes the full collection as one JSON array.
func (r *Repository) SaveTransactions(ctx context.Context, records []core.Transaction) error {
	if records == nil {
		records = []core.Transaction{}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode transactions: %w", err)
	}
	if err := r.kv.Put(ctx, KeyTransactions, raw); err != nil {
		return fmt.Errorf("save transactions: %w", err)
	}
	slog.DebugContext(ctx, "Transactions flushed",
		"backend", r.name, "count", len(records), "bytes", len(raw))
	return nil
}

// LoadSession reads the session state; missing or corrupt data yields a
// logged-out session with the default theme.
func (r *Repository) LoadSession(ctx context.Context) (Session, error) {
	def := Session{Theme: core.ThemeLight}

	raw, found, err := r.kv.Get(ctx, KeySession)
	if err != nil {
		return def, fmt.Errorf("load session: %w", err)
	}
	if !found {
		return def, nil
	}

	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		slog.WarnContext(ctx, "Stored session is corrupt, resetting",
			"backend", r.name, "error", err)
		return def, nil
	}
	if !sess.Theme.Valid() {
		sess.Theme = core.ThemeLight
	}
	return sess, nil
}

func (r *Repository) SaveSession(ctx context.Context, sess Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := r.kv.Put(ctx, KeySession, raw); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *Repository) Close() error {
	return r.kv.Close()
}
