// Package services mediates every mutation of the transaction store:
// validation at the boundary, persistence flushes after each change,
// and the session gate.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"kas/internal/core"
	"kas/internal/storage"
	"kas/internal/store"
)

// PersistError reports a failed flush to the persistence adapter. The
// in-memory store stays authoritative: the mutation that triggered the
// flush has been applied and a later flush resends the same collection.
type PersistError struct {
	Err error
}

func (e *PersistError) Error() string {
	return "persist transactions: " + e.Err.Error()
}

func (e *PersistError) Unwrap() error {
	return e.Err
}

// TransactionService is the single writer of the transaction store.
type TransactionService struct {
	store   *store.Store
	adapter storage.Adapter
	now     func() time.Time
}

func NewTransactionService(st *store.Store, adapter storage.Adapter) *TransactionService {
	return &TransactionService{
		store:   st,
		adapter: adapter,
		now:     time.Now,
	}
}

// Load reads the persisted collection into the store. Called once at
// startup; the store is the exclusive working copy afterwards.
func (s *TransactionService) Load(ctx context.Context) error {
	records, err := s.adapter.LoadTransactions(ctx)
	if err != nil {
		return fmt.Errorf("load transactions: %w", err)
	}
	s.store.Replace(records)
	slog.InfoContext(ctx, "Transactions loaded", "count", len(records))
	return nil
}

// Submit validates the draft and either creates a new record or, when
// editID is set, overwrites every user-editable field of the existing
// one. Validation failures report all failing fields at once and leave
// both store and persistence untouched. On success the collection is
// flushed; a flush failure comes back as *PersistError with the
// mutation already applied in memory.
func (s *TransactionService) Submit(ctx context.Context, draft core.Draft, editID string) (core.Transaction, error) {
	tx, err := draft.Transaction()
	if err != nil {
		return core.Transaction{}, err
	}
	now := s.now()

	if editID != "" {
		existing, err := s.store.Get(editID)
		if err != nil {
			return core.Transaction{}, err
		}
		tx.ID = existing.ID
		tx.CreatedAt = existing.CreatedAt
		tx.UpdatedAt = now
		if err := s.store.Put(tx); err != nil {
			return core.Transaction{}, err
		}
		slog.InfoContext(ctx, "Transaction updated",
			"transaction_id", tx.ID,
			"allocation", tx.Allocation,
			"total_cents", tx.TotalPrice.Cents,
			"type", string(tx.Type))
	} else {
		tx.ID = uuid.NewString()
		tx.Touch(now)
		if err := s.store.Add(tx); err != nil {
			return core.Transaction{}, err
		}
		slog.InfoContext(ctx, "Transaction created",
			"transaction_id", tx.ID,
			"allocation", tx.Allocation,
			"total_cents", tx.TotalPrice.Cents,
			"type", string(tx.Type))
	}

	if err := s.flush(ctx); err != nil {
		return tx, err
	}
	return tx, nil
}

// Delete removes the record with the given ID. The confirmation prompt
// is the caller's responsibility; by the time Delete runs the user has
// already said yes. Deleting a missing ID changes nothing and writes
// nothing.
func (s *TransactionService) Delete(ctx context.Context, id string) (core.Transaction, error) {
	existing, err := s.store.Get(id)
	if err != nil {
		return core.Transaction{}, err
	}
	if err := s.store.Remove(id); err != nil {
		return core.Transaction{}, err
	}
	slog.InfoContext(ctx, "Transaction deleted",
		"transaction_id", id,
		"allocation", existing.Allocation)

	if err := s.flush(ctx); err != nil {
		return existing, err
	}
	return existing, nil
}

// All returns the current collection.
func (s *TransactionService) All() []core.Transaction {
	return s.store.All()
}

// Export serializes the full collection as pretty-printed JSON together
// with a filename carrying the current date.
func (s *TransactionService) Export(_ context.Context) (filename string, data []byte, err error) {
	records := s.store.All()
	if records == nil {
		records = []core.Transaction{}
	}
	data, err = json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", nil, fmt.Errorf("encode export: %w", err)
	}
	filename = fmt.Sprintf("keuangan-backup-%s.json", s.now().Format("2006-01-02"))
	return filename, data, nil
}

func (s *TransactionService) flush(ctx context.Context) error {
	if err := s.adapter.SaveTransactions(ctx, s.store.All()); err != nil {
		slog.ErrorContext(ctx, "Failed to flush transactions, in-memory state kept",
			"error", err, "count", s.store.Len())
		return &PersistError{Err: err}
	}
	return nil
}
