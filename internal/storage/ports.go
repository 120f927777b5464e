// Package storage is the persistence adapter: the whole transaction
// collection is serialized as one JSON array under a dedicated key in a
// local key-value store, with a second key for the session state
// (logged-in flag and theme preference). Those two keys are the only
// persisted artifacts.
package storage

import (
	"context"
	"io"

	"kas/internal/core"
)

const (
	KeyTransactions = "transactions"
	KeySession      = "session"
)

// Session is the persisted session state.
type Session struct {
	LoggedIn bool       `json:"loggedIn"`
	Theme    core.Theme `json:"theme"`
}

// Adapter reads and writes the persisted artifacts. Writes are whole
// values, one per call; there is no incremental update.
type Adapter interface {
	LoadTransactions(ctx context.Context) ([]core.Transaction, error)
	SaveTransactions(ctx context.Context, records []core.Transaction) error
	LoadSession(ctx context.Context) (Session, error)
	SaveSession(ctx context.Context, sess Session) error
	io.Closer
}

// KV is the raw key-value surface a backend must provide. Get reports
// found=false for a missing key rather than an error.
type KV interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Put(ctx context.Context, key string, value []byte) error
	io.Closer
}
