// Package safe decorates a storage adapter with the outcome calling
// convention: every call is executed under panic containment and every
// failure outside the session error taxonomy is normalized into
// model.ErrStore. The layers above can therefore branch on explicit error
// values without ever seeing backend-specific failures or panics.
package safe

import (
	"context"

	"github.com/cardhouse/blackjackd/internal/model"
	"github.com/cardhouse/blackjackd/internal/outcome"
	"github.com/cardhouse/blackjackd/internal/storage"
)

// Storage wraps an inner storage adapter
type Storage struct {
	inner storage.Storage
}

// Wrap decorates the given adapter
func Wrap(inner storage.Storage) *Storage {
	return &Storage{inner: inner}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) ListConnections(ctx context.Context) ([]string, error) {
	conns, err := outcome.Do(func() ([]string, error) {
		return s.inner.ListConnections(ctx)
	})
	return conns, outcome.Normalize(err)
}

func (s *Storage) PurgeConnections(ctx context.Context, ids []string) (int, error) {
	n, err := outcome.Do(func() (int, error) {
		return s.inner.PurgeConnections(ctx, ids)
	})
	return n, outcome.Normalize(err)
}

func (s *Storage) Create(ctx context.Context, sess *model.PlayerSession) (*model.PlayerSession, error) {
	created, err := outcome.Do(func() (*model.PlayerSession, error) {
		return s.inner.Create(ctx, sess)
	})
	return created, outcome.Normalize(err)
}

func (s *Storage) Update(ctx context.Context, f storage.Filter, p storage.Patch) (*model.PlayerSession, error) {
	updated, err := outcome.Do(func() (*model.PlayerSession, error) {
		return s.inner.Update(ctx, f, p)
	})
	return updated, outcome.Normalize(err)
}

func (s *Storage) Delete(ctx context.Context, f storage.Filter) (int, error) {
	n, err := outcome.Do(func() (int, error) {
		return s.inner.Delete(ctx, f)
	})
	return n, outcome.Normalize(err)
}

func (s *Storage) GetMeta(ctx context.Context, f storage.Filter) (*model.SessionMeta, error) {
	meta, err := outcome.Do(func() (*model.SessionMeta, error) {
		return s.inner.GetMeta(ctx, f)
	})
	return meta, outcome.Normalize(err)
}

func (s *Storage) GetConnectionID(ctx context.Context, f storage.Filter) (string, error) {
	conn, err := outcome.Do(func() (string, error) {
		return s.inner.GetConnectionID(ctx, f)
	})
	return conn, outcome.Normalize(err)
}

func (s *Storage) GetCards(ctx context.Context, f storage.Filter, all bool) ([]model.Card, error) {
	cards, err := outcome.Do(func() ([]model.Card, error) {
		return s.inner.GetCards(ctx, f, all)
	})
	return cards, outcome.Normalize(err)
}
