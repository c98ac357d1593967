package safe

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/cardhouse/blackjackd/internal/model"
	"github.com/cardhouse/blackjackd/internal/storage"
	"github.com/cardhouse/blackjackd/internal/storage/memory"
)

// faultyStorage panics or fails with a backend-specific error on every call
type faultyStorage struct {
	err error
}

func (f *faultyStorage) fail() {
	if f.err == nil {
		panic("backend exploded")
	}
}

func (f *faultyStorage) ListConnections(context.Context) ([]string, error) {
	f.fail()
	return nil, f.err
}

func (f *faultyStorage) PurgeConnections(context.Context, []string) (int, error) {
	f.fail()
	return 0, f.err
}

func (f *faultyStorage) Create(context.Context, *model.PlayerSession) (*model.PlayerSession, error) {
	f.fail()
	return nil, f.err
}

func (f *faultyStorage) Update(context.Context, storage.Filter, storage.Patch) (*model.PlayerSession, error) {
	f.fail()
	return nil, f.err
}

func (f *faultyStorage) Delete(context.Context, storage.Filter) (int, error) {
	f.fail()
	return 0, f.err
}

func (f *faultyStorage) GetMeta(context.Context, storage.Filter) (*model.SessionMeta, error) {
	f.fail()
	return nil, f.err
}

func (f *faultyStorage) GetConnectionID(context.Context, storage.Filter) (string, error) {
	f.fail()
	return "", f.err
}

func (f *faultyStorage) GetCards(context.Context, storage.Filter, bool) ([]model.Card, error) {
	f.fail()
	return nil, f.err
}

type SafeSuite struct {
	suite.Suite
	ctx context.Context
}

func TestSafeSuite(t *testing.T) {
	suite.Run(t, new(SafeSuite))
}

func (s *SafeSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *SafeSuite) TestPanicsBecomeStoreErrors() {
	wrapped := Wrap(&faultyStorage{})

	_, err := wrapped.ListConnections(s.ctx)
	s.ErrorIs(err, model.ErrStore)

	_, err = wrapped.GetMeta(s.ctx, storage.ByConnection("conn-1"))
	s.ErrorIs(err, model.ErrStore)

	_, err = wrapped.Create(s.ctx, &model.PlayerSession{ID: "sess-1"})
	s.ErrorIs(err, model.ErrStore)
}

func (s *SafeSuite) TestBackendErrorsAreNormalized() {
	wrapped := Wrap(&faultyStorage{err: errors.New("dial tcp: connection refused")})

	_, err := wrapped.GetCards(s.ctx, storage.ByConnection("conn-1"), true)
	s.ErrorIs(err, model.ErrStore)

	_, err = wrapped.Delete(s.ctx, storage.ByConnection("conn-1"))
	s.ErrorIs(err, model.ErrStore)
}

func (s *SafeSuite) TestTaxonomyErrorsPassThrough() {
	wrapped := Wrap(&faultyStorage{err: model.ErrInvalidUser})

	_, err := wrapped.GetMeta(s.ctx, storage.ByConnection("conn-1"))
	s.ErrorIs(err, model.ErrInvalidUser)
	s.NotErrorIs(err, model.ErrStore)
}

func (s *SafeSuite) TestSuccessPassesThroughUnchanged() {
	wrapped := Wrap(memory.New())

	created, err := wrapped.Create(s.ctx, &model.PlayerSession{
		ID:           "sess-1",
		ConnectionID: "conn-1",
		Cards:        []model.Card{},
	})
	s.Require().NoError(err)
	s.Equal(model.SessionID("sess-1"), created.ID)

	meta, err := wrapped.GetMeta(s.ctx, storage.ByConnection("conn-1"))
	s.Require().NoError(err)
	s.Equal(model.SessionID("sess-1"), meta.ID)
}
