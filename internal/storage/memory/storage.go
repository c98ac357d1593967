package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cardhouse/blackjackd/internal/model"
	"github.com/cardhouse/blackjackd/internal/storage"
)

// Storage is an in-memory implementation of the storage interface,
// used for tests and local development
type Storage struct {
	mu sync.RWMutex

	sessions  map[model.SessionID]*model.PlayerSession
	connIndex map[string]model.SessionID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		sessions:  make(map[model.SessionID]*model.PlayerSession),
		connIndex: make(map[string]model.SessionID),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// find returns the first session matching the filter. Game filters scan in
// session-ID order so repeated calls are deterministic.
func (s *Storage) find(f storage.Filter) *model.PlayerSession {
	if f.ID != "" {
		return s.sessions[f.ID]
	}
	if f.ConnectionID != "" {
		id, ok := s.connIndex[f.ConnectionID]
		if !ok {
			return nil
		}
		return s.sessions[id]
	}
	if f.Game != "" {
		ids := make([]string, 0, len(s.sessions))
		for id := range s.sessions {
			ids = append(ids, string(id))
		}
		sort.Strings(ids)
		for _, id := range ids {
			sess := s.sessions[model.SessionID(id)]
			if f.Matches(sess) {
				return sess
			}
		}
	}
	return nil
}

func (s *Storage) ListConnections(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conns := make([]string, 0, len(s.connIndex))
	for conn := range s.connIndex {
		conns = append(conns, conn)
	}
	sort.Strings(conns)
	return conns, nil
}

func (s *Storage) PurgeConnections(ctx context.Context, ids []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for _, conn := range ids {
		id, ok := s.connIndex[conn]
		if !ok {
			continue
		}
		delete(s.sessions, id)
		delete(s.connIndex, conn)
		removed++
	}
	return removed, nil
}

func (s *Storage) Create(ctx context.Context, sess *model.PlayerSession) (*model.PlayerSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Supersede any prior session bound to the same connection
	if sess.ConnectionID != "" {
		if prior, ok := s.connIndex[sess.ConnectionID]; ok {
			delete(s.sessions, prior)
			delete(s.connIndex, sess.ConnectionID)
		}
	}

	stored := sess.Clone()
	s.sessions[stored.ID] = stored
	if stored.ConnectionID != "" {
		s.connIndex[stored.ConnectionID] = stored.ID
	}
	return stored.Clone(), nil
}

func (s *Storage) Update(ctx context.Context, f storage.Filter, p storage.Patch) (*model.PlayerSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.find(f)
	if sess == nil {
		return nil, model.ErrSessionNotFound
	}

	if p.ConnectionID != nil && *p.ConnectionID != sess.ConnectionID {
		delete(s.connIndex, sess.ConnectionID)
		if *p.ConnectionID != "" {
			s.connIndex[*p.ConnectionID] = sess.ID
		}
	}

	p.Apply(sess)
	sess.UpdatedAt = time.Now().UTC()
	return sess.Clone(), nil
}

func (s *Storage) Delete(ctx context.Context, f storage.Filter) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.find(f)
	if sess == nil {
		return 0, nil
	}
	delete(s.sessions, sess.ID)
	if sess.ConnectionID != "" {
		delete(s.connIndex, sess.ConnectionID)
	}
	return 1, nil
}

func (s *Storage) GetMeta(ctx context.Context, f storage.Filter) (*model.SessionMeta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess := s.find(f)
	if sess == nil {
		return nil, model.ErrInvalidUser
	}
	return sess.Meta(), nil
}

func (s *Storage) GetConnectionID(ctx context.Context, f storage.Filter) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess := s.find(f)
	if sess == nil || sess.ConnectionID == "" {
		return "", model.ErrInvalidUser
	}
	return sess.ConnectionID, nil
}

func (s *Storage) GetCards(ctx context.Context, f storage.Filter, all bool) ([]model.Card, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess := s.find(f)
	if sess == nil {
		return []model.Card{}, nil
	}

	cards := sess.Cards
	if !all && len(cards) > 0 {
		cards = cards[1:]
	}
	out := make([]model.Card, len(cards))
	copy(out, cards)
	return out, nil
}
