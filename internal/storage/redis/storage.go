package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cardhouse/blackjackd/internal/model"
	"github.com/cardhouse/blackjackd/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Each session is a JSON document; a connection index and a live-connection
// set are maintained alongside it in pipelines so filter lookups stay O(1).
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// getSession loads a session document by id. Missing documents return
// (nil, nil) so callers decide what absence means.
func (s *Storage) getSession(ctx context.Context, id model.SessionID) (*model.PlayerSession, error) {
	data, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var sess model.PlayerSession
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// resolve finds the first session matching the filter
func (s *Storage) resolve(ctx context.Context, f storage.Filter) (*model.PlayerSession, error) {
	switch {
	case f.ID != "":
		return s.getSession(ctx, f.ID)
	case f.ConnectionID != "":
		idStr, err := s.client.Get(ctx, connIndexKey(f.ConnectionID)).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return nil, nil
			}
			return nil, err
		}
		return s.getSession(ctx, model.SessionID(idStr))
	case f.Game != "":
		ids, err := s.client.SMembers(ctx, gameIndexKey(f.Game)).Result()
		if err != nil {
			return nil, err
		}
		sort.Strings(ids)
		for _, id := range ids {
			sess, err := s.getSession(ctx, model.SessionID(id))
			if err != nil {
				return nil, err
			}
			// Index entries may outlive their documents
			if sess != nil && f.Matches(sess) {
				return sess, nil
			}
		}
		return nil, nil
	default:
		return nil, nil
	}
}

// writeSession stores the session document and its indexes in one pipeline
func (s *Storage) writeSession(ctx context.Context, sess *model.PlayerSession) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, sessionKey(sess.ID), data, s.cfg.SessionTTL)
	if sess.ConnectionID != "" {
		pipe.Set(ctx, connIndexKey(sess.ConnectionID), string(sess.ID), s.cfg.SessionTTL)
		pipe.SAdd(ctx, connectionsKey(), sess.ConnectionID)
	}
	if sess.Game != "" {
		pipe.SAdd(ctx, gameIndexKey(sess.Game), string(sess.ID))
	}
	_, err = pipe.Exec(ctx)
	return err
}

// removeSession deletes the session document and its indexes in one pipeline
func (s *Storage) removeSession(ctx context.Context, sess *model.PlayerSession) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, sessionKey(sess.ID))
	if sess.ConnectionID != "" {
		pipe.Del(ctx, connIndexKey(sess.ConnectionID))
		pipe.SRem(ctx, connectionsKey(), sess.ConnectionID)
	}
	if sess.Game != "" {
		pipe.SRem(ctx, gameIndexKey(sess.Game), string(sess.ID))
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) ListConnections(ctx context.Context) ([]string, error) {
	conns, err := s.client.SMembers(ctx, connectionsKey()).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(conns)
	return conns, nil
}

func (s *Storage) PurgeConnections(ctx context.Context, ids []string) (int, error) {
	removed := 0
	for _, conn := range ids {
		sess, err := s.resolve(ctx, storage.ByConnection(conn))
		if err != nil {
			return removed, err
		}
		if sess == nil {
			// The connection may have a dangling set entry but no session
			s.client.SRem(ctx, connectionsKey(), conn)
			continue
		}
		if err := s.removeSession(ctx, sess); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

func (s *Storage) Create(ctx context.Context, sess *model.PlayerSession) (*model.PlayerSession, error) {
	// Supersede any prior session bound to the same connection
	if sess.ConnectionID != "" {
		prior, err := s.resolve(ctx, storage.ByConnection(sess.ConnectionID))
		if err != nil {
			return nil, err
		}
		if prior != nil {
			if err := s.removeSession(ctx, prior); err != nil {
				return nil, err
			}
		}
	}

	stored := sess.Clone()
	if err := s.writeSession(ctx, stored); err != nil {
		return nil, err
	}
	return stored, nil
}

func (s *Storage) Update(ctx context.Context, f storage.Filter, p storage.Patch) (*model.PlayerSession, error) {
	sess, err := s.resolve(ctx, f)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, model.ErrSessionNotFound
	}

	// Rebinding the connection moves the index entries
	if p.ConnectionID != nil && *p.ConnectionID != sess.ConnectionID && sess.ConnectionID != "" {
		pipe := s.client.Pipeline()
		pipe.Del(ctx, connIndexKey(sess.ConnectionID))
		pipe.SRem(ctx, connectionsKey(), sess.ConnectionID)
		if _, err := pipe.Exec(ctx); err != nil {
			return nil, err
		}
	}
	if p.Game != nil && *p.Game != sess.Game && sess.Game != "" {
		if err := s.client.SRem(ctx, gameIndexKey(sess.Game), string(sess.ID)).Err(); err != nil {
			return nil, err
		}
	}

	p.Apply(sess)
	sess.UpdatedAt = time.Now().UTC()

	if err := s.writeSession(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *Storage) Delete(ctx context.Context, f storage.Filter) (int, error) {
	sess, err := s.resolve(ctx, f)
	if err != nil {
		return 0, err
	}
	if sess == nil {
		return 0, nil
	}
	if err := s.removeSession(ctx, sess); err != nil {
		return 0, err
	}
	return 1, nil
}

func (s *Storage) GetMeta(ctx context.Context, f storage.Filter) (*model.SessionMeta, error) {
	sess, err := s.resolve(ctx, f)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, model.ErrInvalidUser
	}
	return sess.Meta(), nil
}

func (s *Storage) GetConnectionID(ctx context.Context, f storage.Filter) (string, error) {
	sess, err := s.resolve(ctx, f)
	if err != nil {
		return "", err
	}
	if sess == nil || sess.ConnectionID == "" {
		return "", model.ErrInvalidUser
	}
	return sess.ConnectionID, nil
}

func (s *Storage) GetCards(ctx context.Context, f storage.Filter, all bool) ([]model.Card, error) {
	sess, err := s.resolve(ctx, f)
	if err != nil {
		return nil, err
	}
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
