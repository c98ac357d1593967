package sweeper

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/cardhouse/blackjackd/internal/dependencies/mocks"
	"github.com/cardhouse/blackjackd/internal/services/session"
	"github.com/cardhouse/blackjackd/internal/storage/memory"
	"github.com/cardhouse/blackjackd/internal/storage/safe"
	"github.com/cardhouse/blackjackd/internal/testutil"
)

type staticLiveness struct {
	conns []string
}

func (s *staticLiveness) LiveConnections() []string {
	return s.conns
}

type SweeperSuite struct {
	suite.Suite
	sessions *session.Service
	live     *staticLiveness
	sweeper  *Sweeper
	ctx      context.Context
}

func TestSweeperSuite(t *testing.T) {
	suite.Run(t, new(SweeperSuite))
}

func (s *SweeperSuite) SetupTest() {
	logger := testutil.NopLogger()
	clk := mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	s.sessions = session.New(safe.Wrap(memory.New()), clk, logger)
	s.live = &staticLiveness{}
	s.sweeper = New(s.sessions, s.live, time.Minute, logger)
	s.ctx = context.Background()
}

func (s *SweeperSuite) TestSweepPurgesOnlyStaleConnections() {
	_, err := s.sessions.Connect(s.ctx, "conn-live")
	s.Require().NoError(err)
	_, err = s.sessions.Connect(s.ctx, "conn-stale")
	s.Require().NoError(err)

	s.live.conns = []string{"conn-live"}

	removed, err := s.sweeper.Sweep(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, removed)

	conns, err := s.sessions.ListConnections(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"conn-live"}, conns)
}

func (s *SweeperSuite) TestSweepAllLive() {
	_, err := s.sessions.Connect(s.ctx, "conn-a")
	s.Require().NoError(err)

	s.live.conns = []string{"conn-a"}

	removed, err := s.sweeper.Sweep(s.ctx)
	s.Require().NoError(err)
	s.Equal(0, removed)
}

func (s *SweeperSuite) TestSweepEmptyStore() {
	removed, err := s.sweeper.Sweep(s.ctx)
	s.Require().NoError(err)
	s.Equal(0, removed)
}

func (s *SweeperSuite) TestRunStopsOnContextCancel() {
	ctx, cancel := context.WithCancel(s.ctx)

	done := make(chan struct{})
	go func() {
		s.sweeper.Run(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		s.Fail("sweeper did not stop after cancel")
	}
}
