package factory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/cardhouse/blackjackd/internal/model"
	"github.com/cardhouse/blackjackd/internal/services/sweeper"
	"github.com/cardhouse/blackjackd/internal/storage"
	"github.com/cardhouse/blackjackd/internal/testutil"
	"github.com/cardhouse/blackjackd/internal/ws"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

// Test: complete player lifecycle from connect to disconnect
func (s *IntegrationSuite) TestCompleteSessionFlow() {
	// Step 1: Player connects
	sess, err := s.app.Sessions.Connect(s.ctx, "conn-1")
	s.Require().NoError(err)
	s.Equal(s.app.MockClock.Now(), sess.CreatedAt)

	// Step 2: Player joins a table
	meta, err := s.app.Sessions.JoinGame(s.ctx, "conn-1", "table-1")
	s.Require().NoError(err)
	s.Equal(model.GameID("table-1"), meta.Game)

	// Step 3: Player declares ready
	meta, err = s.app.Sessions.SetReadyState(s.ctx, "conn-1", true)
	s.Require().NoError(err)
	s.True(meta.Ready)

	// Step 4: Deal the opening hand
	_, err = s.app.Sessions.SetCards(s.ctx, "conn-1", model.NewHand("A", "7"))
	s.Require().NoError(err)

	// Opponents see the hand without the hidden first card
	visible, err := s.app.Sessions.GetCards(s.ctx, storage.ByConnection("conn-1"), false)
	s.Require().NoError(err)
	s.Require().Len(visible, 1)
	s.Equal("7", visible[0].Display)

	// Step 5: Player hits; the reply leads with the drawn card
	drawn, err := s.app.Sessions.AddCards(s.ctx, "conn-1", model.NewHand("3"))
	s.Require().NoError(err)
	s.Require().Len(drawn, 3)
	s.Equal("3", drawn[0].Display)

	// Step 6: Score the full hand (A + 7 + 3)
	first, second, err := s.app.Sessions.CardSums(s.ctx, storage.ByConnection("conn-1"))
	s.Require().NoError(err)
	s.Equal(11, first)
	s.Equal(21, second)

	// Step 7: Player stands
	meta, err = s.app.Sessions.SetStandState(s.ctx, storage.ByConnection("conn-1"), true)
	s.Require().NoError(err)
	s.True(meta.Stand)

	// Step 8: Player disconnects; the session is gone
	s.Require().NoError(s.app.Sessions.Disconnect(s.ctx, "conn-1"))
	_, err = s.app.Sessions.GetMeta(s.ctx, storage.ByConnection("conn-1"))
	s.ErrorIs(err, model.ErrInvalidUser)
}

// Test: two players at the same table stay isolated
func (s *IntegrationSuite) TestTwoPlayersSameTable() {
	_, err := s.app.Sessions.Connect(s.ctx, "conn-1")
	s.Require().NoError(err)
	_, err = s.app.Sessions.Connect(s.ctx, "conn-2")
	s.Require().NoError(err)

	_, err = s.app.Sessions.JoinGame(s.ctx, "conn-1", "table-1")
	s.Require().NoError(err)
	_, err = s.app.Sessions.JoinGame(s.ctx, "conn-2", "table-1")
	s.Require().NoError(err)

	_, err = s.app.Sessions.SetCards(s.ctx, "conn-1", model.NewHand("K", "K"))
	s.Require().NoError(err)
	_, err = s.app.Sessions.SetCards(s.ctx, "conn-2", model.NewHand("2", "3"))
	s.Require().NoError(err)

	first, _, err := s.app.Sessions.CardSums(s.ctx, storage.ByConnection("conn-1"))
	s.Require().NoError(err)
	s.Equal(20, first)

	first, _, err = s.app.Sessions.CardSums(s.ctx, storage.ByConnection("conn-2"))
	s.Require().NoError(err)
	s.Equal(5, first)
}

// Test: a reconnect supersedes the old session and drops its state
func (s *IntegrationSuite) TestReconnectResetsSession() {
	_, err := s.app.Sessions.Connect(s.ctx, "conn-1")
	s.Require().NoError(err)
	_, err = s.app.Sessions.SetCards(s.ctx, "conn-1", model.NewHand("A", "K"))
	s.Require().NoError(err)

	s.app.MockClock.Advance(time.Minute)
	fresh, err := s.app.Sessions.Connect(s.ctx, "conn-1")
	s.Require().NoError(err)
	s.Empty(fresh.Cards)

	cards, err := s.app.Sessions.GetCards(s.ctx, storage.ByConnection("conn-1"), true)
	s.Require().NoError(err)
	s.Empty(cards)
}

// Test: the sweeper reaps sessions the hub no longer tracks
func (s *IntegrationSuite) TestSweeperUsesHubLiveness() {
	_, err := s.app.Sessions.Connect(s.ctx, "conn-live")
	s.Require().NoError(err)
	_, err = s.app.Sessions.Connect(s.ctx, "conn-dead")
	s.Require().NoError(err)

	s.app.Hub.Register("conn-live", nopSender{})

	sw := sweeper.New(s.app.Sessions, s.app.Hub, time.Minute, testutil.NopLogger())
	removed, err := sw.Sweep(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, removed)

	conns, err := s.app.Sessions.ListConnections(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"conn-live"}, conns)
}

type nopSender struct{}

func (nopSender) Send(context.Context, ws.Result) error { return nil }
