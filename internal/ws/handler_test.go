package ws

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/cardhouse/blackjackd/internal/dependencies/mocks"
	"github.com/cardhouse/blackjackd/internal/model"
	"github.com/cardhouse/blackjackd/internal/services/session"
	"github.com/cardhouse/blackjackd/internal/storage/memory"
	"github.com/cardhouse/blackjackd/internal/storage/safe"
	"github.com/cardhouse/blackjackd/internal/testutil"
)

// captureSender records every result sent on the connection
type captureSender struct {
	results []Result
}

func (c *captureSender) Send(_ context.Context, res Result) error {
	c.results = append(c.results, res)
	return nil
}

func (c *captureSender) last() Result {
	return c.results[len(c.results)-1]
}

type HandlerSuite struct {
	suite.Suite
	sessions   *session.Service
	dispatcher *Dispatcher
	sender     *captureSender
	ctx        context.Context
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	logger := testutil.NopLogger()
	clk := mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	s.sessions = session.New(safe.Wrap(memory.New()), clk, logger)
	s.dispatcher = NewDispatcher(NewHandlers(s.sessions), logger)
	s.sender = &captureSender{}
	s.ctx = context.Background()
}

func (s *HandlerSuite) connect(conn string) {
	_, err := s.sessions.Connect(s.ctx, conn)
	s.Require().NoError(err)
}

func (s *HandlerSuite) dispatch(conn, action string, payload any) Result {
	evt := Event{Action: action}
	if payload != nil {
		raw, err := json.Marshal(payload)
		s.Require().NoError(err)
		evt.Payload = raw
	}
	s.dispatcher.Dispatch(s.ctx, conn, evt, s.sender)
	s.Require().NotEmpty(s.sender.results)
	return s.sender.last()
}

func (s *HandlerSuite) TestUnknownAction() {
	res := s.dispatch("conn-1", "teleport", nil)
	s.Equal(StatusRequestError, res.Status)
	s.Require().NotNil(res.Error)
	s.Equal(CodeUnknownAction, *res.Error)
}

func (s *HandlerSuite) TestStatusUnknownConnection() {
	res := s.dispatch("conn-missing", "status", nil)
	s.Equal(StatusRequestError, res.Status)
	s.Require().NotNil(res.Error)
	s.Equal(CodeInvalidUser, *res.Error)
}

func (s *HandlerSuite) TestStatusBeforeJoining() {
	s.connect("conn-1")

	res := s.dispatch("conn-1", "status", nil)
	s.Equal(StatusRequestError, res.Status)
	s.Require().NotNil(res.Error)
	s.Equal(CodeInvalidGame, *res.Error)
}

func (s *HandlerSuite) TestStatusAfterJoining() {
	s.connect("conn-1")
	_, err := s.sessions.JoinGame(s.ctx, "conn-1", "table-3")
	s.Require().NoError(err)

	res := s.dispatch("conn-1", "status", nil)
	s.Equal(StatusOK, res.Status)
	s.Nil(res.Error)

	meta, ok := res.Content.(*model.SessionMeta)
	s.Require().True(ok)
	s.Equal(model.GameID("table-3"), meta.Game)
}

func (s *HandlerSuite) TestJoin() {
	s.connect("conn-1")

	res := s.dispatch("conn-1", "join", map[string]string{"game": "table-5"})
	s.Equal(StatusOK, res.Status)

	meta, ok := res.Content.(*model.SessionMeta)
	s.Require().True(ok)
	s.Equal(model.GameID("table-5"), meta.Game)
}

func (s *HandlerSuite) TestJoinEmptyGame() {
	s.connect("conn-1")

	res := s.dispatch("conn-1", "join", map[string]string{"game": ""})
	s.Equal(StatusRequestError, res.Status)
	s.Require().NotNil(res.Error)
	s.Equal(CodeInvalidGame, *res.Error)
}

func (s *HandlerSuite) TestReady() {
	s.connect("conn-1")

	res := s.dispatch("conn-1", "ready", map[string]bool{"ready": true})
	s.Equal(StatusOK, res.Status)

	meta, ok := res.Content.(*model.SessionMeta)
	s.Require().True(ok)
	s.True(meta.Ready)
}

func (s *HandlerSuite) TestStandDefaultsToTrue() {
	s.connect("conn-1")

	res := s.dispatch("conn-1", "stand", nil)
	s.Equal(StatusOK, res.Status)

	meta, ok := res.Content.(*model.SessionMeta)
	s.Require().True(ok)
	s.True(meta.Stand)
}

func (s *HandlerSuite) TestStandExplicitFalse() {
	s.connect("conn-1")

	res := s.dispatch("conn-1", "stand", map[string]bool{"stand": false})
	s.Equal(StatusOK, res.Status)

	meta, ok := res.Content.(*model.SessionMeta)
	s.Require().True(ok)
	s.False(meta.Stand)
}

func (s *HandlerSuite) TestHandReturnsFullHand() {
	s.connect("conn-1")
	_, err := s.sessions.SetCards(s.ctx, "conn-1", model.NewHand("A", "K", "3"))
	s.Require().NoError(err)

	res := s.dispatch("conn-1", "hand", nil)
	s.Equal(StatusOK, res.Status)

	content, ok := res.Content.(handContent)
	s.Require().True(ok)
	s.Len(content.Cards, 3)
	s.Equal("A", content.Cards[0].Display)
}

func (s *HandlerSuite) TestSums() {
	s.connect("conn-1")
	_, err := s.sessions.SetCards(s.ctx, "conn-1", model.NewHand("A", "K"))
	s.Require().NoError(err)

	res := s.dispatch("conn-1", "sums", nil)
	s.Equal(StatusOK, res.Status)

	content, ok := res.Content.(sumsContent)
	s.Require().True(ok)
	s.Equal(11, content.First)
	s.Equal(21, content.Second)
}

func (s *HandlerSuite) TestSumsUnknownConnection() {
	res := s.dispatch("conn-missing", "sums", nil)
	s.Equal(StatusRequestError, res.Status)
	s.Require().NotNil(res.Error)
	s.Equal(CodeInvalidUser, *res.Error)
}

func (s *HandlerSuite) TestDispatchRecoversHandlerPanic() {
	logger := testutil.NopLogger()
	d := &Dispatcher{
		handlers: map[string]HandlerFunc{
			"boom": func(context.Context, string, Event, Sender) error {
				panic("handler exploded")
			},
		},
		logger: logger,
	}

	d.Dispatch(s.ctx, "conn-1", Event{Action: "boom"}, s.sender)
	s.Require().NotEmpty(s.sender.results)
	res := s.sender.last()
	s.Equal(StatusRequestError, res.Status)
	s.Require().NotNil(res.Error)
	s.Equal(CodeInternalError, *res.Error)
}
