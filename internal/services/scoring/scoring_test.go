package scoring

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/cardhouse/blackjackd/internal/model"
)

type ScoringSuite struct {
	suite.Suite
}

func TestScoringSuite(t *testing.T) {
	suite.Run(t, new(ScoringSuite))
}

func (s *ScoringSuite) TestEmptyHand() {
	first, second := Sums(nil)
	s.Equal(0, first)
	s.Equal(0, second)
}

func (s *ScoringSuite) TestSingleAce() {
	first, second := Sums(model.NewHand("A"))
	s.Equal(1, first)
	s.Equal(11, second)
}

func (s *ScoringSuite) TestAceAndFaceCard() {
	first, second := Sums(model.NewHand("A", "K"))
	s.Equal(11, first)
	s.Equal(21, second)
}

func (s *ScoringSuite) TestFaceCardsCountTen() {
	first, second := Sums(model.NewHand("J", "Q", "K"))
	s.Equal(30, first)
	s.Equal(30, second)
}

func (s *ScoringSuite) TestNumericHand() {
	first, second := Sums(model.NewHand("2", "7", "10"))
	s.Equal(19, first)
	s.Equal(19, second)
}

func (s *ScoringSuite) TestNoAceTotalsAreEqual() {
	hands := [][]model.Card{
		model.NewHand("2"),
		model.NewHand("5", "9"),
		model.NewHand("10", "J", "3"),
		model.NewHand("Q", "K", "4", "6"),
	}
	for _, hand := range hands {
		first, second := Sums(hand)
		s.Equal(first, second)
	}
}

func (s *ScoringSuite) TestEveryAceRaisesSecondTotal() {
	// The fold applies the 1/11 split per ace with no re-normalization
	first, second := Sums(model.NewHand("A", "A"))
	s.Equal(2, first)
	s.Equal(22, second)
}

func (s *ScoringSuite) TestUnknownRankScoresZero() {
	first, second := Sums([]model.Card{{Display: "?"}})
	s.Equal(0, first)
	s.Equal(0, second)
}
