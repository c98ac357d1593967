// Package scoring computes point totals for a hand of cards. It only
// scores; bust and soft-17 decisions belong to the game layer.
package scoring

import "github.com/cardhouse/blackjackd/internal/model"

// Sums folds over the hand and returns two running totals. The ace
// contributes 1 to the first total and 11 to the second; face cards
// contribute 10 to both; every other rank contributes its face value to
// both. There is no re-normalization beyond this substitution: with
// several aces the second total counts each at 11, which is the observed
// behavior of the original rules engine and is preserved as-is.
func Sums(cards []model.Card) (first, second int) {
	for _, card := range cards {
		switch card.Display {
		case "A":
			first += 1
			second += 11
		case "J", "Q", "K":
			first += 10
			second += 10
		default:
			first += faceValue(card)
			second += faceValue(card)
		}
	}
	return first, second
}

// faceValue is the first entry of the card's value set, 0 for a card
// without values
func faceValue(card model.Card) int {
	if len(card.Values) == 0 {
		return 0
	}
	return card.Values[0]
}
