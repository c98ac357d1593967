package model

// Card is a single playing card as dealt into a player's hand.
// Display is the rank shown to the player ("A", "2".."10", "J", "Q", "K");
// Values holds the point values the rank can contribute. Only the ace
// carries two values.
type Card struct {
	Display string `json:"display"`
	Values  []int  `json:"values"`
}

// rankValues maps a display rank to its point values
var rankValues = map[string][]int{
	"A":  {1, 11},
	"2":  {2},
	"3":  {3},
	"4":  {4},
	"5":  {5},
	"6":  {6},
	"7":  {7},
	"8":  {8},
	"9":  {9},
	"10": {10},
	"J":  {10},
	"Q":  {10},
	"K":  {10},
}

// NewCard builds a Card for a display rank. Unknown ranks get an empty
// value set; the evaluator treats them as zero.
func NewCard(display string) Card {
	values, ok := rankValues[display]
	if !ok {
		return Card{Display: display}
	}
	vs := make([]int, len(values))
	copy(vs, values)
	return Card{Display: display, Values: vs}
}

// NewHand builds a hand from display ranks, preserving order.
func NewHand(displays ...string) []Card {
	cards := make([]Card, len(displays))
	for i, d := range displays {
		cards[i] = NewCard(d)
	}
	return cards
}
