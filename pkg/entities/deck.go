package entities

import "github.com/fadedpez/neonroyal/pkg/rng"

type Deck struct {
	Cards []*Card
}

// NewDeck creates a new deck of 52 cards, one of each rank and suit
func NewDeck() *Deck {
	cards := make([]*Card, 0, 52)

	for _, suit := range Suits {
		for _, rank := range Ranks {
			cards = append(cards, NewCard(suit, rank))
		}
	}

	return &Deck{Cards: cards}
}

// NewShuffledDeck creates a 52 card deck shuffled by src
func NewShuffledDeck(src rng.Source) *Deck {
	deck := NewDeck()
	deck.Shuffle(src)
	return deck
}

// Shuffle reorders the deck using draws from src
func (d *Deck) Shuffle(src rng.Source) {
	rng.Shuffle(src, len(d.Cards), func(i, j int) {
		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	})
}

// Draw removes and returns the top card from the deck
func (d *Deck) Draw() *Card {
	if len(d.Cards) == 0 {
		return nil
	}
	card := d.Cards[0]
	d.Cards = d.Cards[1:]
	return card
}

// Remaining returns how many cards are left
func (d *Deck) Remaining() int {
	return len(d.Cards)
}

// RandomCard draws a card from an infinite shoe: suit and rank are chosen
// independently, so repeats are possible.
func RandomCard(src rng.Source) *Card {
	suit := Suits[rng.Intn(src, len(Suits))]
	rank := Ranks[rng.Intn(src, len(Ranks))]
	return NewCard(suit, rank)
}
