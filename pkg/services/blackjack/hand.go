package blackjack

import (
	"errors"

	"github.com/fadedpez/neonroyal/pkg/entities"
)

var (
	ErrHandBust    = errors.New("hand is bust")
	ErrHandStand   = errors.New("hand is stand")
	ErrInvalidCard = errors.New("invalid card")
)

// Status represents the current state of the hand
type Status string

const (
	StatusPlaying Status = "PLAYING"
	StatusBust    Status = "BUST"
	StatusStand   Status = "STAND"
)

// Hand represents one side's cards in a game of blackjack

type Hand struct {
	Cards  []*entities.Card
	Status Status
}

// NewHand creates a new blackjack hand
func NewHand() *Hand {
	return &Hand{
		Cards:  make([]*entities.Card, 0, 5),
		Status: StatusPlaying,
	}
}

// AddCard adds a card to the hand
func (h *Hand) AddCard(card *entities.Card) error {
	switch h.Status {
	case StatusBust:
		return ErrHandBust
	case StatusStand:
		return ErrHandStand
	}

	if card == nil {
		return ErrInvalidCard
	}

	h.Cards = append(h.Cards, card)

	// Auto-bust if score exceeds 21
	if IsBust(h.Cards) {
		h.Status = StatusBust
	}

	return nil
}

// Stand marks the hand as stood
func (h *Hand) Stand() error {
	switch h.Status {
	case StatusBust:
		return ErrHandBust
	case StatusStand:
		return ErrHandStand
	}

	h.Status = StatusStand
	return nil
}

// Value returns the score of the hand after soft-ace reduction
func (h *Hand) Value() int {
	return CalculateScore(h.Cards)
}

// Copy returns the cards so callers cannot mutate the hand
func (h *Hand) Copy() []entities.Card {
	cards := make([]entities.Card, len(h.Cards))
	for i, c := range h.Cards {
		cards[i] = *c
	}
	return cards
}
