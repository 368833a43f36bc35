package console

import (
	"fmt"
	"strings"

	"github.com/fadedpez/neonroyal/pkg/entities"
	"github.com/fadedpez/neonroyal/pkg/services/blackjack"
)

var suitIcons = map[entities.Suit]string{
	entities.Hearts:   "♥",
	entities.Diamonds: "♦",
	entities.Clubs:    "♣",
	entities.Spades:   "♠",
}

func renderCard(card entities.Card) string {
	return string(card.Rank) + suitIcons[card.Suit]
}

func renderCards(cards []entities.Card) string {
	parts := make([]string, len(cards))
	for i, card := range cards {
		parts[i] = renderCard(card)
	}
	return strings.Join(parts, " ")
}

func renderTable(table *blackjack.Table) string {
	dealer := renderCards(table.Dealer)
	if table.HoleHidden && len(table.Dealer) > 1 {
		dealer = renderCard(table.Dealer[0]) + " ??"
	}
	return fmt.Sprintf("Dealer: %s (%d)\nYou:    %s (%d)\n%s",
		dealer, table.DealerScore,
		renderCards(table.Player), table.PlayerScore,
		table.Narration)
}
