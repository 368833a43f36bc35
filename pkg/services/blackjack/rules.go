package blackjack

import (
	"github.com/fadedpez/neonroyal/pkg/entities"
)

const (
	Limit          = 21
	DealerStandsOn = 17 // dealer draws while below this, soft or hard
)

func IsAce(card *entities.Card) bool {
	return card.Rank == entities.Ace
}

// CalculateScore sums the hand with aces as 11 and faces as 10, then takes
// 10 off per ace while the total is over 21.
func CalculateScore(cards []*entities.Card) int {
	score := 0
	aces := 0

	for _, card := range cards {
		score += card.BlackjackValue()
		if IsAce(card) {
			aces++
		}
	}

	for score > Limit && aces > 0 {
		score -= 10
		aces--
	}

	return score
}

// IsBust checks if a hand exceeds 21
func IsBust(cards []*entities.Card) bool {
	return CalculateScore(cards) > Limit
}

// DealerShouldDraw reports whether the dealer takes another card
func DealerShouldDraw(cards []*entities.Card) bool {
	return CalculateScore(cards) < DealerStandsOn
}

// CompareHands compares the player's hand against the dealer's and returns:
// 1 if the player wins
// -1 if the dealer wins
// 0 if push (tie)
func CompareHands(player, dealer []*entities.Card) int {
	if IsBust(player) {
		return -1
	}
	if IsBust(dealer) {
		return 1
	}

	playerScore := CalculateScore(player)
	dealerScore := CalculateScore(dealer)
	if playerScore > dealerScore {
		return 1
	} else if playerScore < dealerScore {
		return -1
	}
	return 0
}
