package entities

// GameType identifies one of the casino games

type GameType string

const (
	GameSlots     GameType = "SLOTS"
	GameBlackjack GameType = "BLACKJACK"
	GameRoulette  GameType = "ROULETTE"
	GameHiLo      GameType = "HI_LO"
	GameCoinFlip  GameType = "COIN_FLIP"
	GameHoldem    GameType = "TEXAS_HOLDEM"
	GamePlinko    GameType = "PLINKO"
)

// GameTypes lists every playable game in lobby order
var GameTypes = []GameType{GameSlots, GameBlackjack, GameRoulette, GameHiLo, GameCoinFlip, GameHoldem, GamePlinko}

// Valid reports whether g is a known game
func (g GameType) Valid() bool {
	for _, known := range GameTypes {
		if g == known {
			return true
		}
	}
	return false
}

// Outcome is the classification of a settled round

type Outcome string

const (
	OutcomeWin  Outcome = "WIN"
	OutcomeLoss Outcome = "LOSS"
	OutcomePush Outcome = "PUSH"
)

// Valid reports whether o is a known outcome
func (o Outcome) Valid() bool {
	return o == OutcomeWin || o == OutcomeLoss || o == OutcomePush
}

// ClassifyPayout compares what came back against what was staked
func ClassifyPayout(wager, payout int64) Outcome {
	switch {
	case payout > wager:
		return OutcomeWin
	case payout == wager:
		return OutcomePush
	default:
		return OutcomeLoss
	}
}
