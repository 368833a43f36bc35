package api

import (
	"time"

	"github.com/fadedpez/neonroyal/pkg/entities"
	"github.com/fadedpez/neonroyal/pkg/services/blackjack"
	"github.com/fadedpez/neonroyal/pkg/services/coinflip"
	"github.com/fadedpez/neonroyal/pkg/services/hilo"
	"github.com/fadedpez/neonroyal/pkg/services/holdem"
	"github.com/fadedpez/neonroyal/pkg/services/ledger"
	"github.com/fadedpez/neonroyal/pkg/services/plinko"
	"github.com/fadedpez/neonroyal/pkg/services/roulette"
	"github.com/fadedpez/neonroyal/pkg/services/slots"
)

type stateView struct {
	Ledger    entities.PlayerLedger `json:"ledger"`
	OpenWager int64                 `json:"open_wager"`
	Active    []entities.GameType   `json:"active"`
	Time      entities.TimeContext  `json:"time"`
}

type shopItemView struct {
	entities.ShopItem
	Owned    bool `json:"owned"`
	Equipped bool `json:"equipped"`
}

// roundView carries the fields every game result shares
type roundView struct {
	Payout    int64                  `json:"payout"`
	Narration string                 `json:"narration"`
	Entry     *entities.HistoryEntry `json:"entry,omitempty"`
}

type slotsResult struct {
	roundView
	Reels []slots.Symbol `json:"reels"`
	Icons []string       `json:"icons"`
}

func slotsView(spin *slots.Spin) slotsResult {
	res := slotsResult{
		roundView: roundView{Payout: spin.Payout, Narration: spin.Narration, Entry: spin.Entry},
		Reels:     spin.Reels[:],
	}
	for _, symbol := range spin.Reels {
		line, _ := slots.Lookup(symbol)
		res.Icons = append(res.Icons, line.Icon)
	}
	return res
}

type blackjackResult struct {
	roundView
	Player      []entities.Card  `json:"player"`
	Dealer      []entities.Card  `json:"dealer"`
	PlayerScore int              `json:"player_score"`
	DealerScore int              `json:"dealer_score"`
	HoleHidden  bool             `json:"hole_hidden"`
	Finished    bool             `json:"finished"`
	Outcome     entities.Outcome `json:"outcome,omitempty"`
}

// blackjackView never sends the face-down card
func blackjackView(table *blackjack.Table) blackjackResult {
	dealer := table.Dealer
	if table.HoleHidden && len(dealer) > 1 {
		dealer = dealer[:1]
	}
	return blackjackResult{
		roundView:   roundView{Payout: table.Payout, Narration: table.Narration, Entry: table.Entry},
		Player:      table.Player,
		Dealer:      dealer,
		PlayerScore: table.PlayerScore,
		DealerScore: table.DealerScore,
		HoleHidden:  table.HoleHidden,
		Finished:    table.Finished,
		Outcome:     table.Outcome,
	}
}

type rouletteResult struct {
	roundView
	Pick   int            `json:"pick"`
	Number int            `json:"number"`
	Color  roulette.Color `json:"color"`
}

func rouletteView(spin *roulette.Spin) rouletteResult {
	return rouletteResult{
		roundView: roundView{Payout: spin.Payout, Narration: spin.Narration, Entry: spin.Entry},
		Pick:      spin.Pick,
		Number:    spin.Number,
		Color:     spin.Color,
	}
}

type hiloResult struct {
	roundView
	Base     entities.Card  `json:"base"`
	Next     *entities.Card `json:"next,omitempty"`
	Guess    hilo.Guess     `json:"guess,omitempty"`
	Finished bool           `json:"finished"`
}

func hiloView(hand *hilo.Hand) hiloResult {
	return hiloResult{
		roundView: roundView{Payout: hand.Payout, Narration: hand.Narration, Entry: hand.Entry},
		Base:      hand.Base,
		Next:      hand.Next,
		Guess:     hand.Guess,
		Finished:  hand.Finished,
	}
}

type coinflipResult struct {
	roundView
	Pick   coinflip.Side `json:"pick"`
	Landed coinflip.Side `json:"landed"`
}

func coinflipView(flip *coinflip.Flip) coinflipResult {
	return coinflipResult{
		roundView: roundView{Payout: flip.Payout, Narration: flip.Narration, Entry: flip.Entry},
		Pick:      flip.Pick,
		Landed:    flip.Landed,
	}
}

type holdemResult struct {
	roundView
	Stage      holdem.Stage     `json:"stage"`
	Player     []entities.Card  `json:"player"`
	Dealer     []entities.Card  `json:"dealer,omitempty"`
	Community  []entities.Card  `json:"community"`
	PlayerHigh int              `json:"player_high,omitempty"`
	DealerHigh int              `json:"dealer_high,omitempty"`
	Outcome    entities.Outcome `json:"outcome,omitempty"`
}

func holdemView(board *holdem.Board) holdemResult {
	return holdemResult{
		roundView:  roundView{Payout: board.Payout, Narration: board.Narration, Entry: board.Entry},
		Stage:      board.Stage,
		Player:     board.Player,
		Dealer:     board.Dealer,
		Community:  board.Community,
		PlayerHigh: board.PlayerHigh,
		DealerHigh: board.DealerHigh,
		Outcome:    board.Outcome,
	}
}

type plinkoResult struct {
	roundView
	Path       []int  `json:"path"`
	Bucket     int    `json:"bucket"`
	Multiplier string `json:"multiplier"`
}

func plinkoView(drop *plinko.Drop) plinkoResult {
	return plinkoResult{
		roundView:  roundView{Payout: drop.Payout, Narration: drop.Narration, Entry: drop.Entry},
		Path:       drop.Path,
		Bucket:     drop.Bucket,
		Multiplier: drop.Multiplier.String(),
	}
}

type eventView struct {
	Kind      ledger.EventKind       `json:"kind"`
	Narration string                 `json:"narration,omitempty"`
	Balance   int64                  `json:"balance"`
	Entry     *entities.HistoryEntry `json:"entry,omitempty"`
	At        time.Time              `json:"at"`
}

func newEventView(ev ledger.Event) eventView {
	return eventView{
		Kind:      ev.Kind,
		Narration: ev.Narration,
		Balance:   ev.Balance,
		Entry:     ev.Entry,
		At:        ev.At,
	}
}
