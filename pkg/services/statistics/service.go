// Package statistics summarises the player's settled rounds per game
package statistics

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/fadedpez/neonroyal/pkg/entities"
	"github.com/samber/lo"
)

// DigestSize is how many rounds the recent action digest covers
const DigestSize = 5

// History supplies settled rounds, newest first
type History interface {
	RecentRounds(ctx context.Context, limit int) ([]entities.HistoryEntry, error)
}

// Service provides methods for retrieving and processing round statistics
type Service struct {
	history History
}

// NewService creates a new statistics service
func NewService(history History) *Service {
	return &Service{
		history: history,
	}
}

// GameStats aggregates the rounds of one game. Net is the sum of the signed
// balance changes.
type GameStats struct {
	Game       entities.GameType `json:"game"`
	Rank       int               `json:"rank"`
	Rounds     int               `json:"rounds"`
	Wins       int               `json:"wins"`
	Losses     int               `json:"losses"`
	Pushes     int               `json:"pushes"`
	Won        int64             `json:"won"`
	Lost       int64             `json:"lost"`
	Net        int64             `json:"net"`
	WinRate    float64           `json:"win_rate"`
	IsHotTable bool              `json:"is_hot_table"`
	IsFavorite bool              `json:"is_favorite"`
}

// Board ranks the games by net result
type Board struct {
	Games  []*GameStats `json:"games"`
	Rounds int          `json:"rounds"`
	Net    int64        `json:"net"`
}

// Aggregate folds entries into per-game statistics ranked by net result,
// best first. Games that were never played are left out.
func Aggregate(entries []entities.HistoryEntry) *Board {
	byGame := make(map[entities.GameType]*GameStats)
	board := &Board{}

	for _, entry := range entries {
		stats, ok := byGame[entry.Game]
		if !ok {
			stats = &GameStats{Game: entry.Game}
			byGame[entry.Game] = stats
		}

		stats.Rounds++
		switch entry.Outcome {
		case entities.OutcomeWin:
			stats.Wins++
			stats.Won += entry.Amount
		case entities.OutcomeLoss:
			stats.Losses++
			stats.Lost += entry.Amount
		default:
			stats.Pushes++
		}
	}

	games := lo.Values(byGame)
	for _, stats := range games {
		stats.Net = stats.Won - stats.Lost
		stats.WinRate = float64(stats.Wins) / float64(stats.Rounds)

		board.Rounds += stats.Rounds
		board.Net += stats.Net
	}

	// Sort by net (descending), lobby order breaks ties
	sort.Slice(games, func(i, j int) bool {
		if games[i].Net != games[j].Net {
			return games[i].Net > games[j].Net
		}
		return lobbyIndex(games[i].Game) < lobbyIndex(games[j].Game)
	})

	if len(games) > 0 {
		games[0].IsHotTable = true

		mostPlayed := 0
		for i := 1; i < len(games); i++ {
			if games[i].Rounds > games[mostPlayed].Rounds {
				mostPlayed = i
			}
		}
		games[mostPlayed].IsFavorite = true
	}

	for i := range games {
		games[i].Rank = i + 1
	}

	board.Games = games
	return board
}

func lobbyIndex(game entities.GameType) int {
	if i := lo.IndexOf(entities.GameTypes, game); i >= 0 {
		return i
	}
	return len(entities.GameTypes)
}

// Board aggregates up to limit of the most recent rounds
func (s *Service) Board(ctx context.Context, limit int) (*Board, error) {
	entries, err := s.history.RecentRounds(ctx, limit)
	if err != nil {
		return nil, err
	}
	return Aggregate(entries), nil
}

// Digest renders the last few rounds as one line, e.g.
// "SLOTS: WIN ($15), ROULETTE: LOSS ($10)"
func Digest(entries []entities.HistoryEntry) string {
	if len(entries) > DigestSize {
		entries = entries[:DigestSize]
	}
	if len(entries) == 0 {
		return "Just arrived at the floor"
	}

	parts := lo.Map(entries, func(entry entities.HistoryEntry, _ int) string {
		return fmt.Sprintf("%s: %s ($%d)", entry.Game, entry.Outcome, entry.Amount)
	})
	return strings.Join(parts, ", ")
}

// RecentAction is the digest of the latest rounds
func (s *Service) RecentAction(ctx context.Context) (string, error) {
	entries, err := s.history.RecentRounds(ctx, DigestSize)
	if err != nil {
		return "", err
	}
	return Digest(entries), nil
}
