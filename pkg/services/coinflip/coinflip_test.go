package coinflip

import (
	"context"
	"testing"
	"time"

	"github.com/fadedpez/neonroyal/internal/types"
	"github.com/fadedpez/neonroyal/pkg/bonus"
	"github.com/fadedpez/neonroyal/pkg/entities"
	"github.com/fadedpez/neonroyal/pkg/rng"
	mock_round "github.com/fadedpez/neonroyal/pkg/services/round/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	monday     = bonus.Resolve(time.Date(2025, time.March, 3, 12, 0, 0, 0, time.UTC))
	sunday     = bonus.Resolve(time.Date(2025, time.March, 9, 12, 0, 0, 0, time.UTC))
	goldenHour = bonus.Resolve(time.Date(2025, time.March, 3, 17, 5, 0, 0, time.UTC))
	saturdayGH = bonus.Resolve(time.Date(2025, time.March, 8, 17, 5, 0, 0, time.UTC))
)

func TestLand(t *testing.T) {
	assert.Equal(t, Tails, Land(0))
	assert.Equal(t, Tails, Land(0.4999))
	assert.Equal(t, Heads, Land(0.5))
	assert.Equal(t, Heads, Land(0.999))
}

func TestFlipTails(t *testing.T) {
	ctrl := gomock.NewController(t)
	wallet := mock_round.NewMockWallet(ctrl)
	ctx := context.Background()

	wallet.EXPECT().PlaceWager(ctx, int64(10)).Return(nil)
	wallet.EXPECT().SettleRound(ctx, entities.GameCoinFlip, int64(0), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ entities.GameType, _ int64, narration string) (*entities.HistoryEntry, error) {
			assert.Contains(t, narration, "TAILS")
			return &entities.HistoryEntry{Outcome: entities.OutcomeLoss, Amount: 10, Narration: narration}, nil
		})

	flip, err := NewEngine(wallet, rng.NewSequence(0.2)).Flip(ctx, 10, Heads, monday)
	require.NoError(t, err)
	assert.Equal(t, Tails, flip.Landed)
	assert.Equal(t, int64(0), flip.Payout)
	assert.Contains(t, flip.Narration, "TAILS")
}

func TestFlipWins(t *testing.T) {
	testCases := []struct {
		name     string
		tc       entities.TimeContext
		expected int64
	}{
		{"Double", monday, 20},
		{"Sunday 2.5x", sunday, 25},
		{"Golden hour", goldenHour, 30},
		{"Saturday golden hour", saturdayGH, 36},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			wallet := mock_round.NewMockWallet(ctrl)
			ctx := context.Background()

			wallet.EXPECT().PlaceWager(ctx, int64(10)).Return(nil)
			wallet.EXPECT().SettleRound(ctx, entities.GameCoinFlip, tc.expected, gomock.Any()).Return(&entities.HistoryEntry{}, nil)

			flip, err := NewEngine(wallet, rng.NewSequence(0.75)).Flip(ctx, 10, Heads, tc.tc)
			require.NoError(t, err)
			assert.Equal(t, Heads, flip.Landed)
			assert.Equal(t, tc.expected, flip.Payout)
		})
	}
}

func TestFlipRejections(t *testing.T) {
	ctrl := gomock.NewController(t)
	wallet := mock_round.NewMockWallet(ctrl)
	ctx := context.Background()

	src := rng.NewSequence(0.75)
	engine := NewEngine(wallet, src)

	_, err := engine.Flip(ctx, 10, Side("EDGE"), monday)
	assert.True(t, types.IsGameError(err, types.ErrInvalidArgument))

	wallet.EXPECT().PlaceWager(ctx, int64(500)).Return(types.NewGameError(types.ErrInsufficientFunds, "balance 100"))
	_, err = engine.Flip(ctx, 500, Tails, monday)
	assert.True(t, types.IsGameError(err, types.ErrInsufficientFunds))
	assert.Equal(t, 0, src.Draws())
}

func TestParseSide(t *testing.T) {
	side, err := ParseSide("heads")
	require.NoError(t, err)
	assert.Equal(t, Heads, side)

	side, err = ParseSide("T")
	require.NoError(t, err)
	assert.Equal(t, Tails, side)

	_, err = ParseSide("edge")
	assert.Error(t, err)
}
