package plinko

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
	monday   = bonus.Resolve(time.Date(2025, time.March, 3, 12, 0, 0, 0, time.UTC))
	saturday = bonus.Resolve(time.Date(2025, time.March, 8, 12, 0, 0, 0, time.UTC))
)

func TestBucketIsSymmetric(t *testing.T) {
	for rights := 0; rights <= Rows; rights++ {
		x := StartX + Step*(2*rights-Rows)
		mirror := StartX + Step*(Rows-2*rights)
		assert.Equal(t, rights, Bucket(x), "x=%d", x)
		assert.Equal(t, len(Buckets)-1-Bucket(x), Bucket(mirror))
		assert.True(t, Buckets[Bucket(x)].Equal(Buckets[Bucket(mirror)]))
	}
	assert.Equal(t, 0, Bucket(-100))
	assert.Equal(t, len(Buckets)-1, Bucket(500))
}

func TestDrop(t *testing.T) {
	testCases := []struct {
		name     string
		draws    []float64 // below 0.5 moves left
		tc       entities.TimeContext
		bucket   int
		expected int64
	}{
		{"All left hits the edge", []float64{0.1}, monday, 0, 50},
		{"All right hits the edge", []float64{0.9}, monday, 7, 50},
		{"Near center keeps a fifth", []float64{0.1, 0.9, 0.1, 0.9, 0.1, 0.9, 0.1}, monday, 3, 2},
		{"Two right pays half", []float64{0.9, 0.9, 0.1, 0.1, 0.1, 0.1, 0.1}, monday, 2, 5},
		{"Saturday boosts partial returns", []float64{0.9, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1}, saturday, 1, 24},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			wallet := mock_round.NewMockWallet(ctrl)
			ctx := context.Background()

			wallet.EXPECT().PlaceWager(ctx, int64(10)).Return(nil)
			wallet.EXPECT().SettleRound(ctx, entities.GamePlinko, tc.expected, gomock.Any()).Return(&entities.HistoryEntry{}, nil)

			drop, err := NewEngine(wallet, rng.NewSequence(tc.draws...)).Drop(ctx, 10, tc.tc)
			require.NoError(t, err)
			assert.Len(t, drop.Path, Rows+1)
			assert.Equal(t, StartX, drop.Path[0])
			assert.Equal(t, tc.bucket, drop.Bucket)
			assert.Equal(t, tc.expected, drop.Payout)
		})
	}
}

func TestDropInsufficientFunds(t *testing.T) {
	ctrl := gomock.NewController(t)
	wallet := mock_round.NewMockWallet(ctrl)
	ctx := context.Background()
	wallet.EXPECT().PlaceWager(ctx, int64(500)).Return(types.NewGameError(types.ErrInsufficientFunds, "balance 100"))

	_, err := NewEngine(wallet, rng.NewSeeded(1)).Drop(ctx, 500, monday)
	assert.True(t, types.IsGameError(err, types.ErrInsufficientFunds))
}
