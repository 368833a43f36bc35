package profile

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fadedpez/neonroyal/internal/logging"
	"github.com/fadedpez/neonroyal/pkg/entities"
	"github.com/stretchr/testify/suite"
)

// RepositoryTestSuite runs the same contract against every store
type RepositoryTestSuite struct {
	suite.Suite
	tempDir string
	newRepo func() Repository
	repo    Repository
}

func TestMemoryRepository(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{newRepo: func() Repository { return NewMemoryRepository() }})
}

func TestFileRepository(t *testing.T) {
	s := &RepositoryTestSuite{}
	s.newRepo = func() Repository { return NewFileRepository(filepath.Join(s.tempDir, "nested", "profile.json")) }
	suite.Run(t, s)
}

func TestSQLiteRepository(t *testing.T) {
	s := &RepositoryTestSuite{}
	s.newRepo = func() Repository {
		repo, err := NewSQLiteRepository(context.Background(), filepath.Join(s.tempDir, "profile.db"), logging.NewLoggerTo(io.Discard, logging.ERROR))
		s.Require().NoError(err)
		return repo
	}
	suite.Run(t, s)
}

func (s *RepositoryTestSuite) SetupTest() {
	tempDir, err := os.MkdirTemp("", "profile-repo-test")
	s.Require().NoError(err)
	s.tempDir = tempDir
	s.repo = s.newRepo()
}

func (s *RepositoryTestSuite) TearDownTest() {
	s.repo.Close()
	os.RemoveAll(s.tempDir)
}

func sampleLedger() *entities.PlayerLedger {
	ledger := entities.NewPlayerLedger()
	ledger.Balance = 2345
	ledger.CurrentBet = 25
	ledger.OwnedItems = append(ledger.OwnedItems, "theme_pink", "acc_dice")
	ledger.EquippedTheme = "theme_pink"
	ledger.EquippedAccessory = "acc_dice"
	ledger.LastDailyClaim = time.Date(2025, time.March, 3, 9, 15, 0, 0, time.UTC)
	ledger.PushHistory(entities.HistoryEntry{
		ID:        "a1",
		Game:      entities.GameSlots,
		Amount:    15,
		Outcome:   entities.OutcomeWin,
		Narration: "Matched two!",
		Timestamp: time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC),
	})
	ledger.PushHistory(entities.HistoryEntry{
		ID:        "b2",
		Game:      entities.GameRoulette,
		Amount:    25,
		Outcome:   entities.OutcomeLoss,
		Narration: "The ball landed on 3.",
		Timestamp: time.Date(2025, time.March, 3, 9, 5, 0, 0, time.UTC),
	})
	return ledger
}

func (s *RepositoryTestSuite) TestLoadEmpty() {
	_, err := s.repo.Load(context.Background())
	s.ErrorIs(err, ErrProfileNotFound)
}

func (s *RepositoryTestSuite) TestSaveAndLoad() {
	ctx := context.Background()
	ledger := sampleLedger()

	s.Require().NoError(s.repo.Save(ctx, ledger))

	loaded, err := s.repo.Load(ctx)
	s.Require().NoError(err)
	s.Equal(ledger.Balance, loaded.Balance)
	s.Equal(ledger.CurrentBet, loaded.CurrentBet)
	s.Equal(ledger.OwnedItems, loaded.OwnedItems)
	s.Equal(ledger.EquippedTheme, loaded.EquippedTheme)
	s.Equal(ledger.EquippedAccessory, loaded.EquippedAccessory)
	s.True(ledger.LastDailyClaim.Equal(loaded.LastDailyClaim))
	s.True(loaded.LastWeeklyClaim.IsZero())

	s.Require().Len(loaded.History, 2)
	s.Equal("b2", loaded.History[0].ID, "newest first")
	s.Equal(entities.GameRoulette, loaded.History[0].Game)
	s.Equal(entities.OutcomeLoss, loaded.History[0].Outcome)
	s.Equal(int64(25), loaded.History[0].Amount)
	s.Equal("The ball landed on 3.", loaded.History[0].Narration)
	s.True(ledger.History[1].Timestamp.Equal(loaded.History[1].Timestamp))
}

func (s *RepositoryTestSuite) TestSaveReplaces() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Save(ctx, sampleLedger()))

	fresh := entities.NewPlayerLedger()
	s.Require().NoError(s.repo.Save(ctx, fresh))

	loaded, err := s.repo.Load(ctx)
	s.Require().NoError(err)
	s.Equal(int64(entities.InitialBalance), loaded.Balance)
	s.Empty(loaded.History)
	s.Equal([]entities.ItemID{entities.DefaultTheme}, loaded.OwnedItems)
	s.Empty(loaded.EquippedAccessory)
}

func (s *RepositoryTestSuite) TestLoadIsACopy() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Save(ctx, sampleLedger()))

	first, err := s.repo.Load(ctx)
	s.Require().NoError(err)
	first.Balance = 1
	first.History[0].Amount = 9999

	second, err := s.repo.Load(ctx)
	s.Require().NoError(err)
	s.Equal(int64(2345), second.Balance)
	s.Equal(int64(25), second.History[0].Amount)
}
