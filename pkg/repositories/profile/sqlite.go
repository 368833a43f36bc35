package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fadedpez/neonroyal/internal/logging"
	"github.com/fadedpez/neonroyal/pkg/db/migrations"
	"github.com/fadedpez/neonroyal/pkg/entities"
	_ "github.com/mattn/go-sqlite3"
)

const timeFormat = time.RFC3339Nano

// SQLiteRepository stores the profile in a profiles row plus one history row
// per entry
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens the database at dbPath and brings its schema up
// to date. ":memory:" gives a throwaway database.
func NewSQLiteRepository(ctx context.Context, dbPath string, logger *logging.Logger) (*SQLiteRepository, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("error creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	// one connection keeps ":memory:" a single database
	db.SetMaxOpenConns(1)

	if _, err := migrations.NewMigrator(db, logger).MigrateUp(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("error migrating database: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Load reads the profile row and its history, newest first
func (r *SQLiteRepository) Load(ctx context.Context) (*entities.PlayerLedger, error) {
	query := `SELECT balance, current_bet, owned_items, equipped_theme, equipped_accessory,
		last_daily_claim, last_weekly_claim FROM profiles WHERE id = 1`

	var ledger entities.PlayerLedger
	var owned, lastDaily, lastWeekly string
	var theme, accessory string

	err := r.db.QueryRowContext(ctx, query).Scan(
		&ledger.Balance,
		&ledger.CurrentBet,
		&owned,
		&theme,
		&accessory,
		&lastDaily,
		&lastWeekly,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("error getting profile: %w", err)
	}

	ledger.EquippedTheme = entities.ItemID(theme)
	ledger.EquippedAccessory = entities.ItemID(accessory)

	if err := json.Unmarshal([]byte(owned), &ledger.OwnedItems); err != nil {
		return nil, fmt.Errorf("%w: owned items: %v", ErrCorruptProfile, err)
	}
	if ledger.LastDailyClaim, err = parseTime(lastDaily); err != nil {
		return nil, fmt.Errorf("%w: last daily claim: %v", ErrCorruptProfile, err)
	}
	if ledger.LastWeeklyClaim, err = parseTime(lastWeekly); err != nil {
		return nil, fmt.Errorf("%w: last weekly claim: %v", ErrCorruptProfile, err)
	}

	history, err := r.loadHistory(ctx)
	if err != nil {
		return nil, err
	}
	ledger.History = history

	return &ledger, nil
}

func (r *SQLiteRepository) loadHistory(ctx context.Context) ([]entities.HistoryEntry, error) {
	query := `SELECT id, game, amount, outcome, narration, timestamp FROM history ORDER BY position ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error getting history: %w", err)
	}
	defer rows.Close()

	history := make([]entities.HistoryEntry, 0, entities.HistoryCap)
	for rows.Next() {
		var entry entities.HistoryEntry
		var game, outcome, timestamp string
		if err := rows.Scan(&entry.ID, &game, &entry.Amount, &outcome, &entry.Narration, &timestamp); err != nil {
			return nil, fmt.Errorf("error scanning history: %w", err)
		}
		entry.Game = entities.GameType(game)
		entry.Outcome = entities.Outcome(outcome)
		if entry.Timestamp, err = parseTime(timestamp); err != nil {
			return nil, fmt.Errorf("%w: history %s: %v", ErrCorruptProfile, entry.ID, err)
		}
		history = append(history, entry)
	}

	return history, rows.Err()
}

// Save replaces the profile row and the whole history in one transaction
func (r *SQLiteRepository) Save(ctx context.Context, ledger *entities.PlayerLedger) error {
	owned, err := json.Marshal(ledger.OwnedItems)
	if err != nil {
		return fmt.Errorf("error encoding owned items: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO profiles (id, balance, current_bet, owned_items, equipped_theme, equipped_accessory,
			last_daily_claim, last_weekly_claim, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			balance = excluded.balance,
			current_bet = excluded.current_bet,
			owned_items = excluded.owned_items,
			equipped_theme = excluded.equipped_theme,
			equipped_accessory = excluded.equipped_accessory,
			last_daily_claim = excluded.last_daily_claim,
			last_weekly_claim = excluded.last_weekly_claim,
			updated_at = excluded.updated_at
	`
	_, err = tx.ExecContext(ctx, query,
		ledger.Balance,
		ledger.CurrentBet,
		string(owned),
		string(ledger.EquippedTheme),
		string(ledger.EquippedAccessory),
		formatTime(ledger.LastDailyClaim),
		formatTime(ledger.LastWeeklyClaim),
		formatTime(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("error saving profile: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM history`); err != nil {
		return fmt.Errorf("error clearing history: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO history (id, position, game, amount, outcome, narration, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("error preparing history insert: %w", err)
	}
	defer stmt.Close()

	for i, entry := range ledger.History {
		_, err := stmt.ExecContext(ctx,
			entry.ID, i, string(entry.Game), entry.Amount, string(entry.Outcome), entry.Narration,
			formatTime(entry.Timestamp),
		)
		if err != nil {
			return fmt.Errorf("error saving history entry %s: %w", entry.ID, err)
		}
	}

	return tx.Commit()
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(timeFormat)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(timeFormat, s)
}
