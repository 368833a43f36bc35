package entities

import "time"

// TimeContext is the bonus state derived from the current time. It is never
// persisted.
type TimeContext struct {
	Weekday      time.Weekday `json:"weekday"`
	Hour         int          `json:"hour"`
	IsGoldenHour bool         `json:"is_golden_hour"`
	IsGraveyard  bool         `json:"is_graveyard"`
	ActiveBonus  string       `json:"active_bonus"`
}
