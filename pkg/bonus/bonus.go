// Package bonus derives the time-of-day and day-of-week bonus state and
// composes payouts from it.
package bonus

import (
	"time"

	"github.com/fadedpez/neonroyal/pkg/entities"
	"github.com/shopspring/decimal"
)

const (
	GoldenHour     = 17
	GraveyardStart = 0 // inclusive
	GraveyardEnd   = 3 // exclusive

	DailyBonusBase     int64 = 100
	DailyBonusMultiple int64 = 3
	DailyBonusDay            = time.Monday

	WeeklyBonusAmount int64 = 500
	WeeklyBonusDay          = time.Friday

	DailyCooldown  = 24 * time.Hour
	WeeklyCooldown = 7 * 24 * time.Hour
)

var weeklySchedule = [7]string{
	time.Sunday:    "2.5x Mini-game Wins",
	time.Monday:    "3x Daily Bonus ($300)",
	time.Tuesday:   "Blackjack Wins 2.5:1",
	time.Wednesday: "Roulette Numbers 45:1",
	time.Thursday:  "1.5x Slots Multiplier",
	time.Friday:    "$500 Friday Fortune",
	time.Saturday:  "1.2x All Winnings",
}

// dayRate is a game multiplier that is raised on one day of the week
type dayRate struct {
	base  decimal.Decimal
	bonus decimal.Decimal
	day   time.Weekday
}

var noBonusDay = time.Weekday(-1)

var gameRates = map[entities.GameType]dayRate{
	entities.GameBlackjack: {decimal.NewFromInt(2), decimal.RequireFromString("2.5"), time.Tuesday},
	entities.GameRoulette:  {decimal.NewFromInt(35), decimal.NewFromInt(45), time.Wednesday},
	entities.GameSlots:     {decimal.NewFromInt(1), decimal.RequireFromString("1.5"), time.Thursday},
	entities.GameHiLo:      {decimal.RequireFromString("1.85"), decimal.RequireFromString("2.5"), time.Sunday},
	entities.GameCoinFlip:  {decimal.NewFromInt(2), decimal.RequireFromString("2.5"), time.Sunday},
	entities.GameHoldem:    {decimal.NewFromInt(3), decimal.NewFromInt(3), noBonusDay},
	entities.GamePlinko:    {decimal.NewFromInt(1), decimal.NewFromInt(1), noBonusDay},
}

var (
	goldenHourBoost = decimal.RequireFromString("1.5")
	saturdayBoost   = decimal.RequireFromString("1.2")
)

// Resolve derives the bonus state for now, in now's location
func Resolve(now time.Time) entities.TimeContext {
	hour := now.Hour()
	return entities.TimeContext{
		Weekday:      now.Weekday(),
		Hour:         hour,
		IsGoldenHour: hour == GoldenHour,
		IsGraveyard:  hour >= GraveyardStart && hour < GraveyardEnd,
		ActiveBonus:  weeklySchedule[now.Weekday()],
	}
}

// Schedule returns the bonus label for every weekday, Sunday first
func Schedule() [7]string {
	return weeklySchedule
}

// GameMultiplier is the per-game rate for tc. For blackjack, roulette, hi-lo,
// coin flip and hold'em it is the win multiple; for slots it scales the
// symbol paytable; plinko has no day rate.
func GameMultiplier(game entities.GameType, tc entities.TimeContext) decimal.Decimal {
	rate, ok := gameRates[game]
	if !ok {
		return decimal.NewFromInt(1)
	}
	if tc.Weekday == rate.day {
		return rate.bonus
	}
	return rate.base
}

// IsBonusDay reports whether game's raised rate is active in tc
func IsBonusDay(game entities.GameType, tc entities.TimeContext) bool {
	rate, ok := gameRates[game]
	return ok && rate.day == tc.Weekday && !rate.bonus.Equal(rate.base)
}

// GlobalMultiplier is the cross-game boost for tc: golden hour and Saturday,
// stacked multiplicatively.
func GlobalMultiplier(tc entities.TimeContext) decimal.Decimal {
	m := decimal.NewFromInt(1)
	if tc.IsGoldenHour {
		m = m.Mul(goldenHourBoost)
	}
	if tc.Weekday == time.Saturday {
		m = m.Mul(saturdayBoost)
	}
	return m
}

// Payout computes wager × multiplier, applies the global boost to positive
// results and floors once at the end. A returned stake (push) must not go
// through Payout.
func Payout(tc entities.TimeContext, wager int64, multiplier decimal.Decimal) int64 {
	amount := decimal.NewFromInt(wager).Mul(multiplier)
	if !amount.IsPositive() {
		return 0
	}
	return amount.Mul(GlobalMultiplier(tc)).Floor().IntPart()
}

// DailyBonus is the daily check-in amount for tc
func DailyBonus(tc entities.TimeContext) int64 {
	if tc.Weekday == DailyBonusDay {
		return DailyBonusBase * DailyBonusMultiple
	}
	return DailyBonusBase
}
