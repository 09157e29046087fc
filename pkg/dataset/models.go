// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package dataset

import (
	"time"

	"github.com/uptrace/bun"
)

// Archetype is the latent behavioural class driving every distribution of a synthetic player.
type Archetype string

const (
	ArchetypeCasual  Archetype = "casual"
	ArchetypeRegular Archetype = "regular"
	ArchetypeWhale   Archetype = "whale"
	ArchetypeBot     Archetype = "bot"
)

// Archetypes lists every archetype in draw order. Weighted draws iterate this
// slice, never a map, so a seed always yields the same population.
var Archetypes = []Archetype{ArchetypeCasual, ArchetypeRegular, ArchetypeWhale, ArchetypeBot}

// Valid reports whether a is a known archetype.
func (a Archetype) Valid() bool {
	for _, known := range Archetypes {
		if a == known {
			return true
		}
	}
	return false
}

// Player is created once per run and never mutated afterwards.
type Player struct {
	bun.BaseModel `bun:"table:players,alias:p"`

	PlayerID         int64     `bun:"player_id,pk" json:"player_id"`
	Username         string    `bun:"username,notnull" json:"username"`
	RegistrationDate time.Time `bun:"registration_date,type:date,notnull" json:"registration_date"`
	Country          string    `bun:"country,notnull" json:"country"`
	VIPLevel         int       `bun:"vip_level,notnull,default:0" json:"vip_level"`
	Acquisition      string    `bun:"acquisition,notnull" json:"acquisition"`
	FriendsCount     int       `bun:"friends_count,notnull,default:0" json:"friends_count"`
	MessagesSent     int       `bun:"messages_sent,notnull,default:0" json:"messages_sent"`
	Archetype        Archetype `bun:"archetype,notnull" json:"archetype"`
}

// Session is a single login. Pointer fields may be nulled by missingness injection.
type Session struct {
	bun.BaseModel `bun:"table:sessions,alias:s"`

	SessionID  string    `bun:"session_id,pk" json:"session_id"`
	PlayerID   int64     `bun:"player_id,notnull" json:"player_id"`
	LoginTime  time.Time `bun:"login_time,notnull" json:"login_time"`
	LogoutTime time.Time `bun:"logout_time,notnull" json:"logout_time"`
	DeviceType *string   `bun:"device_type" json:"device_type"`
	Platform   *string   `bun:"platform" json:"platform"`
	Country    *string   `bun:"country" json:"country"`
}

// Bet is a single wager and its payout.
type Bet struct {
	bun.BaseModel `bun:"table:bets,alias:b"`

	BetID     string    `bun:"bet_id,pk" json:"bet_id"`
	PlayerID  int64     `bun:"player_id,notnull" json:"player_id"`
	GameName  *string   `bun:"game_name" json:"game_name"`
	BetAmount *float64  `bun:"bet_amount" json:"bet_amount"`
	WinAmount *float64  `bun:"win_amount" json:"win_amount"`
	BetTime   time.Time `bun:"bet_time,notnull" json:"bet_time"`
}

// Deposit is money moved into the player's account.
type Deposit struct {
	bun.BaseModel `bun:"table:deposits,alias:d"`

	DepositID     string    `bun:"deposit_id,pk" json:"deposit_id"`
	PlayerID      int64     `bun:"player_id,notnull" json:"player_id"`
	DepositTime   time.Time `bun:"deposit_time,notnull" json:"deposit_time"`
	Amount        *float64  `bun:"amount" json:"amount"`
	PaymentMethod *string   `bun:"payment_method" json:"payment_method"`
}

// Withdrawal is money moved out of the player's account.
type Withdrawal struct {
	bun.BaseModel `bun:"table:withdrawals,alias:w"`

	WithdrawalID   string    `bun:"withdrawal_id,pk" json:"withdrawal_id"`
	PlayerID       int64     `bun:"player_id,notnull" json:"player_id"`
	WithdrawalTime time.Time `bun:"withdrawal_time,notnull" json:"withdrawal_time"`
	Amount         *float64  `bun:"amount" json:"amount"`
	Method         *string   `bun:"method" json:"method"`
}

// Bonus is a promotion issued to a player. Marketing offers are bonuses with
// type BonusTypeMarketingOffer and a zero amount.
type Bonus struct {
	bun.BaseModel `bun:"table:bonuses,alias:r"`

	BonusID      string     `bun:"bonus_id,pk" json:"bonus_id"`
	PlayerID     int64      `bun:"player_id,notnull" json:"player_id"`
	BonusType    *string    `bun:"bonus_type" json:"bonus_type"`
	BonusAmount  *float64   `bun:"bonus_amount" json:"bonus_amount"`
	IssuedDate   time.Time  `bun:"issued_date,notnull" json:"issued_date"`
	RedeemedDate *time.Time `bun:"redeemed_date" json:"redeemed_date"`
}

// BonusTypeMarketingOffer marks the auxiliary zero-value offer records.
const BonusTypeMarketingOffer = "marketing_offer"

// PlayerFeatures is one aggregated row per player per window. The store-only
// columns (ID, FeatureDate, Cohort, ChurnProbability, PredictedAt) are not part
// of the delimited output.
type PlayerFeatures struct {
	bun.BaseModel `bun:"table:player_features,alias:pf"`

	ID          int64     `bun:"id,pk,autoincrement" json:"-"`
	PlayerID    int64     `bun:"player_id,notnull" json:"player_id"`
	FeatureDate time.Time `bun:"feature_date,type:date,notnull" json:"feature_date"`
	Cohort      string    `bun:"cohort,notnull" json:"cohort"`

	DaysActiveLast30   int     `bun:"days_active_last_30,notnull,default:0" json:"days_active_last_30"`
	TotalBets          int     `bun:"total_bets,notnull,default:0" json:"total_bets"`
	TotalBetAmount     float64 `bun:"total_bet_amount,notnull,default:0" json:"total_bet_amount"`
	AvgBetSize         float64 `bun:"avg_bet_size,notnull,default:0" json:"avg_bet_size"`
	TotalDeposit       float64 `bun:"total_deposit,notnull,default:0" json:"total_deposit"`
	TotalWithdrawal    float64 `bun:"total_withdrawal,notnull,default:0" json:"total_withdrawal"`
	WinRate            float64 `bun:"win_rate,notnull,default:0" json:"win_rate"`
	NetGGR             float64 `bun:"net_ggr,notnull,default:0" json:"net_ggr"`
	UniqueGamesPlayed  int     `bun:"unique_games_played,notnull,default:0" json:"unique_games_played"`
	BonusUsed          bool    `bun:"bonus_used,notnull,default:false" json:"bonus_used"`
	OffersReceived     int     `bun:"offers_received,notnull,default:0" json:"offers_received"`
	OffersRedeemed     int     `bun:"offers_redeemed,notnull,default:0" json:"offers_redeemed"`
	SessionsPerWeek    float64 `bun:"sessions_per_week,notnull,default:0" json:"sessions_per_week"`
	SessionTrendWeekly float64 `bun:"session_trend_weekly,notnull,default:0" json:"session_trend_weekly"`
	DaysSinceLastLogin int     `bun:"days_since_last_login,notnull,default:0" json:"days_since_last_login"`
	FriendsCount       int     `bun:"friends_count,notnull,default:0" json:"friends_count"`
	MessagesSent       int     `bun:"messages_sent,notnull,default:0" json:"messages_sent"`
	ChurnLabel         bool    `bun:"churn_label,notnull" json:"churn_label"`

	ChurnProbability *float64   `bun:"churn_probability" json:"churn_probability,omitempty"`
	PredictedAt      *time.Time `bun:"predicted_at" json:"predicted_at,omitempty"`
}

const (
	// CohortBaseline tags feature rows aggregated over the regular lookback window.
	CohortBaseline = "baseline"
	// CohortDrift tags feature rows of the perturbed drift cohort.
	CohortDrift = "drift"
)
