// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package generator

import (
	"fmt"
	"math"

	"github.com/AccelByte/extend-churn-dataset/pkg/dataset"
)

// Gaussian parameterises a magnitude draw |N(Mean, StdDev)| + Offset.
type Gaussian struct {
	Mean   float64 `yaml:"mean" toml:"mean"`
	StdDev float64 `yaml:"std_dev" toml:"std_dev"`
	Offset float64 `yaml:"offset,omitempty" toml:"offset,omitempty"`
}

func (g Gaussian) magnitude(rng *RNG) float64 {
	return math.Abs(rng.Normal(g.Mean, g.StdDev)) + g.Offset
}

// ArchetypeProfile holds every distribution parameter of one archetype.
type ArchetypeProfile struct {
	Weight float64 `yaml:"weight" toml:"weight"`

	SessionsPerWeek float64  `yaml:"sessions_per_week" toml:"sessions_per_week"`
	SessionMinutes  Gaussian `yaml:"session_minutes" toml:"session_minutes"`
	UniformHours    bool     `yaml:"uniform_hours" toml:"uniform_hours"`

	BetsPerWeek float64  `yaml:"bets_per_week" toml:"bets_per_week"`
	Stake       Gaussian `yaml:"stake" toml:"stake"`

	DepositsPerMonth float64  `yaml:"deposits_per_month" toml:"deposits_per_month"`
	DepositAmount    Gaussian `yaml:"deposit_amount" toml:"deposit_amount"`
	// FallbackDepositProbability gives a player with no drawn deposit one deposit anyway.
	FallbackDepositProbability float64 `yaml:"fallback_deposit_probability,omitempty" toml:"fallback_deposit_probability,omitempty"`

	WithdrawalsPerMonth float64  `yaml:"withdrawals_per_month" toml:"withdrawals_per_month"`
	WithdrawalAmount    Gaussian `yaml:"withdrawal_amount" toml:"withdrawal_amount"`

	BonusProbability float64  `yaml:"bonus_probability" toml:"bonus_probability"`
	BonusAmount      Gaussian `yaml:"bonus_amount" toml:"bonus_amount"`

	Friends     Gaussian `yaml:"friends" toml:"friends"`
	Messages    Gaussian `yaml:"messages" toml:"messages"`
	VIPEligible bool     `yaml:"vip_eligible" toml:"vip_eligible"`
}

// HourWeights weights the evening (18-23), daytime (9-17) and night (0-8) buckets.
type HourWeights struct {
	Evening float64 `yaml:"evening" toml:"evening"`
	Daytime float64 `yaml:"daytime" toml:"daytime"`
	Night   float64 `yaml:"night" toml:"night"`
}

func (h HourWeights) perHour() []float64 {
	weights := make([]float64, 24)
	for hour := range weights {
		switch {
		case hour >= 18:
			weights[hour] = h.Evening
		case hour >= 9:
			weights[hour] = h.Daytime
		default:
			weights[hour] = h.Night
		}
	}
	return weights
}

// Profile is the full parameter set of the simulators.
type Profile struct {
	Archetypes map[dataset.Archetype]ArchetypeProfile `yaml:"archetypes" toml:"archetypes"`

	VIPScale               float64 `yaml:"vip_scale" toml:"vip_scale"`
	VIPMax                 int     `yaml:"vip_max" toml:"vip_max"`
	RegistrationMaxDaysAgo int     `yaml:"registration_max_days_ago" toml:"registration_max_days_ago"`
	MinSessionsPerPlayer   int     `yaml:"min_sessions_per_player" toml:"min_sessions_per_player"`

	WeekdayHours HourWeights `yaml:"weekday_hours" toml:"weekday_hours"`
	WeekendHours HourWeights `yaml:"weekend_hours" toml:"weekend_hours"`

	WinProbability   float64 `yaml:"win_probability" toml:"win_probability"`
	WinMultiplierMin float64 `yaml:"win_multiplier_min" toml:"win_multiplier_min"`
	WinMultiplierMax float64 `yaml:"win_multiplier_max" toml:"win_multiplier_max"`

	RedemptionProbability     float64 `yaml:"redemption_probability" toml:"redemption_probability"`
	RedemptionMaxDays         int     `yaml:"redemption_max_days" toml:"redemption_max_days"`
	MarketingOfferProbability float64 `yaml:"marketing_offer_probability" toml:"marketing_offer_probability"`
	MarketingOfferMinDays     int     `yaml:"marketing_offer_min_days" toml:"marketing_offer_min_days"`
	MarketingOfferMaxDays     int     `yaml:"marketing_offer_max_days" toml:"marketing_offer_max_days"`

	Countries          []string `yaml:"countries" toml:"countries"`
	AcquisitionSources []string `yaml:"acquisition_sources" toml:"acquisition_sources"`
	Games              []string `yaml:"games" toml:"games"`
	DeviceTypes        []string `yaml:"device_types" toml:"device_types"`
	Platforms          []string `yaml:"platforms" toml:"platforms"`
	DepositMethods     []string `yaml:"deposit_methods" toml:"deposit_methods"`
	WithdrawalMethods  []string `yaml:"withdrawal_methods" toml:"withdrawal_methods"`
	BonusTypes         []string `yaml:"bonus_types" toml:"bonus_types"`
}

// DefaultProfile returns the casino population the dataset was designed around.
func DefaultProfile() *Profile {
	return &Profile{
		Archetypes: map[dataset.Archetype]ArchetypeProfile{
			dataset.ArchetypeCasual: {
				Weight:              0.55,
				SessionsPerWeek:     1,
				SessionMinutes:      Gaussian{Mean: 30, StdDev: 20},
				BetsPerWeek:         3,
				Stake:               Gaussian{Mean: 5, StdDev: 10},
				DepositsPerMonth:    0.3,
				DepositAmount:       Gaussian{Mean: 50, StdDev: 100},
				WithdrawalsPerMonth: 0.1,
				WithdrawalAmount:    Gaussian{Mean: 30, StdDev: 80},
				BonusProbability:    0.05,
				BonusAmount:         Gaussian{Mean: 10, StdDev: 50},
				Friends:             Gaussian{Mean: 3, StdDev: 4},
				Messages:            Gaussian{Mean: 5, StdDev: 10},
			},
			dataset.ArchetypeRegular: {
				Weight:              0.35,
				SessionsPerWeek:     5,
				SessionMinutes:      Gaussian{Mean: 30, StdDev: 20},
				BetsPerWeek:         20,
				Stake:               Gaussian{Mean: 5, StdDev: 10},
				DepositsPerMonth:    1.2,
				DepositAmount:       Gaussian{Mean: 50, StdDev: 100},
				WithdrawalsPerMonth: 0.6,
				WithdrawalAmount:    Gaussian{Mean: 30, StdDev: 80},
				BonusProbability:    0.15,
				BonusAmount:         Gaussian{Mean: 100, StdDev: 50},
				Friends:             Gaussian{Mean: 10, StdDev: 8},
				Messages:            Gaussian{Mean: 40, StdDev: 60},
				VIPEligible:         true,
			},
			dataset.ArchetypeWhale: {
				Weight:                     0.08,
				SessionsPerWeek:            8,
				SessionMinutes:             Gaussian{Mean: 30, StdDev: 20},
				BetsPerWeek:                150,
				Stake:                      Gaussian{Mean: 50, StdDev: 200, Offset: 10},
				DepositsPerMonth:           5,
				DepositAmount:              Gaussian{Mean: 500, StdDev: 1000, Offset: 50},
				FallbackDepositProbability: 0.05,
				WithdrawalsPerMonth:        2,
				WithdrawalAmount:           Gaussian{Mean: 30, StdDev: 80},
				BonusProbability:           0.35,
				BonusAmount:                Gaussian{Mean: 100, StdDev: 50},
				Friends:                    Gaussian{Mean: 30, StdDev: 20},
				Messages:                   Gaussian{Mean: 200, StdDev: 150},
				VIPEligible:                true,
			},
			dataset.ArchetypeBot: {
				Weight:          0.02,
				SessionsPerWeek: 20,
				SessionMinutes:  Gaussian{Mean: 5, StdDev: 20},
				UniformHours:    true,
				BetsPerWeek:     300,
				Stake:           Gaussian{Mean: 0.5, StdDev: 0.5},
				DepositAmount:   Gaussian{Mean: 50, StdDev: 100},
				BonusAmount:     Gaussian{Mean: 100, StdDev: 50},
				Friends:         Gaussian{Mean: 0, StdDev: 1},
				Messages:        Gaussian{Mean: 0, StdDev: 1},
				VIPEligible:     true,
			},
		},
		VIPScale:                  0.4,
		VIPMax:                    5,
		RegistrationMaxDaysAgo:    400,
		MinSessionsPerPlayer:      1,
		WeekdayHours:              HourWeights{Evening: 6, Daytime: 2, Night: 1},
		WeekendHours:              HourWeights{Evening: 5, Daytime: 3, Night: 1},
		WinProbability:            0.48,
		WinMultiplierMin:          0.5,
		WinMultiplierMax:          2.0,
		RedemptionProbability:     0.7,
		RedemptionMaxDays:         10,
		MarketingOfferProbability: 0.05,
		MarketingOfferMinDays:     1,
		MarketingOfferMaxDays:     7,
		Countries:                 []string{"GE", "UK", "DE", "FR", "IT", "ES", "SE", "NO"},
		AcquisitionSources:        []string{"organic", "ad_campaign", "affiliate", "email"},
		Games:                     []string{"slots", "blackjack", "roulette", "poker", "craps", "baccarat"},
		DeviceTypes:               []string{"mobile", "desktop", "tablet"},
		Platforms:                 []string{"iOS", "Android", "Windows", "macOS"},
		DepositMethods:            []string{"card", "paypal", "crypto", "bank"},
		WithdrawalMethods:         []string{"bank", "card"},
		BonusTypes:                []string{"free_spin", "match_deposit", "cashback", "no_deposit"},
	}
}

// Validate checks that every archetype is parameterised and every draw is well defined.
func (p *Profile) Validate() error {
	var total float64
	for _, a := range dataset.Archetypes {
		ap, ok := p.Archetypes[a]
		if !ok {
			return fmt.Errorf("profile is missing archetype %s", a)
		}
		if ap.Weight < 0 {
			return fmt.Errorf("archetype %s has negative weight", a)
		}
		total += ap.Weight
		if ap.SessionsPerWeek < 0 || ap.BetsPerWeek < 0 || ap.DepositsPerMonth < 0 || ap.WithdrawalsPerMonth < 0 {
			return fmt.Errorf("archetype %s has a negative event rate", a)
		}
		if !isProbability(ap.BonusProbability) || !isProbability(ap.FallbackDepositProbability) {
			return fmt.Errorf("archetype %s has a probability outside [0, 1]", a)
		}
	}
	for a := range p.Archetypes {
		if !a.Valid() {
			return fmt.Errorf("profile has unknown archetype %s", a)
		}
	}
	if total <= 0 {
		return fmt.Errorf("archetype weights must sum to a positive value")
	}

	for _, prob := range []float64{p.WinProbability, p.RedemptionProbability, p.MarketingOfferProbability} {
		if !isProbability(prob) {
			return fmt.Errorf("probability %v outside [0, 1]", prob)
		}
	}
	if p.WinMultiplierMax < p.WinMultiplierMin {
		return fmt.Errorf("win_multiplier_max must be >= win_multiplier_min")
	}
	if p.MarketingOfferMaxDays < p.MarketingOfferMinDays {
		return fmt.Errorf("marketing_offer_max_days must be >= marketing_offer_min_days")
	}
	if p.VIPMax < 0 || p.RegistrationMaxDaysAgo < 0 || p.MinSessionsPerPlayer < 0 || p.RedemptionMaxDays < 0 {
		return fmt.Errorf("vip_max, registration_max_days_ago, min_sessions_per_player and redemption_max_days must be non-negative")
	}
	if hoursTotal(p.WeekdayHours) <= 0 || hoursTotal(p.WeekendHours) <= 0 {
		return fmt.Errorf("hour weights must sum to a positive value")
	}

	lists := map[string][]string{
		"countries":           p.Countries,
		"acquisition_sources": p.AcquisitionSources,
		"games":               p.Games,
		"device_types":        p.DeviceTypes,
		"platforms":           p.Platforms,
		"deposit_methods":     p.DepositMethods,
		"withdrawal_methods":  p.WithdrawalMethods,
		"bonus_types":         p.BonusTypes,
	}
	for name, list := range lists {
		if len(list) == 0 {
			return fmt.Errorf("%s must not be empty", name)
		}
	}

	return nil
}

func (p *Profile) archetypeWeights() []float64 {
	weights := make([]float64, len(dataset.Archetypes))
	for i, a := range dataset.Archetypes {
		weights[i] = p.Archetypes[a].Weight
	}
	return weights
}

func isProbability(v float64) bool {
	return v >= 0 && v <= 1
}

func hoursTotal(h HourWeights) float64 {
	if h.Evening < 0 || h.Daytime < 0 || h.Night < 0 {
		return -1
	}
	return h.Evening + h.Daytime + h.Night
}
