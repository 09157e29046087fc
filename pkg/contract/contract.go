// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package contract holds the request and response shapes exchanged with the
// storage and scoring collaborators, with their field bounds.
package contract

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/AccelByte/extend-churn-dataset/pkg/dataset"
	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func get() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks v against its struct tags and flattens field errors into one
// message per field.
func Validate(v any) error {
	err := get().Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s", fe.Namespace(), fe.Tag()))
		}
	}
	return fmt.Errorf("invalid %T:\n  - %s", v, strings.Join(msgs, "\n  - "))
}

// PlayerCreate registers a player.
type PlayerCreate struct {
	PlayerID    int64  `json:"player_id" validate:"required,gt=0"`
	Username    string `json:"username" validate:"required,max=100"`
	Country     string `json:"country" validate:"required,len=2"`
	Acquisition string `json:"acquisition" validate:"required,max=50"`
	VIPLevel    int    `json:"vip_level" validate:"gte=0,lte=10"`
	Archetype   string `json:"archetype" validate:"required,oneof=casual regular whale bot"`
}

// SessionCreate records a login.
type SessionCreate struct {
	PlayerID   int64      `json:"player_id" validate:"required,gt=0"`
	LoginTime  time.Time  `json:"login_time" validate:"required"`
	LogoutTime *time.Time `json:"logout_time,omitempty" validate:"omitempty,gtefield=LoginTime"`
	DeviceType string     `json:"device_type" validate:"required,oneof=mobile desktop tablet"`
	Platform   string     `json:"platform" validate:"required,oneof=iOS Android Windows macOS Linux"`
	Country    string     `json:"country" validate:"required,len=2"`
}

// BetCreate records a wager.
type BetCreate struct {
	PlayerID  int64     `json:"player_id" validate:"required,gt=0"`
	GameName  string    `json:"game_name" validate:"required,min=1,max=100"`
	BetAmount float64   `json:"bet_amount" validate:"gt=0"`
	WinAmount float64   `json:"win_amount" validate:"gte=0"`
	BetTime   time.Time `json:"bet_time" validate:"required"`
}

// DepositCreate records money moved in.
type DepositCreate struct {
	PlayerID      int64   `json:"player_id" validate:"required,gt=0"`
	Amount        float64 `json:"amount" validate:"gt=0"`
	PaymentMethod string  `json:"payment_method" validate:"required,min=1,max=50"`
	Currency      string  `json:"currency" validate:"required,len=3"`
	Status        string  `json:"status" validate:"required"`
}

// WithdrawalCreate records money moved out.
type WithdrawalCreate struct {
	PlayerID      int64   `json:"player_id" validate:"required,gt=0"`
	Amount        float64 `json:"amount" validate:"gt=0"`
	PaymentMethod string  `json:"payment_method" validate:"required,min=1,max=50"`
	Currency      string  `json:"currency" validate:"required,len=3"`
	Status        string  `json:"status" validate:"required"`
}

// BonusCreate issues a bonus.
type BonusCreate struct {
	PlayerID      int64   `json:"player_id" validate:"required,gt=0"`
	BonusType     string  `json:"bonus_type" validate:"required,oneof=free_spin match_deposit cashback no_deposit marketing_offer"`
	BonusAmount   float64 `json:"bonus_amount" validate:"gte=0"`
	BonusCurrency string  `json:"bonus_currency" validate:"required,len=3"`
	CampaignID    *string `json:"campaign_id,omitempty" validate:"omitempty,max=100"`
}

// FromPlayer maps a generated player onto its create contract.
func FromPlayer(p dataset.Player) PlayerCreate {
	return PlayerCreate{
		PlayerID:    p.PlayerID,
		Username:    p.Username,
		Country:     p.Country,
		Acquisition: p.Acquisition,
		VIPLevel:    p.VIPLevel,
		Archetype:   string(p.Archetype),
	}
}

// ValidatePlayers checks every player and stops at the first invalid one.
func ValidatePlayers(players []dataset.Player) error {
	for _, p := range players {
		if err := Validate(FromPlayer(p)); err != nil {
			return err
		}
	}
	return nil
}
