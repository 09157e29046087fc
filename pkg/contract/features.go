// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package contract

import (
	"time"

	"github.com/AccelByte/extend-churn-dataset/pkg/dataset"
)

// PlayerFeaturesCreate stores one aggregated feature row.
type PlayerFeaturesCreate struct {
	PlayerID    int64     `json:"player_id" validate:"required,gt=0"`
	FeatureDate time.Time `json:"feature_date" validate:"required"`
	Cohort      string    `json:"cohort" validate:"required,oneof=baseline drift"`

	DaysActiveLast30   int     `json:"days_active_last_30" validate:"gte=0"`
	DaysSinceLastLogin int     `json:"days_since_last_login" validate:"gte=0"`
	SessionsPerWeek    float64 `json:"sessions_per_week" validate:"gte=0"`
	SessionTrendWeekly float64 `json:"session_trend_weekly"`

	TotalBets         int     `json:"total_bets" validate:"gte=0"`
	TotalBetAmount    float64 `json:"total_bet_amount" validate:"gte=0"`
	AvgBetSize        float64 `json:"avg_bet_size" validate:"gte=0"`
	WinRate           float64 `json:"win_rate" validate:"gte=0,lte=1"`
	UniqueGamesPlayed int     `json:"unique_games_played" validate:"gte=0"`

	TotalDeposit    float64 `json:"total_deposit" validate:"gte=0"`
	TotalWithdrawal float64 `json:"total_withdrawal" validate:"gte=0"`
	NetGGR          float64 `json:"net_ggr"`

	FriendsCount int `json:"friends_count" validate:"gte=0"`
	MessagesSent int `json:"messages_sent" validate:"gte=0"`

	BonusUsed      bool `json:"bonus_used"`
	OffersReceived int  `json:"offers_received" validate:"gte=0"`
	OffersRedeemed int  `json:"offers_redeemed" validate:"gte=0,ltefield=OffersReceived"`

	ChurnLabel bool `json:"churn_label"`
}

// FromFeatures maps an aggregator row onto the create contract without
// transformation.
func FromFeatures(f dataset.PlayerFeatures) PlayerFeaturesCreate {
	return PlayerFeaturesCreate{
		PlayerID:           f.PlayerID,
		FeatureDate:        f.FeatureDate,
		Cohort:             f.Cohort,
		DaysActiveLast30:   f.DaysActiveLast30,
		DaysSinceLastLogin: f.DaysSinceLastLogin,
		SessionsPerWeek:    f.SessionsPerWeek,
		SessionTrendWeekly: f.SessionTrendWeekly,
		TotalBets:          f.TotalBets,
		TotalBetAmount:     f.TotalBetAmount,
		AvgBetSize:         f.AvgBetSize,
		WinRate:            f.WinRate,
		UniqueGamesPlayed:  f.UniqueGamesPlayed,
		TotalDeposit:       f.TotalDeposit,
		TotalWithdrawal:    f.TotalWithdrawal,
		NetGGR:             f.NetGGR,
		FriendsCount:       f.FriendsCount,
		MessagesSent:       f.MessagesSent,
		BonusUsed:          f.BonusUsed,
		OffersReceived:     f.OffersReceived,
		OffersRedeemed:     f.OffersRedeemed,
		ChurnLabel:         f.ChurnLabel,
	}
}

// ValidateFeatures checks every row and stops at the first invalid one.
func ValidateFeatures(rows []dataset.PlayerFeatures) error {
	for _, row := range rows {
		if err := Validate(FromFeatures(row)); err != nil {
			return err
		}
	}
	return nil
}

// PredictionRequest asks for the churn score of one player.
type PredictionRequest struct {
	PlayerID    int64      `json:"player_id" validate:"required,gt=0"`
	FeatureDate *time.Time `json:"feature_date,omitempty"`
}

// PredictionResponse is the score of one player.
type PredictionResponse struct {
	PlayerID         int64     `json:"player_id" validate:"required,gt=0"`
	ChurnProbability float64   `json:"churn_probability" validate:"gte=0,lte=1"`
	ChurnLabel       bool      `json:"churn_label"`
	ConfidenceScore  *float64  `json:"confidence_score,omitempty" validate:"omitempty,gte=0,lte=1"`
	FeatureDate      time.Time `json:"feature_date" validate:"required"`
	PredictedAt      time.Time `json:"predicted_at" validate:"required"`
}

// BatchPredictionRequest asks for the scores of several players.
type BatchPredictionRequest struct {
	PlayerIDs   []int64    `json:"player_ids" validate:"required,min=1,dive,gt=0"`
	FeatureDate *time.Time `json:"feature_date,omitempty"`
}

// BatchPredictionResponse carries the scores of a batch.
type BatchPredictionResponse struct {
	Predictions           []PredictionResponse `json:"predictions" validate:"dive"`
	TotalProcessed        int                  `json:"total_processed" validate:"gte=0"`
	ProcessingTimeSeconds float64              `json:"processing_time_seconds" validate:"gte=0"`
}

// ModelMetrics reports the offline quality of one model version.
type ModelMetrics struct {
	ModelVersion string    `json:"model_version" validate:"required"`
	Accuracy     float64   `json:"accuracy" validate:"gte=0,lte=1"`
	Precision    float64   `json:"precision" validate:"gte=0,lte=1"`
	Recall       float64   `json:"recall" validate:"gte=0,lte=1"`
	F1Score      float64   `json:"f1_score" validate:"gte=0,lte=1"`
	ROCAUC       float64   `json:"roc_auc" validate:"gte=0,lte=1"`
	PRAUC        float64   `json:"pr_auc" validate:"gte=0,lte=1"`
	CreatedAt    time.Time `json:"created_at" validate:"required"`
}

// ModelMetricsResponse is the current model quality and optionally its history.
type ModelMetricsResponse struct {
	CurrentMetrics    ModelMetrics   `json:"current_metrics"`
	HistoricalMetrics []ModelMetrics `json:"historical_metrics,omitempty" validate:"omitempty,dive"`
}

// HealthResponse reports collaborator reachability.
type HealthResponse struct {
	Status            string    `json:"status" validate:"required,oneof=ok degraded down"`
	Timestamp         time.Time `json:"timestamp" validate:"required"`
	DatabaseConnected bool      `json:"database_connected"`
	ModelLoaded       bool      `json:"model_loaded"`
}
