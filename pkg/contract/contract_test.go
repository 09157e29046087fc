package contract

import (
	"strings"
	"testing"
	"time"

	"github.com/AccelByte/extend-churn-dataset/pkg/dataset"
)

func validFeatures() dataset.PlayerFeatures {
	return dataset.PlayerFeatures{
		PlayerID:           1,
		FeatureDate:        time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		Cohort:             dataset.CohortBaseline,
		DaysActiveLast30:   12,
		TotalBets:          40,
		TotalBetAmount:     200.5,
		AvgBetSize:         5.01,
		TotalDeposit:       300,
		WinRate:            0.475,
		NetGGR:             -12.3,
		UniqueGamesPlayed:  3,
		BonusUsed:          true,
		OffersReceived:     2,
		OffersRedeemed:     1,
		SessionsPerWeek:    2.8,
		SessionTrendWeekly: -0.4,
		DaysSinceLastLogin: 3,
	}
}

func TestFeaturesContract(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*dataset.PlayerFeatures)
		wantErr string
	}{
		{"valid row", func(*dataset.PlayerFeatures) {}, ""},
		{"negative trend is allowed", func(f *dataset.PlayerFeatures) { f.SessionTrendWeekly = -3 }, ""},
		{"drift cohort", func(f *dataset.PlayerFeatures) { f.Cohort = dataset.CohortDrift }, ""},
		{"missing player", func(f *dataset.PlayerFeatures) { f.PlayerID = 0 }, "PlayerID"},
		{"unknown cohort", func(f *dataset.PlayerFeatures) { f.Cohort = "holdout" }, "Cohort"},
		{"win rate above one", func(f *dataset.PlayerFeatures) { f.WinRate = 1.2 }, "WinRate"},
		{"negative deposit", func(f *dataset.PlayerFeatures) { f.TotalDeposit = -1 }, "TotalDeposit"},
		{"more redeemed than received", func(f *dataset.PlayerFeatures) { f.OffersRedeemed = 3 }, "OffersRedeemed"},
		{"zero feature date", func(f *dataset.PlayerFeatures) { f.FeatureDate = time.Time{} }, "FeatureDate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := validFeatures()
			tt.mutate(&row)

			err := Validate(FromFeatures(row))
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error mentioning %s", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error mentioning %s, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidatePlayers(t *testing.T) {
	players := []dataset.Player{
		{PlayerID: 1, Username: "user_1", Country: "DE", Acquisition: "organic", Archetype: dataset.ArchetypeWhale, VIPLevel: 3},
		{PlayerID: 2, Username: "user_2", Country: "UK", Acquisition: "email", Archetype: dataset.ArchetypeCasual},
	}
	if err := ValidatePlayers(players); err != nil {
		t.Fatalf("expected valid players, got %v", err)
	}

	players[1].Country = "GBR"
	if err := ValidatePlayers(players); err == nil {
		t.Error("expected error for a three letter country code")
	}
}

func TestPredictionContracts(t *testing.T) {
	now := time.Now()

	if err := Validate(BatchPredictionRequest{}); err == nil {
		t.Error("expected error for an empty batch")
	}
	if err := Validate(BatchPredictionRequest{PlayerIDs: []int64{1, 0}}); err == nil {
		t.Error("expected error for a zero player id")
	}

	resp := BatchPredictionResponse{
		Predictions: []PredictionResponse{
			{PlayerID: 1, ChurnProbability: 0.8, ChurnLabel: true, FeatureDate: now, PredictedAt: now},
			{PlayerID: 2, ChurnProbability: 1.5, FeatureDate: now, PredictedAt: now},
		},
		TotalProcessed: 2,
	}
	if err := Validate(resp); err == nil {
		t.Error("expected error for a probability above one")
	}

	resp.Predictions[1].ChurnProbability = 0.1
	if err := Validate(resp); err != nil {
		t.Errorf("expected valid response, got %v", err)
	}
}

func TestModelMetricsContract(t *testing.T) {
	m := ModelMetrics{ModelVersion: "v1", Accuracy: 0.9, Precision: 0.8, Recall: 0.7, F1Score: 0.75, ROCAUC: 0.88, PRAUC: 0.6, CreatedAt: time.Now()}
	if err := Validate(ModelMetricsResponse{CurrentMetrics: m}); err != nil {
		t.Fatalf("expected valid metrics, got %v", err)
	}

	bad := m
	bad.Recall = 1.1
	if err := Validate(ModelMetricsResponse{CurrentMetrics: m, HistoricalMetrics: []ModelMetrics{bad}}); err == nil {
		t.Error("expected error for a historical recall above one")
	}

	if err := Validate(HealthResponse{Status: "ok", Timestamp: time.Now(), DatabaseConnected: true}); err != nil {
		t.Errorf("expected valid health response, got %v", err)
	}
	if err := Validate(HealthResponse{Status: "sleepy", Timestamp: time.Now()}); err == nil {
		t.Error("expected error for an unknown health status")
	}
}
