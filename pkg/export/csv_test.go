package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/AccelByte/extend-churn-dataset/pkg/dataset"
)

var at = time.Date(2025, 6, 30, 18, 4, 5, 0, time.UTC)

func testOutput() *dataset.Output {
	return &dataset.Output{
		Tables: dataset.Tables{
			Players: []dataset.Player{{
				PlayerID: 1, Username: "user_1", RegistrationDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
				Country: "DE", VIPLevel: 2, Acquisition: "organic", FriendsCount: 3, MessagesSent: 4,
				Archetype: dataset.ArchetypeRegular,
			}},
			Sessions: []dataset.Session{{
				SessionID: "s-1", PlayerID: 1, LoginTime: at, LogoutTime: at.Add(time.Hour),
				DeviceType: nil, Platform: dataset.String("iOS"), Country: dataset.String("DE"),
			}},
			Bets: []dataset.Bet{{
				BetID: "b-1", PlayerID: 1, GameName: dataset.String("slots"),
				BetAmount: dataset.Float(12.5), WinAmount: nil, BetTime: at,
			}},
			Bonuses: []dataset.Bonus{{
				BonusID: "r-1", PlayerID: 1, BonusType: dataset.String("cashback"),
				BonusAmount: dataset.Float(100), IssuedDate: at,
			}},
		},
		Features: []dataset.PlayerFeatures{{
			PlayerID: 1, TotalBets: 1, TotalBetAmount: 12.5, WinRate: 0.333,
			SessionTrendWeekly: -0.5, BonusUsed: true, DaysSinceLastLogin: 20, ChurnLabel: true,
		}},
	}
}

func TestTablesOrderAndNames(t *testing.T) {
	tables := Tables(testOutput())

	want := []string{"players", "sessions", "bets", "deposits", "withdrawals", "bonuses",
		"player_features", "player_features_test_drift"}
	if len(tables) != len(want) {
		t.Fatalf("expected %d tables, got %d", len(want), len(tables))
	}
	for i, name := range want {
		if tables[i].Name != name {
			t.Errorf("table %d: expected %s, got %s", i, name, tables[i].Name)
		}
	}
}

func TestEncodeNullsAndFormats(t *testing.T) {
	tables := Tables(testOutput())

	sessions, err := Encode(tables[1])
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	wantSessions := "session_id,player_id,login_time,logout_time,device_type,platform,country\n" +
		"s-1,1,2025-06-30T18:04:05Z,2025-06-30T19:04:05Z,,iOS,DE\n"
	if string(sessions) != wantSessions {
		t.Errorf("expected\n%s\ngot\n%s", wantSessions, sessions)
	}

	bets, err := Encode(tables[2])
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !strings.Contains(string(bets), "b-1,1,slots,12.5,,2025-06-30T18:04:05Z") {
		t.Errorf("expected empty win_amount, got %s", bets)
	}

	players, err := Encode(tables[0])
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !strings.Contains(string(players), "1,user_1,2024-05-01,DE,2,organic,3,4,regular") {
		t.Errorf("unexpected players encoding %s", players)
	}

	bonuses, err := Encode(tables[5])
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !strings.HasSuffix(string(bonuses), "r-1,1,cashback,100,2025-06-30T18:04:05Z,\n") {
		t.Errorf("expected empty redeemed_date, got %s", bonuses)
	}
}

func TestFeaturesTableColumns(t *testing.T) {
	data, err := Encode(Tables(testOutput())[6])
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("failed to read back: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header and one row, got %d records", len(records))
	}
	if strings.Join(records[0], ",") != strings.Join(FeatureColumns, ",") {
		t.Errorf("unexpected header %v", records[0])
	}

	row := make(map[string]string)
	for i, col := range records[0] {
		row[col] = records[1][i]
	}
	checks := map[string]string{
		"player_id":             "1",
		"total_bet_amount":      "12.5",
		"win_rate":              "0.333",
		"session_trend_weekly":  "-0.5",
		"bonus_used":            "true",
		"days_since_last_login": "20",
		"churn_label":           "1",
	}
	for col, want := range checks {
		if row[col] != want {
			t.Errorf("%s: expected %q, got %q", col, want, row[col])
		}
	}
}

func TestWriteFileEmptyTable(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteFile(dir, Tables(testOutput())[7])
	if err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if path != filepath.Join(dir, "player_features_test_drift.csv") {
		t.Errorf("unexpected path %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	if string(data) != strings.Join(FeatureColumns, ",")+"\n" {
		t.Errorf("expected header only, got %q", data)
	}
}
