// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package export encodes the output tables as comma separated text with a
// header row. Null cells are written as empty fields.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/AccelByte/extend-churn-dataset/pkg/dataset"
)

// Extension of every encoded table file.
const Extension = ".csv"

// Table is one encodable output table.
type Table struct {
	Name   string
	Header []string
	Len    int
	Record func(i int) []string
}

// FileName is the file the table is written to.
func (t Table) FileName() string {
	return t.Name + Extension
}

// Tables returns the eight output tables in their fixed order.
func Tables(out *dataset.Output) []Table {
	return []Table{
		playersTable(out.Tables.Players),
		sessionsTable(out.Tables.Sessions),
		betsTable(out.Tables.Bets),
		depositsTable(out.Tables.Deposits),
		withdrawalsTable(out.Tables.Withdrawals),
		bonusesTable(out.Tables.Bonuses),
		FeaturesTable(dataset.TableFeatures, out.Features),
		FeaturesTable(dataset.TableDriftFeatures, out.DriftFeatures),
	}
}

// Write encodes t into w.
func Write(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", t.Name, err)
	}
	for i := 0; i < t.Len; i++ {
		if err := cw.Write(t.Record(i)); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", t.Name, i, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", t.Name, err)
	}
	return nil
}

// Encode returns the encoded bytes of t.
func Encode(t Table) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile writes t into dir and returns the file path.
func WriteFile(dir string, t Table) (string, error) {
	path := filepath.Join(dir, t.FileName())
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := Write(f, t); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", path, err)
	}
	return path, nil
}

func playersTable(rows []dataset.Player) Table {
	return Table{
		Name: dataset.TablePlayers,
		Header: []string{"player_id", "username", "registration_date", "country", "vip_level",
			"acquisition", "friends_count", "messages_sent", "archetype"},
		Len: len(rows),
		Record: func(i int) []string {
			p := rows[i]
			return []string{
				formatInt(p.PlayerID), p.Username, formatDate(p.RegistrationDate), p.Country,
				strconv.Itoa(p.VIPLevel), p.Acquisition, strconv.Itoa(p.FriendsCount),
				strconv.Itoa(p.MessagesSent), string(p.Archetype),
			}
		},
	}
}

func sessionsTable(rows []dataset.Session) Table {
	return Table{
		Name:   dataset.TableSessions,
		Header: []string{"session_id", "player_id", "login_time", "logout_time", "device_type", "platform", "country"},
		Len:    len(rows),
		Record: func(i int) []string {
			s := rows[i]
			return []string{
				s.SessionID, formatInt(s.PlayerID), formatTime(s.LoginTime), formatTime(s.LogoutTime),
				optString(s.DeviceType), optString(s.Platform), optString(s.Country),
			}
		},
	}
}

func betsTable(rows []dataset.Bet) Table {
	return Table{
		Name:   dataset.TableBets,
		Header: []string{"bet_id", "player_id", "game_name", "bet_amount", "win_amount", "bet_time"},
		Len:    len(rows),
		Record: func(i int) []string {
			b := rows[i]
			return []string{
				b.BetID, formatInt(b.PlayerID), optString(b.GameName),
				optFloat(b.BetAmount), optFloat(b.WinAmount), formatTime(b.BetTime),
			}
		},
	}
}

func depositsTable(rows []dataset.Deposit) Table {
	return Table{
		Name:   dataset.TableDeposits,
		Header: []string{"deposit_id", "player_id", "deposit_time", "amount", "payment_method"},
		Len:    len(rows),
		Record: func(i int) []string {
			d := rows[i]
			return []string{
				d.DepositID, formatInt(d.PlayerID), formatTime(d.DepositTime),
				optFloat(d.Amount), optString(d.PaymentMethod),
			}
		},
	}
}

func withdrawalsTable(rows []dataset.Withdrawal) Table {
	return Table{
		Name:   dataset.TableWithdrawals,
		Header: []string{"withdrawal_id", "player_id", "withdrawal_time", "amount", "method"},
		Len:    len(rows),
		Record: func(i int) []string {
			w := rows[i]
			return []string{
				w.WithdrawalID, formatInt(w.PlayerID), formatTime(w.WithdrawalTime),
				optFloat(w.Amount), optString(w.Method),
			}
		},
	}
}

func bonusesTable(rows []dataset.Bonus) Table {
	return Table{
		Name:   dataset.TableBonuses,
		Header: []string{"bonus_id", "player_id", "bonus_type", "bonus_amount", "issued_date", "redeemed_date"},
		Len:    len(rows),
		Record: func(i int) []string {
			r := rows[i]
			redeemed := ""
			if r.RedeemedDate != nil {
				redeemed = formatTime(*r.RedeemedDate)
			}
			return []string{
				r.BonusID, formatInt(r.PlayerID), optString(r.BonusType),
				optFloat(r.BonusAmount), formatTime(r.IssuedDate), redeemed,
			}
		},
	}
}

// FeatureColumns is the delimited feature schema, in order.
var FeatureColumns = []string{
	"player_id", "days_active_last_30", "total_bets", "total_bet_amount", "avg_bet_size",
	"total_deposit", "total_withdrawal", "win_rate", "net_ggr", "unique_games_played",
	"bonus_used", "offers_received", "offers_redeemed", "sessions_per_week",
	"session_trend_weekly", "days_since_last_login", "friends_count", "messages_sent",
	"churn_label",
}

// FeaturesTable encodes feature rows under the given table name.
func FeaturesTable(name string, rows []dataset.PlayerFeatures) Table {
	return Table{
		Name:   name,
		Header: FeatureColumns,
		Len:    len(rows),
		Record: func(i int) []string {
			f := rows[i]
			label := "0"
			if f.ChurnLabel {
				label = "1"
			}
			return []string{
				formatInt(f.PlayerID),
				strconv.Itoa(f.DaysActiveLast30),
				strconv.Itoa(f.TotalBets),
				formatFloat(f.TotalBetAmount),
				formatFloat(f.AvgBetSize),
				formatFloat(f.TotalDeposit),
				formatFloat(f.TotalWithdrawal),
				formatFloat(f.WinRate),
				formatFloat(f.NetGGR),
				strconv.Itoa(f.UniqueGamesPlayed),
				strconv.FormatBool(f.BonusUsed),
				strconv.Itoa(f.OffersReceived),
				strconv.Itoa(f.OffersRedeemed),
				formatFloat(f.SessionsPerWeek),
				formatFloat(f.SessionTrendWeekly),
				strconv.Itoa(f.DaysSinceLastLogin),
				strconv.Itoa(f.FriendsCount),
				strconv.Itoa(f.MessagesSent),
				label,
			}
		},
	}
}

func formatInt(v int64) string { return strconv.FormatInt(v, 10) }

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func formatTime(t time.Time) string { return t.UTC().Format(time.RFC3339) }

func formatDate(t time.Time) string { return t.UTC().Format(time.DateOnly) }

func optString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func optFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}
