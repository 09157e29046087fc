package generator

import (
	"testing"
	"time"

	"github.com/AccelByte/extend-churn-dataset/pkg/dataset"
)

func testPlayers(archetypes ...dataset.Archetype) []dataset.Player {
	players := make([]dataset.Player, len(archetypes))
	for i, a := range archetypes {
		players[i] = dataset.Player{PlayerID: int64(i + 1), Archetype: a, Country: "DE"}
	}
	return players
}

func TestNewRNGIsReproducible(t *testing.T) {
	a, b := NewRNG(99), NewRNG(99)
	for i := 0; i < 10; i++ {
		if x, y := a.Normal(0, 1), b.Normal(0, 1); x != y {
			t.Fatalf("draw %d: expected %v, got %v", i, x, y)
		}
	}
	if a.UUID() != b.UUID() {
		t.Error("expected equal identifiers from equal seeds")
	}
	if NewRNG(1).UUID() == NewRNG(2).UUID() {
		t.Error("expected different identifiers from different seeds")
	}
}

func TestRNGEdgeCases(t *testing.T) {
	rng := NewRNG(1)
	if rng.Poisson(0) != 0 {
		t.Error("expected Poisson(0) to be 0")
	}
	if rng.Bernoulli(0) || !rng.Bernoulli(1) {
		t.Error("expected degenerate Bernoulli draws")
	}
	if got := rng.IntBetween(3, 3); got != 3 {
		t.Errorf("expected 3, got %d", got)
	}
	if got := rng.SampleIndices(5, 10); len(got) != 5 {
		t.Errorf("expected k clipped to n, got %d indices", len(got))
	}
	if got := rng.SampleIndices(0, 3); got != nil {
		t.Errorf("expected no indices from an empty population, got %v", got)
	}
}

func TestGeneratePlayers(t *testing.T) {
	profile := DefaultProfile()
	players := GeneratePlayers(NewRNG(5), profile, 500, testReference)

	if len(players) != 500 {
		t.Fatalf("expected 500 players, got %d", len(players))
	}
	earliest := truncateDay(testReference).AddDate(0, 0, -profile.RegistrationMaxDaysAgo)
	counts := make(map[dataset.Archetype]int)
	for i, p := range players {
		if p.PlayerID != int64(i+1) {
			t.Errorf("expected player id %d, got %d", i+1, p.PlayerID)
		}
		if !p.Archetype.Valid() {
			t.Errorf("player %d has unknown archetype %q", p.PlayerID, p.Archetype)
		}
		if p.Archetype == dataset.ArchetypeCasual && p.VIPLevel != 0 {
			t.Errorf("casual player %d has vip level %d", p.PlayerID, p.VIPLevel)
		}
		if p.VIPLevel < 0 || p.VIPLevel > profile.VIPMax {
			t.Errorf("player %d vip level %d out of range", p.PlayerID, p.VIPLevel)
		}
		if p.RegistrationDate.Before(earliest) || p.RegistrationDate.After(testReference) {
			t.Errorf("player %d registered on %v", p.PlayerID, p.RegistrationDate)
		}
		if p.FriendsCount < 0 || p.MessagesSent < 0 {
			t.Errorf("player %d has negative social counts", p.PlayerID)
		}
		counts[p.Archetype]++
	}
	if counts[dataset.ArchetypeCasual] <= counts[dataset.ArchetypeWhale] {
		t.Errorf("expected casual players to outnumber whales, got %v", counts)
	}
}

func TestGenerateSessionsStayInWindow(t *testing.T) {
	profile := DefaultProfile()
	w := Window{Start: testReference.AddDate(0, 0, -14), End: testReference}
	players := testPlayers(dataset.ArchetypeCasual, dataset.ArchetypeRegular, dataset.ArchetypeWhale, dataset.ArchetypeBot)

	sessions := GenerateSessions(NewRNG(3), profile, players, w)

	seen := make(map[int64]bool)
	for _, s := range sessions {
		if s.LoginTime.Before(w.Start) || !s.LoginTime.Before(w.End) {
			t.Errorf("login %v outside [%v, %v)", s.LoginTime, w.Start, w.End)
		}
		if s.LogoutTime.Sub(s.LoginTime) < time.Minute {
			t.Errorf("session %s shorter than a minute", s.SessionID)
		}
		if s.Country == nil || *s.Country != "DE" {
			t.Errorf("session %s does not carry the player country", s.SessionID)
		}
		seen[s.PlayerID] = true
	}
	for _, p := range players {
		if !seen[p.PlayerID] {
			t.Errorf("expected player %d to have a session", p.PlayerID)
		}
	}
}

func TestBotsNeverMoveMoney(t *testing.T) {
	profile := DefaultProfile()
	w := Window{Start: testReference.AddDate(0, 0, -180), End: testReference}
	bots := testPlayers(dataset.ArchetypeBot, dataset.ArchetypeBot, dataset.ArchetypeBot)
	rng := NewRNG(11)

	if got := GenerateDeposits(rng, profile, bots, w); len(got) != 0 {
		t.Errorf("expected no bot deposits, got %d", len(got))
	}
	if got := GenerateWithdrawals(rng, profile, bots, w); len(got) != 0 {
		t.Errorf("expected no bot withdrawals, got %d", len(got))
	}
	if got := GenerateBonuses(rng, profile, bots, w); len(got) != 0 {
		t.Errorf("expected no bot bonuses, got %d", len(got))
	}
}

func TestGenerateBetsPayouts(t *testing.T) {
	profile := DefaultProfile()
	w := Window{Start: testReference.AddDate(0, 0, -30), End: testReference}

	bets := GenerateBets(NewRNG(4), profile, testPlayers(dataset.ArchetypeWhale), w)
	if len(bets) == 0 {
		t.Fatal("expected whale bets")
	}
	for _, b := range bets {
		stake, win := *b.BetAmount, *b.WinAmount
		if stake < 10 {
			t.Errorf("whale stake %v below the 10 floor", stake)
		}
		if win != 0 && (win < stake*profile.WinMultiplierMin-0.02 || win > stake*profile.WinMultiplierMax+0.02) {
			t.Errorf("payout %v outside multiplier range for stake %v", win, stake)
		}
	}
}

func TestGenerateBonusesMarketingOffers(t *testing.T) {
	profile := DefaultProfile()
	profile.MarketingOfferProbability = 1
	profile.Archetypes[dataset.ArchetypeWhale] = func() ArchetypeProfile {
		ap := profile.Archetypes[dataset.ArchetypeWhale]
		ap.BonusProbability = 1
		return ap
	}()
	w := Window{Start: testReference.AddDate(0, 0, -30), End: testReference}

	rows := GenerateBonuses(NewRNG(2), profile, testPlayers(dataset.ArchetypeWhale), w)
	if len(rows) != 2 {
		t.Fatalf("expected a bonus and an offer, got %d rows", len(rows))
	}
	offer := rows[1]
	if *offer.BonusType != dataset.BonusTypeMarketingOffer || *offer.BonusAmount != 0 || offer.RedeemedDate != nil {
		t.Errorf("unexpected marketing offer %+v", offer)
	}
	delay := offer.IssuedDate.Sub(rows[0].IssuedDate)
	if delay < 24*time.Hour || delay > 7*24*time.Hour {
		t.Errorf("expected offer 1 to 7 days after the bonus, got %v", delay)
	}
}

func TestClampToWindow(t *testing.T) {
	w := Window{Start: testReference.AddDate(0, 0, -1), End: testReference}

	late := testReference.Add(2 * time.Hour)
	if got := clampToWindow(late, w); !got.Equal(late.Add(-24 * time.Hour)) {
		t.Errorf("expected a late login to move back one day, got %v", got)
	}
	early := w.Start.Add(-time.Hour)
	if got := clampToWindow(early, w); !got.Equal(early.Add(24 * time.Hour)) {
		t.Errorf("expected an early login to move forward one day, got %v", got)
	}
}
