package services

import (
	"testing"

	"github.com/gabrielsaDRC/calculadora-banco-imobiliario/internal/models"
)

func strptr(s string) *string { return &s }

func analyticsPlayers() []models.Player {
	return []models.Player{
		{ID: "p1", Name: "Ana", Balance: 1500, InitialBalance: 1000},
		{ID: "p2", Name: "Bia", Balance: 800, InitialBalance: 1000},
		{ID: "p3", Name: "Caio", Balance: 1500, InitialBalance: 1000},
	}
}

func TestDashboardTotalsAndExtremes(t *testing.T) {
	analytics := NewAnalyticsService()

	stats := analytics.Dashboard(analyticsPlayers(), 7)
	if stats.TotalInPlay != 3800 {
		t.Errorf("TotalInPlay=%d, want 3800", stats.TotalInPlay)
	}
	if stats.PlayerCount != 3 || stats.TransactionCount != 7 {
		t.Errorf("counts=%d/%d, want 3/7", stats.PlayerCount, stats.TransactionCount)
	}
	// Ana and Caio tie at 1500; the first in list order wins.
	if stats.Richest == nil || stats.Richest.PlayerID != "p1" {
		t.Errorf("Richest=%+v, want p1", stats.Richest)
	}
	if stats.Poorest == nil || stats.Poorest.PlayerID != "p2" {
		t.Errorf("Poorest=%+v, want p2", stats.Poorest)
	}
}

func TestDashboardEmptySession(t *testing.T) {
	stats := NewAnalyticsService().Dashboard(nil, 0)
	if stats.Richest != nil || stats.Poorest != nil || stats.TotalInPlay != 0 {
		t.Errorf("empty session produced %+v", stats)
	}
}

func TestBalanceEvolutionSeries(t *testing.T) {
	analytics := NewAnalyticsService()
	players := []models.Player{
		{ID: "p1", Name: "Ana", InitialBalance: 1000},
		{ID: "p2", Name: "Bia", InitialBalance: 1000},
	}
	// Newest first, as the history endpoint returns them:
	// oldest: bank credits Ana 500  -> Ana 1500
	// newest: Ana pays the bank 200 -> Ana 1300
	transactions := []models.Transaction{
		{ID: "t2", FromPlayerID: strptr("p1"), ToPlayerID: nil, Amount: 200, PreviousBalance: 1500, NewBalance: 1300, CreatedAt: 200},
		{ID: "t1", FromPlayerID: nil, ToPlayerID: strptr("p1"), Amount: 500, PreviousBalance: 1000, NewBalance: 1500, CreatedAt: 100},
	}

	series := analytics.BalanceEvolution(players, transactions)
	if len(series) != 3 {
		t.Fatalf("got %d points, want 3", len(series))
	}

	if series[0].Label != "Start" {
		t.Errorf("first label=%q, want Start", series[0].Label)
	}
	if series[0].Balances["p1"] != 1000 || series[0].Balances["p2"] != 1000 {
		t.Errorf("start balances=%v, want both 1000", series[0].Balances)
	}

	if series[1].Label != "T1" || series[1].Timestamp != 100 {
		t.Errorf("point 1 label/ts=%q/%d, want T1/100", series[1].Label, series[1].Timestamp)
	}
	if series[1].Balances["p1"] != 1500 {
		t.Errorf("after credit p1=%d, want 1500", series[1].Balances["p1"])
	}
	if series[1].Balances["p2"] != 1000 {
		t.Errorf("untouched player changed: p2=%d", series[1].Balances["p2"])
	}

	if series[2].Label != "T2" || series[2].Balances["p1"] != 1300 {
		t.Errorf("point 2=%q p1=%d, want T2/1300", series[2].Label, series[2].Balances["p1"])
	}
	if series[0].Timestamp >= series[1].Timestamp {
		t.Errorf("start timestamp should predate the first transaction")
	}
}

func TestBalanceEvolutionIgnoresDanglingRefs(t *testing.T) {
	analytics := NewAnalyticsService()
	players := []models.Player{{ID: "p1", Name: "Ana", InitialBalance: 1000}}
	transactions := []models.Transaction{
		{ID: "t1", FromPlayerID: strptr("gone"), ToPlayerID: strptr("gone"), Amount: 300, PreviousBalance: 900, NewBalance: 1200, CreatedAt: 100},
	}

	series := analytics.BalanceEvolution(players, transactions)
	if len(series) != 2 {
		t.Fatalf("got %d points, want 2", len(series))
	}
	if series[1].Balances["p1"] != 1000 {
		t.Errorf("removed player's transaction moved p1 to %d", series[1].Balances["p1"])
	}
	if _, ok := series[1].Balances["gone"]; ok {
		t.Errorf("removed player leaked into the series")
	}
}

func TestLeadershipCounts(t *testing.T) {
	analytics := NewAnalyticsService()
	players := []models.Player{
		{ID: "p1", Name: "Ana"},
		{ID: "p2", Name: "Bia"},
	}
	// p1 leads at start (tie, first in list), p2 takes over, p1 takes it back.
	series := []SeriesPoint{
		{Balances: map[string]int64{"p1": 1000, "p2": 1000}},
		{Balances: map[string]int64{"p1": 1000, "p2": 1200}},
		{Balances: map[string]int64{"p1": 1000, "p2": 1200}},
		{Balances: map[string]int64{"p1": 1500, "p2": 1200}},
	}

	counts := analytics.LeadershipCounts(players, series)
	if len(counts) != 2 {
		t.Fatalf("got %d entries, want 2", len(counts))
	}
	if counts[0].PlayerID != "p1" || counts[0].TimesLeader != 2 {
		t.Errorf("p1 counted %d times, want 2", counts[0].TimesLeader)
	}
	if counts[1].PlayerID != "p2" || counts[1].TimesLeader != 1 {
		t.Errorf("p2 counted %d times, want 1", counts[1].TimesLeader)
	}
}

func TestLeadershipCountsZeroFill(t *testing.T) {
	analytics := NewAnalyticsService()
	players := []models.Player{
		{ID: "p1", Name: "Ana"},
		{ID: "p2", Name: "Bia"},
	}
	series := []SeriesPoint{
		{Balances: map[string]int64{"p1": 2000, "p2": 1000}},
	}

	counts := analytics.LeadershipCounts(players, series)
	if counts[0].TimesLeader != 1 {
		t.Errorf("leader counted %d times, want 1", counts[0].TimesLeader)
	}
	if counts[1].TimesLeader != 0 {
		t.Errorf("never-leader counted %d times, want 0", counts[1].TimesLeader)
	}
}

func TestRankingOrderAndGain(t *testing.T) {
	analytics := NewAnalyticsService()
	players := []models.Player{
		{ID: "p1", Name: "Ana", Balance: 800, InitialBalance: 1000},
		{ID: "p2", Name: "Bia", Balance: 1500, InitialBalance: 1000, IsHost: true},
		{ID: "p3", Name: "Caio", Balance: 800, InitialBalance: 500},
	}

	ranking := analytics.Ranking(players)
	if len(ranking) != 3 {
		t.Fatalf("got %d entries, want 3", len(ranking))
	}
	if ranking[0].PlayerID != "p2" || ranking[0].Position != 1 || !ranking[0].IsHost {
		t.Errorf("first entry=%+v, want p2 at position 1", ranking[0])
	}
	// Ana and Caio tie at 800; stable sort keeps list order.
	if ranking[1].PlayerID != "p1" || ranking[2].PlayerID != "p3" {
		t.Errorf("tie order=%s,%s, want p1,p3", ranking[1].PlayerID, ranking[2].PlayerID)
	}
	if ranking[0].Gain != 500 || ranking[1].Gain != -200 || ranking[2].Gain != 300 {
		t.Errorf("gains=%d,%d,%d, want 500,-200,300", ranking[0].Gain, ranking[1].Gain, ranking[2].Gain)
	}
	if ranking[2].Position != 3 {
		t.Errorf("last position=%d, want 3", ranking[2].Position)
	}
}
