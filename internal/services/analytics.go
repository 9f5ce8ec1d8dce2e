package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/gabrielsaDRC/calculadora-banco-imobiliario/internal/models"
)

// AnalyticsService derives read-only views from (players, transactions)
// snapshots. Every method is a pure function: no storage access, no mutation,
// recomputed by clients on each poll tick.
type AnalyticsService struct{}

func NewAnalyticsService() *AnalyticsService {
	return &AnalyticsService{}
}

type DashboardStats struct {
	TotalInPlay      int64           `json:"total_in_play"`
	Richest          *PlayerStanding `json:"richest,omitempty"`
	Poorest          *PlayerStanding `json:"poorest,omitempty"`
	PlayerCount      int             `json:"player_count"`
	TransactionCount int             `json:"transaction_count"`
}

type PlayerStanding struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Balance  int64  `json:"balance"`
}

// SeriesPoint carries every player's running balance at one moment of the
// history, keyed by player id. Ready for a line chart without further
// transformation.
type SeriesPoint struct {
	Label     string           `json:"label"`
	Timestamp int64            `json:"timestamp"`
	Balances  map[string]int64 `json:"balances"`
}

type LeaderCount struct {
	PlayerID    string `json:"player_id"`
	Name        string `json:"name"`
	TimesLeader int    `json:"times_leader"`
}

type RankingEntry struct {
	Position       int    `json:"position"`
	PlayerID       string `json:"player_id"`
	Name           string `json:"name"`
	IsHost         bool   `json:"is_host"`
	Balance        int64  `json:"balance"`
	InitialBalance int64  `json:"initial_balance"`
	Gain           int64  `json:"gain"`
}

// Dashboard sums current balances and picks the richest and poorest players.
// Ties go to the first player in list order.
func (a *AnalyticsService) Dashboard(players []models.Player, transactionCount int) DashboardStats {
	stats := DashboardStats{
		PlayerCount:      len(players),
		TransactionCount: transactionCount,
	}
	for i, p := range players {
		stats.TotalInPlay += p.Balance
		if i == 0 || p.Balance > stats.Richest.Balance {
			stats.Richest = &PlayerStanding{PlayerID: p.ID, Name: p.Name, Balance: p.Balance}
		}
		if i == 0 || p.Balance < stats.Poorest.Balance {
			stats.Poorest = &PlayerStanding{PlayerID: p.ID, Name: p.Name, Balance: p.Balance}
		}
	}
	return stats
}

// BalanceEvolution builds the balance-over-time series: a synthetic start
// point at each player's initial balance, then one point per transaction from
// oldest to newest. A credit-style entry moves the affected player to the
// recorded new balance; a debit-style entry recomputes previous-amount.
// Unaffected players carry their last value forward.
//
// transactions are expected newest first, as ListTransactions returns them.
func (a *AnalyticsService) BalanceEvolution(players []models.Player, transactions []models.Transaction) []SeriesPoint {
	running := make(map[string]int64, len(players))
	for _, p := range players {
		running[p.ID] = p.InitialBalance
	}

	start := time.Now().Add(-time.Duration(len(transactions)+1) * time.Minute).UnixNano()
	points := make([]SeriesPoint, 0, len(transactions)+1)
	points = append(points, SeriesPoint{
		Label:     "Start",
		Timestamp: start,
		Balances:  copyBalances(running),
	})

	for i := len(transactions) - 1; i >= 0; i-- {
		t := transactions[i]
		if t.ToPlayerID != nil {
			if _, ok := running[*t.ToPlayerID]; ok {
				running[*t.ToPlayerID] = t.NewBalance
			}
		}
		if t.FromPlayerID != nil {
			if _, ok := running[*t.FromPlayerID]; ok {
				running[*t.FromPlayerID] = t.PreviousBalance - t.Amount
			}
		}
		points = append(points, SeriesPoint{
			Label:     fmt.Sprintf("T%d", len(points)),
			Timestamp: t.CreatedAt,
			Balances:  copyBalances(running),
		})
	}
	return points
}

// LeadershipCounts walks the series and counts, per player, how many times
// they became the leader: the initial assignment plus every change of the
// single richest player. First-max wins ties, in player list order. Players
// who never lead report zero.
func (a *AnalyticsService) LeadershipCounts(players []models.Player, series []SeriesPoint) []LeaderCount {
	counts := make(map[string]int, len(players))
	currentLeader := ""

	for _, point := range series {
		leaderID := ""
		var best int64
		for _, p := range players {
			balance, ok := point.Balances[p.ID]
			if !ok {
				balance = p.Balance
			}
			if leaderID == "" || balance > best {
				leaderID = p.ID
				best = balance
			}
		}
		if leaderID != "" && leaderID != currentLeader {
			currentLeader = leaderID
			counts[leaderID]++
		}
	}

	out := make([]LeaderCount, len(players))
	for i, p := range players {
		out[i] = LeaderCount{PlayerID: p.ID, Name: p.Name, TimesLeader: counts[p.ID]}
	}
	return out
}

// Ranking orders players by current balance descending with a stable
// tie-break on list order, annotating 1-based positions and gain since start.
func (a *AnalyticsService) Ranking(players []models.Player) []RankingEntry {
	ranked := make([]models.Player, len(players))
	copy(ranked, players)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Balance > ranked[j].Balance
	})

	entries := make([]RankingEntry, len(ranked))
	for i, p := range ranked {
		entries[i] = RankingEntry{
			Position:       i + 1,
			PlayerID:       p.ID,
			Name:           p.Name,
			IsHost:         p.IsHost,
			Balance:        p.Balance,
			InitialBalance: p.InitialBalance,
			Gain:           p.Balance - p.InitialBalance,
		}
	}
	return entries
}

func copyBalances(in map[string]int64) map[string]int64 {
	out := make(map[string]int64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
