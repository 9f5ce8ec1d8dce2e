// Package metrics holds the prometheus counters exposed at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SessionsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gamebank_sessions_created_total",
		Help: "Number of game sessions created.",
	})

	PlayersJoined = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gamebank_players_joined_total",
		Help: "Number of players created, host players included.",
	})

	TransactionsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gamebank_transactions_recorded_total",
		Help: "Number of transactions appended to session histories.",
	})
)
