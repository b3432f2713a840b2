// Package metrics provides Prometheus metrics for pomoflow: counters,
// gauges, and histograms for focus cycles, progression, and ranking
// queries.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Focus Cycles ───────────────────────────────────────────────────────────

// CyclesCompleted tracks completed focus cycles.
var CyclesCompleted = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "pomoflow",
	Name:      "cycles_completed_total",
	Help:      "Total completed focus cycles.",
})

// FocusMinutes tracks total focused minutes credited.
var FocusMinutes = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "pomoflow",
	Name:      "focus_minutes_total",
	Help:      "Total focused minutes credited.",
})

// ─── Progression ────────────────────────────────────────────────────────────

// XPEarned tracks XP earned, labeled by source (cycle, achievement).
var XPEarned = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "pomoflow",
	Name:      "xp_earned_total",
	Help:      "Total XP earned.",
}, []string{"source"})

// CurrentLevel tracks the user's current level.
var CurrentLevel = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "pomoflow",
	Name:      "level_current",
	Help:      "Current user level.",
})

// CurrentStreak tracks the consecutive-day streak.
var CurrentStreak = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "pomoflow",
	Name:      "streak_days_current",
	Help:      "Current consecutive-day focus streak.",
})

// AchievementsUnlocked tracks achievement unlocks.
var AchievementsUnlocked = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "pomoflow",
	Name:      "achievements_unlocked_total",
	Help:      "Total achievements unlocked.",
})

// ─── Ranking ────────────────────────────────────────────────────────────────

// RankingQueryDuration tracks leaderboard query latency by period.
var RankingQueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "pomoflow",
	Name:      "ranking_query_seconds",
	Help:      "Leaderboard query duration in seconds.",
	Buckets:   prometheus.DefBuckets,
}, []string{"period"})

// RankingQueryErrors tracks failed leaderboard queries.
var RankingQueryErrors = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "pomoflow",
	Name:      "ranking_query_errors_total",
	Help:      "Total failed leaderboard queries.",
})
