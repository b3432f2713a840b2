package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pomoflow/pomoflow/internal/domain"
	"github.com/pomoflow/pomoflow/internal/infra/metrics"
)

// ─── Focus Cycle API ────────────────────────────────────────────────────────
// POST /api/focus/start     — mark the user as focusing
// POST /api/focus/complete  — credit a completed cycle
// POST /api/focus/abandon   — clear the focusing flag, credit nothing

func (s *Server) handleFocusStart(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Remote.SetProfileFocusing(r.Context(), s.deps.UserID, true); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"focusing": true})
}

func (s *Server) handleFocusAbandon(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Remote.SetProfileFocusing(r.Context(), s.deps.UserID, false); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"focusing": false})
}

type focusCompleteRequest struct {
	Minutes int64  `json:"minutes"`
	Label   string `json:"label,omitempty"`
}

func (s *Server) handleFocusComplete(w http.ResponseWriter, r *http.Request) {
	var req focusCompleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	now := time.Now()
	result, err := s.deps.Gamification.CompleteCycle(req.Minutes, now)
	if err != nil {
		if errors.Is(err, domain.ErrNegativeMinutes) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	metrics.CyclesCompleted.Inc()
	metrics.FocusMinutes.Add(float64(req.Minutes))
	metrics.XPEarned.WithLabelValues("cycle").Add(float64(result.GainedXP))
	metrics.CurrentLevel.Set(float64(result.Level))
	metrics.CurrentStreak.Set(float64(result.NewStreak))
	metrics.AchievementsUnlocked.Add(float64(len(result.NewThisCycle)))

	// Publish to the shared backend and clear the focusing flag.
	// The local credit is already committed; a sync failure here is
	// logged and the session republished by the client's next sync.
	if err := s.deps.Remote.InsertSession(r.Context(), domain.SessionRecord{
		ID:          uuid.NewString(),
		UserID:      s.deps.UserID,
		Minutes:     req.Minutes,
		CompletedAt: now,
	}); err != nil {
		log.Printf("[api] publish session: %v", err)
	}
	if err := s.deps.Remote.SetProfileFocusing(r.Context(), s.deps.UserID, false); err != nil {
		log.Printf("[api] clear focusing flag: %v", err)
	}

	if s.deps.Notification != nil {
		if err := s.deps.Notification.CelebrateCycle(result); err != nil {
			log.Printf("[api] notify: %v", err)
		}
	}

	writeJSON(w, http.StatusOK, result)
}

// ─── Gamification Readouts ──────────────────────────────────────────────────

// HandleSummary returns the full progression dashboard snapshot.
// GET /api/gamification/summary
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	snap, err := s.deps.Gamification.Snapshot()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	nextXP, fraction, err := s.deps.Gamification.Progress()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	now := time.Now()
	daily, err := s.deps.Gamification.PeriodMinutes(domain.PeriodDaily, now)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	weekly, err := s.deps.Gamification.PeriodMinutes(domain.PeriodWeekly, now)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	monthly, err := s.deps.Gamification.PeriodMinutes(domain.PeriodMonthly, now)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"xp":              snap.XP,
		"level":           snap.Level,
		"next_level_xp":   nextXP,
		"progress":        fraction,
		"stats":           snap.Stats,
		"unlocked_count":  len(snap.Unlocked),
		"minutes_daily":   daily,
		"minutes_weekly":  weekly,
		"minutes_monthly": monthly,
	})
}

// GET /api/gamification/streak
func (s *Server) handleStreak(w http.ResponseWriter, r *http.Request) {
	snap, err := s.deps.Gamification.Snapshot()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"current_days":    snap.Stats.CurrentStreak,
		"last_focus_date": snap.Stats.LastFocusDate,
	})
}

// GET /api/gamification/level
func (s *Server) handleLevel(w http.ResponseWriter, r *http.Request) {
	snap, err := s.deps.Gamification.Snapshot()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	nextXP, fraction, err := s.deps.Gamification.Progress()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"level":         snap.Level,
		"current_xp":    snap.XP,
		"next_level_xp": nextXP,
		"progress":      fraction,
	})
}

// GET /api/gamification/achievements
func (s *Server) handleAchievements(w http.ResponseWriter, r *http.Request) {
	snap, err := s.deps.Gamification.Snapshot()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	unlocked := make(map[string]bool, len(snap.Unlocked))
	for _, id := range snap.Unlocked {
		unlocked[id] = true
	}

	type achievementResponse struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Category string `json:"category"`
		Icon     string `json:"icon"`
		XPReward int64  `json:"xp_reward"`
		Unlocked bool   `json:"unlocked"`
	}

	defs := s.deps.Gamification.Catalog()
	all := make([]achievementResponse, len(defs))
	for i, def := range defs {
		all[i] = achievementResponse{
			ID:       def.ID,
			Name:     def.Name,
			Category: string(def.Category),
			Icon:     def.Icon,
			XPReward: def.XPReward,
			Unlocked: unlocked[def.ID],
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"achievements":   all,
		"unlocked_count": len(snap.Unlocked),
		"total_count":    len(defs),
	})
}

// GET /api/gamification/stats?period=daily|weekly|monthly
func (s *Server) handlePeriodStats(w http.ResponseWriter, r *http.Request) {
	period, err := domain.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	minutes, err := s.deps.Gamification.PeriodMinutes(period, time.Now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"period":  period,
		"minutes": minutes,
	})
}

// ─── Notifications ──────────────────────────────────────────────────────────

// GET /api/notifications
func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	pending, err := s.deps.Notification.Pending(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"notifications": pending,
	})
}

// POST /api/notifications/{id}/shown
func (s *Server) handleNotificationShown(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid notification id")
		return
	}
	if err := s.deps.Notification.MarkShown(id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"shown": true})
}
