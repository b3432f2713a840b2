package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pomoflow/pomoflow/internal/app/ranking"
	"github.com/pomoflow/pomoflow/internal/domain"
	"github.com/pomoflow/pomoflow/internal/infra/metrics"
)

// ─── Ranking API ────────────────────────────────────────────────────────────

// GET /api/ranking?period=daily|weekly|monthly&scope=global|following|group:<id>
func (s *Server) handleRanking(w http.ResponseWriter, r *http.Request) {
	period, err := domain.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	scope, err := domain.ParseScope(r.URL.Query().Get("scope"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	timer := prometheus.NewTimer(metrics.RankingQueryDuration.WithLabelValues(string(period)))
	entries, err := s.deps.Ranking.Leaderboard(r.Context(), period, scope, s.deps.UserID, time.Now())
	timer.ObserveDuration()
	if err != nil {
		metrics.RankingQueryErrors.Inc()
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	type rankingResponse struct {
		domain.RankingEntry
		Rank    int    `json:"rank"`
		Display string `json:"display"`
	}

	rows := make([]rankingResponse, len(entries))
	for i, e := range entries {
		rows[i] = rankingResponse{
			RankingEntry: e,
			Rank:         i + 1,
			Display:      ranking.FormatMinutes(e.Minutes),
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"period":  period,
		"scope":   scope.Kind,
		"entries": rows,
		"my_rank": ranking.Rank(entries, s.deps.UserID),
	})
}

// ─── Profile API ────────────────────────────────────────────────────────────

// GET /api/profiles
func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := s.deps.Remote.QueryProfiles(r.Context(), nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"profiles": profiles,
	})
}

type upsertProfileRequest struct {
	ID          string `json:"id,omitempty"`
	DisplayName string `json:"display_name"`
	AvatarRef   string `json:"avatar_ref,omitempty"`
}

// POST /api/profiles
func (s *Server) handleUpsertProfile(w http.ResponseWriter, r *http.Request) {
	var req upsertProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.DisplayName == "" {
		writeError(w, http.StatusBadRequest, "display_name is required")
		return
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	p := domain.Profile{
		ID:          req.ID,
		DisplayName: req.DisplayName,
		AvatarRef:   req.AvatarRef,
		CreatedAt:   time.Now(),
	}
	if err := s.deps.Social.UpsertProfile(r.Context(), p); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// ─── Follow API ─────────────────────────────────────────────────────────────

// GET /api/follows
func (s *Server) handleListFollowing(w http.ResponseWriter, r *http.Request) {
	ids, err := s.deps.Social.ListFollowing(r.Context(), s.deps.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"following": ids,
	})
}

type followRequest struct {
	FolloweeID string `json:"followee_id"`
}

// POST /api/follows
func (s *Server) handleFollow(w http.ResponseWriter, r *http.Request) {
	var req followRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.FolloweeID == "" {
		writeError(w, http.StatusBadRequest, "followee_id is required")
		return
	}

	if err := s.deps.Social.Follow(r.Context(), s.deps.UserID, req.FolloweeID); err != nil {
		if errors.Is(err, domain.ErrSelfFollow) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"following": req.FolloweeID})
}

// DELETE /api/follows/{id}
func (s *Server) handleUnfollow(w http.ResponseWriter, r *http.Request) {
	followeeID := chi.URLParam(r, "id")
	if err := s.deps.Social.Unfollow(r.Context(), s.deps.UserID, followeeID); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"unfollowed": followeeID})
}

// ─── Group API ──────────────────────────────────────────────────────────────

type createGroupRequest struct {
	Name string `json:"name"`
}

// POST /api/groups
func (s *Server) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	g := domain.Group{
		ID:        uuid.NewString(),
		Name:      req.Name,
		OwnerID:   s.deps.UserID,
		CreatedAt: time.Now(),
	}
	if err := s.deps.Social.CreateGroup(r.Context(), g); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, g)
}

// POST /api/groups/{id}/join
func (s *Server) handleJoinGroup(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "id")
	if err := s.deps.Social.JoinGroup(r.Context(), groupID, s.deps.UserID); err != nil {
		if errors.Is(err, domain.ErrGroupNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"joined": groupID})
}

// GET /api/groups/{id}/members
func (s *Server) handleGroupMembers(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "id")
	members, err := s.deps.Social.ListGroupMembers(r.Context(), groupID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"members": members,
	})
}
