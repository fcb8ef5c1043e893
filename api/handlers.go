package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	contestdb "github.com/Ember-Habit-Club/habit-engine/app/modules/contest/infrastructure/repositories"
	leaderboardservice "github.com/Ember-Habit-Club/habit-engine/app/modules/leaderboard/application"
	leaderboarddomain "github.com/Ember-Habit-Club/habit-engine/app/modules/leaderboard/domain"
	"github.com/Ember-Habit-Club/habit-engine/internal/observability/attr"
	sharedtypes "github.com/Ember-Habit-Club/habit-engine/internal/types/shared"
	"github.com/go-chi/chi/v5"
)

type handlers struct {
	services Services
	logger   *slog.Logger
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// getStreak returns the user's streak. Users with no qualifying actions yet
// read as a zero streak, not a 404; the service maps missing rows for us.
func (h *handlers) getStreak(w http.ResponseWriter, r *http.Request) {
	userID := sharedtypes.UserID(chi.URLParam(r, "userID"))

	streak, err := h.services.Streak.GetStreak(r.Context(), userID)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, streak)
}

func (h *handlers) getNextMilestone(w http.ResponseWriter, r *http.Request) {
	userID := sharedtypes.UserID(chi.URLParam(r, "userID"))

	milestone, err := h.services.Streak.GetNextMilestone(r.Context(), userID)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, milestone)
}

func (h *handlers) getTierStatus(w http.ResponseWriter, r *http.Request) {
	userID := sharedtypes.UserID(chi.URLParam(r, "userID"))
	category := sharedtypes.Category(chi.URLParam(r, "category"))

	status, err := h.services.Progression.GetTierStatus(r.Context(), userID, category)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, status)
}

func (h *handlers) listContests(w http.ResponseWriter, r *http.Request) {
	contests, err := h.services.Contest.ListContests(r.Context())
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, contests)
}

func (h *handlers) getRegistration(w http.ResponseWriter, r *http.Request) {
	contestID := sharedtypes.ContestID(chi.URLParam(r, "contestID"))
	userID := sharedtypes.UserID(chi.URLParam(r, "userID"))

	view, err := h.services.Contest.GetRegistration(r.Context(), contestID, userID)
	if err != nil {
		if errors.Is(err, contestdb.ErrContestNotFound) || errors.Is(err, contestdb.ErrRegistrationNotFound) {
			http.Error(w, "registration not found", http.StatusNotFound)
			return
		}
		h.internalError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, view)
}

func (h *handlers) getContestStandings(w http.ResponseWriter, r *http.Request) {
	contestID := sharedtypes.ContestID(chi.URLParam(r, "contestID"))

	classification, err := h.services.Leaderboard.GetLeaderboard(r.Context(), leaderboardservice.Query{
		Scope:     sharedtypes.ScopeContest,
		ContestID: contestID,
	})
	if err != nil {
		if errors.Is(err, leaderboarddomain.ErrEmptyLeaderboard) {
			http.Error(w, "no standings for contest", http.StatusNotFound)
			return
		}
		h.internalError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, classification)
}

// leaderboardQuery reads scope, community_id, and period_start from the
// query string. period_start defaults to the start of the current month.
func leaderboardQuery(r *http.Request) leaderboardservice.Query {
	query := leaderboardservice.Query{
		Scope:       sharedtypes.LeaderboardScope(r.URL.Query().Get("scope")),
		CommunityID: sharedtypes.CommunityID(r.URL.Query().Get("community_id")),
	}
	if query.Scope == "" {
		query.Scope = sharedtypes.ScopeGlobal
	}

	if raw := r.URL.Query().Get("period_start"); raw != "" {
		if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
			query.PeriodStart = parsed
		}
	}
	if query.PeriodStart.IsZero() {
		now := time.Now().UTC()
		query.PeriodStart = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
	return query
}

func (h *handlers) getLeaderboard(w http.ResponseWriter, r *http.Request) {
	classification, err := h.services.Leaderboard.GetLeaderboard(r.Context(), leaderboardQuery(r))
	if err != nil {
		if errors.Is(err, leaderboarddomain.ErrEmptyLeaderboard) {
			http.Error(w, "leaderboard is empty", http.StatusNotFound)
			return
		}
		h.internalError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, classification)
}

func (h *handlers) getLeaderboardChart(w http.ResponseWriter, r *http.Request) {
	png, err := h.services.Leaderboard.RenderChart(r.Context(), leaderboardQuery(r))
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if _, err := w.Write(png); err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to write chart response", attr.Error(err))
	}
}

func (h *handlers) getLeaderboardExport(w http.ResponseWriter, r *http.Request) {
	data, err := h.services.Leaderboard.ExportXLSX(r.Context(), leaderboardQuery(r))
	if err != nil {
		if errors.Is(err, leaderboarddomain.ErrEmptyLeaderboard) {
			http.Error(w, "leaderboard is empty", http.StatusNotFound)
			return
		}
		h.internalError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="leaderboard.xlsx"`)
	if _, err := w.Write(data); err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to write export response", attr.Error(err))
	}
}

func (h *handlers) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("Failed to encode response", attr.Error(err))
	}
}

func (h *handlers) internalError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.ErrorContext(r.Context(), "Request failed", attr.Error(err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
