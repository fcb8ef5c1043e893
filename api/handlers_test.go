package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	streakdomain "github.com/Ember-Habit-Club/habit-engine/app/modules/streak/domain"
	"github.com/Ember-Habit-Club/habit-engine/internal/events/streakevents"
	"github.com/Ember-Habit-Club/habit-engine/internal/results"
	sharedtypes "github.com/Ember-Habit-Club/habit-engine/internal/types/shared"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStreakService is a function-field fake of the streak service.
type fakeStreakService struct {
	GetStreakFunc        func(ctx context.Context, userID sharedtypes.UserID) (streakdomain.Streak, error)
	GetNextMilestoneFunc func(ctx context.Context, userID sharedtypes.UserID) (streakdomain.NextMilestoneInfo, error)
}

func (f *fakeStreakService) RecordQualifyingAction(ctx context.Context, payload streakevents.QualifyingActionRecordedPayloadV1) (results.OperationResult, error) {
	return results.OperationResult{}, nil
}

func (f *fakeStreakService) GetStreak(ctx context.Context, userID sharedtypes.UserID) (streakdomain.Streak, error) {
	if f.GetStreakFunc != nil {
		return f.GetStreakFunc(ctx, userID)
	}
	return streakdomain.Streak{}, nil
}

func (f *fakeStreakService) GetNextMilestone(ctx context.Context, userID sharedtypes.UserID) (streakdomain.NextMilestoneInfo, error) {
	if f.GetNextMilestoneFunc != nil {
		return f.GetNextMilestoneFunc(ctx, userID)
	}
	return streakdomain.NextMilestoneInfo{}, nil
}

func newStreakTestRouter(svc *fakeStreakService) http.Handler {
	h := &handlers{
		services: Services{Streak: svc},
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	r := chi.NewRouter()
	r.Get("/users/{userID}/streak", h.getStreak)
	return r
}

func TestGetStreak(t *testing.T) {
	t.Run("existing streak is returned", func(t *testing.T) {
		router := newStreakTestRouter(&fakeStreakService{
			GetStreakFunc: func(ctx context.Context, userID sharedtypes.UserID) (streakdomain.Streak, error) {
				assert.Equal(t, sharedtypes.UserID("user-1"), userID)
				return streakdomain.Streak{CurrentLength: 7, LongestLength: 12}, nil
			},
		})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/user-1/streak", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var got streakdomain.Streak
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, 7, got.CurrentLength)
		assert.Equal(t, 12, got.LongestLength)
	})

	t.Run("user without actions reads as a zero streak", func(t *testing.T) {
		router := newStreakTestRouter(&fakeStreakService{})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/new-user/streak", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var got streakdomain.Streak
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, 0, got.CurrentLength)
		assert.Equal(t, 0, got.LongestLength)
	})
}
