package client

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/reactivities/reactivities-go/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activityFixture(id string, date time.Time) types.Activity {
	return types.Activity{
		ID:       id,
		Title:    "Activity " + id,
		Category: "drinks",
		Date:     date,
		City:     "London",
		Venue:    "Pub",
	}
}

func TestLoadActivitiesUpsertsRegistry(t *testing.T) {
	day := time.Date(2026, 9, 12, 18, 0, 0, 0, time.UTC)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /activities", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []types.Activity{
			activityFixture("act-1", day),
			activityFixture("act-2", day.Add(2*time.Hour)),
		})
	})

	env := newTestEnv(t, mux)
	store := env.store.ActivityStore

	require.NoError(t, store.LoadActivities(context.Background()))

	_, ok := store.Activity("act-1")
	assert.True(t, ok)
	_, ok = store.Activity("act-2")
	assert.True(t, ok)
	assert.False(t, store.IsLoading())
}

func TestLoadActivitiesMergeIsAdditive(t *testing.T) {
	day := time.Date(2026, 9, 12, 18, 0, 0, 0, time.UTC)
	var second atomic.Bool

	mux := http.NewServeMux()
	mux.HandleFunc("GET /activities", func(w http.ResponseWriter, r *http.Request) {
		if second.Load() {
			writeJSON(w, http.StatusOK, []types.Activity{activityFixture("act-2", day)})
			return
		}
		writeJSON(w, http.StatusOK, []types.Activity{
			activityFixture("act-1", day),
			activityFixture("act-2", day),
		})
	})

	env := newTestEnv(t, mux)
	store := env.store.ActivityStore

	require.NoError(t, store.LoadActivities(context.Background()))
	second.Store(true)
	require.NoError(t, store.LoadActivities(context.Background()))

	// act-1 was absent from the second response but is not evicted
	_, ok := store.Activity("act-1")
	assert.True(t, ok)
}

func TestLoadActivityIsCacheFirst(t *testing.T) {
	day := time.Date(2026, 9, 12, 18, 0, 0, 0, time.UTC)
	var detailCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("GET /activities/{id}", func(w http.ResponseWriter, r *http.Request) {
		detailCalls.Add(1)
		writeJSON(w, http.StatusOK, activityFixture(r.PathValue("id"), day))
	})

	env := newTestEnv(t, mux)
	store := env.store.ActivityStore

	first, err := store.LoadActivity(context.Background(), "act-1")
	require.NoError(t, err)
	assert.Equal(t, "act-1", first.ID)
	assert.Equal(t, int32(1), detailCalls.Load())

	second, err := store.LoadActivity(context.Background(), "act-1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, int32(1), detailCalls.Load(), "a registry hit must not issue a network call")

	selected := store.Selected()
	require.NotNil(t, selected)
	assert.Equal(t, "act-1", selected.ID)
}

func TestLoadActivityNotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /activities/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, types.NewApiError(http.StatusNotFound, "Activity not found", ""))
	})

	env := newTestEnv(t, mux)

	_, err := env.store.ActivityStore.LoadActivity(context.Background(), "nope")

	var serverErr *ServerErrorResponse
	require.ErrorAs(t, err, &serverErr)
	assert.True(t, serverErr.IsNotFound())
	assert.Equal(t, 1, env.notifier.count())
}

func TestCreateActivityUpsertsPayloadAndNavigates(t *testing.T) {
	day := time.Date(2026, 10, 1, 19, 30, 0, 0, time.UTC)
	var received types.Activity

	mux := http.NewServeMux()
	mux.HandleFunc("POST /activities", func(w http.ResponseWriter, r *http.Request) {
		_ = jsonDecode(r, &received)
		w.WriteHeader(http.StatusOK)
	})

	env := newTestEnv(t, mux)
	store := env.store.ActivityStore

	payload := activityFixture("act-9", day)
	require.NoError(t, store.CreateActivity(context.Background(), payload))

	assert.Equal(t, payload.ID, received.ID)

	stored, ok := store.Activity("act-9")
	require.True(t, ok)
	assert.Equal(t, payload.Title, stored.Title)
	assert.Equal(t, "/activities/act-9", env.navigator.last())
}

func TestCreateActivityFailureLeavesRegistryUntouched(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /activities", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, types.NewValidationError(types.ValidationErrors{
			"title": {"is required"},
		}))
	})

	env := newTestEnv(t, mux)
	store := env.store.ActivityStore

	err := store.CreateActivity(context.Background(), activityFixture("act-9", time.Now()))

	var serverErr *ServerErrorResponse
	require.ErrorAs(t, err, &serverErr)
	assert.True(t, serverErr.HasValidationErrors())

	_, ok := store.Activity("act-9")
	assert.False(t, ok, "the registry must not be mutated before the request resolves")
	assert.Empty(t, env.navigator.last())
	assert.False(t, store.IsSubmitting())
}

func TestDeleteActivityRemovesEntryAndClearsTarget(t *testing.T) {
	day := time.Date(2026, 9, 12, 18, 0, 0, 0, time.UTC)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /activities", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []types.Activity{activityFixture("act-1", day)})
	})
	mux.HandleFunc("DELETE /activities/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	env := newTestEnv(t, mux)
	store := env.store.ActivityStore

	require.NoError(t, store.LoadActivities(context.Background()))
	require.NoError(t, store.DeleteActivity(context.Background(), "row-act-1", "act-1"))

	_, ok := store.Activity("act-1")
	assert.False(t, ok)
	assert.Empty(t, store.Target())
}

func TestAttendToggleIsIdempotentLocally(t *testing.T) {
	day := time.Date(2026, 9, 12, 18, 0, 0, 0, time.UTC)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /activities", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []types.Activity{activityFixture("act-1", day)})
	})
	mux.HandleFunc("POST /activities/{id}/attend", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	env := newTestEnv(t, mux)
	store := env.store.ActivityStore

	require.NoError(t, store.LoadActivities(context.Background()))

	// Two back-to-back attends with no intervening confirmation
	require.NoError(t, store.Attend(context.Background(), "act-1"))
	require.NoError(t, store.Attend(context.Background(), "act-1"))

	activity, ok := store.Activity("act-1")
	require.True(t, ok)
	assert.True(t, activity.IsGoing)

	require.NoError(t, store.CancelAttendance(context.Background(), "act-1"))
	activity, _ = store.Activity("act-1")
	assert.False(t, activity.IsGoing)
}

func TestAttendUnknownActivityIsNoop(t *testing.T) {
	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("POST /activities/{id}/attend", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusOK)
	})

	env := newTestEnv(t, mux)
	require.NoError(t, env.store.ActivityStore.Attend(context.Background(), "unknown"))
	assert.Equal(t, int32(0), calls.Load())
}

func TestActivitiesByDateGroupsAndSorts(t *testing.T) {
	dayOne := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)
	dayTwo := time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /activities", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []types.Activity{
			activityFixture("evening", dayOne.Add(20*time.Hour)),
			activityFixture("next-day", dayTwo.Add(9*time.Hour)),
			activityFixture("morning", dayOne.Add(8*time.Hour)),
		})
	})

	env := newTestEnv(t, mux)
	store := env.store.ActivityStore
	require.NoError(t, store.LoadActivities(context.Background()))

	groups := store.ActivitiesByDate()
	require.Len(t, groups, 2)

	assert.Equal(t, "2026-09-12", groups[0].Date)
	require.Len(t, groups[0].Activities, 2)
	assert.Equal(t, "morning", groups[0].Activities[0].ID)
	assert.Equal(t, "evening", groups[0].Activities[1].ID)

	assert.Equal(t, "2026-09-13", groups[1].Date)
	require.Len(t, groups[1].Activities, 1)
	assert.Equal(t, "next-day", groups[1].Activities[0].ID)
}

func TestStaleListResponseIsDropped(t *testing.T) {
	day := time.Date(2026, 9, 12, 18, 0, 0, 0, time.UTC)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /activities", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []types.Activity{activityFixture("act-1", day)})
	})

	env := newTestEnv(t, mux)
	store := env.store.ActivityStore

	// A newer request was issued while ours was in flight
	stale := store.beginRequest("list")
	store.beginRequest("list")
	assert.False(t, store.isCurrentRequest("list", stale))

	require.NoError(t, store.LoadActivities(context.Background()))
	_, ok := store.Activity("act-1")
	assert.True(t, ok)
}
