package client

import (
	"context"
	"sort"

	"github.com/reactivities/reactivities-go/types"
)

// ActivityGroup is one calendar day of activities, ordered by timestamp.
type ActivityGroup struct {
	Date       string
	Activities []types.Activity
}

// ActivityStore owns the activity registry. Nothing else mutates it.
type ActivityStore struct {
	BaseStore

	registry map[string]types.Activity
	selected *types.Activity
	target   string
}

func newActivityStore(root *RootStore) *ActivityStore {
	return &ActivityStore{
		BaseStore: newBaseStore(root),
		registry:  make(map[string]types.Activity),
	}
}

func (s *ActivityStore) IsLoading() bool {
	return s.GetLoadingState("general")
}

func (s *ActivityStore) IsSubmitting() bool {
	return s.GetLoadingState("submit")
}

// Target reports which control triggered the in-flight delete, for
// per-row loading indicators.
func (s *ActivityStore) Target() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.target
}

// Selected returns a copy of the currently selected activity, or nil.
func (s *ActivityStore) Selected() *types.Activity {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return nil
	}
	selected := *s.selected
	return &selected
}

func (s *ActivityStore) ClearActivity() {
	s.batch(func() {
		s.selected = nil
	})
}

// Activity returns the registry entry for id, if present.
func (s *ActivityStore) Activity(id string) (types.Activity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	activity, ok := s.registry[id]
	return activity, ok
}

// setActivity upserts into the registry, normalizing the date to UTC so
// grouping is stable. Must only be called inside a batch.
func (s *ActivityStore) setActivity(activity types.Activity) {
	activity.Date = activity.Date.UTC()
	s.registry[activity.ID] = activity
}

// LoadActivities fetches the full list and upserts every entry. The merge
// is additive: entries missing from the response are not evicted.
func (s *ActivityStore) LoadActivities(ctx context.Context) error {
	token := s.beginRequest("list")

	activities, err := executeAction(&s.BaseStore, "general", func() ([]types.Activity, error) {
		return s.root.agent.Activities.List(ctx)
	}, "loading activities")
	if err != nil {
		s.root.notify("Problem loading activities")
		return err
	}

	if !s.isCurrentRequest("list", token) {
		// A newer load is in flight; drop this response
		return nil
	}

	s.batch(func() {
		for _, activity := range activities {
			s.setActivity(activity)
		}
	})
	return nil
}

// LoadActivity is cache-first: a registry hit selects the entry without a
// network call.
func (s *ActivityStore) LoadActivity(ctx context.Context, id string) (types.Activity, error) {
	if activity, ok := s.Activity(id); ok {
		s.batch(func() {
			selected := activity
			s.selected = &selected
		})
		return activity, nil
	}

	token := s.beginRequest("detail:" + id)

	activity, err := executeAction(&s.BaseStore, "general", func() (types.Activity, error) {
		return s.root.agent.Activities.Details(ctx, id)
	}, "loading activity")
	if err != nil {
		s.root.notify("Problem loading activity")
		return types.Activity{}, err
	}

	if s.isCurrentRequest("detail:"+id, token) {
		s.batch(func() {
			s.setActivity(activity)
			selected := s.registry[activity.ID]
			s.selected = &selected
		})
	}
	return activity, nil
}

// CreateActivity sends the activity, then upserts the exact payload sent.
// The registry is only touched after the request resolves.
func (s *ActivityStore) CreateActivity(ctx context.Context, activity types.Activity) error {
	_, err := executeAction(&s.BaseStore, "submit", func() (struct{}, error) {
		return struct{}{}, s.root.agent.Activities.Create(ctx, activity)
	}, "creating activity")
	if err != nil {
		s.root.notify("Problem creating activity")
		return err
	}

	s.batch(func() {
		s.setActivity(activity)
	})
	s.root.navigate("/activities/" + activity.ID)
	return nil
}

func (s *ActivityStore) EditActivity(ctx context.Context, activity types.Activity) error {
	_, err := executeAction(&s.BaseStore, "submit", func() (struct{}, error) {
		return struct{}{}, s.root.agent.Activities.Update(ctx, activity)
	}, "updating activity")
	if err != nil {
		s.root.notify("Problem updating activity")
		return err
	}

	s.batch(func() {
		s.setActivity(activity)
		selected := s.registry[activity.ID]
		s.selected = &selected
	})
	s.root.navigate("/activities/" + activity.ID)
	return nil
}

// DeleteActivity removes the activity server-side and then from the
// registry. target records which control triggered the delete.
func (s *ActivityStore) DeleteActivity(ctx context.Context, target, id string) error {
	s.batch(func() {
		s.target = target
	})

	_, err := executeAction(&s.BaseStore, "submit", func() (struct{}, error) {
		return struct{}{}, s.root.agent.Activities.Delete(ctx, id)
	}, "deleting activity")
	if err != nil {
		s.root.notify("Problem deleting activity")
		s.batch(func() {
			s.target = ""
		})
		return err
	}

	s.batch(func() {
		delete(s.registry, id)
		if s.selected != nil && s.selected.ID == id {
			s.selected = nil
		}
		s.target = ""
	})
	return nil
}

// Attend joins the activity via the toggle endpoint and marks the local
// entry as going once the call succeeds.
func (s *ActivityStore) Attend(ctx context.Context, id string) error {
	return s.toggleAttendance(ctx, id, true, "attending activity", "Problem joining activity")
}

// CancelAttendance leaves the activity via the same toggle endpoint.
func (s *ActivityStore) CancelAttendance(ctx context.Context, id string) error {
	return s.toggleAttendance(ctx, id, false, "cancelling attendance", "Problem cancelling attendance")
}

func (s *ActivityStore) toggleAttendance(ctx context.Context, id string, going bool, actionContext, toastMessage string) error {
	activity, ok := s.Activity(id)
	if !ok {
		return nil
	}

	_, err := executeAction(&s.BaseStore, "submit", func() (struct{}, error) {
		return struct{}{}, s.root.agent.Activities.Attend(ctx, id)
	}, actionContext)
	if err != nil {
		s.root.notify(toastMessage)
		return err
	}

	// The endpoint is a pure toggle; the new state is inferred locally.
	s.batch(func() {
		activity.IsGoing = going
		s.setActivity(activity)
		if s.selected != nil && s.selected.ID == id {
			selected := s.registry[id]
			s.selected = &selected
		}
	})
	return nil
}

// ActivitiesByDate groups the registry by calendar day, days ascending,
// each day's activities ascending by timestamp.
func (s *ActivityStore) ActivitiesByDate() []ActivityGroup {
	s.mu.Lock()
	activities := make([]types.Activity, 0, len(s.registry))
	for _, activity := range s.registry {
		activities = append(activities, activity)
	}
	s.mu.Unlock()

	sort.Slice(activities, func(i, j int) bool {
		if activities[i].Date.Equal(activities[j].Date) {
			return activities[i].ID < activities[j].ID
		}
		return activities[i].Date.Before(activities[j].Date)
	})

	var groups []ActivityGroup
	for _, activity := range activities {
		day := activity.Date.UTC().Format("2006-01-02")
		if len(groups) == 0 || groups[len(groups)-1].Date != day {
			groups = append(groups, ActivityGroup{Date: day})
		}
		last := len(groups) - 1
		groups[last].Activities = append(groups[last].Activities, activity)
	}
	return groups
}
