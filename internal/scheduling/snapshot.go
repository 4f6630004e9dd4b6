package scheduling

import (
	"context"
	"errors"

	"github.com/Nixie-Tech-LLC/medusa-scheduler/internal/model"
)

type scheduleKey struct {
	organizationID int
	targetType     model.TargetType
	targetID       int
}

type displayLookup struct {
	display *model.Display
	err     error
}

// snapshot memoizes store reads for the lifetime of a single engine call.
// It is not safe for concurrent use. Failed reads are not remembered, except
// for ErrNotFound on displays, which is a result rather than a failure.
type snapshot struct {
	store      Store
	schedules  map[scheduleKey][]model.Schedule
	rules      map[int][]model.SchedulingRule
	priorities map[int][]model.ContentPriority
	displays   map[int]displayLookup
}

var _ Store = (*snapshot)(nil)

func newSnapshot(store Store) *snapshot {
	return &snapshot{
		store:      store,
		schedules:  make(map[scheduleKey][]model.Schedule),
		rules:      make(map[int][]model.SchedulingRule),
		priorities: make(map[int][]model.ContentPriority),
		displays:   make(map[int]displayLookup),
	}
}

func (s *snapshot) ListSchedules(ctx context.Context, organizationID int, targetType model.TargetType, targetID int) ([]model.Schedule, error) {
	key := scheduleKey{organizationID, targetType, targetID}
	if cached, ok := s.schedules[key]; ok {
		return cached, nil
	}
	out, err := s.store.ListSchedules(ctx, organizationID, targetType, targetID)
	if err != nil {
		return nil, err
	}
	s.schedules[key] = out
	return out, nil
}

func (s *snapshot) ListRules(ctx context.Context, scheduleID int) ([]model.SchedulingRule, error) {
	if cached, ok := s.rules[scheduleID]; ok {
		return cached, nil
	}
	out, err := s.store.ListRules(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	s.rules[scheduleID] = out
	return out, nil
}

func (s *snapshot) ListContentPriorities(ctx context.Context, organizationID int) ([]model.ContentPriority, error) {
	if cached, ok := s.priorities[organizationID]; ok {
		return cached, nil
	}
	out, err := s.store.ListContentPriorities(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	s.priorities[organizationID] = out
	return out, nil
}

func (s *snapshot) GetDisplay(ctx context.Context, displayID int) (*model.Display, error) {
	if cached, ok := s.displays[displayID]; ok {
		return cached.display, cached.err
	}
	d, err := s.store.GetDisplay(ctx, displayID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	s.displays[displayID] = displayLookup{display: d, err: err}
	return d, err
}
