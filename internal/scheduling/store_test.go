package scheduling

import (
	"context"
	"errors"

	"github.com/Nixie-Tech-LLC/medusa-scheduler/internal/model"
)

// memStore is an in-memory Store. ListSchedules deliberately ignores the
// target filter so the engine's own filtering is exercised.
type memStore struct {
	schedules  []model.Schedule
	rules      map[int][]model.SchedulingRule
	priorities []model.ContentPriority
	displays   map[int]model.Display
	err        error
	calls      map[string]int
}

func newMemStore() *memStore {
	return &memStore{
		rules:    make(map[int][]model.SchedulingRule),
		displays: make(map[int]model.Display),
		calls:    make(map[string]int),
	}
}

var errBoom = errors.New("connection refused")

func (m *memStore) ListSchedules(_ context.Context, organizationID int, _ model.TargetType, _ int) ([]model.Schedule, error) {
	m.calls["ListSchedules"]++
	if m.err != nil {
		return nil, m.err
	}
	var out []model.Schedule
	for _, s := range m.schedules {
		if s.OrganizationID == organizationID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memStore) ListRules(_ context.Context, scheduleID int) ([]model.SchedulingRule, error) {
	m.calls["ListRules"]++
	if m.err != nil {
		return nil, m.err
	}
	return m.rules[scheduleID], nil
}

func (m *memStore) ListContentPriorities(_ context.Context, organizationID int) ([]model.ContentPriority, error) {
	m.calls["ListContentPriorities"]++
	if m.err != nil {
		return nil, m.err
	}
	var out []model.ContentPriority
	for _, p := range m.priorities {
		if p.OrganizationID == organizationID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memStore) GetDisplay(_ context.Context, displayID int) (*model.Display, error) {
	m.calls["GetDisplay"]++
	if m.err != nil {
		return nil, m.err
	}
	d, ok := m.displays[displayID]
	if !ok {
		return nil, ErrNotFound
	}
	return &d, nil
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }
