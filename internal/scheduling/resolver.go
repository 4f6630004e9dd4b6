package scheduling

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Nixie-Tech-LLC/medusa-scheduler/internal/model"
)

// ContentForDisplay resolves the content a display should play at at. The
// display's own schedules and its group's schedules compete on equal
// footing. A nil result with a nil error means nothing is scheduled, or the
// display does not exist.
func (e *Engine) ContentForDisplay(ctx context.Context, displayID int, at time.Time) (*model.ScheduledContent, error) {
	return e.contentForDisplay(ctx, e.store, displayID, e.instant(at))
}

// ContentForGroup resolves content for a display group on its own, counting
// only group schedules and boosts that are global or scoped to the group.
func (e *Engine) ContentForGroup(ctx context.Context, groupID, organizationID int, at time.Time) (*model.ScheduledContent, error) {
	return e.contentForGroup(ctx, e.store, groupID, organizationID, e.instant(at))
}

func (e *Engine) contentForDisplay(ctx context.Context, src Store, displayID int, at time.Time) (*model.ScheduledContent, error) {
	display, err := src.GetDisplay(ctx, displayID)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading display %d: %w", displayID, err)
	}
	if display == nil {
		return nil, nil
	}

	candidates, err := e.activeSchedules(ctx, src, model.TargetDisplay, display.ID, display.OrganizationID, at)
	if err != nil {
		return nil, err
	}
	if display.GroupID != nil {
		group, err := e.activeSchedules(ctx, src, model.TargetGroup, *display.GroupID, display.OrganizationID, at)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, group...)
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	priorities, err := src.ListContentPriorities(ctx, display.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("listing content priorities: %w", err)
	}
	boosts := applicableBoosts(priorities, at, func(p model.ContentPriority) bool {
		if p.Global() {
			return true
		}
		if p.DisplayID != nil && *p.DisplayID == display.ID {
			return true
		}
		return p.GroupID != nil && display.GroupID != nil && *p.GroupID == *display.GroupID
	})

	return winner(candidates, boosts), nil
}

func (e *Engine) contentForGroup(ctx context.Context, src Store, groupID, organizationID int, at time.Time) (*model.ScheduledContent, error) {
	candidates, err := e.activeSchedules(ctx, src, model.TargetGroup, groupID, organizationID, at)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	priorities, err := src.ListContentPriorities(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("listing content priorities: %w", err)
	}
	boosts := applicableBoosts(priorities, at, func(p model.ContentPriority) bool {
		return p.DisplayID == nil && (p.GroupID == nil || *p.GroupID == groupID)
	})

	return winner(candidates, boosts), nil
}

// applicableBoosts maps content id to the largest boost in scope and valid at at.
func applicableBoosts(priorities []model.ContentPriority, at time.Time, inScope func(model.ContentPriority) bool) map[int]int {
	boosts := make(map[int]int)
	for _, p := range priorities {
		if !inScope(p) || !p.ValidAt(at) {
			continue
		}
		if cur, ok := boosts[p.ContentID]; !ok || p.Priority > cur {
			boosts[p.ContentID] = p.Priority
		}
	}
	return boosts
}

type ranked struct {
	schedule model.Schedule
	total    int
}

// rank orders schedules by boosted priority, newest first on ties. Exact
// ties on both keys keep their input order.
func rank(schedules []model.Schedule, boosts map[int]int) []ranked {
	out := make([]ranked, 0, len(schedules))
	for _, s := range schedules {
		total := s.Priority
		// playlists are never boosted
		if s.ContentID != nil {
			total += boosts[*s.ContentID]
		}
		out = append(out, ranked{schedule: s, total: total})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return outranks(out[i], out[j])
	})
	return out
}

func outranks(a, b ranked) bool {
	if a.total != b.total {
		return a.total > b.total
	}
	return a.schedule.CreatedAt.After(b.schedule.CreatedAt)
}

func winner(schedules []model.Schedule, boosts map[int]int) *model.ScheduledContent {
	ordered := rank(schedules, boosts)
	if len(ordered) == 0 {
		return nil
	}
	top := ordered[0]
	return &model.ScheduledContent{
		ScheduleID: top.schedule.ID,
		ContentID:  top.schedule.ContentID,
		PlaylistID: top.schedule.PlaylistID,
		Priority:   top.total,
		Source:     model.SourceSchedule,
	}
}
