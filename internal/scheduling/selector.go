package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/medusa-scheduler/internal/model"
)

// ActiveSchedules returns the schedules for the target that are enabled,
// whose window contains at and whose rules all match.
func (e *Engine) ActiveSchedules(ctx context.Context, targetType model.TargetType, targetID, organizationID int, at time.Time) ([]model.Schedule, error) {
	if !targetType.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTarget, targetType)
	}
	return e.activeSchedules(ctx, e.store, targetType, targetID, organizationID, e.instant(at))
}

func (e *Engine) activeSchedules(ctx context.Context, src Store, targetType model.TargetType, targetID, organizationID int, at time.Time) ([]model.Schedule, error) {
	schedules, err := src.ListSchedules(ctx, organizationID, targetType, targetID)
	if err != nil {
		return nil, fmt.Errorf("listing schedules for %s %d: %w", targetType, targetID, err)
	}

	local := e.wallClock(at)
	active := make([]model.Schedule, 0, len(schedules))
	for _, s := range schedules {
		if !s.Active || s.TargetType != targetType || s.TargetID != targetID {
			continue
		}
		if !s.Covers(at) {
			continue
		}
		if s.Repeat != nil && *s.Repeat != "" {
			// recurrence is not expanded; the literal window above is authoritative
			log.Debug().Int("schedule_id", s.ID).Str("repeat", *s.Repeat).Msg("recurrence tag not expanded")
		}

		rules, err := src.ListRules(ctx, s.ID)
		if err != nil {
			return nil, fmt.Errorf("listing rules for schedule %d: %w", s.ID, err)
		}
		if !RuleSatisfied(rules, local) {
			continue
		}
		active = append(active, s)
	}
	return active, nil
}
