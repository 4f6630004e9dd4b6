package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/Nixie-Tech-LLC/medusa-scheduler/internal/model"
)

// TimelinePreview samples the resolver from from to to, both inclusive,
// every intervalMinutes (60 when not positive). Each sample is resolved
// independently; store reads are shared across samples within the call.
func (e *Engine) TimelinePreview(ctx context.Context, targetType model.TargetType, targetID, organizationID int, from, to time.Time, intervalMinutes int) ([]model.TimelineEntry, error) {
	if !targetType.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTarget, targetType)
	}
	if intervalMinutes <= 0 {
		intervalMinutes = DefaultIntervalMinutes
	}
	entries := []model.TimelineEntry{}
	if to.Before(from) {
		return entries, nil
	}

	// counted in whole minutes so a huge interval cannot overflow a Duration
	span := int64(to.Sub(from) / time.Minute)
	steps := span/int64(intervalMinutes) + 1
	if e.maxSteps > 0 && steps > int64(e.maxSteps) {
		return nil, fmt.Errorf("%w: %d samples exceeds limit of %d", ErrTimelineTooLarge, steps, e.maxSteps)
	}

	src := newSnapshot(e.store)
	for i := int64(0); i < steps; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cursor := from.Add(time.Duration(i*int64(intervalMinutes)) * time.Minute)

		var (
			content *model.ScheduledContent
			err     error
		)
		if targetType == model.TargetDisplay {
			content, err = e.contentForDisplay(ctx, src, targetID, cursor)
		} else {
			content, err = e.contentForGroup(ctx, src, targetID, organizationID, cursor)
		}
		if err != nil {
			return nil, err
		}
		entries = append(entries, model.TimelineEntry{Time: cursor, Content: content})
	}
	return entries, nil
}
