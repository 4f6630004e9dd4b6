package scheduling

import (
	"context"
	"time"

	"github.com/Nixie-Tech-LLC/medusa-scheduler/internal/model"
)

// DetectConflicts reports every pair of schedules that are active for the
// target at at and whose windows overlap. Only schedules eligible at that
// instant are compared.
func (e *Engine) DetectConflicts(ctx context.Context, targetType model.TargetType, targetID, organizationID int, at time.Time) ([]model.Conflict, error) {
	active, err := e.ActiveSchedules(ctx, targetType, targetID, organizationID, at)
	if err != nil {
		return nil, err
	}

	conflicts := []model.Conflict{}
	for i := 0; i < len(active); i++ {
		for j := i + 1; j < len(active); j++ {
			if active[i].Overlaps(active[j]) {
				conflicts = append(conflicts, model.Conflict{
					ScheduleA: active[i],
					ScheduleB: active[j],
					Reason:    model.ReasonOverlap,
				})
			}
		}
	}
	return conflicts, nil
}
