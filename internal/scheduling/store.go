package scheduling

import (
	"context"

	"github.com/Nixie-Tech-LLC/medusa-scheduler/internal/model"
)

// Store is the read-only view of persisted scheduling data the engine
// resolves against. Implementations may pre-filter; the engine re-applies
// every filter it relies on.
type Store interface {
	ListSchedules(ctx context.Context, organizationID int, targetType model.TargetType, targetID int) ([]model.Schedule, error)
	ListRules(ctx context.Context, scheduleID int) ([]model.SchedulingRule, error)
	ListContentPriorities(ctx context.Context, organizationID int) ([]model.ContentPriority, error)
	// GetDisplay returns ErrNotFound when the display does not exist.
	GetDisplay(ctx context.Context, displayID int) (*model.Display, error)
}
