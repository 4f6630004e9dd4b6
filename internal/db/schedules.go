package db

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/medusa-scheduler/internal/model"
)

const scheduleColumns = `
	id, organization_id, content_id, playlist_id, target_type, target_id,
	start_time, end_time, recurrence, priority, active, created_at`

// ListSchedules pre-filters on organization, target and the active flag.
// Windows are left to the engine so one read can serve a whole timeline.
func (s *Store) ListSchedules(ctx context.Context, organizationID int, targetType model.TargetType, targetID int) ([]model.Schedule, error) {
	out := []model.Schedule{}
	q := `
	SELECT` + scheduleColumns + `
	  FROM schedules
	 WHERE organization_id = $1
	   AND target_type = $2
	   AND target_id = $3
	   AND active = TRUE
	 ORDER BY id;`
	if err := s.db.SelectContext(ctx, &out, q, organizationID, string(targetType), targetID); err != nil {
		log.Error().Err(err).
			Int("organization_id", organizationID).
			Str("target_type", string(targetType)).
			Int("target_id", targetID).
			Msg("ListSchedules failed")
		return nil, err
	}
	return out, nil
}

type ruleRow struct {
	ID         int    `db:"id"`
	ScheduleID int    `db:"schedule_id"`
	Kind       string `db:"rule_type"`
	Config     string `db:"config"`
	Priority   int    `db:"priority"`
	Enabled    bool   `db:"enabled"`
}

func (s *Store) ListRules(ctx context.Context, scheduleID int) ([]model.SchedulingRule, error) {
	var rows []ruleRow
	const q = `
	SELECT id, schedule_id, rule_type, config::text AS config, priority, enabled
	  FROM scheduling_rules
	 WHERE schedule_id = $1
	 ORDER BY priority DESC, id;`
	if err := s.db.SelectContext(ctx, &rows, q, scheduleID); err != nil {
		log.Error().Err(err).Int("schedule_id", scheduleID).Msg("ListRules failed")
		return nil, err
	}

	out := make([]model.SchedulingRule, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.SchedulingRule{
			ID:         r.ID,
			ScheduleID: r.ScheduleID,
			Kind:       model.RuleKind(r.Kind),
			Config:     []byte(r.Config),
			Priority:   r.Priority,
			Enabled:    r.Enabled,
		})
	}
	return out, nil
}
