package model

import "encoding/json"

type RuleKind string

const (
	RuleDayOfWeek RuleKind = "day_of_week"
	RuleTimeRange RuleKind = "time_range"
	RuleDateRange RuleKind = "date_range"
	RuleDaypart   RuleKind = "daypart"
	RuleCondition RuleKind = "condition"
)

// SchedulingRule gates a schedule on a calendar or clock predicate. Config is
// the stored payload; its shape depends on Kind.
type SchedulingRule struct {
	ID         int             `db:"id"          json:"id"`
	ScheduleID int             `db:"schedule_id" json:"schedule_id"`
	Kind       RuleKind        `db:"rule_type"   json:"rule_type"`
	Config     json.RawMessage `db:"config"      json:"config"`
	Priority   int             `db:"priority"    json:"priority"`
	Enabled    bool            `db:"enabled"     json:"enabled"`
}
