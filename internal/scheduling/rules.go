package scheduling

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/medusa-scheduler/internal/model"
)

// RuleConfig is the decoded form of a rule payload. There is one
// implementation per rule kind.
type RuleConfig interface {
	Matches(now time.Time) bool
}

// DayOfWeek matches when now falls on one of Days.
type DayOfWeek struct {
	Days []time.Weekday
}

func (c DayOfWeek) Matches(now time.Time) bool {
	wd := now.Weekday()
	for _, d := range c.Days {
		if d == wd {
			return true
		}
	}
	return false
}

// TimeRange matches a wall-clock band given in minutes since midnight. Both
// bounds are inclusive and Start > End wraps past midnight.
type TimeRange struct {
	Start int
	End   int
}

func (c TimeRange) Matches(now time.Time) bool {
	return minuteInBand(minuteOfDay(now), c.Start, c.End, true)
}

// DateRange matches instants within [Start, End].
type DateRange struct {
	Start time.Time
	End   time.Time
}

func (c DateRange) Matches(now time.Time) bool {
	return !now.Before(c.Start) && !now.After(c.End)
}

// Daypart is a named band of the day. Named bands exclude their upper bound;
// custom bands behave like TimeRange.
type Daypart struct {
	Name         string
	Start        int
	End          int
	InclusiveEnd bool
}

func (c Daypart) Matches(now time.Time) bool {
	return minuteInBand(minuteOfDay(now), c.Start, c.End, c.InclusiveEnd)
}

// Condition is reserved for external signals and never matches.
type Condition struct{}

func (Condition) Matches(time.Time) bool { return false }

const DaypartCustom = "custom"

var dayparts = map[string]Daypart{
	"morning":   {Name: "morning", Start: 6 * 60, End: 12 * 60},
	"afternoon": {Name: "afternoon", Start: 12 * 60, End: 18 * 60},
	"evening":   {Name: "evening", Start: 18 * 60, End: 22 * 60},
	"night":     {Name: "night", Start: 22 * 60, End: 6 * 60},
}

var errUnknownKind = errors.New("unknown rule kind")

// payload shapes as stored
type dayOfWeekPayload struct {
	Days []int `json:"days"`
}

type timeRangePayload struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type dateRangePayload struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type daypartPayload struct {
	Daypart         string `json:"daypart"`
	CustomStartTime string `json:"customStartTime"`
	CustomEndTime   string `json:"customEndTime"`
}

// ParseRuleConfig decodes a stored payload into the variant for kind.
func ParseRuleConfig(kind model.RuleKind, raw json.RawMessage) (RuleConfig, error) {
	switch kind {
	case model.RuleDayOfWeek:
		var p dayOfWeekPayload
		if err := decodePayload(raw, &p); err != nil {
			return nil, err
		}
		if p.Days == nil {
			return nil, errors.New("days is required")
		}
		cfg := DayOfWeek{Days: make([]time.Weekday, 0, len(p.Days))}
		for _, d := range p.Days {
			if d < 0 || d > 6 {
				return nil, fmt.Errorf("weekday %d out of range 0-6", d)
			}
			cfg.Days = append(cfg.Days, time.Weekday(d))
		}
		return cfg, nil

	case model.RuleTimeRange:
		var p timeRangePayload
		if err := decodePayload(raw, &p); err != nil {
			return nil, err
		}
		start, end, err := parseBand(p.StartTime, p.EndTime)
		if err != nil {
			return nil, err
		}
		return TimeRange{Start: start, End: end}, nil

	case model.RuleDateRange:
		var p dateRangePayload
		if err := decodePayload(raw, &p); err != nil {
			return nil, err
		}
		start, err := parseDate(p.StartDate)
		if err != nil {
			return nil, fmt.Errorf("startDate: %w", err)
		}
		end, err := parseDate(p.EndDate)
		if err != nil {
			return nil, fmt.Errorf("endDate: %w", err)
		}
		return DateRange{Start: start, End: end}, nil

	case model.RuleDaypart:
		var p daypartPayload
		if err := decodePayload(raw, &p); err != nil {
			return nil, err
		}
		if p.Daypart == DaypartCustom {
			if p.CustomStartTime == "" || p.CustomEndTime == "" {
				return nil, errors.New("custom daypart requires customStartTime and customEndTime")
			}
			start, end, err := parseBand(p.CustomStartTime, p.CustomEndTime)
			if err != nil {
				return nil, err
			}
			return Daypart{Name: DaypartCustom, Start: start, End: end, InclusiveEnd: true}, nil
		}
		dp, ok := dayparts[p.Daypart]
		if !ok {
			return nil, fmt.Errorf("unknown daypart %q", p.Daypart)
		}
		return dp, nil

	case model.RuleCondition:
		return Condition{}, nil
	}
	return nil, fmt.Errorf("%w %q", errUnknownKind, kind)
}

// EvaluateRule reports whether rule matches at now. Disabled and malformed
// rules never match; the reason is logged rather than returned.
func EvaluateRule(rule model.SchedulingRule, now time.Time) bool {
	if !rule.Enabled {
		log.Debug().Int("rule_id", rule.ID).Int("schedule_id", rule.ScheduleID).Msg("rule disabled")
		return false
	}
	cfg, err := ParseRuleConfig(rule.Kind, rule.Config)
	if err != nil {
		log.Warn().Err(err).
			Int("rule_id", rule.ID).
			Int("schedule_id", rule.ScheduleID).
			Str("rule_type", string(rule.Kind)).
			Msg("rule config rejected, treating as no match")
		return false
	}
	return cfg.Matches(now)
}

// RuleSatisfied ANDs the enabled rules. No rules, or only disabled ones,
// satisfy vacuously.
func RuleSatisfied(rules []model.SchedulingRule, now time.Time) bool {
	for _, r := range rules {
		if !r.Enabled {
			continue
		}
		if !EvaluateRule(r, now) {
			return false
		}
	}
	return true
}

func decodePayload(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return errors.New("empty config")
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}
	return nil
}

func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

func minuteInBand(m, start, end int, inclusiveEnd bool) bool {
	beforeEnd := m < end
	if inclusiveEnd {
		beforeEnd = m <= end
	}
	if start <= end {
		return m >= start && beforeEnd
	}
	return m >= start || beforeEnd
}

func parseBand(start, end string) (int, int, error) {
	s, err := parseClock(start)
	if err != nil {
		return 0, 0, fmt.Errorf("start: %w", err)
	}
	e, err := parseClock(end)
	if err != nil {
		return 0, 0, fmt.Errorf("end: %w", err)
	}
	return s, e, nil
}

// parseClock converts "HH:MM" or "HH:MM:SS" to minutes since midnight.
// Seconds are validated and dropped.
func parseClock(v string) (int, error) {
	parts := strings.Split(strings.TrimSpace(v), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("invalid clock time %q", v)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", v)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", v)
	}
	if len(parts) == 3 {
		if sec, err := strconv.Atoi(parts[2]); err != nil || sec < 0 || sec > 59 {
			return 0, fmt.Errorf("invalid second in %q", v)
		}
	}
	return h*60 + m, nil
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseDate accepts RFC3339 and date-only forms. Values without an offset are UTC.
func parseDate(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, errors.New("missing date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", v)
}
