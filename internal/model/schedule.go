package model

import "time"

type TargetType string

const (
	TargetDisplay TargetType = "display"
	TargetGroup   TargetType = "group"
)

// Valid reports whether t names a schedulable target kind.
func (t TargetType) Valid() bool {
	return t == TargetDisplay || t == TargetGroup
}

// Schedule is a window-of-validity record pointing one content item or one
// playlist at a display or a display group.
type Schedule struct {
	ID             int        `db:"id"              json:"id"`
	OrganizationID int        `db:"organization_id" json:"organization_id"`
	ContentID      *int       `db:"content_id"      json:"content_id,omitempty"`
	PlaylistID     *int       `db:"playlist_id"     json:"playlist_id,omitempty"`
	TargetType     TargetType `db:"target_type"     json:"target_type"`
	TargetID       int        `db:"target_id"       json:"target_id"`
	StartTime      time.Time  `db:"start_time"      json:"start_time"`
	EndTime        time.Time  `db:"end_time"        json:"end_time"`
	Repeat         *string    `db:"recurrence"      json:"repeat,omitempty"`
	Priority       int        `db:"priority"        json:"priority"`
	Active         bool       `db:"active"          json:"active"`
	CreatedAt      time.Time  `db:"created_at"      json:"created_at"`
}

// Covers reports whether at falls inside [StartTime, EndTime], both ends inclusive.
func (s Schedule) Covers(at time.Time) bool {
	return !at.Before(s.StartTime) && !at.After(s.EndTime)
}

// Overlaps reports whether the windows of s and o share at least one instant.
func (s Schedule) Overlaps(o Schedule) bool {
	return !s.StartTime.After(o.EndTime) && !o.StartTime.After(s.EndTime)
}
