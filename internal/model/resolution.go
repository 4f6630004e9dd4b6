package model

import "time"

type ContentSource string

const (
	SourceSchedule ContentSource = "schedule"
	SourcePriority ContentSource = "priority"
	SourceDefault  ContentSource = "default"
)

// ScheduledContent is the winner of a resolution pass.
type ScheduledContent struct {
	ScheduleID int           `json:"schedule_id"`
	ContentID  *int          `json:"content_id,omitempty"`
	PlaylistID *int          `json:"playlist_id,omitempty"`
	Priority   int           `json:"priority"`
	Source     ContentSource `json:"source"`
}

const ReasonOverlap = "Overlapping time ranges"

type Conflict struct {
	ScheduleA Schedule `json:"schedule_a"`
	ScheduleB Schedule `json:"schedule_b"`
	Reason    string   `json:"reason"`
}

type TimelineEntry struct {
	Time    time.Time         `json:"time"`
	Content *ScheduledContent `json:"content"`
}
