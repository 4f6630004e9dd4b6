package packets

// RESPONSES FOR /api/displays, /api/groups, /api/conflicts, /api/timeline

import (
	"time"

	"github.com/Nixie-Tech-LLC/medusa-scheduler/internal/model"
)

// ScheduledContentResponse mirrors model.ScheduledContent.
type ScheduledContentResponse struct {
	ScheduleID int    `json:"schedule_id"`
	ContentID  *int   `json:"content_id"`
	PlaylistID *int   `json:"playlist_id"`
	Priority   int    `json:"priority"`
	Source     string `json:"source"`
}

type ContentResponse struct {
	TargetType string                    `json:"target_type"`
	TargetID   int                       `json:"target_id"`
	At         string                    `json:"at"`
	Content    *ScheduledContentResponse `json:"content"`
}

type RefreshResponse struct {
	DisplayID int                       `json:"display_id"`
	At        string                    `json:"at"`
	Content   *ScheduledContentResponse `json:"content"`
	Published bool                      `json:"published"`
}

// ScheduleResponse mirrors model.Schedule but flattens times to RFC3339.
type ScheduleResponse struct {
	ID         int     `json:"id"`
	ContentID  *int    `json:"content_id"`
	PlaylistID *int    `json:"playlist_id"`
	TargetType string  `json:"target_type"`
	TargetID   int     `json:"target_id"`
	StartTime  string  `json:"start_time"`
	EndTime    string  `json:"end_time"`
	Repeat     *string `json:"repeat"`
	Priority   int     `json:"priority"`
	Active     bool    `json:"active"`
	CreatedAt  string  `json:"created_at"`
}

type ConflictResponse struct {
	ScheduleA ScheduleResponse `json:"schedule_a"`
	ScheduleB ScheduleResponse `json:"schedule_b"`
	Reason    string           `json:"reason"`
}

type TimelineEntryResponse struct {
	Time    string                    `json:"time"`
	Content *ScheduledContentResponse `json:"content"`
}

type TimelineResponse struct {
	TargetType string                  `json:"target_type"`
	TargetID   int                     `json:"target_id"`
	From       string                  `json:"from"`
	To         string                  `json:"to"`
	Interval   int                     `json:"interval"`
	Entries    []TimelineEntryResponse `json:"entries"`
}

type InvalidateResponse struct {
	Enabled bool `json:"enabled"`
	Removed int  `json:"removed"`
}

func FormatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

func NewScheduledContentResponse(c *model.ScheduledContent) *ScheduledContentResponse {
	if c == nil {
		return nil
	}
	return &ScheduledContentResponse{
		ScheduleID: c.ScheduleID,
		ContentID:  c.ContentID,
		PlaylistID: c.PlaylistID,
		Priority:   c.Priority,
		Source:     string(c.Source),
	}
}

func NewScheduleResponse(s model.Schedule) ScheduleResponse {
	return ScheduleResponse{
		ID:         s.ID,
		ContentID:  s.ContentID,
		PlaylistID: s.PlaylistID,
		TargetType: string(s.TargetType),
		TargetID:   s.TargetID,
		StartTime:  FormatTime(s.StartTime),
		EndTime:    FormatTime(s.EndTime),
		Repeat:     s.Repeat,
		Priority:   s.Priority,
		Active:     s.Active,
		CreatedAt:  FormatTime(s.CreatedAt),
	}
}
