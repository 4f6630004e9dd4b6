package packets

import "time"

// ContentQuery is the query of /displays/:id/content and /groups/:id/content.
// A missing at means now.
type ContentQuery struct {
	At time.Time `form:"at" time_format:"2006-01-02T15:04:05Z07:00"`
}

type ConflictQuery struct {
	TargetType string    `form:"target_type" binding:"required,oneof=display group"`
	TargetID   int       `form:"target_id"   binding:"required,min=1"`
	At         time.Time `form:"at"          time_format:"2006-01-02T15:04:05Z07:00"`
}

type TimelineQuery struct {
	TargetType string    `form:"target_type" binding:"required,oneof=display group"`
	TargetID   int       `form:"target_id"   binding:"required,min=1"`
	From       time.Time `form:"from"        time_format:"2006-01-02T15:04:05Z07:00"`
	To         time.Time `form:"to"          time_format:"2006-01-02T15:04:05Z07:00"`
	// minutes, at most one year
	Interval int `form:"interval" binding:"omitempty,min=1,max=525600"`
}
