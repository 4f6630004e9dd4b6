package model

import "time"

// ContentPriority boosts every schedule that plays ContentID. A nil DisplayID
// and GroupID make the boost global to the organization.
type ContentPriority struct {
	ID             int        `db:"id"              json:"id"`
	OrganizationID int        `db:"organization_id" json:"organization_id"`
	ContentID      int        `db:"content_id"      json:"content_id"`
	Priority       int        `db:"priority"        json:"priority"`
	DisplayID      *int       `db:"display_id"      json:"display_id,omitempty"`
	GroupID        *int       `db:"group_id"        json:"group_id,omitempty"`
	ValidFrom      *time.Time `db:"valid_from"      json:"valid_from,omitempty"`
	ValidUntil     *time.Time `db:"valid_until"     json:"valid_until,omitempty"`
}

// ValidAt reports whether at lies within the boost's validity window. Missing
// bounds are open.
func (p ContentPriority) ValidAt(at time.Time) bool {
	if p.ValidFrom != nil && at.Before(*p.ValidFrom) {
		return false
	}
	if p.ValidUntil != nil && at.After(*p.ValidUntil) {
		return false
	}
	return true
}

// Global reports whether the boost is not scoped to a display or a group.
func (p ContentPriority) Global() bool {
	return p.DisplayID == nil && p.GroupID == nil
}
