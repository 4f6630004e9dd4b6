package model

import "time"

// Display represents a screen that plays scheduled content.
type Display struct {
	ID             int       `db:"id"              json:"id"`
	OrganizationID int       `db:"organization_id" json:"organization_id"`
	GroupID        *int      `db:"group_id"        json:"group_id,omitempty"`
	Name           string    `db:"name"            json:"name"`
	CreatedAt      time.Time `db:"created_at"      json:"created_at"`
}
