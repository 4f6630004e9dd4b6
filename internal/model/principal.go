package model

// Principal is the authenticated caller. Every request is scoped to its
// organization.
type Principal struct {
	Subject        string
	OrganizationID int
}
