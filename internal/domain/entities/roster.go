package entities

import "github.com/google/uuid"

// Child is a household child as supplied by the roster provider
type Child struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Nicknames []string  `json:"nicknames,omitempty"`
	Age       int       `json:"age,omitempty"`
}

// Member is an adult household member with their current workload.
// CurrentLoad and Capacity use the same charge-weight unit; a member with
// Capacity <= 0 is never eligible for assignment.
type Member struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Role        string    `json:"role"`
	CurrentLoad float64   `json:"current_load"`
	Capacity    float64   `json:"capacity"`
}

// Roster is the read-only household snapshot supplied by the caller at
// extraction and generation time. This core never caches or mutates it.
type Roster struct {
	HouseholdID uuid.UUID `json:"household_id"`
	Children    []Child   `json:"children"`
	Members     []Member  `json:"members"`
}
