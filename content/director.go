package content

import "time"

// Director is a municipal office holder managed from the dashboard.
type Director struct {
	ID        int        `json:"id"`
	Name      string     `json:"name"`
	Position  string     `json:"position"`
	Bio       string     `json:"bio,omitempty"`
	Photo     string     `json:"photo,omitempty"`
	Email     string     `json:"email,omitempty"`
	Phone     string     `json:"phone,omitempty"`
	SortOrder int        `json:"sortOrder"`
	IsActive  bool       `json:"isActive"`
	TermStart *time.Time `json:"termStart,omitempty"`
	TermEnd   *time.Time `json:"termEnd,omitempty"`
}
