package models

// Show represents one TV show search result, normalized for display
type Show struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Summary  string `json:"summary"` // May contain HTML markup from the catalog
	ImageURL string `json:"imageUrl"`
}
