package models

// Episode represents one episode of a show, normalized for display
type Episode struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Season int    `json:"season"`
	Number int    `json:"number"` // Episode number within the season
}
