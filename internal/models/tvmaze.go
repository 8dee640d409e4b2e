package models

// TVMazeSearchResult is one entry of the /search/shows response
type TVMazeSearchResult struct {
	Score float64     `json:"score"`
	Show  *TVMazeShow `json:"show"`
}

// TVMazeShow is the show object embedded in a search result.
// Optional fields are pointers so that absent and null values can be told apart from zero values.
type TVMazeShow struct {
	ID      *int         `json:"id"`
	Name    *string      `json:"name"`
	Summary *string      `json:"summary"`
	Image   *TVMazeImage `json:"image"`
}

// TVMazeImage holds the image URLs of a show
type TVMazeImage struct {
	Medium   string `json:"medium"`
	Original string `json:"original"`
}

// TVMazeEpisode is one entry of the /shows/{id}/episodes response
type TVMazeEpisode struct {
	ID     *int   `json:"id"`
	Name   string `json:"name"`
	Season int    `json:"season"`
	Number int    `json:"number"`
}
