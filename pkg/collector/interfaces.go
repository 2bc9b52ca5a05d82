package collector

import "tweetgrid/pkg/models"

// Fetcher runs one search query. Implementations never return a Go error;
// failures come back as an error-carrying response so the run keeps going.
type Fetcher interface {
	Search(query string) (*models.SearchResponse, string)
}

// Writer accumulates rows and appends them to the output dataset in batches.
type Writer interface {
	Add(row models.Row)
	Len() int
	Flush() (int, error)
	Path() string
}
