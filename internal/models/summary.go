package models

import "time"

// DatasetSummary describes the loaded store and what the loader dropped.
type DatasetSummary struct {
	Source         string    `json:"source"`
	Books          int       `json:"books"`
	Users          int       `json:"users"`
	Ratings        int       `json:"ratings"`
	SkippedBooks   int       `json:"skippedBooks"`
	SkippedRatings int       `json:"skippedRatings"`
	OrphanRatings  int       `json:"orphanRatings"`
	LoadedAt       time.Time `json:"loadedAt"`
}
