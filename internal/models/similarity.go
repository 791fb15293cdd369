package models

import "time"

type Neighbor struct {
	ID     string  `json:"id" bson:"id"`
	Score  float64 `json:"score" bson:"score"`
	Reason string  `json:"reason" bson:"reason"`
}

// SimilarityDoc is one neighbor query result, as returned by the API and
// stored in the cache.
type SimilarityDoc struct {
	Key         string     `json:"-" bson:"_id"`
	Kind        string     `json:"kind" bson:"kind"`
	ID          string     `json:"id" bson:"id"`
	Metric      string     `json:"metric" bson:"metric"`
	N           int        `json:"n" bson:"n"`
	OverlapOnly bool       `json:"overlapOnly" bson:"overlapOnly"`
	Neighbors   []Neighbor `json:"neighbors" bson:"neighbors"`
	Cached      bool       `json:"cached" bson:"-"`
	GeneratedAt time.Time  `json:"generatedAt" bson:"generatedAt"`
}
