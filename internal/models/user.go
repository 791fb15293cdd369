package models

// User with its rating map (isbn -> rating).
type User struct {
	ID      string            `json:"userId"`
	Ratings map[string]Rating `json:"ratings,omitempty"`
}

type UserSummary struct {
	ID          string `json:"userId"`
	RatingCount int    `json:"ratingCount"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, RatingCount: len(u.Ratings)}
}
