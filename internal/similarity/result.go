package similarity

import "fmt"

// Reason tells apart the outcomes a metric can produce.
type Reason string

const (
	ReasonOK              Reason = "ok"
	ReasonNotFound        Reason = "not_found"
	ReasonNoOverlap       Reason = "no_common_ratings"
	ReasonZeroMagnitude   Reason = "zero_magnitude"
	ReasonZeroDenominator Reason = "zero_denominator"
	ReasonInvalidRating   Reason = "invalid_rating"
)

// Result is a score plus the text shown to the user.
// Score is 0 whenever Reason is not ReasonOK.
type Result struct {
	Metric      string  `json:"metric"`
	Score       float64 `json:"score"`
	Reason      Reason  `json:"reason"`
	Explanation string  `json:"explanation"`
	Common      int     `json:"commonRatings"`
}

func (r Result) OK() bool { return r.Reason == ReasonOK }

func notFound(metric, kind string) Result {
	return Result{
		Metric:      metric,
		Reason:      ReasonNotFound,
		Explanation: fmt.Sprintf("One or both %s not found in data.", kind),
	}
}

func noOverlap(metric string) Result {
	return Result{Metric: metric, Reason: ReasonNoOverlap, Explanation: "No common ratings found."}
}

func invalidRating(metric string, err error) Result {
	return Result{
		Metric:      metric,
		Reason:      ReasonInvalidRating,
		Explanation: fmt.Sprintf("Invalid rating value: %v.", err),
	}
}
