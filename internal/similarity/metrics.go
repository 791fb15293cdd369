package similarity

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

const (
	MetricEuclidean = "euclidean"
	MetricManhattan = "manhattan"
	MetricMinkowski = "minkowski"
	MetricCosine    = "cosine"
	MetricPearson   = "pearson"
)

const (
	// DefaultMinkowskiOrder is the p used when the caller does not pick one.
	DefaultMinkowskiOrder = 1.0
	MaxMinkowskiOrder     = 100.0
)

// ErrInvalidOrder is returned for a Minkowski order outside (0, MaxMinkowskiOrder].
var ErrInvalidOrder = errors.New("minkowski order must be a positive number up to 100")

// common resolves both ids and intersects their ratings. When the pair
// cannot be scored it returns the result to hand back and false.
func common(metric, a, b string, src RatingSource) ([]Pair, Result, bool) {
	ra, okA := src.Ratings(a)
	rb, okB := src.Ratings(b)
	if !okA || !okB {
		return nil, notFound(metric, src.Kind()), false
	}
	pairs, err := CommonRatings(ra, rb)
	if err != nil {
		return nil, invalidRating(metric, err), false
	}
	if len(pairs) == 0 {
		return nil, noOverlap(metric), false
	}
	return pairs, Result{}, true
}

// Euclidean is sqrt(sum((a-b)^2)) over the common ratings. Lower is closer.
func Euclidean(a, b string, src RatingSource) Result {
	pairs, res, ok := common(MetricEuclidean, a, b, src)
	if !ok {
		return res
	}
	xs, ys := split(pairs)
	diff := make([]float64, len(xs))
	floats.SubTo(diff, xs, ys)
	dist := math.Sqrt(floats.Dot(diff, diff))

	return Result{
		Metric:      MetricEuclidean,
		Score:       dist,
		Reason:      ReasonOK,
		Explanation: fmt.Sprintf("Euclidean Distance: %.2f\nA lower Euclidean distance implies greater similarity.", dist),
		Common:      len(pairs),
	}
}

// Manhattan is sum(|a-b|) over the common ratings. Lower is closer.
func Manhattan(a, b string, src RatingSource) Result {
	pairs, res, ok := common(MetricManhattan, a, b, src)
	if !ok {
		return res
	}
	var dist float64
	for _, p := range pairs {
		dist += math.Abs(p.A - p.B)
	}

	return Result{
		Metric:      MetricManhattan,
		Score:       dist,
		Reason:      ReasonOK,
		Explanation: fmt.Sprintf("Manhattan Distance: %.2f\nA lower Manhattan distance implies greater similarity.", dist),
		Common:      len(pairs),
	}
}

// Minkowski is (sum(|a-b|^p))^(1/p). p=1 matches Manhattan and p=2 matches
// Euclidean. The order is checked before anything else.
func Minkowski(a, b string, src RatingSource, p float64) (Result, error) {
	if err := checkOrder(p); err != nil {
		return Result{}, err
	}
	pairs, res, ok := common(MetricMinkowski, a, b, src)
	if !ok {
		return res, nil
	}
	diffs := make([]float64, len(pairs))
	for i, pr := range pairs {
		diffs[i] = math.Abs(pr.A - pr.B)
	}
	// scale by the largest difference so |d|^p stays finite for large p
	var dist float64
	if top := floats.Max(diffs); top > 0 {
		var sum float64
		for _, d := range diffs {
			sum += math.Pow(d/top, p)
		}
		dist = top * math.Pow(sum, 1/p)
	}

	return Result{
		Metric:      MetricMinkowski,
		Score:       dist,
		Reason:      ReasonOK,
		Explanation: fmt.Sprintf("Minkowski Distance (p=%g): %.2f\nSmaller values imply greater similarity.", p, dist),
		Common:      len(pairs),
	}, nil
}

func checkOrder(p float64) error {
	if !(p > 0 && p <= MaxMinkowskiOrder) {
		return fmt.Errorf("%w: got %v", ErrInvalidOrder, p)
	}
	return nil
}

// Cosine is dot(a,b) / (|a| * |b|) over the common ratings. Higher is closer.
func Cosine(a, b string, src RatingSource) Result {
	pairs, res, ok := common(MetricCosine, a, b, src)
	if !ok {
		return res
	}
	xs, ys := split(pairs)
	dot := floats.Dot(xs, ys)
	magA := math.Sqrt(floats.Dot(xs, xs))
	magB := math.Sqrt(floats.Dot(ys, ys))

	if magA == 0 || magB == 0 {
		return Result{
			Metric:      MetricCosine,
			Reason:      ReasonZeroMagnitude,
			Explanation: "Magnitude of one or both items is zero.",
			Common:      len(pairs),
		}
	}

	sim := dot / (magA * magB)
	return Result{
		Metric:      MetricCosine,
		Score:       sim,
		Reason:      ReasonOK,
		Explanation: fmt.Sprintf("Cosine Similarity: %.2f\nA similarity of 1 indicates perfect similarity, while a similarity of 0 indicates no similarity.", sim),
		Common:      len(pairs),
	}
}

// Pearson is the sample correlation
//
//	(Σxy - ΣxΣy/n) / sqrt((Σx² - (Σx)²/n)(Σy² - (Σy)²/n))
//
// over the common ratings. Higher is closer. Zero variance on either side
// gives ReasonZeroDenominator; otherwise the coefficient is clamped to
// [-1, 1] so rounding never reports a value outside the range.
func Pearson(a, b string, src RatingSource) Result {
	pairs, res, ok := common(MetricPearson, a, b, src)
	if !ok {
		return res
	}
	xs, ys := split(pairs)
	n := float64(len(pairs))
	sum1 := floats.Sum(xs)
	sum2 := floats.Sum(ys)
	sum1Sq := floats.Dot(xs, xs)
	sum2Sq := floats.Dot(ys, ys)
	productSum := floats.Dot(xs, ys)

	num := productSum - (sum1 * sum2 / n)
	// rounding can push a zero variance slightly below zero
	v := (sum1Sq - sum1*sum1/n) * (sum2Sq - sum2*sum2/n)
	var den float64
	if v > 0 {
		den = math.Sqrt(v)
	}

	if den == 0 {
		return Result{
			Metric:      MetricPearson,
			Reason:      ReasonZeroDenominator,
			Explanation: "Denominator is zero.",
			Common:      len(pairs),
		}
	}

	coef := math.Max(-1, math.Min(1, num/den))
	return Result{
		Metric:      MetricPearson,
		Score:       coef,
		Reason:      ReasonOK,
		Explanation: fmt.Sprintf("Pearson Correlation Coefficient: %.2f\nA coefficient close to 1 indicates a strong positive correlation, while a coefficient close to -1 indicates a strong negative correlation.", coef),
		Common:      len(pairs),
	}
}
