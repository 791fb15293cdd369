package similarity

import (
	"errors"
	"fmt"
	"strings"
)

// Direction says which end of a metric's range means "closer".
type Direction int

const (
	LowerIsCloser Direction = iota
	HigherIsCloser
)

func (d Direction) String() string {
	if d == HigherIsCloser {
		return "higher-is-closer"
	}
	return "lower-is-closer"
}

// Func scores a pair of ids of the same index.
type Func func(a, b string, src RatingSource) Result

// Metric is a named scoring function with its ordering.
type Metric struct {
	Name      string
	Direction Direction
	Score     Func
}

// Closer reports whether score x ranks ahead of score y.
func (m Metric) Closer(x, y float64) bool {
	if m.Direction == HigherIsCloser {
		return x > y
	}
	return x < y
}

var ErrUnknownMetric = errors.New("unknown similarity metric")

var (
	EuclideanMetric = Metric{Name: MetricEuclidean, Direction: LowerIsCloser, Score: Euclidean}
	ManhattanMetric = Metric{Name: MetricManhattan, Direction: LowerIsCloser, Score: Manhattan}
	CosineMetric    = Metric{Name: MetricCosine, Direction: HigherIsCloser, Score: Cosine}
	PearsonMetric   = Metric{Name: MetricPearson, Direction: HigherIsCloser, Score: Pearson}
)

// MinkowskiMetric binds the order p into a Metric.
func MinkowskiMetric(p float64) (Metric, error) {
	if err := checkOrder(p); err != nil {
		return Metric{}, err
	}
	return Metric{
		Name:      MetricMinkowski,
		Direction: LowerIsCloser,
		Score: func(a, b string, src RatingSource) Result {
			// p was checked above
			res, _ := Minkowski(a, b, src, p)
			return res
		},
	}, nil
}

// Names lists the metrics Lookup accepts.
func Names() []string {
	return []string{MetricEuclidean, MetricManhattan, MetricMinkowski, MetricCosine, MetricPearson}
}

// Lookup resolves a metric by name (case-insensitive). p is only used by
// minkowski; zero selects DefaultMinkowskiOrder.
func Lookup(name string, p float64) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case MetricEuclidean, "":
		return EuclideanMetric, nil
	case MetricManhattan:
		return ManhattanMetric, nil
	case MetricCosine:
		return CosineMetric, nil
	case MetricPearson:
		return PearsonMetric, nil
	case MetricMinkowski:
		if p == 0 {
			p = DefaultMinkowskiOrder
		}
		return MinkowskiMetric(p)
	default:
		return Metric{}, fmt.Errorf("%w: %q", ErrUnknownMetric, name)
	}
}
