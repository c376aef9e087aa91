package strategy

import (
	"github.com/aukilabs/skipta"
)

// IndexPredicateFunc adapts a plain function into an index predicate, in
// the manner of http.HandlerFunc.
type IndexPredicateFunc func(i, j int) bool

var _ skipta.IndexPredicate = (IndexPredicateFunc)(nil)

func (f IndexPredicateFunc) Name() string {
	return "index_func"
}

func (f IndexPredicateFunc) Compatible(i, j int) bool {
	return f(i, j)
}

// PointPredicateFunc adapts a plain function into a point predicate.
type PointPredicateFunc func(x, y skipta.Point) bool

var _ skipta.PointPredicate = (PointPredicateFunc)(nil)

func (f PointPredicateFunc) Name() string {
	return "point_func"
}

func (f PointPredicateFunc) CompatiblePoints(x, y skipta.Point) bool {
	return f(x, y)
}
