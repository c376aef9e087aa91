// Package strategy provides the built-in partitioning strategies.
//
// Pairwise predicates, evaluated by the engine against bucket
// representatives:
//
//   - PlanePartition: same tolerance band orthogonal to a fixed normal
//   - DirectionPartition: aligned with a fixed direction within a tolerance
//   - BallPartition: within a fixed radius under a pluggable metric
//   - BlockPartition: same lattice block of fixed side lengths
//   - BisectPointPartition: same side of a fixed hyperplane
//
// Direct strategies, computing the whole subset list in one pass:
//
//   - UniformPartition: k subsets of near-equal size
//   - FractionPartition: two subsets split at a fraction of the element count
//   - RoundRobinPartition: element i dealt to subset i mod k
//   - BisectFractionPartition: split at a fraction of the order along a normal
//   - ProductPartition: intersection of two strategies' partitions
//   - HierarchicalPartition: partition the subsets of a partition again
//
// Custom strategies implement one of the skipta.IndexPredicate,
// skipta.PointPredicate or skipta.Indexer shapes; IndexPredicateFunc and
// PointPredicateFunc adapt plain functions.
package strategy
