package skipta

// Error types attached to errors returned by this package and by the strategy
// subpackage. They are matched with errors.IsType from
// github.com/aukilabs/go-tooling/pkg/errors.
const (
	// ErrTypeNotImplemented reports a strategy that declares none of the
	// partitioning shapes (Indexer, IndexPredicate, PointPredicate).
	ErrTypeNotImplemented = "not_implemented"

	// ErrTypeDimensionMismatch reports a disagreement between a domain's
	// dimensionality and the dimensionality expected by a strategy or a
	// coordinate buffer.
	ErrTypeDimensionMismatch = "dimension_mismatch"

	// ErrTypeIndexOutOfRange reports an element or subset index outside its
	// valid range.
	ErrTypeIndexOutOfRange = "index_out_of_range"

	// ErrTypeInvalidStrategy reports invalid strategy parameters at
	// construction time, or an Indexer result that is not a partition.
	ErrTypeInvalidStrategy = "invalid_strategy"

	// ErrTypeInvalidDomain reports invalid domain construction parameters.
	ErrTypeInvalidDomain = "invalid_domain"
)
