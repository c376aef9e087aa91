package skipta

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
)

// Domain is the capability set required of any element collection to be
// partitionable: report how many elements it holds, report their fixed
// dimensionality, and write the coordinates of the i-th element into a
// caller-supplied buffer.
//
// Element indices range over [0, Len()). Implementations must be safe for
// concurrent reads; the partitioner never mutates a domain.
type Domain interface {
	// Returns the number of elements.
	Len() int

	// Returns the number of coordinates per element.
	Dimension() int

	// Fills dst with the coordinates of the element at index i. dst must
	// have length Dimension().
	CoordinatesAt(dst Point, i int) error
}

func checkCoordinateArgs(d Domain, dst Point, i int) error {
	if i < 0 || i >= d.Len() {
		return errors.New("element index out of range").
			WithType(ErrTypeIndexOutOfRange).
			WithTag("index", i).
			WithTag("len", d.Len())
	}
	if len(dst) != d.Dimension() {
		return errors.New("coordinate buffer length does not match domain dimension").
			WithType(ErrTypeDimensionMismatch).
			WithTag("buffer_len", len(dst)).
			WithTag("dimension", d.Dimension())
	}
	return nil
}
