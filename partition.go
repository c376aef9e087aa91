package skipta

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
)

// Partition is the result of partitioning a domain: an ordered collection of
// disjoint, exhaustive index subsets. Subsets appear in the order their
// buckets were first created. A Partition is read-only after creation.
type Partition struct {
	domain  Domain
	subsets [][]int
}

func newPartition(d Domain, subsets [][]int) *Partition {
	return &Partition{domain: d, subsets: subsets}
}

// Domain returns the partitioned domain. The domain is shared, not copied.
func (p *Partition) Domain() Domain {
	return p.domain
}

// Len returns the number of subsets.
func (p *Partition) Len() int {
	return len(p.subsets)
}

// Subsets returns the index subsets in creation order. The returned slices
// are the partition's own storage and must not be modified.
func (p *Partition) Subsets() [][]int {
	return p.subsets
}

// Subset returns the indices of the i-th subset. The returned slice must not
// be modified.
func (p *Partition) Subset(i int) ([]int, error) {
	if i < 0 || i >= len(p.subsets) {
		return nil, errors.New("subset index out of range").
			WithType(ErrTypeIndexOutOfRange).
			WithTag("index", i).
			WithTag("len", len(p.subsets))
	}
	return p.subsets[i], nil
}

// View returns the domain restricted to the i-th subset.
func (p *Partition) View(i int) (*View, error) {
	subset, err := p.Subset(i)
	if err != nil {
		return nil, err
	}
	return &View{domain: p.domain, indices: subset}, nil
}

// Views returns one view per subset, in subset order. The slice is freshly
// allocated on every call, so iterating it always starts at the first subset.
func (p *Partition) Views() []*View {
	views := make([]*View, len(p.subsets))
	for i := range p.subsets {
		views[i] = &View{domain: p.domain, indices: p.subsets[i]}
	}
	return views
}

// View is a domain restricted to a subset of its indices. It holds the
// domain reference plus the index subset; coordinates are never copied.
// A View is itself a Domain, so it can be partitioned again.
type View struct {
	domain  Domain
	indices []int
}

func (v *View) Len() int {
	return len(v.indices)
}

func (v *View) Dimension() int {
	return v.domain.Dimension()
}

// CoordinatesAt fills dst with the coordinates of the view's i-th element,
// translating the view-local index to the underlying domain index.
func (v *View) CoordinatesAt(dst Point, i int) error {
	if i < 0 || i >= len(v.indices) {
		return errors.New("view index out of range").
			WithType(ErrTypeIndexOutOfRange).
			WithTag("index", i).
			WithTag("len", len(v.indices))
	}
	return v.domain.CoordinatesAt(dst, v.indices[i])
}

// Domain returns the underlying, unrestricted domain.
func (v *View) Domain() Domain {
	return v.domain
}

// Indices returns the underlying domain indices selected by the view. The
// returned slice must not be modified.
func (v *View) Indices() []int {
	return v.indices
}
