// Package index defines the common interface implemented by every coarse
// or exact index type (flat, IVF, annoy) and the types shared between them.
package index

import (
	"fmt"
	"io"
)

// DistanceType names a distance function. The engine supports a single
// metric end to end (squared Euclidean for ranking); Index does not report
// a DistanceType and persisted files do not record one.
type DistanceType int

const (
	// DistanceTypeSquaredL2 is squared Euclidean distance. This is the
	// distance used for all internal ranking; it is monotonic with true
	// Euclidean distance and avoids a sqrt per comparison.
	DistanceTypeSquaredL2 DistanceType = iota
	// DistanceTypeEuclidean is true Euclidean distance.
	DistanceTypeEuclidean
)

// String returns a human-readable name for dt.
func (dt DistanceType) String() string {
	switch dt {
	case DistanceTypeSquaredL2:
		return "SquaredL2"
	case DistanceTypeEuclidean:
		return "Euclidean"
	default:
		return "Unknown"
	}
}

// SearchResult is a single match returned from Index.Search, ordered
// nearest-first.
type SearchResult struct {
	ID       uint32
	Distance float32
}

// SearchParams carries index-specific search tuning. Each concrete index
// type defines its own params type (ivf.SearchParams, annoy.SearchParams);
// Flat ignores it. A nil SearchParams means "use the index's defaults".
//
// IsIndexSearchParams is exported, not because callers invoke it, but
// because an unexported marker method could only ever be implemented by
// types living in this package, defeating the point of a sum type
// implemented by sibling packages (ivf, annoy).
type SearchParams interface {
	IsIndexSearchParams()
}

// Index is implemented by every search structure the database can hold:
// Flat, IVF, and Annoy.
type Index interface {
	// Name identifies the index type, e.g. for the on-disk payload header.
	Name() string

	// IsTrained reports whether Build has produced usable internal
	// structure. Flat is always trained; IVF and Annoy are not until
	// Build succeeds.
	IsTrained() bool

	// Build (re)constructs the index's internal structure from data, a
	// row-major n*dim matrix. Flat's Build is a no-op.
	Build(data []float32, n, dim int) error

	// Search returns up to k nearest neighbors of query against data,
	// the same row-major matrix passed to Build. params may be nil.
	Search(data []float32, query []float32, k int, params SearchParams) ([]SearchResult, error)

	// Save writes the index's trained structure, excluding the raw
	// vector matrix, which the caller persists separately.
	Save(w io.Writer) error

	// Load restores trained structure previously written by Save. dim is
	// the dimension of the vector store the index will be queried
	// against; the built-in implementations take the dimension from the
	// payload itself and do not compare it with dim.
	Load(r io.Reader, dim int) error
}

// ErrNotTrained is returned by Search when the index requires training
// (IVF, Annoy) and Build has not yet succeeded.
type ErrNotTrained struct {
	Index string
}

func (e *ErrNotTrained) Error() string {
	return fmt.Sprintf("index: %s index is not trained", e.Index)
}

// ErrInvalidParameter is returned when a caller-supplied parameter (k,
// n_clusters, num_trees, k_leaf) is out of range for the operation.
// Out-of-range n_probe is clamped and a non-positive search_k override is
// ignored; neither raises this error.
type ErrInvalidParameter struct {
	Name   string
	Reason string
}

func (e *ErrInvalidParameter) Error() string {
	return fmt.Sprintf("index: invalid parameter %s: %s", e.Name, e.Reason)
}

// ErrCorruptPayload is returned by Load when a persisted index payload
// fails a structural check (a negative count, dimension or bucket size).
// A truncated payload surfaces as the wrapped underlying read error.
type ErrCorruptPayload struct {
	Index  string
	Reason string
}

func (e *ErrCorruptPayload) Error() string {
	return fmt.Sprintf("index: corrupt %s payload: %s", e.Index, e.Reason)
}
