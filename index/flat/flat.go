// Package flat implements an exact, brute-force nearest-neighbor index: no
// training, no approximation, every search scores every stored vector.
package flat

import (
	"io"
	"sort"

	"github.com/LuciAkirami/vegamdb/index"
	"github.com/LuciAkirami/vegamdb/math32"
)

// Flat is the reference exact-search index. It holds no state of its own;
// Build, Save, and Load are all no-ops.
type Flat struct{}

var _ index.Index = (*Flat)(nil)

// New returns a Flat index.
func New() *Flat {
	return &Flat{}
}

func (*Flat) Name() string { return "FlatIndex" }

// IsTrained is always true: there is no structure to train.
func (*Flat) IsTrained() bool { return true }

// Build is a no-op.
func (*Flat) Build(data []float32, n, dim int) error { return nil }

// Search scores every vector in data and returns the min(k, n) closest by
// squared Euclidean distance, sorted ascending with ties broken by id.
func (*Flat) Search(data []float32, query []float32, k int, params index.SearchParams) ([]index.SearchResult, error) {
	if k <= 0 {
		return nil, &index.ErrInvalidParameter{Name: "k", Reason: "must be > 0"}
	}
	dim := len(query)
	n := 0
	if dim > 0 {
		n = len(data) / dim
	}

	results := make([]index.SearchResult, n)
	for i := 0; i < n; i++ {
		v := data[i*dim : (i+1)*dim]
		results[i] = index.SearchResult{ID: uint32(i), Distance: math32.SquaredL2(query, v)}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Distance != results[j].Distance {
			return results[i].Distance < results[j].Distance
		}
		return results[i].ID < results[j].ID
	})

	if k > n {
		k = n
	}
	return results[:k], nil
}

// Save writes nothing: Flat has no persistent state.
func (*Flat) Save(w io.Writer) error { return nil }

// Load reads nothing: Flat has no persistent state.
func (*Flat) Load(r io.Reader, dim int) error { return nil }
