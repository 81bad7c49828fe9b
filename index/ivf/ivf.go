// Package ivf implements an inverted-file index: vectors are partitioned
// into K cells by k-means, and search inspects only the cells closest to
// the query.
package ivf

import (
	"sort"

	"github.com/LuciAkirami/vegamdb/core"
	"github.com/LuciAkirami/vegamdb/index"
	"github.com/LuciAkirami/vegamdb/kmeans"
	"github.com/LuciAkirami/vegamdb/math32"
)

// SearchParams tunes how many cells a single query inspects, overriding
// the index's DefaultNProbe.
type SearchParams struct {
	NProbe int
}

func (SearchParams) IsIndexSearchParams() {}

var _ index.SearchParams = SearchParams{}

// Options configures a new IVF index.
type Options struct {
	NClusters     int
	Dimension     int
	MaxIters      int
	DefaultNProbe int
}

// IVF partitions its vector space into NClusters cells via k-means and
// restricts search to the n_probe cells nearest the query.
type IVF struct {
	nClusters     int
	dimension     int
	maxIters      int
	defaultNProbe int

	centroids [][]float32
	buckets   [][]core.LocalID
}

var _ index.Index = (*IVF)(nil)

// New returns an untrained IVF index with the given parameters.
func New(opts Options) *IVF {
	return &IVF{
		nClusters:     opts.NClusters,
		dimension:     opts.Dimension,
		maxIters:      opts.MaxIters,
		defaultNProbe: opts.DefaultNProbe,
	}
}

func (*IVF) Name() string { return "IVFIndex" }

// IsTrained reports whether Build produced a non-empty centroid set and
// inverted lists.
func (ivf *IVF) IsTrained() bool {
	return len(ivf.centroids) > 0 && len(ivf.buckets) > 0
}

// SetMaxIters overrides the iteration count used by the next Build. It is
// not persisted across Save/Load.
func (ivf *IVF) SetMaxIters(n int) { ivf.maxIters = n }

// SetDefaultNProbe overrides the default n_probe used when a query omits
// SearchParams. It is not persisted across Save/Load.
func (ivf *IVF) SetDefaultNProbe(n int) { ivf.defaultNProbe = n }

// Build trains k-means over data (a row-major n*dim matrix) and adopts the
// resulting centroids and buckets as inverted lists. If K > n, k-means
// returns an empty result and the index remains untrained.
func (ivf *IVF) Build(data []float32, n, dim int) error {
	if ivf.nClusters <= 0 {
		return &index.ErrInvalidParameter{Name: "n_clusters", Reason: "must be > 0"}
	}

	trainer := kmeans.New(ivf.nClusters, ivf.maxIters, dim)
	result := trainer.Train(data)

	ivf.dimension = dim
	ivf.centroids = result.Centroids
	ivf.buckets = result.Buckets
	return nil
}

// Search resolves n_probe, scores the nearest n_probe centroids, then
// scores every id within the selected cells' inverted lists.
func (ivf *IVF) Search(data []float32, query []float32, k int, params index.SearchParams) ([]index.SearchResult, error) {
	if !ivf.IsTrained() {
		return nil, &index.ErrNotTrained{Index: ivf.Name()}
	}
	if k <= 0 {
		return nil, &index.ErrInvalidParameter{Name: "k", Reason: "must be > 0"}
	}

	nProbe := ivf.defaultNProbe
	if p, ok := params.(SearchParams); ok {
		nProbe = p.NProbe
	}
	if nProbe < 1 {
		nProbe = 1
	}
	if nProbe > len(ivf.centroids) {
		nProbe = len(ivf.centroids)
	}

	type centroidScore struct {
		idx  int
		dist float32
	}
	scores := make([]centroidScore, len(ivf.centroids))
	for i, c := range ivf.centroids {
		scores[i] = centroidScore{idx: i, dist: math32.SquaredL2(query, c)}
	}
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].dist != scores[j].dist {
			return scores[i].dist < scores[j].dist
		}
		return scores[i].idx < scores[j].idx
	})

	var candidates []index.SearchResult
	for p := 0; p < nProbe; p++ {
		cell := scores[p].idx
		for _, id := range ivf.buckets[cell] {
			v := data[int(id)*ivf.dimension : (int(id)+1)*ivf.dimension]
			candidates = append(candidates, index.SearchResult{
				ID:       uint32(id),
				Distance: math32.SquaredL2(query, v),
			})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Distance != candidates[j].Distance {
			return candidates[i].Distance < candidates[j].Distance
		}
		return candidates[i].ID < candidates[j].ID
	})

	if k > len(candidates) {
		k = len(candidates)
	}
	return candidates[:k], nil
}
