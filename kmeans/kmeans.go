// Package kmeans implements Lloyd's algorithm over float32 vectors, used by
// the IVF index to partition a vector store into coarse cells.
package kmeans

import (
	"math/rand"

	"github.com/LuciAkirami/vegamdb/core"
	"github.com/LuciAkirami/vegamdb/math32"
)

// Result holds the outcome of a training run: K centroid vectors and, for
// each centroid, the ids of the points assigned to it in the final
// assignment step. Buckets partition [0, N); a bucket may be empty.
type Result struct {
	Centroids [][]float32
	Buckets   [][]core.LocalID
}

// Trained reports whether a Result came from an actual training run as
// opposed to the empty Result returned when K > N.
func (r Result) Trained() bool {
	return len(r.Centroids) > 0 && len(r.Buckets) > 0
}

// Trainer runs Lloyd's algorithm with a fixed number of clusters and
// iterations.
type Trainer struct {
	K         int
	MaxIters  int
	Dimension int
}

// New returns a Trainer for k clusters over dimension-d points, iterating
// Lloyd's algorithm maxIters times.
func New(k, maxIters, dimension int) *Trainer {
	return &Trainer{K: k, MaxIters: maxIters, Dimension: dimension}
}

// Train runs k-means over data, a row-major N*D matrix.
//
// If K > N, training is not a precondition failure in the error sense: it
// returns a zero Result (Trained() == false) so the caller, typically the
// IVF index, can mark itself untrained and defer to a fallback.
//
// Initialization samples K distinct starting centroids by shuffling the
// full id range with a fresh RNG and taking the first K. Assignment and
// update then run for exactly MaxIters iterations; there is no
// early-stopping convergence test, by design (see DESIGN.md).
func (t *Trainer) Train(data []float32) Result {
	n := len(data) / t.Dimension
	if t.K <= 0 || t.K > n {
		return Result{}
	}

	rng := math32.NewRNG()

	centroids := t.initCentroids(data, n, rng)
	buckets := make([][]core.LocalID, t.K)

	for iter := 0; iter < t.MaxIters; iter++ {
		for i := range buckets {
			buckets[i] = buckets[i][:0]
		}

		t.assign(data, n, centroids, buckets)
		t.update(data, centroids, buckets)
	}

	return Result{Centroids: centroids, Buckets: buckets}
}

func (t *Trainer) initCentroids(data []float32, n int, rng *rand.Rand) [][]float32 {
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	rng.Shuffle(n, func(i, j int) { indices[i], indices[j] = indices[j], indices[i] })

	centroids := make([][]float32, t.K)
	for c := 0; c < t.K; c++ {
		src := indices[c]
		centroids[c] = append([]float32(nil), data[src*t.Dimension:(src+1)*t.Dimension]...)
	}
	return centroids
}

// assign finds, for every point, the centroid minimizing squared Euclidean
// distance, breaking ties by lowest centroid index via strict '<'.
func (t *Trainer) assign(data []float32, n int, centroids [][]float32, buckets [][]core.LocalID) {
	for i := 0; i < n; i++ {
		point := data[i*t.Dimension : (i+1)*t.Dimension]

		best := 0
		bestDist := math32.SquaredL2(point, centroids[0])
		for c := 1; c < t.K; c++ {
			d := math32.SquaredL2(point, centroids[c])
			if d < bestDist {
				bestDist = d
				best = c
			}
		}

		buckets[best] = append(buckets[best], core.LocalID(i))
	}
}

// update moves each non-empty bucket's centroid to the component-wise mean
// of its points. Empty buckets keep their previous centroid unchanged.
//
// The inner loop is point-major, dimension-minor: it walks the contiguous
// memory of each assigned point in turn rather than striding across
// points per dimension, keeping the working set small and cache-resident.
func (t *Trainer) update(data []float32, centroids [][]float32, buckets [][]core.LocalID) {
	acc := make([]float32, t.Dimension)

	for c, bucket := range buckets {
		if len(bucket) == 0 {
			continue
		}

		for i := range acc {
			acc[i] = 0
		}
		for _, id := range bucket {
			point := data[int(id)*t.Dimension : (int(id)+1)*t.Dimension]
			for d := 0; d < t.Dimension; d++ {
				acc[d] += point[d]
			}
		}

		inv := 1 / float32(len(bucket))
		for d := 0; d < t.Dimension; d++ {
			centroids[c][d] = acc[d] * inv
		}
	}
}
