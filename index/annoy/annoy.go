// Package annoy implements a forest of random-projection binary trees
// (Annoy-style): each tree recursively splits its points with a
// hyperplane through two randomly chosen points, down to leaf buckets of
// bounded size. Search walks the forest either greedily or with a
// best-first, budget-guided traversal.
package annoy

import (
	"container/heap"
	"math"
	"sort"

	"github.com/LuciAkirami/vegamdb/core"
	"github.com/LuciAkirami/vegamdb/index"
	"github.com/LuciAkirami/vegamdb/math32"
)

// node is the tree's single recursive type. A leaf carries a non-empty
// bucket and no hyperplane; an inner node carries a hyperplane and two
// non-nil children. The two shapes are distinguished by left being nil,
// never by a separate tag field.
type node struct {
	bucket []core.LocalID

	w           []float32
	bias        float32
	left, right *node
}

func (nd *node) isLeaf() bool { return nd.left == nil }

// SearchParams tunes a single query's traversal, overriding the index's
// defaults for search_k_nodes and traversal mode.
type SearchParams struct {
	SearchKNodes     int
	UsePriorityQueue bool
}

func (SearchParams) IsIndexSearchParams() {}

var _ index.SearchParams = SearchParams{}

// Options configures a new Annoy forest.
type Options struct {
	Dimension        int
	NumTrees         int
	KLeaf            int
	DefaultSearchK   int
	UsePriorityQueue bool
}

// Annoy is a forest of random-projection trees.
type Annoy struct {
	dimension        int
	numTrees         int
	kLeaf            int
	defaultSearchK   int
	usePriorityQueue bool

	trees []*node
}

var _ index.Index = (*Annoy)(nil)

// New returns an untrained Annoy forest. A DefaultSearchK of -1 resolves
// to NumTrees*KLeaf once Options are adopted.
func New(opts Options) *Annoy {
	searchK := opts.DefaultSearchK
	if searchK == -1 {
		searchK = opts.NumTrees * opts.KLeaf
	}
	return &Annoy{
		dimension:        opts.Dimension,
		numTrees:         opts.NumTrees,
		kLeaf:            opts.KLeaf,
		defaultSearchK:   searchK,
		usePriorityQueue: opts.UsePriorityQueue,
	}
}

func (*Annoy) Name() string { return "AnnoyIndex" }

// IsTrained reports whether Build has produced at least one tree.
func (a *Annoy) IsTrained() bool { return len(a.trees) > 0 }

// Build grows NumTrees independent trees over data, each with its own
// freshly seeded RNG.
func (a *Annoy) Build(data []float32, n, dim int) error {
	if a.numTrees <= 0 {
		return &index.ErrInvalidParameter{Name: "num_trees", Reason: "must be > 0"}
	}
	if a.kLeaf <= 0 {
		return &index.ErrInvalidParameter{Name: "k_leaf", Reason: "must be > 0"}
	}

	a.dimension = dim

	ids := make([]core.LocalID, n)
	for i := range ids {
		ids[i] = core.LocalID(i)
	}

	trees := make([]*node, a.numTrees)
	for t := 0; t < a.numTrees; t++ {
		rng := math32.NewRNG()
		trees[t] = a.buildTree(append([]core.LocalID(nil), ids...), data, dim, rng)
	}
	a.trees = trees
	return nil
}

func (a *Annoy) buildTree(ids []core.LocalID, data []float32, dim int, rng randShuffler) *node {
	if len(ids) <= a.kLeaf {
		return &node{bucket: ids}
	}

	rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
	idA, idB := ids[0], ids[1]
	va := data[int(idA)*dim : (int(idA)+1)*dim]
	vb := data[int(idB)*dim : (int(idB)+1)*dim]

	w := make([]float32, dim)
	var sum float32
	for i := 0; i < dim; i++ {
		w[i] = va[i] - vb[i]
		sum += w[i] * (va[i] + vb[i])
	}
	bias := -sum / 2

	var left, right []core.LocalID
	for _, id := range ids {
		point := data[int(id)*dim : (int(id)+1)*dim]
		if margin(w, point, bias) > 0 {
			left = append(left, id)
		} else {
			right = append(right, id)
		}
	}

	if len(left) == 0 || len(right) == 0 {
		return &node{bucket: ids}
	}

	return &node{
		w:     w,
		bias:  bias,
		left:  a.buildTree(left, data, dim, rng),
		right: a.buildTree(right, data, dim, rng),
	}
}

// randShuffler is the subset of *rand.Rand buildTree needs; it exists so
// tests can drive construction with a deterministic shuffler.
type randShuffler interface {
	Shuffle(n int, swap func(i, j int))
}

func margin(w, x []float32, bias float32) float32 {
	return math32.Dot(w, x) + bias
}

// Search resolves traversal mode and node budget, then walks the forest
// either greedily or best-first.
func (a *Annoy) Search(data []float32, query []float32, k int, params index.SearchParams) ([]index.SearchResult, error) {
	if !a.IsTrained() {
		return nil, &index.ErrNotTrained{Index: a.Name()}
	}
	if k <= 0 {
		return nil, &index.ErrInvalidParameter{Name: "k", Reason: "must be > 0"}
	}

	usePQ := a.usePriorityQueue
	searchK := a.defaultSearchK
	if p, ok := params.(SearchParams); ok {
		usePQ = p.UsePriorityQueue
		if p.SearchKNodes > 0 {
			searchK = p.SearchKNodes
		}
	}

	var collected []core.LocalID
	if usePQ {
		collected = a.searchBestFirst(query, searchK)
	} else {
		collected = a.searchGreedy(query)
	}

	seen := make(map[core.LocalID]struct{}, len(collected))
	candidates := make([]index.SearchResult, 0, len(collected))
	for _, id := range collected {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		v := data[int(id)*a.dimension : (int(id)+1)*a.dimension]
		candidates = append(candidates, index.SearchResult{
			ID:       uint32(id),
			Distance: math32.SquaredL2(query, v),
		})
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

func (a *Annoy) searchGreedy(query []float32) []core.LocalID {
	var collected []core.LocalID
	for _, root := range a.trees {
		nd := root
		for !nd.isLeaf() {
			if margin(nd.w, query, nd.bias) >= 0 {
				nd = nd.left
			} else {
				nd = nd.right
			}
		}
		collected = append(collected, nd.bucket...)
	}
	return collected
}

func (a *Annoy) searchBestFirst(query []float32, searchK int) []core.LocalID {
	pq := &frontierQueue{items: make([]frontierItem, 0, len(a.trees))}
	heap.Init(pq)
	for _, root := range a.trees {
		heap.Push(pq, frontierItem{node: root, budget: float32(math.Inf(1))})
	}

	var collected []core.LocalID
	for pq.Len() > 0 && len(collected) < searchK {
		item := heap.Pop(pq).(frontierItem)
		nd := item.node
		if nd.isLeaf() {
			collected = append(collected, nd.bucket...)
			continue
		}

		m := margin(nd.w, query, nd.bias)
		heap.Push(pq, frontierItem{node: nd.left, budget: minFloat32(item.budget, m)})
		heap.Push(pq, frontierItem{node: nd.right, budget: minFloat32(item.budget, -m)})
	}
	return collected
}

func minFloat32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
