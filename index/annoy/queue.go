package annoy

import "container/heap"

// frontierItem is a pending subtree during best-first search: a node still
// to be visited, with the traversal budget that got it there.
type frontierItem struct {
	node   *node
	budget float32
}

// frontierQueue is a max-heap over frontierItem.budget, grounded on the
// container/heap priority queue used for tree traversal elsewhere in this
// codebase's lineage: value-based items, no parent-pointer bookkeeping.
type frontierQueue struct {
	items []frontierItem
}

var _ heap.Interface = (*frontierQueue)(nil)

func (q *frontierQueue) Len() int { return len(q.items) }

func (q *frontierQueue) Less(i, j int) bool { return q.items[i].budget > q.items[j].budget }

func (q *frontierQueue) Swap(i, j int) { q.items[i], q.items[j] = q.items[j], q.items[i] }

func (q *frontierQueue) Push(x any) {
	q.items = append(q.items, x.(frontierItem))
}

func (q *frontierQueue) Pop() any {
	n := len(q.items)
	item := q.items[n-1]
	q.items = q.items[:n-1]
	return item
}
