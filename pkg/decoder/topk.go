package decoder

import (
	"container/heap"
	"math"
)

// scoredTemplate is one surviving DTW comparison: a template index paired
// with its distance.
type scoredTemplate struct {
	templateIdx int
	distance    float64
}

// distanceHeap is a max-heap on distance, so its root is always the
// current K-th best (worst-of-the-best) distance: exactly the prune
// threshold the source's own top-K maintenance exposes after an overflow.
type distanceHeap []scoredTemplate

func (h distanceHeap) Len() int            { return len(h) }
func (h distanceHeap) Less(i, j int) bool  { return h[i].distance > h[j].distance }
func (h distanceHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *distanceHeap) Push(x interface{}) { *h = append(*h, x.(scoredTemplate)) }
func (h *distanceHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// topKTracker maintains the running top-K by ascending distance and the
// prune threshold fed back into subsequent DTW comparisons. The threshold
// is +Inf until K results are held, then the K-th best distance; within
// one decode it never increases, so pruning only ever tightens.
type topKTracker struct {
	k         int
	heap      distanceHeap
	threshold float64
}

func newTopKTracker(k int) *topKTracker {
	return &topKTracker{k: k, threshold: math.Inf(1)}
}

// Offer considers a new (templateIdx, distance) pair. distance == +Inf
// means the comparison was pruned and is ignored.
func (t *topKTracker) Offer(templateIdx int, distance float64) {
	if math.IsInf(distance, 1) {
		return
	}

	if t.heap.Len() < t.k {
		heap.Push(&t.heap, scoredTemplate{templateIdx: templateIdx, distance: distance})
		if t.heap.Len() == t.k {
			t.threshold = t.heap[0].distance
		}
		return
	}

	if distance >= t.heap[0].distance {
		return
	}

	heap.Pop(&t.heap)
	heap.Push(&t.heap, scoredTemplate{templateIdx: templateIdx, distance: distance})
	t.threshold = t.heap[0].distance
}

// Threshold returns the current prune threshold to feed into the next DTW
// comparison.
func (t *topKTracker) Threshold() float64 {
	return t.threshold
}

// Results returns every surviving (templateIdx, distance) pair, in no
// particular order.
func (t *topKTracker) Results() []scoredTemplate {
	return t.heap
}
