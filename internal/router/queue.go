package router

import (
	"container/heap"
	"courierdispatch/internal/domain"
)

// queueItem is one entry of the open set: a coordinate and its f-cost
// (g-cost + heuristic). seq breaks ties by insertion order, making pop
// order deterministic for equal f-costs.
type queueItem struct {
	coord domain.Coord
	gCost float64
	fCost float64
	seq   int
	index int
}

// priorityQueue is a min-heap on fCost, tie-broken on seq. Entries are
// never removed from the middle; a coordinate can be pushed more than
// once as cheaper paths to it are discovered; stale (higher-cost)
// entries are simply skipped by the caller when popped, since it is
// cheaper to tolerate them than to support decrease-key.
type priorityQueue []*queueItem

func (pq priorityQueue) Len() int { return len(pq) }

func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].fCost != pq[j].fCost {
		return pq[i].fCost < pq[j].fCost
	}
	return pq[i].seq < pq[j].seq
}

func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *priorityQueue) Push(x any) {
	item := x.(*queueItem)
	item.index = len(*pq)
	*pq = append(*pq, item)
}

func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*pq = old[:n-1]
	return item
}

var _ heap.Interface = (*priorityQueue)(nil)
