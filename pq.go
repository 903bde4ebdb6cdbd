package graphsearch

import (
	"cmp"
	"container/heap"
	"slices"
)

type priorityQueueItem[StateType comparable, ActionType comparable] struct {
	Node     *Node[StateType, ActionType]
	Priority float64
	// Sequence is the insertion counter; it breaks priority ties so that
	// the earlier insert is extracted first.
	Sequence uint64
}

type priorityQueue[StateType comparable, ActionType comparable] []priorityQueueItem[StateType, ActionType]

func comparePriorityItems[StateType comparable, ActionType comparable](a, b priorityQueueItem[StateType, ActionType]) int {
	if c := cmp.Compare(a.Priority, b.Priority); c != 0 {
		return c
	}
	return cmp.Compare(a.Sequence, b.Sequence)
}

func (queue priorityQueue[StateType, ActionType]) Len() int { return len(queue) }
func (queue priorityQueue[StateType, ActionType]) Less(i, j int) bool {
	return comparePriorityItems(queue[i], queue[j]) < 0
}
func (queue priorityQueue[StateType, ActionType]) Swap(i, j int) { queue[i], queue[j] = queue[j], queue[i] }

func (queue *priorityQueue[StateType, ActionType]) Push(x any) {
	*queue = append(*queue, x.(priorityQueueItem[StateType, ActionType]))
}

func (queue *priorityQueue[StateType, ActionType]) Pop() any {
	oldQueue := *queue
	n := len(oldQueue)
	item := oldQueue[n-1]
	oldQueue[n-1] = priorityQueueItem[StateType, ActionType]{}
	*queue = oldQueue[:n-1]
	return item
}

type priorityFrontier[StateType comparable, ActionType comparable] struct {
	queue    priorityQueue[StateType, ActionType]
	sequence uint64
}

// NewPriorityFrontier returns a frontier that extracts the node with the
// smallest priority, earliest insertion first among equals.
func NewPriorityFrontier[StateType comparable, ActionType comparable]() Frontier[StateType, ActionType] {
	return &priorityFrontier[StateType, ActionType]{}
}

func (frontier *priorityFrontier[StateType, ActionType]) Insert(node *Node[StateType, ActionType], priority float64) {
	heap.Push(&frontier.queue, priorityQueueItem[StateType, ActionType]{
		Node:     node,
		Priority: priority,
		Sequence: frontier.sequence,
	})
	frontier.sequence++
}

func (frontier *priorityFrontier[StateType, ActionType]) ExtractNext() (*Node[StateType, ActionType], error) {
	if frontier.queue.Len() == 0 {
		return nil, ErrEmptyFrontier
	}
	item := heap.Pop(&frontier.queue).(priorityQueueItem[StateType, ActionType])
	return item.Node, nil
}

func (frontier *priorityFrontier[StateType, ActionType]) IsEmpty() bool { return frontier.queue.Len() == 0 }
func (frontier *priorityFrontier[StateType, ActionType]) Len() int      { return frontier.queue.Len() }

func (frontier *priorityFrontier[StateType, ActionType]) Pending() []*Node[StateType, ActionType] {
	items := slices.Clone(frontier.queue)
	slices.SortFunc(items, comparePriorityItems[StateType, ActionType])
	pending := make([]*Node[StateType, ActionType], len(items))
	for i, item := range items {
		pending[i] = item.Node
	}
	return pending
}
