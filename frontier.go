package graphsearch

// Frontier holds discovered nodes awaiting expansion. The order in which
// ExtractNext returns them is what distinguishes one strategy from another.
//
// Implementations never deduplicate: the same state may be inserted many
// times, and the engine discards stale entries when they are extracted.
type Frontier[StateType comparable, ActionType comparable] interface {
	// Insert adds a node. Order-only frontiers ignore priority.
	Insert(node *Node[StateType, ActionType], priority float64)
	// ExtractNext removes and returns the preferred node, or ErrEmptyFrontier.
	ExtractNext() (*Node[StateType, ActionType], error)
	IsEmpty() bool
	Len() int
	// Pending returns a copy of the waiting nodes in extraction order.
	Pending() []*Node[StateType, ActionType]
}

// --- Stack order (LIFO) ---

type stackFrontier[StateType comparable, ActionType comparable] struct {
	nodes []*Node[StateType, ActionType]
}

// NewStackFrontier returns a frontier that extracts the most recently inserted node.
func NewStackFrontier[StateType comparable, ActionType comparable]() Frontier[StateType, ActionType] {
	return &stackFrontier[StateType, ActionType]{}
}

func (stack *stackFrontier[StateType, ActionType]) Insert(node *Node[StateType, ActionType], _ float64) {
	stack.nodes = append(stack.nodes, node)
}

func (stack *stackFrontier[StateType, ActionType]) ExtractNext() (*Node[StateType, ActionType], error) {
	n := len(stack.nodes)
	if n == 0 {
		return nil, ErrEmptyFrontier
	}
	node := stack.nodes[n-1]
	stack.nodes[n-1] = nil
	stack.nodes = stack.nodes[:n-1]
	return node, nil
}

func (stack *stackFrontier[StateType, ActionType]) IsEmpty() bool { return len(stack.nodes) == 0 }
func (stack *stackFrontier[StateType, ActionType]) Len() int      { return len(stack.nodes) }

func (stack *stackFrontier[StateType, ActionType]) Pending() []*Node[StateType, ActionType] {
	pending := make([]*Node[StateType, ActionType], 0, len(stack.nodes))
	for i := len(stack.nodes) - 1; i >= 0; i-- {
		pending = append(pending, stack.nodes[i])
	}
	return pending
}

// --- Queue order (FIFO) ---

type queueFrontier[StateType comparable, ActionType comparable] struct {
	nodes []*Node[StateType, ActionType]
	head  int
}

// NewQueueFrontier returns a frontier that extracts the earliest inserted node.
func NewQueueFrontier[StateType comparable, ActionType comparable]() Frontier[StateType, ActionType] {
	return &queueFrontier[StateType, ActionType]{}
}

func (queue *queueFrontier[StateType, ActionType]) Insert(node *Node[StateType, ActionType], _ float64) {
	queue.nodes = append(queue.nodes, node)
}

func (queue *queueFrontier[StateType, ActionType]) ExtractNext() (*Node[StateType, ActionType], error) {
	if queue.IsEmpty() {
		return nil, ErrEmptyFrontier
	}
	node := queue.nodes[queue.head]
	queue.nodes[queue.head] = nil
	queue.head++

	// Reclaim the consumed prefix once it dominates the backing array.
	if queue.head > 64 && queue.head*2 >= len(queue.nodes) {
		remaining := copy(queue.nodes, queue.nodes[queue.head:])
		clear(queue.nodes[remaining:])
		queue.nodes = queue.nodes[:remaining]
		queue.head = 0
	}
	return node, nil
}

func (queue *queueFrontier[StateType, ActionType]) IsEmpty() bool {
	return queue.head == len(queue.nodes)
}

func (queue *queueFrontier[StateType, ActionType]) Len() int { return len(queue.nodes) - queue.head }

func (queue *queueFrontier[StateType, ActionType]) Pending() []*Node[StateType, ActionType] {
	pending := make([]*Node[StateType, ActionType], queue.Len())
	copy(pending, queue.nodes[queue.head:])
	return pending
}
