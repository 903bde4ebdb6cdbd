package internal

// ReconstructPath rebuilds a root-to-current sequence of length values by
// following previous links backwards from current.
//
// The slice is filled from the back so no reversal is needed.
func ReconstructPath[NodeType any, ValueType any](
	current NodeType,
	length int,
	previous func(NodeType) NodeType,
	value func(NodeType) ValueType,
) []ValueType {
	path := make([]ValueType, length)
	for i := length - 1; i >= 0; i-- {
		path[i] = value(current)
		current = previous(current)
	}
	return path
}
