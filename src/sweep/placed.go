package sweep

// PlacedNode is a node (or a window) laid on the coordinates of one path, 1-based and inclusive
type PlacedNode struct {
	ID    int
	Start int
	End   int
}

// unset returns a PlacedNode that does not refer to any node
func unset() PlacedNode {
	return PlacedNode{ID: -1, Start: -1, End: -1}
}

// IsSet returns true if the PlacedNode refers to a node
func (n PlacedNode) IsSet() bool {
	return n.ID >= 0
}

// IsAfter returns true if n starts after m ends
func (n PlacedNode) IsAfter(m PlacedNode) bool {
	return n.Start > m.End
}

// EndsAfter returns true if n ends at or after the end of m
func (n PlacedNode) EndsAfter(m PlacedNode) bool {
	return n.End >= m.End
}

// StartsBefore returns true if n starts at or before the start of m
func (n PlacedNode) StartsBefore(m PlacedNode) bool {
	return n.Start <= m.Start
}

// advance moves a window to the next bin
func (n *PlacedNode) advance(width int) {
	n.ID++
	n.Start += width
	n.End += width
}
