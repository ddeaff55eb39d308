package graph

// Node is a GFA segment, reduced to what the window analysis needs
// Note: the Node ID is its index in Graph.Nodes and is never reused
type Node struct {
	Name string
	Size int // sequence length in bases
}

// Nodes is a slice of node IDs
type Nodes []int

