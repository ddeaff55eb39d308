package graph

import (
	"fmt"
	"sort"
)

// Path is a haplotype traversal of the graph (a GFA P line, or one or more W lines)
type Path struct {
	Name      string
	Haplotype string // empty for P lines
	Sequence  string // empty for P lines
	Offset    int    // start of the path in its source sequence
	Nodes     Nodes  // node IDs in traversal order, repeats allowed

	// lastVisit relates a node ID to the index of its last occurrence in Nodes
	lastVisit map[int]int
}

// newPath is the Path constructor
func newPath(name, haplotype, sequence string, offset int) *Path {
	return &Path{
		Name:      name,
		Haplotype: haplotype,
		Sequence:  sequence,
		Offset:    offset,
		lastVisit: make(map[int]int),
	}
}

// Append is a method to add a node to the end of the path
func (path *Path) Append(nodeID int) {
	// on a cycle the later visit overwrites the earlier one, position lookups always resolve to the last visit
	path.lastVisit[nodeID] = len(path.Nodes)
	path.Nodes = append(path.Nodes, nodeID)
}

// reindex rebuilds the last visit lookup from the node list (used after loading an index)
func (path *Path) reindex() {
	path.lastVisit = make(map[int]int, len(path.Nodes))
	for i, nodeID := range path.Nodes {
		path.lastVisit[nodeID] = i
	}
}

// Contains returns true if the path visits the node at least once
func (path *Path) Contains(nodeID int) bool {
	_, ok := path.lastVisit[nodeID]
	return ok
}

// LastVisit returns the index of the last occurrence of a node in the path
func (path *Path) LastVisit(nodeID int) (int, bool) {
	i, ok := path.lastVisit[nodeID]
	return i, ok
}

// DistinctNodes returns the number of different nodes the path visits
func (path *Path) DistinctNodes() int {
	return len(path.lastVisit)
}

// Label returns a printable identifier for the path
func (path *Path) Label() string {
	if path.Sequence == "" {
		return path.Name
	}
	return fmt.Sprintf("%v#%v#%v", path.Name, path.Haplotype, path.Sequence)
}

// OrderNodes takes a set of node IDs, keeps the ones on this path and sorts them by their last visit
func (path *Path) OrderNodes(candidates []int) []int {
	ordered := make([]int, 0, len(candidates))
	for _, nodeID := range candidates {
		if path.Contains(nodeID) {
			ordered = append(ordered, nodeID)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return path.lastVisit[ordered[i]] < path.lastVisit[ordered[j]]
	})
	return ordered
}

// SubPath returns the nodes lying between two nodes of the path (both included), sorted by node ID and without duplicates
func (path *Path) SubPath(nodeA, nodeB int) (SubPath, error) {
	ia, ok := path.lastVisit[nodeA]
	if !ok {
		return nil, fmt.Errorf("node %d is not on path %v: %w", nodeA, path.Label(), ErrPrecondition)
	}
	ib, ok := path.lastVisit[nodeB]
	if !ok {
		return nil, fmt.Errorf("node %d is not on path %v: %w", nodeB, path.Label(), ErrPrecondition)
	}
	if ib < ia {
		ia, ib = ib, ia
	}
	sub := make(SubPath, ib-ia+1)
	copy(sub, path.Nodes[ia:ib+1])
	sort.Ints(sub)

	// a cycle can re-enter the span, collapse the repeats
	keep := 0
	for i, nodeID := range sub {
		if i > 0 && nodeID == sub[keep-1] {
			continue
		}
		sub[keep] = nodeID
		keep++
	}
	return sub[:keep], nil
}
