// Package graph holds the pangenome variation graph used by pansel. It loads GFA files, selects the
// nodes shared by most paths and compares the paths between pairs of those nodes.
package graph

import (
	"fmt"
)

// Graph is the variation graph implementation used by pansel
// Note: the graph is built once, after SelectCommonNodes has run it must be treated as read only
type Graph struct {
	Nodes []Node
	Paths []*Path

	// nodeLookup relates a node name to its ID
	nodeLookup map[string]int

	// PathCounts is the number of distinct paths visiting each node (set by SelectCommonNodes)
	PathCounts []int

	// CommonNodes are the node IDs visited by at least Threshold paths, in ID order (set by SelectCommonNodes)
	CommonNodes []int

	// Threshold is the minimum number of paths used to select CommonNodes
	Threshold int
}

// NewGraph is the Graph constructor
func NewGraph() *Graph {
	return &Graph{
		nodeLookup: make(map[string]int),
	}
}

// AddNode is a method to add a node to the graph, returning its ID
func (graph *Graph) AddNode(name string, size int) (int, error) {
	if size < 0 {
		return -1, fmt.Errorf("node %v has a negative size (%d): %w", name, size, ErrPrecondition)
	}
	if _, ok := graph.nodeLookup[name]; ok {
		return -1, fmt.Errorf("node %v is declared more than once: %w", name, ErrMalformed)
	}
	id := len(graph.Nodes)
	graph.Nodes = append(graph.Nodes, Node{Name: name, Size: size})
	graph.nodeLookup[name] = id
	return id, nil
}

// NodeID returns the ID of a named node
func (graph *Graph) NodeID(name string) (int, bool) {
	id, ok := graph.nodeLookup[name]
	return id, ok
}

// AddOrGetPath returns the path matching the name, haplotype and sequence, creating it if needed
// Note: the offset is only used when the path is created
func (graph *Graph) AddOrGetPath(name, haplotype, sequence string, offset int) *Path {
	for _, path := range graph.Paths {
		if path.Name == name && path.Haplotype == haplotype && path.Sequence == sequence {
			return path
		}
	}
	path := newPath(name, haplotype, sequence, offset)
	graph.Paths = append(graph.Paths, path)
	return path
}

// FindPath returns the first path with the given name
func (graph *Graph) FindPath(name string) (*Path, error) {
	for _, path := range graph.Paths {
		if path.Name == name {
			return path, nil
		}
	}
	return nil, fmt.Errorf("cannot find path with name %q: %w", name, ErrNotFound)
}

// FindSequence returns the first path with the given name and sequence ID
func (graph *Graph) FindSequence(name, sequence string) (*Path, error) {
	for _, path := range graph.Paths {
		if path.Name == name && path.Sequence == sequence {
			return path, nil
		}
	}
	return nil, fmt.Errorf("cannot find sequence %q in path %q: %w", sequence, name, ErrNotFound)
}

// ListSequenceIDs returns the distinct sequence IDs recorded for a path name, in the order they were added
func (graph *Graph) ListSequenceIDs(name string) []string {
	seen := make(map[string]struct{})
	ids := []string{}
	for _, path := range graph.Paths {
		if path.Name != name || path.Sequence == "" {
			continue
		}
		if _, ok := seen[path.Sequence]; ok {
			continue
		}
		seen[path.Sequence] = struct{}{}
		ids = append(ids, path.Sequence)
	}
	return ids
}

// PathLength returns the number of bases covered by a path
func (graph *Graph) PathLength(path *Path) int {
	length := 0
	for _, nodeID := range path.Nodes {
		length += graph.Nodes[nodeID].Size
	}
	return length
}
