package graph

import (
	"fmt"
)

// minInferredThreshold is the smallest path count considered when inferring a threshold
const minInferredThreshold = 3

// countPaths sets the number of distinct paths visiting each node
func (graph *Graph) countPaths() {
	graph.PathCounts = make([]int, len(graph.Nodes))
	for _, path := range graph.Paths {
		// cycles can visit a node more than once, only count the path once
		for nodeID := range path.lastVisit {
			graph.PathCounts[nodeID]++
		}
	}
}

// Histogram returns, for each possible path count k (0..number of paths), the number of nodes visited by exactly k paths
func (graph *Graph) Histogram() []int {
	counts := make([]int, len(graph.Paths)+1)
	for _, c := range graph.PathCounts {
		counts[c]++
	}
	return counts
}

// inferThreshold picks the most frequent path count, ignoring counts below minInferredThreshold
func inferThreshold(counts []int) (int, error) {
	numPaths := len(counts) - 1
	if numPaths < minInferredThreshold {
		return 0, fmt.Errorf("there are less than %d paths (found %d): %w", minInferredThreshold, numPaths, ErrInsufficientData)
	}
	best, threshold := 0, -1
	for k := minInferredThreshold; k < len(counts); k++ {
		if counts[k] > best {
			best, threshold = counts[k], k
		}
	}
	if threshold == -1 {
		return 0, fmt.Errorf("no node is visited by %d or more paths: %w", minInferredThreshold, ErrInsufficientData)
	}
	return threshold, nil
}

// SelectCommonNodes counts the paths per node and keeps the nodes visited by at least minPaths paths.
// If minPaths is 0, the threshold is the most frequent path count (from 3 paths upwards).
// It returns the threshold used and the selected node IDs in ascending order.
func (graph *Graph) SelectCommonNodes(minPaths int) (int, []int, error) {
	if graph.PathCounts != nil {
		return 0, nil, fmt.Errorf("common nodes have already been selected for this graph: %w", ErrPrecondition)
	}
	if minPaths < 0 {
		return 0, nil, fmt.Errorf("minimum number of paths can't be negative (%d): %w", minPaths, ErrPrecondition)
	}
	graph.countPaths()
	threshold := minPaths
	if threshold == 0 {
		var err error
		if threshold, err = inferThreshold(graph.Histogram()); err != nil {
			graph.PathCounts = nil
			return 0, nil, err
		}
	}
	selected := []int{}
	for nodeID, count := range graph.PathCounts {
		if count >= threshold {
			selected = append(selected, nodeID)
		}
	}
	graph.Threshold = threshold
	graph.CommonNodes = selected
	return threshold, selected, nil
}

// IsCommon returns a lookup of the common nodes, indexed by node ID
func (graph *Graph) IsCommon() []bool {
	lookup := make([]bool, len(graph.Nodes))
	for _, nodeID := range graph.CommonNodes {
		lookup[nodeID] = true
	}
	return lookup
}
