package graph

// SubPath is the set of nodes a path visits between two anchors, sorted by node ID
type SubPath []int

// WeightedJaccard returns the Jaccard similarity of two subpaths, each node weighted by its size.
// Both subpaths must be sorted and free of duplicates. Two empty subpaths have a similarity of 0.
func (graph *Graph) WeightedJaccard(a, b SubPath) float64 {
	intersection, union := 0, 0
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			size := graph.Nodes[a[i]].Size
			intersection += size
			union += size
			i++
			j++
		case a[i] < b[j]:
			union += graph.Nodes[a[i]].Size
			i++
		default:
			union += graph.Nodes[b[j]].Size
			j++
		}
	}
	for ; i < len(a); i++ {
		union += graph.Nodes[a[i]].Size
	}
	for ; j < len(b); j++ {
		union += graph.Nodes[b[j]].Size
	}
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// PairScore holds the comparison of all the paths between two anchor nodes
type PairScore struct {
	TotalPaths    int     // paths visiting both anchors
	DistinctPaths int     // subpaths with no identical (Jaccard == 1) earlier subpath
	Dissimilarity float64 // mean of 1 - Jaccard over all subpath pairs
}

// ScoreAnchorPair compares the subpaths of every path visiting both nodes.
// The cost is quadratic in the number of paths (haplotypes), not in the size of the graph.
func (graph *Graph) ScoreAnchorPair(nodeA, nodeB int) (PairScore, error) {
	score := PairScore{}
	subPaths := []SubPath{}
	for _, path := range graph.Paths {
		if !path.Contains(nodeA) || !path.Contains(nodeB) {
			continue
		}
		sub, err := path.SubPath(nodeA, nodeB)
		if err != nil {
			return score, err
		}
		subPaths = append(subPaths, sub)
	}
	score.TotalPaths = len(subPaths)
	if score.TotalPaths == 0 {
		return score, nil
	}
	score.DistinctPaths = 1
	dissimilarity := 0.0
	for i := 1; i < len(subPaths); i++ {
		distinct := true
		for j := 0; j < i; j++ {
			similarity := graph.WeightedJaccard(subPaths[i], subPaths[j])
			if similarity == 1 {
				distinct = false
			}
			dissimilarity += 1 - similarity
		}
		if distinct {
			score.DistinctPaths++
		}
	}
	if pairs := score.TotalPaths * (score.TotalPaths - 1) / 2; pairs > 0 {
		score.Dissimilarity = dissimilarity / float64(pairs)
	}
	return score, nil
}
