// Package sweep walks a reference path in fixed-size windows and scores how much the paths of the graph differ in each window.
package sweep

import (
	"fmt"

	"github.com/will-rowe/pansel/src/graph"
)

// Sweeper holds what is needed to sweep one reference path
type Sweeper struct {
	graph     *graph.Graph
	reference *graph.Path
	chrom     string
	chunkSize int
	isAnchor  []bool

	// Anchors are the common nodes on the reference, in reference order
	Anchors []int
}

// NewSweeper is the Sweeper constructor, common nodes must already be selected for the graph
func NewSweeper(g *graph.Graph, reference *graph.Path, chrom string, chunkSize int) (*Sweeper, error) {
	if chunkSize < 1 {
		return nil, fmt.Errorf("chunk size must be positive (%d): %w", chunkSize, graph.ErrPrecondition)
	}
	if g.PathCounts == nil {
		return nil, fmt.Errorf("common nodes have not been selected: %w", graph.ErrPrecondition)
	}
	return &Sweeper{
		graph:     g,
		reference: reference,
		chrom:     chrom,
		chunkSize: chunkSize,
		isAnchor:  g.IsCommon(),
		Anchors:   reference.OrderNodes(g.CommonNodes),
	}, nil
}

// anchor names a placed node
func (sweeper *Sweeper) anchor(n PlacedNode) Anchor {
	return Anchor{Name: sweeper.graph.Nodes[n.ID].Name, Start: n.Start, End: n.End}
}

// Run walks the reference once and sends a Record to emit each time a window is closed by an anchor.
// A trailing window with no anchor after it is not reported. It returns the number of records sent.
func (sweeper *Sweeper) Run(emit func(*Record) error) (int, error) {
	nodes := sweeper.reference.Nodes
	if len(nodes) == 0 {
		return 0, nil
	}
	offset := sweeper.reference.Offset
	bin := PlacedNode{ID: 0, Start: 1 + offset, End: offset + sweeper.chunkSize}
	length := 1 + offset
	start, common := unset(), unset()
	if first := nodes[0]; sweeper.isAnchor[first] {
		start = PlacedNode{ID: first, Start: length, End: length + sweeper.graph.Nodes[first].Size - 1}
	}
	sent := 0
	for _, nodeID := range nodes {
		size := sweeper.graph.Nodes[nodeID].Size
		current := PlacedNode{ID: nodeID, Start: length, End: length + size - 1}
		if sweeper.isAnchor[nodeID] && current.EndsAfter(bin) {

			// close the window between the previous anchor and this one
			if start.IsSet() && start != current {
				score, err := sweeper.graph.ScoreAnchorPair(start.ID, current.ID)
				if err != nil {
					return sent, err
				}
				chunkStart := start.End
				if start.Start <= bin.Start && bin.Start <= start.End {
					chunkStart = bin.Start
				}
				chunkEnd := current.Start
				if current.Start <= bin.End && bin.End <= current.End {
					chunkEnd = bin.End
				}
				record := &Record{
					Chrom:         sweeper.chrom,
					Bin:           bin,
					ChunkStart:    chunkStart,
					ChunkEnd:      chunkEnd,
					Dissimilarity: score.Dissimilarity,
					DistinctPaths: score.DistinctPaths,
					TotalPaths:    score.TotalPaths,
					From:          sweeper.anchor(start),
					To:            sweeper.anchor(current),
				}
				if err := emit(record); err != nil {
					return sent, err
				}
				sent++
			}

			// if the window holds no anchor, fall back to the previous one (this overestimates the region)
			if current.IsAfter(bin) {
				start = common
			} else {
				start = current
			}

			// windows lying inside this node can't hold any variation
			for current.EndsAfter(bin) {
				if current.StartsBefore(bin) {
					record := &Record{
						Chrom:         sweeper.chrom,
						Bin:           bin,
						ChunkStart:    bin.Start,
						ChunkEnd:      bin.End,
						Dissimilarity: 0,
						DistinctPaths: 1,
						TotalPaths:    sweeper.graph.PathCounts[nodeID],
						From:          sweeper.anchor(current),
						To:            sweeper.anchor(current),
					}
					if err := emit(record); err != nil {
						return sent, err
					}
					sent++
				}
				bin.advance(sweeper.chunkSize)
			}
		}
		if sweeper.isAnchor[nodeID] {
			common = current
		}
		length += size
	}
	return sent, nil
}
