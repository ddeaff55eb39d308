package pipeline

/*
 this part of the pipeline loads the graph and selects the common nodes
*/

import (
	"log"

	"github.com/will-rowe/pansel/src/graph"
	"github.com/will-rowe/pansel/src/misc"
)

// GraphReader is a pipeline process that loads a graph from a GFA file or an index
type GraphReader struct {
	info   *Info
	output chan *graph.Graph
}

// NewGraphReader is the constructor
func NewGraphReader(info *Info) *GraphReader {
	return &GraphReader{info: info, output: make(chan *graph.Graph)}
}

// Run is the method to run this process, which satisfies the pipeline interface
func (proc *GraphReader) Run() {
	defer close(proc.output)
	var g *graph.Graph
	var err error
	if proc.info.Index != "" {
		log.Printf("\tloading index: %v", proc.info.Index)
		g, err = graph.Load(proc.info.Index)
	} else {
		log.Printf("\treading gfa: %v", proc.info.GFA)
		g, err = graph.LoadGFA(proc.info.GFA)
	}
	misc.ErrorCheck(err)
	log.Printf("\tread graph with %d segments and %d paths", len(g.Nodes), len(g.Paths))
	proc.output <- g
}

// AnchorFinder is a pipeline process that counts the paths per node and selects the common nodes
type AnchorFinder struct {
	info   *Info
	input  chan *graph.Graph
	output chan *graph.Graph
}

// NewAnchorFinder is the constructor
func NewAnchorFinder(info *Info) *AnchorFinder {
	return &AnchorFinder{info: info, output: make(chan *graph.Graph)}
}

// Connect is the method to connect the AnchorFinder to the output of a GraphReader
func (proc *AnchorFinder) Connect(previous *GraphReader) {
	proc.input = previous.output
}

// Run is the method to run this process, which satisfies the pipeline interface
func (proc *AnchorFinder) Run() {
	defer close(proc.output)
	for g := range proc.input {
		threshold, nodes, err := g.SelectCommonNodes(proc.info.MinPaths)
		if g.PathCounts != nil {
			log.Printf("\tnumber of paths per node distribution:")
			for k, count := range g.Histogram() {
				if count > 0 {
					log.Printf("\t\t%d -> %d", k, count)
				}
			}
		}
		misc.ErrorCheck(err)
		log.Printf("\tusing a threshold of %d paths", threshold)
		log.Printf("\t%d nodes are above the threshold", len(nodes))
		proc.output <- g
	}
}
