package pipeline

/*
 this part of the pipeline saves the graph, either as an index or as a GFA of the common nodes
*/

import (
	"fmt"
	"log"

	"github.com/will-rowe/pansel/src/graph"
	"github.com/will-rowe/pansel/src/misc"
)

// AnchorWriter is a pipeline process that saves the common nodes as a GFA
type AnchorWriter struct {
	info  *Info
	input chan *graph.Graph
	paths int
}

// NewAnchorWriter is the constructor
func NewAnchorWriter(info *Info) *AnchorWriter {
	return &AnchorWriter{info: info}
}

// Connect is the method to connect the AnchorWriter to the output of an AnchorFinder
func (proc *AnchorWriter) Connect(previous *AnchorFinder) {
	proc.input = previous.output
}

// CollectOutput is a method to return the number of paths written
func (proc *AnchorWriter) CollectOutput() int {
	return proc.paths
}

// Run is the method to run this process, which satisfies the pipeline interface
func (proc *AnchorWriter) Run() {
	for g := range proc.input {
		n, err := g.SaveAnchorsAsGFA(proc.info.Anchors.OutFile)
		misc.ErrorCheck(err)
		proc.paths += n
		log.Printf("\tsaved %d anchors and %d paths to %v", len(g.CommonNodes), n, proc.info.Anchors.OutFile)
	}
}

// IndexWriter is a pipeline process that saves a graph as an index
type IndexWriter struct {
	info  *Info
	input chan *graph.Graph
}

// NewIndexWriter is the constructor
func NewIndexWriter(info *Info) *IndexWriter {
	return &IndexWriter{info: info}
}

// Connect is the method to connect the IndexWriter to the output of a GraphReader
func (proc *IndexWriter) Connect(previous *GraphReader) {
	proc.input = previous.output
}

// Run is the method to run this process, which satisfies the pipeline interface
func (proc *IndexWriter) Run() {
	for g := range proc.input {
		if proc.info.Indexer.OutFile == "" {
			misc.ErrorCheck(fmt.Errorf("no index file specified"))
		}
		misc.ErrorCheck(g.Dump(proc.info.Indexer.OutFile))
		log.Printf("\tsaved index: %v", proc.info.Indexer.OutFile)
	}
}
