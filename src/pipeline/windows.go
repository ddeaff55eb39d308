package pipeline

/*
 this part of the pipeline sweeps the reference sequences and writes the window records
*/

import (
	"io"
	"log"
	"os"
	"sync"

	"github.com/will-rowe/pansel/src/graph"
	"github.com/will-rowe/pansel/src/misc"
	"github.com/will-rowe/pansel/src/reporting"
	"github.com/will-rowe/pansel/src/sweep"
)

// Target is a reference path to sweep and the chromosome label for its records
type Target struct {
	Path  *graph.Path
	Chrom string
}

// ReferenceTargets finds the paths to sweep for a reference name: the path with that name if it has no
// sequence ID, otherwise every sequence recorded under the name. The chrom label is only used for a single target.
func ReferenceTargets(g *graph.Graph, reference, chrom string) ([]Target, error) {
	if path, err := g.FindSequence(reference, ""); err == nil {
		if chrom == "" {
			chrom = reference
		}
		return []Target{{Path: path, Chrom: chrom}}, nil
	}
	ids := g.ListSequenceIDs(reference)
	if len(ids) == 0 {
		_, err := g.FindPath(reference)
		return nil, err
	}
	targets := make([]Target, len(ids))
	for i, id := range ids {
		path, err := g.FindSequence(reference, id)
		if err != nil {
			return nil, err
		}
		targets[i] = Target{Path: path, Chrom: id}
	}
	if len(targets) == 1 && chrom != "" {
		targets[0].Chrom = chrom
	}
	return targets, nil
}

// WindowSweeper is a pipeline process that sweeps each reference sequence and sends the records in sequence order
type WindowSweeper struct {
	info   *Info
	input  chan *graph.Graph
	output chan *sweep.Record
}

// NewWindowSweeper is the constructor
func NewWindowSweeper(info *Info) *WindowSweeper {
	return &WindowSweeper{info: info, output: make(chan *sweep.Record, BUFFERSIZE)}
}

// Connect is the method to connect the WindowSweeper to the output of an AnchorFinder
func (proc *WindowSweeper) Connect(previous *AnchorFinder) {
	proc.input = previous.output
}

// sweepResult holds the records of one target once its sweep is done
type sweepResult struct {
	records []*sweep.Record
	err     error
	done    chan struct{}
}

// Run is the method to run this process, which satisfies the pipeline interface
func (proc *WindowSweeper) Run() {
	defer close(proc.output)
	for g := range proc.input {
		targets, err := ReferenceTargets(g, proc.info.Windows.Reference, proc.info.Windows.Chrom)
		misc.ErrorCheck(err)
		if len(targets) > 1 && proc.info.Windows.Chrom != "" {
			log.Printf("\treference has %d sequences, ignoring the chromosome label", len(targets))
		}

		// the graph is read only from here, so the sequences can be swept concurrently
		numProc := proc.info.NumProc
		if numProc < 1 {
			numProc = 1
		}
		tokens := make(chan struct{}, numProc)
		results := make([]*sweepResult, len(targets))
		var wg sync.WaitGroup
		for i, target := range targets {
			results[i] = &sweepResult{done: make(chan struct{})}
			wg.Add(1)
			go func(t Target, res *sweepResult) {
				defer wg.Done()
				defer close(res.done)
				tokens <- struct{}{}
				defer func() { <-tokens }()
				sweeper, err := sweep.NewSweeper(g, t.Path, t.Chrom, proc.info.Windows.ChunkSize)
				if err != nil {
					res.err = err
					return
				}
				log.Printf("\treference path %v contains %d nodes, %d nucleotides and %d anchors", t.Path.Label(), len(t.Path.Nodes), g.PathLength(t.Path), len(sweeper.Anchors))
				_, res.err = sweeper.Run(func(r *sweep.Record) error {
					res.records = append(res.records, r)
					return nil
				})
			}(target, results[i])
		}

		// send the records in the order of the targets
		for i, res := range results {
			<-res.done
			misc.ErrorCheck(res.err)
			log.Printf("\t%v: %d windows", targets[i].Chrom, len(res.records))
			for _, r := range res.records {
				proc.output <- r
			}
			results[i] = nil
		}
		wg.Wait()
	}
}

// RecordWriter is a pipeline process that writes the records and, optionally, plots them
type RecordWriter struct {
	info    *Info
	input   chan *sweep.Record
	written int
}

// NewRecordWriter is the constructor
func NewRecordWriter(info *Info) *RecordWriter {
	return &RecordWriter{info: info}
}

// Connect is the method to connect the RecordWriter to the output of a WindowSweeper
func (proc *RecordWriter) Connect(previous *WindowSweeper) {
	proc.input = previous.output
}

// CollectOutput is a method to return the number of records written
func (proc *RecordWriter) CollectOutput() int {
	return proc.written
}

// Run is the method to run this process, which satisfies the pipeline interface
func (proc *RecordWriter) Run() {
	var out io.Writer = os.Stdout
	if proc.info.Windows.OutFile != "" {
		fh, err := os.Create(proc.info.Windows.OutFile)
		misc.ErrorCheck(err)
		defer fh.Close()
		out = fh
	}
	writer := reporting.NewWriter(out, proc.info.Windows.BED, proc.info.Windows.Bgzip)
	series := []*reporting.Series{}
	for r := range proc.input {
		misc.ErrorCheck(writer.Write(r))
		proc.written++
		if proc.info.Windows.PlotFile == "" {
			continue
		}
		if len(series) == 0 || series[len(series)-1].Chrom != r.Chrom {
			series = append(series, &reporting.Series{Chrom: r.Chrom})
		}
		series[len(series)-1].Add(r)
	}
	misc.ErrorCheck(writer.Close())
	log.Printf("\twrote %d records", proc.written)
	if proc.info.Windows.PlotFile != "" {
		if proc.written == 0 {
			log.Printf("\tno records, skipping the plot")
			return
		}
		misc.ErrorCheck(reporting.PlotDissimilarity(series, proc.info.Windows.PlotFile))
		log.Printf("\tsaved plot: %v", proc.info.Windows.PlotFile)
	}
}
