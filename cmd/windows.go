// Copyright © 2017 Will Rowe <will.rowe@stfc.ac.uk>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.


package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/will-rowe/pansel/src/misc"
	"github.com/will-rowe/pansel/src/pipeline"
	"github.com/will-rowe/pansel/src/version"
)

// the command line arguments
var (
	gfaFile   *string // the input graph
	indexFile *string // an index made by pansel index, used instead of the gfa
	reference *string // name of the reference path
	chunkSize *int    // width of the windows
	minPaths  *int    // min. number of paths for a node to be an anchor
	bedOut    *bool   // write BED instead of the full table
	chrom     *string // chromosome label for BED output
	outFile   *string // output file
	bgzip     *bool   // BGZF compress the output
	plotFile  *string // plot of the dissimilarity
)

// windowsCmd is used by cobra
var windowsCmd = &cobra.Command{
	Use:   "windows",
	Short: "Score path divergence in fixed size windows along a reference path",
	Long:  `Score path divergence in fixed size windows along a reference path`,
	Run: func(cmd *cobra.Command, args []string) {
		runWindows()
	},
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return misc.CheckRequiredFlags(cmd.Flags())
	},
}

// init the command line arguments
func init() {
	gfaFile = windowsCmd.Flags().StringP("gfa", "i", "", "graph in GFA format (can be gzip, bzip2, xz, lz4 or snappy compressed)")
	indexFile = windowsCmd.Flags().StringP("index", "x", "", "graph index created by pansel index (used instead of --gfa)")
	reference = windowsCmd.Flags().StringP("reference", "r", "", "reference path name (P line name or W line sample) - required")
	chunkSize = windowsCmd.Flags().IntP("chunkSize", "s", 1000, "window width in bases")
	minPaths = windowsCmd.Flags().IntP("minPaths", "n", 0, "min. number of paths visiting a node for it to be an anchor (0 = infer it)")
	bedOut = windowsCmd.Flags().Bool("bed", false, "write a BED file instead of the full table")
	chrom = windowsCmd.Flags().StringP("chrom", "c", "", "chromosome name for the BED output (default: the reference sequence ID)")
	outFile = windowsCmd.Flags().StringP("out", "o", "", "output file (default: STDOUT)")
	bgzip = windowsCmd.Flags().Bool("bgzip", false, "BGZF compress the output file")
	plotFile = windowsCmd.Flags().String("plot", "", "save a plot of the dissimilarity along the reference to this PNG file")
	windowsCmd.MarkFlagRequired("reference")
	RootCmd.AddCommand(windowsCmd)
}

// windowsParamCheck is a function to check user supplied parameters
func windowsParamCheck() error {
	if err := checkGraphInput(*gfaFile, *indexFile); err != nil {
		return err
	}
	if *chunkSize < 1 {
		return fmt.Errorf("chunkSize must be at least 1")
	}
	if *minPaths < 0 {
		return fmt.Errorf("minPaths can't be negative")
	}
	if *bgzip && *outFile == "" {
		return fmt.Errorf("--bgzip needs an output file (--out)")
	}
	setProcessors()
	return nil
}

// runWindows is the main function for the windows sub-command
func runWindows() {
	if *profiling {
		defer profile.Start(profile.ProfilePath("./")).Stop()
	}
	defer startLogging()()
	start := time.Now()
	log.Printf("this is pansel (version %s)", version.GetVersion())
	log.Printf("starting the windows subcommand")
	log.Printf("checking parameters...")
	misc.ErrorCheck(windowsParamCheck())
	log.Printf("\treference: %v", *reference)
	log.Printf("\tchunk size: %d", *chunkSize)
	if *minPaths == 0 {
		log.Printf("\tmin. paths per anchor: inferred")
	} else {
		log.Printf("\tmin. paths per anchor: %d", *minPaths)
	}
	log.Printf("\tprocessors: %d", *proc)
	info := &pipeline.Info{
		Version:   version.GetVersion(),
		NumProc:   *proc,
		Profiling: *profiling,
		GFA:       *gfaFile,
		Index:     *indexFile,
		MinPaths:  *minPaths,
		Windows: pipeline.WindowsCmd{
			Reference: *reference,
			Chrom:     *chrom,
			ChunkSize: *chunkSize,
			BED:       *bedOut,
			Bgzip:     *bgzip,
			OutFile:   *outFile,
			PlotFile:  *plotFile,
		},
	}

	// create the pipeline
	log.Printf("initialising windows pipeline...")
	windowsPipeline := pipeline.NewPipeline()
	graphReader := pipeline.NewGraphReader(info)
	anchorFinder := pipeline.NewAnchorFinder(info)
	windowSweeper := pipeline.NewWindowSweeper(info)
	recordWriter := pipeline.NewRecordWriter(info)
	anchorFinder.Connect(graphReader)
	windowSweeper.Connect(anchorFinder)
	recordWriter.Connect(windowSweeper)
	windowsPipeline.AddProcesses(graphReader, anchorFinder, windowSweeper, recordWriter)
	log.Printf("\tnumber of processes added to the windows pipeline: %d", windowsPipeline.GetNumProcesses())
	log.Printf("sweeping the reference...")
	windowsPipeline.Run()
	log.Printf("\t%v", misc.PrintMemUsage())
	log.Printf("finished in %s", time.Since(start))
}
