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
	indexGFA *string // the graph to index
	indexOut *string // where to save the index
)

// the index command (used by cobra)
var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Parse a GFA once and save the graph for repeated windows runs",
	Long:  `Parse a GFA once and save the graph for repeated windows runs`,
	Run: func(cmd *cobra.Command, args []string) {
		runIndex()
	},
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return misc.CheckRequiredFlags(cmd.Flags())
	},
}

// a function to initialise the command line arguments
func init() {
	indexGFA = indexCmd.Flags().StringP("gfa", "i", "", "graph in GFA format (can be compressed) - required")
	indexOut = indexCmd.Flags().StringP("out", "o", "", "file to save the index to - required")
	indexCmd.MarkFlagRequired("gfa")
	indexCmd.MarkFlagRequired("out")
	RootCmd.AddCommand(indexCmd)
}

// indexParamCheck is a function to check user supplied parameters
func indexParamCheck() error {
	if err := misc.CheckFile(*indexGFA); err != nil {
		return err
	}
	if *indexOut == *indexGFA {
		return fmt.Errorf("the index would overwrite the gfa file")
	}
	return nil
}

/*
  The main function for the index command
*/
func runIndex() {
	if *profiling {
		defer profile.Start(profile.ProfilePath("./")).Stop()
	}
	defer startLogging()()
	start := time.Now()
	log.Printf("this is pansel (version %s)", version.GetVersion())
	log.Printf("starting the index subcommand")
	log.Printf("checking parameters...")
	misc.ErrorCheck(indexParamCheck())
	info := &pipeline.Info{
		Version:   version.GetVersion(),
		NumProc:   *proc,
		Profiling: *profiling,
		GFA:       *indexGFA,
		Indexer:   pipeline.IndexCmd{OutFile: *indexOut},
	}
	log.Printf("indexing the graph...")
	indexPipeline := pipeline.NewPipeline()
	graphReader := pipeline.NewGraphReader(info)
	indexWriter := pipeline.NewIndexWriter(info)
	indexWriter.Connect(graphReader)
	indexPipeline.AddProcesses(graphReader, indexWriter)
	indexPipeline.Run()
	log.Printf("finished in %s", time.Since(start))
}
