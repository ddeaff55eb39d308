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
	anchorsGFA      *string // the input graph
	anchorsIndex    *string // index used instead of the gfa
	anchorsMinPaths *int    // min. number of paths for a node to be an anchor
	anchorsOut      *string // GFA file for the anchors
)

// anchorsCmd is used by cobra
var anchorsCmd = &cobra.Command{
	Use:   "anchors",
	Short: "Save the common nodes used as window anchors as a GFA",
	Long:  `Save the common nodes used as window anchors, and every path reduced to them, as a GFA`,
	Run: func(cmd *cobra.Command, args []string) {
		runAnchors()
	},
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return misc.CheckRequiredFlags(cmd.Flags())
	},
}

// init the command line arguments
func init() {
	anchorsGFA = anchorsCmd.Flags().StringP("gfa", "i", "", "graph in GFA format (can be compressed)")
	anchorsIndex = anchorsCmd.Flags().StringP("index", "x", "", "graph index created by pansel index (used instead of --gfa)")
	anchorsMinPaths = anchorsCmd.Flags().IntP("minPaths", "n", 0, "min. number of paths visiting a node for it to be an anchor (0 = infer it)")
	anchorsOut = anchorsCmd.Flags().StringP("out", "o", "", "GFA file to write the anchors to - required")
	anchorsCmd.MarkFlagRequired("out")
	RootCmd.AddCommand(anchorsCmd)
}

// anchorsParamCheck is a function to check user supplied parameters
func anchorsParamCheck() error {
	if err := checkGraphInput(*anchorsGFA, *anchorsIndex); err != nil {
		return err
	}
	if *anchorsMinPaths < 0 {
		return fmt.Errorf("minPaths can't be negative")
	}
	return nil
}

// runAnchors is the main function for the anchors sub-command
func runAnchors() {
	if *profiling {
		defer profile.Start(profile.ProfilePath("./")).Stop()
	}
	defer startLogging()()
	start := time.Now()
	log.Printf("this is pansel (version %s)", version.GetVersion())
	log.Printf("starting the anchors subcommand")
	log.Printf("checking parameters...")
	misc.ErrorCheck(anchorsParamCheck())
	info := &pipeline.Info{
		Version:   version.GetVersion(),
		NumProc:   *proc,
		Profiling: *profiling,
		GFA:       *anchorsGFA,
		Index:     *anchorsIndex,
		MinPaths:  *anchorsMinPaths,
		Anchors:   pipeline.AnchorsCmd{OutFile: *anchorsOut},
	}
	log.Printf("finding anchors...")
	anchorsPipeline := pipeline.NewPipeline()
	graphReader := pipeline.NewGraphReader(info)
	anchorFinder := pipeline.NewAnchorFinder(info)
	anchorWriter := pipeline.NewAnchorWriter(info)
	anchorFinder.Connect(graphReader)
	anchorWriter.Connect(anchorFinder)
	anchorsPipeline.AddProcesses(graphReader, anchorFinder, anchorWriter)
	anchorsPipeline.Run()
	log.Printf("finished in %s", time.Since(start))
}
