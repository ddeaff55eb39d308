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
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/will-rowe/pansel/src/misc"
	"github.com/will-rowe/pansel/src/version"
)

// the command line arguments
var (
	proc      *int    // number of reference sequences to sweep concurrently
	profiling *bool   // create profile for go pprof
	logFile   *string // file to write the log to
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "pansel",
	Version: version.GetVersion(),
	Short:   "find the regions of a reference where the haplotypes of a pangenome graph diverge",
	Long: `
#####################################################################################
		PANSEL: PANgenome SELection of divergent regions
#####################################################################################

 pansel walks a reference path of a pangenome variation graph (GFA) in fixed size
 windows. The nodes shared by most of the paths are used as anchors, and in each window
 the paths between the two closest anchors are compared with a weighted Jaccard index.

 pansel outputs one record per window: the number of distinct paths, the number of
 paths and their mean dissimilarity, either as a table or as a BED file.`,
}

/*
  A function to add all child commands to the root command and sets flags appropriately
*/
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

/*
  A function to initalise the command line arguments
*/
func init() {
	proc = RootCmd.PersistentFlags().IntP("processors", "p", 1, "number of reference sequences to sweep concurrently")
	profiling = RootCmd.PersistentFlags().Bool("profiling", false, "create the files needed to profile pansel using the go tool pprof")
	logFile = RootCmd.PersistentFlags().String("log", "", "filename for log file, default = stderr")
}

// startLogging sends the log to the log file if one was given, the returned function closes it
func startLogging() func() {
	if *logFile == "" {
		log.SetOutput(os.Stderr)
		return func() {}
	}
	logFH, err := misc.StartLogging(*logFile)
	misc.ErrorCheck(err)
	log.SetOutput(logFH)
	return func() { logFH.Close() }
}

// setProcessors checks the number of processors requested
func setProcessors() {
	if *proc <= 0 || *proc > runtime.NumCPU() {
		*proc = runtime.NumCPU()
	}
	runtime.GOMAXPROCS(*proc)
}

// checkGraphInput makes sure exactly one of a GFA file or an index was given
func checkGraphInput(gfaFile, indexFile string) error {
	switch {
	case gfaFile == "" && indexFile == "":
		return fmt.Errorf("no graph supplied, use --gfa or --index")
	case gfaFile != "" && indexFile != "":
		return fmt.Errorf("supply either a gfa file or an index, not both")
	case gfaFile != "":
		return misc.CheckFile(gfaFile)
	}
	return misc.CheckFile(indexFile)
}
