// Package reporting writes the window records produced by a sweep, as a full table or as BED
package reporting

import (
	"bufio"
	"fmt"
	"io"

	"github.com/biogo/biogo/feat"
	"github.com/biogo/biogo/seq"
	"github.com/biogo/hts/bgzf"
	"github.com/will-rowe/pansel/src/sweep"
)

// Writer writes records in either the full or the BED layout
type Writer struct {
	bed  bool
	buf  *bufio.Writer
	bgzf *bgzf.Writer
}

// NewWriter is the Writer constructor, if bgzip is set the output is BGZF compressed
func NewWriter(w io.Writer, bed, bgzip bool) *Writer {
	writer := &Writer{bed: bed}
	if bgzip {
		writer.bgzf = bgzf.NewWriter(w, 1)
		w = writer.bgzf
	}
	writer.buf = bufio.NewWriter(w)
	return writer
}

// Write is a method to write a single record
func (w *Writer) Write(r *sweep.Record) error {
	if w.bed {
		return writeBED(w.buf, r, r.Dissimilarity)
	}
	_, err := fmt.Fprintf(w.buf, "%d\t%d\t%d\t%.6f\t%d\t%d\t%d\t%d\t%v\t%d\t%d\t%v\t%d\t%d\n",
		r.Bin.ID, r.ChunkStart, r.ChunkEnd, r.Dissimilarity, r.DistinctPaths, r.TotalPaths, r.Bin.Start, r.Bin.End,
		r.From.Name, r.From.Start, r.From.End, r.To.Name, r.To.Start, r.To.End)
	return err
}

// writeBED writes a BED6 line for a feature, the score is the dissimilarity of the window
func writeBED(w io.Writer, f feat.Feature, score float64) error {
	chrom := ""
	if loc := f.Location(); loc != nil {
		chrom = loc.Name()
	}
	_, err := fmt.Fprintf(w, "%v\t%d\t%d\t%v\t%.6f\t%v\n", chrom, f.Start(), f.End(), f.Name(), score, seq.Plus)
	return err
}

// Close flushes the writer and ends the BGZF stream, it does not close the underlying writer
func (w *Writer) Close() error {
	if err := w.buf.Flush(); err != nil {
		return err
	}
	if w.bgzf != nil {
		return w.bgzf.Close()
	}
	return nil
}
