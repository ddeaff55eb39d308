package sweep

import (
	"fmt"

	"github.com/biogo/biogo/feat"
)

// Anchor is a common node, named and placed on the reference
type Anchor struct {
	Name  string
	Start int
	End   int
}

// Record is the comparison of the paths over one window of the reference
type Record struct {
	Chrom         string
	Bin           PlacedNode // the raw window, ID is the bin number
	ChunkStart    int        // window clipped to the anchors (1-based, inclusive)
	ChunkEnd      int
	Dissimilarity float64
	DistinctPaths int
	TotalPaths    int
	From          Anchor
	To            Anchor
}

// the Record methods satisfy the biogo feat.Feature interface, using 0-based half-open coordinates

// Start returns the 0-based start of the clipped window
func (r *Record) Start() int { return r.ChunkStart - 1 }

// End returns the end of the clipped window
func (r *Record) End() int { return r.ChunkEnd }

// Len returns the length of the clipped window
func (r *Record) Len() int { return r.ChunkEnd - r.ChunkStart + 1 }

// Name returns the region name of the window
func (r *Record) Name() string { return fmt.Sprintf("region_%d", r.Bin.ID) }

// Description returns a short description of the record
func (r *Record) Description() string {
	return fmt.Sprintf("%d distinct of %d paths between %v and %v", r.DistinctPaths, r.TotalPaths, r.From.Name, r.To.Name)
}

// Location returns the reference sequence the window is on
func (r *Record) Location() feat.Feature { return chromosome(r.Chrom) }

// chromosome is the reference sequence a record is located on
type chromosome string

func (c chromosome) Start() int             { return 0 }
func (c chromosome) End() int               { return 0 }
func (c chromosome) Len() int               { return 0 }
func (c chromosome) Name() string           { return string(c) }
func (c chromosome) Description() string    { return "reference sequence" }
func (c chromosome) Location() feat.Feature { return nil }

var _ feat.Feature = (*Record)(nil)
