package sweep

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/will-rowe/pansel/src/graph"
)

// buildGraph makes a graph from node sizes and paths of node IDs
func buildGraph(t *testing.T, sizes []int, paths [][]int) *graph.Graph {
	g := graph.NewGraph()
	for i, size := range sizes {
		if _, err := g.AddNode(string(rune('a'+i)), size); err != nil {
			t.Fatal(err)
		}
	}
	for i, nodes := range paths {
		p := g.AddOrGetPath(string(rune('p'+i)), "", "", 0)
		for _, id := range nodes {
			p.Append(id)
		}
	}
	return g
}

// collect runs a sweep and returns the records
func collect(t *testing.T, s *Sweeper) []*Record {
	records := []*Record{}
	n, err := s.Run(func(r *Record) error {
		records = append(records, r)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if n != len(records) {
		t.Fatalf("sweep reported %d records but sent %d", n, len(records))
	}
	return records
}

func TestNewSweeper(t *testing.T) {
	g := buildGraph(t, []int{10}, [][]int{{0}})
	if _, err := NewSweeper(g, g.Paths[0], "chr", 10); !errors.Is(err, graph.ErrPrecondition) {
		t.Fatalf("sweeping before selecting common nodes should fail, got: %v", err)
	}
	if _, _, err := g.SelectCommonNodes(1); err != nil {
		t.Fatal(err)
	}
	if _, err := NewSweeper(g, g.Paths[0], "chr", 0); !errors.Is(err, graph.ErrPrecondition) {
		t.Fatalf("a chunk size of 0 should fail, got: %v", err)
	}
}

func TestSweep(t *testing.T) {
	// a-b-c on three paths, a-c on the fourth, every node is 10 bp
	g := buildGraph(t, []int{10, 10, 10}, [][]int{{0, 1, 2}, {0, 1, 2}, {0, 1, 2}, {0, 2}})
	if _, _, err := g.SelectCommonNodes(4); err != nil {
		t.Fatal(err)
	}
	s, err := NewSweeper(g, g.Paths[0], "chr1", 5)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(s.Anchors, []int{0, 2}) {
		t.Fatalf("unexpected anchors on the reference: %v", s.Anchors)
	}
	records := collect(t, s)
	expectedBins := []int{0, 1, 2, 4, 5}
	if len(records) != len(expectedBins) {
		t.Fatalf("expected %d records, got %d", len(expectedBins), len(records))
	}
	for i, r := range records {
		if r.Bin.ID != expectedBins[i] {
			t.Fatalf("record %d is for bin %d, expected bin %d", i, r.Bin.ID, expectedBins[i])
		}
		if r.Chrom != "chr1" {
			t.Fatalf("record %d has chromosome %v", i, r.Chrom)
		}
	}

	// bins inside a single node
	for _, i := range []int{0, 1, 3, 4} {
		r := records[i]
		if r.DistinctPaths != 1 || r.Dissimilarity != 0 || r.TotalPaths != 4 {
			t.Fatalf("record %d inside a node should be trivial, got %+v", i, r)
		}
		if r.ChunkStart != r.Bin.Start || r.ChunkEnd != r.Bin.End {
			t.Fatalf("record %d inside a node should cover its bin, got %d-%d", i, r.ChunkStart, r.ChunkEnd)
		}
	}

	// the bin between the anchors
	r := records[2]
	if r.Bin.Start != 11 || r.Bin.End != 15 {
		t.Fatalf("unexpected bin: %+v", r.Bin)
	}
	if r.ChunkStart != 10 || r.ChunkEnd != 21 {
		t.Fatalf("window should be clipped to the anchors, got %d-%d", r.ChunkStart, r.ChunkEnd)
	}
	if r.TotalPaths != 4 || r.DistinctPaths != 2 {
		t.Fatalf("expected 4 paths with 2 distinct, got %d with %d distinct", r.TotalPaths, r.DistinctPaths)
	}
	if math.Abs(r.Dissimilarity-1.0/6.0) > 1e-9 {
		t.Fatalf("expected a mean dissimilarity of 1/6, got %v", r.Dissimilarity)
	}
	if r.From != (Anchor{Name: "a", Start: 1, End: 10}) || r.To != (Anchor{Name: "c", Start: 21, End: 30}) {
		t.Fatalf("unexpected anchors: %+v %+v", r.From, r.To)
	}
}

func TestSweepPrivateStart(t *testing.T) {
	// the reference starts on a private node, and the second anchor spans a whole bin
	g := buildGraph(t, []int{4, 1, 3, 10}, [][]int{{0, 1, 3}, {1, 2, 3}, {1, 3}})
	if _, _, err := g.SelectCommonNodes(3); err != nil {
		t.Fatal(err)
	}
	s, err := NewSweeper(g, g.Paths[0], "chr1", 5)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(s.Anchors, []int{1, 3}) {
		t.Fatalf("unexpected anchors on the reference: %v", s.Anchors)
	}
	records := collect(t, s)
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	// nothing is reported for the first bin, it has no anchor before it
	pair := records[0]
	if pair.Bin.ID != 1 || pair.ChunkStart != 5 || pair.ChunkEnd != 10 {
		t.Fatalf("unexpected window between the anchors: bin %d, %d-%d", pair.Bin.ID, pair.ChunkStart, pair.ChunkEnd)
	}
	if pair.TotalPaths != 3 || pair.DistinctPaths != 2 {
		t.Fatalf("expected 3 paths with 2 distinct, got %d with %d distinct", pair.TotalPaths, pair.DistinctPaths)
	}
	if math.Abs(pair.Dissimilarity-1.0/7.0) > 1e-9 {
		t.Fatalf("expected a mean dissimilarity of 1/7, got %v", pair.Dissimilarity)
	}
	if pair.From != (Anchor{Name: "b", Start: 5, End: 5}) || pair.To != (Anchor{Name: "d", Start: 6, End: 15}) {
		t.Fatalf("unexpected anchors: %+v %+v", pair.From, pair.To)
	}

	// the same bin is reported again as lying inside the second anchor, then the next bin
	for i, binID := range []int{1, 2} {
		r := records[i+1]
		if r.Bin.ID != binID || r.DistinctPaths != 1 || r.Dissimilarity != 0 || r.TotalPaths != 3 {
			t.Fatalf("record %d should be a trivial record for bin %d, got %+v", i+1, binID, r)
		}
		if r.ChunkStart != r.Bin.Start || r.ChunkEnd != r.Bin.End || r.From.Name != "d" || r.To.Name != "d" {
			t.Fatalf("record %d should cover its bin inside node d, got %+v", i+1, r)
		}
	}
}

func TestSweepIdenticalPaths(t *testing.T) {
	// five 3 bp nodes, two identical paths
	nodes := []int{0, 1, 2, 3, 4}
	g := buildGraph(t, []int{3, 3, 3, 3, 3}, [][]int{nodes, nodes})
	if _, _, err := g.SelectCommonNodes(2); err != nil {
		t.Fatal(err)
	}
	s, err := NewSweeper(g, g.Paths[0], "chr1", 4)
	if err != nil {
		t.Fatal(err)
	}
	records := collect(t, s)
	if len(records) == 0 {
		t.Fatal("expected some records")
	}
	for _, r := range records {
		if r.DistinctPaths != 1 || r.Dissimilarity != 0 || r.TotalPaths != 2 {
			t.Fatalf("identical paths should give one distinct path and no dissimilarity, got %+v", r)
		}
	}
}

func TestSweepOffset(t *testing.T) {
	g := buildGraph(t, []int{10, 10, 10}, [][]int{{0, 1, 2}, {0, 1, 2}, {0, 2}})
	g.Paths[0].Offset = 1000
	if _, _, err := g.SelectCommonNodes(3); err != nil {
		t.Fatal(err)
	}
	s, err := NewSweeper(g, g.Paths[0], "chr1", 10)
	if err != nil {
		t.Fatal(err)
	}
	records := collect(t, s)
	if len(records) == 0 {
		t.Fatal("expected some records")
	}
	if records[0].Bin.Start != 1001 || records[0].Bin.End != 1010 {
		t.Fatalf("bins should start at the path offset, got %+v", records[0].Bin)
	}
	if records[0].From.Start != 1001 {
		t.Fatalf("nodes should be placed from the path offset, got %+v", records[0].From)
	}
}

func TestSweepIdempotent(t *testing.T) {
	g := buildGraph(t, []int{7, 3, 12, 5, 9}, [][]int{{0, 1, 2, 3, 4}, {0, 2, 3, 4}, {0, 1, 2, 4}, {0, 2, 4}})
	if _, _, err := g.SelectCommonNodes(0); err != nil {
		t.Fatal(err)
	}
	s, err := NewSweeper(g, g.Paths[0], "chr1", 4)
	if err != nil {
		t.Fatal(err)
	}
	first := collect(t, s)
	second := collect(t, s)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("sweeping the same graph twice gave different records")
	}
}

func TestRecordFeature(t *testing.T) {
	r := &Record{Chrom: "chr2", Bin: PlacedNode{ID: 7}, ChunkStart: 11, ChunkEnd: 20}
	if r.Start() != 10 || r.End() != 20 || r.Len() != 10 {
		t.Fatalf("unexpected feature coordinates: %d %d %d", r.Start(), r.End(), r.Len())
	}
	if r.Name() != "region_7" {
		t.Fatalf("unexpected feature name: %v", r.Name())
	}
	if r.Location().Name() != "chr2" {
		t.Fatalf("unexpected location: %v", r.Location().Name())
	}
}
