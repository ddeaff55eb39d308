package pipeline

import (
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/will-rowe/pansel/src/graph"
	"github.com/will-rowe/pansel/src/version"
)

///////////////////////////////////////////////////////////////////////////////////////////////

/*
TEST DATA
*/
// three 10 bp segments, a-b-c on three haplotypes of chr1 and a-c on the fourth, plus a short chr2
var testGFA = strings.Join([]string{
	"H\tVN:Z:1.1",
	"S\ta\tAAAAAAAAAA",
	"S\tb\tCCCCCCCCCC",
	"S\tc\tGGGGGGGGGG",
	"S\td\tTTTTTTTTTT",
	"W\tref\t0\tchr1\t0\t30\t>a>b>c",
	"W\tref\t0\tchr2\t0\t10\t>d",
	"W\thg1\t1\tchr1\t0\t30\t>a>b>c",
	"W\thg1\t2\tchr1\t0\t30\t>a<b>c",
	"W\thg2\t1\tchr1\t0\t20\t>a>c",
	"W\thg2\t1\tchr2\t0\t10\t>d",
	"W\thg3\t1\tchr2\t0\t10\t>d",
}, "\n") + "\n"

/*
TEST PARAMETERS
*/
func testParameters(dir string) *Info {
	return &Info{
		Version:  version.GetVersion(),
		NumProc:  2,
		GFA:      filepath.Join(dir, "test.gfa"),
		MinPaths: 0,
		Windows: WindowsCmd{
			Reference: "ref",
			ChunkSize: 5,
			BED:       true,
			OutFile:   filepath.Join(dir, "windows.bed"),
		},
		Anchors: AnchorsCmd{OutFile: filepath.Join(dir, "anchors.gfa")},
		Indexer: IndexCmd{OutFile: filepath.Join(dir, "test.idx")},
	}
}

func setupTmpDir(t *testing.T) string {
	dir, err := ioutil.TempDir("", "pansel-pipeline")
	if err != nil {
		t.Fatal(err)
	}
	if err := ioutil.WriteFile(filepath.Join(dir, "test.gfa"), []byte(testGFA), 0644); err != nil {
		t.Fatal(err)
	}
	return dir
}

///////////////////////////////////////////////////////////////////////////////////////////////

/*
DUMMY PIPELINE
*/

type ComponentA struct {
	input  []int
	output chan int
}

func NewComponentA(i []int) *ComponentA {
	return &ComponentA{input: i, output: make(chan int)}
}

func (ComponentA *ComponentA) Run() {
	defer close(ComponentA.output)
	for _, input := range ComponentA.input {
		ComponentA.output <- input
	}
}

type ComponentB struct {
	input    chan int
	addition int
	results  []int
}

func NewComponentB(i int) *ComponentB {
	return &ComponentB{addition: i}
}

func (ComponentB *ComponentB) Connect(previous *ComponentA) {
	ComponentB.input = previous.output
}

func (ComponentB *ComponentB) Run() {
	results := []int{}
	for input := range ComponentB.input {
		results = append(results, (input + ComponentB.addition))
	}
	ComponentB.results = results
}

///////////////////////////////////////////////////////////////////////////////////////////////

/*
TESTS
*/

func TestPipeline(t *testing.T) {
	inputValues := []int{1, 2, 3, 4}
	expectedOutput := []int{11, 12, 13, 14}
	a := NewComponentA(inputValues)
	b := NewComponentB(10)
	newPipeline := NewPipeline()
	newPipeline.AddProcesses(a, b)
	b.Connect(a)
	if newPipeline.GetNumProcesses() != 2 {
		t.Fatal("did not add correct number of processes to pipeline")
	}
	newPipeline.Run()
	if len(expectedOutput) != len(b.results) {
		t.Fatal("pipeline did not produce expected output")
	}
	for i, val := range b.results {
		if val != expectedOutput[i] {
			t.Fatal("pipeline did not produce expected output")
		}
	}
}

func TestReferenceTargets(t *testing.T) {
	g, err := graph.ReadGFA(strings.NewReader(testGFA))
	if err != nil {
		t.Fatal(err)
	}
	targets, err := ReferenceTargets(g, "ref", "ignored")
	if err != nil {
		t.Fatal(err)
	}
	if len(targets) != 2 || targets[0].Chrom != "chr1" || targets[1].Chrom != "chr2" {
		t.Fatalf("expected chr1 and chr2 as targets, got %+v", targets)
	}
	if _, err := ReferenceTargets(g, "missing", ""); !errors.Is(err, graph.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}

	// P line paths are swept as they are, labelled with the chrom if given
	g = graph.NewGraph()
	g.AddNode("a", 1)
	g.AddOrGetPath("p1", "", "", 0).Append(0)
	targets, err = ReferenceTargets(g, "p1", "")
	if err != nil || len(targets) != 1 || targets[0].Chrom != "p1" {
		t.Fatalf("unexpected targets for a P line path: %+v (%v)", targets, err)
	}
	targets, _ = ReferenceTargets(g, "p1", "chrX")
	if targets[0].Chrom != "chrX" {
		t.Fatalf("chrom label not used: %+v", targets)
	}
}

func TestWindowsPipeline(t *testing.T) {
	dir := setupTmpDir(t)
	defer os.RemoveAll(dir)
	info := testParameters(dir)

	// index the graph, then sweep from both the gfa and the index
	graphReader := NewGraphReader(info)
	indexWriter := NewIndexWriter(info)
	indexWriter.Connect(graphReader)
	indexPipeline := NewPipeline()
	indexPipeline.AddProcesses(graphReader, indexWriter)
	indexPipeline.Run()

	outputs := []string{}
	for _, fromIndex := range []bool{false, true} {
		if fromIndex {
			info.Index = info.Indexer.OutFile
		}
		graphReader := NewGraphReader(info)
		anchorFinder := NewAnchorFinder(info)
		windowSweeper := NewWindowSweeper(info)
		recordWriter := NewRecordWriter(info)
		anchorFinder.Connect(graphReader)
		windowSweeper.Connect(anchorFinder)
		recordWriter.Connect(windowSweeper)
		windowsPipeline := NewPipeline()
		windowsPipeline.AddProcesses(graphReader, anchorFinder, windowSweeper, recordWriter)
		windowsPipeline.Run()
		if recordWriter.CollectOutput() == 0 {
			t.Fatal("no records were written")
		}
		out, err := ioutil.ReadFile(info.Windows.OutFile)
		if err != nil {
			t.Fatal(err)
		}
		outputs = append(outputs, string(out))
	}
	if outputs[0] != outputs[1] {
		t.Fatalf("gfa and index runs differ:\n%v\n%v", outputs[0], outputs[1])
	}
	lines := strings.Split(strings.TrimSpace(outputs[0]), "\n")
	if !strings.HasPrefix(lines[0], "chr1\t") || !strings.HasPrefix(lines[len(lines)-1], "chr2\t") {
		t.Fatalf("records should be written in sequence order:\n%v", outputs[0])
	}
	for _, line := range lines {
		if fields := strings.Split(line, "\t"); len(fields) != 6 {
			t.Fatalf("BED line should have 6 fields: %q", line)
		}
	}
}
