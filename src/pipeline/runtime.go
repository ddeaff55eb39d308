package pipeline

// Info stores the runtime information
type Info struct {
	Version   string
	NumProc   int
	Profiling bool
	GFA       string // graph file to parse
	Index     string // msgpack index to load instead of parsing a GFA
	MinPaths  int    // path count threshold for common nodes, 0 to infer it

	Windows WindowsCmd
	Anchors AnchorsCmd
	Indexer IndexCmd
}

// WindowsCmd stores the runtime info for the windows command
type WindowsCmd struct {
	Reference string
	Chrom     string // BED chromosome label, defaults to the sequence ID of the reference
	ChunkSize int
	BED       bool
	Bgzip     bool
	OutFile   string // empty for STDOUT
	PlotFile  string
}

// AnchorsCmd stores the runtime info for the anchors command
type AnchorsCmd struct {
	OutFile string
}

// IndexCmd stores the runtime info for the index command
type IndexCmd struct {
	OutFile string
}
