package graph

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mholt/archiver"
	"github.com/will-rowe/gfa"
	"github.com/will-rowe/pansel/src/version"
)

// SpuriousMarker flags synthetic paths (e.g. the minigraph backbone), paths containing it in their name are skipped
const SpuriousMarker = "_MINIGRAPH_"

// LoadGFA reads a GFA file into a Graph, decompressing it first if the extension is a known compression format
func LoadGFA(fileName string) (*Graph, error) {
	fh, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("can't open gfa file: %v", err)
	}
	defer fh.Close()

	// plain GFA files are read directly
	format, err := archiver.ByExtension(fileName)
	if err != nil {
		return ReadGFA(fh)
	}
	decompressor, ok := format.(archiver.Decompressor)
	if !ok {
		return nil, fmt.Errorf("gfa file is an archive, not a compressed file: %v", fileName)
	}
	pr, pw := io.Pipe()
	defer pr.Close()
	go func() {
		pw.CloseWithError(decompressor.Decompress(fh, pw))
	}()
	return ReadGFA(pr)
}

// ReadGFA builds a Graph from the S, P and W lines of a GFA stream
func ReadGFA(r io.Reader) (*Graph, error) {
	graph := NewGraph()
	reader := bufio.NewReader(r)
	lineNumber := 0
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("error reading line in gfa file: %v", err)
		}
		if len(line) != 0 {
			lineNumber++
			if perr := graph.parseLine(bytes.TrimRight(line, "\r\n")); perr != nil {
				return nil, fmt.Errorf("line %d: %w", lineNumber, perr)
			}
		}
		if err == io.EOF {
			break
		}
	}
	return graph, nil
}

// parseLine dispatches a GFA line on its record type
func (graph *Graph) parseLine(line []byte) error {
	if len(line) == 0 {
		return nil
	}
	switch line[0] {
	case 'S':
		return graph.parseSegment(strings.Fields(string(line)))
	case 'P':
		return graph.parsePath(strings.Fields(string(line)))
	case 'W':
		return graph.parseWalk(strings.Fields(string(line)))
	}
	return nil
}

// parseSegment adds a node, using the LN tag for the size if the sequence is omitted
func (graph *Graph) parseSegment(fields []string) error {
	if len(fields) < 3 {
		return fmt.Errorf("segment line has %d fields: %w", len(fields), ErrMalformed)
	}
	size := len(fields[2])
	if fields[2] == "*" {
		size = -1
		for _, tag := range fields[3:] {
			if strings.HasPrefix(tag, "LN:i:") {
				ln, err := strconv.Atoi(tag[5:])
				if err != nil {
					return fmt.Errorf("bad length tag for segment %v: %w", fields[1], ErrMalformed)
				}
				size = ln
			}
		}
		if size == -1 {
			return fmt.Errorf("segment %v has no sequence and no LN tag: %w", fields[1], ErrMalformed)
		}
	}
	_, err := graph.AddNode(fields[1], size)
	return err
}

// appendNode adds a named node to a path
func (graph *Graph) appendNode(path *Path, name string) error {
	nodeID, ok := graph.nodeLookup[name]
	if !ok {
		return fmt.Errorf("path %v uses undeclared segment %v: %w", path.Label(), name, ErrMalformed)
	}
	path.Append(nodeID)
	return nil
}

// parsePath adds a P line path, the orientation of each segment is dropped
func (graph *Graph) parsePath(fields []string) error {
	if len(fields) < 3 {
		return fmt.Errorf("path line has %d fields: %w", len(fields), ErrMalformed)
	}
	if strings.Contains(fields[1], SpuriousMarker) {
		return nil
	}
	path := graph.AddOrGetPath(fields[1], "", "", 0)
	for _, seg := range strings.Split(fields[2], ",") {
		if len(seg) < 2 {
			return fmt.Errorf("bad segment %q in path %v: %w", seg, fields[1], ErrMalformed)
		}
		if err := graph.appendNode(path, seg[:len(seg)-1]); err != nil {
			return err
		}
	}
	return nil
}

// parseWalk adds a W line to the path keyed by sample, haplotype and sequence
func (graph *Graph) parseWalk(fields []string) error {
	if len(fields) < 7 {
		return fmt.Errorf("walk line has %d fields: %w", len(fields), ErrMalformed)
	}
	if strings.Contains(fields[1], SpuriousMarker) {
		return nil
	}
	offset, err := strconv.Atoi(fields[4])
	if err != nil {
		return fmt.Errorf("bad start position %q for walk %v: %w", fields[4], fields[1], ErrMalformed)
	}
	path := graph.AddOrGetPath(fields[1], fields[2], fields[3], offset)
	walk := fields[6]
	start := 0
	for i := 0; i <= len(walk); i++ {
		if i < len(walk) && walk[i] != '>' && walk[i] != '<' {
			continue
		}
		if i > start {
			if err := graph.appendNode(path, walk[start:i]); err != nil {
				return err
			}
		}
		start = i + 1
	}
	return nil
}

// SaveAnchorsAsGFA writes the common nodes, and each path reduced to the common nodes it visits, in GFA format
func (graph *Graph) SaveAnchorsAsGFA(fileName string) (int, error) {
	if graph.PathCounts == nil {
		return 0, fmt.Errorf("common nodes have not been selected: %w", ErrPrecondition)
	}
	t := time.Now()
	stamp := fmt.Sprintf("anchor graph created by pansel (version %v) at: %v", version.GetVersion(), t.Format("Mon Jan _2 15:04:05 2006"))
	msg := fmt.Sprintf("segments are visited by at least %d paths", graph.Threshold)
	newGFA := gfa.NewGFA()
	_ = newGFA.AddVersion(1)
	newGFA.AddComment([]byte(stamp))
	newGFA.AddComment([]byte(msg))
	for _, nodeID := range graph.CommonNodes {
		node := graph.Nodes[nodeID]
		seg, err := gfa.NewSegment([]byte(node.Name), []byte("*"))
		if err != nil {
			return 0, err
		}

		// the writer emits LN:i from the segment length, which NewSegment takes from the "*" placeholder
		seg.Length = node.Size
		if err := seg.Add(newGFA); err != nil {
			return 0, fmt.Errorf("can't add segment %v to anchor graph: %w", node.Name, err)
		}
	}
	pathsWritten := 0
	for _, path := range graph.Paths {
		anchors := path.OrderNodes(graph.CommonNodes)
		if len(anchors) == 0 {
			continue
		}
		segments, overlaps := make([][]byte, len(anchors)), make([][]byte, len(anchors))
		for i, nodeID := range anchors {
			segments[i] = []byte(graph.Nodes[nodeID].Name + "+")
			overlaps[i] = []byte("0M")
		}
		gfaPath, err := gfa.NewPath([]byte(path.Label()), segments, overlaps)
		if err != nil {
			return 0, err
		}
		if err := gfaPath.Add(newGFA); err != nil {
			return 0, fmt.Errorf("can't add path %v to anchor graph: %w", path.Label(), err)
		}
		pathsWritten++
	}
	outfile, err := os.Create(fileName)
	if err != nil {
		return 0, err
	}
	defer outfile.Close()
	writer, err := gfa.NewWriter(outfile, newGFA)
	if err != nil {
		return 0, err
	}
	return pathsWritten, newGFA.WriteGFAContent(writer)
}
