package graph

import (
	"fmt"
	"io/ioutil"

	"github.com/will-rowe/pansel/src/version"
	"gopkg.in/vmihailenco/msgpack.v2"
)

// index is the on-disk form of a graph, derived fields are recomputed after loading
type index struct {
	Version string
	Nodes   []Node
	Paths   []*Path
}

// Dump is a method to save the graph nodes and paths to disk
func (graph *Graph) Dump(path string) error {
	b, err := msgpack.Marshal(&index{
		Version: version.GetVersion(),
		Nodes:   graph.Nodes,
		Paths:   graph.Paths,
	})
	if err != nil {
		return err
	}
	return ioutil.WriteFile(path, b, 0644)
}

// Load reads a graph saved with Dump
func Load(path string) (*Graph, error) {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return nil, fmt.Errorf("pansel index appears empty: %v", path)
	}
	idx := new(index)
	if err := msgpack.Unmarshal(b, idx); err != nil {
		return nil, err
	}
	if idx.Version != version.GetVersion() {
		return nil, fmt.Errorf("the index was created with a different version of pansel (%v, you are currently using version %v)", idx.Version, version.GetVersion())
	}
	graph := NewGraph()
	for _, node := range idx.Nodes {
		if _, err := graph.AddNode(node.Name, node.Size); err != nil {
			return nil, err
		}
	}
	for _, path := range idx.Paths {
		for _, nodeID := range path.Nodes {
			if nodeID < 0 || nodeID >= len(graph.Nodes) {
				return nil, fmt.Errorf("path %v uses unknown node %d: %w", path.Label(), nodeID, ErrMalformed)
			}
		}
		path.reindex()
		graph.Paths = append(graph.Paths, path)
	}
	return graph, nil
}
