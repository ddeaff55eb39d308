// Package pipeline strings the pansel processes together. Each process reads from the channel of the one
// before it (see Patterns for composable concurrent pipelines in Go, https://blog.gopheracademy.com/advent-2015/composable-pipelines-improvements/)
package pipeline

import "sync"

// BUFFERSIZE is the size of the buffer used by the record channels
const BUFFERSIZE int = 64

// process is the interface used by pipeline
type process interface {
	Run()
}

// Pipeline holds the processes in the order their channels are connected
type Pipeline struct {
	processes []process
}

// NewPipeline is the pipeline constructor
func NewPipeline() *Pipeline {
	return &Pipeline{}
}

// AddProcesses is a method to add processes to the end of the pipeline
func (p *Pipeline) AddProcesses(procs ...process) {
	p.processes = append(p.processes, procs...)
}

// Run starts every process and returns once they have all finished
// Note: the last process runs in the foreground, the rest are drained by it
func (p *Pipeline) Run() {
	if len(p.processes) == 0 {
		return
	}
	var wg sync.WaitGroup
	last := len(p.processes) - 1
	for _, proc := range p.processes[:last] {
		wg.Add(1)
		go func(proc process) {
			defer wg.Done()
			proc.Run()
		}(proc)
	}
	p.processes[last].Run()
	wg.Wait()
}

// GetNumProcesses is a method to return the number of processes registered in a pipeline
func (p *Pipeline) GetNumProcesses() int {
	return len(p.processes)
}
