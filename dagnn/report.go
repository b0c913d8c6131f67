package dagnn

import "log"

// Progress is what Learn reports periodically and once it stops.
type Progress struct {
	Generation int
	Metrics
	Examples     int
	LearningRate float32
	Done         bool
}

// Reporter receives progress. Nothing it does feeds back into learning.
type Reporter interface {
	Report(p Progress)
}

// ReporterFunc is a function that implements Reporter.
type ReporterFunc func(p Progress)

func (f ReporterFunc) Report(p Progress) { f(p) }

type logReporter struct{}

func (logReporter) Report(p Progress) {
	log.Printf("gen: %d    error: %0.4f    score: %d / %d", p.Generation, p.Error, p.Fitness, p.Examples)
}

func (n *Network) report(p Progress) {
	if n.reporter == nil {
		logReporter{}.Report(p)
		return
	}
	n.reporter.Report(p)
}

// Frame is a snapshot of a network being trained, for rendering.
type Frame struct {
	Name string
	Structure
	Progress
	Links [][]float32
}

// Frame snapshots the network with the given progress.
func (n *Network) Frame(name string, p Progress) Frame {
	return Frame{
		Name:      name,
		Structure: n.Structure,
		Progress:  p,
		Links:     n.LinkRows(),
	}
}
