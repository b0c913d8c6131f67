package nice

import (
	"io"

	"github.com/RWayne93/NICE/dagnn"
	"github.com/RWayne93/NICE/task"
)

type Config struct {
	Name   string
	NNConf dagnn.Config

	// Task supplies the examples. Its input and output counts must agree with NNConf.
	Task task.Task

	// extensions
	OutputEncoder OutputEncoder
}

// OutputEncoder encodes the progress of a learning network as whatever.
//
// An example OutputEncoder is the GifEncoder. Another example would be a websocket feed.
type OutputEncoder interface {
	Encode(f dagnn.Frame) error
	Flush() error
}

// Inferer is anything that can infer given an input.
type Inferer interface {
	Infer(a []float32) ([]float32, error)
	io.Closer
}

// ExecLogger is anything that can return the execution log.
type ExecLogger interface {
	ExecLog() string
}
