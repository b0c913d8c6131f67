package nice

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"log"
	"os"

	"github.com/RWayne93/NICE/dagnn"
	"github.com/RWayne93/NICE/task"
	"github.com/pkg/errors"
)

// NICE is the top level structure and the entry point of the API.
// It is a wrapper around a network and the task it learns, and it collects the
// progress of every run it does.
type NICE struct {
	// state
	NN *dagnn.Network
	Statistics
	run int

	// config
	name   string
	nnConf dagnn.Config
	task   task.Task

	// io
	outEnc OutputEncoder
	encErr manyErr
	buf    bytes.Buffer
	logger *log.Logger
}

// New creates a network for the configured task.
func New(conf Config) (*NICE, error) {
	if conf.Task == nil {
		return nil, errors.New("a task is required")
	}
	ts := conf.Task.Structure()
	if ts.A != conf.NNConf.A || ts.C != conf.NNConf.C {
		return nil, errors.Errorf("task %q needs %d inputs and %d outputs. The network has %d and %d", conf.Task.Name(), ts.A, ts.C, conf.NNConf.A, conf.NNConf.C)
	}
	nn, err := dagnn.New(conf.NNConf)
	if err != nil {
		return nil, errors.WithMessage(err, "unable to create network")
	}

	name := conf.Name
	if name == "" {
		name = conf.Task.Name()
	}

	retVal := &NICE{
		NN:         nn,
		Statistics: makeStatistics(),
		name:       name,
		nnConf:     conf.NNConf,
		task:       conf.Task,
		outEnc:     conf.OutputEncoder,
	}
	retVal.logger = log.New(&retVal.buf, "", log.Ltime)
	nn.SetReporter(retVal)
	return retVal, nil
}

// Name is the name of the current run, as recorded in the Statistics.
func (a *NICE) Name() string { return fmt.Sprintf("%s#%d", a.name, a.run) }

// Task returns the task being learned.
func (a *NICE) Task() task.Task { return a.task }

// Report implements dagnn.Reporter.
func (a *NICE) Report(p dagnn.Progress) {
	log.Printf("gen: %d    error: %0.4f    score: %d / %d", p.Generation, p.Error, p.Fitness, p.Examples)
	a.logger.Printf("gen %d: error %v, fitness %d, learning rate %v", p.Generation, p.Error, p.Fitness, p.LearningRate)
	a.update(a.Name(), p)

	if a.outEnc == nil {
		return
	}
	if err := a.outEnc.Encode(a.NN.Frame(a.name, p)); err != nil {
		a.encErr = append(a.encErr, err)
	}
}

// Learn runs the network on the task until it gets every example right or runs out
// of generations. With minimizeError, a network that gets every example right keeps
// learning until its error falls to the threshold.
//
// Errors from the output encoder do not stop learning. They are returned together
// once the run is over.
func (a *NICE) Learn(minimizeError bool) (dagnn.Result, error) {
	a.run++
	a.buf.Reset()
	a.encErr = nil

	log.Printf("Learning %v. Run %d", a.task.Name(), a.run)
	a.logger.Printf("Learning %v (%d examples) with structure %+v", a.task.Name(), len(a.task.Examples()), a.nnConf.Structure)
	a.logger.SetPrefix("\t")
	res, err := a.NN.Learn(a.task.Examples(), minimizeError)
	a.logger.SetPrefix("")
	if err != nil {
		return res, errors.WithMessage(err, fmt.Sprintf("Learn %v fail", a.task.Name()))
	}
	a.logger.Printf("%v after %d generations", res, res.Generations)

	if a.outEnc != nil {
		if err := a.outEnc.Flush(); err != nil {
			a.encErr = append(a.encErr, err)
		}
	}
	if len(a.encErr) > 0 {
		return res, a.encErr
	}
	return res, nil
}

// Infer compiles the current network.
func (a *NICE) Infer(toLog bool) (Inferer, error) {
	inf, err := dagnn.Infer(a.NN, toLog)
	if err != nil {
		return nil, err
	}
	return inf, nil
}

// ToDot returns the network as a Graphviz graph.
func (a *NICE) ToDot() string { return a.NN.ToDot() }

// ExecLog returns the log of the latest run.
func (a *NICE) ExecLog() string { return a.buf.String() }

// Save learning into filename
func (a *NICE) Save(filename string) error {
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := gob.NewEncoder(f)
	return enc.Encode(a.NN)
}

// Load a network from a filename. The network must fit the task.
func (a *NICE) Load(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return errors.WithStack(err)
	}
	defer f.Close()

	nn := new(dagnn.Network)
	dec := gob.NewDecoder(f)
	if err = dec.Decode(nn); err != nil {
		return errors.WithStack(err)
	}
	ts := a.task.Structure()
	if nn.A != ts.A || nn.C != ts.C {
		return errors.Errorf("loaded network has %d inputs and %d outputs. Task %q needs %d and %d", nn.A, nn.C, a.task.Name(), ts.A, ts.C)
	}
	nn.SetReporter(a)
	a.NN = nn
	a.nnConf = nn.Config
	return nil
}
