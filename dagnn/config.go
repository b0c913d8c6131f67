package dagnn

import (
	"github.com/chewxy/math32"
	"github.com/pkg/errors"
)

// Structure is the shape of a network: A inputs, B hidden units and C outputs.
type Structure struct {
	A, B, C int
}

// Units is the length of the node vector.
func (s Structure) Units() int { return s.A + s.B + s.C }

// Rows is the number of units that may send a link (inputs and hidden units).
func (s Structure) Rows() int { return s.A + s.B }

// Cols is the number of units that may receive a link (hidden units and outputs).
func (s Structure) Cols() int { return s.B + s.C }

func (s Structure) validate() error {
	if s.A < 0 || s.B < 0 || s.C < 0 {
		return errors.Errorf("invalid structure %+v: sizes must not be negative", s)
	}
	if s.Units() < 1 {
		return errors.Errorf("invalid structure %+v: at least one unit is required", s)
	}
	return nil
}

// Quadrant names one of the four blocks of the link matrix.
type Quadrant int

const (
	InputHidden Quadrant = iota
	InputOutput
	HiddenHidden
	HiddenOutput
)

// Config configures the network and its learning procedure.
type Config struct {
	Structure

	Weights [4]float32 // initial weight of each Quadrant

	LearningRate   float32 // initial step size
	Threshold      float32 // error threshold when minimizing error
	MaxGenerations int     // search budget
	Candidates     int     // candidate edges sampled per generation
	ReportEvery    int     // report progress every n generations

	Seed int64 // 0 seeds from the clock
}

// DefaultConfig returns the configuration the canonical experiments use.
func DefaultConfig(a, b, c int) Config {
	return Config{
		Structure: Structure{A: a, B: b, C: c},
		Weights:   [4]float32{0, 0, 0, 1},

		LearningRate:   0.01,
		Threshold:      2,
		MaxGenerations: 10000,
		Candidates:     1,
		ReportEvery:    100,
	}
}

func (conf Config) IsValid() bool { return conf.validate() == nil }

func (conf Config) validate() error {
	if err := conf.Structure.validate(); err != nil {
		return err
	}
	switch {
	case !finite(conf.LearningRate) || !finite(conf.Threshold):
		return errors.Errorf("learning rate and threshold must be finite. Got %v and %v", conf.LearningRate, conf.Threshold)
	case conf.LearningRate <= 0:
		return errors.Errorf("learning rate must be positive. Got %v", conf.LearningRate)
	case conf.Threshold < 0:
		return errors.Errorf("threshold must not be negative. Got %v", conf.Threshold)
	case conf.MaxGenerations < 0:
		return errors.Errorf("max generations must not be negative. Got %d", conf.MaxGenerations)
	case conf.Candidates < 1:
		return errors.Errorf("at least one candidate per generation is required. Got %d", conf.Candidates)
	case conf.ReportEvery < 1:
		return errors.Errorf("report interval must be positive. Got %d", conf.ReportEvery)
	}
	return nil
}

func finite(f float32) bool { return !math32.IsNaN(f) && !math32.IsInf(f, 0) }
