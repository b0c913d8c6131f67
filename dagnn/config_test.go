package dagnn

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestDefaultConfig(t *testing.T) {
	if !DefaultConfig(7, 3, 1).IsValid() {
		t.Errorf("Expected Default Config to be correct")
	}
}

func TestConfigInvalid(t *testing.T) {
	mutations := map[string]func(*Config){
		"negative size":  func(c *Config) { c.B = -1 },
		"no units":       func(c *Config) { c.Structure = Structure{} },
		"learning rate":  func(c *Config) { c.LearningRate = 0 },
		"threshold":      func(c *Config) { c.Threshold = -1 },
		"NaN rate":       func(c *Config) { c.LearningRate = math32.NaN() },
		"infinite rate":  func(c *Config) { c.LearningRate = math32.Inf(1) },
		"NaN threshold":  func(c *Config) { c.Threshold = math32.NaN() },
		"inf threshold":  func(c *Config) { c.Threshold = math32.Inf(1) },
		"generations":    func(c *Config) { c.MaxGenerations = -1 },
		"candidates":     func(c *Config) { c.Candidates = 0 },
		"report cadence": func(c *Config) { c.ReportEvery = 0 },
	}
	for name, mutate := range mutations {
		conf := DefaultConfig(2, 1, 1)
		mutate(&conf)
		if conf.IsValid() {
			t.Errorf("Expected config with bad %s to be invalid", name)
		}
	}
}

func TestStructure(t *testing.T) {
	s := Structure{A: 7, B: 3, C: 1}
	if s.Units() != 11 || s.Rows() != 10 || s.Cols() != 4 {
		t.Errorf("Unexpected dimensions for %+v: %d units, %d×%d links", s, s.Units(), s.Rows(), s.Cols())
	}
}
