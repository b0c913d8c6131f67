// Package task provides sets of training examples for a dagnn.Network.
package task

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/RWayne93/NICE/dagnn"
	"github.com/pkg/errors"
)

// Task is anything that can supply examples for a network with a given structure.
type Task interface {
	Name() string

	// Structure is the structure the examples are meant for. The number of hidden
	// units is a suggestion; only A and C are fixed by the examples.
	Structure() dagnn.Structure
	Examples() dagnn.Examples
}

type set struct {
	name string
	s    dagnn.Structure
	ex   dagnn.Examples
}

func (t *set) Name() string               { return t.name }
func (t *set) Structure() dagnn.Structure { return t.s }
func (t *set) Examples() dagnn.Examples   { return t.ex }

func (t *set) Format(s fmt.State, c rune) {
	fmt.Fprintf(s, "%s (%d-%d-%d, %d examples)", t.name, t.s.A, t.s.B, t.s.C, len(t.ex))
}

// New creates a task from examples. The examples are checked against s.
func New(name string, s dagnn.Structure, ex dagnn.Examples) (Task, error) {
	for i, e := range ex {
		if len(e.Input) != s.A || len(e.Output) != s.C {
			return nil, errors.Errorf("example %d of %q has %d inputs and %d outputs. Expected %d and %d", i, name, len(e.Input), len(e.Output), s.A, s.C)
		}
	}
	return &set{name: name, s: s, ex: ex}, nil
}

// SelectBit is the task of picking one of four data bits. Each example is a 7 bit
// number n in [64, 128); its low two bits select which of bits 1..4 (counted from the
// most significant) is the target.
func SelectBit() Task {
	ex := make(dagnn.Examples, 0, 64)
	for n := 64; n < 128; n++ {
		in := EncodeBits(n, make([]float32, 7))
		ex = append(ex, dagnn.Example{Input: in, Output: []float32{in[1+n%4]}})
	}
	return &set{name: "selectbit", s: dagnn.Structure{A: 7, B: 3, C: 1}, ex: ex}
}

func gate(name string, hidden int, f func(a, b bool) bool) Task {
	ex := make(dagnn.Examples, 0, 4)
	for n := 0; n < 4; n++ {
		in := EncodeBits(n, make([]float32, 2))
		ex = append(ex, dagnn.Example{Input: in, Output: []float32{b2f(f(in[0] == 1, in[1] == 1))}})
	}
	return &set{name: name, s: dagnn.Structure{A: 2, B: hidden, C: 1}, ex: ex}
}

func AND() Task { return gate("and", 1, func(a, b bool) bool { return a && b }) }
func OR() Task  { return gate("or", 1, func(a, b bool) bool { return a || b }) }
func XOR() Task { return gate("xor", 2, func(a, b bool) bool { return a != b }) }

// Parity is the n bit parity task: the output is 1 when an odd number of inputs are set.
func Parity(n int) (Task, error) {
	if n < 1 || n > 16 {
		return nil, errors.Errorf("parity of %d bits is not supported. Use 1 to 16 bits", n)
	}
	ex := make(dagnn.Examples, 0, 1<<uint(n))
	for i := 0; i < 1<<uint(n); i++ {
		in := EncodeBits(i, make([]float32, n))
		var odd bool
		for _, b := range in {
			odd = odd != (b == 1)
		}
		ex = append(ex, dagnn.Example{Input: in, Output: []float32{b2f(odd)}})
	}
	return &set{name: fmt.Sprintf("parity%d", n), s: dagnn.Structure{A: n, B: n, C: 1}, ex: ex}, nil
}

// ByName looks up one of the built in tasks. Parity takes its width as a suffix,
// as in "parity3".
func ByName(name string) (Task, error) {
	switch name := strings.ToLower(name); {
	case name == "selectbit":
		return SelectBit(), nil
	case name == "and":
		return AND(), nil
	case name == "or":
		return OR(), nil
	case name == "xor":
		return XOR(), nil
	case strings.HasPrefix(name, "parity"):
		n, err := strconv.Atoi(strings.TrimPrefix(name, "parity"))
		if err != nil {
			return nil, errors.Wrapf(err, "bad parity width in %q", name)
		}
		return Parity(n)
	}
	return nil, errors.Errorf("unknown task %q", name)
}

// Names lists the tasks ByName knows about.
func Names() []string { return []string{"selectbit", "and", "or", "xor", "parity<n>"} }

func b2f(b bool) float32 {
	if b {
		return 1
	}
	return 0
}
