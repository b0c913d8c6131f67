package shell

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/RWayne93/NICE/dagnn"
	"github.com/RWayne93/NICE/task"
	"github.com/pkg/errors"
)

type Command interface {
	Do(id int, args []string, e *Engine) (int, string, error)
}

type stdlib func(e *Engine) string

type stdlib2 func(e *Engine, args []string) (string, error)

func (f stdlib) Do(id int, args []string, e *Engine) (int, string, error) {
	str := f(e)
	return id, str, nil
}

func (f stdlib2) Do(id int, args []string, e *Engine) (int, string, error) {
	str, err := f(e, args)
	return id, str, err
}

func protocolVersion(e *Engine) string { return "2" }
func name(e *Engine) string            { return e.name }
func version(e *Engine) string         { return e.version }

func listCommands(e *Engine) string {
	cmds := make([]string, 0, len(e.known))
	for c := range e.known {
		cmds = append(cmds, c)
	}
	sort.Strings(cmds)
	return strings.Join(cmds, "\n")
}

func quit(e *Engine) string          { e.done = true; return "" }
func reset(e *Engine) string         { e.nn.Reset(); return "" }
func clearExamples(e *Engine) string { e.examples = nil; e.task = ""; return "" }
func showlinks(e *Engine) string     { return fmt.Sprintf("\n%v", e.nn) }
func dot(e *Engine) string           { return "\n" + e.nn.ToDot() }

func knownCommand(e *Engine, args []string) (string, error) {
	if len(args) == 0 {
		return "", errors.New("Not enough arguments for \"known_command\"")
	}
	if _, ok := e.known[args[0]]; ok {
		return "true", nil
	}
	return "false", nil
}

// rebuild replaces the network with one built from conf. The old network is kept if conf is bad.
func (e *Engine) rebuild(conf dagnn.Config) error {
	nn, err := dagnn.New(conf)
	if err != nil {
		return err
	}
	e.nn = nn
	return nil
}

func structure(e *Engine, args []string) (string, error) {
	s := e.nn.Structure
	if len(args) == 0 {
		return fmt.Sprintf("%d %d %d", s.A, s.B, s.C), nil
	}
	if len(args) != 3 {
		return "", errors.New("\"structure\" takes the input, hidden and output counts")
	}
	sizes, err := parseInts(args)
	if err != nil {
		return "", errors.WithMessage(err, "Unable to parse structure")
	}
	conf := e.nn.Config
	conf.Structure = dagnn.Structure{A: sizes[0], B: sizes[1], C: sizes[2]}
	if err := e.rebuild(conf); err != nil {
		return "", err
	}
	if conf.A != s.A || conf.C != s.C {
		e.examples = nil
		e.task = ""
	}
	return "", nil
}

func weights(e *Engine, args []string) (string, error) {
	if len(args) == 0 {
		w := e.nn.Weights
		return fmt.Sprintf("%v %v %v %v", w[0], w[1], w[2], w[3]), nil
	}
	if len(args) != 4 {
		return "", errors.New("\"weights\" takes one initial weight per quadrant")
	}
	ws, err := parseFloats(args)
	if err != nil {
		return "", errors.WithMessage(err, "Unable to parse weights")
	}
	conf := e.nn.Config
	copy(conf.Weights[:], ws)
	return "", e.rebuild(conf)
}

// setting makes a command that shows a config value, or sets it from the first argument.
func setting(name string, get func(c *dagnn.Config) string, set func(c *dagnn.Config, arg string) error) stdlib2 {
	return func(e *Engine, args []string) (string, error) {
		if len(args) == 0 {
			return get(&e.nn.Config), nil
		}
		conf := e.nn.Config
		if err := set(&conf, args[0]); err != nil {
			return "", errors.WithMessage(err, fmt.Sprintf("Unable to parse %s", name))
		}
		if !conf.IsValid() {
			return "", errors.Errorf("%s %v is not valid", name, args[0])
		}
		e.nn.Config = conf
		return "", nil
	}
}

func floatSetting(name string, field func(c *dagnn.Config) *float32) stdlib2 {
	return setting(name,
		func(c *dagnn.Config) string { return strconv.FormatFloat(float64(*field(c)), 'g', -1, 32) },
		func(c *dagnn.Config, arg string) error {
			f, err := strconv.ParseFloat(arg, 32)
			*field(c) = float32(f)
			return err
		})
}

func intSetting(name string, field func(c *dagnn.Config) *int) stdlib2 {
	return setting(name,
		func(c *dagnn.Config) string { return strconv.Itoa(*field(c)) },
		func(c *dagnn.Config, arg string) (err error) {
			*field(c), err = strconv.Atoi(arg)
			return err
		})
}

func loadTask(e *Engine, args []string) (string, error) {
	if len(args) == 0 {
		if e.task == "" {
			return "none", nil
		}
		return e.task, nil
	}
	t, err := task.ByName(args[0])
	if err != nil {
		return "", err
	}
	ts := t.Structure()
	if ts.A != e.nn.A || ts.C != e.nn.C {
		conf := e.nn.Config
		conf.Structure = ts
		if err := e.rebuild(conf); err != nil {
			return "", err
		}
	}
	e.examples = t.Examples()
	e.task = t.Name()
	s := e.nn.Structure
	return fmt.Sprintf("%d examples for %d %d %d", len(e.examples), s.A, s.B, s.C), nil
}

// example adds an example written as its inputs then its outputs. A "|" may separate them.
func example(e *Engine, args []string) (string, error) {
	var vals []string
	for _, a := range args {
		if a != "|" {
			vals = append(vals, a)
		}
	}
	if len(vals) != e.nn.A+e.nn.C {
		return "", errors.Errorf("Expected %d inputs and %d outputs. Got %d values", e.nn.A, e.nn.C, len(vals))
	}
	fs, err := parseFloats(vals)
	if err != nil {
		return "", errors.WithMessage(err, "Unable to parse example")
	}
	e.examples = append(e.examples, dagnn.Example{Input: fs[:e.nn.A:e.nn.A], Output: fs[e.nn.A:]})
	e.task = "custom"
	return strconv.Itoa(len(e.examples)), nil
}

func test(e *Engine, args []string) (string, error) {
	m, err := e.nn.Test(e.examples)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("error %0.4f score %d / %d", m.Error, m.Fitness, len(e.examples)), nil
}

func forward(e *Engine, args []string) (string, error) {
	in, err := parseFloats(args)
	if err != nil {
		return "", errors.WithMessage(err, "Unable to parse input")
	}
	out, err := e.nn.Forward(in)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	for i, v := range out {
		if i > 0 {
			buf.WriteByte(' ')
		}
		fmt.Fprintf(&buf, "%0.4f", v)
	}
	return buf.String(), nil
}

func learn(e *Engine, args []string) (string, error) {
	var minimize bool
	if len(args) > 0 {
		if args[0] != "minimize" {
			return "", errors.Errorf("Unknown learn mode %q", args[0])
		}
		minimize = true
	}
	if e.Reporter != nil {
		e.nn.SetReporter(e.Reporter)
	}
	res, err := e.nn.Learn(e.examples, minimize)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%v after %d generations: error %0.4f score %d / %d", res, res.Generations, res.Error, res.Fitness, len(e.examples)), nil
}

func link(e *Engine, args []string) (string, error) {
	if len(args) != 2 && len(args) != 3 {
		return "", errors.New("\"link\" takes a row, a column and optionally a weight")
	}
	jk, err := parseInts(args[:2])
	if err != nil {
		return "", errors.WithMessage(err, "Unable to parse link position")
	}
	if len(args) == 2 {
		w, err := e.nn.Link(jk[0], jk[1])
		if err != nil {
			return "", err
		}
		return strconv.FormatFloat(float64(w), 'g', -1, 32), nil
	}
	w, err := strconv.ParseFloat(args[2], 32)
	if err != nil {
		return "", errors.WithMessage(err, "Unable to parse weight")
	}
	return "", e.nn.SetLink(jk[0], jk[1], float32(w))
}

func parseInts(args []string) ([]int, error) {
	retVal := make([]int, len(args))
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return nil, err
		}
		retVal[i] = n
	}
	return retVal, nil
}

func parseFloats(args []string) ([]float32, error) {
	retVal := make([]float32, len(args))
	for i, a := range args {
		f, err := strconv.ParseFloat(a, 32)
		if err != nil {
			return nil, err
		}
		retVal[i] = float32(f)
	}
	return retVal, nil
}

func StandardLib() map[string]Command {
	return map[string]Command{
		"protocol_version": stdlib(protocolVersion),
		"name":             stdlib(name),
		"version":          stdlib(version),
		"list_commands":    stdlib(listCommands),
		"quit":             stdlib(quit),
		"reset":            stdlib(reset),
		"clear_examples":   stdlib(clearExamples),
		"showlinks":        stdlib(showlinks),
		"dot":              stdlib(dot),

		"known_command": stdlib2(knownCommand),
		"structure":     stdlib2(structure),
		"weights":       stdlib2(weights),
		"task":          stdlib2(loadTask),
		"example":       stdlib2(example),
		"test":          stdlib2(test),
		"forward":       stdlib2(forward),
		"learn":         stdlib2(learn),
		"link":          stdlib2(link),

		"learning_rate":   floatSetting("learning_rate", func(c *dagnn.Config) *float32 { return &c.LearningRate }),
		"threshold":       floatSetting("threshold", func(c *dagnn.Config) *float32 { return &c.Threshold }),
		"max_generations": intSetting("max_generations", func(c *dagnn.Config) *int { return &c.MaxGenerations }),
		"candidates":      intSetting("candidates", func(c *dagnn.Config) *int { return &c.Candidates }),
	}
}
