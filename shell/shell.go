// Package shell is a line oriented text protocol for driving a network by hand or
// from another program. It is modelled on the Go Text Protocol: every command
// may be preceded by a numeric id and is answered with "= result" or "? error",
// followed by a blank line.
package shell

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/RWayne93/NICE/dagnn"
	"github.com/pkg/errors"
)

type Engine struct {
	nn       *dagnn.Network
	examples dagnn.Examples
	task     string

	known map[string]Command

	ch   chan string
	ret  chan string
	done bool

	// Reporter receives the progress of learn. If nil the network logs it.
	Reporter      dagnn.Reporter
	name, version string
}

// New creates an engine with a fresh network built from conf. If known is nil the
// standard command set is used.
func New(conf dagnn.Config, name, version string, known map[string]Command) (*Engine, error) {
	nn, err := dagnn.New(conf)
	if err != nil {
		return nil, err
	}
	if known == nil {
		known = StandardLib()
	}
	return &Engine{
		nn:      nn,
		known:   known,
		name:    name,
		version: version,
	}, nil
}

// Network returns the network being driven.
func (e *Engine) Network() *dagnn.Network { return e.nn }

// Examples returns the examples loaded so far.
func (e *Engine) Examples() dagnn.Examples { return e.examples }

// Start runs the engine in its own goroutine. Every command sent on input that is
// not blank gets exactly one reply on output. After quit is answered, output is closed.
func (e *Engine) Start() (input chan<- string, output <-chan string) {
	e.ch = make(chan string)
	e.ret = make(chan string)
	go e.start()
	return e.ch, e.ret
}

func (e *Engine) start() {
	defer close(e.ret)
	for cmd := range e.ch {
		reply, ok := e.Exec(cmd)
		if !ok {
			continue
		}
		e.ret <- reply
		if e.done {
			return
		}
	}
}

// Run reads commands from r and writes the replies to w until r is exhausted or
// quit is received.
func (e *Engine) Run(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		reply, ok := e.Exec(scanner.Text())
		if !ok {
			continue
		}
		if _, err := io.WriteString(w, reply); err != nil {
			return errors.WithStack(err)
		}
		if e.done {
			return nil
		}
	}
	return errors.WithStack(scanner.Err())
}

// Exec runs one command and returns its reply. ok is false if the line holds no
// command, in which case there is nothing to reply.
func (e *Engine) Exec(cmd string) (reply string, ok bool) {
	id, x, args, err := e.parse(cmd)
	if x == nil && err == nil {
		return "", false
	}
	if err != nil {
		return handleErr(id, err), true
	}
	id, result, err := x.Do(id, args, e)
	return handleResult(id, result, err), true
}

func (e *Engine) parse(cmd string) (id int, x Command, args []string, err error) {
	cmd = preprocess(cmd)
	tokens := strings.Fields(cmd)
	id = -1
	if len(tokens) == 0 {
		return id, nil, nil, nil
	}
	if n, err := strconv.Atoi(tokens[0]); err == nil {
		// we've consumed ID
		id = n
		tokens = tokens[1:]
	}

	if len(tokens) == 0 {
		return id, nil, nil, nil // an id on its own is ignored
	}

	var ok bool
	if x, ok = e.known[tokens[0]]; !ok {
		return id, nil, nil, errors.Errorf("Unknown command %q", tokens[0])
	}
	if len(tokens) > 1 {
		args = tokens[1:]
	}
	return
}

// preprocess lowercases the command and drops comments.
func preprocess(a string) string {
	if i := strings.IndexByte(a, '#'); i >= 0 {
		a = a[:i]
	}
	return strings.ToLower(strings.TrimSpace(a))
}

func handleErr(id int, err error) string {
	if id != -1 {
		return fmt.Sprintf("? %d %v\n\n", id, err)
	}
	return fmt.Sprintf("? %v\n\n", err)
}

func handleResult(id int, result string, err error) string {
	if err != nil {
		return handleErr(id, err)
	}

	if id != -1 {
		return fmt.Sprintf("= %d %v\n\n", id, result)
	}
	return fmt.Sprintf("= %v\n\n", result)
}
