package dagnn

import (
	"bytes"
	"fmt"
	"math/rand"
	"time"

	"github.com/pkg/errors"
	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
	"gorgonia.org/vecf32"
)

var Float = G.Float32

// Example is a single training pair.
type Example struct {
	Input  []float32
	Output []float32
}

// Examples is an ordered set of training pairs.
type Examples []Example

func (ex Examples) validate(s Structure) error {
	for i, e := range ex {
		if len(e.Input) != s.A {
			return errors.Errorf("example %d: expected %d inputs. Got %d", i, s.A, len(e.Input))
		}
		if len(e.Output) != s.C {
			return errors.Errorf("example %d: expected %d outputs. Got %d", i, s.C, len(e.Output))
		}
	}
	return nil
}

// Network is a feed-forward network whose links form a directed acyclic graph over
// the inputs, hidden units and outputs, in that order.
//
// Unit j may send to unit A+k iff j < A, or j = A+i is a hidden unit and k > i.
// The links are stored as a (A+B)×(B+C) matrix. Row j holds the outgoing weights
// of unit j, column k the incoming weights of unit A+k.
type Network struct {
	Config

	nodes   []float32
	links   *tensor.Dense // nil when the matrix is empty
	backing []float32
	rows    [][]float32

	r        *rand.Rand
	reporter Reporter
}

// New creates a network with every quadrant of the link matrix set to its initial weight.
func New(conf Config) (*Network, error) {
	if err := conf.validate(); err != nil {
		return nil, err
	}
	retVal := &Network{
		Config: conf,
		nodes:  make([]float32, conf.Units()),
	}
	retVal.init()
	if err := retVal.CheckAcyclic(); err != nil {
		return nil, errors.WithMessage(err, "freshly initialized network is invalid")
	}
	return retVal, nil
}

func (n *Network) init() {
	r, c := n.Rows(), n.Cols()
	n.backing = make([]float32, r*c)
	n.links = nil
	if r*c > 0 {
		n.links = tensor.New(tensor.WithShape(r, c), tensor.WithBacking(n.backing))
	}
	n.rows = MakeIterator(n.backing, r, c)
	n.fill()

	seed := n.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	n.r = rand.New(rand.NewSource(seed))
}

func (n *Network) fill() {
	A, B := n.A, n.B
	for j, row := range n.rows {
		for k := range row {
			var q Quadrant
			switch {
			case j < A && k < B:
				q = InputHidden
			case j < A:
				q = InputOutput
			case k < B:
				q = HiddenHidden
			default:
				q = HiddenOutput
			}
			if q == HiddenHidden && k <= j-A {
				row[k] = 0
				continue
			}
			row[k] = n.Weights[q]
		}
	}
}

// Reset restores every link to its initial quadrant weight.
func (n *Network) Reset() { n.fill() }

// SetReporter sets where progress is reported during Learn. A nil Reporter logs.
func (n *Network) SetReporter(r Reporter) { n.reporter = r }

// Nodes returns a copy of the node vector as left by the last forward pass.
func (n *Network) Nodes() []float32 {
	retVal := make([]float32, len(n.nodes))
	copy(retVal, n.nodes)
	return retVal
}

// Forward propagates a single input and returns a copy of the outputs.
func (n *Network) Forward(input []float32) ([]float32, error) {
	if len(input) != n.A {
		return nil, errors.Errorf("expected %d inputs. Got %d", n.A, len(input))
	}
	expected := borrowVec(n.C)
	n.forward(n.rows, input, expected)
	returnVec(expected)

	retVal := make([]float32, n.C)
	copy(retVal, n.nodes[n.A+n.B:])
	return retVal, nil
}

// Test runs every example through the network and returns the cumulative metrics.
func (n *Network) Test(examples Examples) (Metrics, error) {
	if err := examples.validate(n.Structure); err != nil {
		return Metrics{}, err
	}
	return n.test(n.rows, examples), nil
}

func (n *Network) test(rows [][]float32, examples Examples) (retVal Metrics) {
	for _, ex := range examples {
		retVal = retVal.add(n.forward(rows, ex.Input, ex.Output))
	}
	return
}

// testWith evaluates the examples as if links[j][k] were increased by delta.
// The live links are left untouched.
func (n *Network) testWith(examples Examples, j, k int, delta float32) Metrics {
	r, c := n.Rows(), n.Cols()
	scratch := borrowVec(len(n.backing))
	copy(scratch, n.backing)
	scratch[j*c+k] += delta
	rows := MakeIterator(scratch, r, c)

	retVal := n.test(rows, examples)

	ReturnIterator(r, c, rows)
	returnVec(scratch)
	return retVal
}

// forward loads the input, propagates it through rows and scores the outputs.
//
// Hidden units are processed in index order, which is a topological order because
// a hidden unit only sends to hidden units of a greater index. Each hidden unit is
// activated once every unit before it has contributed.
func (n *Network) forward(rows [][]float32, input, expected []float32) Metrics {
	A, B := n.A, n.B
	copy(n.nodes[:A], input)
	units := n.nodes[A:]
	for i := range units {
		units[i] = 0
	}

	tmp := borrowVec(len(units))
	for a := 0; a < A; a++ {
		axpy(units, n.nodes[a], rows[a], tmp)
	}
	for i := 0; i < B; i++ {
		j := A + i
		n.nodes[j] = Activate(n.nodes[j])
		axpy(n.nodes[j+1:], n.nodes[j], rows[j][i+1:], tmp)
	}
	returnVec(tmp)

	out := n.nodes[A+B:]
	activateAll(out)
	return Metrics{
		Error:   MSE(out, expected),
		Fitness: Score(out, expected),
	}
}

// axpy computes y += alpha·x using scratch as working space.
func axpy(y []float32, alpha float32, x, scratch []float32) {
	s := scratch[:len(x)]
	copy(s, x)
	vecf32.Scale(s, alpha)
	vecf32.Add(y, s)
}

func (n *Network) lo(j int) int {
	if lo := j - n.A + 1; lo > 0 {
		return lo
	}
	return 0
}

// legal reports whether links[j][k] may hold a non-zero weight.
func (n *Network) legal(j, k int) bool {
	return j >= 0 && j < n.Rows() && k >= n.lo(j) && k < n.Cols()
}

func (n *Network) inBounds(j, k int) error {
	if j < 0 || j >= n.Rows() || k < 0 || k >= n.Cols() {
		return errors.Errorf("link (%d, %d) out of bounds for a %d×%d link matrix", j, k, n.Rows(), n.Cols())
	}
	return nil
}

// Link returns the weight of the link from unit j to unit A+k.
func (n *Network) Link(j, k int) (float32, error) {
	if err := n.inBounds(j, k); err != nil {
		return 0, err
	}
	return n.rows[j][k], nil
}

// SetLink sets the weight of the link from unit j to unit A+k.
// Links that would create a cycle may only be set to zero.
func (n *Network) SetLink(j, k int, w float32) error {
	if err := n.inBounds(j, k); err != nil {
		return err
	}
	if !n.legal(j, k) && w != 0 {
		return errors.Errorf("link (%d, %d) would point hidden unit %d at hidden unit %d", j, k, j-n.A, k)
	}
	old := n.rows[j][k]
	n.rows[j][k] = w
	if err := n.CheckAcyclic(); err != nil {
		n.rows[j][k] = old
		return err
	}
	return nil
}

// nudge adds delta to a legal link. It is the only mutation Learn makes.
func (n *Network) nudge(j, k int, delta float32) {
	if !n.legal(j, k) {
		panic(fmt.Sprintf("nudging illegal link (%d, %d)", j, k))
	}
	n.rows[j][k] += delta
}

// Links returns a copy of the link matrix. It returns nil if the matrix is empty.
func (n *Network) Links() *tensor.Dense {
	if n.links == nil {
		return nil
	}
	return n.links.Clone().(*tensor.Dense)
}

// LinkRows returns a deep copy of the link matrix as rows.
func (n *Network) LinkRows() [][]float32 {
	retVal := make([][]float32, len(n.rows))
	for i, row := range n.rows {
		retVal[i] = append([]float32(nil), row...)
	}
	return retVal
}

func (n *Network) String() string {
	var buf bytes.Buffer
	for _, row := range n.rows {
		fmt.Fprint(&buf, "⎢")
		for _, w := range row {
			fmt.Fprintf(&buf, " %7.3f", w)
		}
		fmt.Fprintln(&buf, " ⎥")
	}
	return buf.String()
}
