package dagnn

import (
	"sort"

	"github.com/chewxy/math32"
)

// Result is how a call to Learn ended.
type Result struct {
	Generations int
	Converged   bool // false means the generation budget ran out
	Metrics
}

func (r Result) String() string {
	if r.Converged {
		return "converged"
	}
	return "exhausted"
}

type candidate struct {
	j, k int
	grad float32 // finite difference estimate of -dError/dLink
}

type byGradient []candidate

func (l byGradient) Len() int           { return len(l) }
func (l byGradient) Less(i, j int) bool { return math32.Abs(l[i].grad) > math32.Abs(l[j].grad) }
func (l byGradient) Swap(i, j int)      { l[i], l[j] = l[j], l[i] }

// Learn searches for better links, one weight at a time.
//
// Each generation it samples Candidates legal links, estimates how the error changes
// when each is raised by the learning rate, and moves the most promising link by the
// learning rate in the direction that lowers the error. The learning rate grows while
// the error keeps falling and shrinks otherwise.
// During a run of improving generations it may stay above LearningRate; it drops back
// to LearningRate on the first generation that does not improve, and is restored to
// it when Learn returns.
//
// By default Learn stops once fitness reaches the number of examples. With
// minimizeError it keeps going while fitness is at that maximum and the error
// exceeds the threshold. In both modes it stops after MaxGenerations. The only error
// returned is for examples that do not fit the network.
func (n *Network) Learn(examples Examples, minimizeError bool) (Result, error) {
	cur, err := n.Test(examples)
	if err != nil {
		return Result{}, err
	}
	total := len(examples)
	again := func(m Metrics) bool {
		if minimizeError {
			return m.Fitness == total && m.Error > n.Threshold
		}
		return m.Fitness < total
	}

	rows := n.sendingRows()
	initialRate := n.LearningRate
	learnAgain := again(cur)
	var gen int
	for ; gen < n.MaxGenerations && learnAgain && len(rows) > 0; gen++ {
		before := cur.Error

		cands := make([]candidate, n.Candidates)
		for i := range cands {
			j := rows[n.r.Intn(len(rows))]
			lo := n.lo(j)
			k := lo + n.r.Intn(n.Cols()-lo)
			after := n.testWith(examples, j, k, n.LearningRate)
			cands[i] = candidate{j: j, k: k, grad: (before - after.Error) / n.LearningRate}
		}
		if len(cands) > 1 {
			sort.Stable(byGradient(cands))
		}

		best := cands[0]
		if best.grad < 0 {
			n.nudge(best.j, best.k, -n.LearningRate)
		} else {
			n.nudge(best.j, best.k, n.LearningRate)
		}

		cur = n.test(n.rows, examples)

		switch {
		case cur.Error < before:
			n.LearningRate *= 1.1
		case n.LearningRate > initialRate:
			n.LearningRate = initialRate
		default:
			n.LearningRate /= 1.1
		}

		learnAgain = again(cur)

		if gen%n.ReportEvery == 0 {
			n.report(Progress{
				Generation:   gen,
				Metrics:      cur,
				Examples:     total,
				LearningRate: n.LearningRate,
			})
		}
	}
	n.LearningRate = initialRate

	n.report(Progress{
		Generation:   gen,
		Metrics:      cur,
		Examples:     total,
		LearningRate: n.LearningRate,
		Done:         true,
	})
	return Result{
		Generations: gen,
		Converged:   !learnAgain,
		Metrics:     cur,
	}, nil
}

// sendingRows lists the rows that have at least one legal link.
func (n *Network) sendingRows() []int {
	var retVal []int
	for j := 0; j < n.Rows(); j++ {
		if n.lo(j) < n.Cols() {
			retVal = append(retVal, j)
		}
	}
	return retVal
}
