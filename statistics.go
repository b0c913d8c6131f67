package nice

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/RWayne93/NICE/dagnn"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
)

// Statistics records every report of every run, keyed by run name.
type Statistics struct {
	Runs     []string
	Progress map[string][]dagnn.Progress
}

func makeStatistics() Statistics {
	return Statistics{
		Runs:     make([]string, 0, 8),
		Progress: make(map[string][]dagnn.Progress),
	}
}

func (s *Statistics) update(run string, p dagnn.Progress) {
	if _, ok := s.Progress[run]; !ok {
		s.Runs = append(s.Runs, run)
	}
	s.Progress[run] = append(s.Progress[run], p)
}

// Summary returns the mean and standard deviation of the reported errors of a run.
func (s *Statistics) Summary(run string) (mean, std float64, err error) {
	ps, ok := s.Progress[run]
	if !ok || len(ps) == 0 {
		return 0, 0, errors.Errorf("no reports for run %q", run)
	}
	errs := make([]float64, len(ps))
	for i, p := range ps {
		errs[i] = float64(p.Error)
	}
	mean, std = stat.MeanStdDev(errs, nil)
	return mean, std, nil
}

// Dump writes every recorded report into filename as CSV.
func (s *Statistics) Dump(filename string) error {
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write([]string{"run", "generation", "error", "fitness", "examples", "learning_rate", "done"}); err != nil {
		return err
	}
	var records [][]string
	for _, run := range s.Runs {
		for _, p := range s.Progress[run] {
			records = append(records, []string{
				run,
				strconv.Itoa(p.Generation),
				strconv.FormatFloat(float64(p.Error), 'f', 4, 32),
				strconv.Itoa(p.Fitness),
				strconv.Itoa(p.Examples),
				strconv.FormatFloat(float64(p.LearningRate), 'g', -1, 32),
				strconv.FormatBool(p.Done),
			})
		}
	}
	if err := w.WriteAll(records); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
