package task

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/RWayne93/NICE/dagnn"
	"github.com/pkg/errors"
)

type errInvalidLine struct {
	lineNum  int
	splits   int
	expected int
}

func (e errInvalidLine) Error() string {
	return fmt.Sprintf("at line %d, expected %d values, got %d", e.lineNum, e.expected, e.splits)
}

// FromCSV reads examples from r. Each line holds s.A inputs followed by s.C outputs,
// separated by commas. Blank lines and lines starting with '#' are skipped.
func FromCSV(name string, r io.Reader, s dagnn.Structure) (Task, error) {
	scanner := bufio.NewScanner(r)
	var ex dagnn.Examples
	var lineNum int
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		splits := strings.Split(line, ",")
		if len(splits) != s.A+s.C {
			return nil, errInvalidLine{lineNum: lineNum, splits: len(splits), expected: s.A + s.C}
		}

		vals := make([]float32, len(splits))
		for i, split := range splits {
			v, err := strconv.ParseFloat(strings.TrimSpace(split), 32)
			if err != nil {
				return nil, errors.Wrapf(err, "parsing value %d on line %d", i, lineNum)
			}
			vals[i] = float32(v)
		}
		ex = append(ex, dagnn.Example{Input: vals[:s.A:s.A], Output: vals[s.A:]})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.WithStack(err)
	}
	return New(name, s, ex)
}
