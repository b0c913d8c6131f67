package nice

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/RWayne93/NICE/dagnn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatistics(t *testing.T) {
	s := makeStatistics()
	s.update("a#1", dagnn.Progress{Generation: 0, Metrics: dagnn.Metrics{Error: 2, Fitness: 1}, Examples: 4, LearningRate: 0.01})
	s.update("a#1", dagnn.Progress{Generation: 100, Metrics: dagnn.Metrics{Error: 4, Fitness: 3}, Examples: 4, LearningRate: 0.011})
	s.update("b#1", dagnn.Progress{Generation: 7, Metrics: dagnn.Metrics{Error: 1, Fitness: 4}, Examples: 4, LearningRate: 0.01, Done: true})
	assert.Equal(t, []string{"a#1", "b#1"}, s.Runs)

	mean, std, err := s.Summary("a#1")
	require.NoError(t, err)
	assert.InDelta(t, 3, mean, 1e-9)
	assert.InDelta(t, 1.4142136, std, 1e-6)

	filename := filepath.Join(t.TempDir(), "stats.csv")
	require.NoError(t, s.Dump(filename))
	f, err := os.Open(filename)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, "generation", records[0][1])
	assert.Equal(t, []string{"b#1", "7", "1.0000", "4", "4", "0.01", "true"}, records[3])
}
