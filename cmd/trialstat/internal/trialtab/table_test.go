// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trialtab

import (
	"bytes"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loopscheduler/trialstat/trialfmt"
	"github.com/loopscheduler/trialstat/trialmath"
)

func build(t *testing.T, log string, opts ...BuilderOption) (*Builder, *trialfmt.Result) {
	t.Helper()
	res, err := trialfmt.ReadAll(strings.NewReader(log), "test")
	require.NoError(t, err)
	b := NewBuilder(res.Labels, opts...)
	for _, trial := range res.Trials {
		b.Add(trial)
	}
	return b, res
}

func TestToText(t *testing.T) {
	b, res := build(t, `modules: 2
work amount: 100
Test 0:
X: 1
Efficiency: 0.5
Test 1:
X: 2
Efficiency: 0.5
Test 2:
X: 3
Efficiency: 0.5
`)
	table, err := b.ToTable(res.Preamble)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, table.ToText(&buf))
	want := `
Population: 3

modules: 2
work amount: 100
X: Mean: 2.0
   Median: 2.0
   STDev: 1.0

Efficiency: Mean: 0.5
            Median: 0.5
            STDev: 0.0

`
	assert.Equal(t, want, buf.String())
}

func TestToTextUnicodeLabel(t *testing.T) {
	table := &Table{
		Population: 2,
		Rows: []*Row{{
			Label:   "Δt: ",
			Summary: trialmath.Summary{N: 2, Mean: 1.5, Median: 1.5, StdDev: 0.5},
		}},
	}
	var buf bytes.Buffer
	require.NoError(t, table.ToText(&buf))
	assert.Equal(t, "\nPopulation: 2\n\nΔt: Mean: 1.5\n    Median: 1.5\n    STDev: 0.5\n\n", buf.String())
}

func TestToCSV(t *testing.T) {
	b, res := build(t, `Test 0:
LoopScheduler: Total time: 1
               Approximate iterations per second: 10
Test 1:
LoopScheduler: Total time: 3
               Approximate iterations per second: 30
`)
	table, err := b.ToTable(res.Preamble)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, table.ToCSV(&buf))
	want := `label,mean,median,stdev,min,max,n
LoopScheduler: Total time,2,2,1.4142135623730951,1,3,2
LoopScheduler: Approximate iterations per second,20,20,14.142135623730951,10,30,2
`
	assert.Equal(t, want, buf.String())
}

type failWriter struct{ n int }

var errWrite = errors.New("write failed")

func (w *failWriter) Write(p []byte) (int, error) {
	w.n++
	return 0, errWrite
}

func TestToCSVWriteError(t *testing.T) {
	// Enough rows to overflow the CSV writer's buffer before Flush.
	table := &Table{Population: 2}
	for i := 0; i < 200; i++ {
		table.Rows = append(table.Rows, &Row{
			Label:   "LoopScheduler: Approximate iterations per second: ",
			Name:    "LoopScheduler: Approximate iterations per second",
			Summary: trialmath.Summary{N: 2, Mean: 981.3149000000001, Median: 971.3142, StdDev: 105.19026667289613},
		})
	}
	w := new(failWriter)
	assert.ErrorIs(t, table.ToCSV(w), errWrite)
	assert.Equal(t, 1, w.n, "stops at the first failed write")
}

func TestFilter(t *testing.T) {
	b, res := build(t, `Test 0:
Total time: 1
Efficiency: 0.5
Test 1:
Total time: 2
Efficiency: 0.7
`, Filter(regexp.MustCompile(`^Eff`)))
	table, err := b.ToTable(res.Preamble)
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "Efficiency: ", table.Rows[0].Label)
	assert.Equal(t, "Efficiency", table.Rows[0].Name)
}

func TestInsufficientPopulation(t *testing.T) {
	b, res := build(t, `Test 0:
X: 1
`)
	_, err := b.ToTable(res.Preamble)
	assert.ErrorIs(t, err, trialmath.ErrInsufficientSample)
	assert.Contains(t, err.Error(), `label "X: "`)
}

func TestMismatchedTrials(t *testing.T) {
	b, res := build(t, `Test 0:
A: 1
B: 10
Test 1:
A: 2
Test 2:
A: 3
B: 30
C: 300
Test 3:
A: 4
B: 40
`)
	assert.Equal(t, 4, b.Count())
	assert.Equal(t, []int{1, 2}, b.Mismatched())

	table, err := b.ToTable(res.Preamble)
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	// The short trial contributes nothing to B, and C is never a
	// label.
	assert.Equal(t, 3, table.Rows[1].Summary.N)
	assert.Equal(t, 30.0, table.Rows[1].Summary.Median)
	assert.Equal(t, 4, table.Rows[0].Summary.N)
}
