// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trialmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	for _, test := range []struct {
		name string
		xs   []float64
		want Summary
	}{
		{
			"one two three",
			[]float64{1, 2, 3},
			Summary{N: 3, Mean: 2, Median: 2, StdDev: 1, Min: 1, Max: 3},
		},
		{
			"even",
			[]float64{4, 1, 3, 2},
			Summary{N: 4, Mean: 2.5, Median: 2.5, StdDev: math.Sqrt(5.0 / 3), Min: 1, Max: 4},
		},
		{
			"constant",
			[]float64{7, 7},
			Summary{N: 2, Mean: 7, Median: 7, StdDev: 0, Min: 7, Max: 7},
		},
		{
			// A naive sum gives 0.20000000000000004.
			"exact mean",
			[]float64{0.1, 0.2, 0.3},
			Summary{N: 3, Mean: 0.2, Median: 0.2, StdDev: 0.09999999999999999, Min: 0.1, Max: 0.3},
		},
		{
			// Rounding the variance to float64 before taking
			// the square root gives 2.886751345948129.
			"rounded once",
			[]float64{1, 1, 6},
			Summary{N: 3, Mean: 2.6666666666666665, Median: 1, StdDev: 2.8867513459481287, Min: 1, Max: 6},
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			got, err := Summarize(test.xs)
			require.NoError(t, err)
			assert.Equal(t, test.want, got)
		})
	}
}

func TestSummarizeDoesNotModify(t *testing.T) {
	xs := []float64{3, 1, 2}
	_, err := Summarize(xs)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 1, 2}, xs)
}

func TestSummarizeInsufficient(t *testing.T) {
	for _, xs := range [][]float64{nil, {1}} {
		_, err := Summarize(xs)
		assert.ErrorIs(t, err, ErrInsufficientSample)
	}
}

func TestSummarizeInf(t *testing.T) {
	got, err := Summarize([]float64{1, math.Inf(1), 2})
	require.NoError(t, err)
	assert.True(t, math.IsInf(got.Mean, 1), "mean %v", got.Mean)
	assert.Equal(t, 2.0, got.Median)
	assert.Equal(t, math.Inf(1), got.Max)
}

func TestFormatFloat(t *testing.T) {
	for v, want := range map[float64]string{
		2:                     "2.0",
		1:                     "1.0",
		0:                     "0.0",
		12.5:                  "12.5",
		-3.25:                 "-3.25",
		0.30000000000000004:   "0.30000000000000004",
		1234567:               "1234567.0",
		1e15:                  "1000000000000000.0",
		1e16:                  "1e+16",
		1.5e-5:                "1.5e-05",
		0.0001:                "0.0001",
		math.Sqrt(5.0 / 3):    "1.2909944487358056",
		math.Inf(1):           "inf",
		math.Inf(-1):          "-inf",
		123456789012345680000: "1.2345678901234568e+20",
	} {
		assert.Equal(t, want, FormatFloat(v), "FormatFloat(%v)", v)
	}
	assert.Equal(t, "nan", FormatFloat(math.NaN()))
}
