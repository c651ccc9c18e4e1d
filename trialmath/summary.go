// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package trialmath computes summary statistics of trial values.
package trialmath

import (
	"errors"
	"fmt"
	"math"
	"math/big"

	"github.com/aclements/go-moremath/stats"
)

// ErrInsufficientSample is returned when a sample is too small to
// compute a standard deviation.
var ErrInsufficientSample = errors.New("standard deviation requires at least two values")

// A Summary summarizes a sample of values.
type Summary struct {
	N int

	// Mean is the arithmetic mean, correctly rounded.
	Mean float64

	// Median is the middle value, or the mean of the two middle
	// values for an even N.
	Median float64

	// StdDev is the sample standard deviation (divisor N-1).
	StdDev float64

	// Min and Max bound the sample.
	Min, Max float64
}

// Summarize computes a Summary of xs. xs must contain at least two
// values. Summarize does not modify xs.
//
// For finite values, the mean and variance are computed exactly and
// the mean and standard deviation are each rounded once, so the result
// does not depend on the order of xs.
func Summarize(xs []float64) (Summary, error) {
	if len(xs) < 2 {
		return Summary{}, fmt.Errorf("%w, have %d", ErrInsufficientSample, len(xs))
	}

	samp := stats.Sample{Xs: append([]float64(nil), xs...)}
	samp.Sort()
	s := Summary{N: len(xs), Median: median(samp.Xs)}
	s.Min, s.Max = samp.Bounds()

	if finite(xs) {
		s.Mean, s.StdDev = exactMeanStdDev(xs)
	} else {
		s.Mean, s.StdDev = stats.Mean(xs), stats.StdDev(xs)
	}
	return s, nil
}

// median returns the median of the sorted slice xs.
func median(xs []float64) float64 {
	n := len(xs)
	if n%2 == 1 {
		return xs[n/2]
	}
	return (xs[n/2-1] + xs[n/2]) / 2
}

func finite(xs []float64) bool {
	for _, x := range xs {
		if math.IsInf(x, 0) || math.IsNaN(x) {
			return false
		}
	}
	return true
}

func exactMeanStdDev(xs []float64) (mean, stddev float64) {
	var sum, x, d big.Rat
	for _, v := range xs {
		sum.Add(&sum, x.SetFloat64(v))
	}
	n := big.NewRat(int64(len(xs)), 1)
	m := new(big.Rat).Quo(&sum, n)

	var ss big.Rat
	for _, v := range xs {
		d.Sub(x.SetFloat64(v), m)
		ss.Add(&ss, d.Mul(&d, &d))
	}
	variance := ss.Quo(&ss, big.NewRat(int64(len(xs)-1), 1))

	mean, _ = m.Float64()
	return mean, sqrtRat(variance)
}

// sqrtPrec is wide enough that rounding the square root to float64
// gives the correctly rounded root of the exact value.
const sqrtPrec = 256

// sqrtRat returns the square root of the non-negative r, rounded to
// the nearest float64.
func sqrtRat(r *big.Rat) float64 {
	if r.Sign() == 0 {
		return 0
	}
	f := new(big.Float).SetPrec(sqrtPrec).SetRat(r)
	v, _ := f.Sqrt(f).Float64()
	return v
}
