// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package trialtab summarizes trial logs as per-label tables.
package trialtab

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/loopscheduler/trialstat/trialfmt"
	"github.com/loopscheduler/trialstat/trialmath"
	"github.com/loopscheduler/trialstat/trialunit"
)

// A Builder collects trials into a Table.
type Builder struct {
	labels []string
	filter *regexp.Regexp

	// cols[i] is the observed values of labels[i].
	cols [][]float64

	count int

	// mismatched is the markers of trials whose number of values
	// differs from the number of labels.
	mismatched []int
}

// A BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// Filter restricts the Table to labels matching re. A nil re matches
// every label.
func Filter(re *regexp.Regexp) BuilderOption {
	return func(b *Builder) { b.filter = re }
}

// NewBuilder creates a new Builder for trials with the given labels.
// Values are associated with labels by position.
func NewBuilder(labels []string, opts ...BuilderOption) *Builder {
	b := &Builder{
		labels: labels,
		cols:   make([][]float64, len(labels)),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Add adds the values of trial t to the Builder. Values beyond the
// last label are ignored. A trial with fewer values than labels
// contributes nothing to the remaining labels.
func (b *Builder) Add(t *trialfmt.Trial) {
	b.count++
	if len(t.Values) != len(b.labels) {
		b.mismatched = append(b.mismatched, t.Marker)
	}
	for i := range b.cols {
		if v, ok := t.Value(i); ok {
			b.cols[i] = append(b.cols[i], v)
		}
	}
}

// Count returns the number of trials added.
func (b *Builder) Count() int {
	return b.count
}

// Mismatched returns the markers of the trials whose number of
// values differs from the number of labels.
func (b *Builder) Mismatched() []int {
	return b.mismatched
}

// ToTable summarizes the collected trials. preamble is copied into
// the Table to be printed ahead of the statistics.
//
// It fails if any reported label has fewer than two values, in which
// case no Table is returned.
func (b *Builder) ToTable(preamble []string) (*Table, error) {
	names := trialunit.Qualify(b.labels)
	t := &Table{
		Population: b.count,
		Preamble:   preamble,
	}
	for i, label := range b.labels {
		if b.filter != nil && !b.filter.MatchString(label) {
			continue
		}
		sum, err := trialmath.Summarize(b.cols[i])
		if err != nil {
			return nil, fmt.Errorf("label %s: %w", strconv.Quote(label), err)
		}
		t.Rows = append(t.Rows, &Row{Label: label, Name: names[i], Summary: sum})
	}
	return t, nil
}
