// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trialtab

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/loopscheduler/trialstat/trialmath"
)

// Skipped is the report for a log with no trials.
const Skipped = "0 Count, skipping..."

// A Table summarizes every label of a trial log.
type Table struct {
	// Population is the number of trials.
	Population int

	// Preamble is printed verbatim before the statistics.
	Preamble []string

	// Rows has one entry per reported label, in label order.
	Rows []*Row
}

// A Row summarizes the values of one label across trials.
type Row struct {
	// Label is the raw label text from the log.
	Label string

	// Name is the tidied, qualified column name of Label.
	Name string

	Summary trialmath.Summary
}

// ToText renders t as a text report. Each label's statistics are
// printed on three lines, with the second and third indented by the
// width of the label so that the values line up:
//
//	Efficiency: Mean: 0.9
//	            Median: 0.9
//	            STDev: 0.1
func (t *Table) ToText(w io.Writer) error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "\nPopulation: %d\n\n", t.Population)
	for _, line := range t.Preamble {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	for _, row := range t.Rows {
		pad := strings.Repeat(" ", utf8.RuneCountInString(row.Label))
		fmt.Fprintf(&buf, "%sMean: %s\n", row.Label, trialmath.FormatFloat(row.Summary.Mean))
		fmt.Fprintf(&buf, "%sMedian: %s\n", pad, trialmath.FormatFloat(row.Summary.Median))
		fmt.Fprintf(&buf, "%sSTDev: %s\n", pad, trialmath.FormatFloat(row.Summary.StdDev))
		buf.WriteByte('\n')
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// ToCSV renders t as CSV with one row per label. The preamble is
// omitted.
func (t *Table) ToCSV(w io.Writer) error {
	o := csv.NewWriter(w)
	if err := o.Write([]string{"label", "mean", "median", "stdev", "min", "max", "n"}); err != nil {
		return err
	}
	for _, row := range t.Rows {
		s := row.Summary
		err := o.Write([]string{
			row.Name,
			fmt.Sprint(s.Mean),
			fmt.Sprint(s.Median),
			fmt.Sprint(s.StdDev),
			fmt.Sprint(s.Min),
			fmt.Sprint(s.Max),
			strconv.Itoa(s.N),
		})
		if err != nil {
			return err
		}
	}
	o.Flush()
	return o.Error()
}
