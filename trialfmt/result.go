// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package trialfmt provides a reader and writer for trial logs: the
// text produced by the LoopScheduler benchmark programs.
//
// A trial log starts with free-form preamble lines, followed by a
// sequence of trial blocks. Each block is introduced by a title line
//
//	Test <n>:
//
// where n counts up from 0, and contains any number of data lines
// that end in a number:
//
//	LoopScheduler: Total time: 1.0234
//	               Approximate iterations per second: 977.1
//
// The text before the trailing number is the line's label. Labels are
// taken from the first trial only; values in later trials are matched
// to labels by position.
//
// The Reader is structured as a streaming operation, like
// bufio.Scanner. ReadAll collects an entire log into a Result.
package trialfmt

import "strconv"

// A Result is the full content of one trial log.
type Result struct {
	// Preamble is the lines before the first trial title, verbatim.
	Preamble []string

	// Labels is the label of each data line of the first trial, in
	// order of appearance.
	Labels []string

	// Trials is every trial in the log, in order.
	Trials []*Trial
}

// A Trial is the values of one trial block.
type Trial struct {
	// Marker is the number from the trial's title line.
	Marker int

	// Line is the 1-based line number of the title line.
	Line int

	// Values is the value of each data line in the block, in order.
	// Values[i] corresponds to Result.Labels[i], if both exist.
	Values []float64
}

// Clone makes a copy of t that shares no state with t.
func (t *Trial) Clone() *Trial {
	return &Trial{
		Marker: t.Marker,
		Line:   t.Line,
		Values: append([]float64(nil), t.Values...),
	}
}

// Value returns the i'th value of t, and whether t has one.
func (t *Trial) Value(i int) (float64, bool) {
	if i < 0 || i >= len(t.Values) {
		return 0, false
	}
	return t.Values[i], true
}

// Title returns the title line for trial number n.
func Title(n int) string {
	return "Test " + strconv.Itoa(n) + ":"
}

// SplitDataLine splits line into a label and the numeric text that
// ends it. The numeric text is the longest suffix of line consisting
// only of digits and '.'. ok is false if line is empty or does not
// end in a digit or '.'.
//
// If line is entirely numeric, label is "". SplitDataLine does not
// check that num is a well-formed number.
func SplitDataLine(line string) (label, num string, ok bool) {
	if len(line) == 0 || !isNumByte(line[len(line)-1]) {
		return "", "", false
	}
	s := len(line) - 1
	for s > 0 && isNumByte(line[s-1]) {
		s--
	}
	return line[:s], line[s:], true
}

func isNumByte(c byte) bool {
	return ('0' <= c && c <= '9') || c == '.'
}
