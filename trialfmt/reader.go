// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trialfmt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// A Reader reads trial logs.
//
// Its API is modeled on bufio.Scanner. A Reader retains ownership of
// the Trial it returns and overwrites it on the next call to Scan; a
// caller should Clone anything it needs to retain.
//
// The zero value of the Reader is a valid Reader, but the user must
// call Reset before using it.
type Reader struct {
	s        *bufio.Scanner
	fileName string
	lineNum  int
	err      error // first fatal error
	strict   bool

	// next is the number of the next expected title line. Zero
	// means no trial has started and lines are still preamble.
	next int
	done bool

	preamble []string
	labels   []string

	trial Trial // last completed trial
	open  Trial // trial being read
}

// A SyntaxError represents a malformed value on a particular line of
// a trial log.
type SyntaxError struct {
	FileName string
	Line     int
	Msg      string
}

func (s *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", s.FileName, s.Line, s.Msg)
}

// A ShapeError reports a trial whose number of values differs from
// the number of labels in the first trial. It is only returned by
// strict Readers.
type ShapeError struct {
	FileName string
	Line     int // line of the trial's title
	Marker   int
	Got      int
	Want     int
}

func (s *ShapeError) Error() string {
	return fmt.Sprintf("%s:%d: trial %d has %d values, want %d", s.FileName, s.Line, s.Marker, s.Got, s.Want)
}

// An Option configures a Reader.
type Option func(*Reader)

// Strict makes the Reader reject trials that do not have exactly one
// value per label with a *ShapeError. By default such trials are
// returned as-is.
func Strict(strict bool) Option {
	return func(r *Reader) { r.strict = strict }
}

// NewReader constructs a reader to parse trial logs from r.
// fileName is used in error messages; it is purely diagnostic.
func NewReader(r io.Reader, fileName string, opts ...Option) *Reader {
	reader := new(Reader)
	for _, opt := range opts {
		opt(reader)
	}
	reader.Reset(r, fileName)
	return reader
}

// Reset resets the reader to begin reading from a new input. It keeps
// the options the Reader was constructed with.
func (r *Reader) Reset(ior io.Reader, fileName string) {
	r.s = bufio.NewScanner(ior)
	if fileName == "" {
		fileName = "<unknown>"
	}
	r.fileName = fileName
	r.lineNum = 0
	r.err = nil
	r.next = 0
	r.done = false
	r.preamble = r.preamble[:0]
	r.labels = r.labels[:0]
	r.trial = Trial{Values: r.trial.Values[:0]}
	r.open = Trial{Values: r.open.Values[:0]}
}

// Scan advances the reader to the next completed trial and reports
// whether one was read. The caller should use the Trial method to get
// it. If Scan reaches EOF or an error occurs, it returns false, in
// which case the caller should use the Err method to check for
// errors.
func (r *Reader) Scan() bool {
	if r.err != nil || r.done {
		return false
	}

	for r.s.Scan() {
		r.lineNum++
		line := r.s.Text()

		if line == Title(r.next) {
			first := r.next == 0
			if !first {
				r.finish()
			}
			r.open.Marker = r.next
			r.open.Line = r.lineNum
			r.next++
			if first {
				continue
			}
			return r.check()
		}

		if r.next == 0 {
			r.preamble = append(r.preamble, line)
			continue
		}

		label, num, ok := SplitDataLine(line)
		if !ok {
			// Ignore the line.
			continue
		}
		val, err := parseValue(num)
		if err != nil {
			r.err = &SyntaxError{r.fileName, r.lineNum, "parsing value " + strconv.Quote(num) + ": " + err.Error()}
			return false
		}
		if r.next == 1 {
			r.labels = append(r.labels, label)
		}
		r.open.Values = append(r.open.Values, val)
	}

	if err := r.s.Err(); err != nil {
		r.err = fmt.Errorf("%s:%d: %w", r.fileName, r.lineNum, err)
		return false
	}

	r.done = true
	if r.next == 0 {
		// No trials at all.
		return false
	}
	r.finish()
	return r.check()
}

// finish moves the open trial to r.trial and starts a new open trial,
// reusing the old trial's storage.
func (r *Reader) finish() {
	r.trial, r.open = r.open, r.trial
	r.open.Values = r.open.Values[:0]
}

func (r *Reader) check() bool {
	if r.strict && len(r.trial.Values) != len(r.labels) {
		r.err = &ShapeError{r.fileName, r.trial.Line, r.trial.Marker, len(r.trial.Values), len(r.labels)}
		return false
	}
	return true
}

// parseValue parses the numeric suffix of a data line. Values too
// large for a float64 become ±Inf rather than an error.
func parseValue(num string) (float64, error) {
	val, err := strconv.ParseFloat(num, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) {
			if numErr.Err == strconv.ErrRange {
				return val, nil
			}
			return 0, numErr.Err
		}
		return 0, err
	}
	return val, nil
}

// Trial returns the last trial read.
//
// The caller should not retain the Trial object, as it will be
// overwritten by the next call to Scan.
func (r *Reader) Trial() *Trial {
	return &r.trial
}

// Preamble returns the lines before the first trial title. It is
// complete once Scan has returned true once, or false for the first
// time.
func (r *Reader) Preamble() []string {
	return r.preamble
}

// Labels returns the labels of the first trial. It is complete once
// Scan has returned true once.
func (r *Reader) Labels() []string {
	return r.labels
}

// Err returns the first non-EOF error that was encountered by the
// Reader.
func (r *Reader) Err() error {
	return r.err
}

// ReadAll reads an entire trial log from r.
func ReadAll(r io.Reader, fileName string, opts ...Option) (*Result, error) {
	reader := NewReader(r, fileName, opts...)
	res := new(Result)
	for reader.Scan() {
		res.Trials = append(res.Trials, reader.Trial().Clone())
	}
	if err := reader.Err(); err != nil {
		return nil, err
	}
	res.Preamble = append([]string(nil), reader.Preamble()...)
	res.Labels = append([]string(nil), reader.Labels()...)
	return res, nil
}
