// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trialfmt

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/loopscheduler/trialstat/trialunit"
)

// A Writer writes trials as CSV, one row per trial. The first column
// is the trial's marker number and the remaining columns are the
// trial's values, headed by the qualified label names.
type Writer struct {
	w      *csv.Writer
	header []string
	row    []string
	first  bool
}

// NewWriter returns a writer that writes trials with the given labels
// to w.
func NewWriter(w io.Writer, labels []string) *Writer {
	header := append([]string{"trial"}, trialunit.Qualify(labels)...)
	return &Writer{
		w:      csv.NewWriter(w),
		header: header,
		row:    make([]string, len(header)),
		first:  true,
	}
}

// Write writes trial t, preceded by the header row if this is the
// first call. A trial with fewer values than labels leaves the
// remaining cells empty; values beyond the last label are dropped.
func (w *Writer) Write(t *Trial) error {
	if w.first {
		if err := w.w.Write(w.header); err != nil {
			return err
		}
		w.first = false
	}

	w.row[0] = strconv.Itoa(t.Marker)
	for i := 1; i < len(w.row); i++ {
		if v, ok := t.Value(i - 1); ok {
			w.row[i] = strconv.FormatFloat(v, 'g', -1, 64)
		} else {
			w.row[i] = ""
		}
	}
	return w.w.Write(w.row)
}

// Flush writes any buffered data to the underlying io.Writer and
// reports any error from this or an earlier Write.
func (w *Writer) Flush() error {
	w.w.Flush()
	return w.w.Error()
}
