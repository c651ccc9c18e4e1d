// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package trialunit turns raw trial-log labels into column names.
//
// Trial logs label values with the text that precedes them on a line,
// for example "LoopScheduler: Total time: ". Related values are often
// printed on continuation lines indented to line up under the first
// line's qualifier:
//
//	LoopScheduler: Total time: 1.02
//	               Approximate iterations per second: 977.1
//
// Tidy strips the separators and Qualify restores the qualifier of
// continuation lines, giving "LoopScheduler: Total time" and
// "LoopScheduler: Approximate iterations per second".
package trialunit

import (
	"strconv"
	"strings"
)

// Unnamed is the column name given to values with an empty label.
const Unnamed = "value"

// Tidy trims surrounding whitespace and trailing ':' and '='
// separators from label.
func Tidy(label string) string {
	// Fast path for labels that are already tidy.
	if label == "" || (!isSep(label[len(label)-1]) && !isSpace(label[0])) {
		return label
	}
	label = strings.TrimSpace(label)
	for len(label) > 0 && isSep(label[len(label)-1]) {
		label = strings.TrimSpace(label[:len(label)-1])
	}
	return label
}

func isSep(c byte) bool {
	return c == ':' || c == '=' || isSpace(c)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t'
}

// Qualify returns the tidied column name for each of labels.
//
// A label indented by n spaces is a continuation of the nearest
// preceding unindented label: it takes that label's first n bytes as
// a qualifier, provided they end at a separator. Empty names become
// Unnamed. Names that are still ambiguous get the first of " (2)",
// " (3)", ... that does not name another column, in order of
// appearance.
func Qualify(labels []string) []string {
	out := make([]string, len(labels))
	var parent string
	for i, label := range labels {
		indent := len(label) - len(strings.TrimLeft(label, " "))
		if indent == 0 {
			parent = label
			out[i] = Tidy(label)
			continue
		}
		name := Tidy(label)
		if indent <= len(parent) && isSep(parent[indent-1]) {
			if q := Tidy(parent[:indent]); q != "" {
				name = q + ": " + name
			}
		}
		out[i] = name
	}

	// Disambiguate duplicates. Every name as written is reserved up
	// front so a suffix never takes a later label's name.
	used := make(map[string]bool, len(out))
	for i, name := range out {
		if name == "" {
			out[i] = Unnamed
		}
		used[out[i]] = true
	}
	first := make(map[string]bool, len(out))
	next := make(map[string]int)
	for i, name := range out {
		if !first[name] {
			first[name] = true
			continue
		}
		n := next[name]
		if n == 0 {
			n = 2
		}
		for used[name+" ("+strconv.Itoa(n)+")"] {
			n++
		}
		out[i] = name + " (" + strconv.Itoa(n) + ")"
		used[out[i]] = true
		next[name] = n + 1
	}
	return out
}
