// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trialmath

import (
	"math"
	"strconv"
	"strings"
)

// FormatFloat formats v using the shortest representation that reads
// back as v. Values with a decimal exponent in [-4, 16) are written in
// plain notation and always contain a '.', so 2 formats as "2.0".
// Other values use exponent notation, such as "1e+16" or "1.5e-05".
func FormatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}

	e := strconv.FormatFloat(v, 'e', -1, 64)
	_, exp, _ := strings.Cut(e, "e")
	if x, err := strconv.Atoi(exp); err == nil && x >= -4 && x < 16 {
		s := strconv.FormatFloat(v, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	}
	return e
}
