// Package normalize turns raw source extracts into the normalized reference
// databases. Each builder reads its inputs once, returns its database and a
// build report, and never retries or aborts on a single bad record.
package normalize

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/couchcryptid/aero-refdb/internal/delimited"
	"github.com/jszwec/csvutil"
)

// decodeRows maps a header-led delimited extract onto tagged structs.
func decodeRows[T any](r io.Reader, what string) ([]T, error) {
	dec, err := csvutil.NewDecoder(delimited.NewReader(r))
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s header: %w", what, err)
	}

	var rows []T
	if err := dec.Decode(&rows); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode %s rows: %w", what, err)
	}
	return rows, nil
}

// parseFloat parses a numeric field, rejecting blanks, NaN and infinities.
func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// parseFloatOrZero parses a string as float64, returning 0 on failure.
func parseFloatOrZero(s string) float64 {
	v, _ := parseFloat(s)
	return v
}

func parseIntOrZero(s string) int {
	return int(math.Round(parseFloatOrZero(s)))
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
