package options

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fibjs/fibhost/internal"
)

// Permission bits for a newly created coverage file.
const coverageFileMode os.FileMode = 0644

// Handles --cov=<path>: opens the given path for append.
func (d *dispatch) coverageFile(path string) error {
	name := d.resolve(path)

	f, err := openAppend(name)
	if err != nil {
		return &Exit{
			Message: fmt.Sprintf("Invalid filename: %s\n", path),
			Err:     fmt.Errorf("%w: %w", ErrCoverage, err),
		}
	}

	d.setCoverage(&CoverageSink{Name: name, File: f})
	return nil
}

// Handles bare --cov: opens fibjs-<date>.lcov for append.
func (d *dispatch) coverageDefault(string) error {
	base := CoverageFileName(d.parser.clock().Now())
	name := d.resolve(base)

	f, err := openAppend(name)
	if err != nil {
		return &Exit{
			Message: fmt.Sprintf("Can't open file: %s, please try again", base),
			Err:     fmt.Errorf("%w: %w", ErrCoverage, err),
		}
	}

	d.setCoverage(&CoverageSink{Name: name, File: f})
	return nil
}

// Resolves a relative path against the parser's directory.
func (d *dispatch) resolve(path string) string {
	if d.parser.Dir == "" || path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(d.parser.Dir, path)
}

// Returns the generated coverage file name for the given time.
//
// The name has the form "fibjs-YYYYMMDD.lcov" using the local calendar date,
// so every run on the same day appends to the same file.
func CoverageFileName(t time.Time) string {
	return fmt.Sprintf("%s-%s.lcov", internal.Name, t.Format("20060102"))
}

// Opens name for appending, creating it if needed.
func openAppend(name string) (*os.File, error) {
	return os.OpenFile(name, os.O_WRONLY|os.O_APPEND|os.O_CREATE, coverageFileMode)
}

// Converts the leading integer of s the way C atoi does.
//
// Leading whitespace is skipped, an optional sign is accepted, and digits are
// read until the first non-digit. Input with no digits yields 0. Values that
// overflow saturate to the int32 range.
func atoi(s string) int {
	s = strings.TrimLeft(s, " \t\n\v\f\r")

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0
	}

	n, err := strconv.ParseInt(s[:end], 10, 32)
	if err != nil {
		if s[0] == '-' {
			return math.MinInt32
		}
		return math.MaxInt32
	}
	return int(n)
}
