package testing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
)

// UpdateEnv is the environment variable that switches MatchesFile to
// rewriting golden files.
const UpdateEnv = "WHEEL_UPDATE_TRACES"

// tracePrecision is the number of decimals kept per value so traces are
// stable across platforms with different float rounding in math functions.
const tracePrecision = 1e6

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Trace is a table of per-frame numeric values.
type Trace struct {
	Columns []string    `json:"columns"`
	Rows    [][]float64 `json:"rows"`
}

// NewTrace returns an empty trace with the given column names.
func NewTrace(columns ...string) *Trace {
	return &Trace{Columns: columns}
}

// Add appends a row. It panics if the value count does not match the columns,
// which is always a bug in the calling test.
func (tr *Trace) Add(values ...float64) {
	if len(values) != len(tr.Columns) {
		panic(fmt.Sprintf("trace row has %d values, want %d", len(values), len(tr.Columns)))
	}
	row := make([]float64, len(values))
	for i, v := range values {
		row[i] = math.Round(v*tracePrecision) / tracePrecision
	}
	tr.Rows = append(tr.Rows, row)
}

// Len returns the number of recorded rows.
func (tr *Trace) Len() int {
	return len(tr.Rows)
}

// MatchesFile compares this trace against a golden file. On mismatch it
// reports a diff and instructions for updating. When WHEEL_UPDATE_TRACES=1
// is set, the file is silently updated instead.
func (tr *Trace) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv(UpdateEnv) == "1" {
		if err := tr.UpdateFile(path); err != nil {
			t.Fatalf("failed to update trace: %v", err)
		}
		return
	}

	expected, err := loadTrace(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("trace file missing: %s\n\nTo create: %s=1 go test -run %s", path, UpdateEnv, t.Name())
			return
		}
		t.Fatalf("failed to load trace: %v", err)
		return
	}

	if diff := tr.Diff(expected); diff != "" {
		t.Errorf("trace mismatch: %s\n%s\n\nTo update: %s=1 go test -run %s", path, diff, UpdateEnv, t.Name())
	}
}

// UpdateFile writes this trace to the given path, creating directories
// as needed.
func (tr *Trace) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := marshalTrace(tr)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Diff returns a line diff between this trace and other. Returns
// empty string if equal.
func (tr *Trace) Diff(other *Trace) string {
	a, _ := marshalTrace(tr)
	b, _ := marshalTrace(other)
	if bytes.Equal(a, b) {
		return ""
	}
	return lineDiff(string(b), string(a))
}

func loadTrace(path string) (*Trace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var tr Trace
	if err := json.Unmarshal(data, &tr); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &tr, nil
}

// marshalTrace writes one row per line so diffs point at the frame.
func marshalTrace(tr *Trace) ([]byte, error) {
	cols, err := json.Marshal(tr.Columns)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "{\n  \"columns\": %s,\n  \"rows\": [", cols)
	for i, row := range tr.Rows {
		data, err := json.Marshal(row)
		if err != nil {
			return nil, err
		}
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString("\n    ")
		buf.Write(data)
	}
	if len(tr.Rows) > 0 {
		buf.WriteString("\n  ")
	}
	buf.WriteString("]\n}\n")
	return buf.Bytes(), nil
}

func lineDiff(expected, actual string) string {
	expectedLines := strings.Split(expected, "\n")
	actualLines := strings.Split(actual, "\n")

	var buf strings.Builder
	buf.WriteString("--- expected\n+++ actual\n")

	maxLen := max(len(expectedLines), len(actualLines))
	for i := range maxLen {
		var e, a string
		if i < len(expectedLines) {
			e = expectedLines[i]
		}
		if i < len(actualLines) {
			a = actualLines[i]
		}
		if e != a {
			if i < len(expectedLines) {
				fmt.Fprintf(&buf, "-%s\n", e)
			}
			if i < len(actualLines) {
				fmt.Fprintf(&buf, "+%s\n", a)
			}
		}
	}

	return buf.String()
}
