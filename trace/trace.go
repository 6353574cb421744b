// Package trace provides page reference sequences: parsing from text and
// synthetic workload generators. A trace is a plain slice; replaying it
// never mutates it, so one trace can feed any number of runs.
package trace

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Parse splits s on commas and whitespace and returns the page identifiers
// in order. Empty fields are skipped, so "1,2, 3" and "1 2 3" are the same
// trace. An all-separator string yields an empty trace.
func Parse(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	return fields
}

// Read scans r line by line and collects one reference per field. Lines are
// split the same way Parse splits strings; blank lines are skipped.
func Read(r io.Reader) ([]string, error) {
	var refs []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		refs = append(refs, Parse(sc.Text())...)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("trace: read: %w", err)
	}
	return refs, nil
}

// ReadFile reads a reference trace from a text file.
func ReadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("trace: open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}
