// Package manifest reads line-oriented package lists: one identifier per
// line, blank lines and '#' comments skipped, order preserved.
package manifest

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Parse returns the package identifiers in r, in input order. Duplicates
// are kept; deduplication is left to the package manager.
func Parse(r io.Reader) ([]string, error) {
	var ids []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ids = append(ids, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

// Load reads a manifest file. A missing file surfaces as an error wrapping
// fs.ErrNotExist so callers can downgrade it to a skip.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ids, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return ids, nil
}
