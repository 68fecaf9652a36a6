// Package input reads the target list from a tabular source. Targets live in
// the first column, one profile URL per row, below a header row.
package input

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadTargets loads the ordered target list from the CSV file at path.
func ReadTargets(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open target file %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	targets, err := ReadTargetsFrom(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read targets from %s: %w", path, err)
	}
	return targets, nil
}

// ReadTargetsFrom parses targets from r. The first row is treated as a header
// and skipped; blank cells are ignored.
func ReadTargetsFrom(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var targets []string
	header := true
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse CSV: %w", err)
		}
		if header {
			header = false
			continue
		}
		if len(row) == 0 {
			continue
		}
		target := strings.TrimSpace(row[0])
		if target == "" {
			continue
		}
		targets = append(targets, target)
	}

	return targets, nil
}
