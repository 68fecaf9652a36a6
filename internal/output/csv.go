// Package output serializes a batch result to CSV: one row per record, with
// every mapping-valued section encoded as a flat JSON object. Failed or
// absent sections serialize as {} so the columns are always well-formed.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jonathan/profile-harvester/internal/types"
)

// header lists the output columns in order.
var header = []string{
	"target", "name", "bio", "socials", "experience", "education", "certifications", "projects",
}

// WriteCSV writes records to the file at path, creating or truncating it.
func WriteCSV(path string, records types.BatchResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	if err := Write(f, records); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	return nil
}

// Write serializes records to w in input order.
func Write(w io.Writer, records types.BatchResult) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, rec := range records {
		row, err := recordRow(rec)
		if err != nil {
			return err
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", rec.Target, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func recordRow(rec types.ProfileRecord) ([]string, error) {
	row := []string{rec.Target, rec.Name, rec.Bio}
	for _, section := range []map[string]string{
		rec.Socials, rec.Experience, rec.Education, rec.Certifications, rec.Projects,
	} {
		encoded, err := encodeMapping(section)
		if err != nil {
			return nil, fmt.Errorf("failed to encode section for %s: %w", rec.Target, err)
		}
		row = append(row, encoded)
	}
	return row, nil
}

// encodeMapping renders a section as a JSON object, {} when empty or nil.
// json.Marshal sorts map keys, so the encoding is deterministic.
func encodeMapping(m map[string]string) (string, error) {
	if m == nil {
		m = map[string]string{}
	}
	data, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
