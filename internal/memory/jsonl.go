// This file provides JSONL read/write helpers for datasets.
package memory

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// maxLineSize bounds a single dataset line.
const maxLineSize = 1 << 20

// jsonlLine is one parseable line of a JSONL stream with its 1-based line
// number.
type jsonlLine struct {
	Num int
	Raw json.RawMessage
}

// readJSONL reads r and returns each non-empty, valid JSON line. Malformed
// lines are skipped and counted.
func readJSONL(r io.Reader) ([]jsonlLine, int, error) {
	var (
		lines   []jsonlLine
		skipped int
		num     int
	)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		num++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if !json.Valid(line) {
			skipped++
			continue
		}
		cp := make([]byte, len(line))
		copy(cp, line)
		lines = append(lines, jsonlLine{Num: num, Raw: cp})
	}
	if err := scanner.Err(); err != nil {
		return nil, skipped, fmt.Errorf("scanning line %d: %w", num+1, err)
	}
	return lines, skipped, nil
}

// writeJSONL marshals each record onto its own line of w.
func writeJSONL(w io.Writer, records []any) error {
	bw := bufio.NewWriter(w)
	for _, rec := range records {
		b, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshaling record: %w", err)
		}
		if _, err := bw.Write(b); err != nil {
			return fmt.Errorf("writing record: %w", err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("writing newline: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flushing buffer: %w", err)
	}
	return nil
}

// writeFileAtomic writes the output of fill to path using the temp-file,
// fsync, rename pattern so readers never see a partial dataset.
func writeFileAtomic(path string, fill func(io.Writer) error) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".jsonl-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if err := fill(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
