// Package history keeps an append-only CSV log of analysis runs.
package history

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Entry is one analysis run.
type Entry struct {
	Timestamp  time.Time
	Files      []string
	Total      int
	Analyzed   int
	Currencies []string
	Format     string
}

// Header is the CSV header of the history file.
const Header = "timestamp,files,total,analyzed,currencies,format"

// listSep joins multi-valued fields inside a single column.
const listSep = ";"

const (
	numFields     = 6
	colTimestamp  = 0
	colFiles      = 1
	colTotal      = 2
	colAnalyzed   = 3
	colCurrencies = 4
	colFormat     = 5
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.UTC().Format(time.RFC3339)
	row[colFiles] = strings.Join(e.Files, listSep)
	row[colTotal] = strconv.Itoa(e.Total)
	row[colAnalyzed] = strconv.Itoa(e.Analyzed)
	row[colCurrencies] = strings.Join(e.Currencies, listSep)
	row[colFormat] = e.Format
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}
	total, err := strconv.Atoi(record[colTotal])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing total %q: %w", record[colTotal], err)
	}
	analyzed, err := strconv.Atoi(record[colAnalyzed])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing analyzed %q: %w", record[colAnalyzed], err)
	}

	return Entry{
		Timestamp:  ts,
		Files:      splitList(record[colFiles]),
		Total:      total,
		Analyzed:   analyzed,
		Currencies: splitList(record[colCurrencies]),
		Format:     record[colFormat],
	}, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, listSep)
}

// Append writes entries to the history file at path, creating the file,
// its directory and the header if needed.
func Append(path string, entries ...Entry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating history dir: %w", err)
	}

	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Read returns all entries in the history file at path, oldest first.
// A missing file yields no entries.
func Read(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening history: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading history CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
