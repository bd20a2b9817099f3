package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

var csvHeader = []string{"id", "stream", "type", "version", "from", "to", "amount", "timestamp"}

// WriteCSV writes the audit trail as CSV with a header row.
func WriteCSV(w io.Writer, events []*Event) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("journal: write header: %w", err)
	}
	for _, e := range events {
		rec, err := toAuditRecord(e)
		if err != nil {
			return err
		}
		row := []string{
			rec.ID, rec.Stream, rec.Type, strconv.Itoa(rec.Version),
			rec.From, rec.To, rec.Amount, rec.Timestamp,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("journal: write event %s: %w", e.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportCSV writes the audit trail to a CSV file.
func ExportCSV(filename string, events []*Event) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("journal: create file: %w", err)
	}
	if err := WriteCSV(f, events); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadCSV parses an audit trail previously written by WriteCSV. Column
// order is taken from the header row, so reordered exports still parse.
func ReadCSV(r io.Reader) ([]*Event, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("journal: reading header: %w", err)
	}
	colIndex := make(map[string]int)
	for i, col := range header {
		colIndex[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, col := range csvHeader {
		if _, ok := colIndex[col]; !ok {
			return nil, fmt.Errorf("journal: column %q not found in header: %v", col, header)
		}
	}

	var events []*Event
	lineNum := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("journal: reading line %d: %w", lineNum+1, err)
		}
		lineNum++

		version, err := strconv.Atoi(strings.TrimSpace(row[colIndex["version"]]))
		if err != nil {
			return nil, fmt.Errorf("journal: line %d: invalid version: %w", lineNum, err)
		}
		rec := auditRecord{
			ID:        strings.TrimSpace(row[colIndex["id"]]),
			Stream:    strings.TrimSpace(row[colIndex["stream"]]),
			Type:      strings.TrimSpace(row[colIndex["type"]]),
			Version:   version,
			From:      strings.TrimSpace(row[colIndex["from"]]),
			To:        strings.TrimSpace(row[colIndex["to"]]),
			Amount:    strings.TrimSpace(row[colIndex["amount"]]),
			Timestamp: strings.TrimSpace(row[colIndex["timestamp"]]),
		}
		e, err := rec.toEvent()
		if err != nil {
			return nil, fmt.Errorf("journal: line %d: %w", lineNum, err)
		}
		events = append(events, e)
	}
	return events, nil
}

// ParseCSV reads an audit trail from a CSV file.
func ParseCSV(filename string) ([]*Event, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("journal: opening file: %w", err)
	}
	defer f.Close()

	return ReadCSV(f)
}

// timestampFormats lists accepted input layouts for hand-edited exports.
var timestampFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseTimestamp tries each accepted layout in order.
func parseTimestamp(s string) (time.Time, error) {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("journal: could not parse timestamp %q", s)
}
