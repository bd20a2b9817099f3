package journal

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// auditRecord is the flat export form of one journal event.
type auditRecord struct {
	ID        string `json:"id"`
	Stream    string `json:"stream"`
	Type      string `json:"type"`
	Version   int    `json:"version"`
	From      string `json:"from"`
	To        string `json:"to"`
	Amount    string `json:"amount"`
	Timestamp string `json:"timestamp"`
}

func toAuditRecord(e *Event) (auditRecord, error) {
	var c Change
	if err := e.Decode(&c); err != nil {
		return auditRecord{}, fmt.Errorf("journal: event %s: %w", e.ID, err)
	}
	return auditRecord{
		ID:        e.ID,
		Stream:    e.StreamID,
		Type:      e.Type,
		Version:   e.Version,
		From:      c.From,
		To:        c.To,
		Amount:    c.Amount,
		Timestamp: e.Timestamp.UTC().Format(time.RFC3339Nano),
	}, nil
}

func (r auditRecord) toEvent() (*Event, error) {
	data, err := json.Marshal(Change{From: r.From, To: r.To, Amount: r.Amount})
	if err != nil {
		return nil, fmt.Errorf("journal: encode change: %w", err)
	}
	ts, err := parseTimestamp(r.Timestamp)
	if err != nil {
		return nil, err
	}
	return &Event{
		ID:        r.ID,
		StreamID:  r.Stream,
		Type:      r.Type,
		Version:   r.Version,
		Data:      data,
		Timestamp: ts,
	}, nil
}

// WriteJSONL writes the audit trail as one JSON object per line.
func WriteJSONL(w io.Writer, events []*Event) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	for _, e := range events {
		rec, err := toAuditRecord(e)
		if err != nil {
			return err
		}
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("journal: encode event %s: %w", e.ID, err)
		}
	}
	return bw.Flush()
}

// ExportJSONL writes the audit trail to a JSONL file.
func ExportJSONL(filename string, events []*Event) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("journal: create file: %w", err)
	}
	if err := WriteJSONL(f, events); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadJSONL parses an audit trail previously written by WriteJSONL.
func ReadJSONL(r io.Reader) ([]*Event, error) {
	var events []*Event
	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if line == "" {
			continue
		}

		var rec auditRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			return nil, fmt.Errorf("journal: line %d: invalid JSON: %w", lineNum, err)
		}
		e, err := rec.toEvent()
		if err != nil {
			return nil, fmt.Errorf("journal: line %d: %w", lineNum, err)
		}
		events = append(events, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("journal: reading input: %w", err)
	}
	return events, nil
}

// ParseJSONL reads an audit trail from a JSONL file.
func ParseJSONL(filename string) ([]*Event, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("journal: opening file: %w", err)
	}
	defer f.Close()

	return ReadJSONL(f)
}
