package persist

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/dshills/reckon/internal/history"
)

// header is the fixed CSV column set.
var header = []string{"operation", "operand1", "operand2", "result", "timestamp"}

// Export writes records to w as CSV with a header row.
func Export(w io.Writer, records []history.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, r := range records {
		row := []string{
			r.Op,
			history.FormatNumber(r.A),
			history.FormatNumber(r.B),
			history.FormatNumber(r.Result),
			r.At.Format(time.RFC3339Nano),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportFile writes records to path, creating parent directories and
// truncating any existing file. The file is closed on all paths.
func ExportFile(path string, records []history.Record) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	err = Export(f, records)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

// Import reads CSV records from r. The header row is required and any
// unparseable row fails the import with a MalformedRecordError.
func Import(r io.Reader) ([]history.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // column count checked per row for better errors

	head, err := cr.Read()
	if err == io.EOF {
		return nil, &MalformedRecordError{Row: 0, Err: errors.New("empty file")}
	}
	if err != nil {
		return nil, &MalformedRecordError{Row: 0, Err: err}
	}
	if !headerMatches(head) {
		return nil, &MalformedRecordError{Row: 0, Err: fmt.Errorf("unexpected columns %v", head)}
	}

	var records []history.Record
	for row := 1; ; row++ {
		fields, err := cr.Read()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, &MalformedRecordError{Row: row, Err: err}
		}
		rec, err := parseRow(row, fields)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
}

// ImportFile reads records from a CSV file.
func ImportFile(path string) ([]history.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	records, err := Import(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return records, err
}

func headerMatches(head []string) bool {
	if len(head) != len(header) {
		return false
	}
	for i, col := range header {
		if head[i] != col {
			return false
		}
	}
	return true
}

func parseRow(row int, fields []string) (history.Record, error) {
	if len(fields) != len(header) {
		return history.Record{}, &MalformedRecordError{
			Row: row,
			Err: fmt.Errorf("got %d columns, want %d", len(fields), len(header)),
		}
	}
	if fields[0] == "" {
		return history.Record{}, &MalformedRecordError{
			Row:   row,
			Field: "operation",
			Err:   errors.New("empty operation name"),
		}
	}

	a, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return history.Record{}, &MalformedRecordError{Row: row, Field: "operand1", Err: err}
	}
	b, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return history.Record{}, &MalformedRecordError{Row: row, Field: "operand2", Err: err}
	}
	result, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return history.Record{}, &MalformedRecordError{Row: row, Field: "result", Err: err}
	}
	at, err := time.Parse(time.RFC3339Nano, fields[4])
	if err != nil {
		return history.Record{}, &MalformedRecordError{Row: row, Field: "timestamp", Err: err}
	}

	return history.Record{Op: fields[0], A: a, B: b, Result: result, At: at}, nil
}
