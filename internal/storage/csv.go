package storage

import (
	"encoding/csv"
	"fmt"
	"os"
)

// Codec maps one record type to and from a CSV row.
type Codec[T Keyed] interface {
	Header() []string
	Encode(rec T) []string
	Decode(row []string) (T, error)
}

// LoadCSV reads a whole CSV file into the table, replacing its contents.
// The first row must match the codec header column-for-column.
func LoadCSV[T Keyed](path string, codec Codec[T], tbl *Table[T]) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("read %s: missing header row", path)
	}

	header := codec.Header()
	if len(rows[0]) != len(header) {
		return fmt.Errorf("read %s: expected %d columns, got %d", path, len(header), len(rows[0]))
	}
	for i, col := range header {
		if rows[0][i] != col {
			return fmt.Errorf("read %s: column %d is %q, want %q", path, i, rows[0][i], col)
		}
	}

	recs := make([]T, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rec, err := codec.Decode(row)
		if err != nil {
			return fmt.Errorf("decode %s row %d: %w", path, i+2, err)
		}
		recs = append(recs, rec)
	}

	if err := tbl.Replace(recs); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// SaveCSV overwrites the file with the full table contents, header first,
// records in ID order.
func SaveCSV[T Keyed](path string, codec Codec[T], tbl *Table[T]) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(codec.Header()); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	for _, rec := range tbl.List() {
		if err := w.Write(codec.Encode(rec)); err != nil {
			f.Close()
			return fmt.Errorf("write %s: %w", path, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return f.Close()
}
