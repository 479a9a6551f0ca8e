package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/norppasoft/ytjbatch/normalize"
)

// DefaultDelimiter is the CSV field separator the registry tooling
// ecosystem expects.
const DefaultDelimiter = ';'

// WriteCSV writes records as delimited UTF-8 CSV to w: a header row of
// field names, then one row per record in input order.
func WriteCSV(w io.Writer, records []normalize.Record, delimiter rune) error {
	cw := csv.NewWriter(w)
	if delimiter == 0 {
		delimiter = DefaultDelimiter
	}
	cw.Comma = delimiter

	if err := cw.Write(Headers); err != nil {
		return fmt.Errorf("write header row: %w", err)
	}
	for _, rec := range records {
		if err := cw.Write(row(rec)); err != nil {
			return fmt.Errorf("write record row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes records as CSV to a new file at path.
func WriteCSVFile(path string, records []normalize.Record, delimiter rune) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	if err := WriteCSV(f, records, delimiter); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
