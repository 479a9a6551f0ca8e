// Package output renders batch results to the console and exports them as
// CSV or Excel files.
package output

import (
	"fmt"
	"io"

	"github.com/norppasoft/ytjbatch/normalize"
)

// Headers is the column order shared by every output format.
var Headers = []string{
	"BusinessId",
	"Name",
	"VisitingCO",
	"VisitingStreet",
	"VisitingPostCode",
	"VisitingCity",
	"PostalCO",
	"PostalPostbox",
	"PostalStreet",
	"PostalPostCode",
	"PostalCity",
}

// row flattens a record into cells in Headers order. Nil fields become
// empty strings.
func row(rec normalize.Record) []string {
	return []string{
		rec.BusinessID,
		deref(rec.Name),
		deref(rec.VisitingCareOf),
		deref(rec.VisitingStreet),
		deref(rec.VisitingPostCode),
		deref(rec.VisitingCity),
		deref(rec.PostalCareOf),
		deref(rec.PostalPostbox),
		deref(rec.PostalStreet),
		deref(rec.PostalPostCode),
		deref(rec.PostalCity),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// PrintRecord writes one human-readable record block to w. Empty fields are
// shown as "-". This is operator output, not meant for machine parsing.
func PrintRecord(w io.Writer, rec normalize.Record) {
	cells := row(rec)
	for i, header := range Headers {
		value := cells[i]
		if value == "" {
			value = "-"
		}
		fmt.Fprintf(w, "%-17s %s\n", header+":", value)
	}
	fmt.Fprintln(w)
}
