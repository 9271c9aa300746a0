package contacts

import (
	"encoding/csv"
	"io"
	"os"
	"strings"
	"time"
)

// csvHeader is the CRM import column layout. Order matters to the importer.
var csvHeader = []string{"email", "first_name", "last_name", "phone", "last_contacted", "notes"}

// WriteCSV serializes records in the order given. last_contacted is RFC 3339
// (empty for a zero time) and notes are kept single-line.
func WriteCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range records {
		var contacted string
		if !r.LastContacted.IsZero() {
			contacted = r.LastContacted.Format(time.RFC3339)
		}
		row := []string{
			r.Email,
			r.FirstName,
			r.LastName,
			r.Phone,
			contacted,
			singleLine(r.Notes),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes records to path, creating or truncating it.
func WriteCSVFile(path string, records []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCSV(f, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// singleLine normalizes embedded line breaks to spaces so every contact
// occupies one CSV row.
func singleLine(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return s
}
