package partscout

import "strings"

// FormatRecord formats a record as aligned "label: value" lines for display.
// Unknown fields are shown as N/A.
func FormatRecord(rec *ComponentRecord) string {
	if rec == nil {
		return ""
	}

	rows := [][2]string{
		{"Part Number", string(rec.PartNumber)},
		{"Manufacturer", OrNA(rec.Manufacturer)},
		{"Description", OrNA(rec.Description)},
		{"Price", OrNA(rec.Price)},
		{"Available Stock", OrNA(rec.AvailableStock)},
		{"Distributor", OrNA(rec.Distributor)},
		{"Datasheet", OrNA(rec.DatasheetLink)},
		{"Source", OrNA(rec.SourceURL)},
	}

	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(row[0])
		b.WriteString(strings.Repeat(" ", 16-len(row[0])))
		b.WriteString(": ")
		b.WriteString(row[1])
	}
	return b.String()
}

// FormatRecords formats records separated by blank lines.
func FormatRecords(recs []*ComponentRecord) string {
	if len(recs) == 0 {
		return ""
	}

	parts := make([]string, 0, len(recs))
	for _, rec := range recs {
		parts = append(parts, FormatRecord(rec))
	}
	return strings.Join(parts, "\n\n")
}
