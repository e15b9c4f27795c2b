// Package xlsx exports component records to Excel workbooks and imports them
// back, using the column layout of the legacy spreadsheet.
package xlsx

import (
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/partscout"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet components are written to.
const SheetName = "Components"

// Column keys, in sheet order.
var columns = []string{
	"partNumber",
	"manufacturer",
	"description",
	"lowestPrice",
	"availableStock",
	"distributor",
	"datasheetLink",
	"searchUrl",
}

var columnWidths = map[string]float64{
	"A": 20, // part number
	"B": 24, // manufacturer
	"C": 48, // description
	"D": 40, // price
	"E": 14, // stock
	"F": 22, // distributor
	"G": 48, // datasheet
	"H": 48, // source
}

func cells(rec *partscout.ComponentRecord) []string {
	return []string{
		string(rec.PartNumber),
		partscout.OrNA(rec.Manufacturer),
		partscout.OrNA(rec.Description),
		partscout.OrNA(rec.Price),
		partscout.OrNA(rec.AvailableStock),
		partscout.OrNA(rec.Distributor),
		partscout.OrNA(rec.DatasheetLink),
		partscout.OrNA(rec.SourceURL),
	}
}

// WriteComponents writes recs as a workbook with one header row and one row
// per record. Unknown values are written as N/A.
func WriteComponents(w io.Writer, recs []*partscout.ComponentRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	// NewFile starts with "Sheet1"; rename it so the workbook has one sheet.
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return err
	}

	for i, h := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(SheetName, cell, h); err != nil {
			return err
		}
	}

	for r, rec := range recs {
		for c, v := range cells(rec) {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellStr(SheetName, cell, v); err != nil {
				return err
			}
		}
	}

	for col, width := range columnWidths {
		_ = f.SetColWidth(SheetName, col, col, width)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}

// ReadComponents reads records from the first sheet of a workbook. Columns are
// matched by header name, N/A cells become empty, and rows without a part
// number are skipped.
func ReadComponents(r io.Reader) ([]*partscout.ComponentRecord, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, partscout.Wrap(partscout.EINVALID, err, "not a readable workbook")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("xlsx read: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	index := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		index[strings.TrimSpace(h)] = i
	}
	if _, ok := index["partNumber"]; !ok {
		return nil, partscout.Errorf(partscout.EINVALID, "workbook has no partNumber column")
	}

	var recs []*partscout.ComponentRecord
	for _, row := range rows[1:] {
		get := func(key string) string {
			i, ok := index[key]
			if !ok || i >= len(row) {
				return ""
			}
			v := strings.TrimSpace(row[i])
			if !partscout.Known(v) {
				return ""
			}
			return v
		}

		pn := get("partNumber")
		if pn == "" {
			continue
		}
		recs = append(recs, &partscout.ComponentRecord{
			PartNumber:     partscout.PartNumber(strings.ToUpper(pn)),
			Manufacturer:   get("manufacturer"),
			Description:    get("description"),
			Price:          get("lowestPrice"),
			AvailableStock: get("availableStock"),
			Distributor:    get("distributor"),
			DatasheetLink:  get("datasheetLink"),
			SourceURL:      get("searchUrl"),
		})
	}
	return recs, nil
}
