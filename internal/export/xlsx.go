package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"picdesc/internal/domain"
)

// SheetName is the worksheet holding the picture rows.
const SheetName = "Pictures"

var columnWidths = []float64{16, 18, 40, 80, 36}

// WriteXLSX writes out as a single-sheet workbook with a bold header row.
func WriteXLSX(w io.Writer, out *domain.Output) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(columns), 1)
	if err := f.SetCellStyle(SheetName, "A1", last, bold); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	for i := range out.Pictures {
		p := &out.Pictures[i]
		row := []interface{}{p.PictureNumber, p.Reference, p.Caption, "", ""}
		if p.Description != nil {
			row[3] = p.Description.Text
			row[4] = p.Description.CreatedBy
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("writing picture %d: %w", p.PictureNumber, err)
		}
	}

	for i, width := range columnWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(SheetName, col, col, width); err != nil {
			return fmt.Errorf("sizing column %s: %w", col, err)
		}
	}

	_, err = f.WriteTo(w)
	return err
}
