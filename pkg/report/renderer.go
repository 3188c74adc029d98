package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const currencyFormat = "₹#,##0.00"

var thinBorders = []excelize.Border{
	{Type: "left", Color: "000000", Style: 1},
	{Type: "right", Color: "000000", Style: 1},
	{Type: "top", Color: "000000", Style: 1},
	{Type: "bottom", Color: "000000", Style: 1},
}

func headerStyle(f *excelize.File, fill string) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{fill}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders,
	})
}

func dataStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{
			Vertical: "center",
			WrapText: true,
		},
		Border: thinBorders,
	})
}

func newSheet(profile Profile) (*excelize.File, error) {
	f := excelize.NewFile()
	index, err := f.NewSheet(profile.Sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")
	return f, nil
}

// Render writes a header row plus the data rows in the profile's layout:
// bold yellow header, thin borders throughout, optional frozen header row
// and auto filter.
func Render(profile Profile, rows []Row) (*excelize.File, error) {
	f, err := newSheet(profile)
	if err != nil {
		return nil, err
	}
	sheet := profile.Sheet

	header, err := headerStyle(f, "FFFF00")
	if err != nil {
		return nil, err
	}
	data, err := dataStyle(f)
	if err != nil {
		return nil, err
	}

	for colIdx, col := range profile.Columns {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 1)
		f.SetCellValue(sheet, cell, col.Header)
		f.SetCellStyle(sheet, cell, cell, header)

		width := col.Width
		if width == 0 {
			width = defaultColWidth
		}
		name, _ := excelize.ColumnNumberToName(colIdx + 1)
		f.SetColWidth(sheet, name, name, width)
	}

	for rowIdx, row := range rows {
		for colIdx, value := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheet, cell, value)
			f.SetCellStyle(sheet, cell, cell, data)
		}
	}

	if profile.Freeze {
		f.SetPanes(sheet, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		})
	}
	if profile.AutoFilter {
		last, _ := excelize.CoordinatesToCellName(len(profile.Columns), 1)
		f.AutoFilter(sheet, fmt.Sprintf("A1:%s", last), nil)
	}

	return f, nil
}

// Section is one titled block of rows inside a sectioned workbook.
type Section struct {
	Title string
	Rows  []Row
}

// RenderSections writes several titled blocks into one sheet over the
// profile's shared column layout: each section gets a merged bold title
// row, a blank spacer, its own header row, then its data rows, with a
// blank row separating it from the next section.
func RenderSections(profile Profile, sections []Section) (*excelize.File, error) {
	f, err := newSheet(profile)
	if err != nil {
		return nil, err
	}
	sheet := profile.Sheet

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}
	header, err := headerStyle(f, "FFFF00")
	if err != nil {
		return nil, err
	}
	data, err := dataStyle(f)
	if err != nil {
		return nil, err
	}

	for colIdx, col := range profile.Columns {
		width := col.Width
		if width == 0 {
			width = defaultColWidth
		}
		name, _ := excelize.ColumnNumberToName(colIdx + 1)
		f.SetColWidth(sheet, name, name, width)
	}

	rowCursor := 1
	for _, section := range sections {
		first, _ := excelize.CoordinatesToCellName(1, rowCursor)
		last, _ := excelize.CoordinatesToCellName(len(profile.Columns), rowCursor)
		f.SetCellValue(sheet, first, section.Title)
		f.MergeCell(sheet, first, last)
		f.SetCellStyle(sheet, first, last, titleStyle)
		rowCursor += 2

		for colIdx, col := range profile.Columns {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowCursor)
			f.SetCellValue(sheet, cell, col.Header)
			f.SetCellStyle(sheet, cell, cell, header)
		}
		rowCursor++

		for _, row := range section.Rows {
			for colIdx, value := range row {
				cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowCursor)
				f.SetCellValue(sheet, cell, value)
				f.SetCellStyle(sheet, cell, cell, data)
			}
			rowCursor++
		}
		rowCursor++
	}

	return f, nil
}

// RenderCustomerReport lays out the monthly report: a merged title row, a
// spacer, the grouped header row, then data rows with the currency format
// on the derived numeric cells and auto-fit column widths.
func RenderCustomerReport(title string, rows []Row) (*excelize.File, error) {
	profile := CustomerReportProfile()
	f, err := newSheet(profile)
	if err != nil {
		return nil, err
	}
	sheet := profile.Sheet

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, err
	}
	f.SetCellValue(sheet, "A1", title)
	f.MergeCell(sheet, "A1", "Z1")
	f.SetCellStyle(sheet, "A1", "Z1", titleStyle)

	header, err := headerStyle(f, "FFF9C4")
	if err != nil {
		return nil, err
	}
	data, err := dataStyle(f)
	if err != nil {
		return nil, err
	}
	numFmt := currencyFormat
	currency, err := f.NewStyle(&excelize.Style{
		Alignment:    &excelize.Alignment{Vertical: "center"},
		Border:       thinBorders,
		CustomNumFmt: &numFmt,
	})
	if err != nil {
		return nil, err
	}

	// row 1 title, row 2 blank, row 3 header
	for colIdx, col := range profile.Columns {
		if col.Header == "" {
			continue
		}
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 3)
		f.SetCellValue(sheet, cell, col.Header)
		f.SetCellStyle(sheet, cell, cell, header)
	}

	for rowIdx, row := range rows {
		for colIdx, value := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+4)
			f.SetCellValue(sheet, cell, value)
			if _, isNumber := value.(float64); isNumber {
				f.SetCellStyle(sheet, cell, cell, currency)
			} else {
				f.SetCellStyle(sheet, cell, cell, data)
			}
		}
	}

	f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      3,
		TopLeftCell: "A4",
		ActivePane:  "bottomLeft",
	})

	setCustomerWidths(f, sheet, profile, rows)
	return f, nil
}

// setCustomerWidths auto-fits every column to its longest cell, with a
// floor of 10 and a cap of 50, then widens the two free-text columns that
// are expected to wrap.
func setCustomerWidths(f *excelize.File, sheet string, profile Profile, rows []Row) {
	for colIdx, col := range profile.Columns {
		max := 10
		if n := len(col.Header); n > max {
			max = n
		}
		for _, row := range rows {
			if colIdx >= len(row) {
				continue
			}
			if n := len(fmt.Sprint(row[colIdx])); n > max {
				max = n
			}
		}
		width := float64(max + 2)
		if width > 50 {
			width = 50
		}
		name, _ := excelize.ColumnNumberToName(colIdx + 1)
		f.SetColWidth(sheet, name, name, width)
	}

	if i := profile.headerIndex("Part Disbursed Details"); i >= 0 {
		name, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, name, name, 60)
	}
	if i := profile.headerIndex("Remarks"); i >= 0 {
		name, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, name, name, 80)
	}
}
