package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"p9e.in/loantrack/models"
)

func TestRenderBuilderVisits(t *testing.T) {
	profile := BuilderVisitProfile(FanOutRows)
	rows := BuildBuilderVisitRows([]models.BuilderVisit{
		{ProjectName: "Green Acres", PropertySizes: models.PropertySizes{{Size: "2BHK"}}},
	}, FanOutRows)

	f, err := Render(profile, rows)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetCellValue(profile.Sheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Developer Group Name", got)

	cell, _ := cellAt(profile.headerIndex("Project Name"), 2)
	got, err = f.GetCellValue(profile.Sheet, cell)
	require.NoError(t, err)
	assert.Equal(t, "Green Acres", got)
}

func TestRenderSections(t *testing.T) {
	profile := Profile{
		Name:    "part_disbursed",
		Sheet:   "Report",
		Columns: cols("Name", "Amount"),
	}
	sections := []Section{
		{Title: "PART DISBURSED CASES", Rows: []Row{{"John Doe", "400000"}}},
		{Title: "MASTER DATA", Rows: []Row{{"Jane Roe", "900000"}, {"Amit Patel", "150000"}}},
	}

	f, err := RenderSections(profile, sections)
	require.NoError(t, err)
	defer f.Close()

	// each section is title, spacer, header, data; sections are separated
	// by one blank row
	for cell, want := range map[string]string{
		"A1": "PART DISBURSED CASES",
		"A2": "",
		"A3": "Name",
		"B3": "Amount",
		"A4": "John Doe",
		"A5": "",
		"A6": "MASTER DATA",
		"A8": "Name",
		"A9": "Jane Roe",
		"A10": "Amit Patel",
		"B10": "150000",
	} {
		got, err := f.GetCellValue(profile.Sheet, cell)
		require.NoError(t, err)
		assert.Equal(t, want, got, cell)
	}

	merged, err := f.GetMergeCells(profile.Sheet)
	require.NoError(t, err)
	require.Len(t, merged, 2)
	assert.Equal(t, "A1", merged[0].GetStartAxis())
	assert.Equal(t, "B1", merged[0].GetEndAxis())
	assert.Equal(t, "A6", merged[1].GetStartAxis())
}

func TestRenderCustomerReport(t *testing.T) {
	apps := []models.Application{{
		Name:           "John Doe",
		Status:         models.StatusPartDisbursed,
		LoginDate:      date(2024, 3, 5),
		SanctionAmount: "1000000",
		PartDisbursed:  models.PartDisbursements{{Date: date(2024, 3, 20), Amount: "400000"}},
	}}
	rows := BuildCustomerRows(apps)

	f, err := RenderCustomerReport(CustomerReportTitle("Rahul Shah", "2024-03"), rows)
	require.NoError(t, err)
	defer f.Close()

	sheet := CustomerReportProfile().Sheet

	got, err := f.GetCellValue(sheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Monthly Report - Rahul Shah - 2024-03", got)

	// header lands on row 3 after title and spacer
	got, err = f.GetCellValue(sheet, "A3")
	require.NoError(t, err)
	assert.Equal(t, "S.No", got)

	cell, _ := cellAt(CustomerReportProfile().headerIndex("Name"), 4)
	got, err = f.GetCellValue(sheet, cell)
	require.NoError(t, err)
	assert.Equal(t, "John Doe", got)
}

func cellAt(colIdx, row int) (string, error) {
	return excelize.CoordinatesToCellName(colIdx+1, row)
}
