package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"p9e.in/loantrack/models"
)

func TestSanitizeMonth(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"clean", "2024-03", "2024-03"},
		{"trailing colon fragment", "2024-03:1", "2024-03"},
		{"stray characters", " 2024-03x ", "2024-03"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeMonth(tt.in))
		})
	}
}

func TestMonthRange(t *testing.T) {
	start, end, err := MonthRange("2024-02")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 2, 29, 23, 59, 59, 999000000, time.UTC), end)

	for _, bad := range []string{"", "2024", "2024-3", "03-2024", "soon"} {
		_, _, err := MonthRange(bad)
		assert.ErrorIs(t, err, ErrInvalidMonth, "month %q", bad)
	}
}

func TestFilterByMonth(t *testing.T) {
	apps := []models.Application{
		{Name: "late", LoginDate: date(2024, 3, 28)},
		{Name: "outside", LoginDate: date(2024, 4, 1)},
		{Name: "early", LoginDate: date(2024, 3, 2)},
		{Name: "undated"},
	}

	got, err := FilterByMonth(apps, "2024-03")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "early", got[0].Name, "sorted by login date ascending")
	assert.Equal(t, "late", got[1].Name)
}

func TestFilterByMonthEmpty(t *testing.T) {
	apps := []models.Application{{Name: "x", LoginDate: date(2024, 5, 1)}}

	_, err := FilterByMonth(apps, "2024-03")
	assert.ErrorIs(t, err, ErrNoMatchingRecords)
}

func TestExportFilename(t *testing.T) {
	at := time.UnixMilli(1717243200000)

	assert.Equal(t, "Master_All_1717243200000.xlsx", ExportFilename("Master", "", at))
	assert.Equal(t, "Sales_Rahul_Shah_1717243200000.xlsx", ExportFilename("Sales", "Rahul Shah", at))
	assert.Equal(t, "Builder_Visits_Approved_1717243200000.xlsx", ExportFilename("Builder_Visits", "Approved", at))
}

func TestCustomerReportFilename(t *testing.T) {
	assert.Equal(t, "Customer_Report_All_Sales_2024-03.xlsx", CustomerReportFilename("", "2024-03"))
	assert.Equal(t, "Customer_Report_Rahul_Shah_2024-03.xlsx", CustomerReportFilename("Rahul Shah", "2024-03"))
	assert.Equal(t, "Monthly Report - All Sales - 2024-03", CustomerReportTitle(" ", "2024-03"))
}
