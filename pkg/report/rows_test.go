package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"p9e.in/loantrack/models"
)

func date(y int, m time.Month, d int) models.FlexDate {
	return models.FlexDate(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func TestMergedRemarksOmitsBlanks(t *testing.T) {
	app := &models.Application{Consulting: "2%", Remark: "priority client"}
	assert.Equal(t, "Consulting: 2% | Remark: priority client", MergedRemarks(app))

	assert.Equal(t, "", MergedRemarks(&models.Application{}))
}

func TestCustomerRemarkFillsNA(t *testing.T) {
	app := &models.Application{Remark: "call back", Payout: "1.5%"}
	assert.Equal(t,
		"Remark: call back | Consulting: N/A | Payout: 1.5% | Expense: N/A | Fees Refund: N/A",
		CustomerRemark(app))
}

func TestPartDetails(t *testing.T) {
	parts := models.PartDisbursements{
		{Date: date(2024, 3, 10), Amount: "5,00,000"},
		{Date: date(2024, 4, 2), Amount: "250000"},
	}
	assert.Equal(t,
		"Part-1: {Date: 10-03-2024, Amount: 5,00,000} | Part-2: {Date: 02-04-2024, Amount: 250000}",
		PartDetails(parts))

	assert.Equal(t, "", PartDetails(nil))
}

func TestPartTotals(t *testing.T) {
	app := &models.Application{
		Status:         models.StatusPartDisbursed,
		SanctionAmount: "10,00,000",
		PartDisbursed: models.PartDisbursements{
			{Amount: "5,00,000"},
			{Amount: "250000"},
			{Amount: "not-a-number"},
		},
	}

	total, remaining := PartTotals(app)
	assert.Equal(t, 750000.0, total)
	assert.Equal(t, 250000.0, remaining)
}

func TestPartTotalsBlankOutsidePartDisbursed(t *testing.T) {
	app := &models.Application{
		Status:         "Disbursed",
		SanctionAmount: "10,00,000",
		PartDisbursed:  models.PartDisbursements{{Amount: "5,00,000"}},
	}

	total, remaining := PartTotals(app)
	assert.Equal(t, "", total, "blank, not zero")
	assert.Equal(t, "", remaining)
}

func TestMasterRowsResolveOtherAndMergeRemarks(t *testing.T) {
	apps := []models.Application{{
		Code: "Other", OtherCode: "REF-77",
		Name: "John Doe", Mobile: "9876543210",
		Bank: "Other", OtherBank: "Tata Capital",
		Product:    "HL",
		Consulting: "2%", Remark: "priority",
	}}

	profile := MasterProfile()
	rows := BuildMasterRows(apps)
	require.Len(t, rows, 1)
	require.Len(t, rows[0], len(profile.Columns))

	assert.Equal(t, "REF-77", rows[0][profile.headerIndex("Code")])
	assert.Equal(t, "Tata Capital", rows[0][profile.headerIndex("Bank")])
	assert.Equal(t, "HL", rows[0][profile.headerIndex("Product")])
	assert.Equal(t, "Consulting: 2% | Remark: priority",
		rows[0][profile.headerIndex("Remarks (Team + Consulting + Payout + Refund)")])
}

func TestSalesRowsKeepCostingColumns(t *testing.T) {
	apps := []models.Application{{
		Name: "John Doe", Consulting: "2%", Payout: "1%",
		ExpenceAmount: "500", FeesRefundAmount: "0", Remark: "ok",
	}}

	profile := SalesProfile()
	rows := BuildSalesRows(apps)
	require.Len(t, rows, 1)
	require.Len(t, rows[0], len(profile.Columns))

	assert.Equal(t, "2%", rows[0][profile.headerIndex("Consulting")])
	assert.Equal(t, "1%", rows[0][profile.headerIndex("Payout")])
	assert.Equal(t, "ok", rows[0][profile.headerIndex("Remark")])
}

func TestBuilderVisitFanOut(t *testing.T) {
	visits := []models.BuilderVisit{
		{
			ProjectName: "Green Acres",
			BuilderName: "Shree Developers",
			PropertySizes: models.PropertySizes{
				{Size: "2BHK", Sqft: "1100"},
				{Size: "3BHK", Sqft: "1550"},
				{Size: "Shop", Sqft: "400"},
			},
		},
		{ProjectName: "Sky Heights", BuilderName: "Om Builders"},
	}

	profile := BuilderVisitProfile(FanOutRows)
	rows := BuildBuilderVisitRows(visits, FanOutRows)

	// sum over records of max(1, len(propertySizes))
	require.Len(t, rows, 4)
	for _, row := range rows {
		require.Len(t, row, len(profile.Columns))
	}

	projectCol := profile.headerIndex("Project Name")
	sizeCol := profile.headerIndex("Size")
	for i := 0; i < 3; i++ {
		assert.Equal(t, "Green Acres", rows[i][projectCol], "parent fields repeat on every fanned-out row")
	}
	assert.Equal(t, "2BHK", rows[0][sizeCol])
	assert.Equal(t, "3BHK", rows[1][sizeCol])
	assert.Equal(t, "Shop", rows[2][sizeCol])

	// a visit without sizes still gets one row, size cells blank
	assert.Equal(t, "Sky Heights", rows[3][projectCol])
	assert.Equal(t, "", rows[3][sizeCol])
}

func TestBuilderVisitMergeIntoCell(t *testing.T) {
	visits := []models.BuilderVisit{{
		ProjectName: "Green Acres",
		PropertySizes: models.PropertySizes{
			{Size: "2BHK", Sqft: "1100"},
			{Size: "3BHK", Floor: "7"},
		},
	}}

	profile := BuilderVisitProfile(MergeIntoCell)
	rows := BuildBuilderVisitRows(visits, MergeIntoCell)
	require.Len(t, rows, 1)

	cell := rows[0][profile.headerIndex("Property Sizes")]
	assert.Equal(t, "Item 1: Size:2BHK, Sqft:1100 | Item 2: Size:3BHK, Floor:7", cell)
}

func TestBuilderVisitApprovalColumns(t *testing.T) {
	at := time.Date(2024, 5, 20, 11, 0, 0, 0, time.UTC)
	visits := []models.BuilderVisit{{
		Executives: models.Executives{{Name: "Amit", Number: "9876543210"}},
		Usps:       models.StringArray{"clubhouse", "metro nearby"},
		Approval: models.Approval{
			Level1: models.ApprovalLevel{Status: models.LevelApproved, By: "field-manager", At: &at},
			Level2: models.ApprovalLevel{Status: models.LevelApproved, By: "director", At: &at},
		},
		ApprovalStatus: models.StatusLevel2Approved,
	}}

	profile := BuilderVisitProfile(FanOutRows)
	rows := BuildBuilderVisitRows(visits, FanOutRows)
	require.Len(t, rows, 1)

	assert.Equal(t, "Amit (9876543210)", rows[0][profile.headerIndex("Executives")])
	assert.Equal(t, "clubhouse, metro nearby", rows[0][profile.headerIndex("USPs")])
	assert.Equal(t, "Approved", rows[0][profile.headerIndex("Level 1 Status")])
	assert.Equal(t, "2024-05-20", rows[0][profile.headerIndex("Level 2 At")])
	assert.Equal(t, models.StatusLevel2Approved, rows[0][profile.headerIndex("Approval Status")])
}

func TestCustomerRowsShape(t *testing.T) {
	apps := []models.Application{
		{
			Name: "John Doe", Status: models.StatusPartDisbursed,
			LoginDate:      date(2024, 3, 5),
			SanctionAmount: "1000000",
			PartDisbursed:  models.PartDisbursements{{Date: date(2024, 3, 20), Amount: "400000"}},
		},
		{Name: "Jane Roe", Status: "Login", LoginDate: date(2024, 3, 9)},
	}

	profile := CustomerReportProfile()
	rows := BuildCustomerRows(apps)
	require.Len(t, rows, 2)
	require.Len(t, rows[0], len(profile.Columns))

	assert.Equal(t, 1, rows[0][profile.headerIndex("S.No")])
	assert.Equal(t, 2, rows[1][profile.headerIndex("S.No")])
	assert.Equal(t, "05-03-2024", rows[0][profile.headerIndex("Login Date")])

	// the two separator columns stay blank
	sep := len(customerLoginColumns)
	assert.Equal(t, "", rows[0][sep])
	assert.Equal(t, "", rows[0][sep+1])

	assert.Equal(t, 400000.0, rows[0][profile.headerIndex("Total Part Disbursed Amount")])
	assert.Equal(t, 600000.0, rows[0][profile.headerIndex("Remaining Amount")])
	assert.Equal(t, "", rows[1][profile.headerIndex("Total Part Disbursed Amount")])
}
