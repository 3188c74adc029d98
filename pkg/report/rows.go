package report

import (
	"fmt"
	"strings"
	"time"

	"p9e.in/loantrack/models"
	"p9e.in/loantrack/utils"
)

// Row is one spreadsheet row. Cells are strings except for the numeric
// derived columns, which stay float64 so the renderer can attach a
// currency format; a blank derived cell is the empty string, not zero.
type Row []interface{}

// MergedRemarks folds the internal costing fields into the Master
// workbook's single summary cell. Empty fields are omitted.
func MergedRemarks(app *models.Application) string {
	parts := []string{}
	if app.Consulting != "" {
		parts = append(parts, "Consulting: "+app.Consulting)
	}
	if app.Payout != "" {
		parts = append(parts, "Payout: "+app.Payout)
	}
	if app.ExpenceAmount != "" {
		parts = append(parts, "Expense: "+app.ExpenceAmount)
	}
	if app.FeesRefundAmount != "" {
		parts = append(parts, "Refund: "+app.FeesRefundAmount)
	}
	if app.Remark != "" {
		parts = append(parts, "Remark: "+app.Remark)
	}
	return strings.Join(parts, " | ")
}

// CustomerRemark is the monthly-report remark cell. Every field is always
// present, with "N/A" standing in for blanks.
func CustomerRemark(app *models.Application) string {
	orNA := func(s string) string {
		if s == "" {
			return "N/A"
		}
		return s
	}
	return fmt.Sprintf("Remark: %s | Consulting: %s | Payout: %s | Expense: %s | Fees Refund: %s",
		orNA(app.Remark), orNA(app.Consulting), orNA(app.Payout),
		orNA(app.ExpenceAmount), orNA(app.FeesRefundAmount))
}

// PartDetails serializes the installment list into one cell.
func PartDetails(parts models.PartDisbursements) string {
	out := make([]string, 0, len(parts))
	for i, p := range parts {
		out = append(out, fmt.Sprintf("Part-%d: {Date: %s, Amount: %s}", i+1, p.Date.Indian(), p.Amount))
	}
	return strings.Join(out, " | ")
}

// PartTotals derives the summed installment amount and the remaining
// balance against the sanction. Both cells stay blank unless the record is
// in Part Disbursed status; a malformed amount counts as zero.
func PartTotals(app *models.Application) (total, remaining interface{}) {
	if app.Status != models.StatusPartDisbursed {
		return "", ""
	}
	var sum float64
	for _, p := range app.PartDisbursed {
		sum += utils.NormalizeNumber(p.Amount)
	}
	return sum, utils.NormalizeNumber(app.SanctionAmount) - sum
}

// applicationScalars renders the shared column run of MasterProfile and
// SalesProfile, resolving the "Other" escape hatches in place.
func applicationScalars(app *models.Application) Row {
	return Row{
		utils.ResolveOtherField(app.Code, app.OtherCode),
		app.Name,
		app.Mobile,
		app.Email,
		utils.ResolveOtherField(app.Product, app.OtherProduct),
		app.Amount,
		utils.ResolveOtherField(app.Bank, app.OtherBank),
		app.BankerName,
		app.Status,
		app.ApprovalStatus,
		app.LoginDate.Indian(),
		app.Sales,
		app.Ref,
		app.SourceChannel,
		app.OtherSourceChannel,
		app.Category,
		app.OtherCategory,
		app.PropertyType,
		app.PropertyDetails,
		app.PDStatus,
		app.PDRemark,
		app.PDDate.Indian(),
		app.RejectedRemark,
		app.WithdrawRemark,
		app.HoldRemark,
		app.SanctionDate.Indian(),
		app.SanctionAmount,
		app.DisbursedDate.Indian(),
		app.DisbursedAmount,
		app.LoanNumber,
		app.InsuranceOption,
		app.InsuranceAmount,
		app.SubventionOption,
		app.SubventionAmount,
		PartDetails(app.PartDisbursed),
		app.ReloginReason,
		app.CreatedAt.Format("02-01-2006"),
	}
}

// BuildMasterRows renders one row per application for the Master workbook.
func BuildMasterRows(apps []models.Application) []Row {
	rows := make([]Row, 0, len(apps))
	for i := range apps {
		row := applicationScalars(&apps[i])
		row = append(row, MergedRemarks(&apps[i]))
		rows = append(rows, row)
	}
	return rows
}

// BuildSalesRows renders one row per application for the Sales workbook,
// with the costing fields kept as separate trailing columns.
func BuildSalesRows(apps []models.Application) []Row {
	rows := make([]Row, 0, len(apps))
	for i := range apps {
		app := &apps[i]
		row := applicationScalars(app)
		row = append(row,
			app.OtherCode, app.OtherProduct, app.OtherBank,
			app.Consulting, app.Payout, app.ExpenceAmount,
			app.FeesRefundAmount, app.Remark,
		)
		rows = append(rows, row)
	}
	return rows
}

func formatAt(at *time.Time) string {
	if at == nil {
		return ""
	}
	return at.Format("2006-01-02")
}

func propertySizeCells(p models.PropertySize) Row {
	return Row{
		p.Size, p.Floor, p.Sqft, p.BasicRate, p.SellableAmount,
		p.RegularPrice, p.DownPayment, p.Maintenance, p.AecAuda,
		p.DevelopmentCharge, p.ParkingCharge, p.LegalFees, p.GstAmount,
		p.OtherCharges,
	}
}

// mergePropertySizes serializes the line items into one cell, omitting
// blank fields.
func mergePropertySizes(sizes models.PropertySizes) string {
	items := make([]string, 0, len(sizes))
	for i, p := range sizes {
		fields := []struct{ name, value string }{
			{"Size", p.Size}, {"Floor", p.Floor}, {"Sqft", p.Sqft},
			{"Basic Rate", p.BasicRate}, {"Sellable Amount", p.SellableAmount},
			{"Regular Price", p.RegularPrice}, {"Down Payment", p.DownPayment},
			{"Maintenance", p.Maintenance}, {"AEC/AUDA", p.AecAuda},
			{"Development Charge", p.DevelopmentCharge},
			{"Parking Charge", p.ParkingCharge}, {"Legal Fees", p.LegalFees},
			{"GST Amount", p.GstAmount}, {"Other Charges", p.OtherCharges},
		}
		segs := make([]string, 0, len(fields))
		for _, f := range fields {
			if f.value != "" {
				segs = append(segs, f.name+":"+f.value)
			}
		}
		items = append(items, fmt.Sprintf("Item %d: %s", i+1, strings.Join(segs, ", ")))
	}
	return strings.Join(items, " | ")
}

func builderVisitScalars(v *models.BuilderVisit) Row {
	return Row{
		v.GroupName,
		v.ProjectName,
		v.BuilderName,
		v.BuilderNumber,
		v.Location,
		v.OfficePersonDetails,
		v.OfficePersonNumber,
		v.DateOfVisit.Indian(),
		v.BusinessType,
		v.Executives.Display(),
		v.LoanAccountNumber,
		v.StageOfConstruction,
		v.DevelopmentType,
		v.AreaType,
		v.TotalUnitsBlocks,
		v.TotalBlocks,
	}
}

func builderVisitTrailing(v *models.BuilderVisit) Row {
	return Row{
		v.ExpectedCompletionDate.Indian(),
		v.Negotiable,
		v.FinancingRequirements,
		v.ResidentType,
		v.NearbyProjects,
		v.SurroundingCommunity,
		v.EnquiryType,
		v.UnitsForSale,
		v.TimeLimitMonths,
		v.Remark,
		v.Payout,
		v.SaiFakiraManager,
		v.ApprovalStatus,
		v.Approval.Level1.Status,
		v.Approval.Level1.By,
		formatAt(v.Approval.Level1.At),
		v.Approval.Level1.Comment,
		v.Approval.Level2.Status,
		v.Approval.Level2.By,
		formatAt(v.Approval.Level2.At),
		v.Approval.Level2.Comment,
		strings.Join(v.Usps, ", "),
		v.TotalAmenities,
		v.AllotedCarParking,
		v.ClearFloorHeight,
		v.ClearFloorHeightRetail,
		v.ClearFloorHeightFlats,
		v.ClearFloorHeightOffices,
	}
}

// BuildBuilderVisitRows renders the visit export. Under FanOutRows each
// property size yields its own row with the parent fields repeated; a
// visit with no sizes still yields one row with the size columns blank.
// Under MergeIntoCell every visit is a single row.
func BuildBuilderVisitRows(visits []models.BuilderVisit, policy NestedPolicy) []Row {
	rows := make([]Row, 0, len(visits))
	for i := range visits {
		v := &visits[i]
		scalars := builderVisitScalars(v)
		trailing := builderVisitTrailing(v)

		if policy == MergeIntoCell {
			row := append(Row{}, scalars...)
			row = append(row, mergePropertySizes(v.PropertySizes))
			row = append(row, trailing...)
			rows = append(rows, row)
			continue
		}

		sizes := v.PropertySizes
		if len(sizes) == 0 {
			sizes = models.PropertySizes{{}}
		}
		for _, p := range sizes {
			row := append(Row{}, scalars...)
			row = append(row, propertySizeCells(p)...)
			row = append(row, trailing...)
			rows = append(rows, row)
		}
	}
	return rows
}

// BuildCustomerRows renders the monthly customer report: the login column
// group, two blank separator cells, then the disbursement group with the
// derived installment totals.
func BuildCustomerRows(apps []models.Application) []Row {
	rows := make([]Row, 0, len(apps))
	for i := range apps {
		app := &apps[i]
		total, remaining := PartTotals(app)

		row := Row{
			i + 1,
			utils.ResolveOtherField(app.Code, app.OtherCode),
			app.Name,
			app.Mobile,
			utils.ResolveOtherField(app.Product, app.OtherProduct),
			app.Amount,
			utils.ResolveOtherField(app.Bank, app.OtherBank),
			app.BankerName,
			app.Status,
			app.LoginDate.Indian(),
			app.Sales,
			app.Ref,
			utils.ResolveOtherField(app.SourceChannel, app.OtherSourceChannel),
			app.Email,
			app.PropertyType,
			app.PropertyDetails,
			CustomerRemark(app),
			utils.ResolveOtherField(app.Category, app.OtherCategory),
			app.PDStatus,
			app.PDRemark,
			app.PDDate.Indian(),
			app.RejectedRemark,
			app.WithdrawRemark,
			app.HoldRemark,
			"", "",
			app.SanctionDate.Indian(),
			app.SanctionAmount,
			app.DisbursedDate.Indian(),
			app.DisbursedAmount,
			app.LoanNumber,
			app.InsuranceOption,
			app.InsuranceAmount,
			app.SubventionOption,
			app.SubventionAmount,
			PartDetails(app.PartDisbursed),
			total,
			remaining,
			app.ReloginReason,
		}
		rows = append(rows, row)
	}
	return rows
}
