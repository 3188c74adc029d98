// Package report flattens application and builder-visit records into
// styled spreadsheet workbooks. A Profile is the explicit column manifest
// for one report kind; the row builders produce cell matrices against a
// manifest, and the renderer turns a manifest plus rows into an xlsx file.
package report

// NestedPolicy controls how a variable-length nested collection is
// flattened.
type NestedPolicy int

const (
	// MergeIntoCell serializes the collection into one delimited text
	// cell on a single row per parent record.
	MergeIntoCell NestedPolicy = iota
	// FanOutRows emits one row per nested item, repeating the parent's
	// scalar fields on every row.
	FanOutRows
)

// Column is one spreadsheet column. Width 0 means auto-fit.
type Column struct {
	Header string
	Width  float64
}

// Profile is the column manifest and layout switches for one report kind.
type Profile struct {
	Name       string
	Sheet      string
	Columns    []Column
	Freeze     bool
	AutoFilter bool
}

const defaultColWidth = 25

func cols(headers ...string) []Column {
	out := make([]Column, len(headers))
	for i, h := range headers {
		out[i] = Column{Header: h, Width: defaultColWidth}
	}
	return out
}

// applicationColumns is the shared scalar column run for the Master and
// Sales workbooks, in record-field order.
var applicationColumns = []string{
	"Code", "Name", "Mobile", "Email", "Product", "Amount", "Bank",
	"Banker Name", "Status", "Approval Status", "Login Date", "Sales",
	"Ref", "Source Channel", "Other Source Channel", "Category",
	"Other Category", "Property Type", "Property Details", "PD Status",
	"PD Remark", "PD Date", "Rejected Remark", "Withdraw Remark",
	"Hold Remark", "Sanction Date", "Sanction Amount", "Disbursed Date",
	"Disbursed Amount", "Loan Number", "Insurance Option",
	"Insurance Amount", "Subvention Option", "Subvention Amount",
	"Part Disbursed", "Re-login Reason", "Created At",
}

// MasterProfile hides the internal costing fields and folds them into one
// trailing summary column.
func MasterProfile() Profile {
	columns := cols(applicationColumns...)
	columns = append(columns, Column{Header: "Remarks (Team + Consulting + Payout + Refund)", Width: 60})
	return Profile{Name: "Master", Sheet: "Master", Columns: columns}
}

// SalesProfile is the full record view with the costing fields kept as
// separate columns.
func SalesProfile() Profile {
	columns := cols(applicationColumns...)
	columns = append(columns, cols(
		"Other Code", "Other Product", "Other Bank",
		"Consulting", "Payout", "Expence Amount", "Fees Refund Amount", "Remark",
	)...)
	return Profile{Name: "Sales", Sheet: "Sales", Columns: columns}
}

// builderVisitScalarColumns is the fixed parent-field sequence for the
// builder-visit export.
var builderVisitScalarColumns = []string{
	"Developer Group Name", "Project Name", "Developer Name",
	"Developer Number", "Location", "Office Person Name",
	"Office Person Number", "Date Of Visit", "Business Type",
	"Executives", "Loan Account Number", "Stage Of Construction",
	"Development Type", "Area Type", "Total Units / Blocks", "Total Blocks",
}

// propertySizeColumns is the per-line-item column run used when property
// sizes fan out into one row each.
var propertySizeColumns = []string{
	"Size", "Floor", "Sqft", "Basic Rate", "Sellable Amount",
	"Regular Price", "Down Payment", "Maintenance", "AEC/AUDA",
	"Development Charge", "Parking Charge", "Legal Fees", "GST Amount",
	"Other Charges",
}

var builderVisitTrailingColumns = []string{
	"Expected Completion", "Negotiable", "Financing Requirements",
	"Resident Type", "Nearby Projects", "Surrounding Community",
	"Enquiry Type", "Units For Sale", "Time Limit (Months)", "Remark",
	"Payout", "Sai Fakira Manager", "Approval Status",
	"Level 1 Status", "Level 1 By", "Level 1 At", "Level 1 Comment",
	"Level 2 Status", "Level 2 By", "Level 2 At", "Level 2 Comment",
	"USPs", "Total Amenities", "Allotted Car Parking",
	"Clear Floor Height", "Retail Floor Height", "Flats Floor Height",
	"Offices Floor Height",
}

// BuilderVisitProfile lays out the visit export for the given nesting
// policy: fan-out spreads each property size over the per-item column run,
// merge keeps a single serialized "Property Sizes" cell.
func BuilderVisitProfile(policy NestedPolicy) Profile {
	columns := cols(builderVisitScalarColumns...)
	if policy == FanOutRows {
		columns = append(columns, cols(propertySizeColumns...)...)
	} else {
		columns = append(columns, Column{Header: "Property Sizes", Width: 60})
	}
	columns = append(columns, cols(builderVisitTrailingColumns...)...)
	return Profile{
		Name:       "BuilderVisits",
		Sheet:      "Builder Visits",
		Columns:    columns,
		Freeze:     true,
		AutoFilter: true,
	}
}

// customerLoginColumns and customerDisbursedColumns are the two grouped
// runs of the monthly customer report, separated by two blank columns.
var customerLoginColumns = []string{
	"S.No", "Code", "Name", "Mobile", "Product", "Req Loan Amount",
	"Bank", "Banker Name", "Status", "Login Date", "Sales", "Ref",
	"Source Channel", "Email", "Property Type", "Property Details",
	"Remarks", "Category", "PD Status", "PD Remark", "PD Date",
	"Rejected Remark", "Withdraw Remark", "Hold Remark",
}

var customerDisbursedColumns = []string{
	"Sanction Date", "Sanction Amount", "Disbursed Date",
	"Disbursed Amount", "Loan Number", "Insurance Option",
	"Insurance Amount", "Subvention Option", "Subvention Amount",
	"Part Disbursed Details", "Total Part Disbursed Amount",
	"Remaining Amount", "Re-login Reason",
}

// CustomerReportProfile is the monthly report layout. Widths are auto-fit
// by the renderer except for the two wide free-text columns.
func CustomerReportProfile() Profile {
	headers := make([]string, 0, len(customerLoginColumns)+2+len(customerDisbursedColumns))
	headers = append(headers, customerLoginColumns...)
	headers = append(headers, "", "")
	headers = append(headers, customerDisbursedColumns...)

	columns := make([]Column, len(headers))
	for i, h := range headers {
		columns[i] = Column{Header: h}
	}
	return Profile{Name: "CustomerReport", Sheet: "Monthly Report", Columns: columns}
}

// headerIndex returns the zero-based column index of a header, or -1.
func (p Profile) headerIndex(header string) int {
	for i, c := range p.Columns {
		if c.Header == header {
			return i
		}
	}
	return -1
}
