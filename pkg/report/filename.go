package report

import (
	"fmt"
	"strings"
	"time"
)

// ExportFilename names a Master/Sales/Builder_Visits workbook:
// <kind>_<ref|All>_<millis>.xlsx.
func ExportFilename(kind, ref string, at time.Time) string {
	if ref == "" {
		ref = "All"
	}
	return fmt.Sprintf("%s_%s_%d.xlsx", kind, strings.ReplaceAll(ref, " ", "_"), at.UnixMilli())
}

// CustomerReportFilename names the monthly workbook:
// Customer_Report_<sales|All_Sales>_<YYYY-MM>.xlsx.
func CustomerReportFilename(sales, month string) string {
	if strings.TrimSpace(sales) == "" {
		sales = "All Sales"
	}
	return fmt.Sprintf("Customer_Report_%s_%s.xlsx", strings.ReplaceAll(sales, " ", "_"), month)
}

// CustomerReportTitle is the merged first-row title of the monthly report.
func CustomerReportTitle(sales, month string) string {
	if strings.TrimSpace(sales) == "" {
		sales = "All Sales"
	}
	return fmt.Sprintf("Monthly Report - %s - %s", sales, month)
}
