package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"p9e.in/loantrack/config"
	"p9e.in/loantrack/models"
	"p9e.in/loantrack/pkg/report"
)

const exportDir = "exports"

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// verifyDownload checks the download secret: the master password for
// all-data exports, the person's own password for a single sales ref.
func verifyDownload(w http.ResponseWriter, ref, password string) bool {
	var err error
	if ref == "" || ref == "All" {
		err = config.Secrets.VerifyMaster(password)
	} else {
		err = config.Secrets.VerifySales(ref, password)
	}
	if err == nil {
		return true
	}
	if errors.Is(err, config.ErrSecretNotConfigured) {
		http.Error(w, err.Error(), http.StatusNotFound)
	} else {
		http.Error(w, "Unauthorized: Invalid password", http.StatusUnauthorized)
	}
	return false
}

func streamWorkbook(w http.ResponseWriter, f *excelize.File, filename string) {
	buffer, err := f.WriteToBuffer()
	if err != nil {
		http.Error(w, "failed to generate Excel file", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", buffer.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buffer.Bytes())
}

func saveWorkbook(f *excelize.File, filename string) {
	if err := os.MkdirAll(exportDir, 0o755); err != nil {
		log.Printf("failed to create export dir: %v", err)
		return
	}
	path := filepath.Join(exportDir, filename)
	if err := f.SaveAs(path); err != nil {
		log.Printf("failed to save %s: %v", path, err)
		return
	}
	log.Printf("export written: %s", path)
}

// ExportApplicationsExcel writes the Master and Sales workbooks to the
// exports directory and streams the Master one back.
// GET /api/export/excel?ref=<sales|All>&password=xxx
func ExportApplicationsExcel(w http.ResponseWriter, r *http.Request) {
	ref := r.URL.Query().Get("ref")
	if !verifyDownload(w, ref, r.URL.Query().Get("password")) {
		return
	}

	query := config.DB.Order("created_at desc")
	if ref != "" && ref != "All" {
		query = query.Where("sales = ?", ref)
	}
	var apps []models.Application
	if err := query.Find(&apps).Error; err != nil {
		http.Error(w, "failed to fetch applications", http.StatusInternalServerError)
		return
	}

	master, err := report.Render(report.MasterProfile(), report.BuildMasterRows(apps))
	if err != nil {
		http.Error(w, "failed to generate Excel file", http.StatusInternalServerError)
		return
	}
	defer master.Close()

	sales, err := report.Render(report.SalesProfile(), report.BuildSalesRows(apps))
	if err != nil {
		http.Error(w, "failed to generate Excel file", http.StatusInternalServerError)
		return
	}
	defer sales.Close()

	now := time.Now()
	saveWorkbook(master, report.ExportFilename("Master", ref, now))
	saveWorkbook(sales, report.ExportFilename("Sales", ref, now))

	streamWorkbook(w, master, report.ExportFilename("Master", ref, now))
}

// ExportBuilderVisitsExcel exports the level-2 approved visits, one row
// per property size.
// GET /api/export/builder-visits?password=xxx
func ExportBuilderVisitsExcel(w http.ResponseWriter, r *http.Request) {
	if !verifyDownload(w, "", r.URL.Query().Get("password")) {
		return
	}

	var visits []models.BuilderVisit
	err := config.DB.
		Where("approval -> 'level2' ->> 'status' = ?", models.LevelApproved).
		Order("created_at desc").
		Find(&visits).Error
	if err != nil {
		http.Error(w, "failed to fetch builder visits", http.StatusInternalServerError)
		return
	}

	profile := report.BuilderVisitProfile(report.FanOutRows)
	f, err := report.Render(profile, report.BuildBuilderVisitRows(visits, report.FanOutRows))
	if err != nil {
		http.Error(w, "failed to generate Excel file", http.StatusInternalServerError)
		return
	}
	defer f.Close()

	filename := report.ExportFilename("Builder_Visits", "Approved", time.Now())
	saveWorkbook(f, filename)
	streamWorkbook(w, f, filename)
}

// MonthlyCustomerExcel streams the month-filtered customer report from
// memory; nothing is written to disk.
// GET /api/customer/monthly-excel?month=YYYY-MM&sales=<name>&password=xxx
func MonthlyCustomerExcel(w http.ResponseWriter, r *http.Request) {
	month := report.SanitizeMonth(r.URL.Query().Get("month"))
	sales := r.URL.Query().Get("sales")
	if sales == "All" {
		sales = ""
	}
	password := r.URL.Query().Get("password")

	if month == "" {
		http.Error(w, "Month parameter is required. Use YYYY-MM format (e.g., 2024-03)", http.StatusBadRequest)
		return
	}
	if _, _, err := report.MonthRange(month); err != nil {
		http.Error(w, fmt.Sprintf("Invalid month format: %q. Use YYYY-MM (e.g., 2024-03)", month), http.StatusBadRequest)
		return
	}
	if password == "" {
		http.Error(w, "Password is required", http.StatusBadRequest)
		return
	}
	if !verifyDownload(w, sales, password) {
		return
	}

	query := config.DB.Order("login_date asc")
	if sales != "" {
		query = query.Where("sales = ?", sales)
	}
	var apps []models.Application
	if err := query.Find(&apps).Error; err != nil {
		http.Error(w, "failed to fetch applications", http.StatusInternalServerError)
		return
	}

	// the month filter runs in Go so legacy string-typed dates are judged
	// by the same tolerant parse as everything else
	matched, err := report.FilterByMonth(apps, month)
	if err != nil {
		if errors.Is(err, report.ErrNoMatchingRecords) {
			suffix := ""
			if sales != "" {
				suffix = " for " + sales
			}
			http.Error(w, fmt.Sprintf("No data found%s in %s", suffix, month), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f, err := report.RenderCustomerReport(report.CustomerReportTitle(sales, month), report.BuildCustomerRows(matched))
	if err != nil {
		http.Error(w, "Failed to generate monthly report", http.StatusInternalServerError)
		return
	}
	defer f.Close()

	streamWorkbook(w, f, report.CustomerReportFilename(sales, month))
}
