package routes

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"p9e.in/loantrack/handlers"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", handleHealth).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// =====================================================
	// Loan applications
	// =====================================================
	api.HandleFunc("/applications", handlers.GetApplications).Methods("GET")
	api.HandleFunc("/applications", handlers.CreateApplication).Methods("POST")
	api.HandleFunc("/applications/{id}", handlers.GetApplication).Methods("GET")
	api.HandleFunc("/applications/{id}", handlers.UpdateApplication).Methods("PATCH", "PUT")
	api.HandleFunc("/applications/{id}/approve", handlers.ApproveApplication).Methods("POST")
	api.HandleFunc("/applications/{id}/reject", handlers.RejectApplication).Methods("POST")

	// =====================================================
	// Builder visits
	// =====================================================
	api.HandleFunc("/builder-visits", handlers.GetBuilderVisits).Methods("GET")
	api.HandleFunc("/builder-visits", handlers.CreateBuilderVisit).Methods("POST")
	api.HandleFunc("/builder-visits/approved", handlers.GetApprovedBuilderVisits).Methods("GET")
	api.HandleFunc("/builder-visits/{id}", handlers.GetBuilderVisit).Methods("GET")
	api.HandleFunc("/builder-visits/{id}", handlers.UpdateBuilderVisit).Methods("PATCH", "PUT")
	api.HandleFunc("/builder-visits/{id}/approve/{level:[12]}", handlers.ApproveBuilderVisit).Methods("POST")
	api.HandleFunc("/builder-visits/{id}/reject/{level:[12]}", handlers.RejectBuilderVisit).Methods("POST")

	// =====================================================
	// Excel exports (password gated)
	// =====================================================
	api.HandleFunc("/export/excel", handlers.ExportApplicationsExcel).Methods("GET")
	api.HandleFunc("/export/builder-visits", handlers.ExportBuilderVisitsExcel).Methods("GET")
	api.HandleFunc("/customer/monthly-excel", handlers.MonthlyCustomerExcel).Methods("GET")

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
