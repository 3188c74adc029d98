package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"p9e.in/loantrack/config"
	"p9e.in/loantrack/models"
	"p9e.in/loantrack/pkg/dedup"
)

func GetApplications(w http.ResponseWriter, r *http.Request) {
	var apps []models.Application
	query := config.DB.Order("created_at desc")
	if sales := r.URL.Query().Get("sales"); sales != "" {
		query = query.Where("sales = ?", sales)
	}
	if err := query.Find(&apps).Error; err != nil {
		http.Error(w, "failed to fetch applications", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(apps)
}

func GetApplication(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var app models.Application
	if err := config.DB.First(&app, "id = ?", id).Error; err != nil {
		http.Error(w, "record not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(app)
}

func CreateApplication(w http.ResponseWriter, r *http.Request) {
	var app models.Application
	if err := json.NewDecoder(r.Body).Decode(&app); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := app.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if app.Status == "" {
		app.Status = models.StatusPending
	}

	key := dedup.Key("application", app.Name, app.Mobile, app.Email)
	ok, err := dedupStore.Claim(r.Context(), key, dedup.Window)
	if err != nil {
		// the guard is best-effort; a broken store must not block intake
		ok = true
	}
	if !ok || recentApplicationExists(&app) {
		http.Error(w, "duplicate submission, please wait before retrying", http.StatusConflict)
		return
	}

	if err := config.DB.Create(&app).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	mailer.NotifyApplicationSubmitted(&app)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(app)
}

// recentApplicationExists catches duplicates that slipped past the claim
// window, e.g. after a restart of the in-memory guard.
func recentApplicationExists(app *models.Application) bool {
	var count int64
	config.DB.Model(&models.Application{}).
		Where("name = ? AND mobile = ? AND email = ? AND created_at > ?",
			app.Name, app.Mobile, app.Email, time.Now().Add(-dedup.Window)).
		Count(&count)
	return count > 0
}

func UpdateApplication(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var app models.Application
	if err := config.DB.First(&app, "id = ?", id).Error; err != nil {
		http.Error(w, "record not found", http.StatusNotFound)
		return
	}

	before := app.ImportantSnapshot()
	keepID := app.ID
	if err := json.NewDecoder(r.Body).Decode(&app); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	app.ID = keepID

	// touching any costing field invalidates the prior sign-off
	if app.ImportantSnapshot() != before {
		app.Status = models.StatusPending
	}

	if err := config.DB.Save(&app).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(app)
}

type approvalRequest struct {
	Password string `json:"password"`
}

func approveOrRejectApplication(w http.ResponseWriter, r *http.Request, approvalStatus string) {
	id := mux.Vars(r)["id"]

	var req approvalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := config.Secrets.VerifyApproval(req.Password); err != nil {
		if errors.Is(err, config.ErrSecretNotConfigured) {
			http.Error(w, err.Error(), http.StatusNotFound)
		} else {
			http.Error(w, err.Error(), http.StatusUnauthorized)
		}
		return
	}

	var app models.Application
	if err := config.DB.First(&app, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "record not found", http.StatusNotFound)
		} else {
			http.Error(w, "db error", http.StatusInternalServerError)
		}
		return
	}

	app.ApprovalStatus = approvalStatus
	if err := config.DB.Model(&app).Update("approval_status", approvalStatus).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(app)
}

func ApproveApplication(w http.ResponseWriter, r *http.Request) {
	approveOrRejectApplication(w, r, models.ApprovalApprovedBySB)
}

func RejectApplication(w http.ResponseWriter, r *http.Request) {
	approveOrRejectApplication(w, r, models.ApprovalRejectedBySB)
}
