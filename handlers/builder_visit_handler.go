package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"p9e.in/loantrack/config"
	"p9e.in/loantrack/models"
	"p9e.in/loantrack/pkg/approval"
	"p9e.in/loantrack/pkg/dedup"
)

// GetBuilderVisits lists the visits still in the review pipeline. Fully
// approved visits drop off this listing and move to /approved.
func GetBuilderVisits(w http.ResponseWriter, r *http.Request) {
	var visits []models.BuilderVisit
	err := config.DB.
		Where("COALESCE(approval -> 'level2' ->> 'status', '') <> ?", models.LevelApproved).
		Order("created_at desc").
		Find(&visits).Error
	if err != nil {
		http.Error(w, "failed to fetch builder visits", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(visits)
}

// GetApprovedBuilderVisits lists exactly the level-2 approved visits.
func GetApprovedBuilderVisits(w http.ResponseWriter, r *http.Request) {
	var visits []models.BuilderVisit
	err := config.DB.
		Where("approval -> 'level2' ->> 'status' = ?", models.LevelApproved).
		Order("created_at desc").
		Find(&visits).Error
	if err != nil {
		http.Error(w, "failed to fetch builder visits", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(visits)
}

func GetBuilderVisit(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var visit models.BuilderVisit
	if err := config.DB.First(&visit, "id = ?", id).Error; err != nil {
		http.Error(w, "record not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(visit)
}

func CreateBuilderVisit(w http.ResponseWriter, r *http.Request) {
	var visit models.BuilderVisit
	if err := json.NewDecoder(r.Body).Decode(&visit); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := visit.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// a fresh submission always starts the review chain from scratch
	visit.Approval = models.NewApproval()
	visit.ApprovalStatus = models.LevelPending

	key := dedup.Key("visit", visit.BuilderName, visit.ProjectName, visit.Location)
	ok, err := dedupStore.Claim(r.Context(), key, dedup.Window)
	if err != nil {
		ok = true
	}
	if !ok {
		http.Error(w, "duplicate submission, please wait before retrying", http.StatusConflict)
		return
	}

	if err := config.DB.Create(&visit).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	mailer.NotifyVisitSubmitted(&visit)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(visit)
}

func UpdateBuilderVisit(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var visit models.BuilderVisit
	if err := config.DB.First(&visit, "id = ?", id).Error; err != nil {
		http.Error(w, "record not found", http.StatusNotFound)
		return
	}

	keepID := visit.ID
	if err := json.NewDecoder(r.Body).Decode(&visit); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	visit.ID = keepID

	// any edit invalidates both sign-offs
	approval.NewService(config.DB).ResetOnEdit(&visit)

	if err := config.DB.Save(&visit).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(visit)
}

type visitApprovalRequest struct {
	Password string `json:"password"`
	By       string `json:"by"`
	Comment  string `json:"comment"`
}

func visitApprovalParams(w http.ResponseWriter, r *http.Request) (uuid.UUID, int, *visitApprovalRequest, bool) {
	vars := mux.Vars(r)

	id, err := uuid.Parse(vars["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return uuid.Nil, 0, nil, false
	}
	level, err := strconv.Atoi(vars["level"])
	if err != nil || (level != 1 && level != 2) {
		http.Error(w, approval.ErrInvalidLevel.Error(), http.StatusBadRequest)
		return uuid.Nil, 0, nil, false
	}

	var req visitApprovalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return uuid.Nil, 0, nil, false
	}
	if err := config.Secrets.VerifyLevel(level, req.Password); err != nil {
		if errors.Is(err, config.ErrSecretNotConfigured) {
			http.Error(w, err.Error(), http.StatusNotFound)
		} else {
			http.Error(w, err.Error(), http.StatusUnauthorized)
		}
		return uuid.Nil, 0, nil, false
	}

	return id, level, &req, true
}

func writeVisitApprovalError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, approval.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, approval.ErrPrecursorNotApproved):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, approval.ErrInvalidComment), errors.Is(err, approval.ErrInvalidLevel):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
	}
}

func ApproveBuilderVisit(w http.ResponseWriter, r *http.Request) {
	id, level, req, ok := visitApprovalParams(w, r)
	if !ok {
		return
	}

	visit, err := approval.NewService(config.DB).Approve(r.Context(), id, level, req.By)
	if err != nil {
		writeVisitApprovalError(w, err)
		return
	}

	if level == 2 {
		mailer.NotifyVisitApproved(visit)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(visit)
}

func RejectBuilderVisit(w http.ResponseWriter, r *http.Request) {
	id, level, req, ok := visitApprovalParams(w, r)
	if !ok {
		return
	}

	visit, err := approval.NewService(config.DB).Reject(r.Context(), id, level, req.By, req.Comment)
	if err != nil {
		writeVisitApprovalError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(visit)
}
