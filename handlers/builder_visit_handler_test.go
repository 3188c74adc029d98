package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"p9e.in/loantrack/config"
	"p9e.in/loantrack/models"
	"p9e.in/loantrack/pkg/dedup"
)

// sqlite cannot evaluate the postgres gen_random_uuid() column default, so
// the test schema is created by hand and ids travel in the request body.
func newVisitTestDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.Exec(`CREATE TABLE builder_visits (
		id text PRIMARY KEY,
		builder_name text,
		builder_number text,
		group_name text,
		project_name text,
		location text,
		date_of_visit datetime,
		business_type text,
		office_person_details text,
		office_person_number text,
		executives text,
		loan_account_number text,
		sai_fakira_manager text,
		stage_of_construction text,
		development_type text,
		area_type text,
		total_units_blocks text,
		total_blocks text,
		property_sizes text,
		expected_completion_date datetime,
		negotiable text,
		financing_requirements text,
		resident_type text,
		nearby_projects text,
		surrounding_community text,
		enquiry_type text,
		units_for_sale text,
		time_limit_months text,
		remark text,
		payout text,
		usps text,
		total_amenities text,
		alloted_car_parking text,
		clear_floor_height text,
		clear_floor_height_retail text,
		clear_floor_height_flats text,
		clear_floor_height_offices text,
		approval text,
		approval_status text,
		created_at datetime,
		updated_at datetime
	)`).Error
	require.NoError(t, err)

	config.DB = db
}

func setupHandlerDeps(t *testing.T) {
	t.Helper()
	dedupStore = dedup.NewMemoryStore()
	mailer = &Mailer{}
}

func TestCreateBuilderVisitStartsPending(t *testing.T) {
	newVisitTestDB(t)
	setupHandlerDeps(t)

	// the client tries to smuggle in a pre-approved state
	body := fmt.Sprintf(`{
		"id": %q,
		"builderName": "Shree Developers",
		"projectName": "Green Acres",
		"location": "Ahmedabad",
		"propertySizes": [{"size": "2BHK"}],
		"approvalStatus": "Approved",
		"approval": {"level1": {"status": "Approved"}, "level2": {"status": "Approved"}}
	}`, uuid.New())

	req := httptest.NewRequest(http.MethodPost, "/api/builder-visits", strings.NewReader(body))
	rec := httptest.NewRecorder()
	CreateBuilderVisit(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created models.BuilderVisit
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.Equal(t, models.LevelPending, created.ApprovalStatus)
	assert.Equal(t, models.NewApproval(), created.Approval)

	var stored models.BuilderVisit
	require.NoError(t, config.DB.First(&stored, "id = ?", created.ID).Error)
	assert.Equal(t, models.LevelPending, stored.ApprovalStatus)
}

func TestApproveBuilderVisitMalformedBody(t *testing.T) {
	setupHandlerDeps(t)

	r := mux.NewRouter()
	r.HandleFunc("/api/builder-visits/{id}/approve/{level:[12]}", ApproveBuilderVisit).Methods(http.MethodPost)

	url := fmt.Sprintf("/api/builder-visits/%s/approve/1", uuid.New())
	req := httptest.NewRequest(http.MethodPost, url, strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid JSON")
}
