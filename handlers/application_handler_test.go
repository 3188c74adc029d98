package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
)

func TestApproveApplicationMalformedBody(t *testing.T) {
	setupHandlerDeps(t)

	r := mux.NewRouter()
	r.HandleFunc("/api/applications/{id}/approve", ApproveApplication).Methods(http.MethodPost)

	url := fmt.Sprintf("/api/applications/%s/approve", uuid.New())
	req := httptest.NewRequest(http.MethodPost, url, strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid JSON")
}
