package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/dayhive/dayhive/internal/models"
)

func okStatus() Status {
	return Status{Status: 200, Action: "ok", Message: "", Timestamp: "2024-01-02T09:00:00Z"}
}

func TestFetchProjects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/getUserProjects", r.URL.Path)
		require.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "u1", req["identity"])

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status": okStatus(),
			"projects": []models.Project{
				{Code: "PRJ-001", ShortDescription: "Website Redesign", AccountName: "Acme Corp"},
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "test-token"})))
	projects, err := c.FetchProjects(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "PRJ-001", projects[0].Code)
}

func TestEnvelopeErrorSurfacesAsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status": Status{Status: 401, Action: "getUserProjects", Message: "session expired"},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.FetchProjects(context.Background(), "u1")

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.StatusCode)
	assert.Equal(t, "session expired", apiErr.Message)
}

func TestSendReport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/sendReport", r.URL.Path)

		var payload models.SubmissionPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "u1", payload.Identity)
		assert.Len(t, payload.ProjectReports["PRJ-001"], 1)

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  okStatus(),
			"success": true,
			"validLines": []models.LineResult{
				{Project: "PRJ-001", ReportDate: "2024-01-02", StartTime: "09:00", EndTime: "10:00"},
			},
			"invalidLines": []models.LineResult{},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	payload := models.SubmissionPayload{
		MinStartDate: "2024-01-02",
		MaxEndDate:   "2024-01-02",
		Identity:     "u1",
		ProjectReports: map[string][]models.ReportLine{
			"PRJ-001": {{ReportDate: "2024-01-02", StartTime: "09:00", EndTime: "10:00", Location: 1, OriginalLocation: 1}},
		},
	}

	result, err := c.SendReport(context.Background(), payload)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Len(t, result.ValidLines, 1)
	assert.Empty(t, result.InvalidLines)
}

func TestCompareReports(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "2024-01-01", req["fromDate"])
		assert.Equal(t, "2024-01-31", req["toDate"])

		doc := int64(12345)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status": okStatus(),
			"reports": []models.CompareReport{
				{WorkDate: "2024-01-02", TotalServiceHours: 8.5, AgreementHours: 9, LastDocID: &doc},
				{WorkDate: "2024-01-03", TotalServiceHours: 6, AgreementHours: 9},
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	reports, err := c.CompareReports(context.Background(), "2024-01-01", "2024-01-31", "u1")
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.True(t, reports[0].Reported())
	assert.False(t, reports[1].Reported())
}

func TestSaveCredentials(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"status": okStatus()})
	}))
	defer srv.Close()

	c := New(srv.URL)
	require.NoError(t, c.SaveCredentials(context.Background(), "emp-1", "secret"))
	assert.Equal(t, "emp-1", got["employeeCode"])
}

func TestCanceledContextShortCircuits(t *testing.T) {
	c := New("http://unreachable.invalid")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.FetchProjects(ctx, "u1")
	assert.ErrorIs(t, err, context.Canceled)
}
