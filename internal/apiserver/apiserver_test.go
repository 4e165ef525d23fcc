package apiserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"metaheuristics/internal/metrics"
)

func testRouter(t *testing.T) (*Server, *chi.Mux) {
	t.Helper()
	reg := prometheus.NewRegistry()
	s := New(nil, metrics.New(reg), 7, "grasp")
	r := chi.NewRouter()
	s.RegisterRoutes(r)
	return s, r
}

func smallInstanceBody(algorithm string) []byte {
	req := createRunRequest{
		Algorithm: algorithm,
		Instance: instanceDTO{
			Demand: []int{3, 4, 2},
			Dist: [][]float64{
				{1, 5},
				{5, 1},
				{2, 2},
			},
			CentreTypes: []centreDTO{
				{Capacity: 10, InstallCost: 20},
			},
		},
	}
	b, _ := json.Marshal(req)
	return b
}

func waitForTerminal(t *testing.T, r *chi.Mux, id string) runResponse {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/runs/"+id, nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp runResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		if resp.Status == StatusCompleted || resp.Status == StatusFailed {
			return resp
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("run did not reach a terminal state in time")
	return runResponse{}
}

func TestCreateAndPollLocalSearchRun(t *testing.T) {
	_, r := testRouter(t)

	body := smallInstanceBody(AlgoLocalSearch)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/runs/", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusAccepted, rec.Code)

	var created runResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, StatusPending, created.Status)
	assert.NotEmpty(t, created.ID)

	final := waitForTerminal(t, r, created.ID)
	assert.Equal(t, StatusCompleted, final.Status)
	require.NotNil(t, final.BestFitness)
	assert.Len(t, final.Solution, 3)
}

func TestCreateAndPollGraspRun(t *testing.T) {
	_, r := testRouter(t)

	body := smallInstanceBody(AlgoGRASP)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/runs/", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusAccepted, rec.Code)

	var created runResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	final := waitForTerminal(t, r, created.ID)
	assert.Equal(t, StatusCompleted, final.Status)
}

func TestCreateFallsBackToDefaultAlgorithmWhenOmitted(t *testing.T) {
	_, r := testRouter(t)

	body := smallInstanceBody("")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/runs/", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusAccepted, rec.Code)

	var created runResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, AlgoGRASP, created.Algorithm)

	final := waitForTerminal(t, r, created.ID)
	assert.Equal(t, StatusCompleted, final.Status)
}

func TestCreateRejectsUnknownAlgorithm(t *testing.T) {
	_, r := testRouter(t)

	body := smallInstanceBody("does-not-exist")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/runs/", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetUnknownRunIs404(t *testing.T) {
	_, r := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/runs/run_does_not_exist", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCancelUnknownRunIs404(t *testing.T) {
	_, r := testRouter(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/runs/run_does_not_exist", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCancelAlreadyCompletedRunConflicts(t *testing.T) {
	_, r := testRouter(t)

	body := smallInstanceBody(AlgoLocalSearch)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/runs/", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	var created runResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	waitForTerminal(t, r, created.ID)

	cancelReq := httptest.NewRequest(http.MethodDelete, "/api/v1/runs/"+created.ID, nil)
	cancelRec := httptest.NewRecorder()
	r.ServeHTTP(cancelRec, cancelReq)
	assert.Equal(t, http.StatusConflict, cancelRec.Code)
}
