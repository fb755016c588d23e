package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/grahalabs/jataka/pkg/pipeline"
	"github.com/grahalabs/jataka/pkg/store"
)

func newTestServer(t *testing.T, st store.Store) *httptest.Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	srv := New(pipeline.NewRunner(nil, nil, logger), st, logger)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

const chartBody = `{
	"instant": {"year": 1991, "month": 6, "day": 18, "hour": 7, "minute": 10, "utc_offset": 5.5},
	"latitude": 10.80,
	"longitude": 76.97
}`

func TestHealthz(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want ok", body["status"])
	}
}

func TestComputeChart(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, err := http.Post(ts.URL+"/api/v1/chart", "application/json", bytes.NewBufferString(chartBody))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var result pipeline.Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	if len(result.Positions) != 9 {
		t.Errorf("got %d positions, want 9", len(result.Positions))
	}
	if result.Panchanga.Tithi < 1 || result.Panchanga.Tithi > 30 {
		t.Errorf("tithi = %d, out of range", result.Panchanga.Tithi)
	}
}

func TestComputeChart_BadRequest(t *testing.T) {
	ts := newTestServer(t, nil)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"instant": `},
		{"bad latitude", `{"instant": {"year": 2000, "month": 1, "day": 1}, "latitude": 95, "longitude": 0}`},
		{"bad house system", `{"instant": {"year": 2000, "month": 1, "day": 1}, "latitude": 0, "longitude": 0, "house_system": "placidus"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+"/api/v1/chart", "application/json", bytes.NewBufferString(tt.body))
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}

			var body errorResponse
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if body.Code == "" {
				t.Error("error response missing code")
			}
		})
	}
}

func TestArchiveLifecycle(t *testing.T) {
	ts := newTestServer(t, store.NewMemoryStore())

	// Save.
	saveBody := `{"name": "natal",` + chartBody[1:]
	resp, err := http.Post(ts.URL+"/api/v1/charts/", "application/json", bytes.NewBufferString(saveBody))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("save status = %d, want 201", resp.StatusCode)
	}
	var rec store.Record
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		t.Fatal(err)
	}
	if rec.ID == "" || rec.Name != "natal" {
		t.Fatalf("record = %+v, want assigned ID and name", rec)
	}

	// Get.
	resp, err = http.Get(fmt.Sprintf("%s/api/v1/charts/%s", ts.URL, rec.ID))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("get status = %d, want 200", resp.StatusCode)
	}

	// List.
	resp, err = http.Get(ts.URL + "/api/v1/charts/")
	if err != nil {
		t.Fatal(err)
	}
	var recs []store.Record
	if err := json.NewDecoder(resp.Body).Decode(&recs); err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if len(recs) != 1 {
		t.Errorf("list returned %d records, want 1", len(recs))
	}

	// Delete.
	req, err := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/api/v1/charts/%s", ts.URL, rec.ID), nil)
	if err != nil {
		t.Fatal(err)
	}
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("delete status = %d, want 204", resp.StatusCode)
	}

	// Get after delete.
	resp, err = http.Get(fmt.Sprintf("%s/api/v1/charts/%s", ts.URL, rec.ID))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", resp.StatusCode)
	}
}

func TestArchiveWithoutStore(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/api/v1/charts/")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404 when no store configured", resp.StatusCode)
	}
}

func TestListBadLimit(t *testing.T) {
	ts := newTestServer(t, store.NewMemoryStore())

	resp, err := http.Get(ts.URL + "/api/v1/charts/?limit=zero")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}
