package chartio

import (
	"bytes"
	"context"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grahalabs/jataka/pkg/ephem"
	"github.com/grahalabs/jataka/pkg/pipeline"
)

func computeFixture(t *testing.T) (pipeline.Options, *pipeline.Result) {
	t.Helper()
	opts := pipeline.Options{
		Instant:   ephem.Instant{Year: 1991, Month: 6, Day: 18, Hour: 7, Minute: 10, UTCOffset: 5.5},
		Latitude:  10.80,
		Longitude: 76.97,
	}
	r := pipeline.NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	return opts, res
}

func TestRoundTrip(t *testing.T) {
	opts, res := computeFixture(t)

	var buf bytes.Buffer
	if err := WriteJSON(opts, res, &buf); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	doc, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}

	got := doc.Result
	if got.JulianDay != res.JulianDay {
		t.Errorf("JulianDay = %v, want %v", got.JulianDay, res.JulianDay)
	}
	if got.HouseSystem != res.HouseSystem || got.AyanamsaModel != res.AyanamsaModel {
		t.Error("enumerated options changed in round trip")
	}
	if got.AscendantSign != res.AscendantSign {
		t.Errorf("AscendantSign = %v, want %v", got.AscendantSign, res.AscendantSign)
	}
	if math.Abs(got.Ascendant-res.Ascendant) > 1e-6 {
		t.Errorf("Ascendant drifted by %v", got.Ascendant-res.Ascendant)
	}

	if len(got.Positions) != len(res.Positions) {
		t.Fatalf("position count = %d, want %d", len(got.Positions), len(res.Positions))
	}
	for i, p := range res.Positions {
		q := got.Positions[i]
		if q.Body != p.Body || q.Sign != p.Sign || q.Nakshatra != p.Nakshatra || q.Pada != p.Pada {
			t.Errorf("%v integral fields changed in round trip", p.Body)
		}
		if math.Abs(q.Sidereal-p.Sidereal) > 1e-6 {
			t.Errorf("%v sidereal drifted by %v", p.Body, q.Sidereal-p.Sidereal)
		}
	}

	if got.Panchanga != res.Panchanga {
		t.Errorf("panchanga changed: %+v vs %+v", got.Panchanga, res.Panchanga)
	}
	if len(got.Vargas) != len(res.Vargas) {
		t.Errorf("varga count = %d, want %d", len(got.Vargas), len(res.Vargas))
	}
	if len(got.Dasha.Periods) != len(res.Dasha.Periods) {
		t.Errorf("dasha period count changed")
	}
	if got.Ashtakavarga.Sarva != res.Ashtakavarga.Sarva {
		t.Errorf("sarva row changed in round trip")
	}

	if doc.Options.Latitude != opts.Latitude || doc.Options.Longitude != opts.Longitude {
		t.Error("options not preserved")
	}
	if doc.Options.Instant != opts.Instant {
		t.Errorf("instant changed: %+v vs %+v", doc.Options.Instant, opts.Instant)
	}
}

func TestFileRoundTrip(t *testing.T) {
	opts, res := computeFixture(t)
	path := filepath.Join(t.TempDir(), "chart.json")

	if err := ExportJSON(opts, res, path); err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}
	doc, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON() error = %v", err)
	}
	if doc.Result.JulianDay != res.JulianDay {
		t.Errorf("JulianDay = %v, want %v", doc.Result.JulianDay, res.JulianDay)
	}
}

func TestReadJSON_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"malformed", `{"version": 1,`},
		{"wrong version", `{"version": 99, "result": {}}`},
		{"missing result", `{"version": 1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadJSON(strings.NewReader(tt.input)); err == nil {
				t.Error("ReadJSON() expected an error")
			}
		})
	}
}

func TestImportJSON_MissingFile(t *testing.T) {
	if _, err := ImportJSON(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("ImportJSON() expected an error for a missing file")
	}
}
