package store

import (
	"context"
	"testing"
	"time"

	"github.com/grahalabs/jataka/pkg/ephem"
	"github.com/grahalabs/jataka/pkg/errors"
	"github.com/grahalabs/jataka/pkg/pipeline"
)

func sampleRecord(name string) Record {
	return Record{
		Name: name,
		Request: pipeline.Options{
			Instant:   ephem.Instant{Year: 1991, Month: 6, Day: 18, Hour: 7, Minute: 10, UTCOffset: 5.5},
			Latitude:  10.80,
			Longitude: 76.97,
		},
		Result: &pipeline.Result{JulianDay: 2448425.5},
	}
}

func TestMemoryStore_SaveAssignsID(t *testing.T) {
	s := NewMemoryStore()
	rec, err := s.Save(context.Background(), sampleRecord("test"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if rec.ID == "" {
		t.Error("Save() left ID empty")
	}
	if rec.CreatedAt.IsZero() {
		t.Error("Save() left CreatedAt zero")
	}
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	saved, err := s.Save(ctx, sampleRecord("natal"))
	if err != nil {
		t.Fatal(err)
	}

	got, err := s.Get(ctx, saved.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Name != "natal" {
		t.Errorf("Name = %q, want %q", got.Name, "natal")
	}
	if got.Result.JulianDay != 2448425.5 {
		t.Errorf("Result.JulianDay = %v, want 2448425.5", got.Result.JulianDay)
	}
	if got.Request.Latitude != 10.80 {
		t.Errorf("Request.Latitude = %v, want 10.80", got.Request.Latitude)
	}
}

func TestMemoryStore_GetMissing(t *testing.T) {
	s := NewMemoryStore()
	_, err := s.Get(context.Background(), "nope")
	if !errors.Is(err, errors.ErrCodeChartNotFound) {
		t.Errorf("Get() code = %q, want CHART_NOT_FOUND", errors.GetCode(err))
	}
}

func TestMemoryStore_ListNewestFirst(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i, name := range []string{"old", "mid", "new"} {
		rec := sampleRecord(name)
		rec.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		if _, err := s.Save(ctx, rec); err != nil {
			t.Fatal(err)
		}
	}

	got, err := s.List(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("List() returned %d records, want 3", len(got))
	}
	if got[0].Name != "new" || got[2].Name != "old" {
		t.Errorf("order = [%s %s %s], want newest first", got[0].Name, got[1].Name, got[2].Name)
	}

	limited, err := s.List(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 2 {
		t.Errorf("List(2) returned %d records, want 2", len(limited))
	}
}

func TestMemoryStore_Delete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	saved, err := s.Save(ctx, sampleRecord("doomed"))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, saved.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Get(ctx, saved.ID); !errors.Is(err, errors.ErrCodeChartNotFound) {
		t.Error("record still present after delete")
	}
	if err := s.Delete(ctx, saved.ID); !errors.Is(err, errors.ErrCodeChartNotFound) {
		t.Errorf("second Delete() code = %q, want CHART_NOT_FOUND", errors.GetCode(err))
	}
}
