package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/grahalabs/jataka/pkg/chart"
	"github.com/grahalabs/jataka/pkg/ephem"
	"github.com/grahalabs/jataka/pkg/errors"
)

const sampleFile = `
house_system = "equal"
ayanamsa = "lahiri"
dasha_depth = 3

[profiles.ravi]
name = "Ravi"
date = "1991-06-18"
time = "07:10"
utc_offset = 5.5
latitude = 10.80
longitude = 76.97

[profiles.mira]
name = "Mira"
date = "1987-03-02"
time = "23:45:30"
utc_offset = -8.0
latitude = 37.77
longitude = -122.42
house_system = "whole-sign"
ayanamsa = "raman"
dasha_depth = 2
`

func TestParse(t *testing.T) {
	f, err := Parse([]byte(sampleFile))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(f.Profiles) != 2 {
		t.Fatalf("got %d profiles, want 2", len(f.Profiles))
	}
	if got := f.Names(); got[0] != "mira" || got[1] != "ravi" {
		t.Errorf("Names() = %v, want sorted [mira ravi]", got)
	}
}

func TestOptions_DefaultsApplied(t *testing.T) {
	f, err := Parse([]byte(sampleFile))
	if err != nil {
		t.Fatal(err)
	}

	opts, err := f.Options("ravi")
	if err != nil {
		t.Fatalf("Options() error = %v", err)
	}

	want := ephem.Instant{Year: 1991, Month: 6, Day: 18, Hour: 7, Minute: 10, UTCOffset: 5.5}
	if opts.Instant != want {
		t.Errorf("Instant = %+v, want %+v", opts.Instant, want)
	}
	if opts.HouseSystem != chart.HouseEqual {
		t.Errorf("HouseSystem = %v, want file default equal", opts.HouseSystem)
	}
	if opts.Ayanamsa != ephem.AyanamsaLahiri {
		t.Errorf("Ayanamsa = %v, want file default lahiri", opts.Ayanamsa)
	}
	if opts.DashaDepth != 3 {
		t.Errorf("DashaDepth = %d, want file default 3", opts.DashaDepth)
	}
}

func TestOptions_ProfileOverrides(t *testing.T) {
	f, err := Parse([]byte(sampleFile))
	if err != nil {
		t.Fatal(err)
	}

	opts, err := f.Options("mira")
	if err != nil {
		t.Fatalf("Options() error = %v", err)
	}
	if opts.HouseSystem != chart.HouseWholeSign {
		t.Errorf("HouseSystem = %v, want profile override whole-sign", opts.HouseSystem)
	}
	if opts.Ayanamsa != ephem.AyanamsaRaman {
		t.Errorf("Ayanamsa = %v, want profile override raman", opts.Ayanamsa)
	}
	if opts.DashaDepth != 2 {
		t.Errorf("DashaDepth = %d, want profile override 2", opts.DashaDepth)
	}
	if opts.Instant.Second != 30 {
		t.Errorf("Second = %v, want 30", opts.Instant.Second)
	}
	if opts.Instant.UTCOffset != -8.0 {
		t.Errorf("UTCOffset = %v, want -8", opts.Instant.UTCOffset)
	}
}

func TestOptions_UnknownProfile(t *testing.T) {
	f, err := Parse([]byte(sampleFile))
	if err != nil {
		t.Fatal(err)
	}
	_, err = f.Options("nobody")
	if !errors.Is(err, errors.ErrCodeInvalidProfile) {
		t.Errorf("code = %q, want INVALID_PROFILE", errors.GetCode(err))
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"wrong type", `profiles = "not a table"`},
		{"unknown key", `ayanamsha = "lahiri"`}, // misspelled
		{"bad syntax", `[profiles.x`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.data)); !errors.Is(err, errors.ErrCodeInvalidProfile) {
				t.Errorf("code = %q, want INVALID_PROFILE", errors.GetCode(err))
			}
		})
	}
}

func TestOptions_BadDate(t *testing.T) {
	f, err := Parse([]byte(`
[profiles.x]
date = "18/06/1991"
time = "07:10"
latitude = 10
longitude = 76
`))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Options("x"); err == nil {
		t.Error("Options() expected an error for a malformed date")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.toml")
	if err := os.WriteFile(path, []byte(sampleFile), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(f.Profiles) != 2 {
		t.Errorf("got %d profiles, want 2", len(f.Profiles))
	}

	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("Load() expected an error for a missing file")
	}
}
