package codec

import (
	"testing"
	"time"
)

func TestParseISO8601_Forms(t *testing.T) {
	cases := map[string]time.Time{
		"2020-01-01T00:00:00.000Z":  time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		"2020-01-01T00:00:00Z":      time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		"2020-01-01T13:30:00+02:00": time.Date(2020, 1, 1, 11, 30, 0, 0, time.UTC),
		"2020-01-01T00:00:00":       time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		"2020-01-01":                time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		"2020-06":                   time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	for in, want := range cases {
		got, err := ParseISO8601(in)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", in, err)
		}
		if !got.Equal(want) {
			t.Fatalf("%s: got %v want %v", in, got, want)
		}
	}
}

func TestParseISO8601_Rejects(t *testing.T) {
	for _, in := range []string{"not-a-date", "", "2020-13-01", "2020-02-30T00:00:00.000Z", "late 2021"} {
		if _, err := ParseISO8601(in); err == nil {
			t.Fatalf("%q: expected error", in)
		}
	}
}

func TestFormatISO8601_Roundtrip(t *testing.T) {
	in := "2021-09-24T00:00:00.000Z"
	tm, err := ParseISO8601(in)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if out := FormatISO8601(tm); out != in {
		t.Fatalf("roundtrip mismatch: %s != %s", out, in)
	}
}

func TestHasMidnightMarker(t *testing.T) {
	if !HasMidnightMarker("2020-01-01T00:00:00.000Z") {
		t.Fatalf("expected midnight marker")
	}
	if HasMidnightMarker("2020-01-01T13:00:00.000Z") {
		t.Fatalf("unexpected midnight marker")
	}
	if !HasMidnightMarker(Epoch) {
		t.Fatalf("epoch must carry the marker")
	}
}
