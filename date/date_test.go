package date

import (
	"encoding/json"
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{in: "2025-07-01", want: New(2025, 7, 1)},
		{in: "2025-7-1", want: New(2025, 7, 1)},
		{in: "01/07/2025", want: New(2025, 7, 1)},
		{in: "?", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewNormalizes(t *testing.T) {
	if got, want := New(2025, 12, 32), New(2026, 1, 1); got != want {
		t.Errorf("New(2025, 12, 32) = %v, want %v", got, want)
	}
	if got, want := New(2026, 3, 1).Add(-1), New(2026, 2, 28); got != want {
		t.Errorf("Add(-1) = %v, want %v", got, want)
	}
}

func TestOfKeepsLocation(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	// 23:30 UTC on the 13th is already the 14th in UTC+2.
	on := time.Date(2026, 10, 13, 23, 30, 0, 0, time.UTC).In(loc)
	if got, want := Of(on), New(2026, 10, 14); got != want {
		t.Errorf("Of() = %v, want %v", got, want)
	}
}

func TestJSON(t *testing.T) {
	d := New(2026, 10, 14)
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(b) != `"2026-10-14"` {
		t.Errorf("Marshal = %s", b)
	}
	var back Date
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back != d {
		t.Errorf("round trip = %v, want %v", back, d)
	}
	if d.European() != "14/10/2026" {
		t.Errorf("European() = %q", d.European())
	}
}
