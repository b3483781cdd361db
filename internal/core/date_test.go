package core

import (
	"encoding/json"
	"testing"
)

func TestEndOfMonth(t *testing.T) {
	cases := []struct {
		start string
		want  string
	}{
		{"2024-02-05", "2024-02-29"}, // leap year
		{"2023-02-05", "2023-02-28"},
		{"2024-06-01", "2024-06-30"},
		{"2024-12-31", "2024-12-31"},
		{"2024-01-01", "2024-01-31"},
	}
	for _, tc := range cases {
		got := MustParseDate(tc.start).EndOfMonth().String()
		if got != tc.want {
			t.Fatalf("EndOfMonth(%s) = %s, want %s", tc.start, got, tc.want)
		}
	}
}

func TestDaysUntil(t *testing.T) {
	cases := []struct {
		from, to string
		want     int
	}{
		{"2024-06-01", "2024-06-11", 10},
		{"2024-06-01", "2024-06-01", 0},
		{"2024-06-01", "2024-07-01", 30},
		{"2024-06-11", "2024-06-01", -10},
		{"2024-02-28", "2024-03-01", 2}, // leap day in between
	}
	for _, tc := range cases {
		got := MustParseDate(tc.from).DaysUntil(MustParseDate(tc.to))
		if got != tc.want {
			t.Fatalf("DaysUntil(%s, %s) = %d, want %d", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if d.String() != "2024-02-29" {
		t.Fatalf("round trip got %s", d.String())
	}

	for _, bad := range []string{"", "2024-13-01", "2023-02-29", "01/02/2024", "2024-2-5"} {
		if _, err := ParseDate(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestDateJSON(t *testing.T) {
	d := MustParseDate("2024-06-15")
	raw, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `"2024-06-15"` {
		t.Fatalf("marshal got %s", raw)
	}

	var back Date
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(d.Time) {
		t.Fatalf("round trip mismatch: %v vs %v", back, d)
	}
}

func TestDateDisplay(t *testing.T) {
	if got := MustParseDate("2024-02-05").Display(); got != "5 Feb 2024" {
		t.Fatalf("Display = %q", got)
	}
	if got := (Date{}).Display(); got != "" {
		t.Fatalf("zero Display = %q", got)
	}
}
