package util

import (
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{-time.Second, "0:00"},
		{65 * time.Second, "1:05"},
		{time.Hour + 2*time.Minute + 3*time.Second, "1:02:03"},
	}
	for _, tc := range cases {
		if got := FormatDuration(tc.in); got != tc.want {
			t.Fatalf("FormatDuration(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatSecondsAndHours(t *testing.T) {
	if got := FormatSeconds(184.7); got != "3:04" {
		t.Fatalf("FormatSeconds = %q", got)
	}
	if got := FormatHours(5400); got != "1.5 h" {
		t.Fatalf("FormatHours = %q", got)
	}
}

func TestTruncateAndPad(t *testing.T) {
	if got := Truncate("hello world", 6); got != "hello…" {
		t.Fatalf("Truncate = %q", got)
	}
	if got := Truncate("short", 10); got != "short" {
		t.Fatalf("Truncate = %q", got)
	}
	if got := PadRight("ab", 4); got != "ab  " {
		t.Fatalf("PadRight = %q", got)
	}
	if got := Truncate("x", 0); got != "" {
		t.Fatalf("Truncate(0) = %q", got)
	}
}
