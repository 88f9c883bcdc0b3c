package content

import (
	"strings"
	"testing"
)

func TestEstimateReadingTime(t *testing.T) {
	tests := []struct {
		words       int
		wantMinutes int
	}{
		{0, 0},
		{1, 1},
		{200, 1},
		{201, 2},
		{1000, 5},
	}
	for _, tt := range tests {
		body := strings.TrimSpace(strings.Repeat("word\n", tt.words))
		rt := EstimateReadingTime(body)
		if rt.Words != tt.words {
			t.Errorf("%d words: Words = %d", tt.words, rt.Words)
		}
		if rt.Minutes != tt.wantMinutes {
			t.Errorf("%d words: Minutes = %d, want %d", tt.words, rt.Minutes, tt.wantMinutes)
		}
	}

	rt := EstimateReadingTime(strings.Repeat("w ", 300))
	if rt.Time != 90000 {
		t.Errorf("Time = %d ms, want 90000", rt.Time)
	}
	if rt.Text != "2 min read" {
		t.Errorf("Text = %q", rt.Text)
	}
}

func TestFormatReadingTime(t *testing.T) {
	tests := map[int]string{
		0: "Less than 1 min read",
		1: "1 min read",
		7: "7 min read",
	}
	for in, want := range tests {
		if got := FormatReadingTime(in); got != want {
			t.Errorf("FormatReadingTime(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatWordCount(t *testing.T) {
	tests := map[int]string{
		12:   "12 words",
		999:  "999 words",
		1000: "1k words",
		1250: "1.2k words",
		2999: "2.9k words",
		1050: "1.0k words",
	}
	for in, want := range tests {
		if got := FormatWordCount(in); got != want {
			t.Errorf("FormatWordCount(%d) = %q, want %q", in, got, want)
		}
	}
}
