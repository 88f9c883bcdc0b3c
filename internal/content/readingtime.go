package content

import (
	"fmt"
	"math"
	"strings"
)

// WordsPerMinute is the reading speed used for estimates.
const WordsPerMinute = 200

// EstimateReadingTime counts whitespace-separated words and converts
// them to a reading time, rounding minutes up.
func EstimateReadingTime(body string) ReadingTime {
	words := len(strings.Fields(body))
	exact := float64(words) / WordsPerMinute
	minutes := int(math.Ceil(exact))
	return ReadingTime{
		Text:    fmt.Sprintf("%d min read", minutes),
		Minutes: minutes,
		Time:    int(math.Round(exact * 60000)),
		Words:   words,
	}
}

// FormatReadingTime renders a minute count for display.
func FormatReadingTime(minutes int) string {
	switch {
	case minutes < 1:
		return "Less than 1 min read"
	case minutes == 1:
		return "1 min read"
	default:
		return fmt.Sprintf("%d min read", minutes)
	}
}

// FormatWordCount renders a word count for display, abbreviating
// thousands to one decimal (truncated, not rounded).
func FormatWordCount(words int) string {
	if words < 1000 {
		return fmt.Sprintf("%d words", words)
	}
	thousands := words / 1000
	remainder := words % 1000
	if remainder == 0 {
		return fmt.Sprintf("%dk words", thousands)
	}
	return fmt.Sprintf("%d.%dk words", thousands, remainder/100)
}
