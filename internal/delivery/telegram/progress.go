package telegram

import (
	"fmt"
	"strings"
)

const progressBarLength = 10

// buildProgressBar creates ASCII progress bar.
func buildProgressBar(current, total, length int) string {
	if total <= 0 || current < 0 {
		return fmt.Sprintf("[%s]", strings.Repeat("░", length))
	}

	filled := int(float64(current) / float64(total) * float64(length))
	if filled > length {
		filled = length
	}

	empty := length - filled

	bar := strings.Repeat("█", filled) + strings.Repeat("░", empty)
	return fmt.Sprintf("[%s]", bar)
}

// buildPercentBar draws a bar for a 0..100 percentage.
func buildPercentBar(percent int) string {
	return buildProgressBar(percent, 100, progressBarLength)
}
