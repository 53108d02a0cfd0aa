package session

import (
	"strings"

	"github.com/samber/lo"

	"github.com/vburojevic/pirtimer/internal/hal"
)

// ProgressBar renders width cells, current/total of them filled.
// A non-positive total renders a full bar.
func ProgressBar(current, total, width int) string {
	if width <= 0 {
		return ""
	}
	if total <= 0 {
		return strings.Repeat(string(hal.FilledCell), width)
	}
	filled := lo.Clamp(width*current/total, 0, width)
	return strings.Repeat(string(hal.FilledCell), filled) + strings.Repeat(string(hal.EmptyCell), width-filled)
}
