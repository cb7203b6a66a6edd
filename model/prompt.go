package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rlmesh/rlmesh/core"
)

// Prompt helpers shared by the provider-backed policies. They render an
// observation and a discrete action menu as text and parse the option index
// back out of a completion.

// FormatObservation renders an observation vector as a compact bracketed list.
func FormatObservation(observation []float64) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range observation {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.FormatFloat(v, 'g', 6, 64))
	}
	b.WriteByte(']')
	return b.String()
}

// FormatActionMenu renders the options of a discrete action space, one
// "index: label" line per option. Unlabeled options fall back to "action-<i>".
func FormatActionMenu(space core.Discrete) string {
	var b strings.Builder
	for i := 0; i < space.N; i++ {
		label := space.Label(i)
		if label == "" {
			label = fmt.Sprintf("action-%d", i)
		}
		fmt.Fprintf(&b, "%d: %s\n", i, label)
	}
	return b.String()
}

// ParseActionIndex extracts the first integer from a completion and validates
// it against the action count. Providers are instructed to answer with the
// bare index, but completions routinely add prose around it.
func ParseActionIndex(text string, n int) (int, error) {
	start := -1
	for i, r := range text {
		if r >= '0' && r <= '9' {
			start = i
			break
		}
	}
	if start < 0 {
		return 0, fmt.Errorf("no action index in completion %q", text)
	}
	end := start
	for end < len(text) && text[end] >= '0' && text[end] <= '9' {
		end++
	}
	idx, err := strconv.Atoi(text[start:end])
	if err != nil {
		return 0, fmt.Errorf("parse action index: %w", err)
	}
	if idx < 0 || idx >= n {
		return 0, fmt.Errorf("action index %d out of range [0, %d)", idx, n)
	}
	return idx, nil
}
