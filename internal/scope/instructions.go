// internal/scope/instructions.go
//
// Event instructions are one free-text block, but a fixed whitelist of
// labeled lines inside it ("Service Offerings: ...") is maintained by the
// tool rather than the technician. The codec splits the block into those
// auto lines plus the free remainder, and re-joins them deterministically
// so the canonical text is stable across edits.

package scope

import (
	"regexp"
	"strings"
)

// AutoLabels is the whitelist of tool-maintained instruction lines, in
// canonical output order.
var AutoLabels = []string{"Service Offerings", "Severity", "Odor", "Anticipated"}

// AutoLine is one labeled instruction entry.
type AutoLine struct {
	Label string
	Value string
}

// serviceOfferingsRe matches the auto-generated services line; it is never
// echoed back into report output.
var serviceOfferingsRe = regexp.MustCompile(`(?i)^Service Offerings\s*:`)

func autoLineRe(label string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)^` + regexp.QuoteMeta(label) + `\s*:\s*(.*)$`)
}

// SplitInstructions separates a block into whitelist auto lines and the
// free remainder. When a label appears more than once the last value wins.
func SplitInstructions(text string) ([]AutoLine, string) {
	values := map[string]string{}
	var free []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		matched := false
		for _, label := range AutoLabels {
			if m := autoLineRe(label).FindStringSubmatch(trimmed); m != nil {
				values[label] = strings.TrimSpace(m[1])
				matched = true
				break
			}
		}
		if !matched {
			free = append(free, trimmed)
		}
	}
	var auto []AutoLine
	for _, label := range AutoLabels {
		if v, ok := values[label]; ok {
			auto = append(auto, AutoLine{Label: label, Value: v})
		}
	}
	return auto, strings.Join(free, "\n")
}

// JoinInstructions rebuilds the canonical block: auto lines in whitelist
// order, then the free text.
func JoinInstructions(auto []AutoLine, free string) string {
	var lines []string
	for _, label := range AutoLabels {
		for _, a := range auto {
			if a.Label == label && strings.TrimSpace(a.Value) != "" {
				lines = append(lines, label+": "+strings.TrimSpace(a.Value))
			}
		}
	}
	free = strings.TrimSpace(free)
	if free != "" {
		lines = append(lines, free)
	}
	return strings.Join(lines, "\n")
}

// WithServiceOfferings rewrites the Service Offerings auto line to match
// the current selection, leaving every other line in place. An empty
// selection removes the line.
func WithServiceOfferings(text string, services []string) string {
	auto, free := SplitInstructions(text)
	kept := auto[:0]
	for _, a := range auto {
		if a.Label != "Service Offerings" {
			kept = append(kept, a)
		}
	}
	if len(services) > 0 {
		kept = append(kept, AutoLine{Label: "Service Offerings", Value: strings.Join(services, ", ")})
	}
	return JoinInstructions(kept, free)
}

// InstructionLines returns the non-blank trimmed lines of a block with the
// auto-generated services line dropped, ready for bulleted rendering.
func InstructionLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || serviceOfferingsRe.MatchString(trimmed) {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}
