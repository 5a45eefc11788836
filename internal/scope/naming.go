// internal/scope/naming.go
//
// Room display names carry a floor-number prefix ("1. Bedroom 2"). The
// naming rules here must produce identical output whether rooms are added
// one at a time or in a batch, so batch calls pre-seed a running counter
// from the rooms that already exist.

package scope

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	floorPrefixRe   = regexp.MustCompile(`^\d+\.\s+`)
	firstIntRe      = regexp.MustCompile(`\d+`)
	basementAtticRe = regexp.MustCompile(`(?i)basement|attic`)
)

// RoomBaseName strips a leading "<number>. " prefix and normalizes bath
// and bedroom variants to their canonical labels. Any other name is
// returned stripped but otherwise unchanged.
func RoomBaseName(name string) string {
	stripped := floorPrefixRe.ReplaceAllString(strings.TrimSpace(name), "")
	lower := strings.ToLower(stripped)
	switch {
	case strings.HasPrefix(lower, "bath"):
		return "Bath"
	case strings.HasPrefix(lower, "bedroom"):
		return "Bedroom"
	}
	return stripped
}

// normalizeBase canonicalizes a raw quick-add name. Unlike RoomBaseName it
// only rewrites exact bath/bathroom/bedroom spellings; "Bathhouse" stays
// as typed.
func normalizeBase(raw string) (base string, numbered bool) {
	trimmed := strings.TrimSpace(raw)
	switch strings.ToLower(trimmed) {
	case "bath", "bathroom":
		return "Bath", true
	case "bedroom":
		return "Bedroom", true
	}
	return trimmed, false
}

// selfAssignedFloor returns the forced floor label for rooms whose name
// is itself a basement or attic, regardless of the floor the caller
// passed in.
func selfAssignedFloor(name string) (string, bool) {
	lower := strings.ToLower(name)
	if strings.Contains(lower, "basement") {
		return "Basement", true
	}
	if strings.Contains(lower, "attic") {
		return "Attic", true
	}
	return "", false
}

// FloorNumber resolves a floor label to its display number. Basement is 0,
// a numbered label uses its first integer, and the attic sits one above
// the highest numbered floor seen anywhere in the project (the max
// defaults to 1 when no numbered floor exists). Everything else is 1.
func FloorNumber(floorLabel string, rooms []Room) int {
	lower := strings.ToLower(floorLabel)
	if strings.Contains(lower, "basement") {
		return 0
	}
	if m := firstIntRe.FindString(floorLabel); m != "" {
		n, _ := strconv.Atoi(m)
		return n
	}
	if strings.Contains(lower, "attic") {
		return 1 + maxNumberedFloor(rooms)
	}
	return 1
}

func maxNumberedFloor(rooms []Room) int {
	max := 1
	for i := range rooms {
		label := rooms[i].FloorLabel
		if strings.Contains(strings.ToLower(label), "basement") {
			continue
		}
		if m := firstIntRe.FindString(label); m != "" {
			if n, _ := strconv.Atoi(m); n > max {
				max = n
			}
		}
	}
	return max
}

// nameCounter tracks how many rooms of a base label exist per floor while
// a batch add is in flight. Keys are "<floorNumber>|<lowercase base>".
type nameCounter map[string]int

func counterKey(floorNumber int, base string) string {
	return fmt.Sprintf("%d|%s", floorNumber, strings.ToLower(base))
}

// countOnFloor counts existing rooms on the given floor whose base name
// matches, reading the floor number back out of the display-name prefix.
func countOnFloor(rooms []Room, floorNumber int, base string) int {
	prefix := fmt.Sprintf("%d. ", floorNumber)
	count := 0
	for i := range rooms {
		if !strings.HasPrefix(rooms[i].Name, prefix) {
			continue
		}
		if strings.EqualFold(RoomBaseName(rooms[i].Name), base) {
			count++
		}
	}
	return count
}

// formatRoomName runs the naming algorithm for one raw name. The counter
// is seeded lazily from existing rooms, which makes single adds and batch
// adds indistinguishable.
func formatRoomName(raw, floorLabel string, rooms []Room, counter nameCounter) string {
	base, numbered := normalizeBase(raw)
	if base == "" {
		return ""
	}
	if forced, ok := selfAssignedFloor(base); ok {
		floorLabel = forced
	}
	floorNumber := FloorNumber(floorLabel, rooms)
	key := counterKey(floorNumber, base)
	if _, ok := counter[key]; !ok {
		counter[key] = countOnFloor(rooms, floorNumber, base)
	}
	next := counter[key] + 1
	counter[key] = next

	suffix := ""
	if numbered && next > 1 {
		suffix = fmt.Sprintf(" %d", next)
	}
	return fmt.Sprintf("%d. %s%s", floorNumber, base, suffix)
}

// IsBasementOrAttic reports whether a room name pins its own floor.
func IsBasementOrAttic(name string) bool {
	return basementAtticRe.MatchString(name)
}
