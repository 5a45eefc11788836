// internal/report/compose.go
//
// The report composer folds the project state into the SDS document. The
// structured Document backs both the on-screen preview and the clipboard
// text, so the grouping and ordering logic exists exactly once.

package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samedayscope/sds/internal/scope"
)

// UnassignedFloor is the bucket label for rooms with no floor.
const UnassignedFloor = "Floor - Unassigned"

// Input carries everything the composer reads.
type Input struct {
	Rooms                []scope.Room
	Services             []string
	Anticipated          map[string]scope.AnticipatedEntry
	ScheduleInstructions string
	EventInstructions    string
	Agreement            scope.Agreement
	DisagreementNote     string
}

// InputFromState adapts a project snapshot.
func InputFromState(state scope.ProjectState) Input {
	return Input{
		Rooms:                state.Rooms,
		Services:             state.Services,
		Anticipated:          state.Anticipated,
		ScheduleInstructions: state.ScheduleInstructions,
		EventInstructions:    state.EventInstructions,
		Agreement:            state.Agreement,
		DisagreementNote:     state.DisagreementNote,
	}
}

// TaskLine is one rendered task entry.
type TaskLine struct {
	Label      string
	Quantity   int
	ChangeNote string
}

// RoomSection groups one room's tasks by direction.
type RoomSection struct {
	Name  string
	Take  []TaskLine
	Leave []TaskLine
}

// FloorSection groups rooms under a floor label.
type FloorSection struct {
	Label string
	Rooms []RoomSection
}

// AnticipatedLine is one selected specialty group.
type AnticipatedLine struct {
	Group string
	Note  string
}

// Document is the structured SDS view.
type Document struct {
	ScheduleInstructions string
	AgreementLine        string
	EventLines           []string
	Services             []string
	Anticipated          []AnticipatedLine
	Floors               []FloorSection
}

// Compose builds the document per the SDS layout rules.
func Compose(in Input) Document {
	doc := Document{
		ScheduleInstructions: strings.TrimSpace(in.ScheduleInstructions),
		AgreementLine:        agreementLine(in.Agreement, in.DisagreementNote),
		EventLines:           scope.InstructionLines(in.EventInstructions),
		Services:             in.Services,
	}
	for _, group := range scope.AnticipatedGroups {
		entry, ok := in.Anticipated[group]
		if !ok || !entry.Selected {
			continue
		}
		note := strings.TrimSpace(entry.Note)
		if note == "" {
			note = "No note"
		}
		doc.Anticipated = append(doc.Anticipated, AnticipatedLine{Group: group, Note: note})
	}
	doc.Floors = composeFloors(in.Rooms)
	return doc
}

func agreementLine(a scope.Agreement, note string) string {
	switch a {
	case scope.AgreementAgreed:
		return "Agreed"
	case scope.AgreementDisagreed:
		note = strings.TrimSpace(note)
		if note != "" {
			return "Disagreed (" + note + ")"
		}
		return "Disagreed"
	}
	return "Not Reviewed"
}

func composeFloors(rooms []scope.Room) []FloorSection {
	byFloor := map[string][]RoomSection{}
	for _, room := range rooms {
		if len(room.Tasks) == 0 {
			continue
		}
		label := strings.TrimSpace(room.FloorLabel)
		if label == "" {
			label = UnassignedFloor
		}
		byFloor[label] = append(byFloor[label], composeRoom(room))
	}
	labels := make([]string, 0, len(byFloor))
	for label := range byFloor {
		labels = append(labels, label)
	}
	SortFloors(labels)
	floors := make([]FloorSection, 0, len(labels))
	for _, label := range labels {
		sections := byFloor[label]
		sort.Slice(sections, func(i, j int) bool {
			return sections[i].Name < sections[j].Name
		})
		floors = append(floors, FloorSection{Label: label, Rooms: sections})
	}
	return floors
}

func composeRoom(room scope.Room) RoomSection {
	section := RoomSection{Name: room.Name}
	for _, t := range room.Tasks {
		line := TaskLine{Label: t.Label, Quantity: t.Quantity, ChangeNote: strings.TrimSpace(t.ChangeNote)}
		if t.Type == scope.TaskLeave {
			section.Leave = append(section.Leave, line)
		} else {
			section.Take = append(section.Take, line)
		}
	}
	return section
}

// SortFloors orders floor labels in place: Basement always first, Attic
// always last, everything else in natural numeric-aware order.
func SortFloors(labels []string) {
	sort.SliceStable(labels, func(i, j int) bool {
		return floorLess(labels[i], labels[j])
	})
}

func floorLess(a, b string) bool {
	ra, rb := floorRank(a), floorRank(b)
	if ra != rb {
		return ra < rb
	}
	return naturalLess(a, b)
}

func floorRank(label string) int {
	lower := strings.ToLower(label)
	switch {
	case strings.Contains(lower, "basement"):
		return 0
	case strings.Contains(lower, "attic"):
		return 2
	}
	return 1
}

// naturalLess compares strings with digit runs compared numerically, so
// "Floor 2" sorts before "Floor 10".
func naturalLess(a, b string) bool {
	for len(a) > 0 && len(b) > 0 {
		aDigit, bDigit := isDigit(a[0]), isDigit(b[0])
		if aDigit && bDigit {
			aNum, aRest := takeDigits(a)
			bNum, bRest := takeDigits(b)
			if aNum != bNum {
				return aNum < bNum
			}
			a, b = aRest, bRest
			continue
		}
		if a[0] != b[0] {
			return a[0] < b[0]
		}
		a, b = a[1:], b[1:]
	}
	return len(a) < len(b)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func takeDigits(s string) (int, string) {
	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	n := 0
	for _, c := range s[:i] {
		n = n*10 + int(c-'0')
	}
	return n, s[i:]
}

// Text renders the plain document used for the clipboard and the report
// subcommand.
func (d Document) Text() string {
	var b strings.Builder

	b.WriteString("SAME DAY SCOPE\n\n")

	b.WriteString("SCHEDULE INSTRUCTIONS:\n")
	if d.ScheduleInstructions == "" {
		b.WriteString("None\n")
	} else {
		b.WriteString(d.ScheduleInstructions + "\n")
	}
	b.WriteString("\n")

	b.WriteString("INSTRUCTION REVIEW:\n")
	b.WriteString(d.AgreementLine + "\n\n")

	b.WriteString("EVENT INSTRUCTIONS:\n")
	if len(d.EventLines) == 0 {
		b.WriteString("None\n")
	} else {
		for _, line := range d.EventLines {
			b.WriteString("- " + line + "\n")
		}
	}
	b.WriteString("\n")

	b.WriteString("SERVICE OFFERINGS:\n")
	if len(d.Services) == 0 {
		b.WriteString("None\n")
	} else {
		b.WriteString(strings.Join(d.Services, ", ") + "\n")
	}
	b.WriteString("\n")

	b.WriteString("ANTICIPATED ITEMS:\n")
	if len(d.Anticipated) == 0 {
		b.WriteString("None\n")
	} else {
		for _, a := range d.Anticipated {
			b.WriteString(fmt.Sprintf("- %s: %s\n", a.Group, a.Note))
		}
	}
	b.WriteString("\n")

	b.WriteString("PACK-OUT INSTRUCTIONS:\n")
	for _, floor := range d.Floors {
		b.WriteString("\n" + floor.Label + "\n")
		for _, room := range floor.Rooms {
			b.WriteString(room.Name + ":\n")
			writeTaskBlock(&b, "Pack-out", room.Take)
			writeTaskBlock(&b, "Leave On-site", room.Leave)
		}
	}
	return b.String()
}

func writeTaskBlock(b *strings.Builder, header string, lines []TaskLine) {
	if len(lines) == 0 {
		return
	}
	b.WriteString("  - " + header + ":\n")
	for _, line := range lines {
		b.WriteString("    • " + line.Render() + "\n")
	}
}

// Render formats one task line with its quantity and change annotation.
func (l TaskLine) Render() string {
	out := l.Label
	if l.Quantity > 1 {
		out += fmt.Sprintf(" (x%d)", l.Quantity)
	}
	if l.ChangeNote != "" {
		out += " (changed: " + l.ChangeNote + ")"
	}
	return out
}
