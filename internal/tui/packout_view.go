// internal/tui/packout_view.go
//
// Pack-out mode: task execution. Rooms appear in scope order; the
// hide-completed filter drops rooms whose tasks are all resolved. "Done
// with Pack-out" runs the preflight check before the session can be
// closed out.

package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/samedayscope/sds/internal/scope"
)

// packoutRow is either a room header or one task line.
type packoutRow struct {
	header string
	roomID string
	task   scope.Task
}

type packoutView struct {
	rows          []packoutRow
	cursor        int
	hideCompleted bool
	closedOut     bool
}

func (v *packoutView) init(a *App) {
	v.refresh(a)
}

func (v *packoutView) refresh(a *App) {
	rooms := scope.VisibleRooms(a.store.Rooms(), scope.ModePackout, v.hideCompleted)
	v.rows = v.rows[:0]
	for _, room := range rooms {
		if len(room.Tasks) == 0 {
			continue
		}
		v.rows = append(v.rows, packoutRow{header: room.Name})
		for _, t := range room.Tasks {
			v.rows = append(v.rows, packoutRow{roomID: room.ID, task: t})
		}
	}
	if v.cursor >= len(v.rows) {
		v.cursor = max(0, len(v.rows)-1)
	}
}

func (v *packoutView) currentTask() (string, scope.Task, bool) {
	if v.cursor < len(v.rows) && v.rows[v.cursor].roomID != "" {
		row := v.rows[v.cursor]
		return row.roomID, row.task, true
	}
	return "", scope.Task{}, false
}

func (v *packoutView) update(a *App, msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(v.rows)-1 {
			v.cursor++
		}
	case "h":
		v.hideCompleted = !v.hideCompleted
		v.refresh(a)
	case "enter", " ":
		if roomID, t, ok := v.currentTask(); ok {
			a.store.SetTaskStatus(roomID, t.ID, nextStatus(t.Status))
			v.refresh(a)
		}
	case "u":
		if roomID, t, ok := v.currentTask(); ok {
			taskID := t.ID
			a.promptLine("Quantity for "+t.Label, "1", fmt.Sprintf("%d", t.Quantity), func(a *App, value string) {
				a.store.SetTaskQuantity(roomID, taskID, value)
				a.packoutView.refresh(a)
			})
		}
	case "r":
		if roomID, t, ok := v.currentTask(); ok {
			a.store.SetTaskReason(roomID, t.ID, nextChoice(scope.ChangeReasons, t.Reason))
			v.refresh(a)
		}
	case "m":
		if roomID, t, ok := v.currentTask(); ok {
			taskID := t.ID
			a.promptLine("Change note for "+t.Label, "kept by customer", t.ChangeNote, func(a *App, value string) {
				a.store.SetTaskChangeNote(roomID, taskID, value)
				a.packoutView.refresh(a)
			})
		}
	case "F":
		v.runPreflight(a)
	}
	return nil
}

func (v *packoutView) runPreflight(a *App) {
	pf := scope.PackoutPreflight(a.store.Rooms())
	switch {
	case pf.Blocked():
		a.statusMsg = "No tasks scoped yet; nothing to finish"
	case pf.Clean():
		v.closedOut = true
		a.statusMsg = "Pack-out complete"
		a.logbook.Info("Pack-out closed out · %s", plural(pf.TotalTasks, "task"))
	default:
		a.preflight = &preflightModal{pf: pf}
	}
}

func (v *packoutView) view(a *App) string {
	var b strings.Builder
	title := "Pack-out"
	if v.hideCompleted {
		title += " · hiding completed"
	}
	if v.closedOut {
		title += doneStyle.Render(" · CLOSED OUT")
	}
	b.WriteString(titleStyle.Render(title) + "\n\n")
	if len(v.rows) == 0 {
		b.WriteString(dimStyle.Render("No rooms with open tasks.") + "\n")
	}
	for i, row := range v.rows {
		if row.header != "" {
			b.WriteString(titleStyle.Render(row.header) + "\n")
			continue
		}
		line := renderPackoutTask(row.task)
		if i == v.cursor {
			b.WriteString(cursorStyle.Render("→ "+line) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}
	b.WriteString("\n" + hintStyle.Render("space → status    u → qty    r → reason    m → change note    h → hide completed    F → done with pack-out"))
	return b.String()
}

func renderPackoutTask(t scope.Task) string {
	mark := "[ ]"
	switch t.Status {
	case scope.StatusDone:
		mark = doneStyle.Render("[✓]")
	case scope.StatusChanged:
		mark = warnStyle.Render("[~]")
	}
	line := fmt.Sprintf("%s %s", mark, t.Label)
	if t.Quantity > 1 {
		line += fmt.Sprintf(" (x%d)", t.Quantity)
	}
	line += " · " + string(t.Type)
	if t.Reason != "" {
		line += " · " + t.Reason
	}
	if t.ChangeNote != "" {
		line += " · note: " + t.ChangeNote
	}
	return line
}

// preflightModal lists still-pending tasks and requires an explicit
// acknowledgment before the pack-out closes out.
type preflightModal struct {
	pf scope.Preflight
}

func (m *preflightModal) handleKey(a *App, key string) (tea.Model, tea.Cmd) {
	switch key {
	case "y", "Y", "enter":
		a.preflight = nil
		a.packoutView.closedOut = true
		a.statusMsg = "Pack-out closed out with pending tasks"
		a.logbook.Warn("Pack-out closed out with %s pending", plural(len(m.pf.Pending), "task"))
	case "n", "N", "esc":
		a.preflight = nil
		a.statusMsg = "Keep working"
	}
	return a, nil
}

func (m *preflightModal) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Still pending") + "\n\n")
	for _, p := range m.pf.Pending {
		b.WriteString(fmt.Sprintf("  %s · %s\n", p.RoomName, p.Label))
	}
	b.WriteString("\n" + hintStyle.Render("y → close out anyway    n → keep working"))
	return modalStyle.Render(b.String())
}
