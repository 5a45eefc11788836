// internal/tui/scope_view.go
//
// Scope mode: the room list, the quick-add menu, bulk selection, and the
// per-room card. The card is rendered as a cursor-driven row form built
// fresh from the store on every View, so it can never drift from the
// domain state.

package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/samedayscope/sds/internal/scope"
)

// roomItem implements list.Item for the room list.
type roomItem struct {
	room     scope.Room
	selected bool
	bulkMode bool
	summary  string
}

func (i roomItem) Title() string {
	marker := "  "
	if i.bulkMode {
		marker = "[ ] "
		if i.selected {
			marker = "[x] "
		}
	}
	return marker + i.room.Name
}

func (i roomItem) Description() string { return i.summary }
func (i roomItem) FilterValue() string { return i.room.Name }

type scopeView struct {
	rooms        list.Model
	bulkMode     bool
	bulkSelected map[string]bool
	targetFloor  int

	detailRoomID string
	detailCursor int

	quickInput   textinput.Model
	quickChoices []string
	quickCursor  int
}

func (v *scopeView) init(a *App) {
	rooms := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	rooms.Title = "Rooms"
	rooms.SetShowStatusBar(false)
	rooms.SetFilteringEnabled(false)
	v.rooms = rooms
	v.bulkSelected = map[string]bool{}

	quick := textinput.New()
	quick.Placeholder = "filter rooms"
	v.quickInput = quick

	v.refreshRooms(a)
}

func (v *scopeView) resize(width, height int) {
	v.rooms.SetSize(max(0, width-6), max(6, height-14))
}

func (v *scopeView) floorLabel(a *App) string {
	floors := a.cfg.Floors()
	if len(floors) == 0 {
		return "Floor 1"
	}
	return floors[v.targetFloor%len(floors)]
}

func (v *scopeView) refreshRooms(a *App) {
	rooms := a.store.Rooms()
	items := make([]list.Item, 0, len(rooms))
	for _, room := range rooms {
		items = append(items, roomItem{
			room:     room,
			selected: v.bulkSelected[room.ID],
			bulkMode: v.bulkMode,
			summary:  roomSummary(a, room),
		})
	}
	v.rooms.SetItems(items)
}

func roomSummary(a *App, room scope.Room) string {
	parts := []string{}
	if room.FloorLabel != "" {
		parts = append(parts, room.FloorLabel)
	}
	parts = append(parts, plural(len(room.Tasks), "task"))
	panel := a.store.Panel(room.ID)
	completed := 0
	for _, sec := range scope.Sections {
		if panel.Completed[sec] {
			completed++
		}
	}
	parts = append(parts, fmt.Sprintf("%d/%d sections", completed, len(scope.Sections)))
	return strings.Join(parts, " · ")
}

func (v *scopeView) selectedRoom() (scope.Room, bool) {
	item, ok := v.rooms.SelectedItem().(roomItem)
	if !ok {
		return scope.Room{}, false
	}
	return item.room, true
}

func (v *scopeView) update(a *App, msg tea.Msg) tea.Cmd {
	if a.state == stateQuickAdd {
		return v.updateQuickAdd(a, msg)
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			if room, ok := v.selectedRoom(); ok && !v.bulkMode {
				v.openDetail(a, room.ID)
			}
			return nil
		case " ":
			if room, ok := v.selectedRoom(); ok && v.bulkMode {
				v.bulkSelected[room.ID] = !v.bulkSelected[room.ID]
				v.refreshRooms(a)
			}
			return nil
		case "n":
			v.openQuickAdd(a)
			return nil
		case "c":
			floor := v.floorLabel(a)
			a.promptLine("Add rooms to "+floor, "Kitchen, Pantry, Bedroom", "", func(a *App, value string) {
				names := strings.Split(value, ",")
				a.store.AddRooms(names, floor)
				a.logbook.Info("Added rooms: %s", strings.TrimSpace(value))
				a.scopeView.refreshRooms(a)
			})
			return nil
		case "B":
			v.promptCount(a, "Bedrooms to add", func(a *App, n int) {
				a.store.AddBedrooms(n, a.scopeView.floorLabel(a))
			})
			return nil
		case "T":
			v.promptCount(a, "Baths to add", func(a *App, n int) {
				a.store.AddBaths(n, a.scopeView.floorLabel(a))
			})
			return nil
		case "f":
			v.targetFloor++
			a.statusMsg = "New rooms go to " + v.floorLabel(a)
			return nil
		case "d":
			if room, ok := v.selectedRoom(); ok {
				name := room.Name
				id := room.ID
				a.requestConfirm("Delete "+name+"?", func(a *App) {
					a.store.DeleteRoom(id)
					a.logbook.Room(name, "deleted from scope")
					a.scopeView.refreshRooms(a)
				})
			}
			return nil
		case "X":
			a.requestConfirm("Clear ALL rooms?", func(a *App) {
				a.store.ClearRooms()
				a.logbook.Warn("Cleared all rooms")
				a.scopeView.refreshRooms(a)
			})
			return nil
		case "b":
			v.bulkMode = !v.bulkMode
			if !v.bulkMode {
				v.bulkSelected = map[string]bool{}
				a.store.ResetDraft()
			}
			v.refreshRooms(a)
			return nil
		case "e":
			if v.bulkMode {
				v.openDetail(a, scope.DraftRoomID)
			}
			return nil
		case "a":
			if v.bulkMode {
				v.applyBulk(a)
			}
			return nil
		case "esc":
			if v.bulkMode {
				v.bulkMode = false
				v.bulkSelected = map[string]bool{}
				a.store.ResetDraft()
				v.refreshRooms(a)
			}
			return nil
		}
	}
	var cmd tea.Cmd
	v.rooms, cmd = v.rooms.Update(msg)
	return cmd
}

func (v *scopeView) promptCount(a *App, title string, apply func(*App, int)) {
	a.promptLine(title, "2", "", func(a *App, value string) {
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n < 1 {
			a.statusMsg = "Enter a number of rooms"
			return
		}
		apply(a, n)
		a.scopeView.refreshRooms(a)
	})
}

func (v *scopeView) applyBulk(a *App) {
	var ids []string
	for id, on := range v.bulkSelected {
		if on {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 || !a.store.Draft().Dirty() {
		a.statusMsg = "Nothing staged to apply"
		return
	}
	a.store.ApplyBulk(ids)
	a.logbook.Info("Bulk changes applied to %s", plural(len(ids), "room"))
	a.statusMsg = "Applied to " + plural(len(ids), "room")
	v.bulkMode = false
	v.bulkSelected = map[string]bool{}
	v.refreshRooms(a)
}

func (v *scopeView) viewRooms(a *App) string {
	var b strings.Builder
	b.WriteString(v.rooms.View())
	b.WriteString("\n")
	hints := "n → quick add    c → custom rooms    B/T → bedrooms/baths    f → floor (" + v.floorLabel(a) + ")"
	if v.bulkMode {
		hints = "space → select    e → edit bulk draft    a → apply    esc → leave bulk mode"
	} else {
		hints += "\nenter → open room    d → delete    b → bulk edit    X → clear all    q → quit"
	}
	b.WriteString(hintStyle.Render(hints))
	return b.String()
}

// --- quick add -----------------------------------------------------------

func (v *scopeView) openQuickAdd(a *App) {
	v.quickInput.SetValue("")
	v.quickInput.Focus()
	v.quickCursor = 0
	v.rebuildQuickChoices(a)
	a.setState(stateQuickAdd)
}

// rebuildQuickChoices merges the built-in templates with the project's
// remembered master room list, deduplicated by base name, then applies
// the fuzzy filter.
func (v *scopeView) rebuildQuickChoices(a *App) {
	seen := map[string]bool{}
	var all []string
	add := func(name string) {
		key := strings.ToLower(scope.RoomBaseName(name))
		if key == "" || seen[key] {
			return
		}
		seen[key] = true
		all = append(all, name)
	}
	for _, name := range a.store.State().MasterRoomList {
		add(name)
	}
	for _, name := range scope.QuickAddTemplates {
		add(name)
	}
	query := strings.TrimSpace(v.quickInput.Value())
	if query == "" {
		v.quickChoices = all
	} else {
		matches := fuzzy.Find(query, all)
		v.quickChoices = make([]string, 0, len(matches))
		for _, m := range matches {
			v.quickChoices = append(v.quickChoices, all[m.Index])
		}
	}
	if v.quickCursor >= len(v.quickChoices) {
		v.quickCursor = 0
	}
}

func (v *scopeView) updateQuickAdd(a *App, msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			a.setState(stateScope)
			return nil
		case "up":
			if v.quickCursor > 0 {
				v.quickCursor--
			}
			return nil
		case "down":
			if v.quickCursor < len(v.quickChoices)-1 {
				v.quickCursor++
			}
			return nil
		case "enter":
			name := strings.TrimSpace(v.quickInput.Value())
			if len(v.quickChoices) > 0 {
				name = v.quickChoices[v.quickCursor]
			}
			if name != "" {
				a.store.AddRoom(name, v.floorLabel(a))
				a.logbook.Room(name, "added to %s", v.floorLabel(a))
			}
			a.setState(stateScope)
			return nil
		}
	}
	var cmd tea.Cmd
	v.quickInput, cmd = v.quickInput.Update(msg)
	v.rebuildQuickChoices(a)
	return cmd
}

func (v *scopeView) viewQuickAdd(a *App) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Add Room · "+v.floorLabel(a)) + "\n\n")
	b.WriteString(v.quickInput.View() + "\n\n")
	for i, choice := range v.quickChoices {
		if i == v.quickCursor {
			b.WriteString(cursorStyle.Render("→ "+choice) + "\n")
		} else {
			b.WriteString("  " + choice + "\n")
		}
	}
	if len(v.quickChoices) == 0 {
		b.WriteString(dimStyle.Render("No matches; Enter adds the typed name") + "\n")
	}
	b.WriteString("\n" + hintStyle.Render("Enter → add    Esc → back"))
	return b.String()
}

// --- room detail ---------------------------------------------------------

// detailRow is one interactive line of the room card.
type detailRow struct {
	text  string
	enter func(a *App)
	yes   func(a *App)
	no    func(a *App)
}

func (v *scopeView) openDetail(a *App, roomID string) {
	v.detailRoomID = roomID
	v.detailCursor = 0
	a.setState(stateRoomDetail)
}

func (v *scopeView) updateDetail(a *App, msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	rows := v.buildDetailRows(a)
	switch key.String() {
	case "esc":
		a.setState(stateScope)
		return nil
	case "up", "k":
		if v.detailCursor > 0 {
			v.detailCursor--
		}
	case "down", "j":
		if v.detailCursor < len(rows)-1 {
			v.detailCursor++
		}
	case "enter", " ":
		if v.detailCursor < len(rows) && rows[v.detailCursor].enter != nil {
			rows[v.detailCursor].enter(a)
		}
	case "y":
		if v.detailCursor < len(rows) && rows[v.detailCursor].yes != nil {
			rows[v.detailCursor].yes(a)
		}
	case "n":
		if v.detailCursor < len(rows) && rows[v.detailCursor].no != nil {
			rows[v.detailCursor].no(a)
		}
	}
	return nil
}

func answerText(v *bool) string {
	switch {
	case v == nil:
		return "unanswered"
	case *v:
		return "yes"
	default:
		return "no"
	}
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

// buildDetailRows flattens the room card into interactive rows. The draft
// room gets the same rows, so bulk staging reuses every picker.
func (v *scopeView) buildDetailRows(a *App) []detailRow {
	room, ok := a.store.RoomByID(v.detailRoomID)
	if !ok {
		return nil
	}
	id := room.ID
	panel := a.store.Panel(id)
	var rows []detailRow

	if !scope.IsBasementOrAttic(room.Name) {
		rows = append(rows, detailRow{
			text: "Floor: " + orDash(room.FloorLabel),
			enter: func(a *App) {
				a.store.SetFloorLabel(id, nextChoice(a.cfg.Floors(), room.FloorLabel))
			},
		})
	}
	rows = append(rows, detailRow{
		text: "Odor level: " + orDash(room.OdorLevel),
		enter: func(a *App) {
			a.store.SetOdorLevel(id, nextChoice(scope.OdorLevels, room.OdorLevel))
		},
	})

	rows = append(rows, v.sectionRows(a, room, panel, scope.SectionAffected, "Affected", v.affectedRows)...)
	rows = append(rows, v.sectionRows(a, room, panel, scope.SectionCleaning, "On-site cleaning", nil)...)
	rows = append(rows, v.sectionRows(a, room, panel, scope.SectionPackOut, "Pack out", v.packOutRows)...)
	rows = append(rows, v.sectionRows(a, room, panel, scope.SectionLeaveOnsite, "Leave on-site", v.leaveOnsiteRows)...)
	rows = append(rows, v.taskRows(a, room)...)
	return rows
}

func (v *scopeView) sectionRows(a *App, room *scope.Room, panel *scope.PanelState, section scope.Section, label string, body func(*App, *scope.Room) []detailRow) []detailRow {
	id := room.ID
	marker := "▸"
	if panel.Open[section] {
		marker = "▾"
	}
	status := answerText(room.Answer(section))
	if panel.Completed[section] {
		status += " ✓"
	}
	yes, no := true, false
	rows := []detailRow{{
		text: fmt.Sprintf("%s %s? (%s)", marker, label, status),
		enter: func(a *App) {
			a.store.ToggleSectionOpen(id, section)
			// panel-only change: the store publishes domain state, so the
			// snapshot has to be flagged here
			a.dirty = true
		},
		yes: func(a *App) {
			a.store.SetAnswer(id, section, &yes)
		},
		no: func(a *App) {
			a.store.SetAnswer(id, section, &no)
		},
	}}
	if panel.Open[section] && body != nil {
		rows = append(rows, body(a, room)...)
	}
	return rows
}

func (v *scopeView) affectedRows(a *App, room *scope.Room) []detailRow {
	id := room.ID
	var rows []detailRow
	for _, tag := range scope.SeverityTags {
		tag := tag
		on := containsString(room.SeveritySelections, tag)
		rows = append(rows, detailRow{
			text: "    " + checkbox(on) + " " + tag,
			enter: func(a *App) {
				a.store.ToggleSeverity(id, tag)
			},
		})
	}
	for _, group := range scope.SeverityGroups {
		group := group
		rows = append(rows, detailRow{
			text: "    " + severityCodeLine(group, room.SeverityCodes),
			enter: func(a *App) {
				cycleSeverity(a, id, group, room.SeverityCodes)
			},
		})
	}
	return rows
}

// severityCodeLine renders one group's level picker, e.g. "Fire: 1 [2] 3 5".
func severityCodeLine(group string, codes []string) string {
	current := 0
	for _, code := range codes {
		if g, level, ok := scope.SplitSeverityCode(code); ok && g == group {
			current = level
		}
	}
	parts := make([]string, 0, len(scope.SeverityLevels))
	for _, level := range scope.SeverityLevels {
		if level == current {
			parts = append(parts, fmt.Sprintf("[%d]", level))
		} else {
			parts = append(parts, strconv.Itoa(level))
		}
	}
	return group + ": " + strings.Join(parts, " ")
}

// cycleSeverity steps a group through none → 1 → 2 → 3 → 5 → none.
func cycleSeverity(a *App, roomID, group string, codes []string) {
	current := 0
	for _, code := range codes {
		if g, level, ok := scope.SplitSeverityCode(code); ok && g == group {
			current = level
		}
	}
	if current == scope.SeverityLevels[len(scope.SeverityLevels)-1] {
		a.store.ToggleSeverityCode(roomID, scope.SeverityCodeFor(group, current))
		return
	}
	next := scope.SeverityLevels[0]
	for i, level := range scope.SeverityLevels {
		if level == current && i+1 < len(scope.SeverityLevels) {
			next = scope.SeverityLevels[i+1]
		}
	}
	a.store.ToggleSeverityCode(roomID, scope.SeverityCodeFor(group, next))
}

func (v *scopeView) packOutRows(a *App, room *scope.Room) []detailRow {
	return v.detailToggleRows(a, room, scope.AspectPackOut)
}

func (v *scopeView) leaveOnsiteRows(a *App, room *scope.Room) []detailRow {
	return v.detailToggleRows(a, room, scope.AspectLeaveOnsite)
}

func (v *scopeView) detailToggleRows(a *App, room *scope.Room, aspect scope.Aspect) []detailRow {
	id := room.ID
	state := a.store.State()
	details := room.Details.PackOut
	if aspect == scope.AspectLeaveOnsite {
		details = room.Details.LeaveOnsite
	}
	var rows []detailRow
	rows = append(rows, detailRow{text: dimStyle.Render("    Locations")})
	for _, loc := range scope.DetailLocations {
		loc := loc
		on := containsString(details.Locations.Include, loc)
		rows = append(rows, detailRow{
			text: "    " + checkbox(on) + " " + loc,
			enter: func(a *App) {
				a.store.ToggleDetail(id, aspect, scope.KindLocations, loc)
			},
		})
	}
	rows = append(rows, detailRow{text: dimStyle.Render("    Items")})
	items := scope.DynamicItemOptions(a.store.Catalog(), state.Services, state.TextileFilters)
	if len(items) == 0 {
		rows = append(rows, detailRow{text: dimStyle.Render("    (select services in Setup)")})
	}
	for _, item := range items {
		item := item
		on := containsString(details.Items.Include, item)
		rows = append(rows, detailRow{
			text: "    " + checkbox(on) + " " + item,
			enter: func(a *App) {
				a.store.ToggleDetail(id, aspect, scope.KindItems, item)
			},
		})
	}
	return rows
}

func (v *scopeView) taskRows(a *App, room *scope.Room) []detailRow {
	id := room.ID
	rows := []detailRow{{text: titleStyle.Render("Tasks")}}
	for _, t := range room.Tasks {
		t := t
		mark := "•"
		if t.Freeform {
			mark = "✎"
		}
		line := fmt.Sprintf("%s %s", mark, t.Label)
		if t.Quantity > 1 {
			line += fmt.Sprintf(" (x%d)", t.Quantity)
		}
		line += " · " + string(t.Type) + " · " + string(t.Status)
		rows = append(rows, detailRow{
			text: "  " + line,
			enter: func(a *App) {
				a.store.SetTaskStatus(id, t.ID, nextStatus(t.Status))
			},
			no: func(a *App) {
				label := t.Label
				taskID := t.ID
				a.requestConfirm("Delete task "+label+"?", func(a *App) {
					a.store.DeleteTask(id, taskID)
				})
			},
		})
	}
	rows = append(rows, detailRow{
		text: "  + add pack-out task",
		enter: func(a *App) {
			a.promptLine("New pack-out task", "Sofa", "", func(a *App, value string) {
				a.store.AddTask(id, value, scope.TaskTake)
			})
		},
	})
	rows = append(rows, detailRow{
		text: "  + add leave-on-site task",
		enter: func(a *App) {
			a.promptLine("New leave-on-site task", "Piano", "", func(a *App, value string) {
				a.store.AddTask(id, value, scope.TaskLeave)
			})
		},
	})
	return rows
}

func nextStatus(s scope.TaskStatus) scope.TaskStatus {
	switch s {
	case scope.StatusPending:
		return scope.StatusDone
	case scope.StatusDone:
		return scope.StatusChanged
	}
	return scope.StatusPending
}

func (v *scopeView) viewDetail(a *App) string {
	room, ok := a.store.RoomByID(v.detailRoomID)
	if !ok {
		return "Room is gone"
	}
	title := room.Name
	if room.ID == scope.DraftRoomID {
		title = "Bulk Draft · staged changes apply to selected rooms"
	}
	rows := v.buildDetailRows(a)
	if v.detailCursor >= len(rows) {
		v.detailCursor = max(0, len(rows)-1)
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(title) + "\n\n")
	for i, row := range rows {
		if i == v.detailCursor {
			b.WriteString(cursorStyle.Render("→ "+row.text) + "\n")
		} else {
			b.WriteString("  " + row.text + "\n")
		}
	}
	b.WriteString("\n" + hintStyle.Render("enter/space → toggle    y/n → answer    n on a task → delete    esc → back"))
	return b.String()
}

func orDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "–"
	}
	return value
}

// nextChoice cycles through a fixed option list.
func nextChoice(options []string, current string) string {
	if len(options) == 0 {
		return current
	}
	for i, opt := range options {
		if opt == current {
			return options[(i+1)%len(options)]
		}
	}
	return options[0]
}

func containsString(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
