// internal/scope/store.go
//
// Store owns the project state and the per-room panel state. Every
// mutation is total: bad input is clamped or ignored, never returned as
// an error. Committed changes are mirrored to a single OnChange callback
// carrying the full ProjectState; the store suppresses callbacks when a
// mutation left the state structurally identical.

package scope

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// DraftRoomID is the synthetic id of the bulk-edit staging room.
const DraftRoomID = "ALL"

// Store holds a scoping session.
type Store struct {
	state    ProjectState
	panels   map[string]*PanelState
	draft    *Draft
	catalog  Catalog
	onChange func(ProjectState)
	newID    func() string
}

// Option customizes a Store during construction.
type Option func(*Store)

// WithOnChange registers the host callback invoked with the full state
// after every committed change.
func WithOnChange(fn func(ProjectState)) Option {
	return func(s *Store) {
		s.onChange = fn
	}
}

// WithIDSource overrides id generation, mostly for tests.
func WithIDSource(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithCatalog replaces the default service catalog.
func WithCatalog(cat Catalog) Option {
	return func(s *Store) {
		s.catalog = cat
	}
}

// WithState seeds the store from a restored snapshot.
func WithState(state ProjectState) Option {
	return func(s *Store) {
		s.state = state.Clone()
	}
}

// WithPanels seeds restored panel state alongside WithState.
func WithPanels(panels map[string]PanelState) Option {
	return func(s *Store) {
		for id, p := range panels {
			cp := p
			if cp.Open == nil {
				cp.Open = map[Section]bool{}
			}
			if cp.Completed == nil {
				cp.Completed = map[Section]bool{}
			}
			s.panels[id] = &cp
		}
	}
}

// NewStore builds an empty session.
func NewStore(opts ...Option) *Store {
	s := &Store{
		panels:  map[string]*PanelState{},
		catalog: DefaultCatalog(),
		newID:   uuid.NewString,
	}
	s.draft = newDraft()
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns a deep copy of the current project state.
func (s *Store) State() ProjectState {
	return s.state.Clone()
}

// Catalog returns the active service catalog.
func (s *Store) Catalog() Catalog {
	return s.catalog
}

// Draft returns the bulk-edit staging room.
func (s *Store) Draft() *Draft {
	return s.draft
}

// Panel returns the presentation state for a room, creating it on first
// touch.
func (s *Store) Panel(id string) *PanelState {
	p, ok := s.panels[id]
	if !ok {
		p = NewPanelState()
		s.panels[id] = p
	}
	return p
}

// Panels returns a copy of all panel state keyed by room id, for
// snapshotting.
func (s *Store) Panels() map[string]PanelState {
	out := make(map[string]PanelState, len(s.panels))
	for id, p := range s.panels {
		out[id] = *p
	}
	return out
}

// Rooms returns the live room slice. Callers must treat it as read-only;
// State() hands out safe copies.
func (s *Store) Rooms() []Room {
	return s.state.Rooms
}

// RoomByID finds a room. The draft id resolves to the staging room.
func (s *Store) RoomByID(id string) (*Room, bool) {
	if id == DraftRoomID {
		return &s.draft.Room, true
	}
	for i := range s.state.Rooms {
		if s.state.Rooms[i].ID == id {
			return &s.state.Rooms[i], true
		}
	}
	return nil, false
}

func (s *Store) publish(prev ProjectState) {
	if s.onChange == nil {
		return
	}
	if reflect.DeepEqual(prev, s.state) {
		return
	}
	s.onChange(s.state.Clone())
}

// AddRoom adds one room. Blank names and name collisions are no-ops. The
// raw (pre-formatted) name is remembered on the master room list for
// future quick-add menus.
func (s *Store) AddRoom(name, floorLabel string) {
	s.AddRooms([]string{name}, floorLabel)
}

// AddRooms adds a batch, pre-seeding the per-floor name counter so that
// three "Bedroom" entries in one call number themselves 1, 2, 3 exactly
// as three separate calls would.
func (s *Store) AddRooms(names []string, floorLabel string) {
	prev := s.state.Clone()
	counter := nameCounter{}
	for _, raw := range names {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		display := formatRoomName(raw, floorLabel, s.state.Rooms, counter)
		if display == "" || s.hasRoomNamed(display) {
			continue
		}
		floor := floorLabel
		if forced, ok := selfAssignedFloor(raw); ok {
			floor = forced
		}
		room := Room{
			ID:         s.newID(),
			Name:       display,
			FloorLabel: floor,
		}
		s.state.Rooms = append(s.state.Rooms, room)
		s.rememberRoomName(raw)
	}
	s.publish(prev)
}

// AddBedrooms adds n bedrooms to a floor via the batch path.
func (s *Store) AddBedrooms(n int, floorLabel string) {
	s.addRepeated("Bedroom", n, floorLabel)
}

// AddBaths adds n baths to a floor via the batch path.
func (s *Store) AddBaths(n int, floorLabel string) {
	s.addRepeated("Bath", n, floorLabel)
}

func (s *Store) addRepeated(base string, n int, floorLabel string) {
	if n <= 0 {
		return
	}
	names := make([]string, n)
	for i := range names {
		names[i] = base
	}
	s.AddRooms(names, floorLabel)
}

func (s *Store) hasRoomNamed(name string) bool {
	for i := range s.state.Rooms {
		if s.state.Rooms[i].Name == name {
			return true
		}
	}
	return false
}

func (s *Store) rememberRoomName(raw string) {
	base := RoomBaseName(raw)
	for _, existing := range s.state.MasterRoomList {
		if strings.EqualFold(RoomBaseName(existing), base) {
			return
		}
	}
	s.state.MasterRoomList = append(s.state.MasterRoomList, strings.TrimSpace(raw))
}

// DeleteRoom removes a room unconditionally; confirmation is the
// caller's job.
func (s *Store) DeleteRoom(id string) {
	prev := s.state.Clone()
	for i := range s.state.Rooms {
		if s.state.Rooms[i].ID == id {
			s.state.Rooms = append(s.state.Rooms[:i], s.state.Rooms[i+1:]...)
			delete(s.panels, id)
			break
		}
	}
	s.publish(prev)
}

// ClearRooms wipes every room after the caller's confirmation.
func (s *Store) ClearRooms() {
	prev := s.state.Clone()
	s.state.Rooms = nil
	s.panels = map[string]*PanelState{}
	s.publish(prev)
}

// SetFloorLabel reassigns a room's floor. Basement and attic rooms keep
// their self-assigned floor.
func (s *Store) SetFloorLabel(id, floorLabel string) {
	prev := s.state.Clone()
	if room, ok := s.RoomByID(id); ok && !IsBasementOrAttic(room.Name) {
		room.FloorLabel = floorLabel
	}
	s.publish(prev)
}

// SetOdorLevel sets the odor rating; unknown values are ignored.
func (s *Store) SetOdorLevel(id, level string) {
	valid := false
	for _, l := range OdorLevels {
		if l == level {
			valid = true
			break
		}
	}
	if !valid {
		return
	}
	prev := s.state.Clone()
	if room, ok := s.RoomByID(id); ok {
		room.OdorLevel = level
	}
	s.publish(prev)
}

// SetAnswer commits a tri-state answer for one section. Answering opens
// the section panel; a "no" closes it out and marks it completed. When
// cleaning and affected are both answered no, the whole card collapses.
func (s *Store) SetAnswer(id string, section Section, value *bool) {
	prev := s.state.Clone()
	room, ok := s.RoomByID(id)
	if !ok {
		return
	}
	room.setAnswer(section, cloneBool(value))
	panel := s.Panel(id)
	switch {
	case value == nil:
		panel.Open[section] = true
	case *value:
		panel.Open[section] = true
		panel.Collapsed = false
	default:
		panel.Open[section] = false
		panel.Completed[section] = true
	}
	if isFalse(room.HasCleaning) && isFalse(room.Affected) {
		panel.Collapsed = true
		for _, sec := range Sections {
			panel.Open[sec] = false
		}
	}
	s.publish(prev)
}

func isFalse(v *bool) bool {
	return v != nil && !*v
}

// ToggleSeverity adds or removes a free-text severity tag. Selecting any
// severity implies the room is affected.
func (s *Store) ToggleSeverity(id, tag string) {
	prev := s.state.Clone()
	room, ok := s.RoomByID(id)
	if !ok {
		return
	}
	room.SeveritySelections = toggleString(room.SeveritySelections, tag)
	affected := true
	room.Affected = &affected
	s.publish(prev)
}

// ToggleSeverityCode keeps at most one level per group active. Repeating
// the current code clears that group's override so the room inherits the
// order-level defaults again.
func (s *Store) ToggleSeverityCode(id, code string) {
	group, _, ok := SplitSeverityCode(code)
	if !ok {
		return
	}
	prev := s.state.Clone()
	room, found := s.RoomByID(id)
	if !found {
		return
	}
	room.SeverityCodes = toggleGroupCode(room.SeverityCodes, group, code)
	s.publish(prev)
}

// ToggleOrderSeverityCode edits the order-level defaults with the same
// one-level-per-group rule.
func (s *Store) ToggleOrderSeverityCode(code string) {
	group, _, ok := SplitSeverityCode(code)
	if !ok {
		return
	}
	prev := s.state.Clone()
	s.state.OrderSeverityCodes = toggleGroupCode(s.state.OrderSeverityCodes, group, code)
	s.publish(prev)
}

func toggleGroupCode(codes []string, group, code string) []string {
	kept := make([]string, 0, len(codes))
	removed := false
	for _, c := range codes {
		if c == code {
			removed = true
			continue
		}
		if g, _, ok := SplitSeverityCode(c); ok && g == group {
			continue
		}
		kept = append(kept, c)
	}
	if !removed {
		kept = append(kept, code)
	}
	return kept
}

// Aspect selects the pack-out or leave-on-site side of room details.
type Aspect string

const (
	AspectPackOut     Aspect = "packOut"
	AspectLeaveOnsite Aspect = "leaveOnsite"
)

// DetailKind selects the locations or items list within an aspect.
type DetailKind string

const (
	KindLocations DetailKind = "locations"
	KindItems     DetailKind = "items"
)

// ToggleDetail flips membership of a value in one include list, then
// rebuilds the room's generated tasks.
func (s *Store) ToggleDetail(id string, aspect Aspect, kind DetailKind, value string) {
	prev := s.state.Clone()
	room, ok := s.RoomByID(id)
	if !ok {
		return
	}
	list := room.detailList(aspect, kind)
	if list == nil {
		return
	}
	list.Include = toggleString(list.Include, value)
	s.rebuildTasks(room)
	s.publish(prev)
}

func (r *Room) detailList(aspect Aspect, kind DetailKind) *IncludeList {
	var a *AspectDetails
	switch aspect {
	case AspectPackOut:
		a = &r.Details.PackOut
	case AspectLeaveOnsite:
		a = &r.Details.LeaveOnsite
	default:
		return nil
	}
	switch kind {
	case KindLocations:
		return &a.Locations
	case KindItems:
		return &a.Items
	}
	return nil
}

// rebuildTasks re-derives the generated task block from the include lists.
// Generated tasks whose type and label survive keep their id, status,
// reason, note, and quantity; freeform tasks are never touched.
func (s *Store) rebuildTasks(room *Room) {
	type key struct {
		t     TaskType
		label string
	}
	existing := map[key]Task{}
	var freeform []Task
	for _, t := range room.Tasks {
		if t.Freeform {
			freeform = append(freeform, t)
			continue
		}
		existing[key{t.Type, t.Label}] = t
	}
	var generated []Task
	appendAll := func(tt TaskType, labels []string) {
		for _, label := range labels {
			k := key{tt, label}
			if t, ok := existing[k]; ok {
				generated = append(generated, t)
				continue
			}
			generated = append(generated, Task{
				ID:       s.newID(),
				Type:     tt,
				Label:    label,
				Status:   StatusPending,
				Quantity: 1,
			})
		}
	}
	appendAll(TaskTake, room.Details.PackOut.Locations.Include)
	appendAll(TaskTake, room.Details.PackOut.Items.Include)
	appendAll(TaskLeave, room.Details.LeaveOnsite.Locations.Include)
	appendAll(TaskLeave, room.Details.LeaveOnsite.Items.Include)
	room.Tasks = append(generated, freeform...)
}

// AddTask appends a freeform task typed by the technician.
func (s *Store) AddTask(id, text string, tt TaskType) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	if tt != TaskTake && tt != TaskLeave {
		tt = TaskTake
	}
	prev := s.state.Clone()
	room, ok := s.RoomByID(id)
	if !ok {
		return
	}
	room.Tasks = append(room.Tasks, Task{
		ID:       s.newID(),
		Type:     tt,
		Label:    text,
		Status:   StatusPending,
		Quantity: 1,
		Freeform: true,
	})
	s.publish(prev)
}

// DeleteTask removes a task by id, freeform or generated. Deleting a
// generated task also unchecks the detail entry it came from, so the
// rebuild invariant keeps holding.
func (s *Store) DeleteTask(id, taskID string) {
	prev := s.state.Clone()
	room, ok := s.RoomByID(id)
	if !ok {
		return
	}
	for i, t := range room.Tasks {
		if t.ID != taskID {
			continue
		}
		if t.Freeform {
			room.Tasks = append(room.Tasks[:i], room.Tasks[i+1:]...)
		} else {
			s.uncheckDetail(room, t)
			s.rebuildTasks(room)
		}
		break
	}
	s.publish(prev)
}

func (s *Store) uncheckDetail(room *Room, t Task) {
	var a *AspectDetails
	if t.Type == TaskTake {
		a = &room.Details.PackOut
	} else {
		a = &room.Details.LeaveOnsite
	}
	a.Locations.Include = removeString(a.Locations.Include, t.Label)
	a.Items.Include = removeString(a.Items.Include, t.Label)
}

func (s *Store) updateTask(id, taskID string, fn func(*Task)) {
	prev := s.state.Clone()
	room, ok := s.RoomByID(id)
	if !ok {
		return
	}
	for i := range room.Tasks {
		if room.Tasks[i].ID == taskID {
			fn(&room.Tasks[i])
			break
		}
	}
	s.publish(prev)
}

// SetTaskStatus moves a task between pending, done, and changed.
func (s *Store) SetTaskStatus(id, taskID string, status TaskStatus) {
	if status != StatusPending && status != StatusDone && status != StatusChanged {
		return
	}
	s.updateTask(id, taskID, func(t *Task) {
		t.Status = status
	})
}

// SetTaskReason records a reason from the fixed list.
func (s *Store) SetTaskReason(id, taskID, reason string) {
	s.updateTask(id, taskID, func(t *Task) {
		t.Reason = reason
	})
}

// SetTaskChangeNote stores a change note and forces the task into the
// changed status.
func (s *Store) SetTaskChangeNote(id, taskID, note string) {
	s.updateTask(id, taskID, func(t *Task) {
		t.ChangeNote = note
		t.Status = StatusChanged
	})
}

// SetTaskQuantity parses and clamps a quantity. Non-numeric input and
// anything below 1 reset to 1.
func (s *Store) SetTaskQuantity(id, taskID, raw string) {
	qty, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || qty < 1 {
		qty = 1
	}
	s.updateTask(id, taskID, func(t *Task) {
		t.Quantity = qty
	})
}

// ToggleSectionOpen flips a section panel. Closing a section that has an
// answer marks it completed; completion is sticky and never cleared here.
func (s *Store) ToggleSectionOpen(id string, section Section) {
	room, ok := s.RoomByID(id)
	if !ok {
		return
	}
	panel := s.Panel(id)
	panel.Open[section] = !panel.Open[section]
	if !panel.Open[section] && room.Answered(section) {
		panel.Completed[section] = true
	}
}

// SetServices replaces the selected service offerings and keeps the
// auto-generated instruction line in sync.
func (s *Store) SetServices(services []string) {
	prev := s.state.Clone()
	s.state.Services = cloneStrings(services)
	s.state.EventInstructions = WithServiceOfferings(s.state.EventInstructions, services)
	s.publish(prev)
}

// ToggleService flips one offering in the selection, preserving catalog
// order.
func (s *Store) ToggleService(name string) {
	selected := toggleString(cloneStrings(s.state.Services), name)
	ordered := make([]string, 0, len(selected))
	for _, o := range s.catalog.Offerings {
		for _, sel := range selected {
			if strings.EqualFold(sel, o.Name) {
				ordered = append(ordered, o.Name)
			}
		}
	}
	s.SetServices(ordered)
}

// SetTextileFilters narrows which textile sub-items appear as dynamic
// item options.
func (s *Store) SetTextileFilters(filters []string) {
	prev := s.state.Clone()
	s.state.TextileFilters = cloneStrings(filters)
	s.publish(prev)
}

// SetAnticipated updates one anticipated specialty group.
func (s *Store) SetAnticipated(group string, selected bool, note string) {
	prev := s.state.Clone()
	if s.state.Anticipated == nil {
		s.state.Anticipated = map[string]AnticipatedEntry{}
	}
	s.state.Anticipated[group] = AnticipatedEntry{Selected: selected, Note: note}
	s.publish(prev)
}

// SetScheduleInstructions stores the schedule block verbatim.
func (s *Store) SetScheduleInstructions(text string) {
	prev := s.state.Clone()
	s.state.ScheduleInstructions = text
	s.publish(prev)
}

// SetEventInstructions canonicalizes and stores the event block.
func (s *Store) SetEventInstructions(text string) {
	prev := s.state.Clone()
	s.state.EventInstructions = JoinInstructions(SplitInstructions(text))
	s.publish(prev)
}

// SetAgreement records the instruction review outcome. The note is only
// kept for a disagreement.
func (s *Store) SetAgreement(a Agreement, note string) {
	prev := s.state.Clone()
	s.state.Agreement = a
	if a == AgreementDisagreed {
		s.state.DisagreementNote = note
	} else {
		s.state.DisagreementNote = ""
	}
	s.publish(prev)
}

func toggleString(list []string, value string) []string {
	for i, v := range list {
		if v == value {
			return append(list[:i], list[i+1:]...)
		}
	}
	return append(list, value)
}

func removeString(list []string, value string) []string {
	out := list[:0]
	for _, v := range list {
		if v != value {
			out = append(out, v)
		}
	}
	return out
}

func unionStrings(base, extra []string) []string {
	out := cloneStrings(base)
	for _, v := range extra {
		found := false
		for _, existing := range out {
			if existing == v {
				found = true
				break
			}
		}
		if !found {
			out = append(out, v)
		}
	}
	return out
}
