// internal/scope/room.go
//
// Core domain records for a scoping session. A project is a flat ordered
// list of rooms; each room carries the technician's answers plus the task
// list derived from them. Presentation state (open panels, completion
// badges) lives in PanelState keyed by room ID, never on the Room itself.

package scope

// TaskType says whether an item is removed from the property or treated
// in place.
type TaskType string

const (
	TaskTake  TaskType = "take"
	TaskLeave TaskType = "leave"
)

// TaskStatus tracks execution during pack-out mode.
type TaskStatus string

const (
	StatusPending TaskStatus = "pending"
	StatusDone    TaskStatus = "done"
	StatusChanged TaskStatus = "changed"
)

// Task is one unit of pack-out or leave-on-site work.
type Task struct {
	ID         string     `yaml:"id"`
	Type       TaskType   `yaml:"type"`
	Label      string     `yaml:"label"`
	Status     TaskStatus `yaml:"status"`
	Reason     string     `yaml:"reason,omitempty"`
	ChangeNote string     `yaml:"change_note,omitempty"`
	Quantity   int        `yaml:"quantity"`
	Freeform   bool       `yaml:"freeform"`
}

// IncludeList is a checked-state list of location or item names. It is the
// source of truth for generated tasks.
type IncludeList struct {
	Include []string `yaml:"include"`
}

// AspectDetails holds the location and item selections for one aspect
// (pack-out or leave-on-site).
type AspectDetails struct {
	Locations IncludeList `yaml:"locations"`
	Items     IncludeList `yaml:"items"`
}

// RoomDetails nests the two aspects.
type RoomDetails struct {
	PackOut     AspectDetails `yaml:"pack_out"`
	LeaveOnsite AspectDetails `yaml:"leave_onsite"`
}

// Room is one scoped space. Tri-state answers use *bool: nil means the
// technician has not answered yet.
type Room struct {
	ID                 string      `yaml:"id"`
	Name               string      `yaml:"name"`
	FloorLabel         string      `yaml:"floor_label"`
	SeveritySelections []string    `yaml:"severity_selections,omitempty"`
	SeverityCodes      []string    `yaml:"severity_codes,omitempty"`
	OdorLevel          string      `yaml:"odor_level,omitempty"`
	Affected           *bool       `yaml:"affected,omitempty"`
	HasCleaning        *bool       `yaml:"has_cleaning,omitempty"`
	PackOut            *bool       `yaml:"pack_out,omitempty"`
	LeaveOnsite        *bool       `yaml:"leave_onsite,omitempty"`
	Details            RoomDetails `yaml:"details"`
	Tasks              []Task      `yaml:"tasks,omitempty"`
}

// Section identifies one answerable sub-section of a room card.
type Section string

const (
	SectionAffected    Section = "affected"
	SectionCleaning    Section = "hasCleaning"
	SectionPackOut     Section = "packOut"
	SectionLeaveOnsite Section = "leaveOnsite"
)

// Sections lists the answerable sub-sections in display order.
var Sections = []Section{SectionAffected, SectionCleaning, SectionPackOut, SectionLeaveOnsite}

// PanelState is the presentation side of a room card: which sub-sections
// are open and which have been completed. Completion is sticky once set.
type PanelState struct {
	Open      map[Section]bool `yaml:"open,omitempty"`
	Completed map[Section]bool `yaml:"completed,omitempty"`
	Collapsed bool             `yaml:"collapsed,omitempty"`
}

// NewPanelState returns an empty panel with allocated maps.
func NewPanelState() *PanelState {
	return &PanelState{
		Open:      map[Section]bool{},
		Completed: map[Section]bool{},
	}
}

// Agreement captures whether instructions were reviewed with the customer.
type Agreement string

const (
	AgreementNotReviewed Agreement = ""
	AgreementAgreed      Agreement = "agreed"
	AgreementDisagreed   Agreement = "disagreed"
)

// AnticipatedEntry is the selection state for one anticipated specialty
// group.
type AnticipatedEntry struct {
	Selected bool   `yaml:"selected"`
	Note     string `yaml:"note,omitempty"`
}

// ProjectState is the single value object mirrored to the host on every
// committed change. It holds domain state only; panel state is tracked
// separately by the Store.
type ProjectState struct {
	Rooms                []Room                      `yaml:"rooms,omitempty"`
	Services             []string                    `yaml:"services,omitempty"`
	TextileFilters       []string                    `yaml:"textile_filters,omitempty"`
	Anticipated          map[string]AnticipatedEntry `yaml:"anticipated,omitempty"`
	ScheduleInstructions string                      `yaml:"schedule_instructions,omitempty"`
	EventInstructions    string                      `yaml:"event_instructions,omitempty"`
	Agreement            Agreement                   `yaml:"agreement,omitempty"`
	DisagreementNote     string                      `yaml:"disagreement_note,omitempty"`
	OrderSeverityCodes   []string                    `yaml:"order_severity_codes,omitempty"`
	MasterRoomList       []string                    `yaml:"master_room_list,omitempty"`
}

// Clone returns a deep copy so callers can hold snapshots without aliasing
// store internals. Nil slices stay nil so a clone compares DeepEqual to its
// source; publish suppression depends on that.
func (p ProjectState) Clone() ProjectState {
	out := p
	if p.Rooms != nil {
		out.Rooms = make([]Room, len(p.Rooms))
		for i := range p.Rooms {
			out.Rooms[i] = p.Rooms[i].Clone()
		}
	}
	out.Services = cloneStrings(p.Services)
	out.TextileFilters = cloneStrings(p.TextileFilters)
	out.OrderSeverityCodes = cloneStrings(p.OrderSeverityCodes)
	out.MasterRoomList = cloneStrings(p.MasterRoomList)
	if p.Anticipated != nil {
		out.Anticipated = make(map[string]AnticipatedEntry, len(p.Anticipated))
		for k, v := range p.Anticipated {
			out.Anticipated[k] = v
		}
	}
	return out
}

// Clone deep-copies a room.
func (r Room) Clone() Room {
	out := r
	out.SeveritySelections = cloneStrings(r.SeveritySelections)
	out.SeverityCodes = cloneStrings(r.SeverityCodes)
	out.Affected = cloneBool(r.Affected)
	out.HasCleaning = cloneBool(r.HasCleaning)
	out.PackOut = cloneBool(r.PackOut)
	out.LeaveOnsite = cloneBool(r.LeaveOnsite)
	out.Details.PackOut.Locations.Include = cloneStrings(r.Details.PackOut.Locations.Include)
	out.Details.PackOut.Items.Include = cloneStrings(r.Details.PackOut.Items.Include)
	out.Details.LeaveOnsite.Locations.Include = cloneStrings(r.Details.LeaveOnsite.Locations.Include)
	out.Details.LeaveOnsite.Items.Include = cloneStrings(r.Details.LeaveOnsite.Items.Include)
	if r.Tasks != nil {
		out.Tasks = make([]Task, len(r.Tasks))
		copy(out.Tasks, r.Tasks)
	}
	return out
}

// Answer returns the tri-state value behind a section key.
func (r *Room) Answer(section Section) *bool {
	switch section {
	case SectionAffected:
		return r.Affected
	case SectionCleaning:
		return r.HasCleaning
	case SectionPackOut:
		return r.PackOut
	case SectionLeaveOnsite:
		return r.LeaveOnsite
	}
	return nil
}

// Answered reports whether the section has a committed yes/no.
func (r *Room) Answered(section Section) bool {
	return r.Answer(section) != nil
}

func (r *Room) setAnswer(section Section, value *bool) {
	switch section {
	case SectionAffected:
		r.Affected = value
	case SectionCleaning:
		r.HasCleaning = value
	case SectionPackOut:
		r.PackOut = value
	case SectionLeaveOnsite:
		r.LeaveOnsite = value
	}
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneBool(in *bool) *bool {
	if in == nil {
		return nil
	}
	v := *in
	return &v
}
