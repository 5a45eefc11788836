package scope

import (
	"reflect"
	"testing"
)

func boolPtr(v bool) *bool { return &v }

func addOneRoom(t *testing.T, s *Store) string {
	t.Helper()
	s.AddRoom("Kitchen", "Floor 1")
	rooms := s.Rooms()
	if len(rooms) != 1 {
		t.Fatalf("expected 1 room, got %d", len(rooms))
	}
	return rooms[0].ID
}

func TestCloneComparesEqualToSource(t *testing.T) {
	// rooms created by the store carry nil slices until first use; the
	// clone must keep them nil or publish suppression breaks
	state := ProjectState{
		Rooms: []Room{{ID: "r1", Name: "1. Kitchen", FloorLabel: "Floor 1"}},
	}
	if !reflect.DeepEqual(state, state.Clone()) {
		t.Fatalf("clone is not structurally equal to its source:\n%+v\nvs\n%+v", state, state.Clone())
	}

	empty := ProjectState{}
	if !reflect.DeepEqual(empty, empty.Clone()) {
		t.Fatalf("empty state clone not equal: %+v", empty.Clone())
	}

	room := Room{ID: "r1", Tasks: []Task{{ID: "t1", Label: "Closet"}}}
	if !reflect.DeepEqual(room, room.Clone()) {
		t.Fatalf("room clone not equal: %+v", room.Clone())
	}
}

func TestOnChangeFiresOncePerCommit(t *testing.T) {
	fired := 0
	s := newTestStore(WithOnChange(func(ProjectState) { fired++ }))
	s.AddRoom("Kitchen", "Floor 1")
	if fired != 1 {
		t.Fatalf("expected 1 callback after add, got %d", fired)
	}
	// a duplicate add changes nothing, so the callback stays quiet
	s.AddRoom("Kitchen", "Floor 1")
	if fired != 1 {
		t.Fatalf("expected no callback for no-op add, got %d", fired)
	}
}

func TestOnChangeSuppressedForEqualState(t *testing.T) {
	fired := 0
	s := newTestStore(WithOnChange(func(ProjectState) { fired++ }))
	id := addOneRoom(t, s)
	fired = 0
	s.SetFloorLabel(id, "Floor 1")
	if fired != 0 {
		t.Fatalf("setting the same floor label fired %d callbacks", fired)
	}
	s.SetFloorLabel(id, "Floor 2")
	if fired != 1 {
		t.Fatalf("changing the floor label fired %d callbacks, want 1", fired)
	}
}

func TestSetAnswerOpensAndCloses(t *testing.T) {
	s := newTestStore()
	id := addOneRoom(t, s)

	s.SetAnswer(id, SectionPackOut, boolPtr(true))
	panel := s.Panel(id)
	if !panel.Open[SectionPackOut] {
		t.Fatalf("yes answer should open the section")
	}

	s.SetAnswer(id, SectionPackOut, boolPtr(false))
	panel = s.Panel(id)
	if panel.Open[SectionPackOut] {
		t.Fatalf("no answer should close the section")
	}
	if !panel.Completed[SectionPackOut] {
		t.Fatalf("no answer should mark the section completed")
	}
}

func TestDoubleNoCollapsesCard(t *testing.T) {
	s := newTestStore()
	id := addOneRoom(t, s)
	s.SetAnswer(id, SectionCleaning, boolPtr(false))
	if s.Panel(id).Collapsed {
		t.Fatalf("one no should not collapse the card")
	}
	s.SetAnswer(id, SectionAffected, boolPtr(false))
	if !s.Panel(id).Collapsed {
		t.Fatalf("cleaning=no and affected=no should collapse the card")
	}
}

func TestToggleSeverityImpliesAffected(t *testing.T) {
	s := newTestStore()
	id := addOneRoom(t, s)
	s.ToggleSeverity(id, "Soot")
	room, _ := s.RoomByID(id)
	if room.Affected == nil || !*room.Affected {
		t.Fatalf("selecting a severity tag must mark the room affected")
	}
	if len(room.SeveritySelections) != 1 || room.SeveritySelections[0] != "Soot" {
		t.Fatalf("severity selections = %v", room.SeveritySelections)
	}
}

func TestSeverityCodeOneLevelPerGroup(t *testing.T) {
	s := newTestStore()
	id := addOneRoom(t, s)

	s.ToggleSeverityCode(id, "Fire-1")
	s.ToggleSeverityCode(id, "Water-2")
	s.ToggleSeverityCode(id, "Fire-3")
	room, _ := s.RoomByID(id)
	want := []string{"Water-2", "Fire-3"}
	if !reflect.DeepEqual(room.SeverityCodes, want) {
		t.Fatalf("severity codes = %v, want %v", room.SeverityCodes, want)
	}

	// repeating the active code clears the group entirely
	s.ToggleSeverityCode(id, "Fire-3")
	room, _ = s.RoomByID(id)
	want = []string{"Water-2"}
	if !reflect.DeepEqual(room.SeverityCodes, want) {
		t.Fatalf("after toggle-off, codes = %v, want %v", room.SeverityCodes, want)
	}
}

func TestOrderSeverityCodeDefaults(t *testing.T) {
	s := newTestStore()
	s.ToggleOrderSeverityCode("Mold-2")
	s.ToggleOrderSeverityCode("Mold-5")
	got := s.State().OrderSeverityCodes
	if !reflect.DeepEqual(got, []string{"Mold-5"}) {
		t.Fatalf("order codes = %v, want [Mold-5]", got)
	}
}

func TestRebuildPreservesSurvivingGeneratedTasks(t *testing.T) {
	s := newTestStore()
	id := addOneRoom(t, s)
	s.ToggleDetail(id, AspectPackOut, KindLocations, "Closet")
	s.ToggleDetail(id, AspectPackOut, KindItems, "Electronics")

	room, _ := s.RoomByID(id)
	if len(room.Tasks) != 2 {
		t.Fatalf("expected 2 generated tasks, got %d", len(room.Tasks))
	}
	closetID := room.Tasks[0].ID
	s.SetTaskStatus(id, closetID, StatusDone)
	s.SetTaskQuantity(id, closetID, "4")

	// unchecking an unrelated entry must not reset the closet task
	s.ToggleDetail(id, AspectPackOut, KindItems, "Electronics")
	room, _ = s.RoomByID(id)
	if len(room.Tasks) != 1 {
		t.Fatalf("expected 1 task after uncheck, got %d", len(room.Tasks))
	}
	task := room.Tasks[0]
	if task.ID != closetID || task.Status != StatusDone || task.Quantity != 4 {
		t.Fatalf("surviving task lost state: %+v", task)
	}
}

func TestFreeformTasksFollowGeneratedBlock(t *testing.T) {
	s := newTestStore()
	id := addOneRoom(t, s)
	s.AddTask(id, "Wrap piano", TaskTake)
	s.ToggleDetail(id, AspectPackOut, KindLocations, "Closet")

	room, _ := s.RoomByID(id)
	if len(room.Tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(room.Tasks))
	}
	if room.Tasks[0].Label != "Closet" || room.Tasks[0].Freeform {
		t.Fatalf("generated task should come first: %+v", room.Tasks[0])
	}
	if room.Tasks[1].Label != "Wrap piano" || !room.Tasks[1].Freeform {
		t.Fatalf("freeform task should come last: %+v", room.Tasks[1])
	}
}

func TestDeleteGeneratedTaskUnchecksDetail(t *testing.T) {
	s := newTestStore()
	id := addOneRoom(t, s)
	s.ToggleDetail(id, AspectPackOut, KindLocations, "Closet")
	room, _ := s.RoomByID(id)
	taskID := room.Tasks[0].ID

	s.DeleteTask(id, taskID)
	room, _ = s.RoomByID(id)
	if len(room.Tasks) != 0 {
		t.Fatalf("task should be gone, have %d", len(room.Tasks))
	}
	if len(room.Details.PackOut.Locations.Include) != 0 {
		t.Fatalf("detail entry should be unchecked: %v", room.Details.PackOut.Locations.Include)
	}
}

func TestQuantityClampsToOne(t *testing.T) {
	s := newTestStore()
	id := addOneRoom(t, s)
	s.AddTask(id, "Boxes", TaskTake)
	room, _ := s.RoomByID(id)
	taskID := room.Tasks[0].ID

	for _, raw := range []string{"0", "-3", "abc", ""} {
		s.SetTaskQuantity(id, taskID, raw)
		room, _ = s.RoomByID(id)
		if room.Tasks[0].Quantity != 1 {
			t.Fatalf("quantity %q clamped to %d, want 1", raw, room.Tasks[0].Quantity)
		}
	}
	s.SetTaskQuantity(id, taskID, " 7 ")
	room, _ = s.RoomByID(id)
	if room.Tasks[0].Quantity != 7 {
		t.Fatalf("quantity = %d, want 7", room.Tasks[0].Quantity)
	}
}

func TestChangeNoteForcesChangedStatus(t *testing.T) {
	s := newTestStore()
	id := addOneRoom(t, s)
	s.AddTask(id, "Boxes", TaskTake)
	room, _ := s.RoomByID(id)
	taskID := room.Tasks[0].ID

	s.SetTaskChangeNote(id, taskID, "left two behind")
	room, _ = s.RoomByID(id)
	if room.Tasks[0].Status != StatusChanged {
		t.Fatalf("status = %q, want changed", room.Tasks[0].Status)
	}
	if room.Tasks[0].ChangeNote != "left two behind" {
		t.Fatalf("note = %q", room.Tasks[0].ChangeNote)
	}
}

func TestCompletionIsSticky(t *testing.T) {
	s := newTestStore()
	id := addOneRoom(t, s)
	s.SetAnswer(id, SectionPackOut, boolPtr(false))
	if !s.Panel(id).Completed[SectionPackOut] {
		t.Fatalf("section should be completed after no")
	}
	s.ToggleSectionOpen(id, SectionPackOut)
	s.ToggleSectionOpen(id, SectionPackOut)
	if !s.Panel(id).Completed[SectionPackOut] {
		t.Fatalf("reopening must not clear completion")
	}
}

func TestSetServicesSyncsInstructionLine(t *testing.T) {
	s := newTestStore()
	s.SetEventInstructions("Call before arrival")
	s.SetServices([]string{"Pack-out", "Textiles"})
	state := s.State()
	want := "Service Offerings: Pack-out, Textiles\nCall before arrival"
	if state.EventInstructions != want {
		t.Fatalf("event instructions = %q, want %q", state.EventInstructions, want)
	}

	// clearing services removes the auto line but keeps the free text
	s.SetServices(nil)
	state = s.State()
	if state.EventInstructions != "Call before arrival" {
		t.Fatalf("after clearing services: %q", state.EventInstructions)
	}
}

func TestSetAgreementClearsNoteUnlessDisagreed(t *testing.T) {
	s := newTestStore()
	s.SetAgreement(AgreementDisagreed, "customer wants rugs on-site")
	state := s.State()
	if state.Agreement != AgreementDisagreed || state.DisagreementNote == "" {
		t.Fatalf("disagreement not recorded: %+v", state)
	}
	s.SetAgreement(AgreementAgreed, "stale")
	state = s.State()
	if state.DisagreementNote != "" {
		t.Fatalf("note should clear on agreement, got %q", state.DisagreementNote)
	}
}

func TestBasementAtticKeepFloorLabel(t *testing.T) {
	s := newTestStore()
	s.AddRoom("Attic", "Floor 1")
	id := s.Rooms()[0].ID
	s.SetFloorLabel(id, "Floor 2")
	room, _ := s.RoomByID(id)
	if room.FloorLabel != "Attic" {
		t.Fatalf("attic floor label = %q, want Attic", room.FloorLabel)
	}
}
