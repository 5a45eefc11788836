package scope

import (
	"fmt"
	"testing"
)

func newTestStore(opts ...Option) *Store {
	n := 0
	base := []Option{WithIDSource(func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	})}
	return NewStore(append(base, opts...)...)
}

func roomNames(s *Store) []string {
	rooms := s.Rooms()
	names := make([]string, len(rooms))
	for i, r := range rooms {
		names[i] = r.Name
	}
	return names
}

func TestRoomBaseName(t *testing.T) {
	cases := map[string]string{
		"2. Bath":      "Bath",
		"1. Bedroom 3": "Bedroom",
		"bathroom":     "Bath",
		"Guest Suite":  "Guest Suite",
		"3. Kitchen":   "Kitchen",
	}
	for in, want := range cases {
		if got := RoomBaseName(in); got != want {
			t.Fatalf("RoomBaseName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSingleAddsNumberBedrooms(t *testing.T) {
	s := newTestStore()
	s.AddRoom("Bedroom", "Floor 1")
	s.AddRoom("Bedroom", "Floor 1")
	s.AddRoom("Bedroom", "Floor 1")
	want := []string{"1. Bedroom", "1. Bedroom 2", "1. Bedroom 3"}
	got := roomNames(s)
	if len(got) != len(want) {
		t.Fatalf("got %d rooms, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("room %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestBatchAddMatchesSingleAdds(t *testing.T) {
	single := newTestStore()
	for i := 0; i < 3; i++ {
		single.AddRoom("Bedroom", "Floor 2")
	}
	batch := newTestStore()
	batch.AddRooms([]string{"Bedroom", "Bedroom", "Bedroom"}, "Floor 2")

	sNames, bNames := roomNames(single), roomNames(batch)
	if len(sNames) != len(bNames) {
		t.Fatalf("single added %d rooms, batch %d", len(sNames), len(bNames))
	}
	for i := range sNames {
		if sNames[i] != bNames[i] {
			t.Fatalf("room %d: single %q, batch %q", i, sNames[i], bNames[i])
		}
	}
}

func TestBatchSeedsCounterFromExistingRooms(t *testing.T) {
	s := newTestStore()
	s.AddRoom("Bedroom", "Floor 1")
	s.AddRooms([]string{"Bedroom", "Bedroom"}, "Floor 1")
	want := []string{"1. Bedroom", "1. Bedroom 2", "1. Bedroom 3"}
	got := roomNames(s)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("room %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDuplicateNonNumberedRoomIsNoop(t *testing.T) {
	s := newTestStore()
	s.AddRoom("Kitchen", "Floor 1")
	s.AddRoom("Kitchen", "Floor 1")
	if n := len(s.Rooms()); n != 1 {
		t.Fatalf("expected 1 room after duplicate add, got %d", n)
	}
}

func TestFloorNumbers(t *testing.T) {
	if got := FloorNumber("Basement", nil); got != 0 {
		t.Fatalf("basement floor = %d, want 0", got)
	}
	if got := FloorNumber("Floor 10", nil); got != 10 {
		t.Fatalf("Floor 10 = %d, want 10", got)
	}
	if got := FloorNumber("", nil); got != 1 {
		t.Fatalf("unlabeled floor = %d, want 1", got)
	}
	rooms := []Room{{FloorLabel: "Floor 3"}, {FloorLabel: "Floor 1"}}
	if got := FloorNumber("Attic", rooms); got != 4 {
		t.Fatalf("attic above floor 3 = %d, want 4", got)
	}
	if got := FloorNumber("Attic", nil); got != 2 {
		t.Fatalf("attic in empty project = %d, want 2", got)
	}
}

func TestBasementRoomSelfAssignsFloor(t *testing.T) {
	s := newTestStore()
	s.AddRoom("Basement", "Floor 2")
	rooms := s.Rooms()
	if len(rooms) != 1 {
		t.Fatalf("expected 1 room, got %d", len(rooms))
	}
	if rooms[0].FloorLabel != "Basement" {
		t.Fatalf("floor label = %q, want Basement", rooms[0].FloorLabel)
	}
	if rooms[0].Name != "0. Basement" {
		t.Fatalf("name = %q, want 0. Basement", rooms[0].Name)
	}
}

func TestMasterRoomListRemembersRawNames(t *testing.T) {
	s := newTestStore()
	s.AddRoom("Wine Cellar", "Floor 1")
	s.AddRoom("wine cellar", "Floor 2")
	state := s.State()
	if len(state.MasterRoomList) != 1 {
		t.Fatalf("master list = %v, want one entry", state.MasterRoomList)
	}
	if state.MasterRoomList[0] != "Wine Cellar" {
		t.Fatalf("master list entry = %q", state.MasterRoomList[0])
	}
}
