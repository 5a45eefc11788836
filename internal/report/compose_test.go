package report

import (
	"reflect"
	"strings"
	"testing"

	"github.com/samedayscope/sds/internal/scope"
)

func TestSortFloors(t *testing.T) {
	labels := []string{"Floor 10", "Attic", "Floor 2", "Basement", "Floor 1"}
	SortFloors(labels)
	want := []string{"Basement", "Floor 1", "Floor 2", "Floor 10", "Attic"}
	if !reflect.DeepEqual(labels, want) {
		t.Fatalf("sorted = %v, want %v", labels, want)
	}
}

func TestNaturalLess(t *testing.T) {
	if !naturalLess("Floor 2", "Floor 10") {
		t.Fatalf("Floor 2 should sort before Floor 10")
	}
	if naturalLess("Floor 10", "Floor 2") {
		t.Fatalf("Floor 10 should not sort before Floor 2")
	}
	if !naturalLess("Floor 1", "Floor 1a") {
		t.Fatalf("shorter string with equal prefix sorts first")
	}
}

func TestComposeEmptyProject(t *testing.T) {
	doc := Compose(Input{})
	if len(doc.Floors) != 0 {
		t.Fatalf("empty project should have no floor sections: %+v", doc.Floors)
	}
	text := doc.Text()
	for _, want := range []string{
		"SAME DAY SCOPE\n",
		"SCHEDULE INSTRUCTIONS:\nNone\n",
		"INSTRUCTION REVIEW:\nNot Reviewed\n",
		"EVENT INSTRUCTIONS:\nNone\n",
		"SERVICE OFFERINGS:\nNone\n",
		"ANTICIPATED ITEMS:\nNone\n",
		"PACK-OUT INSTRUCTIONS:\n",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("empty report missing %q in:\n%s", want, text)
		}
	}
}

func TestComposeSkipsTasklessRooms(t *testing.T) {
	doc := Compose(Input{Rooms: []scope.Room{
		{Name: "1. Hallway", FloorLabel: "Floor 1"},
		{Name: "1. Kitchen", FloorLabel: "Floor 1", Tasks: []scope.Task{
			{Type: scope.TaskTake, Label: "Pack-out", Quantity: 1},
		}},
	}})
	if len(doc.Floors) != 1 || len(doc.Floors[0].Rooms) != 1 {
		t.Fatalf("floors = %+v", doc.Floors)
	}
	if doc.Floors[0].Rooms[0].Name != "1. Kitchen" {
		t.Fatalf("room = %q", doc.Floors[0].Rooms[0].Name)
	}
}

func TestComposeKitchenPackout(t *testing.T) {
	doc := Compose(Input{Rooms: []scope.Room{
		{Name: "1. Kitchen", FloorLabel: "Floor 1", Tasks: []scope.Task{
			{Type: scope.TaskTake, Label: "Pack-out", Quantity: 1},
		}},
	}})
	text := doc.Text()
	want := "1. Kitchen:\n  - Pack-out:\n    • Pack-out\n"
	if !strings.Contains(text, want) {
		t.Fatalf("report missing %q in:\n%s", want, text)
	}
}

func TestComposeFloorsAndRoomOrdering(t *testing.T) {
	task := []scope.Task{{Type: scope.TaskTake, Label: "Closet", Quantity: 1}}
	doc := Compose(Input{Rooms: []scope.Room{
		{Name: "0. Basement", FloorLabel: "Basement", Tasks: task},
		{Name: "2. Office", FloorLabel: "Floor 2", Tasks: task},
		{Name: "1. Kitchen", FloorLabel: "Floor 1", Tasks: task},
		{Name: "1. Bedroom", FloorLabel: "Floor 1", Tasks: task},
		{Name: "3. Attic", FloorLabel: "Attic", Tasks: task},
		{Name: "Garage", Tasks: task},
	}})

	var labels []string
	for _, f := range doc.Floors {
		labels = append(labels, f.Label)
	}
	want := []string{"Basement", "Floor - Unassigned", "Floor 1", "Floor 2", "Attic"}
	if !reflect.DeepEqual(labels, want) {
		t.Fatalf("floor order = %v, want %v", labels, want)
	}

	floor1 := doc.Floors[2]
	if floor1.Rooms[0].Name != "1. Bedroom" || floor1.Rooms[1].Name != "1. Kitchen" {
		t.Fatalf("rooms on floor 1 not alphabetical: %+v", floor1.Rooms)
	}
}

func TestTaskLineRender(t *testing.T) {
	l := TaskLine{Label: "Boxes", Quantity: 1}
	if got := l.Render(); got != "Boxes" {
		t.Fatalf("render = %q", got)
	}
	l.Quantity = 4
	if got := l.Render(); got != "Boxes (x4)" {
		t.Fatalf("render = %q", got)
	}
	l.ChangeNote = "two kept on-site"
	if got := l.Render(); got != "Boxes (x4) (changed: two kept on-site)" {
		t.Fatalf("render = %q", got)
	}
}

func TestComposeAnticipatedAndAgreement(t *testing.T) {
	doc := Compose(Input{
		Anticipated: map[string]scope.AnticipatedEntry{
			"Documents":   {Selected: true},
			"Electronics": {Selected: true, Note: "two TVs"},
			"Jewelry":     {Selected: false, Note: "ignored"},
		},
		Agreement:        scope.AgreementDisagreed,
		DisagreementNote: "rugs stay",
	})

	want := []AnticipatedLine{
		{Group: "Electronics", Note: "two TVs"},
		{Group: "Documents", Note: "No note"},
	}
	if !reflect.DeepEqual(doc.Anticipated, want) {
		t.Fatalf("anticipated = %+v, want %+v", doc.Anticipated, want)
	}
	if doc.AgreementLine != "Disagreed (rugs stay)" {
		t.Fatalf("agreement line = %q", doc.AgreementLine)
	}
}

func TestComposeDropsServiceOfferingsLine(t *testing.T) {
	doc := Compose(Input{
		EventInstructions: "Service Offerings: Pack-out\nGate code 4411",
		Services:          []string{"Pack-out"},
	})
	if !reflect.DeepEqual(doc.EventLines, []string{"Gate code 4411"}) {
		t.Fatalf("event lines = %v", doc.EventLines)
	}
	text := doc.Text()
	if !strings.Contains(text, "SERVICE OFFERINGS:\nPack-out\n") {
		t.Fatalf("services section missing:\n%s", text)
	}
}
