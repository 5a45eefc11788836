// internal/scope/derive.go
//
// Pure derivations over the current room list. Nothing here mutates.

package scope

import "strings"

// Mode is the top-level UI mode.
type Mode string

const (
	ModeScope   Mode = "scope"
	ModePackout Mode = "packout"
)

// DynamicItemOptions unions the sub-items of every selected offering.
// Offerings without sub-items contribute their own name as a single item.
// Textile filters, when present, narrow the textile sub-items to the
// filtered set.
func DynamicItemOptions(cat Catalog, services, textileFilters []string) []string {
	var out []string
	seen := map[string]bool{}
	add := func(item string) {
		if !seen[item] {
			seen[item] = true
			out = append(out, item)
		}
	}
	for _, name := range services {
		offering, ok := cat.Offering(name)
		if !ok {
			add(name)
			continue
		}
		if len(offering.SubItems) == 0 {
			add(offering.Name)
			continue
		}
		for _, sub := range offering.SubItems {
			if len(textileFilters) > 0 && !containsFold(textileFilters, sub) {
				continue
			}
			add(sub)
		}
	}
	return out
}

func containsFold(list []string, value string) bool {
	for _, v := range list {
		if strings.EqualFold(v, value) {
			return true
		}
	}
	return false
}

// VisibleRooms filters the room list for display. In pack-out mode with
// the hide-completed filter on, rooms with no tasks and rooms whose tasks
// are all done or changed drop out.
func VisibleRooms(rooms []Room, mode Mode, hideCompleted bool) []Room {
	if mode != ModePackout || !hideCompleted {
		return rooms
	}
	var out []Room
	for _, room := range rooms {
		if len(room.Tasks) == 0 {
			continue
		}
		open := false
		for _, t := range room.Tasks {
			if t.Status == StatusPending {
				open = true
				break
			}
		}
		if open {
			out = append(out, room)
		}
	}
	return out
}

// PendingTask identifies one unfinished task for the preflight report.
type PendingTask struct {
	RoomName string
	Label    string
}

// Preflight is the result of the "Done with Pack-out" check. Zero total
// tasks blocks outright; pending tasks require acknowledgment before the
// technician can proceed.
type Preflight struct {
	TotalTasks int
	Pending    []PendingTask
}

// Blocked reports whether there is nothing to finish at all.
func (p Preflight) Blocked() bool {
	return p.TotalTasks == 0
}

// Clean reports whether every task is resolved.
func (p Preflight) Clean() bool {
	return p.TotalTasks > 0 && len(p.Pending) == 0
}

// PackoutPreflight inspects every room's tasks ahead of closing out the
// pack-out.
func PackoutPreflight(rooms []Room) Preflight {
	var pf Preflight
	for _, room := range rooms {
		for _, t := range room.Tasks {
			pf.TotalTasks++
			if t.Status == StatusPending {
				pf.Pending = append(pf.Pending, PendingTask{RoomName: room.Name, Label: t.Label})
			}
		}
	}
	return pf
}
