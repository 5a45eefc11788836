// internal/scope/draft.go
//
// Bulk edit stages changes on a synthetic room (id "ALL") and applies
// them to many real rooms in one synchronous pass. Staging-then-apply is
// the transactional substitute for mutating many rooms directly: either
// the whole apply happens or none of it does.

package scope

// Draft is the bulk-edit staging room. Store mutation methods address it
// through the DraftRoomID, so the same pickers edit drafts and real rooms.
type Draft struct {
	Room Room
}

func newDraft() *Draft {
	return &Draft{Room: Room{ID: DraftRoomID}}
}

// Dirty reports whether the draft stages anything that Apply would use.
func (d *Draft) Dirty() bool {
	r := &d.Room
	return r.FloorLabel != "" ||
		r.Affected != nil ||
		len(r.SeveritySelections) > 0 ||
		len(r.SeverityCodes) > 0 ||
		len(r.Details.PackOut.Locations.Include) > 0 ||
		len(r.Details.PackOut.Items.Include) > 0
}

// ApplyBulk unions the draft into every selected room, then resets the
// draft. Union rules per field:
//
//   - floorLabel: overwrite, unless the room is a basement or attic
//   - affected: overwrite when staged
//   - severitySelections: union
//   - severityCodes: replace when staged (not union)
//   - packOut locations and items: union
//   - leaveOnsite lists: untouched
//
// Rooms rebuild their generated tasks afterwards. A no-op when the draft
// is clean or no rooms are selected.
func (s *Store) ApplyBulk(ids []string) {
	if !s.draft.Dirty() || len(ids) == 0 {
		return
	}
	prev := s.state.Clone()
	d := &s.draft.Room
	for _, id := range ids {
		room, ok := s.RoomByID(id)
		if !ok || room.ID == DraftRoomID {
			continue
		}
		if d.FloorLabel != "" && !IsBasementOrAttic(room.Name) {
			room.FloorLabel = d.FloorLabel
		}
		if d.Affected != nil {
			room.Affected = cloneBool(d.Affected)
		}
		room.SeveritySelections = unionStrings(room.SeveritySelections, d.SeveritySelections)
		if len(d.SeverityCodes) > 0 {
			room.SeverityCodes = cloneStrings(d.SeverityCodes)
		}
		room.Details.PackOut.Locations.Include = unionStrings(
			room.Details.PackOut.Locations.Include, d.Details.PackOut.Locations.Include)
		room.Details.PackOut.Items.Include = unionStrings(
			room.Details.PackOut.Items.Include, d.Details.PackOut.Items.Include)
		s.rebuildTasks(room)
	}
	s.ResetDraft()
	s.publish(prev)
}

// ResetDraft discards staged bulk changes.
func (s *Store) ResetDraft() {
	s.draft = newDraft()
	delete(s.panels, DraftRoomID)
}
