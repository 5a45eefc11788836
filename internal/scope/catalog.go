// internal/scope/catalog.go
//
// Static catalogs that drive the pickers: service offerings, severity
// groups and levels, odor levels, anticipated specialty groups, task
// change reasons, and the quick-add room templates.

package scope

import (
	"fmt"
	"strconv"
	"strings"
)

// Offering is one selectable service. Only Textiles carries sub-items;
// every other offering stands in for itself when item options are built.
type Offering struct {
	Name     string
	SubItems []string
}

// Catalog bundles the static pickers for a scoping session.
type Catalog struct {
	Offerings []Offering
}

// DefaultCatalog returns the stock service catalog.
func DefaultCatalog() Catalog {
	return Catalog{
		Offerings: []Offering{
			{Name: "Pack-out"},
			{Name: "On-site Cleaning"},
			{Name: "Textiles", SubItems: []string{
				"Clothing",
				"Linens",
				"Drapery",
				"Area Rugs",
				"Soft Goods",
			}},
			{Name: "Electronics"},
			{Name: "Art & Collectibles"},
			{Name: "Documents"},
			{Name: "Storage"},
		},
	}
}

// Offering looks up an offering by name, case-insensitively.
func (c Catalog) Offering(name string) (Offering, bool) {
	for _, o := range c.Offerings {
		if strings.EqualFold(o.Name, name) {
			return o, true
		}
	}
	return Offering{}, false
}

// SeverityGroups is the fixed set of loss-severity groups.
var SeverityGroups = []string{"Fire", "Water", "Mold", "Dust", "Protein", "Oil"}

// SeverityLevels is the fixed set of levels. There is no level 4.
var SeverityLevels = []int{1, 2, 3, 5}

// OdorLevels are the allowed odor ratings; empty means unanswered.
var OdorLevels = []string{"", "0", "1", "2", "3"}

// SeverityTags are the free-text severity selections offered per room.
var SeverityTags = []string{"Heat", "Smoke", "Soot", "Water", "Mold", "Odor", "Debris"}

// AnticipatedGroups is the fixed set of specialty groups the crew should
// anticipate, in display order.
var AnticipatedGroups = []string{
	"Electronics",
	"Artwork",
	"Documents",
	"Jewelry",
	"Firearms",
	"Heirlooms",
	"Appliances",
	"Taxidermy",
}

// DetailLocations are the selectable in-room locations for pack-out and
// leave-on-site detail.
var DetailLocations = []string{
	"Closet",
	"Dresser",
	"Shelving",
	"Cabinets",
	"Drawers",
	"Under Bed",
	"Walls",
	"Floor",
}

// ChangeReasons is the fixed reason list for task changes during pack-out.
var ChangeReasons = []string{
	"Customer kept on-site",
	"Not found",
	"Beyond restoration",
	"Already removed",
	"Adjuster excluded",
	"Other",
}

// QuickAddTemplates seeds the quick-add room menu before any custom rooms
// have been remembered.
var QuickAddTemplates = []string{
	"Kitchen",
	"Living Room",
	"Dining Room",
	"Bedroom",
	"Bath",
	"Office",
	"Laundry",
	"Garage",
	"Hallway",
	"Closet",
	"Basement",
	"Attic",
}

// FloorLabels are the default floor choices offered when adding rooms.
var FloorLabels = []string{"Basement", "Floor 1", "Floor 2", "Floor 3", "Attic"}

// SeverityCodeFor formats a Group-Level code.
func SeverityCodeFor(group string, level int) string {
	return fmt.Sprintf("%s-%d", group, level)
}

// SplitSeverityCode parses a "Group-Level" code. ok is false when the code
// does not name a known group and level.
func SplitSeverityCode(code string) (group string, level int, ok bool) {
	idx := strings.LastIndex(code, "-")
	if idx <= 0 || idx == len(code)-1 {
		return "", 0, false
	}
	group = code[:idx]
	level, err := strconv.Atoi(code[idx+1:])
	if err != nil {
		return "", 0, false
	}
	knownGroup := false
	for _, g := range SeverityGroups {
		if strings.EqualFold(g, group) {
			group = g
			knownGroup = true
			break
		}
	}
	if !knownGroup {
		return "", 0, false
	}
	for _, l := range SeverityLevels {
		if l == level {
			return group, level, true
		}
	}
	return "", 0, false
}
