// internal/tui/setup_view.go
//
// Setup: everything that scopes the order rather than a single room.
// Service offerings, textile filters, anticipated specialty groups,
// order-level severity defaults, the instruction blocks, and the
// customer agreement status.

package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/samedayscope/sds/internal/scope"
)

type setupView struct {
	cursor int
}

func (v *setupView) init(a *App) {}

// setupRow mirrors detailRow for the order-level form.
type setupRow struct {
	text  string
	enter func(a *App)
}

func (v *setupView) buildRows(a *App) []setupRow {
	state := a.store.State()
	var rows []setupRow

	rows = append(rows, setupRow{text: titleStyle.Render("Service Offerings")})
	for _, offering := range a.store.Catalog().Offerings {
		name := offering.Name
		on := containsString(state.Services, name)
		rows = append(rows, setupRow{
			text: "  " + checkbox(on) + " " + name,
			enter: func(a *App) {
				a.store.ToggleService(name)
			},
		})
		if strings.EqualFold(name, "Textiles") && on {
			for _, sub := range offering.SubItems {
				sub := sub
				filtered := containsString(state.TextileFilters, sub)
				rows = append(rows, setupRow{
					text: "      " + checkbox(filtered) + " filter: " + sub,
					enter: func(a *App) {
						filters := state.TextileFilters
						if filtered {
							filters = removeFromCopy(filters, sub)
						} else {
							filters = append(append([]string{}, filters...), sub)
						}
						a.store.SetTextileFilters(filters)
					},
				})
			}
		}
	}

	rows = append(rows, setupRow{text: titleStyle.Render("Order Severity Defaults")})
	for _, group := range scope.SeverityGroups {
		group := group
		rows = append(rows, setupRow{
			text: "  " + severityCodeLine(group, state.OrderSeverityCodes),
			enter: func(a *App) {
				cycleOrderSeverity(a, group)
			},
		})
	}

	rows = append(rows, setupRow{text: titleStyle.Render("Anticipated Items")})
	for _, group := range scope.AnticipatedGroups {
		group := group
		entry := state.Anticipated[group]
		text := "  " + checkbox(entry.Selected) + " " + group
		if entry.Note != "" {
			text += dimStyle.Render(" · " + entry.Note)
		}
		rows = append(rows, setupRow{
			text: text,
			enter: func(a *App) {
				if !entry.Selected {
					a.store.SetAnticipated(group, true, entry.Note)
					return
				}
				a.promptLine("Note for "+group+" (blank keeps selection, '-' deselects)", "", entry.Note, func(a *App, value string) {
					value = strings.TrimSpace(value)
					if value == "-" {
						a.store.SetAnticipated(group, false, "")
						return
					}
					a.store.SetAnticipated(group, true, value)
				})
			},
		})
	}

	rows = append(rows, setupRow{text: titleStyle.Render("Instructions")})
	rows = append(rows, setupRow{
		text: "  Schedule instructions: " + summarize(state.ScheduleInstructions),
		enter: func(a *App) {
			a.promptArea("Schedule instructions", state.ScheduleInstructions, func(a *App, value string) {
				a.store.SetScheduleInstructions(value)
			})
		},
	})
	rows = append(rows, setupRow{
		text: "  Event instructions: " + summarize(state.EventInstructions),
		enter: func(a *App) {
			a.promptArea("Event instructions", state.EventInstructions, func(a *App, value string) {
				a.store.SetEventInstructions(value)
			})
		},
	})
	rows = append(rows, setupRow{
		text: "  Instruction review: " + agreementText(state.Agreement, state.DisagreementNote),
		enter: func(a *App) {
			cycleAgreement(a, state.Agreement)
		},
	})
	return rows
}

func cycleOrderSeverity(a *App, group string) {
	codes := a.store.State().OrderSeverityCodes
	current := 0
	for _, code := range codes {
		if g, level, ok := scope.SplitSeverityCode(code); ok && g == group {
			current = level
		}
	}
	if current == scope.SeverityLevels[len(scope.SeverityLevels)-1] {
		a.store.ToggleOrderSeverityCode(scope.SeverityCodeFor(group, current))
		return
	}
	next := scope.SeverityLevels[0]
	for i, level := range scope.SeverityLevels {
		if level == current && i+1 < len(scope.SeverityLevels) {
			next = scope.SeverityLevels[i+1]
		}
	}
	a.store.ToggleOrderSeverityCode(scope.SeverityCodeFor(group, next))
}

func cycleAgreement(a *App, current scope.Agreement) {
	switch current {
	case scope.AgreementNotReviewed:
		a.store.SetAgreement(scope.AgreementAgreed, "")
	case scope.AgreementAgreed:
		a.promptLine("Disagreement note", "customer disputes scope", "", func(a *App, value string) {
			a.store.SetAgreement(scope.AgreementDisagreed, value)
		})
	default:
		a.store.SetAgreement(scope.AgreementNotReviewed, "")
	}
}

func agreementText(a scope.Agreement, note string) string {
	switch a {
	case scope.AgreementAgreed:
		return "Agreed"
	case scope.AgreementDisagreed:
		if note != "" {
			return "Disagreed · " + note
		}
		return "Disagreed"
	}
	return "Not Reviewed"
}

func summarize(text string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return dimStyle.Render("(empty)")
	}
	line := strings.SplitN(trimmed, "\n", 2)[0]
	if len(line) > 48 {
		line = line[:45] + "..."
	}
	return line
}

func (v *setupView) update(a *App, msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	rows := v.buildRows(a)
	switch key.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(rows)-1 {
			v.cursor++
		}
	case "enter", " ":
		if v.cursor < len(rows) && rows[v.cursor].enter != nil {
			rows[v.cursor].enter(a)
		}
	}
	return nil
}

func (v *setupView) view(a *App) string {
	rows := v.buildRows(a)
	if v.cursor >= len(rows) {
		v.cursor = max(0, len(rows)-1)
	}
	var b strings.Builder
	for i, row := range rows {
		if i == v.cursor {
			b.WriteString(cursorStyle.Render("→ "+row.text) + "\n")
		} else {
			b.WriteString("  " + row.text + "\n")
		}
	}
	b.WriteString("\n" + hintStyle.Render("enter → toggle/edit    Tab → switch mode"))
	return b.String()
}

func removeFromCopy(list []string, value string) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		if v != value {
			out = append(out, v)
		}
	}
	return out
}
