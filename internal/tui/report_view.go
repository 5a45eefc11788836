// internal/tui/report_view.go
//
// Report mode: a scrollable preview of the composed SDS document, backed
// by the same composer that produces the clipboard text and the print
// export, so the three renderings can never drift.

package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/samedayscope/sds/internal/report"
)

type reportView struct {
	preview viewport.Model
}

func (v *reportView) init(a *App) {
	v.preview = viewport.New(80, 20)
	v.refresh(a)
}

func (v *reportView) resize(width, height int) {
	v.preview.Width = max(40, width-6)
	v.preview.Height = max(8, height-14)
}

func (v *reportView) refresh(a *App) {
	doc := report.Compose(report.InputFromState(a.store.State()))
	v.preview.SetContent(doc.Text())
}

func (v *reportView) update(a *App, msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "c":
			a.copyReport()
			return nil
		case "p":
			a.exportReport()
			return nil
		case "R":
			v.refresh(a)
			a.statusMsg = "Preview refreshed"
			return nil
		}
	}
	var cmd tea.Cmd
	v.preview, cmd = v.preview.Update(msg)
	return cmd
}

func (v *reportView) view(a *App) string {
	return v.preview.View() + "\n" + hintStyle.Render("c → copy to clipboard    p → export print document    ↑/↓ → scroll")
}
