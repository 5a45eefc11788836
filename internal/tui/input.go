// internal/tui/input.go
//
// One shared prompt overlay backs every text entry in the app: room
// names, counts, freeform tasks, quantities, notes, and the multi-line
// instruction blocks.

package tui

import (
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type inputPrompt struct {
	title     string
	hint      string
	multiline bool
	line      textinput.Model
	area      textarea.Model
	onSubmit  func(a *App, value string)
}

// promptLine opens a single-line input overlay.
func (a *App) promptLine(title, placeholder, initial string, onSubmit func(*App, string)) {
	in := textinput.New()
	in.Placeholder = placeholder
	in.SetValue(initial)
	in.Focus()
	in.CharLimit = 200
	a.input = &inputPrompt{
		title:    title,
		hint:     "Enter → save    Esc → cancel",
		line:     in,
		onSubmit: onSubmit,
	}
}

// promptArea opens a multi-line input overlay for instruction blocks.
func (a *App) promptArea(title, initial string, onSubmit func(*App, string)) {
	area := textarea.New()
	area.SetValue(initial)
	area.SetWidth(60)
	area.SetHeight(6)
	area.Focus()
	a.input = &inputPrompt{
		title:     title,
		hint:      "Ctrl+D → save    Esc → cancel",
		multiline: true,
		area:      area,
		onSubmit:  onSubmit,
	}
}

func (a *App) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := a.input
	switch msg.String() {
	case "esc":
		a.input = nil
		a.statusMsg = "Cancelled"
		return a, nil
	case "enter":
		if !p.multiline {
			value := p.line.Value()
			a.input = nil
			p.onSubmit(a, value)
			return a, nil
		}
	case "ctrl+d":
		if p.multiline {
			value := p.area.Value()
			a.input = nil
			p.onSubmit(a, value)
			return a, nil
		}
	}
	var cmd tea.Cmd
	if p.multiline {
		p.area, cmd = p.area.Update(msg)
	} else {
		p.line, cmd = p.line.Update(msg)
	}
	return a, cmd
}

func (p *inputPrompt) view() string {
	body := p.line.View()
	if p.multiline {
		body = p.area.View()
	}
	return modalStyle.Render(titleStyle.Render(p.title) + "\n\n" + body + "\n\n" + hintStyle.Render(p.hint))
}
