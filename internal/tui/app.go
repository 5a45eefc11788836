// internal/tui/app.go
//
// This is the main TUI for sds. It uses bubbletea, which follows The Elm
// Architecture: the App model holds ALL state, Update folds messages into
// it, View renders it to a string.
//
// The flow is: Key press -> Update -> Store mutation -> new snapshot ->
// View re-renders from the snapshot.

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/samedayscope/sds/internal/config"
	"github.com/samedayscope/sds/internal/logbook"
	"github.com/samedayscope/sds/internal/project"
	"github.com/samedayscope/sds/internal/report"
	"github.com/samedayscope/sds/internal/scope"
)

// appState represents which "screen" we're on.
type appState int

const (
	stateScope      appState = iota // room list, scope mode
	stateRoomDetail                 // one room's card
	stateQuickAdd                   // quick-add room menu
	statePackout                    // pack-out execution
	stateSetup                      // services, anticipated, instructions
	stateReport                     // SDS preview
)

var screenOrder = []appState{stateScope, statePackout, stateSetup, stateReport}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	doneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50"))
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801"))
	cursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true)
	boxStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("#F7B801")).
			Padding(1, 2)
)

// confirmAction is a pending destructive action awaiting y/n.
type confirmAction struct {
	prompt string
	accept func(a *App)
}

// App is the main application model. In bubbletea, this holds ALL state.
type App struct {
	cfg       *config.Config
	store     *scope.Store
	prefs     config.UserPreferencesStore
	logbook   *logbook.Logbook
	snapshots *project.Store

	state appState

	// Screen sub-models
	scopeView   scopeView
	packoutView packoutView
	setupView   setupView
	reportView  reportView

	// Modal overlays
	confirm   *confirmAction
	input     *inputPrompt
	preflight *preflightModal
	showTour  bool

	statusMsg string
	dirty     bool

	writeClipboard func(string) error
	now            func() time.Time

	width  int
	height int
}

// AppOption customizes App construction for tests.
type AppOption func(*App)

// WithPreferences injects an alternate preferences store.
func WithPreferences(prefs config.UserPreferencesStore) AppOption {
	return func(a *App) {
		if prefs != nil {
			a.prefs = prefs
		}
	}
}

// WithClipboardWriter overrides the system clipboard write for tests.
func WithClipboardWriter(fn func(string) error) AppOption {
	return func(a *App) {
		if fn != nil {
			a.writeClipboard = fn
		}
	}
}

// NewApp creates the App, loading config, preferences, and the saved
// project snapshot from the project directory.
func NewApp(projectDir string, opts ...AppOption) (*App, error) {
	cfg, err := config.NewConfig(projectDir)
	if err != nil {
		return nil, err
	}
	prefs, err := config.NewFilePrefs(cfg.PrefsPath())
	if err != nil {
		return nil, err
	}
	lb, err := logbook.New(cfg.LogsDir() + "/journey.log")
	if err != nil {
		return nil, err
	}
	snapshots := project.NewStore(cfg.SnapshotPath())
	snap, err := snapshots.Load()
	if err != nil {
		lb.Warn("Snapshot unreadable, starting fresh: %v", err)
		snap = project.Snapshot{Version: project.SnapshotVersion}
	}

	app := &App{
		cfg:            cfg,
		prefs:          prefs,
		logbook:        lb,
		snapshots:      snapshots,
		state:          stateScope,
		writeClipboard: clipboard.WriteAll,
		now:            time.Now,
	}
	app.store = scope.NewStore(
		scope.WithState(snap.State),
		scope.WithPanels(snap.Panels),
		scope.WithOnChange(func(scope.ProjectState) {
			app.dirty = true
		}),
	)
	for _, opt := range opts {
		if opt != nil {
			opt(app)
		}
	}
	if _, seen := app.prefs.Get(config.TourSeenKey); !seen {
		app.showTour = true
	}
	app.scopeView.init(app)
	app.packoutView.init(app)
	app.setupView.init(app)
	app.reportView.init(app)
	lb.Info("Session opened · %d room(s)", len(app.store.Rooms()))
	return app, nil
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return nil
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.scopeView.resize(msg.Width, msg.Height)
		a.reportView.resize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}
	return a.routeUpdate(msg)
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		a.save()
		return a, tea.Quit
	}

	// Overlays swallow keys until dismissed.
	if a.showTour {
		a.showTour = false
		if err := a.prefs.Set(config.TourSeenKey, "1"); err != nil {
			a.logbook.Warn("Could not persist tour flag: %v", err)
		}
		return a, nil
	}
	if a.confirm != nil {
		switch key {
		case "y", "Y", "enter":
			action := a.confirm
			a.confirm = nil
			action.accept(a)
		case "n", "N", "esc":
			a.confirm = nil
			a.statusMsg = "Cancelled"
		}
		return a, nil
	}
	if a.preflight != nil {
		return a.preflight.handleKey(a, key)
	}
	if a.input != nil {
		return a.handleInputKey(msg)
	}

	switch key {
	case "q":
		if a.state == stateScope && !a.scopeView.bulkMode {
			a.save()
			return a, tea.Quit
		}
	case "tab":
		a.cycleScreen(1)
		return a, nil
	case "shift+tab":
		a.cycleScreen(-1)
		return a, nil
	}

	return a.routeUpdate(msg)
}

func (a *App) routeUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.state {
	case stateScope, stateQuickAdd:
		cmd = a.scopeView.update(a, msg)
	case stateRoomDetail:
		cmd = a.scopeView.updateDetail(a, msg)
	case statePackout:
		cmd = a.packoutView.update(a, msg)
	case stateSetup:
		cmd = a.setupView.update(a, msg)
	case stateReport:
		cmd = a.reportView.update(a, msg)
	}
	if a.dirty {
		a.save()
	}
	return a, cmd
}

func (a *App) cycleScreen(delta int) {
	idx := 0
	current := a.state
	if current == stateRoomDetail || current == stateQuickAdd {
		current = stateScope
	}
	for i, s := range screenOrder {
		if s == current {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(screenOrder)) % len(screenOrder)
	a.setState(screenOrder[idx])
}

func (a *App) setState(next appState) {
	a.state = next
	a.statusMsg = ""
	switch next {
	case stateScope:
		a.scopeView.refreshRooms(a)
	case statePackout:
		a.packoutView.refresh(a)
	case stateReport:
		a.reportView.refresh(a)
	}
}

func (a *App) save() {
	a.dirty = false
	if err := a.snapshots.Save(a.store.State(), a.store.Panels()); err != nil {
		a.logbook.Error("Autosave failed: %v", err)
		a.statusMsg = "Autosave failed; see journey log"
	}
}

// requestConfirm arms the confirmation modal for a destructive action.
func (a *App) requestConfirm(prompt string, accept func(*App)) {
	a.confirm = &confirmAction{prompt: prompt, accept: accept}
}

// copyReport writes the composed report to the system clipboard.
func (a *App) copyReport() {
	doc := report.Compose(report.InputFromState(a.store.State()))
	if err := a.writeClipboard(doc.Text()); err != nil {
		a.statusMsg = "Clipboard unavailable"
		a.logbook.Warn("Clipboard write failed: %v", err)
		return
	}
	a.statusMsg = "Report copied to clipboard"
	a.logbook.Info("Report copied to clipboard")
}

// exportReport writes the print HTML document and reports its path.
func (a *App) exportReport() {
	doc := report.Compose(report.InputFromState(a.store.State()))
	branding := report.Branding{
		Company:   a.cfg.Project.Branding.Company,
		Tagline:   a.cfg.Project.Branding.Tagline,
		LogoPaths: a.cfg.Project.Branding.LogoPaths,
	}
	path, err := report.WritePrintDocument(doc, branding, a.cfg.ReportsDir(), a.now())
	if err != nil {
		a.statusMsg = "Export failed; see journey log"
		a.logbook.Error("Print export failed: %v", err)
		return
	}
	a.statusMsg = "Print document written: " + path
	a.logbook.Info("Print document written to %s", path)
}

// View renders the current state to a string.
func (a *App) View() string {
	width := a.width
	if width <= 0 {
		width = 100
	}

	var content string
	switch a.state {
	case stateScope:
		content = a.scopeView.viewRooms(a)
	case stateRoomDetail:
		content = a.scopeView.viewDetail(a)
	case stateQuickAdd:
		content = a.scopeView.viewQuickAdd(a)
	case statePackout:
		content = a.packoutView.view(a)
	case stateSetup:
		content = a.setupView.view(a)
	case stateReport:
		content = a.reportView.view(a)
	}

	sections := []string{
		headerStyle.Render("⬡ SAME DAY SCOPE"),
		a.renderModeTabs(),
		boxStyle.Width(max(40, width-2)).Render(content),
	}
	if logPanel := a.renderLogPanel(); logPanel != "" {
		sections = append(sections, logPanel)
	}
	sections = append(sections, dimStyle.MarginTop(1).Render(a.statusMsg))

	base := strings.Join(sections, "\n")
	if overlay := a.renderOverlay(); overlay != "" {
		return base + "\n" + overlay
	}
	return base
}

func (a *App) renderModeTabs() string {
	labels := map[appState]string{
		stateScope:   "Scope",
		statePackout: "Pack-out",
		stateSetup:   "Setup",
		stateReport:  "Report",
	}
	current := a.state
	if current == stateRoomDetail || current == stateQuickAdd {
		current = stateScope
	}
	var parts []string
	for _, s := range screenOrder {
		label := labels[s]
		if s == current {
			parts = append(parts, selectedStyle.Render("["+label+"]"))
		} else {
			parts = append(parts, dimStyle.Render(" "+label+" "))
		}
	}
	return strings.Join(parts, " ") + hintStyle.Render("   Tab → switch mode")
}

func (a *App) renderLogPanel() string {
	lines := a.logbook.Tail(4)
	if len(lines) == 0 {
		return ""
	}
	head := titleStyle.Render("LOG · journey.log")
	body := dimStyle.Render(strings.Join(lines, "\n"))
	return boxStyle.Render(head + "\n" + body)
}

func (a *App) renderOverlay() string {
	switch {
	case a.showTour:
		return modalStyle.Render(strings.Join([]string{
			titleStyle.Render("Welcome to Same Day Scope"),
			"",
			"Scope mode: walk the property and answer each room's questions.",
			"Pack-out mode: execute and track the pack-out work.",
			"Setup: services, anticipated items, and instructions.",
			"Report: preview, copy, and print the SDS document.",
			"",
			hintStyle.Render("Press any key to begin"),
		}, "\n"))
	case a.confirm != nil:
		return modalStyle.Render(a.confirm.prompt + "\n\n" + hintStyle.Render("y → confirm    n → cancel"))
	case a.preflight != nil:
		return a.preflight.view()
	case a.input != nil:
		return a.input.view()
	}
	return ""
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
