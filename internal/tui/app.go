// internal/tui/app.go
//
// This is the main TUI (Terminal User Interface) for Patchwork.
// It uses bubbletea, which follows The Elm Architecture:
//
// 1. Model: Your application state
// 2. Update: A function that updates state based on messages
// 3. View: A function that renders state to a string
//
// The flow is: User Input -> Message -> Update -> New Model -> View -> Screen

package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"patchwork/internal/config"
	"patchwork/internal/design"
	"patchwork/internal/logbook"
	"patchwork/internal/store"
)

// appState represents which "screen" we're on
type appState int

const (
	stateMainMenu appState = iota // Main menu with "New Block", etc.
	stateLibrary                  // Library browser
	stateEditor                   // Block or pattern editor
)

// App is the main application model. In bubbletea, this holds ALL your state.
type App struct {
	state   appState
	config  *config.Config
	library *store.Library
	drafts  *store.Drafts
	logbook *logbook.Logbook

	// UI components
	mainMenu    list.Model
	libraryMenu list.Model
	entries     []store.Entry
	editor      *editorView
	statusMsg   string

	// Window size (we get this from bubbletea)
	width  int
	height int
}

// menuItem implements list.Item interface for our menu items
type menuItem struct {
	title string
	desc  string
}

func (i menuItem) Title() string       { return i.title }
func (i menuItem) Description() string { return i.desc }
func (i menuItem) FilterValue() string { return i.title }

// libraryItem wraps a library entry for the browser list.
type libraryItem struct {
	entry store.Entry
}

func (i libraryItem) Title() string {
	title := i.entry.Name
	if i.entry.Published {
		title += " ✶"
	}
	return title
}

func (i libraryItem) Description() string {
	var extent string
	switch i.entry.Kind {
	case design.DocBlock:
		size := i.entry.Document.Block.Size
		extent = fmt.Sprintf("%dx%d block · %d shapes", size, size, len(i.entry.Document.Block.Shapes))
	case design.DocPattern:
		p := i.entry.Document.Pattern
		extent = fmt.Sprintf("%dx%d pattern · %d blocks", p.Rows, p.Cols, len(p.Placements))
	}
	return fmt.Sprintf("%s · updated %s", extent, i.entry.UpdatedAt.Local().Format("Jan 2 15:04"))
}

func (i libraryItem) FilterValue() string { return i.entry.Name }

type libraryEntriesMsg struct {
	entries []store.Entry
	err     error
}

type designSavedMsg struct {
	name string
	err  error
}

// NewApp creates a new App instance rooted at the project directory.
func NewApp(projectDir string) (*App, error) {
	cfg, err := config.NewConfig(projectDir)
	if err != nil {
		return nil, err
	}
	library, err := store.Open(cfg.LibraryPath())
	if err != nil {
		return nil, err
	}
	lb, err := logbook.New(filepath.Join(cfg.LogsDir(), "studio.log"))
	if err == nil {
		lb.Info("Session opened in %s", projectDir)
	}

	mainMenu := list.New(buildMainMenu(), list.NewDefaultDelegate(), 0, 0)
	mainMenu.Title = "⬡ PATCHWORK STUDIO"
	mainMenu.SetShowStatusBar(false)
	mainMenu.SetFilteringEnabled(false)
	libraryMenu := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	libraryMenu.Title = "Design Library"
	libraryMenu.SetShowStatusBar(false)
	libraryMenu.SetFilteringEnabled(false)

	app := &App{
		state:       stateMainMenu,
		config:      cfg,
		library:     library,
		drafts:      store.NewDrafts(cfg.DraftsDir()),
		logbook:     lb,
		mainMenu:    mainMenu,
		libraryMenu: libraryMenu,
	}
	return app, nil
}

// Close releases the library handle. Call after the program exits.
func (a *App) Close() error {
	if a.library == nil {
		return nil
	}
	return a.library.Close()
}

func buildMainMenu() []list.Item {
	return []list.Item{
		menuItem{title: "New Block", desc: "Design a quilt block on a square grid"},
		menuItem{title: "New Pattern", desc: "Arrange saved blocks into a quilt layout"},
		menuItem{title: "Browse Library", desc: "Open, publish, or delete saved designs"},
		menuItem{title: "Exit", desc: "Quit Patchwork"},
	}
}

func (a *App) logInfo(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Info(format, args...)
}

func (a *App) logWarn(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Warn(format, args...)
}

func (a *App) logError(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Error(format, args...)
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return a.fetchLibraryEntries()
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.mainMenu.SetSize(max(0, msg.Width-6), max(0, msg.Height-10))
		a.libraryMenu.SetSize(max(0, msg.Width-6), max(0, msg.Height-10))
		if a.editor != nil {
			a.editor.setSize(msg.Width, msg.Height)
		}
		return a, nil

	case libraryEntriesMsg:
		if msg.err != nil {
			a.statusMsg = fmt.Sprintf("Library unavailable: %v", msg.err)
			a.logError("library list failed: %v", msg.err)
			return a, nil
		}
		a.entries = msg.entries
		items := make([]list.Item, len(msg.entries))
		for i, entry := range msg.entries {
			items[i] = libraryItem{entry: entry}
		}
		a.libraryMenu.SetItems(items)
		return a, nil

	case designSavedMsg:
		if msg.err != nil {
			a.statusMsg = fmt.Sprintf("Save failed: %v", msg.err)
			a.logError("save failed: %v", msg.err)
			return a, nil
		}
		a.statusMsg = fmt.Sprintf("Saved %q to the library", msg.name)
		a.logInfo("saved %q to the library", msg.name)
		return a, a.fetchLibraryEntries()

	case tea.KeyMsg:
		key := msg.String()
		if key == "ctrl+c" {
			return a, tea.Quit
		}
		switch a.state {
		case stateEditor:
			if a.editor != nil {
				return a, a.editor.handleKey(msg)
			}
		case stateLibrary:
			return a.handleLibraryKey(msg)
		case stateMainMenu:
			switch key {
			case "q":
				return a, tea.Quit
			case "enter":
				return a.handleMainMenuSelection()
			}
		}
	}

	var cmd tea.Cmd
	switch a.state {
	case stateMainMenu:
		a.mainMenu, cmd = a.mainMenu.Update(msg)
	case stateLibrary:
		a.libraryMenu, cmd = a.libraryMenu.Update(msg)
	}
	return a, cmd
}

// handleMainMenuSelection processes menu item selection
func (a *App) handleMainMenuSelection() (tea.Model, tea.Cmd) {
	item, ok := a.mainMenu.SelectedItem().(menuItem)
	if !ok {
		return a, nil
	}

	switch item.title {
	case "New Block":
		a.logInfo("Menu · New Block selected")
		block := design.NewBlock("Untitled Block", a.config.BlockSize())
		a.openEditor(newBlockEditor(a, block))
		return a, nil

	case "New Pattern":
		a.logInfo("Menu · New Pattern selected")
		rows, cols := a.config.PatternLayout()
		pattern := design.NewPattern("Untitled Pattern", rows, cols)
		a.openEditor(newPatternEditor(a, pattern, a.blockEntries()))
		return a, nil

	case "Browse Library":
		a.logInfo("Menu · Browse Library selected")
		a.state = stateLibrary
		a.statusMsg = "enter=open  P=publish/unpublish  X=delete  esc=back"
		return a, a.fetchLibraryEntries()

	case "Exit":
		a.logInfo("Menu · Exit selected")
		return a, tea.Quit
	}

	return a, nil
}

func (a *App) handleLibraryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.state = stateMainMenu
		a.statusMsg = ""
		return a, nil
	case "enter":
		item, ok := a.libraryMenu.SelectedItem().(libraryItem)
		if !ok {
			return a, nil
		}
		return a, a.openEntry(item.entry)
	case "P":
		item, ok := a.libraryMenu.SelectedItem().(libraryItem)
		if !ok {
			return a, nil
		}
		var err error
		if item.entry.Published {
			err = a.library.Unpublish(item.entry.ID)
		} else {
			err = a.library.Publish(item.entry.ID)
		}
		if err != nil {
			a.statusMsg = fmt.Sprintf("Publish failed: %v", err)
			return a, nil
		}
		a.logInfo("toggled publish on %q", item.entry.Name)
		return a, a.fetchLibraryEntries()
	case "X":
		item, ok := a.libraryMenu.SelectedItem().(libraryItem)
		if !ok {
			return a, nil
		}
		if err := a.library.Delete(item.entry.ID); err != nil {
			a.statusMsg = fmt.Sprintf("Delete failed: %v", err)
			return a, nil
		}
		_ = a.drafts.Discard(item.entry.ID)
		a.statusMsg = fmt.Sprintf("Deleted %q", item.entry.Name)
		a.logInfo("deleted %q from the library", item.entry.Name)
		return a, a.fetchLibraryEntries()
	}
	var cmd tea.Cmd
	a.libraryMenu, cmd = a.libraryMenu.Update(msg)
	return a, cmd
}

// openEntry resumes a design from its draft when one exists, otherwise
// from the library copy.
func (a *App) openEntry(entry store.Entry) tea.Cmd {
	doc := entry.Document
	if draft, err := a.drafts.Load(entry.ID); err == nil {
		doc = draft
		a.statusMsg = fmt.Sprintf("Resumed draft of %q", doc.Name())
		a.logInfo("resumed draft of %q", doc.Name())
	}
	switch doc.Kind {
	case design.DocBlock:
		a.openEditor(newBlockEditor(a, doc.Block))
	case design.DocPattern:
		a.openEditor(newPatternEditor(a, doc.Pattern, a.blockEntries()))
	}
	return nil
}

func (a *App) openEditor(editor *editorView) {
	a.editor = editor
	a.state = stateEditor
	if a.width > 0 && a.height > 0 {
		a.editor.setSize(a.width, a.height)
	}
}

// closeEditor returns to the main menu, keeping the draft on disk.
func (a *App) closeEditor() {
	if a.editor != nil {
		a.logInfo("closed editor for %q", a.editor.name())
	}
	a.editor = nil
	a.state = stateMainMenu
	a.statusMsg = "Draft kept. Saved designs live in the library."
}

func (a *App) blockEntries() []store.Entry {
	var blocks []store.Entry
	for _, entry := range a.entries {
		if entry.Kind == design.DocBlock {
			blocks = append(blocks, entry)
		}
	}
	return blocks
}

func (a *App) fetchLibraryEntries() tea.Cmd {
	return func() tea.Msg {
		entries, err := a.library.List(store.ListFilter{})
		return libraryEntriesMsg{entries: entries, err: err}
	}
}

// saveDraft autosaves the working copy. Failures are logged, never fatal.
func (a *App) saveDraft(doc design.Document) {
	if err := a.drafts.Save(doc); err != nil {
		a.logWarn("draft autosave failed: %v", err)
	}
}

// View renders the current state to a string.
func (a *App) View() string {
	var content string
	switch a.state {
	case stateMainMenu:
		content = a.mainMenu.View()
	case stateLibrary:
		content = a.renderLibrary()
	case stateEditor:
		if a.editor != nil {
			content = a.editor.View()
		} else {
			content = "Loading editor..."
		}
	}
	return a.renderFrame(content)
}

func (a *App) renderLibrary() string {
	view := a.libraryMenu.View()
	if len(a.entries) == 0 {
		view = "The library is empty. Design a block first."
	}
	hint := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA")).
		MarginTop(1).
		Render("Enter → open    P → publish    X → delete    Esc → back")
	return lipgloss.JoinVertical(lipgloss.Left, view, hint)
}

func (a *App) renderFrame(content string) string {
	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#B03A48")).
		MarginBottom(1).
		Render("⬡ PATCHWORK")
	body := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Width(max(20, a.width-2)).
		Render(content)
	sections := []string{header, body}
	if logPanel := a.renderLogPanel(); logPanel != "" {
		sections = append(sections, logPanel)
	}
	footer := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		MarginTop(1).
		Render(a.statusMsg)
	sections = append(sections, footer)
	return strings.Join(sections, "\n")
}

func (a *App) renderLogPanel() string {
	if a.logbook == nil {
		return ""
	}
	lines := a.logbook.Tail(6)
	if len(lines) == 0 {
		return ""
	}
	fileName := filepath.Base(a.logbook.Path())
	if fileName == "." || fileName == "" {
		fileName = "log"
	}
	head := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#5B8DEF")).
		Render(fmt.Sprintf("LOG · %s", fileName))
	body := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA")).
		Render(strings.Join(lines, "\n"))
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Render(fmt.Sprintf("%s\n%s", head, body))
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
