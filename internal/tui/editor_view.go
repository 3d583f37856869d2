// internal/tui/editor_view.go
//
// The editor view is the canvas screen for a single design: a block's
// shape grid or a pattern's block layout. Keyboard gestures feed the
// placement engine; the camera decides which cells are on screen and how
// large they render.

package tui

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"patchwork/internal/design"
	"patchwork/internal/grid"
	"patchwork/internal/placement"
	"patchwork/internal/store"
	"patchwork/internal/viewport"
)

type editorMode int

const (
	modeBlock editorMode = iota
	modePattern
)

const (
	sidebarWidth = 30
	frameRows    = 13 // header, borders, log panel, footer

	// One grid cell is two camera units wide, so a 1x zoom renders two
	// terminal columns per cell.
	cameraCellSize = 2.0
)

var (
	emptyCellStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#3A3A3A"))
	previewStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF"))
	pendingStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801")).Bold(true)
	sidebarDimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	confirmStyle    = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("#F7B801")).
			Padding(0, 2).
			Bold(true)
)

// swatch colors handed out to newly added palette roles.
var roleSwatches = []string{
	"#3B6E8F", "#C9A227", "#6B4F8A", "#4C8A5A", "#C96A2C",
	"#8A4C4C", "#2C8A8A", "#8A8A2C", "#555577", "#775555",
}

var hstGlyphs = [4]string{"◤", "◥", "◢", "◣"}

// confirmDialog gates a destructive edit behind an explicit yes.
type confirmDialog struct {
	prompt string
	accept func() string
}

type editorView struct {
	app  *App
	mode editorMode

	block   *design.Block
	pattern *design.Pattern

	engine *placement.Engine
	camera *viewport.Camera

	cursor     grid.Position
	activeRole int
	activePart int

	// Pattern editors place one of these blocks per layout cell.
	blocks      []store.Entry
	blockChoice int

	// Cells previewed by the in-flight drag, refreshed on every move.
	preview []grid.Position

	confirm *confirmDialog

	canvasW int
	canvasH int
}

func newBlockEditor(app *App, block *design.Block) *editorView {
	v := &editorView{
		app:    app,
		mode:   modeBlock,
		block:  block,
		engine: placement.NewEngine(block),
		camera: viewport.New(80, 48, cameraCellSize, block.Bounds()),
	}
	v.engine.SelectKind(design.KindSquare)
	v.engine.Hover(v.cursor)
	app.statusMsg = "1-4 pick a tool · space place · v drag-fill · f fill-to · ? in the sidebar"
	return v
}

func newPatternEditor(app *App, pattern *design.Pattern, blocks []store.Entry) *editorView {
	v := &editorView{
		app:     app,
		mode:    modePattern,
		pattern: pattern,
		blocks:  blocks,
		engine:  placement.NewEngine(pattern),
		camera:  viewport.New(80, 48, cameraCellSize, pattern.Bounds()),
	}
	// Patterns place 1x1 block references, so the square tool drives the
	// same tap/drag/fill gestures.
	v.engine.SelectKind(design.KindSquare)
	v.engine.Hover(v.cursor)
	if len(blocks) == 0 {
		app.statusMsg = "No blocks in the library yet. Save a block first."
	} else {
		app.statusMsg = "space place block · b next block · v drag-fill · f fill-to"
	}
	return v
}

func (v *editorView) name() string {
	if v.mode == modeBlock {
		return v.block.Name
	}
	return v.pattern.Name
}

func (v *editorView) bounds() grid.Bounds {
	if v.mode == modeBlock {
		return v.block.Bounds()
	}
	return v.pattern.Bounds()
}

func (v *editorView) document() design.Document {
	if v.mode == modeBlock {
		return design.BlockDocument(v.block)
	}
	return design.PatternDocument(v.pattern)
}

func (v *editorView) setSize(width, height int) {
	v.canvasW = max(10, width-sidebarWidth-8)
	v.canvasH = max(5, height-frameRows)
	// Terminal rows are about twice as tall as columns, so a row counts
	// double in camera units.
	v.camera.SetViewport(float64(v.canvasW), float64(v.canvasH*2))
}

// markEdited autosaves the draft after a mutation.
func (v *editorView) markEdited() {
	v.app.saveDraft(v.document())
}

func (v *editorView) setStatus(format string, args ...any) {
	v.app.statusMsg = fmt.Sprintf(format, args...)
}

// handleKey is the single keyboard entry point for the editor screen.
func (v *editorView) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()

	if v.confirm != nil {
		switch key {
		case "y", "Y", "enter":
			status := v.confirm.accept()
			v.confirm = nil
			v.setStatus("%s", status)
			v.markEdited()
		case "n", "N", "esc":
			v.confirm = nil
			v.setStatus("Cancelled.")
		}
		return nil
	}

	switch key {
	case "esc":
		if v.engine.DragActive() || v.engine.State() == placement.StateAwaitingSecond {
			v.engine.Cancel()
			v.preview = nil
			v.setStatus("Gesture cancelled.")
			return nil
		}
		v.app.closeEditor()
		return nil
	case "up", "k":
		v.moveCursor(-1, 0)
		return nil
	case "down", "j":
		v.moveCursor(1, 0)
		return nil
	case "left", "h":
		v.moveCursor(0, -1)
		return nil
	case "right", "l":
		v.moveCursor(0, 1)
		return nil
	case "+", "=":
		v.camera.ZoomStep(true)
		v.ensureCursorVisible()
		return nil
	case "-":
		v.camera.ZoomStep(false)
		v.ensureCursorVisible()
		return nil
	case "0":
		v.camera.Scale = 1
		v.camera.Center()
		return nil
	case " ", "enter":
		v.applyAction(v.engine.Tap(v.cursor, false))
		return nil
	case "f":
		v.applyAction(v.engine.Tap(v.cursor, true))
		return nil
	case "v":
		if v.engine.DragActive() {
			action := v.engine.EndDrag()
			v.preview = nil
			v.applyAction(action)
		} else if v.engine.BeginDrag(v.cursor) {
			v.preview = v.engine.DragTo(v.cursor)
			v.setStatus("Drag-fill armed. Move to stretch, v to fill.")
		} else {
			v.setStatus("Drag-fill needs a free cell and a 1x1 tool.")
		}
		return nil
	case "ctrl+s":
		return v.save()
	}

	if v.mode == modeBlock {
		return v.handleBlockKey(key)
	}
	return v.handlePatternKey(key)
}

func (v *editorView) handleBlockKey(key string) tea.Cmd {
	switch key {
	case "1":
		v.selectKind(design.KindSquare, "Square")
	case "2":
		v.selectKind(design.KindHST, "Half-square triangle")
	case "3", "g":
		v.selectKind(design.KindFlyingGeese, "Flying geese (tap goose cell, then sky cell)")
	case "4":
		v.selectKind(design.KindQST, "Quarter-square triangle")
	case "r":
		if v.block.Rotate(v.cursor) {
			v.markEdited()
			v.setStatus("Rotated.")
		} else {
			v.setStatus("Nothing rotates there.")
		}
	case "m":
		if v.block.Flip(v.cursor) {
			v.markEdited()
			v.setStatus("Mirrored.")
		}
	case "x", "backspace", "delete":
		if v.block.Remove(v.cursor) {
			v.markEdited()
			v.setStatus("Removed.")
		}
	case "tab":
		if shape, ok := v.block.ShapeAt(v.cursor); ok {
			v.activePart = (v.activePart + 1) % len(shape.Roles)
			v.setStatus("Coloring part %d of %d.", v.activePart+1, len(shape.Roles))
		}
	case "c":
		if err := v.block.Recolor(v.cursor, v.activePart, v.activeRoleID()); err != nil {
			v.setStatus("%v", err)
		} else {
			v.markEdited()
			v.setStatus("Recolored part %d.", v.activePart+1)
		}
	case "p":
		if n := len(v.block.Palette.Roles); n > 0 {
			v.activeRole = (v.activeRole + 1) % n
			v.activePart = 0
			v.setStatus("Active fabric: %s", v.block.Palette.Roles[v.activeRole].Name)
		}
	case "a":
		color := roleSwatches[len(v.block.Palette.Roles)%len(roleSwatches)]
		role, err := v.block.Palette.AddRole("", color)
		if err != nil {
			v.setStatus("%v", err)
		} else {
			v.activeRole = v.block.Palette.IndexOf(role.ID)
			v.markEdited()
			v.setStatus("Added fabric %s (%s).", role.Name, role.Color)
		}
	case "d":
		v.planRoleRemoval()
	case "]":
		v.resizeBlock(v.block.Size + 1)
	case "[":
		v.resizeBlock(v.block.Size - 1)
	case "u":
		if v.block.Undo() {
			v.syncAfterStructuralChange()
			v.markEdited()
			v.setStatus("Undone.")
		} else {
			v.setStatus("Nothing to undo.")
		}
	case "y", "U":
		if v.block.Redo() {
			v.syncAfterStructuralChange()
			v.markEdited()
			v.setStatus("Redone.")
		} else {
			v.setStatus("Nothing to redo.")
		}
	}
	return nil
}

func (v *editorView) handlePatternKey(key string) tea.Cmd {
	switch key {
	case "b":
		if len(v.blocks) > 0 {
			v.blockChoice = (v.blockChoice + 1) % len(v.blocks)
			v.setStatus("Placing block: %s", v.blocks[v.blockChoice].Name)
		}
	case "B":
		if len(v.blocks) > 0 {
			v.blockChoice = (v.blockChoice + len(v.blocks) - 1) % len(v.blocks)
			v.setStatus("Placing block: %s", v.blocks[v.blockChoice].Name)
		}
	case "r":
		if v.pattern.Rotate(v.cursor) {
			v.markEdited()
			v.setStatus("Rotated a quarter turn.")
		}
	case "x", "backspace", "delete":
		if v.pattern.Remove(v.cursor) {
			v.markEdited()
			v.setStatus("Removed.")
		}
	case "]":
		v.resizePattern(v.pattern.Rows+1, v.pattern.Cols)
	case "[":
		v.resizePattern(v.pattern.Rows-1, v.pattern.Cols)
	case "}":
		v.resizePattern(v.pattern.Rows, v.pattern.Cols+1)
	case "{":
		v.resizePattern(v.pattern.Rows, v.pattern.Cols-1)
	}
	return nil
}

func (v *editorView) selectKind(kind design.Kind, label string) {
	v.engine.SelectKind(kind)
	v.preview = nil
	v.setStatus("Tool: %s", label)
}

func (v *editorView) moveCursor(dr, dc int) {
	next := v.cursor.Add(dr, dc)
	if !v.bounds().Contains(next) {
		return
	}
	v.cursor = next
	v.engine.Hover(v.cursor)
	if v.engine.DragActive() {
		v.preview = v.engine.DragTo(v.cursor)
	}
	v.ensureCursorVisible()
}

// ensureCursorVisible pans the camera until the cursor cell is on screen.
func (v *editorView) ensureCursorVisible() {
	x, y := v.camera.CellOrigin(v.cursor)
	ext := v.camera.CellExtent()
	if x < 0 {
		v.camera.Pan(-x, 0)
	}
	if y < 0 {
		v.camera.Pan(0, -y)
	}
	if x+ext > v.camera.ViewportW {
		v.camera.Pan(v.camera.ViewportW-(x+ext), 0)
	}
	if y+ext > v.camera.ViewportH {
		v.camera.Pan(0, v.camera.ViewportH-(y+ext))
	}
}

// applyAction commits an engine action to the underlying design.
func (v *editorView) applyAction(action placement.Action) {
	switch action.Op {
	case placement.OpNone:
		if v.engine.State() == placement.StateAwaitingSecond {
			v.setStatus("Goose cell set. Tap an adjacent free cell for the sky.")
		}
		return
	case placement.OpPlace:
		if v.mode == modeBlock {
			if v.block.Place(design.NewShape(action.Kind, action.Cell, v.activeRoleID())) {
				v.markEdited()
				v.setStatus("Placed at %s.", action.Cell.Key())
			}
		} else if v.patternBlockID() != "" {
			if v.pattern.Place(action.Cell, v.patternBlockID()) {
				v.markEdited()
				v.setStatus("Placed %s at %s.", v.blocks[v.blockChoice].Name, action.Cell.Key())
			}
		}
	case placement.OpFill:
		if v.mode == modeBlock {
			placed := v.block.PlaceAll(action.Kind, action.Cells, v.activeRoleID())
			if len(placed) > 0 {
				v.markEdited()
			}
			v.setStatus("Filled %d cell(s).", len(placed))
		} else if v.patternBlockID() != "" {
			placed := v.pattern.PlaceAll(action.Cells, v.patternBlockID())
			if placed > 0 {
				v.markEdited()
			}
			v.setStatus("Filled %d cell(s).", placed)
		}
	case placement.OpGeese:
		gooseRole := v.activeRoleID()
		skyRole := v.block.Palette.Roles[0].ID
		shape, err := design.NewFlyingGeese(action.First, action.Second, gooseRole, skyRole)
		if err != nil {
			v.setStatus("%v", err)
			return
		}
		if v.block.Place(shape) {
			v.markEdited()
			v.setStatus("Flying geese pointing %s.", shape.Direction)
		} else {
			v.setStatus("That pair is no longer free.")
		}
	}
}

func (v *editorView) activeRoleID() string {
	roles := v.block.Palette.Roles
	if v.activeRole >= len(roles) {
		v.activeRole = 0
	}
	return roles[v.activeRole].ID
}

func (v *editorView) patternBlockID() string {
	if len(v.blocks) == 0 {
		v.setStatus("No blocks to place. Save a block first.")
		return ""
	}
	return v.blocks[v.blockChoice].ID
}

func (v *editorView) planRoleRemoval() {
	roles := v.block.Palette.Roles
	if v.activeRole >= len(roles) {
		return
	}
	plan, err := v.block.PlanRoleRemoval(roles[v.activeRole].ID, "")
	if err != nil {
		v.setStatus("%v", err)
		return
	}
	if plan.AffectedShapes == 0 {
		v.block.ApplyRoleRemoval(plan)
		v.syncAfterStructuralChange()
		v.markEdited()
		v.setStatus("Removed fabric %s.", plan.Remove.Name)
		return
	}
	v.confirm = &confirmDialog{
		prompt: fmt.Sprintf(
			"Delete fabric %q?\n%d shape(s) will switch to %q.\n\ny = delete   n = keep",
			plan.Remove.Name, plan.AffectedShapes, plan.Fallback.Name,
		),
		accept: func() string {
			v.block.ApplyRoleRemoval(plan)
			v.syncAfterStructuralChange()
			return fmt.Sprintf("Removed fabric %s; %d shape(s) reassigned.", plan.Remove.Name, plan.AffectedShapes)
		},
	}
}

func (v *editorView) resizeBlock(size int) {
	if size == v.block.Size || size < design.MinSize || size > design.MaxSize {
		v.setStatus("Grid stays between %dx%d and %dx%d.", design.MinSize, design.MinSize, design.MaxSize, design.MaxSize)
		return
	}
	plan := v.block.PlanResize(size)
	if len(plan.Orphans) == 0 {
		v.block.ApplyResize(plan)
		v.syncAfterStructuralChange()
		v.markEdited()
		v.setStatus("Grid is now %dx%d.", plan.Size, plan.Size)
		return
	}
	v.confirm = &confirmDialog{
		prompt: fmt.Sprintf(
			"Shrink to %dx%d?\n%d shape(s) fall outside the new grid and will be removed.\n\ny = shrink   n = keep",
			plan.Size, plan.Size, len(plan.Orphans),
		),
		accept: func() string {
			v.block.ApplyResize(plan)
			v.syncAfterStructuralChange()
			return fmt.Sprintf("Shrunk to %dx%d; removed %d shape(s).", plan.Size, plan.Size, len(plan.Orphans))
		},
	}
}

func (v *editorView) resizePattern(rows, cols int) {
	if rows < design.MinLayout || rows > design.MaxLayout || cols < design.MinLayout || cols > design.MaxLayout {
		v.setStatus("Layout stays between %d and %d per side.", design.MinLayout, design.MaxLayout)
		return
	}
	plan := v.pattern.PlanResize(rows, cols)
	if len(plan.Orphans) == 0 {
		v.pattern.ApplyResize(plan)
		v.syncAfterStructuralChange()
		v.markEdited()
		v.setStatus("Layout is now %dx%d.", plan.Rows, plan.Cols)
		return
	}
	v.confirm = &confirmDialog{
		prompt: fmt.Sprintf(
			"Shrink layout to %dx%d?\n%d block placement(s) will be removed.\n\ny = shrink   n = keep",
			plan.Rows, plan.Cols, len(plan.Orphans),
		),
		accept: func() string {
			v.pattern.ApplyResize(plan)
			v.syncAfterStructuralChange()
			return fmt.Sprintf("Layout shrunk to %dx%d.", plan.Rows, plan.Cols)
		},
	}
}

// syncAfterStructuralChange re-clamps the cursor and camera after the grid
// extent or occupancy changed underneath them.
func (v *editorView) syncAfterStructuralChange() {
	bounds := v.bounds()
	if v.cursor.Row >= bounds.Rows {
		v.cursor.Row = bounds.Rows - 1
	}
	if v.cursor.Col >= bounds.Cols {
		v.cursor.Col = bounds.Cols - 1
	}
	v.camera.SetBounds(bounds)
	v.engine.Cancel()
	v.engine.Hover(v.cursor)
	v.preview = nil
}

func (v *editorView) save() tea.Cmd {
	doc := v.document()
	library := v.app.library
	name := doc.Name()
	return func() tea.Msg {
		return designSavedMsg{name: name, err: library.Save(doc)}
	}
}

// View renders the canvas next to the sidebar, with any confirmation
// dialog stacked below.
func (v *editorView) View() string {
	canvas := v.renderCanvas()
	sidebar := v.renderSidebar()
	body := lipgloss.JoinHorizontal(lipgloss.Top, canvas, "  ", sidebar)
	if v.confirm != nil {
		return lipgloss.JoinVertical(lipgloss.Left, body, confirmStyle.Render(v.confirm.prompt))
	}
	return body
}

func (v *editorView) renderCanvas() string {
	bounds := v.bounds()
	cellW := v.glyphWidth()
	cellH := max(1, cellW/2)

	ext := v.camera.CellExtent()
	startCol := max(0, int(math.Floor(-v.camera.OffsetX/ext)))
	startRow := max(0, int(math.Floor(-v.camera.OffsetY/ext)))
	visCols := max(1, v.canvasW/cellW)
	visRows := max(1, v.canvasH/cellH)

	previewSet := make(map[string]struct{}, len(v.preview))
	for _, cell := range v.preview {
		previewSet[cell.Key()] = struct{}{}
	}
	secondSet := map[string]struct{}{}
	for _, cell := range v.engine.ValidSeconds() {
		secondSet[cell.Key()] = struct{}{}
	}

	var rows []string
	for r := startRow; r < bounds.Rows && r < startRow+visRows; r++ {
		line := make([]string, 0, bounds.Cols)
		for c := startCol; c < bounds.Cols && c < startCol+visCols; c++ {
			p := grid.Position{Row: r, Col: c}
			line = append(line, v.renderCell(p, cellW, previewSet, secondSet))
		}
		row := strings.Join(line, "")
		for i := 0; i < cellH; i++ {
			rows = append(rows, row)
		}
	}
	title := sidebarDimStyle.Render(fmt.Sprintf("%s · %dx%d · zoom %.0f%%",
		v.name(), bounds.Rows, bounds.Cols, v.camera.Scale*100))
	return lipgloss.JoinVertical(lipgloss.Left, title, strings.Join(rows, "\n"))
}

// glyphWidth maps the camera's cell extent to whole terminal columns.
func (v *editorView) glyphWidth() int {
	w := int(math.Round(v.camera.CellExtent()))
	if w < 1 {
		w = 1
	}
	if w > 6 {
		w = 6
	}
	return w
}

func (v *editorView) renderCell(p grid.Position, width int, preview, seconds map[string]struct{}) string {
	glyph, style := v.cellGlyph(p, preview, seconds)
	cell := strings.Repeat(glyph, width)
	if p == v.cursor {
		style = style.Reverse(true)
	}
	return style.Render(cell)
}

func (v *editorView) cellGlyph(p grid.Position, preview, seconds map[string]struct{}) (string, lipgloss.Style) {
	if _, ok := preview[p.Key()]; ok {
		return "▒", previewStyle
	}
	if first, pending := v.engine.PendingFirst(); pending {
		if p == first {
			return "◎", pendingStyle
		}
		if _, ok := seconds[p.Key()]; ok {
			return "○", pendingStyle
		}
	}
	if v.mode == modePattern {
		return v.patternCellGlyph(p)
	}
	shape, ok := v.block.ShapeAt(p)
	if !ok {
		return "·", emptyCellStyle
	}
	style := v.roleStyle(shape.Roles[0])
	switch shape.Kind {
	case design.KindHST:
		return hstGlyphs[shape.Orientation%4], style
	case design.KindQST:
		return "◆", style
	case design.KindFlyingGeese:
		switch shape.Direction {
		case design.DirUp:
			return "▲", style
		case design.DirDown:
			return "▼", style
		case design.DirLeft:
			return "◀", style
		default:
			return "▶", style
		}
	default:
		return "█", style
	}
}

func (v *editorView) patternCellGlyph(p grid.Position) (string, lipgloss.Style) {
	ref, ok := v.pattern.RefAt(p)
	if !ok {
		return "·", emptyCellStyle
	}
	label := "?"
	for i, entry := range v.blocks {
		if entry.ID == ref.BlockID {
			label = string(rune('A' + i%26))
			break
		}
	}
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF")).Bold(true)
	if ref.Turns != 0 {
		style = style.Underline(true)
	}
	return label, style
}

func (v *editorView) roleStyle(roleID string) lipgloss.Style {
	if role, ok := v.block.Palette.Role(roleID); ok {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(role.Color))
	}
	return emptyCellStyle
}

func (v *editorView) renderSidebar() string {
	if v.mode == modeBlock {
		return v.renderBlockSidebar()
	}
	return v.renderPatternSidebar()
}

func (v *editorView) renderBlockSidebar() string {
	lines := []string{
		lipgloss.NewStyle().Bold(true).Render(v.block.Name),
		fmt.Sprintf("Tool: %s", toolLabel(v.engine.Kind())),
		"",
		"Fabrics:",
	}
	for i, role := range v.block.Palette.Roles {
		marker := "  "
		if i == v.activeRole {
			marker = "▸ "
		}
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(role.Color)).Render("■")
		lines = append(lines, fmt.Sprintf("%s%s %s", marker, swatch, role.Name))
	}
	lines = append(lines, "")
	if first, pending := v.engine.PendingFirst(); pending {
		lines = append(lines, pendingStyle.Render(fmt.Sprintf("Goose at %s — pick the sky", first.Key())))
	}
	if v.engine.DragActive() {
		lines = append(lines, previewStyle.Render(fmt.Sprintf("Drag-fill: %d cell(s)", len(v.preview))))
	}
	history := "undo -"
	if v.block.CanUndo() {
		history = "undo ✓"
	}
	if v.block.CanRedo() {
		history += " · redo ✓"
	}
	lines = append(lines, sidebarDimStyle.Render(history), "",
		sidebarDimStyle.Render(strings.Join([]string{
			"1-4 tool   space place",
			"f fill-to  v drag-fill",
			"r rotate   m mirror",
			"x remove   u/y undo/redo",
			"p fabric   c color  tab part",
			"a add fabric  d delete fabric",
			"[ ] resize  +/- zoom",
			"ctrl+s save  esc back",
		}, "\n")))
	return lipgloss.NewStyle().Width(sidebarWidth).Render(strings.Join(lines, "\n"))
}

func (v *editorView) renderPatternSidebar() string {
	lines := []string{
		lipgloss.NewStyle().Bold(true).Render(v.pattern.Name),
		fmt.Sprintf("Layout: %dx%d", v.pattern.Rows, v.pattern.Cols),
		"",
		"Blocks:",
	}
	if len(v.blocks) == 0 {
		lines = append(lines, sidebarDimStyle.Render("  none saved yet"))
	}
	for i, entry := range v.blocks {
		marker := "  "
		if i == v.blockChoice {
			marker = "▸ "
		}
		lines = append(lines, fmt.Sprintf("%s%c %s", marker, rune('A'+i%26), entry.Name))
	}
	if v.engine.DragActive() {
		lines = append(lines, "", previewStyle.Render(fmt.Sprintf("Drag-fill: %d cell(s)", len(v.preview))))
	}
	lines = append(lines, "",
		sidebarDimStyle.Render(strings.Join([]string{
			"space place  b next block",
			"f fill-to    v drag-fill",
			"r rotate     x remove",
			"[ ] rows     { } cols",
			"+/- zoom     ctrl+s save",
			"esc back",
		}, "\n")))
	return lipgloss.NewStyle().Width(sidebarWidth).Render(strings.Join(lines, "\n"))
}

func toolLabel(kind design.Kind) string {
	switch kind {
	case design.KindSquare:
		return "square"
	case design.KindHST:
		return "half-square triangle"
	case design.KindFlyingGeese:
		return "flying geese"
	case design.KindQST:
		return "quarter-square triangle"
	}
	return "none"
}
