package main

import (
	"errors"
	"fmt"
	"image"
	"io"
	"log"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// A terminal cell covers cellWidth×cellHeight screen pixels and is drawn as
// two stacked half-block pixels, so the frame is rendered at 1/cellWidth of
// the screen resolution in both directions.
const (
	cellWidth        = 8.0
	cellHeight       = 16.0
	doubleClickDelay = 400 * time.Millisecond
)

func main() {
	config := loadConfig()
	if config.LogFile != "" {
		f, err := tea.LogToFile(config.LogFile, "inkplane")
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	m := initialModel(config)
	if len(os.Args) > 1 {
		m.openFile(os.Args[1])
	}

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}

type Mode int

const (
	ModeNormal Mode = iota
	ModeText
	ModeFileInput
	ModeProjectName
	ModeLayers
	ModeProjects
	ModeConfirm
)

type FileOperation int

const (
	FileOpSave FileOperation = iota
	FileOpOpen
	FileOpSavePNG
	FileOpInsertImage
)

type ConfirmAction int

const (
	ConfirmQuit ConfirmAction = iota
	ConfirmClearAll
	ConfirmDeleteProject
)

// imageDecodedMsg carries the result of decoding an image source off the
// update loop.
type imageDecodedMsg struct {
	id  int
	src string
	img image.Image
	err error
}

type model struct {
	width  int
	height int

	editor   *Editor
	config   *Config
	projects *Projects
	decoding map[string]bool
	failed   map[string]bool

	mode          Mode
	help          bool
	fileOp        FileOperation
	filename      string
	confirmAction ConfirmAction

	layerIndex   int
	projectList  []ProjectInfo
	projectIndex int

	lastClick    time.Time
	lastClickPos Point

	errorMessage   string
	successMessage string
}

func initialModel(config *Config) *model {
	m := &model{
		editor:   NewEditor(config, 80*cellWidth, 23*cellHeight),
		config:   config,
		decoding: make(map[string]bool),
		failed:   make(map[string]bool),
	}

	dir := config.StorageDirectory
	if dir == "" {
		dir = ".inkplane"
	}
	store, err := OpenDirStore(dir, config.StorageLimit)
	if err != nil {
		log.Printf("[storage] %v", err)
		m.errorMessage = "project storage unavailable"
	} else {
		m.projects = NewProjects(store)
	}
	return m
}

func (m *model) Init() tea.Cmd {
	return m.decodePending()
}

func decodeImageCmd(id int, src string) tea.Cmd {
	return func() tea.Msg {
		img, err := DecodeDataURL(src)
		return imageDecodedMsg{id: id, src: src, img: img, err: err}
	}
}

// decodePending starts a decode for every image source that is not decoded,
// not being decoded and has not failed before.
func (m *model) decodePending() tea.Cmd {
	var cmds []tea.Cmd
	for _, obj := range m.editor.PendingImages() {
		src := obj.Shape.(*ImageShape).Src
		if m.decoding[src] || m.failed[src] {
			continue
		}
		m.decoding[src] = true
		cmds = append(cmds, decodeImageCmd(obj.ID, src))
	}
	return tea.Batch(cmds...)
}

func (m *model) canvasRows() int {
	return max(1, m.height-1)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.editor.View().Resize(float64(m.width)*cellWidth, float64(m.canvasRows())*cellHeight)
		return m, nil

	case imageDecodedMsg:
		delete(m.decoding, msg.src)
		if msg.err != nil {
			m.failed[msg.src] = true
			log.Printf("[image] decode object %d: %v", msg.id, msg.err)
			m.errorMessage = fmt.Sprintf("could not decode image %d", msg.id)
			return m, nil
		}
		m.editor.AttachImage(msg.id, msg.src, msg.img)
		return m, nil

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, m.decodePending()

	case tea.KeyMsg:
		next, cmd := m.handleKey(msg)
		return next, tea.Batch(cmd, m.decodePending())
	}
	return m, nil
}

func (m *model) screenPoint(x, y int) Point {
	return Point{(float64(x) + 0.5) * cellWidth, (float64(y) + 0.5) * cellHeight}
}

func (m *model) handleMouse(msg tea.MouseMsg) {
	if m.mode != ModeNormal && m.mode != ModeText {
		return
	}
	if msg.Y >= m.canvasRows() {
		m.editor.PointerLeave()
		return
	}
	screen := m.screenPoint(msg.X, msg.Y)

	switch msg.Type {
	case tea.MouseLeft:
		now := time.Now()
		double := now.Sub(m.lastClick) < doubleClickDelay && m.lastClickPos == screen
		m.lastClick, m.lastClickPos = now, screen
		if double && m.mode == ModeNormal && m.editor.DoubleClick(screen) {
			m.mode = ModeText
			return
		}
		m.errorMessage, m.successMessage = "", ""
		m.editor.PointerDown(screen, ButtonLeft, msg.Shift)
	case tea.MouseMiddle:
		m.editor.PointerDown(screen, ButtonMiddle, msg.Shift)
	case tea.MouseRight:
		m.editor.PointerDown(screen, ButtonRight, msg.Shift)
	case tea.MouseMotion:
		m.editor.PointerMove(screen)
	case tea.MouseRelease:
		m.editor.PointerUp(screen)
	case tea.MouseWheelUp:
		m.editor.Wheel(screen, true)
	case tea.MouseWheelDown:
		m.editor.Wheel(screen, false)
	}

	if m.editor.Editing() != nil {
		m.mode = ModeText
	} else if m.mode == ModeText {
		m.mode = ModeNormal
	}
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if m.help {
		switch key {
		case "esc", "q", "?":
			m.help = false
		}
		return m, nil
	}

	switch m.mode {
	case ModeText:
		return m.handleTextKey(msg)
	case ModeFileInput, ModeProjectName:
		return m.handlePromptKey(msg)
	case ModeLayers:
		return m.handleLayersKey(key)
	case ModeProjects:
		return m.handleProjectsKey(key)
	case ModeConfirm:
		return m.handleConfirmKey(key)
	}
	return m.handleNormalKey(key)
}

var toolKeys = map[string]Tool{
	"s": ToolSelect,
	"h": ToolPan,
	"d": ToolDraw,
	"l": ToolLine,
	"r": ToolRect,
	"e": ToolEllipse,
	"t": ToolText,
	"c": ToolConnect,
}

func (m *model) handleNormalKey(key string) (tea.Model, tea.Cmd) {
	m.errorMessage = ""
	m.successMessage = ""
	e := m.editor

	if tool, ok := toolKeys[key]; ok {
		e.SetTool(tool)
		return m, nil
	}

	switch key {
	case "q":
		m.mode = ModeConfirm
		m.confirmAction = ConfirmQuit
	case "?":
		m.help = true
	case "i":
		e.SetTool(ToolImage)
		m.startPrompt(FileOpInsertImage, "")
	case "delete", "backspace":
		e.DeleteSelected()
	case "esc":
		e.Deselect()
	case "ctrl+z":
		if !e.Undo() {
			m.errorMessage = "nothing to undo"
		}
	case "ctrl+y":
		if !e.Redo() {
			m.errorMessage = "nothing to redo"
		}
	case "ctrl+a":
		e.SelectAll()
	case "ctrl+c":
		n, err := e.CopySelection()
		if err != nil {
			m.errorMessage = err.Error()
		} else if n > 0 {
			m.successMessage = fmt.Sprintf("Copied %d objects", n)
		}
	case "ctrl+v":
		n, err := e.Paste()
		if err != nil {
			m.errorMessage = err.Error()
		} else if n > 0 {
			m.successMessage = fmt.Sprintf("Pasted %d objects", n)
		}
	case "+", "=", "-", "_", "0":
		return m.handleZoom(key), nil
	case "left", "right", "up", "down", "shift+left", "shift+right", "shift+up", "shift+down":
		return m.handleNavigation(key)
	case "L":
		m.mode = ModeLayers
		m.layerIndex = 0
	case "P":
		m.openProjects()
	case "S":
		if m.projects == nil {
			m.errorMessage = "project storage unavailable"
			break
		}
		m.mode = ModeProjectName
		m.filename = ""
	case "ctrl+s":
		m.startPrompt(FileOpSave, DefaultExportName())
	case "o":
		m.startPrompt(FileOpOpen, "")
	case "x":
		m.startPrompt(FileOpSavePNG, strings.TrimSuffix(DefaultExportName(), ".json")+".png")
	case "C":
		if e.Canvas().Len() > 0 {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmClearAll
		}
	case "f":
		e.SetProperty(PropFillEnabled, !e.FillEnabled())
	case "[":
		e.SetProperty(PropStrokeWidth, max(1, e.Style().StrokeWidth-1))
	case "]":
		e.SetProperty(PropStrokeWidth, e.Style().StrokeWidth+1)
	case "{":
		e.SetProperty(PropFontSize, clamp(e.FontSize()-2, minFontSize, maxFontSize))
	case "}":
		e.SetProperty(PropFontSize, clamp(e.FontSize()+2, minFontSize, maxFontSize))
	}
	return m, nil
}

func (m *model) handleTextKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	edit := m.editor.Editing()
	if edit == nil {
		m.mode = ModeNormal
		return m, nil
	}
	switch msg.String() {
	case "esc":
		m.editor.CancelText()
		m.mode = ModeNormal
	case "ctrl+s":
		m.editor.CommitText()
		m.mode = ModeNormal
	case "enter":
		edit.Value += "\n"
	case "backspace":
		if runes := []rune(edit.Value); len(runes) > 0 {
			edit.Value = string(runes[:len(runes)-1])
		}
	default:
		switch msg.Type {
		case tea.KeyRunes:
			edit.Value += string(msg.Runes)
		case tea.KeySpace:
			edit.Value += " "
		}
	}
	return m, nil
}

func (m *model) startPrompt(op FileOperation, initial string) {
	m.mode = ModeFileInput
	m.fileOp = op
	m.filename = initial
	m.errorMessage = ""
}

func (m *model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		m.errorMessage = ""
		return m, nil
	case "enter":
		name := strings.TrimSpace(m.filename)
		if name == "" {
			m.errorMessage = "name is empty"
			return m, nil
		}
		if m.mode == ModeProjectName {
			m.saveProject(name)
		} else {
			m.runFileOp(name)
		}
		return m, nil
	case "backspace":
		if runes := []rune(m.filename); len(runes) > 0 {
			m.filename = string(runes[:len(runes)-1])
		}
	default:
		switch msg.Type {
		case tea.KeyRunes:
			m.filename += string(msg.Runes)
		case tea.KeySpace:
			m.filename += " "
		}
	}
	return m, nil
}

func (m *model) runFileOp(name string) {
	m.errorMessage = ""
	path := m.config.GetSavePath(name)
	var err error
	switch m.fileOp {
	case FileOpSave:
		if err = m.editor.SaveFile(path); err == nil {
			m.successMessage = "Saved to " + path
		}
	case FileOpOpen:
		m.openFile(path)
		if m.errorMessage != "" {
			return
		}
	case FileOpSavePNG:
		if err = m.editor.ExportPNG(path); err == nil {
			m.successMessage = "Exported to " + path
		}
	case FileOpInsertImage:
		err = m.insertImage(name)
		m.editor.SetTool(ToolSelect)
	}
	if err != nil {
		m.errorMessage = err.Error()
		return
	}
	m.mode = ModeNormal
}

func (m *model) openFile(path string) {
	doc, loaded, err := m.editor.LoadFile(path)
	switch {
	case err != nil:
		log.Printf("[load] %v", err)
		m.errorMessage = err.Error()
	case !loaded:
		m.errorMessage = "no objects in " + path
	default:
		m.successMessage = fmt.Sprintf("Loaded %d objects", len(doc.Objects))
		if len(doc.Skipped) > 0 {
			m.successMessage += fmt.Sprintf(" (%d unknown skipped)", len(doc.Skipped))
		}
	}
}

func (m *model) insertImage(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	obj, err := m.editor.InsertImage(data, mime.TypeByExtension(strings.ToLower(filepath.Ext(path))))
	if err != nil {
		log.Printf("[image] %s: %v", path, err)
		return err
	}
	m.successMessage = fmt.Sprintf("Inserted %s", layerName(obj))
	return nil
}

func (m *model) handleLayersKey(key string) (tea.Model, tea.Cmd) {
	layers := m.editor.Layers()
	switch key {
	case "esc", "L", "q":
		m.mode = ModeNormal
		return m, nil
	case "up", "k":
		m.layerIndex--
	case "down", "j":
		m.layerIndex++
	}
	m.layerIndex = max(0, min(m.layerIndex, len(layers)-1))
	if len(layers) == 0 {
		return m, nil
	}

	id := layers[m.layerIndex].ID
	switch key {
	case "enter":
		m.editor.FocusLayer(id)
		m.mode = ModeNormal
		if m.editor.Editing() != nil {
			m.mode = ModeText
		}
	case " ":
		m.editor.ShiftSelectLayer(id)
	case "d", "delete", "backspace":
		m.editor.DeleteObject(id)
	}
	return m, nil
}

func (m *model) openProjects() {
	if m.projects == nil {
		m.errorMessage = "project storage unavailable"
		return
	}
	list, err := m.projects.List()
	if err != nil {
		m.errorMessage = err.Error()
		return
	}
	m.projectList = list
	m.projectIndex = 0
	m.mode = ModeProjects
}

func (m *model) saveProject(name string) {
	if err := m.projects.Save(name, m.editor.Canvas().Objects()); err != nil {
		if errors.Is(err, ErrQuotaExceeded) {
			m.errorMessage = "Storage full! Delete some projects to make room."
		} else {
			m.errorMessage = err.Error()
		}
		return
	}
	m.successMessage = fmt.Sprintf("Project %q saved", name)
	m.openProjects()
}

func (m *model) handleProjectsKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "esc", "P", "q":
		m.mode = ModeNormal
		return m, nil
	case "n", "s":
		m.mode = ModeProjectName
		m.filename = ""
		return m, nil
	case "up", "k":
		m.projectIndex--
	case "down", "j":
		m.projectIndex++
	}
	m.projectIndex = max(0, min(m.projectIndex, len(m.projectList)-1))
	if len(m.projectList) == 0 {
		return m, nil
	}

	name := m.projectList[m.projectIndex].Name
	switch key {
	case "enter":
		doc, err := m.projects.Load(name)
		if err != nil {
			m.errorMessage = err.Error()
			return m, nil
		}
		if m.editor.Load(doc) {
			m.successMessage = fmt.Sprintf("Project %q loaded", name)
		}
		m.mode = ModeNormal
	case "d", "delete":
		m.mode = ModeConfirm
		m.confirmAction = ConfirmDeleteProject
	}
	return m, nil
}

func (m *model) handleConfirmKey(key string) (tea.Model, tea.Cmd) {
	if key != "y" && key != "Y" {
		if m.confirmAction == ConfirmDeleteProject {
			m.mode = ModeProjects
		} else {
			m.mode = ModeNormal
		}
		return m, nil
	}

	switch m.confirmAction {
	case ConfirmQuit:
		return m, tea.Quit
	case ConfirmClearAll:
		m.editor.ClearAll()
		m.mode = ModeNormal
	case ConfirmDeleteProject:
		name := m.projectList[m.projectIndex].Name
		if err := m.projects.Delete(name); err != nil {
			m.errorMessage = err.Error()
		}
		m.openProjects()
	}
	return m, nil
}

func (m *model) View() string {
	if m.help {
		return m.helpView()
	}
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var result strings.Builder
	switch m.mode {
	case ModeLayers:
		result.WriteString(m.layersView())
	case ModeProjects, ModeProjectName:
		result.WriteString(m.projectsView())
	default:
		result.WriteString(m.canvasView())
	}
	result.WriteString("\n")
	result.WriteString(m.statusLine())
	return result.String()
}

// canvasView renders the frame through gg and paints it with half blocks:
// the foreground colours the upper pixel, the background the lower one.
func (m *model) canvasView() string {
	rows := m.canvasRows()
	r, err := newGGRenderer(m.width, rows*2, *m.editor.View(), 1/cellWidth)
	if err != nil {
		return err.Error()
	}
	m.editor.Render(r)
	frame := r.Frame()

	var out strings.Builder
	for y := 0; y < rows; y++ {
		if y > 0 {
			out.WriteString("\n")
		}
		var run strings.Builder
		var runTop, runBottom string
		flush := func() {
			if run.Len() == 0 {
				return
			}
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(runTop)).
				Background(lipgloss.Color(runBottom))
			out.WriteString(style.Render(run.String()))
			run.Reset()
		}
		for x := 0; x < m.width; x++ {
			top := hexColor(frame.At(x, y*2))
			bottom := hexColor(frame.At(x, y*2+1))
			if top != runTop || bottom != runBottom {
				flush()
				runTop, runBottom = top, bottom
			}
			run.WriteString("▀")
		}
		flush()
	}
	return out.String()
}

func (m *model) layersView() string {
	layers := m.editor.Layers()
	rows := m.canvasRows()
	lines := []string{"Layers (top first)", strings.Repeat("─", m.width)}
	if len(layers) == 0 {
		lines = append(lines, "No objects yet")
	}

	visible := max(1, rows-len(lines))
	start := 0
	if m.layerIndex >= visible {
		start = m.layerIndex - visible + 1
	}
	for i := start; i < len(layers) && i < start+visible; i++ {
		l := layers[i]
		marker := "  "
		if i == m.layerIndex {
			marker = "> "
		}
		flags := ""
		if l.Selected {
			flags += " [selected]"
		}
		if l.Offscreen {
			flags += " [offscreen]"
		}
		line := fmt.Sprintf("%s%s %-14s %s%s", marker, l.Icon, l.Name, l.Details, flags)
		if i == m.layerIndex {
			line = lipgloss.NewStyle().Reverse(true).Render(line)
		}
		lines = append(lines, line)
	}
	return padLines(lines, rows)
}

func (m *model) projectsView() string {
	rows := m.canvasRows()
	lines := []string{"Projects (newest first)", strings.Repeat("─", m.width)}
	if len(m.projectList) == 0 {
		lines = append(lines, "No saved projects")
	}
	for i, p := range m.projectList {
		marker := "  "
		if i == m.projectIndex {
			marker = "> "
		}
		lines = append(lines, fmt.Sprintf("%s%-24s %s  %d objects",
			marker, p.Name, p.SavedAt.Format("2006-01-02 15:04"), p.Objects))
	}
	return padLines(lines, rows)
}

func padLines(lines []string, rows int) string {
	if len(lines) > rows {
		lines = lines[:rows]
	}
	for len(lines) < rows {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m *model) statusLine() string {
	e := m.editor
	switch m.mode {
	case ModeText:
		return "Mode: TEXT | Enter=newline, Ctrl+S=finish, Esc=cancel"
	case ModeFileInput:
		var opStr string
		switch m.fileOp {
		case FileOpSave:
			opStr = "Save"
		case FileOpOpen:
			opStr = "Open"
		case FileOpSavePNG:
			opStr = "Export PNG"
		case FileOpInsertImage:
			opStr = "Insert image"
		}
		if m.errorMessage != "" {
			return fmt.Sprintf("Mode: FILE | ERROR: %s | %s filename: %s█ | Enter=retry, Esc=cancel", m.errorMessage, opStr, m.filename)
		}
		return fmt.Sprintf("Mode: FILE | %s filename: %s█ | Enter=confirm, Esc=cancel", opStr, m.filename)
	case ModeProjectName:
		if m.errorMessage != "" {
			return fmt.Sprintf("Mode: PROJECT | ERROR: %s | Name: %s█ | Enter=retry, Esc=cancel", m.errorMessage, m.filename)
		}
		return fmt.Sprintf("Mode: PROJECT | Name: %s█ | Enter=save, Esc=cancel", m.filename)
	case ModeLayers:
		return "Mode: LAYERS | ↑/↓=navigate, Enter=focus, Space=add to selection, d=delete, Esc=close"
	case ModeProjects:
		status := "Mode: PROJECTS | ↑/↓=navigate, Enter=load, n=save current, d=delete, Esc=close"
		if m.errorMessage != "" {
			status += " | ERROR: " + m.errorMessage
		} else if m.successMessage != "" {
			status += " | " + m.successMessage
		}
		return status
	case ModeConfirm:
		var message string
		switch m.confirmAction {
		case ConfirmQuit:
			message = "Quit inkplane? (y/n)"
		case ConfirmClearAll:
			message = "Clear all objects? (y/n)"
		case ConfirmDeleteProject:
			message = fmt.Sprintf("Delete project %q? (y/n)", m.projectList[m.projectIndex].Name)
		}
		return "Mode: CONFIRM | " + message
	}

	status := fmt.Sprintf("Tool: %s | Zoom: %d%% | Objects: %d | Selected: %d",
		strings.ToUpper(e.Tool().String()), e.View().Percent(), e.Canvas().Len(), len(e.Selection()))
	if hint := e.CursorHint(e.pointer); strings.HasSuffix(hint, "-resize") {
		status += " | " + hint
	}
	if m.successMessage != "" {
		status += " | " + m.successMessage
	}
	if m.errorMessage != "" {
		status += " | ERROR: " + m.errorMessage
	} else if m.successMessage == "" {
		status += " | ? for help | q to quit"
	}
	return status
}

func (m *model) helpView() string {
	helpLines := []string{
		"inkplane help",
		"=============",
		"",
		"Tools:",
		"  s select   h pan   d draw   l line   r rect   e ellipse",
		"  t text     i image c connect",
		"",
		"Mouse:",
		"  Left drag       use the current tool",
		"  Shift+click     add to selection",
		"  Middle drag     pan",
		"  Wheel           zoom at pointer",
		"  Double-click    edit text",
		"",
		"Editing:",
		"  Delete/Backspace  delete selection",
		"  Ctrl+Z / Ctrl+Y   undo / redo",
		"  Ctrl+A            select all",
		"  Ctrl+C / Ctrl+V   copy / paste",
		"  C                 clear all",
		"  f                 toggle fill",
		"  [ / ]             stroke width",
		"  { / }             font size",
		"",
		"View:",
		"  arrows  pan (shift for faster)",
		"  + / -   zoom,  0 reset",
		"",
		"Files:",
		"  Ctrl+S save JSON   o open JSON   x export PNG",
		"  L layers           P projects   S save project",
		"",
		"Press ? or Esc to close",
	}
	return padLines(helpLines, max(1, m.height))
}
