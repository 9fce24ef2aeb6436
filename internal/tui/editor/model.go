// Package editor provides the interactive spreadsheet TUI.
package editor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tabula-sh/tabula/internal/autofill"
	"github.com/tabula-sh/tabula/internal/sheet"
	"github.com/tabula-sh/tabula/internal/sheetfile"
)

type mode int

const (
	modeNormal mode = iota
	modeEdit
	modeSaveAs
	modeOpen
)

// clipboard holds a copied cell. Formulas remember their source
// address so references shift on paste.
type clipboard struct {
	raw  string
	from sheet.Address
	ok   bool
}

// Model is the bubbletea model for the sheet editor.
type Model struct {
	grid     *sheet.Grid
	registry *sheet.Registry
	path     string
	dirty    bool

	mode   mode
	cursor sheet.Address
	rowOff int
	colOff int

	input  textinput.Model
	prompt textinput.Model

	clip clipboard

	keys      KeyMap
	help      help.Model
	showHelp  bool
	status    string
	statusErr bool
	width     int
	height    int
}

// New creates an editor over the given grid. path may be empty for an
// unsaved sheet.
func New(grid *sheet.Grid, registry *sheet.Registry, path string) Model {
	input := textinput.New()
	input.Prompt = ""

	prompt := textinput.New()
	prompt.Prompt = "file: "

	return Model{
		grid:     grid,
		registry: registry,
		path:     path,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		input:    input,
		prompt:   prompt,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ensureVisible()
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeNormal:
			return m.updateNormal(msg)
		case modeEdit:
			return m.updateEdit(msg)
		case modeSaveAs, modeOpen:
			return m.updatePrompt(msg)
		}
	}
	return m, nil
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1, 0)
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(0, -1)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(0, 1)
	case key.Matches(msg, m.keys.Top):
		m.cursor.Row = 0
		m.ensureVisible()
	case key.Matches(msg, m.keys.Bottom):
		m.cursor.Row = m.grid.Rows() - 1
		m.ensureVisible()

	case key.Matches(msg, m.keys.Edit):
		m.input.SetValue(m.grid.Raw(m.cursor))
		m.input.CursorEnd()
		m.input.Focus()
		m.mode = modeEdit
		m.clearStatus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Clear):
		if err := m.grid.ClearCell(m.cursor); err != nil {
			m.setError(err)
		} else {
			m.dirty = true
			m.clearStatus()
		}

	case key.Matches(msg, m.keys.Copy):
		raw := m.grid.Raw(m.cursor)
		m.clip = clipboard{raw: raw, from: m.cursor, ok: raw != ""}
		if m.clip.ok {
			m.setStatus(fmt.Sprintf("copied %s", m.cursor))
		}

	case key.Matches(msg, m.keys.Paste):
		m.paste()

	case key.Matches(msg, m.keys.Fill):
		m.fillFromRun()

	case key.Matches(msg, m.keys.Resize):
		m.grid.AutoResizeColumn(m.cursor.Col)
		m.dirty = true
		m.setStatus(fmt.Sprintf("resized column %s", sheet.ColumnLabel(m.cursor.Col)))

	case key.Matches(msg, m.keys.Save):
		if m.path == "" {
			return m.openPrompt(modeSaveAs)
		}
		m.save(m.path)

	case key.Matches(msg, m.keys.SaveAs):
		return m.openPrompt(modeSaveAs)

	case key.Matches(msg, m.keys.Open):
		return m.openPrompt(modeOpen)
	}
	return m, nil
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.input.Blur()
		m.mode = modeNormal
		m.clearStatus()
		return m, nil

	case key.Matches(msg, m.keys.Accept):
		if err := m.grid.SetCell(m.cursor, m.input.Value()); err != nil {
			m.setError(err)
			return m, nil
		}
		m.grid.WidenToFit(m.cursor)
		m.dirty = true
		m.input.Blur()
		m.mode = modeNormal
		m.clearStatus()
		m.moveCursor(1, 0)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.prompt.Blur()
		m.mode = modeNormal
		m.clearStatus()
		return m, nil

	case key.Matches(msg, m.keys.Accept):
		path := strings.TrimSpace(m.prompt.Value())
		if path == "" {
			return m, nil
		}
		wasOpen := m.mode == modeOpen
		m.prompt.Blur()
		m.mode = modeNormal
		if wasOpen {
			m.open(path)
		} else {
			m.save(path)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m *Model) openPrompt(target mode) (tea.Model, tea.Cmd) {
	m.prompt.SetValue(m.path)
	m.prompt.CursorEnd()
	m.prompt.Focus()
	m.mode = target
	m.clearStatus()
	return *m, textinput.Blink
}

func (m *Model) save(path string) {
	if err := sheetfile.Save(path, m.grid); err != nil {
		m.setError(err)
		return
	}
	m.path = path
	m.dirty = false
	m.setStatus(fmt.Sprintf("saved %s", path))
}

func (m *Model) open(path string) {
	grid, err := sheetfile.Load(path, m.registry)
	if err != nil {
		m.setError(err)
		return
	}
	m.grid = grid
	m.path = path
	m.dirty = false
	m.cursor = sheet.Addr(0, 0)
	m.rowOff, m.colOff = 0, 0
	m.setStatus(fmt.Sprintf("opened %s", path))
}

// paste writes the clipboard into the cursor cell, shifting any cell
// references by the copy distance.
func (m *Model) paste() {
	if !m.clip.ok {
		return
	}
	raw := sheet.AdjustFormula(m.clip.raw,
		m.cursor.Row-m.clip.from.Row, m.cursor.Col-m.clip.from.Col)
	if err := m.grid.SetCell(m.cursor, raw); err != nil {
		m.setError(err)
		return
	}
	m.grid.WidenToFit(m.cursor)
	m.dirty = true
	m.clearStatus()
}

// fillFromRun extends the contiguous run of values directly above the
// cursor into the cursor cell. Formula cells in the run are pasted
// with shifted references instead of pattern detection.
func (m *Model) fillFromRun() {
	top := m.cursor.Row
	for top > 0 && !m.grid.IsEmpty(sheet.Addr(top-1, m.cursor.Col)) {
		top--
	}
	if top == m.cursor.Row {
		m.setStatus("nothing to fill from")
		return
	}

	above := sheet.Addr(m.cursor.Row-1, m.cursor.Col)
	if strings.HasPrefix(m.grid.Raw(above), "=") {
		raw := sheet.AdjustFormula(m.grid.Raw(above), 1, 0)
		if err := m.grid.SetCell(m.cursor, raw); err != nil {
			m.setError(err)
			return
		}
		m.dirty = true
		m.setStatus("filled formula")
		return
	}

	values := make([]string, 0, m.cursor.Row-top)
	for row := top; row < m.cursor.Row; row++ {
		values = append(values, m.grid.Raw(sheet.Addr(row, m.cursor.Col)))
	}
	p := autofill.Detect(values)
	if err := m.grid.SetCell(m.cursor, p.Generate(len(values))); err != nil {
		m.setError(err)
		return
	}
	m.grid.WidenToFit(m.cursor)
	m.dirty = true
	m.setStatus(p.Description())
}

func (m *Model) moveCursor(dRow, dCol int) {
	row := m.cursor.Row + dRow
	col := m.cursor.Col + dCol
	if row < 0 || row >= m.grid.Rows() || col < 0 || col >= m.grid.Cols() {
		return
	}
	m.cursor = sheet.Addr(row, col)
	m.ensureVisible()
}

// ensureVisible scrolls the viewport so the cursor stays on screen.
func (m *Model) ensureVisible() {
	visRows := m.visibleRows()
	if m.cursor.Row < m.rowOff {
		m.rowOff = m.cursor.Row
	} else if visRows > 0 && m.cursor.Row >= m.rowOff+visRows {
		m.rowOff = m.cursor.Row - visRows + 1
	}

	if m.cursor.Col < m.colOff {
		m.colOff = m.cursor.Col
	} else {
		for m.colOff < m.cursor.Col && !m.colVisible(m.cursor.Col) {
			m.colOff++
		}
	}
}

// visibleRows returns how many sheet rows fit under the chrome
// (formula bar, header, status bar, optional help).
func (m *Model) visibleRows() int {
	chrome := 3
	if m.showHelp {
		chrome += 3
	}
	n := m.height - chrome
	if n < 1 {
		return 1
	}
	return n
}

// colVisible reports whether col fits fully on screen at the current
// horizontal offset.
func (m *Model) colVisible(col int) bool {
	if m.width <= 0 {
		return true
	}
	x := m.rowLabelWidth()
	for c := m.colOff; c <= col; c++ {
		x += m.grid.ColumnWidth(c) + 1
		if x > m.width {
			return false
		}
	}
	return true
}

func (m *Model) rowLabelWidth() int {
	return len(fmt.Sprintf("%d", m.grid.Rows())) + 1
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(err error) {
	m.status = err.Error()
	m.statusErr = true
}

func (m *Model) clearStatus() {
	m.status = ""
	m.statusErr = false
}
