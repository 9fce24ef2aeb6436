package editor

import (
	"fmt"
	"strings"

	"github.com/tabula-sh/tabula/internal/sheet"
)

// View renders the editor.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderFormulaBar())
	b.WriteString("\n")
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	visRows := m.visibleRows()
	for i := 0; i < visRows; i++ {
		row := m.rowOff + i
		if row >= m.grid.Rows() {
			break
		}
		b.WriteString(m.renderRow(row))
		b.WriteString("\n")
	}

	b.WriteString(m.renderStatusBar())
	if m.showHelp {
		b.WriteString("\n")
		b.WriteString(m.help.View(m.keys))
	}
	return b.String()
}

func (m Model) renderFormulaBar() string {
	switch m.mode {
	case modeEdit:
		return FormulaBarStyle.Render(fmt.Sprintf("%s %s", m.cursor, m.input.View()))
	case modeSaveAs:
		return PromptStyle.Render("save as " + m.prompt.View())
	case modeOpen:
		return PromptStyle.Render("open " + m.prompt.View())
	}
	return FormulaBarStyle.Render(fmt.Sprintf("%s %s", m.cursor, m.grid.Raw(m.cursor)))
}

// lastVisibleCol returns the final column that fits fully on screen
// at the current horizontal offset.
func (m Model) lastVisibleCol() int {
	x := m.rowLabelWidth()
	last := m.colOff
	for col := m.colOff; col < m.grid.Cols(); col++ {
		x += m.grid.ColumnWidth(col) + 1
		if m.width > 0 && x > m.width {
			break
		}
		last = col
	}
	return last
}

func (m Model) renderHeader() string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", m.rowLabelWidth()))
	last := m.lastVisibleCol()
	for col := m.colOff; col <= last; col++ {
		width := m.grid.ColumnWidth(col)
		b.WriteString(HeaderStyle.Render(pad(sheet.ColumnLabel(col), width)))
		b.WriteString(" ")
	}
	return b.String()
}

func (m Model) renderRow(row int) string {
	var b strings.Builder
	label := fmt.Sprintf("%*d", m.rowLabelWidth()-1, row+1)
	b.WriteString(LabelStyle.Render(label))
	b.WriteString(" ")
	last := m.lastVisibleCol()
	for col := m.colOff; col <= last; col++ {
		width := m.grid.ColumnWidth(col)
		a := sheet.Addr(row, col)
		b.WriteString(m.renderCell(a, width))
		b.WriteString(" ")
	}
	return b.String()
}

func (m Model) renderCell(a sheet.Address, width int) string {
	cell := m.grid.Cell(a)
	text := cell.Display()
	if len(text) > width {
		text = text[:width]
	}
	if cell.Err == nil && cell.Value.Kind() == sheet.KindNumber {
		text = fmt.Sprintf("%*s", width, text)
	} else {
		text = pad(text, width)
	}

	switch {
	case a == m.cursor:
		return SelectedStyle.Render(text)
	case cell.Err != nil:
		return ErrorCellStyle.Render(text)
	}
	return CellStyle.Render(text)
}

func (m Model) renderStatusBar() string {
	name := m.path
	if name == "" {
		name = "[unsaved]"
	}
	if m.dirty {
		name += " *"
	}
	line := fmt.Sprintf("%s  %s", name, m.cursor)
	if m.status != "" {
		line += "  " + m.status
	}
	if m.statusErr {
		return StatusErrorStyle.Render(line)
	}
	return StatusBarStyle.Render(line)
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	return s + strings.Repeat(" ", width-len(s))
}
