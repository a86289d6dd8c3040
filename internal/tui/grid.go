package tui

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/datacursor/internal/cursor"
)

const colWidth = 16

// Grid renders a cursor's datasource as a scrollable table and translates
// key presses into cursor operations.
type Grid struct {
	screen tcell.Screen
	cur    *cursor.Cursor

	top     int // first visible row index
	col     int // selected column
	editing bool
	editBuf string
	status  string
}

// New creates a grid on a real terminal screen.
func New(c *cursor.Cursor) (*Grid, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewWithScreen(c, screen), nil
}

// NewWithScreen creates a grid on the given screen. Tests pass a tcell
// simulation screen.
func NewWithScreen(c *cursor.Cursor, screen tcell.Screen) *Grid {
	return &Grid{screen: screen, cur: c}
}

// Run initializes the screen and processes events until the user quits.
func (g *Grid) Run() error {
	if err := g.screen.Init(); err != nil {
		return err
	}
	defer g.screen.Fini()

	for {
		g.draw()
		ev := g.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			g.screen.Sync()
		case *tcell.EventKey:
			if quit := g.handleKey(ev); quit {
				return nil
			}
		}
	}
}

// handleKey dispatches one key press. It returns true when the user quits.
func (g *Grid) handleKey(ev *tcell.EventKey) bool {
	if g.editing {
		g.handleEditKey(ev)
		return false
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		return true
	case tcell.KeyUp:
		g.do(g.cur.MoveRelative(-1))
	case tcell.KeyDown:
		g.do(g.cur.MoveRelative(1))
	case tcell.KeyLeft:
		if g.col > 0 {
			g.col--
		}
	case tcell.KeyRight:
		if g.col < len(g.cur.Columns())-1 {
			g.col++
		}
	case tcell.KeyHome:
		g.do(g.cur.MoveFirst())
	case tcell.KeyEnd:
		g.do(g.cur.MoveLast())
	case tcell.KeyEnter:
		g.beginEdit()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case 'n':
			g.do(g.cur.MoveNew())
		case 's':
			g.doSave()
		case 'S':
			_, err := g.cur.Save(cursor.ForceOverwrite())
			g.do(err)
		case 'u':
			g.do(g.cur.Discard())
		case 'x':
			g.do(g.cur.DeleteCurrent())
		}
	}
	return false
}

func (g *Grid) handleEditKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		g.editing = false
		g.editBuf = ""
	case tcell.KeyEnter:
		g.commitEdit()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(g.editBuf) > 0 {
			g.editBuf = g.editBuf[:len(g.editBuf)-1]
		}
	case tcell.KeyRune:
		g.editBuf += string(ev.Rune())
	}
}

func (g *Grid) beginEdit() {
	cols := g.cur.Columns()
	if !g.cur.Position().HasRecord() || g.col >= len(cols) {
		g.status = "no record to edit"
		return
	}
	g.editing = true
	if v, ok := g.cur.CurrentValues()[cols[g.col].Name]; ok {
		g.editBuf = fmt.Sprintf("%v", v)
	} else {
		g.editBuf = ""
	}
}

func (g *Grid) commitEdit() {
	cols := g.cur.Columns()
	g.editing = false
	if g.col >= len(cols) {
		return
	}
	g.do(g.cur.SetFieldValue(cols[g.col].Name, parseValue(g.editBuf)))
	g.editBuf = ""
}

func (g *Grid) doSave() {
	_, err := g.cur.Save()
	if errors.Is(err, cursor.ErrOverwriteBlocked) {
		g.status = "save blocked: record changed underneath (S forces)"
		return
	}
	g.do(err)
}

// do records an operation's outcome on the status line.
func (g *Grid) do(err error) {
	if err != nil {
		g.status = err.Error()
	} else {
		g.status = ""
	}
}

func (g *Grid) draw() {
	g.screen.Clear()
	width, height := g.screen.Size()
	cols := g.cur.Columns()

	headStyle := tcell.StyleDefault.Bold(true).Underline(true)
	rowStyle := tcell.StyleDefault
	curStyle := tcell.StyleDefault.Reverse(true)

	for i, col := range cols {
		style := headStyle
		if i == g.col {
			style = headStyle.Foreground(tcell.ColorYellow)
		}
		drawText(g.screen, i*colWidth, 0, colWidth-1, style, col.Caption)
	}

	visible := height - 3
	if visible < 1 {
		visible = 1
	}
	g.scrollTo(visible)

	count := g.cur.RowCount()
	pos := g.cur.Position()
	for line := 0; line < visible; line++ {
		row := g.top + line
		if row >= count {
			break
		}
		style := rowStyle
		rec := g.rowValues(row)
		if i, ok := pos.Index(); ok && i == row {
			style = curStyle
		}
		for ci, col := range cols {
			cell := ""
			if v, ok := rec[col.Name]; ok {
				cell = fmt.Sprintf("%v", v)
			}
			drawText(g.screen, ci*colWidth, line+1, colWidth-1, style, cell)
		}
	}

	g.drawStatus(width, height)
	g.screen.Show()
}

// rowValues reads a display record: the cursor's working copy for the row
// under the cursor, the stored record otherwise.
func (g *Grid) rowValues(row int) map[string]any {
	if i, ok := g.cur.Position().Index(); ok && i == row {
		return g.cur.CurrentValues()
	}
	rec, err := g.cur.Datasource().Get(row)
	if err != nil {
		return nil
	}
	return rec
}

func (g *Grid) drawStatus(width, height int) {
	dirty := " "
	if g.cur.IsDirty() {
		dirty = "*"
	}
	left := fmt.Sprintf("%s%s  rows:%d", g.cur.Position(), dirty, g.cur.RowCount())
	line := left
	if g.editing {
		cols := g.cur.Columns()
		name := ""
		if g.col < len(cols) {
			name = cols[g.col].Name
		}
		line = fmt.Sprintf("%s  edit %s: %s_", left, name, g.editBuf)
	} else if g.status != "" {
		line = left + "  " + g.status
	}
	drawText(g.screen, 0, height-1, width, tcell.StyleDefault.Reverse(true), pad(line, width))
}

// scrollTo keeps the cursor row inside the visible window.
func (g *Grid) scrollTo(visible int) {
	i, ok := g.cur.Position().Index()
	if !ok {
		return
	}
	if i < g.top {
		g.top = i
	}
	if i >= g.top+visible {
		g.top = i - visible + 1
	}
}

func drawText(s tcell.Screen, x, y, max int, style tcell.Style, text string) {
	for i, r := range text {
		if i >= max {
			break
		}
		s.SetContent(x+i, y, r, nil, style)
	}
}

func pad(s string, width int) string {
	for len(s) < width {
		s += " "
	}
	return s
}

// parseValue interprets an edited cell loosely: numbers and booleans keep
// their scalar types, everything else stays a string.
func parseValue(s string) any {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}
