package tui

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/datacursor/internal/cursor"
	"github.com/dshills/datacursor/internal/datasource"
)

func testGrid(t *testing.T) (*Grid, *cursor.Cursor) {
	t.Helper()
	ds := datasource.NewMemory(
		datasource.Columns{{Name: "id", Caption: "ID"}, {Name: "name", Caption: "Name"}},
		[]datasource.Record{
			{"id": 1, "name": "John"},
			{"id": 2, "name": "James"},
		},
	)
	c := cursor.New(ds)
	t.Cleanup(c.Close)

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init failed: %v", err)
	}
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)

	return NewWithScreen(c, screen), c
}

func keyEvent(key tcell.Key, r rune) *tcell.EventKey {
	return tcell.NewEventKey(key, r, tcell.ModNone)
}

func TestGridDrawsHeader(t *testing.T) {
	g, _ := testGrid(t)
	g.draw()

	sim := g.screen.(tcell.SimulationScreen)
	cells, width, _ := sim.GetContents()

	header := ""
	for i := 0; i < width; i++ {
		header += string(cells[i].Runes)
	}
	if got := header[:2]; got != "ID" {
		t.Errorf("first header cell = %q, want ID", got)
	}
}

func TestGridArrowNavigation(t *testing.T) {
	g, c := testGrid(t)

	g.handleKey(keyEvent(tcell.KeyDown, 0))
	if i, ok := c.Position().Index(); !ok || i != 0 {
		t.Fatalf("position = %s, want Index(0)", c.Position())
	}

	g.handleKey(keyEvent(tcell.KeyDown, 0))
	g.handleKey(keyEvent(tcell.KeyUp, 0))
	if i, ok := c.Position().Index(); !ok || i != 0 {
		t.Errorf("position = %s, want Index(0)", c.Position())
	}
}

func TestGridIllegalMoveLandsOnStatus(t *testing.T) {
	g, _ := testGrid(t)

	// Up from BOF is illegal; the error must surface, not propagate.
	g.handleKey(keyEvent(tcell.KeyUp, 0))
	if g.status == "" {
		t.Error("expected an error on the status line")
	}
}

func TestGridEditCommit(t *testing.T) {
	g, c := testGrid(t)
	g.handleKey(keyEvent(tcell.KeyDown, 0))
	g.handleKey(keyEvent(tcell.KeyRight, 0)) // select name column

	g.handleKey(keyEvent(tcell.KeyEnter, 0))
	if !g.editing {
		t.Fatal("Enter should start editing")
	}
	for range "John" {
		g.handleKey(keyEvent(tcell.KeyBackspace2, 0))
	}
	for _, r := range "Johnny" {
		g.handleKey(keyEvent(tcell.KeyRune, r))
	}
	g.handleKey(keyEvent(tcell.KeyEnter, 0))

	if g.editing {
		t.Error("Enter should commit the edit")
	}
	if got := c.CurrentValues()["name"]; got != "Johnny" {
		t.Errorf("name = %v, want Johnny", got)
	}
	if !c.IsDirty() {
		t.Error("cursor should be dirty after the edit")
	}
}

func TestGridEditEscapeCancels(t *testing.T) {
	g, c := testGrid(t)
	g.handleKey(keyEvent(tcell.KeyDown, 0))

	g.handleKey(keyEvent(tcell.KeyEnter, 0))
	g.handleKey(keyEvent(tcell.KeyRune, 'x'))
	g.handleKey(keyEvent(tcell.KeyEscape, 0))

	if g.editing {
		t.Error("Escape should cancel editing")
	}
	if c.IsDirty() {
		t.Error("cancelled edit must not touch the record")
	}
}

func TestGridSaveAndDiscardKeys(t *testing.T) {
	g, c := testGrid(t)
	g.handleKey(keyEvent(tcell.KeyDown, 0))
	g.handleKey(keyEvent(tcell.KeyRight, 0))

	g.handleKey(keyEvent(tcell.KeyEnter, 0))
	for _, r := range "X" {
		g.handleKey(keyEvent(tcell.KeyRune, r))
	}
	g.handleKey(keyEvent(tcell.KeyEnter, 0))

	g.handleKey(keyEvent(tcell.KeyRune, 'u'))
	if c.IsDirty() {
		t.Error("u should discard edits")
	}

	g.handleKey(keyEvent(tcell.KeyRune, 'n'))
	if !c.Position().IsNewRow() {
		t.Fatalf("position = %s, want NEW", c.Position())
	}
	g.handleKey(keyEvent(tcell.KeyEnter, 0)) // name column is still selected
	g.handleKey(keyEvent(tcell.KeyRune, '3'))
	g.handleKey(keyEvent(tcell.KeyEnter, 0))
	g.handleKey(keyEvent(tcell.KeyRune, 's'))

	if c.RowCount() != 3 {
		t.Errorf("row count = %d, want 3 after save", c.RowCount())
	}
	if i, ok := c.Position().Index(); !ok || i != 2 {
		t.Errorf("position = %s, want Index(2)", c.Position())
	}
}

func TestGridQuitKeys(t *testing.T) {
	g, _ := testGrid(t)

	if !g.handleKey(keyEvent(tcell.KeyRune, 'q')) {
		t.Error("q should quit")
	}
	if !g.handleKey(keyEvent(tcell.KeyEscape, 0)) {
		t.Error("Escape should quit outside editing")
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"42", int64(42)},
		{"3.5", 3.5},
		{"true", true},
		{"hello", "hello"},
	}
	for _, tt := range tests {
		if got := parseValue(tt.in); got != tt.want {
			t.Errorf("parseValue(%q) = %v (%T), want %v", tt.in, got, got, tt.want)
		}
	}
}
