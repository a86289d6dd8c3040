package guard

import (
	"errors"
	"testing"

	"github.com/dshills/datacursor/internal/cursor"
	"github.com/dshills/datacursor/internal/datasource"
	"github.com/dshills/datacursor/internal/event"
)

func testCursor(t *testing.T) *cursor.Cursor {
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
	return c
}

func attachGuard(t *testing.T, c *cursor.Cursor, script string) *Guard {
	t.Helper()
	g, err := New(script)
	if err != nil {
		t.Fatalf("guard failed to load: %v", err)
	}
	t.Cleanup(g.Close)
	if err := g.Attach(c); err != nil {
		t.Fatalf("attach failed: %v", err)
	}
	return g
}

func dirtyAt(t *testing.T, c *cursor.Cursor, index int) {
	t.Helper()
	if err := c.SetPosition(event.At(index)); err != nil {
		t.Fatalf("set position failed: %v", err)
	}
	if err := c.SetFieldValue("name", "Edited"); err != nil {
		t.Fatalf("set field failed: %v", err)
	}
}

func TestGuardVetoesDiscard(t *testing.T) {
	c := testCursor(t)
	attachGuard(t, c, `function before_discard(ev) return false end`)
	dirtyAt(t, c, 0)

	err := c.SetPosition(event.At(1))
	if !errors.Is(err, cursor.ErrDiscardBlocked) {
		t.Fatalf("expected ErrDiscardBlocked, got %v", err)
	}
	if !c.IsDirty() {
		t.Error("edits must survive the vetoed move")
	}
}

func TestGuardAllowsDiscard(t *testing.T) {
	c := testCursor(t)
	attachGuard(t, c, `function before_discard(ev) return true end`)
	dirtyAt(t, c, 0)

	if err := c.SetPosition(event.At(1)); err != nil {
		t.Fatalf("allowed move failed: %v", err)
	}
	if c.IsDirty() {
		t.Error("cursor should be clean after the discard")
	}
}

func TestGuardSeesEventAndRecord(t *testing.T) {
	c := testCursor(t)
	// Veto only when the working record carries the edited name.
	attachGuard(t, c, `
		function before_discard(ev)
			if ev.type ~= "BEFORE_DISCARD" then return true end
			if ev.index ~= 0 then return true end
			return ev.record.name ~= "Edited"
		end
	`)
	dirtyAt(t, c, 0)

	if err := c.SetPosition(event.At(1)); !errors.Is(err, cursor.ErrDiscardBlocked) {
		t.Fatalf("expected ErrDiscardBlocked, got %v", err)
	}
}

func TestGuardVetoesOverwrite(t *testing.T) {
	c := testCursor(t)
	attachGuard(t, c, `function before_overwrite(ev) return false end`)

	if c.Notifier().Fire(event.New(event.BeforeOverwrite, event.At(0))) {
		t.Error("guard should have vetoed BEFORE_OVERWRITE")
	}
}

func TestGuardNilReturnProceeds(t *testing.T) {
	c := testCursor(t)
	// A hook that returns nothing does not veto.
	attachGuard(t, c, `function before_discard(ev) end`)
	dirtyAt(t, c, 0)

	if err := c.SetPosition(event.At(1)); err != nil {
		t.Fatalf("move should proceed on nil return, got %v", err)
	}
}

func TestGuardFailsOpenOnScriptError(t *testing.T) {
	c := testCursor(t)
	attachGuard(t, c, `function before_discard(ev) error("boom") end`)
	dirtyAt(t, c, 0)

	if err := c.SetPosition(event.At(1)); err != nil {
		t.Fatalf("move should proceed when the hook errors, got %v", err)
	}
}

func TestGuardOnlyWiresDefinedHooks(t *testing.T) {
	c := testCursor(t)
	g := attachGuard(t, c, `x = 1`)

	if len(g.subs) != 0 {
		t.Errorf("expected no subscriptions, got %d", len(g.subs))
	}
}

func TestGuardRejectsBrokenScript(t *testing.T) {
	if _, err := New(`function(`); err == nil {
		t.Error("expected a load error")
	}
}

func TestGuardSandboxRemovesIO(t *testing.T) {
	if _, err := New(`io.open("/etc/passwd")`); err == nil {
		t.Error("sandboxed script should not reach io")
	}
	if _, err := New(`os.getenv("HOME")`); err == nil {
		t.Error("sandboxed script should not reach os")
	}
	if _, err := New(`loadstring("return 1")`); err == nil {
		t.Error("sandboxed script should not reach loadstring")
	}
}

func TestGuardDetachesOnClose(t *testing.T) {
	c := testCursor(t)
	g, err := New(`function before_discard(ev) return false end`)
	if err != nil {
		t.Fatalf("guard failed to load: %v", err)
	}
	if err := g.Attach(c); err != nil {
		t.Fatalf("attach failed: %v", err)
	}
	g.Close()

	dirtyAt(t, c, 0)
	if err := c.SetPosition(event.At(1)); err != nil {
		t.Fatalf("move should proceed after guard close, got %v", err)
	}
}
