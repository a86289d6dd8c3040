package event

import "testing"

func TestPositionZeroValueIsBOF(t *testing.T) {
	var p Position
	if !p.IsBOF() {
		t.Error("zero-value position should be BOF")
	}
	if !p.Equal(BOF()) {
		t.Error("zero-value position should equal BOF()")
	}
}

func TestPositionVariants(t *testing.T) {
	tests := []struct {
		pos       Position
		hasRecord bool
		str       string
	}{
		{BOF(), false, "BOF"},
		{EOF(), false, "EOF"},
		{NewRow(), true, "NEW"},
		{At(3), true, "Index(3)"},
	}

	for _, tt := range tests {
		if got := tt.pos.HasRecord(); got != tt.hasRecord {
			t.Errorf("%s: HasRecord = %v, want %v", tt.str, got, tt.hasRecord)
		}
		if got := tt.pos.String(); got != tt.str {
			t.Errorf("String = %q, want %q", got, tt.str)
		}
	}
}

func TestPositionIndex(t *testing.T) {
	if i, ok := At(7).Index(); !ok || i != 7 {
		t.Errorf("At(7).Index() = %d, %v", i, ok)
	}
	if _, ok := NewRow().Index(); ok {
		t.Error("NEW must not report an index")
	}
	if _, ok := EOF().Index(); ok {
		t.Error("EOF must not report an index")
	}
}

func TestPositionEqual(t *testing.T) {
	if !At(2).Equal(At(2)) {
		t.Error("At(2) should equal At(2)")
	}
	if At(2).Equal(At(3)) {
		t.Error("At(2) should not equal At(3)")
	}
	if BOF().Equal(EOF()) {
		t.Error("BOF and EOF are always distinct")
	}
	if NewRow().Equal(At(0)) {
		t.Error("NEW should not equal an index")
	}
}

func TestTypeCancellable(t *testing.T) {
	cancellable := []Type{BeforeDiscard, BeforeSave, BeforeOverwrite}
	for _, typ := range cancellable {
		if !typ.Cancellable() {
			t.Errorf("%s should be cancellable", typ)
		}
	}

	informational := []Type{
		MoveFirst, MoveBackward, MoveForward, MoveLast, MoveTo,
		CreateNew, DeleteCurrentRow, Discard, Save, Overwrite, Modified,
		RowsInsert, RowsUpdate, RowsDelete,
	}
	for _, typ := range informational {
		if typ.Cancellable() {
			t.Errorf("%s should not be cancellable", typ)
		}
	}
}
