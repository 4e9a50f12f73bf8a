package learn_test

import (
	"testing"

	"github.com/go-theft-auto/learn"
)

func TestInputKeyEdges(t *testing.T) {
	in := learn.NewInputState()

	in.SetKey(learn.KeyEscape, true)
	if !in.KeyDown(learn.KeyEscape) || !in.KeyPressed(learn.KeyEscape) {
		t.Error("expected Escape down and pressed")
	}

	// Next frame, still held.
	in.Reset()
	in.SetKey(learn.KeyEscape, true)
	if !in.KeyDown(learn.KeyEscape) {
		t.Error("expected Escape still down")
	}
	if in.KeyPressed(learn.KeyEscape) {
		t.Error("pressed must only fire on the first frame")
	}

	in.Reset()
	in.SetKey(learn.KeyEscape, false)
	if in.KeyDown(learn.KeyEscape) || !in.KeyReleased(learn.KeyEscape) {
		t.Error("expected Escape released")
	}
}

func TestInputOutOfRange(t *testing.T) {
	in := learn.NewInputState()

	in.SetKey(learn.KeyCount, true)
	in.SetKey(learn.Key(-1), true)
	in.SetKey(learn.KeyNone, true)

	if in.KeyDown(learn.KeyCount) || in.KeyDown(learn.Key(-1)) || in.KeyDown(learn.KeyNone) {
		t.Error("out-of-range keys must never report down")
	}
}

func TestKeyString(t *testing.T) {
	if got := learn.KeyEscape.String(); got != "Esc" {
		t.Errorf("expected Esc, got %q", got)
	}
	if got := learn.Key(100).String(); got != "?" {
		t.Errorf("expected ?, got %q", got)
	}
}
