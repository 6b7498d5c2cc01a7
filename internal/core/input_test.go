package core

import "testing"

func TestInputFrame(t *testing.T) {
	var f InputFrame
	if f.Has(ActionFlap) {
		t.Error("zero frame should have no actions")
	}

	f.Set(ActionFlap)
	if !f.Has(ActionFlap) {
		t.Error("Set should mark action")
	}

	clone := f.Clone()
	f.Clear()
	if f.Has(ActionFlap) {
		t.Error("Clear should remove actions")
	}
	if !clone.Has(ActionFlap) {
		t.Error("Clone should be independent of the original")
	}
}

func TestEdgeDetector(t *testing.T) {
	held := func(actions ...Action) InputFrame {
		f := NewInputFrame()
		for _, a := range actions {
			f.Set(a)
		}
		return f
	}

	tests := []struct {
		name  string
		frame InputFrame
		flap  bool
	}{
		{"press", held(ActionFlap), true},
		{"hold", held(ActionFlap), false},
		{"hold again", held(ActionFlap), false},
		{"release", held(), false},
		{"press again", held(ActionFlap), true},
	}

	ed := NewEdgeDetector()
	for _, tc := range tests {
		got := ed.Update(tc.frame).Has(ActionFlap)
		if got != tc.flap {
			t.Errorf("%s: flap edge = %v, expected %v", tc.name, got, tc.flap)
		}
	}
}

func TestEdgeDetectorIndependentActions(t *testing.T) {
	ed := NewEdgeDetector()

	first := NewInputFrame()
	first.Set(ActionFlap)
	ed.Update(first)

	second := NewInputFrame()
	second.Set(ActionFlap)
	second.Set(ActionRestart)
	out := ed.Update(second)

	if out.Has(ActionFlap) {
		t.Error("held flap should not re-fire")
	}
	if !out.Has(ActionRestart) {
		t.Error("new restart press should fire")
	}

	ed.Reset()
	if !ed.Update(second).Has(ActionFlap) {
		t.Error("after Reset, held action should fire again")
	}
}

func TestActionString(t *testing.T) {
	if ActionFlap.String() != "Flap" {
		t.Errorf("ActionFlap.String() = %q", ActionFlap.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("unknown action should stringify as Unknown")
	}
}
