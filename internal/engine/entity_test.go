package engine

import "testing"

func TestStoreSpawnAndQuery(t *testing.T) {
	s := NewStore()
	flyerID := s.SpawnFlyer(Vec2{X: 0, Y: 0}, Vec2{X: 17, Y: 12})
	g1 := s.SpawnGate(Vec2{X: 450, Y: -200}, Vec2{X: 26, Y: 160}, false)
	g2 := s.SpawnGate(Vec2{X: 450, Y: 220}, Vec2{X: 26, Y: 160}, true)

	if s.Len() != 3 || s.GateCount() != 2 {
		t.Fatalf("Len()=%d GateCount()=%d, expected 3 and 2", s.Len(), s.GateCount())
	}

	f := s.Flyer()
	if f == nil || f.ID != flyerID || f.Kind != KindFlyer {
		t.Fatalf("Flyer() = %+v", f)
	}
	if f.Depth <= GateDepth {
		t.Error("flyer should be drawn in front of gates")
	}

	gate, ok := s.Get(g2)
	if !ok || !gate.Gate.Flipped {
		t.Errorf("Get(%d) = %+v, %v; expected flipped gate", g2, gate, ok)
	}

	if g1 == g2 || g1 == flyerID {
		t.Error("entity IDs should be unique")
	}
}

func TestStoreRemove(t *testing.T) {
	s := NewStore()
	s.SpawnFlyer(Vec2{}, Vec2{X: 1, Y: 1})
	ids := make([]EntityID, 0, 5)
	for i := 0; i < 5; i++ {
		ids = append(ids, s.SpawnGate(Vec2{X: float64(i * 100)}, Vec2{X: 1, Y: 1}, false))
	}

	if !s.Remove(ids[1]) {
		t.Fatal("Remove() of existing gate returned false")
	}
	if s.Remove(ids[1]) {
		t.Error("Remove() of a removed gate returned true")
	}
	if _, ok := s.Get(ids[1]); ok {
		t.Error("removed gate still retrievable")
	}
	if s.GateCount() != 4 {
		t.Errorf("GateCount() = %d, expected 4", s.GateCount())
	}

	removed := s.RemoveWhere(KindGate, func(e *Entity) bool { return e.Pos.X >= 300 })
	if len(removed) != 2 {
		t.Errorf("RemoveWhere() removed %d gates, expected 2", len(removed))
	}

	if n := s.RemoveGates(); n != 2 {
		t.Errorf("RemoveGates() = %d, expected 2", n)
	}
	if s.Flyer() == nil || s.Len() != 1 {
		t.Error("removing gates must keep the flyer")
	}
}

func TestStoreIDsNotReused(t *testing.T) {
	s := NewStore()
	a := s.SpawnGate(Vec2{}, Vec2{X: 1, Y: 1}, false)
	s.Remove(a)
	b := s.SpawnGate(Vec2{}, Vec2{X: 1, Y: 1}, false)

	if a == b {
		t.Errorf("ID %d reused after removal", a)
	}
}

func TestStoreGatesReturnsCopies(t *testing.T) {
	s := NewStore()
	s.SpawnGate(Vec2{X: 5}, Vec2{X: 1, Y: 1}, false)

	gates := s.Gates()
	gates[0].Pos.X = 999

	if s.Gates()[0].Pos.X != 5 {
		t.Error("Gates() should not expose internal storage")
	}
}

func TestEntityKindString(t *testing.T) {
	if KindFlyer.String() != "flyer" || KindGate.String() != "gate" {
		t.Errorf("unexpected kind names %q %q", KindFlyer, KindGate)
	}
}
