package engine

import "sort"

// Renderable is the drawing view of one entity.
type Renderable struct {
	ID      EntityID
	Kind    EntityKind
	Pos     Vec2
	Half    Vec2
	Depth   float64
	Flipped bool
}

// Snapshot is an immutable copy of everything a renderer needs.
// Entities are ordered back to front.
type Snapshot struct {
	Tick      uint64
	State     GameState
	Score     int
	Field     Vec2 // Play-field width and height
	Entities  []Renderable
	Banner    *Banner
	Colliders []AABB // Same boxes the collision detector tests
}

// Snapshot copies the current session state.
func (s *Session) Snapshot() Snapshot {
	all := s.store.All()
	snap := Snapshot{
		Tick:      s.tick,
		State:     s.state,
		Score:     s.score.Score(),
		Field:     Vec2{X: s.cfg.FieldWidth, Y: s.cfg.FieldHeight},
		Entities:  make([]Renderable, 0, len(all)),
		Colliders: make([]AABB, 0, len(all)),
	}

	for i := range all {
		e := &all[i]
		snap.Entities = append(snap.Entities, Renderable{
			ID:      e.ID,
			Kind:    e.Kind,
			Pos:     e.Pos,
			Half:    e.Half,
			Depth:   e.Depth,
			Flipped: e.Gate.Flipped,
		})
	}
	sort.SliceStable(snap.Entities, func(i, j int) bool {
		a, b := snap.Entities[i], snap.Entities[j]
		if a.Depth != b.Depth {
			return a.Depth < b.Depth
		}
		return a.ID < b.ID
	})
	for _, r := range snap.Entities {
		snap.Colliders = append(snap.Colliders, FromCenter(r.Pos, r.Half))
	}

	if s.banner != nil {
		b := *s.banner
		snap.Banner = &b
	}
	return snap
}
