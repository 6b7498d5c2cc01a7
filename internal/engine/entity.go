package engine

// Vec2 is a point or extent on the play-field.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }

// EntityID identifies an entity for its whole lifetime. IDs are never reused
// within a Store.
type EntityID uint64

// EntityKind tags which variant an Entity holds.
type EntityKind uint8

const (
	KindFlyer EntityKind = iota + 1
	KindGate
)

func (k EntityKind) String() string {
	switch k {
	case KindFlyer:
		return "flyer"
	case KindGate:
		return "gate"
	default:
		return "unknown"
	}
}

// Draw order: higher depth is drawn on top.
const (
	GateDepth  = 1.0
	FlyerDepth = 2.0
)

// FlyerData is the flyer-only part of an entity.
type FlyerData struct {
	Velocity float64 // Vertical velocity, +Y up
}

// GateData is the gate-only part of an entity.
type GateData struct {
	Flipped bool // Ceiling gate, mirrored about the horizontal axis
}

// Entity is a tagged variant: Kind selects which of Flyer/Gate is meaningful.
type Entity struct {
	ID    EntityID
	Kind  EntityKind
	Pos   Vec2 // Centre
	Half  Vec2 // Collider half-extent
	Depth float64
	Flyer FlyerData
	Gate  GateData
}

// Box returns the entity's world-space collider.
func (e *Entity) Box() AABB {
	return FromCenter(e.Pos, e.Half)
}

// Store owns every entity of a session. Removal swaps the last element into
// the hole, so iteration order is not stable across removals.
// Pointers returned by Flyer and Each are valid until the next spawn or removal.
type Store struct {
	entities []Entity
	nextID   EntityID
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		entities: make([]Entity, 0, 16),
		nextID:   1,
	}
}

func (s *Store) add(e Entity) EntityID {
	e.ID = s.nextID
	s.nextID++
	s.entities = append(s.entities, e)
	return e.ID
}

// SpawnFlyer adds the flyer. A store holds exactly one; a second call is an
// invariant violation and returns the existing flyer's ID.
func (s *Store) SpawnFlyer(pos, half Vec2) EntityID {
	if f := s.Flyer(); f != nil {
		invariantf("second flyer spawned (existing id %d)", f.ID)
		return f.ID
	}
	return s.add(Entity{
		Kind:  KindFlyer,
		Pos:   pos,
		Half:  half,
		Depth: FlyerDepth,
	})
}

// SpawnGate adds one gate.
func (s *Store) SpawnGate(pos, half Vec2, flipped bool) EntityID {
	return s.add(Entity{
		Kind:  KindGate,
		Pos:   pos,
		Half:  half,
		Depth: GateDepth,
		Gate:  GateData{Flipped: flipped},
	})
}

// Flyer returns the flyer, or nil if none has been spawned.
func (s *Store) Flyer() *Entity {
	var found *Entity
	for i := range s.entities {
		if s.entities[i].Kind != KindFlyer {
			continue
		}
		if found != nil {
			invariantf("more than one flyer (ids %d and %d)", found.ID, s.entities[i].ID)
			break
		}
		found = &s.entities[i]
	}
	return found
}

// Each calls fn for every entity of the given kind.
func (s *Store) Each(kind EntityKind, fn func(e *Entity)) {
	for i := range s.entities {
		if s.entities[i].Kind == kind {
			fn(&s.entities[i])
		}
	}
}

// Gates returns a copy of every gate.
func (s *Store) Gates() []Entity {
	gates := make([]Entity, 0, len(s.entities))
	for _, e := range s.entities {
		if e.Kind == KindGate {
			gates = append(gates, e)
		}
	}
	return gates
}

// All returns a copy of every entity.
func (s *Store) All() []Entity {
	out := make([]Entity, len(s.entities))
	copy(out, s.entities)
	return out
}

// Get returns the entity with the given ID.
func (s *Store) Get(id EntityID) (*Entity, bool) {
	for i := range s.entities {
		if s.entities[i].ID == id {
			return &s.entities[i], true
		}
	}
	return nil, false
}

// Remove deletes the entity with the given ID.
func (s *Store) Remove(id EntityID) bool {
	for i := range s.entities {
		if s.entities[i].ID == id {
			s.swapRemove(i)
			return true
		}
	}
	return false
}

// RemoveWhere deletes every entity of kind for which pred is true and
// returns their IDs.
func (s *Store) RemoveWhere(kind EntityKind, pred func(e *Entity) bool) []EntityID {
	var removed []EntityID
	for i := len(s.entities) - 1; i >= 0; i-- {
		e := &s.entities[i]
		if e.Kind == kind && pred(e) {
			removed = append(removed, e.ID)
			s.swapRemove(i)
		}
	}
	return removed
}

// RemoveGates deletes every gate and returns how many were removed.
func (s *Store) RemoveGates() int {
	return len(s.RemoveWhere(KindGate, func(*Entity) bool { return true }))
}

func (s *Store) swapRemove(i int) {
	last := len(s.entities) - 1
	s.entities[i] = s.entities[last]
	s.entities[last] = Entity{}
	s.entities = s.entities[:last]
}

// Len returns the number of entities.
func (s *Store) Len() int { return len(s.entities) }

// GateCount returns the number of gates.
func (s *Store) GateCount() int {
	n := 0
	for _, e := range s.entities {
		if e.Kind == KindGate {
			n++
		}
	}
	return n
}
