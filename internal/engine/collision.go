package engine

// AABB is an axis-aligned box given by its corners.
type AABB struct {
	Min, Max Vec2
}

// FromCenter builds a box from a centre and a half-extent.
func FromCenter(center, half Vec2) AABB {
	return AABB{Min: center.Sub(half), Max: center.Add(half)}
}

// Overlaps reports strict overlap: boxes that only share an edge do not overlap.
func (a AABB) Overlaps(b AABB) bool {
	return a.Max.X > b.Min.X &&
		a.Min.X < b.Max.X &&
		a.Max.Y > b.Min.Y &&
		a.Min.Y < b.Max.Y
}

// Center returns the midpoint of the box.
func (a AABB) Center() Vec2 {
	return Vec2{X: (a.Min.X + a.Max.X) / 2, Y: (a.Min.Y + a.Max.Y) / 2}
}

// Size returns width and height.
func (a AABB) Size() Vec2 {
	return a.Max.Sub(a.Min)
}

// DetectCollisions tests the flyer against every gate and returns the number
// of gates it overlaps. All gates are visited.
func DetectCollisions(store *Store) int {
	flyer := store.Flyer()
	if flyer == nil {
		return 0
	}
	box := flyer.Box()

	hits := 0
	store.Each(KindGate, func(g *Entity) {
		if box.Overlaps(g.Box()) {
			hits++
		}
	})
	return hits
}
