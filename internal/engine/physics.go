package engine

import "github.com/vovakirdan/skygate/internal/core"

// ApplyGravity decelerates upward motion by g over dt seconds and clamps the
// result to [minV, maxV].
func ApplyGravity(v, g, dt, minV, maxV float64) float64 {
	return core.ClampF(v-g*dt, minV, maxV)
}

// ApplyFlap replaces the velocity with the flap velocity. The boost is not
// additive, so every flap has the same strength.
func ApplyFlap(flapV, minV, maxV float64) float64 {
	return core.ClampF(flapV, minV, maxV)
}

// Integrate moves y by v over dt seconds inside [bottom, top].
// A body resting on an edge and still pushing into it is left where it is.
func Integrate(y, v, dt, bottom, top float64) float64 {
	if v >= 0 && y >= top || v <= 0 && y <= bottom {
		return core.ClampF(y, bottom, top)
	}
	return core.ClampF(y+v*dt, bottom, top)
}
