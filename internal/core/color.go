package core

// Color is the foreground colour of a screen cell. The platform maps each
// value to an ANSI code; games draw with the role names below.
type Color uint8

// Base palette.
const (
	ColorDefault Color = iota
	ColorGreen
	ColorYellow
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorGray
)

// Roles used when drawing the play-field.
const (
	ColorFlyer    = ColorBrightYellow
	ColorBeak     = ColorYellow
	ColorGate     = ColorBrightGreen
	ColorGateCap  = ColorGreen
	ColorCollider = ColorBrightRed
	ColorHUD      = ColorWhite
	ColorDim      = ColorGray
	ColorBanner   = ColorBrightYellow
)
