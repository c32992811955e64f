package planner

// compassOfBearing discretizes a segment bearing in degrees on [0, 360)
// into one of eight compass directions. The boundary at 247.5 is strict
// on the low side only (direction > 247.5, not >=), an intentional
// preservation of a latent off-by-one in the system this was distilled
// from: a bearing of exactly 247.5 falls through every case and resolves
// to "east" rather than "southwest" or "south". Every other boundary is
// inclusive on the low side.
func compassOfBearing(direction float64) string {
	switch {
	case direction >= 0.0 && direction < 22.5:
		return "east"
	case direction >= 22.5 && direction < 67.5:
		return "northeast"
	case direction >= 67.5 && direction < 112.5:
		return "north"
	case direction >= 112.5 && direction < 157.5:
		return "northwest"
	case direction >= 157.5 && direction < 202.5:
		return "west"
	case direction >= 202.5 && direction < 247.5:
		return "southwest"
	case direction > 247.5 && direction < 292.5:
		return "south"
	case direction >= 292.5 && direction < 337.5:
		return "southeast"
	default:
		return "east"
	}
}

// isStraight reports whether a turn angle on [0, 360) is small enough
// that no Turn command should be emitted for it.
func isStraight(turnAngle float64) bool {
	return turnAngle < 1 || turnAngle > 359
}

// turnDirection discretizes a non-straight turn angle on [1, 360) into
// "left" ([1, 180)) or "right" ([180, 360)).
func turnDirection(turnAngle float64) string {
	if turnAngle < 180 {
		return "left"
	}
	return "right"
}
