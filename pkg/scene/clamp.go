package scene

// MaxCoord is the coordinate envelope: after clamping, every element's
// X and Y lie within [-MaxCoord, MaxCoord].
const MaxCoord = 5000.0

// Clamp restricts every element's X and Y to the ±MaxCoord envelope,
// leaving width, height, and all other fields untouched. The input slice
// is modified in place and returned for chaining. Total: never fails,
// empty input yields empty output.
func Clamp(elements []Element) []Element {
	for i := range elements {
		elements[i].X = clampCoord(elements[i].X)
		elements[i].Y = clampCoord(elements[i].Y)
	}
	return elements
}

func clampCoord(v float64) float64 {
	if v > MaxCoord {
		return MaxCoord
	}
	if v < -MaxCoord {
		return -MaxCoord
	}
	return v
}
