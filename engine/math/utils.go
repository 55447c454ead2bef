package math

import "golang.org/x/exp/constraints"

// Clamp returns the value `f` clamped to the range [low, high].
// It works for any numeric type (integers and floats).
func Clamp[T constraints.Ordered](f, low, high T) T {
	if f < low {
		return low
	}
	if f > high {
		return high
	}
	return f
}

// WrapAngle maps an angle returned by Atan2, in [-PI, PI], into [0, 2PI).
func WrapAngle[T constraints.Float](theta, twoPi T) T {
	if theta < 0 {
		theta += twoPi
	}
	if theta >= twoPi {
		theta -= twoPi
	}
	return theta
}
