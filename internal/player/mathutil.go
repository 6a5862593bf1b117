package player

import "math"

func absf32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func atan2f(y, x float32) float32 {
	return float32(math.Atan2(float64(y), float64(x)))
}

const twoPi = 2 * math.Pi

// wrapAngle returns the equivalent of a in (-pi, pi], used to take the
// shortest angular path when approaching a target yaw.
func wrapAngle(a float32) float32 {
	f := float64(a)
	for f > math.Pi {
		f -= twoPi
	}
	for f < -math.Pi {
		f += twoPi
	}
	return float32(f)
}
