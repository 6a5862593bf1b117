package destruction

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// fibonacciSphereDir returns the i-th of n roughly evenly spaced unit
// directions on a sphere, used to fan debris particles out from a burst
// center without clumping.
func fibonacciSphereDir(i, n int) mgl32.Vec3 {
	if n <= 1 {
		return mgl32.Vec3{0, 1, 0}
	}
	goldenAngle := math.Pi * (3 - math.Sqrt(5))
	y := 1 - (float64(i)/float64(n-1))*2
	radius := math.Sqrt(1 - y*y)
	theta := goldenAngle * float64(i)
	x := math.Cos(theta) * radius
	z := math.Sin(theta) * radius
	return mgl32.Vec3{float32(x), float32(y), float32(z)}
}
