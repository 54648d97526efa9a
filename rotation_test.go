package iris

import (
	"math"
	"testing"

	"github.com/gonum/floats"
)

func TestRotationsPreserveNorm(t *testing.T) {
	v := []float64{1, -2, 3}
	n := Norm(v)
	for _, θ := range []float64{0, 0.3, math.Pi / 2, 2.8} {
		for _, rotated := range [][]float64{
			MxV33(R1(θ), v),
			MxV33(R3(θ), v),
			Rot313Vec(θ, θ/2, -θ, v),
		} {
			if !floats.EqualWithinAbs(Norm(rotated), n, 1e-12) {
				t.Fatalf("rotation by %f changed the norm: %f != %f", θ, Norm(rotated), n)
			}
		}
	}
}

func TestPQW2ECIPlanarOrbit(t *testing.T) {
	// With i=Ω=ω=0 the perifocal and inertial frames coincide.
	v := []float64{0.7, -1.3, 0}
	vectorsEqual(t, "identity", PQW2ECI(0, 0, 0, v), v, 1e-12)

	// ω=90° rotates the perifocal x axis onto inertial y.
	got := PQW2ECI(0, math.Pi/2, 0, []float64{1, 0, 0})
	vectorsEqual(t, "ω=90°", got, []float64{0, 1, 0}, 1e-12)

	// i=90°, node at x: the orbit plane contains x and z.
	got = PQW2ECI(math.Pi/2, 0, 0, []float64{0, 1, 0})
	vectorsEqual(t, "i=90°", got, []float64{0, 0, 1}, 1e-12)
}
