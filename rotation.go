package iris

import (
	"math"

	"github.com/gonum/matrix/mat64"
)

// R1 rotation about the 1st axis.
func R1(x float64) *mat64.Dense {
	s, c := math.Sincos(x)
	return mat64.NewDense(3, 3, []float64{1, 0, 0, 0, c, s, 0, -s, c})
}

// R3 rotation about the 3rd axis.
func R3(x float64) *mat64.Dense {
	s, c := math.Sincos(x)
	return mat64.NewDense(3, 3, []float64{c, s, 0, -s, c, 0, 0, 0, 1})
}

// R3R1R3 returns the direction cosine matrix of the 3-1-3 Euler rotation
// R3(θ3)·R1(θ2)·R3(θ1), as per Schaub and Junkins.
func R3R1R3(θ1, θ2, θ3 float64) *mat64.Dense {
	sθ1, cθ1 := math.Sincos(θ1)
	sθ2, cθ2 := math.Sincos(θ2)
	sθ3, cθ3 := math.Sincos(θ3)
	return mat64.NewDense(3, 3, []float64{cθ3*cθ1 - sθ3*cθ2*sθ1, cθ3*sθ1 + sθ3*cθ2*cθ1, sθ3 * sθ2,
		-sθ3*cθ1 - cθ3*cθ2*sθ1, -sθ3*sθ1 + cθ3*cθ2*cθ1, cθ3 * sθ2,
		sθ2 * sθ1, -sθ2 * cθ1, cθ2})
}

// Rot313Vec applies the 3-1-3 rotation by θ1, θ2, θ3 to the given vector.
func Rot313Vec(θ1, θ2, θ3 float64, v []float64) []float64 {
	return MxV33(R3R1R3(θ1, θ2, θ3), v)
}

// PQW2ECI rotates a perifocal frame vector into the inertial frame of the
// central body, for the given inclination, argument of periapsis and
// longitude of ascending node (all in radians). The inertial-to-perifocal
// mapping is R3(ω)·R1(i)·R3(Ω); this applies its transpose.
func PQW2ECI(i, ω, Ω float64, v []float64) []float64 {
	return Rot313Vec(-ω, -i, -Ω, v)
}

// MxV33 multiplies a 3x3 matrix with a 3x1 vector. No dimension check.
func MxV33(m *mat64.Dense, v []float64) []float64 {
	vVec := mat64.NewVector(len(v), v)
	var rVec mat64.Vector
	rVec.MulVec(m, vVec)
	return []float64{rVec.At(0, 0), rVec.At(1, 0), rVec.At(2, 0)}
}
