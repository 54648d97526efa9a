package iris

import (
	"math"
	"testing"

	"github.com/gonum/floats"
)

func TestVectorHelpers(t *testing.T) {
	a := []float64{3, 4, 0}
	if !floats.EqualWithinAbs(Norm(a), 5, 1e-12) {
		t.Fatalf("|a|=%f", Norm(a))
	}
	u := Unit(a)
	if !floats.EqualWithinAbs(Norm(u), 1, 1e-12) {
		t.Fatalf("|unit(a)|=%f", Norm(u))
	}
	vectorsEqual(t, "unit(0)", Unit([]float64{0, 0, 0}), []float64{0, 0, 0}, 1e-12)
	if !floats.EqualWithinAbs(Dot(a, []float64{1, 1, 1}), 7, 1e-12) {
		t.Fatalf("dot=%f", Dot(a, []float64{1, 1, 1}))
	}
	vectorsEqual(t, "i x j", Cross([]float64{1, 0, 0}, []float64{0, 1, 0}), []float64{0, 0, 1}, 1e-12)
	vectorsEqual(t, "sub", Sub([]float64{1, 2, 3}, []float64{3, 2, 1}), []float64{-2, 0, 2}, 1e-12)
}

func TestAngleConversions(t *testing.T) {
	if !floats.EqualWithinAbs(Deg2rad(180), math.Pi, 1e-12) {
		t.Fatal("Deg2rad(180)")
	}
	if !floats.EqualWithinAbs(Deg2rad(-90), 3*math.Pi/2, 1e-12) {
		t.Fatal("Deg2rad(-90) not wrapped")
	}
	if !floats.EqualWithinAbs(Rad2deg(3*math.Pi), 180, 1e-12) {
		t.Fatal("Rad2deg(3π) not wrapped")
	}
	if !floats.EqualWithinAbs(wrap2Pi(-math.Pi/2), 3*math.Pi/2, 1e-12) {
		t.Fatal("wrap2Pi(-π/2)")
	}
	if !floats.EqualWithinAbs(wrap2Pi(5*math.Pi), math.Pi, 1e-12) {
		t.Fatal("wrap2Pi(5π)")
	}
}
