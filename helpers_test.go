package iris

import (
	"testing"
	"time"

	"github.com/gonum/floats"
)

const (
	angleε    = (5e-3 / 360) * (2 * 3.141592653589793) // 0.005 degrees
	distanceε = 2e1                                    // 20 km
	velocityε = 1e-6                                   // km/s
)

var testEpoch = time.Date(2017, 3, 1, 0, 0, 0, 0, time.UTC)

func vectorsEqual(t *testing.T, name string, got, want []float64, tol float64) {
	t.Helper()
	for k := 0; k < 3; k++ {
		if !floats.EqualWithinAbs(got[k], want[k], tol) {
			t.Fatalf("%s[%d] = %f, want %f", name, k, got[k], want[k])
		}
	}
}

func assertPanic(t *testing.T, f func()) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected a panic")
		}
	}()
	f()
}
