package astro

import (
	"math"
	"testing"
)

func TestPropagateZeroMotionIsIdentity(t *testing.T) {
	// A star with no proper motion stays put for any interval.
	for _, dt := range []float64{0, 1, 25, -50, 100} {
		ra, dec := Propagate(100.0, 40.0, 0, 0, dt)
		if ra != 100.0 || dec != 40.0 {
			t.Errorf("dt=%g: (%g, %g), want exactly (100, 40)", dt, ra, dec)
		}
	}
}

func TestPropagateZeroIntervalIsIdentity(t *testing.T) {
	// dt = 0 is the identity no matter how fast the star moves.
	ra, dec := Propagate(250.4229, -62.6760, 3853.0, -2775.0, 0)
	if ra != 250.4229 || dec != -62.6760 {
		t.Errorf("dt=0: (%g, %g), want exactly (250.4229, -62.6760)", ra, dec)
	}
}

func TestPropagateStrasbourgScenario(t *testing.T) {
	// Star at (100, 40), pmRA = 2000 mas/yr (raw), pmDec = -1500 mas/yr,
	// observed 25 years after the reference epoch. The motion is small
	// enough that the great-circle result matches the tangent-plane
	// estimate to well under a milliarcsecond:
	//   Δdec = -1500 mas/yr · 25 yr = -37500 mas = -0.0104167 deg
	//   Δra  =  2000 mas/yr · 25 yr =  50000 mas =  0.0138889 deg
	// (the raw RA rate is a coordinate rate, so Δra carries no cos(dec)).
	ra, dec := Propagate(100.0, 40.0, 2000, -1500, 25)

	wantDec := 40.0 - 37500.0/3.6e6
	if math.Abs(dec-wantDec) > 1e-6 {
		t.Errorf("dec = %.8f, want %.8f ± 1e-6", dec, wantDec)
	}
	if dec >= 40.0 {
		t.Errorf("declination did not decrease: %f", dec)
	}

	wantRA := 100.0 + 50000.0/3.6e6
	if math.Abs(ra-wantRA) > 1e-5 {
		t.Errorf("ra = %.8f, want %.8f ± 1e-5", ra, wantRA)
	}
}

func TestPropagateBackwardReverses(t *testing.T) {
	// Propagating forward then backward from the start point by the same
	// interval returns home (to second order in the tiny arc).
	ra0, dec0 := 100.0, 40.0
	ra1, dec1 := Propagate(ra0, dec0, 2000, -1500, 25)
	ra2, dec2 := Propagate(ra1, dec1, 2000, -1500, -25)

	if math.Abs(ra2-ra0) > 1e-6 || math.Abs(dec2-dec0) > 1e-6 {
		t.Errorf("round trip landed at (%.8f, %.8f), want (%g, %g)", ra2, dec2, ra0, dec0)
	}
}

func TestPropagatePoleSafety(t *testing.T) {
	// Near the pole the cos(dec) factor almost vanishes and naive RA-rate
	// propagation blows up; the rotation formulation must stay bounded.
	ra, dec := Propagate(10.0, 89.999, 2000, 2000, 50)

	if math.IsNaN(ra) || math.IsNaN(dec) {
		t.Fatalf("non-finite output near pole: (%f, %f)", ra, dec)
	}
	if dec < -90 || dec > 90 {
		t.Errorf("dec = %f outside [-90, 90]", dec)
	}
	if ra < 0 || ra >= 360 {
		t.Errorf("ra = %f outside [0, 360)", ra)
	}
}

func TestPropagateWrapsRA(t *testing.T) {
	// Eastward motion across RA 0 must wrap, not go past 360.
	ra, _ := Propagate(359.999, 0, 3.6e6, 0, 10) // 1 deg/yr for 10 years
	if ra < 0 || ra >= 360 {
		t.Errorf("ra = %f outside [0, 360)", ra)
	}
	if math.Abs(ra-9.999) > 1e-3 {
		t.Errorf("ra = %f, want ~9.999 after wrapping", ra)
	}
}

func TestPropagateLongArcStaysOnSphere(t *testing.T) {
	// A very fast star over a century: output must still be a valid
	// spherical position.
	ra, dec := Propagate(201.3, -47.2, 6766, 1330, 100) // roughly alpha Cen rates
	if ra < 0 || ra >= 360 || dec < -90 || dec > 90 {
		t.Errorf("out of range: (%f, %f)", ra, dec)
	}
}
