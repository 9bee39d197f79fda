package quadpose

import (
	"math"
	"testing"
)

func TestToePosition_HomeStance(t *testing.T) {
	// At the home stance the planar chain reduces to h = 2*l*cos(0.7) with
	// no forward offset, so the toe sits directly beneath the hip at the
	// hip offset.
	g := DefaultConfig().Geometry
	home := JointAngles{0, 0.7, -1.4}

	toe := ToePosition(g, LegFrontRight, home)

	wantZ := -305.9368749137954 // -400 * cos(0.7)
	if math.Abs(toe.X) > 1e-9 {
		t.Errorf("home toe x = %.12f, want 0", toe.X)
	}
	if math.Abs(toe.Y-80) > 1e-9 {
		t.Errorf("home toe y = %.12f, want 80", toe.Y)
	}
	if math.Abs(toe.Z-wantZ) > 1e-9 {
		t.Errorf("home toe z = %.12f, want %.12f", toe.Z, wantZ)
	}
}

func TestToePosition_ToesBeneathHips(t *testing.T) {
	// Every leg at the home stance keeps its toe below the hip and at the
	// hip offset laterally, right legs at +y and left legs at -y.
	g := DefaultConfig().Geometry

	for _, p := range []struct {
		leg   Leg
		wantY float64
	}{
		{LegFrontRight, 80},
		{LegFrontLeft, -80},
		{LegHindRight, 80},
		{LegHindLeft, -80},
	} {
		toe := ToePosition(g, p.leg, JointAngles{0, 0.7, -1.4})
		if math.Abs(toe.Y-p.wantY) > 1e-9 {
			t.Errorf("%v: toe y = %.6f, want %.1f", p.leg, toe.Y, p.wantY)
		}
		if toe.Z >= 0 {
			t.Errorf("%v: toe z = %.6f, want below hip", p.leg, toe.Z)
		}
	}
}

func TestToePosition_LateralSymmetry(t *testing.T) {
	// With the hip-aa motor centered, identical angles on a right and a left
	// leg mirror across the sagittal plane: y negated, x and z equal.
	g := DefaultConfig().Geometry

	for _, hipFE := range []float64{0.25, 0.7, 1.05} {
		for _, knee := range []float64{-2.2, -1.4, -1.0} {
			j := JointAngles{0, hipFE, knee}
			right := ToePosition(g, LegFrontRight, j)
			left := ToePosition(g, LegFrontLeft, j)

			if math.Abs(right.X-left.X) > 1e-9 || math.Abs(right.Z-left.Z) > 1e-9 {
				t.Errorf("angles %v: x/z not shared: right=%v left=%v", j, right, left)
			}
			if math.Abs(right.Y+left.Y) > 1e-9 {
				t.Errorf("angles %v: y not mirrored: right=%.6f left=%.6f", j, right.Y, left.Y)
			}
		}
	}
}

func TestToePosition_MirroredHipAA(t *testing.T) {
	// With the hip-aa motor deflected, the mirror pose of a right leg is the
	// left leg with the hip-aa angle negated.
	g := DefaultConfig().Geometry

	for _, hipAA := range []float64{-0.6, -0.2, 0.35, 0.75} {
		j := JointAngles{hipAA, 0.8, -1.6}
		mirrored := JointAngles{-hipAA, 0.8, -1.6}

		right := ToePosition(g, LegHindRight, j)
		left := ToePosition(g, LegHindLeft, mirrored)

		if math.Abs(right.X-left.X) > 1e-9 ||
			math.Abs(right.Y+left.Y) > 1e-9 ||
			math.Abs(right.Z-left.Z) > 1e-9 {
			t.Errorf("hip-aa %.2f: right=%v mirrored left=%v", hipAA, right, left)
		}
	}
}

func TestToePosition_FrontHindShareFormulas(t *testing.T) {
	// The sagittal sign only matters to the attitude transform; forward
	// kinematics depends on the lateral sign alone.
	g := DefaultConfig().Geometry
	j := JointAngles{0.3, 0.9, -1.5}

	front := ToePosition(g, LegFrontRight, j)
	hind := ToePosition(g, LegHindRight, j)
	if front != hind {
		t.Errorf("front=%v hind=%v, want identical", front, hind)
	}
}
