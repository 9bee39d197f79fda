package quadpose

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// cosTol absorbs floating-point rounding when a law-of-cosines argument
// lands marginally outside [-1, 1] for a target on the workspace boundary.
const cosTol = 1e-9

// SolveJoints computes the motor angles that place a leg's toe at the given
// hip-frame target. It is the closed-form inverse of ToePosition.
//
// The target must satisfy two domain constraints: its y/z distance from the
// hip must clear the hip offset, and the planar distance left for the
// thigh/shank pair must lie between the difference and the sum of the link
// lengths. Targets failing either constraint return ErrUnreachableTarget;
// no NaN ever leaves this function.
//
// The knee only bends one way on this frame, so the elbow-up root of the
// knee angle is never taken.
func SolveJoints(g Geometry, leg Leg, toe r3.Vector) (JointAngles, error) {
	l1 := g.ThighLengthMm
	l2 := g.ShankLengthMm
	o := g.HipOffsetMm
	s := legFrames[leg].lateral
	x, y, z := toe.X, toe.Y, toe.Z

	hSq := z*z + y*y - o*o
	if hSq < 0 {
		return JointAngles{}, fmt.Errorf("%v leg: toe (%.1f, %.1f, %.1f) inside hip offset cylinder: %w",
			leg, x, y, z, ErrUnreachableTarget)
	}
	h := math.Sqrt(hSq)

	reachSq := x*x + hSq
	cosKnee := (reachSq - l1*l1 - l2*l2) / (2 * l1 * l2)
	if cosKnee > 1+cosTol || cosKnee < -1-cosTol {
		return JointAngles{}, fmt.Errorf("%v leg: toe distance %.1fmm outside link reach [%.1f, %.1f]: %w",
			leg, math.Sqrt(reachSq), math.Abs(l1-l2), l1+l2, ErrUnreachableTarget)
	}
	cosKnee = clampUnit(cosKnee)
	// Negative root: the knee's angular position is always negative.
	sinKnee := -math.Sqrt(1 - cosKnee*cosKnee)

	reach := math.Sqrt(reachSq)
	if reach < cosTol {
		// Toe on the hip flexion axis; the fold direction is undefined.
		return JointAngles{}, fmt.Errorf("%v leg: toe on hip flexion axis: %w", leg, ErrUnreachableTarget)
	}

	hipAA := s * (math.Atan2(math.Abs(z), s*y) - math.Atan2(h, o))
	hipFE := math.Acos(clampUnit((l1*l1+reachSq-l2*l2)/(2*l1*reach))) - math.Atan2(x, h)
	knee := math.Atan2(sinKnee, cosKnee)

	return JointAngles{hipAA, hipFE, knee}, nil
}

func clampUnit(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
