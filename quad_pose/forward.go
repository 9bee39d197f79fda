package quadpose

import (
	"math"

	"github.com/golang/geo/r3"
)

// ToePosition computes the toe position of a leg from its motor angles.
// The returned vector is expressed in the leg's hip frame in millimeters:
// x forward, y lateral, z up, origin on the hip-aa axis.
//
// The thigh and shank form a planar two-link chain in the leg's sagittal
// plane. h is the reach of that chain from the hip flexion axis down to the
// toe; the hip-aa angle then rotates the (hip offset, h) pair into the y/z
// plane, with signs mirrored between right and left legs.
func ToePosition(g Geometry, leg Leg, j JointAngles) r3.Vector {
	l1 := g.ThighLengthMm
	l2 := g.ShankLengthMm
	o := g.HipOffsetMm
	s := legFrames[leg].lateral

	hipAA, hipFE, knee := j[MotorHipAA], j[MotorHipFE], j[MotorKnee]
	h := l1*math.Cos(hipFE) + l2*math.Cos(hipFE+knee)

	return r3.Vector{
		X: -l1*math.Sin(hipFE) - l2*math.Sin(hipFE+knee),
		Y: s*o*math.Cos(hipAA) - h*math.Sin(hipAA),
		Z: -s*o*math.Sin(hipAA) - h*math.Cos(hipAA),
	}
}

// HipPosition returns the location of a leg's hip-aa axis in the body-center
// frame, where the attitude transforms are anchored. Adding it to a hip-frame
// toe position yields the toe in the body frame.
func HipPosition(g Geometry, leg Leg) r3.Vector {
	frame := legFrames[leg]
	return r3.Vector{
		X: frame.sagittal * g.BodyLengthMm / 2,
		Y: frame.lateral * g.BodyWidthMm / 2,
	}
}
