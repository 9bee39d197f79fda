package quadpose

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// Attitude is a commanded body orientation and height change, expressed
// relative to whatever posture the transform starts from. Angles are in
// radians. HeightMm is the change in body height above the toes; positive
// raises the body.
type Attitude struct {
	Yaw      float64
	Pitch    float64
	Roll     float64
	HeightMm float64
}

// TransformPosture computes the posture that tilts and shifts the body by
// att while the toes stay planted. For each leg it runs forward kinematics
// on the starting angles, moves the toe through the height, roll, pitch and
// yaw adjustments in that fixed order, and solves the result back to motor
// angles.
//
// The roll/pitch/yaw stages are applied as independent per-leg affine
// transforms anchored at the body center, not composed into a single rigid
// rotation; for the small attitude angles the frame can reach, the
// difference is below the motors' repeatability.
//
// The starting posture is never modified. The returned candidate is not
// limit-checked; callers commit it only after CheckPosture approves it.
func TransformPosture(g Geometry, start Posture, att Attitude) (Posture, error) {
	halfLen := g.BodyLengthMm / 2
	halfWidth := g.BodyWidthMm / 2

	var candidate Posture
	for _, leg := range Legs() {
		frame := legFrames[leg]
		toe := ToePosition(g, leg, start[leg])

		// Toe z is measured from the hip, so raising the body pushes the
		// toe further down.
		x, y, z := toe.X, toe.Y, toe.Z-att.HeightMm

		var rolled mat.VecDense
		rolled.MulVec(rollMatrix(att.Roll, halfWidth, frame.lateral),
			mat.NewVecDense(4, []float64{x, y, z, 1}))
		x, y, z = rolled.AtVec(0), rolled.AtVec(1), rolled.AtVec(2)

		// Pitch only moves the toe in the x/z plane.
		var pitched mat.VecDense
		pitched.MulVec(pitchMatrix(att.Pitch, halfLen, frame.sagittal),
			mat.NewVecDense(3, []float64{x, z, 1}))
		x, z = pitched.AtVec(0), pitched.AtVec(1)

		var yawed mat.VecDense
		yawed.MulVec(yawMatrix(att.Yaw, halfLen, halfWidth, frame.lateral, frame.sagittal),
			mat.NewVecDense(4, []float64{x, y, z, 1}))
		x, y, z = yawed.AtVec(0), yawed.AtVec(1), yawed.AtVec(2)

		angles, err := SolveJoints(g, leg, r3.Vector{X: x, Y: y, Z: z})
		if err != nil {
			return Posture{}, fmt.Errorf("attitude transform: %w", err)
		}
		candidate[leg] = angles
	}

	return candidate, nil
}

// rollMatrix is the homogeneous transform for a rotation about the body's
// longitudinal axis. The translation terms keep the rotation anchored at the
// body's geometric center rather than the hip; right and left legs carry
// mirrored signs on the half-width terms.
func rollMatrix(roll, halfWidth, lateral float64) *mat.Dense {
	c, s := math.Cos(roll), math.Sin(roll)
	return mat.NewDense(4, 4, []float64{
		1, 0, 0, 0,
		0, c, -s, lateral * halfWidth * (c - 1),
		0, s, c, lateral * halfWidth * s,
		0, 0, 0, 1,
	})
}

// pitchMatrix is the homogeneous transform for a rotation about the lateral
// axis, acting on [x, z, 1]. Front and hind legs carry mirrored signs on the
// half-length terms.
func pitchMatrix(pitch, halfLen, sagittal float64) *mat.Dense {
	c, s := math.Cos(pitch), math.Sin(pitch)
	return mat.NewDense(3, 3, []float64{
		c, -s, sagittal * halfLen * (c - 1),
		s, c, sagittal * halfLen * s,
		0, 0, 1,
	})
}

// yawMatrix is the homogeneous transform for a rotation about the vertical
// axis. Yaw couples both body half-dimensions, so each leg's translation is
// a distinct combination of the two mirror signs.
func yawMatrix(yaw, halfLen, halfWidth, lateral, sagittal float64) *mat.Dense {
	c, s := math.Cos(yaw), math.Sin(yaw)
	return mat.NewDense(4, 4, []float64{
		c, -s, 0, sagittal*halfLen*(c-1) - lateral*halfWidth*s,
		s, c, 0, sagittal*halfLen*s + lateral*halfWidth*(c-1),
		0, 0, 1, 0,
		0, 0, 0, 1,
	})
}
