package quadpose

import (
	"image/color"

	"go.viam.com/rdk/pointcloud"
)

// defaultWorkspaceSamples is the per-motor grid resolution used when the
// caller does not specify one. 16^3 points renders fast and still shows the
// envelope shape clearly.
const defaultWorkspaceSamples = 16

// SampleWorkspace sweeps one leg's motor ranges on a uniform grid through
// forward kinematics and returns the reachable toe envelope as a point
// cloud, in the leg's hip frame. Points are colored on a blue-to-red ramp by
// knee fold so the inner and outer shells are distinguishable in a viewer.
//
// samplesPerMotor is the grid resolution per motor; values below 2 select
// the default.
func SampleWorkspace(cfg Config, leg Leg, samplesPerMotor int) (pointcloud.PointCloud, error) {
	if samplesPerMotor < 2 {
		samplesPerMotor = defaultWorkspaceSamples
	}

	step := func(rng MotorRange, i int) float64 {
		return rng.Min + (rng.Max-rng.Min)*float64(i)/float64(samplesPerMotor-1)
	}

	cloud := pointcloud.NewBasicEmpty()
	kneeRange := cfg.Limits[MotorKnee]

	for i := 0; i < samplesPerMotor; i++ {
		for j := 0; j < samplesPerMotor; j++ {
			for k := 0; k < samplesPerMotor; k++ {
				angles := JointAngles{
					MotorHipAA: step(cfg.Limits[MotorHipAA], i),
					MotorHipFE: step(cfg.Limits[MotorHipFE], j),
					MotorKnee:  step(kneeRange, k),
				}
				pt := ToePosition(cfg.Geometry, leg, angles)

				fold := (angles[MotorKnee] - kneeRange.Min) / (kneeRange.Max - kneeRange.Min)
				data := pointcloud.NewColoredData(color.NRGBA{
					R: uint8(55 + 200*fold),
					G: 40,
					B: uint8(255 - 200*fold),
					A: 255,
				})
				if err := cloud.Set(pt, data); err != nil {
					return nil, err
				}
			}
		}
	}

	return cloud, nil
}
