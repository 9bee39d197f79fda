package sitstay

import (
	"context"
	"fmt"
	"time"

	quadpose "github.com/biotinker/sitstay/quad_pose"
)

// Sweep magnitudes for the self-test. Chosen so every endpoint solves well
// inside the joint limits from the standing stance.
const (
	selfTestRollMax   = 0.25
	selfTestPitchMax  = 0.25
	selfTestYawMax    = 0.3
	selfTestHeightMax = 40.0
)

// selfTestDwell is how long the body holds each sweep endpoint. Tests drop
// it to zero.
var selfTestDwell = 400 * time.Millisecond

// SelfTest drives the attitude envelope one axis at a time from the standing
// stance, then levels out. The toes keep their stance footprint throughout,
// so it is safe to run with the robot on the ground.
func SelfTest(ctx context.Context, r *Robot) error {
	r.logger.Info("Starting posture self-test")

	steps := []struct {
		name string
		fn   func(context.Context, *Robot) error
	}{
		{"Stand", Stand},
		{"RollSweep", RollSweep},
		{"PitchSweep", PitchSweep},
		{"YawSweep", YawSweep},
		{"HeightSweep", HeightSweep},
		{"Level", Level},
	}

	for _, step := range steps {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		r.logger.Infof("=== %s ===", step.name)
		if err := step.fn(ctx, r); err != nil {
			return fmt.Errorf("%s: %w", step.name, err)
		}
	}

	r.logger.Infof("Self-test complete: %d adjustments applied", r.state.AdjustmentsApplied)
	return nil
}

// RollSweep rocks the body side to side about the stance footprint.
func RollSweep(ctx context.Context, r *Robot) error {
	return sweepAttitude(ctx, r, "roll", selfTestRollMax, func(v float64) quadpose.Attitude {
		return quadpose.Attitude{Roll: v}
	})
}

// PitchSweep tips the body nose-down and nose-up.
func PitchSweep(ctx context.Context, r *Robot) error {
	return sweepAttitude(ctx, r, "pitch", selfTestPitchMax, func(v float64) quadpose.Attitude {
		return quadpose.Attitude{Pitch: v}
	})
}

// YawSweep twists the body over the stance footprint.
func YawSweep(ctx context.Context, r *Robot) error {
	return sweepAttitude(ctx, r, "yaw", selfTestYawMax, func(v float64) quadpose.Attitude {
		return quadpose.Attitude{Yaw: v}
	})
}

// HeightSweep raises and lowers the body at level attitude.
func HeightSweep(ctx context.Context, r *Robot) error {
	return sweepAttitude(ctx, r, "height", selfTestHeightMax, func(v float64) quadpose.Attitude {
		return quadpose.Attitude{HeightMm: v}
	})
}

// sweepAttitude walks one attitude axis out to both extremes and back,
// holding each endpoint for the dwell period.
func sweepAttitude(ctx context.Context, r *Robot, name string, max float64, attFor func(float64) quadpose.Attitude) error {
	for _, frac := range []float64{0.5, 1, 0, -0.5, -1, 0} {
		if err := SetAttitude(ctx, r, attFor(frac*max)); err != nil {
			return fmt.Errorf("%s %+.3f: %w", name, frac*max, err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(selfTestDwell):
		}
	}
	return nil
}
