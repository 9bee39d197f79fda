package sitstay

import (
	"context"
	"fmt"

	quadpose "github.com/biotinker/sitstay/quad_pose"
)

// SetAttitude re-poses the body at the given attitude relative to the
// session's reference stance. The first adjustment after a stance change
// (or robot start) senses the live posture and anchors the session on it;
// every later adjustment re-derives from that same anchor, so holding a
// slider at +0.2 rad does not creep the way chaining sensed postures would.
func SetAttitude(ctx context.Context, r *Robot, att quadpose.Attitude) error {
	if r.state.Reference == nil {
		if err := r.captureReference(ctx); err != nil {
			return fmt.Errorf("anchor attitude session: %w", err)
		}
	}
	if _, err := r.controller.AdjustFrom(ctx, att, *r.state.Reference); err != nil {
		return fmt.Errorf("set attitude: %w", err)
	}
	r.state.LastAttitude = att
	r.state.AdjustmentsApplied++
	r.logger.Infof("attitude yaw=%.3f pitch=%.3f roll=%.3f height=%.1fmm (adjustment %d)",
		att.Yaw, att.Pitch, att.Roll, att.HeightMm, r.state.AdjustmentsApplied)
	return nil
}

// Level zeroes the body attitude against the session reference. With no
// session open it anchors one on the live posture first, which makes it a
// safe first command after connecting to an already-standing robot.
func Level(ctx context.Context, r *Robot) error {
	return SetAttitude(ctx, r, quadpose.Attitude{})
}
