package sitstay

import (
	"context"
	"fmt"

	quadpose "github.com/biotinker/sitstay/quad_pose"
)

// commandStance validates and dispatches a recorded stance, then re-anchors
// the attitude session on it so later adjustments derive from the new pose.
func commandStance(ctx context.Context, r *Robot, name string, stance quadpose.Posture) error {
	r.logger.Infof("moving to %s stance", name)
	if err := r.controller.Command(ctx, stance); err != nil {
		return fmt.Errorf("%s stance: %w", name, err)
	}
	r.setReference(stance)
	return nil
}

// Stand moves the robot to the neutral standing stance.
func Stand(ctx context.Context, r *Robot) error {
	return commandStance(ctx, r, "stand", StandStance)
}

// Sit lowers the haunches onto the folded hind legs.
func Sit(ctx context.Context, r *Robot) error {
	return commandStance(ctx, r, "sit", SitStance)
}

// Rest folds all four legs under the belly. Servo power can be cut safely
// once this completes.
func Rest(ctx context.Context, r *Robot) error {
	return commandStance(ctx, r, "rest", RestStance)
}
