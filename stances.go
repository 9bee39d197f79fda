package sitstay

import quadpose "github.com/biotinker/sitstay/quad_pose"

// Stance joint angles tuned on the live robot on 2026-08-18.
var (
	// StandStance is the neutral standing posture. It is also the anchor
	// every attitude adjustment session starts from, so keep it identical
	// to quadpose.HomePosture unless the kinematic config changes too.
	StandStance = quadpose.HomePosture()

	// SitStance keeps the front legs near standing height while the hind
	// legs fold under the hips, tipping the body back onto the haunches.
	// The hind hip-aa splay stops the shanks rubbing the belly plate.
	// Recorded 2026-08-18.
	SitStance = quadpose.Posture{
		quadpose.LegFrontRight: {0, 0.55, -1.1},
		quadpose.LegFrontLeft:  {0, 0.55, -1.1},
		quadpose.LegHindRight:  {-0.12, 1.8, -2.5},
		quadpose.LegHindLeft:   {0.12, 1.8, -2.5},
	}

	// RestStance folds all four legs so the belly plate takes the weight.
	// Safe to cut servo power from here.
	// Recorded 2026-08-19.
	RestStance = quadpose.Posture{
		quadpose.LegFrontRight: {0, 1.6, -2.55},
		quadpose.LegFrontLeft:  {0, 1.6, -2.55},
		quadpose.LegHindRight:  {0, 1.6, -2.55},
		quadpose.LegHindLeft:   {0, 1.6, -2.55},
	}
)
