package sitstay

import (
	"context"
	"fmt"
	"time"

	viz "github.com/viam-labs/motion-tools/client/client"
	"go.viam.com/rdk/spatialmath"

	quadpose "github.com/biotinker/sitstay/quad_pose"
)

// Monitor polls the sensed posture and logs where each toe sits in the body
// frame, flagging any joint outside its limits. When a motion-tools
// visualizer is reachable the toes are mirrored there as labelled poses; the
// first draw failure silences further attempts so an offline visualizer does
// not spam the log.
func Monitor(ctx context.Context, r *Robot) error {
	r.logger.Info("Monitoring posture (ctrl-c to stop)")

	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	vizUp := true
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Monitor stopped")
			return nil
		case <-ticker.C:
		}

		posture, err := r.act.SensedPosture(ctx)
		if err != nil {
			r.logger.Warnf("Sense failed: %v", err)
			continue
		}

		poses := make([]spatialmath.Pose, 0, quadpose.LegCount)
		names := make([]string, 0, quadpose.LegCount)
		for _, leg := range quadpose.Legs() {
			toe := toeInBodyFrame(r.cfg.Geometry, leg, posture[leg])
			r.logger.Infof("%s toe at (%.1f, %.1f, %.1f)", leg, toe.X, toe.Y, toe.Z)
			poses = append(poses, spatialmath.NewPoseFromPoint(toe))
			names = append(names, fmt.Sprintf("toe_%s", leg))
		}

		if err := quadpose.CheckPosture(r.cfg.Limits, posture); err != nil {
			r.logger.Warnf("Posture outside limits: %v", err)
		}

		if vizUp {
			if err := viz.DrawPoses(poses, names, true); err != nil {
				r.logger.Warnf("viz: could not draw toe poses (is motion-tools running?): %v", err)
				vizUp = false
			}
		}
	}
}
