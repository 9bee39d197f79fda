package sitstay

import (
	"context"
	"fmt"

	viz "github.com/viam-labs/motion-tools/client/client"

	quadpose "github.com/biotinker/sitstay/quad_pose"
)

// ExportWorkspace samples the reachable toe workspace of one leg, writes it
// to a binary PCD file, and mirrors it to the motion-tools visualizer when
// one is reachable.
func ExportWorkspace(ctx context.Context, r *Robot, leg quadpose.Leg, samples int, path string) error {
	cloud, err := quadpose.SampleWorkspace(r.cfg, leg, samples)
	if err != nil {
		return fmt.Errorf("sample %s workspace: %w", leg, err)
	}

	if err := savePointCloudToPCD(cloud, path); err != nil {
		return fmt.Errorf("save %s workspace: %w", leg, err)
	}
	r.logger.Infof("Saved %s workspace to %s (%d points)", leg, path, cloud.Size())

	if err := viz.DrawPointCloud(fmt.Sprintf("workspace_%s", leg), cloud, nil); err != nil {
		r.logger.Warnf("viz: could not draw workspace (is motion-tools running?): %v", err)
	}

	return nil
}
