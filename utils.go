package sitstay

import (
	"fmt"
	"os"

	"github.com/golang/geo/r3"

	"go.viam.com/rdk/pointcloud"

	quadpose "github.com/biotinker/sitstay/quad_pose"
)

// toeInBodyFrame places a leg's toe in the body-center frame by adding the
// hip offset to the hip-frame forward kinematics.
func toeInBodyFrame(g quadpose.Geometry, leg quadpose.Leg, j quadpose.JointAngles) r3.Vector {
	return quadpose.ToePosition(g, leg, j).Add(quadpose.HipPosition(g, leg))
}

// savePointCloudToPCD writes a point cloud to a PCD file in binary format.
func savePointCloudToPCD(cloud pointcloud.PointCloud, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer file.Close()

	if err := pointcloud.ToPCD(cloud, file, pointcloud.PCDBinary); err != nil {
		return fmt.Errorf("write PCD: %w", err)
	}

	return nil
}
