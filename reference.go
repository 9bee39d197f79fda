package sitstay

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	quadpose "github.com/biotinker/sitstay/quad_pose"
)

// SaveReference writes the active session reference stance to a JSON file
// under the robot's reference directory.
func SaveReference(r *Robot, name string) error {
	ref, ok := r.Reference()
	if !ok {
		return fmt.Errorf("no reference stance captured yet")
	}

	if err := os.MkdirAll(r.RefDir, 0o755); err != nil {
		return fmt.Errorf("create reference dir: %w", err)
	}

	data, err := json.MarshalIndent(ref, "", "  ")
	if err != nil {
		return fmt.Errorf("encode reference: %w", err)
	}

	path := filepath.Join(r.RefDir, name+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write reference: %w", err)
	}

	r.logger.Infof("Saved reference stance to %s", path)
	return nil
}

// LoadReference reads a stored stance and re-anchors the attitude session on
// it without moving the robot. The stance is limit-checked before it is
// installed so a stale or hand-edited file cannot poison later adjustments.
func LoadReference(r *Robot, name string) error {
	path := filepath.Join(r.RefDir, name+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read reference: %w", err)
	}

	var ref quadpose.Posture
	if err := json.Unmarshal(data, &ref); err != nil {
		return fmt.Errorf("decode reference %s: %w", path, err)
	}

	if err := quadpose.CheckPosture(r.cfg.Limits, ref); err != nil {
		return fmt.Errorf("stored reference %s: %w", path, err)
	}

	r.setReference(ref)
	r.logger.Infof("Loaded reference stance from %s", path)
	return nil
}
