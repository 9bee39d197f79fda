package sitstay

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	quadpose "github.com/biotinker/sitstay/quad_pose"
)

func TestReferenceRoundTripsThroughDisk(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	r, _ := newTestRobot(t)
	r.RefDir = dir
	if err := Sit(ctx, r); err != nil {
		t.Fatalf("Sit failed: %v", err)
	}
	if err := SaveReference(r, "sit-ref"); err != nil {
		t.Fatalf("SaveReference failed: %v", err)
	}

	fresh, _ := newTestRobot(t)
	fresh.RefDir = dir
	if err := LoadReference(fresh, "sit-ref"); err != nil {
		t.Fatalf("LoadReference failed: %v", err)
	}

	ref, ok := fresh.Reference()
	if !ok {
		t.Fatal("no reference after load")
	}
	if ref != SitStance {
		t.Errorf("loaded reference = %v, want sit stance", ref)
	}
}

func TestLoadReferenceRejectsIllegalStance(t *testing.T) {
	dir := t.TempDir()

	// Front-left knee at zero is outside its range.
	data := []byte(`[[0,0.7,-1.4],[0,0.7,0],[0,0.7,-1.4],[0,0.7,-1.4]]`)
	if err := os.WriteFile(filepath.Join(dir, "bent.json"), data, 0o644); err != nil {
		t.Fatalf("write stance: %v", err)
	}

	r, _ := newTestRobot(t)
	r.RefDir = dir
	err := LoadReference(r, "bent")
	if !errors.Is(err, quadpose.ErrJointLimit) {
		t.Fatalf("error = %v, want ErrJointLimit", err)
	}
	if _, ok := r.Reference(); ok {
		t.Error("illegal stance was installed as reference")
	}
}

func TestSaveReferenceNeedsSession(t *testing.T) {
	r, _ := newTestRobot(t)
	r.RefDir = t.TempDir()

	if err := SaveReference(r, "nothing"); err == nil {
		t.Fatal("expected error with no reference captured")
	}
}
