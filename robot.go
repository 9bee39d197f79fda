package sitstay

import (
	"context"
	"fmt"

	quadpose "github.com/biotinker/sitstay/quad_pose"
	"go.viam.com/rdk/components/arm"
	"go.viam.com/rdk/logging"
	"go.viam.com/rdk/referenceframe"
	"go.viam.com/rdk/robot"
)

// legComponentNames maps each leg to the name of its arm component on the
// machine. Each leg is exposed as a three-joint arm in motor order hip-aa,
// hip-fe, knee.
var legComponentNames = [quadpose.LegCount]string{
	quadpose.LegFrontRight: "front-right-leg",
	quadpose.LegFrontLeft:  "front-left-leg",
	quadpose.LegHindRight:  "hind-right-leg",
	quadpose.LegHindLeft:   "hind-left-leg",
}

// Robot holds the hardware references and posture state for one quadruped.
type Robot struct {
	logger  logging.Logger
	machine robot.Robot // nil when driving a servo bus directly

	act        quadpose.Actuator
	controller *quadpose.Controller
	cfg        quadpose.Config

	// State
	state *PostureState

	// RefDir, when set, is a directory for persisting named reference
	// postures to disk. If empty, references live in memory only.
	RefDir string
}

// PostureState tracks the stance that attitude commands are applied against.
type PostureState struct {
	// Reference is the posture attitude commands are solved from. Nil until
	// a stance op or a teleop session captures one.
	Reference *quadpose.Posture

	// LastAttitude is the most recent attitude applied to the reference.
	LastAttitude quadpose.Attitude

	// AdjustmentsApplied counts attitude cycles since the reference was
	// captured.
	AdjustmentsApplied int
}

// NewRobot creates a Robot by looking up the four leg components from the
// machine. All four legs are required; NewRobot returns an error if any are
// missing. A nil config uses the stock geometry and limits.
func NewRobot(ctx context.Context, machine robot.Robot, cfg *quadpose.Config, logger logging.Logger) (*Robot, error) {
	act := &legActuator{}
	for _, leg := range quadpose.Legs() {
		legArm, err := arm.FromProvider(machine, legComponentNames[leg])
		if err != nil {
			return nil, fmt.Errorf("%s leg (%s): %w", leg, legComponentNames[leg], err)
		}
		act.legs[leg] = legArm
	}

	if cfg == nil {
		c := quadpose.DefaultConfig()
		cfg = &c
	}
	return &Robot{
		logger:     logger,
		machine:    machine,
		act:        act,
		controller: quadpose.NewController(act, cfg),
		cfg:        *cfg,
		state:      &PostureState{},
	}, nil
}

// NewServoRobot creates a Robot that drives the given actuator directly,
// with no machine connection. Used for the maestro servo bus and for
// simulators.
func NewServoRobot(act quadpose.Actuator, cfg *quadpose.Config, logger logging.Logger) *Robot {
	if cfg == nil {
		c := quadpose.DefaultConfig()
		cfg = &c
	}
	return &Robot{
		logger:     logger,
		act:        act,
		controller: quadpose.NewController(act, cfg),
		cfg:        *cfg,
		state:      &PostureState{},
	}
}

// Config returns the geometry and limits the robot was built with.
func (r *Robot) Config() quadpose.Config {
	return r.cfg
}

// Reference returns the current attitude reference, or false if none has
// been captured yet.
func (r *Robot) Reference() (quadpose.Posture, bool) {
	if r.state.Reference == nil {
		return quadpose.Posture{}, false
	}
	return *r.state.Reference, true
}

// captureReference snapshots the sensed posture as the new attitude
// reference. Sensed values are quantized to millirads so one noisy read
// does not become a permanently skewed stance.
func (r *Robot) captureReference(ctx context.Context) error {
	sensed, err := r.act.SensedPosture(ctx)
	if err != nil {
		return fmt.Errorf("sense posture: %w", err)
	}
	r.setReference(sensed.Quantize(3))
	return nil
}

// setReference installs p as the attitude reference and clears the applied
// attitude.
func (r *Robot) setReference(p quadpose.Posture) {
	r.state.Reference = &p
	r.state.LastAttitude = quadpose.Attitude{}
	r.state.AdjustmentsApplied = 0
}

// legActuator adapts the machine's four leg arms to the posture engine's
// actuator boundary.
type legActuator struct {
	legs [quadpose.LegCount]arm.Arm
}

func (a *legActuator) SensedPosture(ctx context.Context) (quadpose.Posture, error) {
	var p quadpose.Posture
	for _, leg := range quadpose.Legs() {
		inputs, err := a.legs[leg].JointPositions(ctx, nil)
		if err != nil {
			return quadpose.Posture{}, fmt.Errorf("%s leg: %w", leg, err)
		}
		if len(inputs) != quadpose.MotorCount {
			return quadpose.Posture{}, fmt.Errorf("%s leg reported %d joints: %w",
				leg, len(inputs), quadpose.ErrWrongJointCount)
		}
		copy(p[leg][:], referenceframe.InputsToFloats(inputs))
	}
	return p, nil
}

func (a *legActuator) CommandPosture(ctx context.Context, p quadpose.Posture) error {
	for _, leg := range quadpose.Legs() {
		joints := referenceframe.FloatsToInputs(p[leg][:])
		if err := a.legs[leg].MoveToJointPositions(ctx, joints, nil); err != nil {
			return fmt.Errorf("%s leg: %w", leg, err)
		}
	}
	return nil
}
