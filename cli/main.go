package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/biotinker/sitstay"
	"github.com/biotinker/sitstay/internal/profile"
	"github.com/biotinker/sitstay/maestro"
	quadpose "github.com/biotinker/sitstay/quad_pose"

	"go.viam.com/rdk/logging"
	"go.viam.com/rdk/robot/client"
	rdkutils "go.viam.com/rdk/utils"
	"go.viam.com/utils/rpc"
)

var steps = map[string]func(context.Context, *sitstay.Robot) error{
	"stand":    sitstay.Stand,
	"sit":      sitstay.Sit,
	"rest":     sitstay.Rest,
	"level":    sitstay.Level,
	"selftest": sitstay.SelfTest,
	"monitor":  sitstay.Monitor,
}

const validSteps = "stand, sit, rest, level, selftest, monitor, attitude, workspace, saveref, loadref"

func main() {
	profilePath := flag.String("profile", "", "path to robot profile YAML (default: search for sitstay.yaml)")
	step := flag.String("step", "", "step to run: "+validSteps)

	rollDeg := flag.Float64("roll", 0, "attitude roll in degrees")
	pitchDeg := flag.Float64("pitch", 0, "attitude pitch in degrees")
	yawDeg := flag.Float64("yaw", 0, "attitude yaw in degrees")
	height := flag.Float64("height", 0, "attitude height offset in mm")

	legName := flag.String("leg", "front-right", "leg for the workspace step")
	samples := flag.Int("samples", 0, "workspace samples per motor (0 = default)")
	out := flag.String("out", "workspace.pcd", "output PCD path for the workspace step")

	refName := flag.String("name", "default", "reference name for saveref/loadref")
	flag.Parse()

	logger := logging.NewLogger("sitstay-cli")

	if *step == "" {
		logger.Fatal("-step flag is required; valid steps: " + validSteps)
	}

	// Validate step name; attitude, workspace and the reference steps take
	// extra flags and are dispatched separately.
	switch *step {
	case "attitude", "workspace", "saveref", "loadref":
	default:
		if _, ok := steps[*step]; !ok {
			logger.Fatalf("unknown step %q; valid steps: %s", *step, validSteps)
		}
	}

	prof, err := profile.Load(*profilePath)
	if err != nil {
		logger.Fatal(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	r, cleanup, err := connect(ctx, prof, logger)
	if err != nil {
		logger.Fatal(err)
	}
	defer cleanup()

	logger.Infof("=== Running step: %s ===", *step)

	switch *step {
	case "attitude":
		err = sitstay.SetAttitude(ctx, r, quadpose.Attitude{
			Roll:     rdkutils.DegToRad(*rollDeg),
			Pitch:    rdkutils.DegToRad(*pitchDeg),
			Yaw:      rdkutils.DegToRad(*yawDeg),
			HeightMm: *height,
		})
	case "workspace":
		var leg quadpose.Leg
		leg, err = parseLeg(*legName)
		if err == nil {
			err = sitstay.ExportWorkspace(ctx, r, leg, *samples, *out)
		}
	case "saveref":
		err = sitstay.SaveReference(r, *refName)
	case "loadref":
		err = sitstay.LoadReference(r, *refName)
	default:
		err = steps[*step](ctx, r)
	}
	if err != nil {
		logger.Fatal(err)
	}
	logger.Infof("Step %s completed successfully", *step)
}

func parseLeg(name string) (quadpose.Leg, error) {
	for _, leg := range quadpose.Legs() {
		if leg.String() == name {
			return leg, nil
		}
	}
	return 0, fmt.Errorf("unknown leg %q (want front-right, front-left, hind-right or hind-left)", name)
}

// connect builds the robot from the profile, preferring a direct servo bus
// when one is configured.
func connect(ctx context.Context, prof *profile.Profile, logger logging.Logger) (*sitstay.Robot, func(), error) {
	cfg := prof.PostureConfig()

	if prof.SerialPort != "" {
		bus, err := maestro.Open(prof.SerialPort, prof.SerialBaud)
		if err != nil {
			return nil, nil, err
		}
		act := maestro.NewActuator(bus, nil)
		// Conservative slew so stance changes don't snap the chassis.
		if err := act.ConfigureSlew(30, 15); err != nil {
			bus.Close()
			return nil, nil, fmt.Errorf("configure servo slew: %w", err)
		}
		logger.Infof("Connected to servo bus on %s", prof.SerialPort)

		r := sitstay.NewServoRobot(act, &cfg, logger)
		r.RefDir = prof.RefDir
		return r, func() { bus.Close() }, nil
	}

	if prof.Address == "" {
		return nil, nil, errors.New("profile needs address or serial_port")
	}

	machine, err := client.New(
		ctx,
		prof.Address,
		logger,
		client.WithDialOptions(rpc.WithEntityCredentials(
			prof.EntityID,
			rpc.Credentials{
				Type:    rpc.CredentialsTypeAPIKey,
				Payload: prof.APIKey,
			})),
	)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Connected to robot")

	r, err := sitstay.NewRobot(ctx, machine, &cfg, logger)
	if err != nil {
		machine.Close(context.Background())
		return nil, nil, err
	}
	r.RefDir = prof.RefDir
	return r, func() { machine.Close(context.Background()) }, nil
}
