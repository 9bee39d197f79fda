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

	"go.viam.com/rdk/logging"
	"go.viam.com/rdk/robot/client"
	"go.viam.com/utils/rpc"
)

func main() {
	profilePath := flag.String("profile", "", "path to robot profile YAML (default: search for sitstay.yaml)")
	addr := flag.String("addr", "", "teleop listen address (overrides profile)")
	flag.Parse()

	logger := logging.NewDebugLogger("sitstay")

	prof, err := profile.Load(*profilePath)
	if err != nil {
		logger.Fatal(err)
	}
	if *addr != "" {
		prof.TeleopAddr = *addr
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	r, cleanup, err := connect(ctx, prof, logger)
	if err != nil {
		logger.Fatal(err)
	}
	defer cleanup()

	// Stand first so teleop sessions have a sane stance to anchor on.
	if err := sitstay.Stand(ctx, r); err != nil {
		logger.Fatal(err)
	}

	if err := sitstay.NewTeleopServer(r).ListenAndServe(ctx, prof.TeleopAddr); err != nil {
		logger.Fatal(err)
	}
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
	logger.Info("Resources:", machine.ResourceNames())

	r, err := sitstay.NewRobot(ctx, machine, &cfg, logger)
	if err != nil {
		machine.Close(context.Background())
		return nil, nil, err
	}
	r.RefDir = prof.RefDir
	return r, func() { machine.Close(context.Background()) }, nil
}
