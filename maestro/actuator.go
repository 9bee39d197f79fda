package maestro

import (
	"context"
	"fmt"
	"math"

	quadpose "github.com/biotinker/sitstay/quad_pose"
)

// ChannelCount is the number of servo channels the quadruped occupies.
const ChannelCount = quadpose.LegCount * quadpose.MotorCount

// Default pulse range, matching the controller's factory channel settings.
const (
	defaultMinQuarterUs = 3968
	defaultMaxQuarterUs = 8000
)

// Channel returns the controller channel a joint is wired to. Wiring is leg
// major: front-right hip-aa on channel 0 through hind-left knee on 11.
func Channel(leg quadpose.Leg, motor quadpose.Motor) uint8 {
	return uint8(int(leg)*quadpose.MotorCount + int(motor))
}

// Calibration maps one joint's angle in radians onto a servo pulse range.
type Calibration struct {
	// CenterRad is the joint angle at the middle of the pulse range.
	CenterRad float64
	// QuarterUsPerRad scales radians to quarter microseconds of pulse
	// width. Negative values reverse the servo's direction.
	QuarterUsPerRad float64
	// MinQuarterUs and MaxQuarterUs bound every commanded pulse.
	MinQuarterUs uint16
	MaxQuarterUs uint16
}

func (c Calibration) mid() float64 {
	return (float64(c.MinQuarterUs) + float64(c.MaxQuarterUs)) / 2
}

// target converts a joint angle to a clamped pulse target.
func (c Calibration) target(angle float64) uint16 {
	raw := math.Round(c.mid() + (angle-c.CenterRad)*c.QuarterUsPerRad)
	if raw < float64(c.MinQuarterUs) {
		return c.MinQuarterUs
	}
	if raw > float64(c.MaxQuarterUs) {
		return c.MaxQuarterUs
	}
	return uint16(raw)
}

// angle converts a pulse reading back to a joint angle.
func (c Calibration) angle(target uint16) float64 {
	return c.CenterRad + (float64(target)-c.mid())/c.QuarterUsPerRad
}

// DefaultCalibrations spreads each joint's mechanical range across the full
// default pulse range, center angle at center pulse. Builds with reversed or
// offset servos override the affected channels.
func DefaultCalibrations(limits [quadpose.MotorCount]quadpose.MotorRange) [ChannelCount]Calibration {
	var cal [ChannelCount]Calibration
	for _, leg := range quadpose.Legs() {
		for _, motor := range quadpose.Motors() {
			lim := limits[motor]
			cal[Channel(leg, motor)] = Calibration{
				CenterRad:       (lim.Min + lim.Max) / 2,
				QuarterUsPerRad: (defaultMaxQuarterUs - defaultMinQuarterUs) / (lim.Max - lim.Min),
				MinQuarterUs:    defaultMinQuarterUs,
				MaxQuarterUs:    defaultMaxQuarterUs,
			}
		}
	}
	return cal
}

// Actuator adapts the bus to the posture controller's actuator contract.
type Actuator struct {
	bus *Bus
	cal [ChannelCount]Calibration
}

// NewActuator wraps a bus. A nil calibration uses DefaultCalibrations for
// the stock joint limits.
func NewActuator(bus *Bus, cal *[ChannelCount]Calibration) *Actuator {
	a := &Actuator{bus: bus}
	if cal != nil {
		a.cal = *cal
	} else {
		a.cal = DefaultCalibrations(quadpose.DefaultConfig().Limits)
	}
	return a
}

// ConfigureSlew applies one speed and acceleration limit to every channel.
// Conservative limits keep stance changes from snapping the chassis.
func (a *Actuator) ConfigureSlew(speed, accel uint16) error {
	for ch := uint8(0); ch < ChannelCount; ch++ {
		if err := a.bus.SetSpeed(ch, speed); err != nil {
			return err
		}
		if err := a.bus.SetAcceleration(ch, accel); err != nil {
			return err
		}
	}
	return nil
}

// CommandPosture converts all twelve joint angles to pulse targets and sends
// them in a single multi-target frame, which the controller applies as a
// unit.
func (a *Actuator) CommandPosture(ctx context.Context, p quadpose.Posture) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var targets [ChannelCount]uint16
	for _, leg := range quadpose.Legs() {
		for _, motor := range quadpose.Motors() {
			ch := Channel(leg, motor)
			targets[ch] = a.cal[ch].target(p[leg][motor])
		}
	}

	if err := a.bus.SetMultipleTargets(0, targets[:]); err != nil {
		return fmt.Errorf("command servo targets: %w", err)
	}
	return nil
}

// SensedPosture reads every channel's pulse position back into joint angles.
// The controller reports zero for a channel that has never been commanded,
// which cannot be decoded to an angle and is reported as an error.
func (a *Actuator) SensedPosture(ctx context.Context) (quadpose.Posture, error) {
	var p quadpose.Posture
	for _, leg := range quadpose.Legs() {
		for _, motor := range quadpose.Motors() {
			if err := ctx.Err(); err != nil {
				return quadpose.Posture{}, err
			}

			ch := Channel(leg, motor)
			raw, err := a.bus.Position(ch)
			if err != nil {
				return quadpose.Posture{}, fmt.Errorf("%s %s: %w", leg, motor, err)
			}
			if raw == 0 {
				return quadpose.Posture{}, fmt.Errorf("%s %s on channel %d is not energized", leg, motor, ch)
			}
			p[leg][motor] = a.cal[ch].angle(raw)
		}
	}
	return p, nil
}
