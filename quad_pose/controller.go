package quadpose

import (
	"context"
	"fmt"
)

// Actuator is the narrow boundary between the posture engine and whatever
// moves the motors: a live machine, a servo bus, or a simulator.
type Actuator interface {
	// SensedPosture reads the current angular position of all twelve motors.
	SensedPosture(ctx context.Context) (Posture, error)

	// CommandPosture commands all twelve motors as one batch. Fire and
	// forget: no acknowledgement contract is assumed.
	CommandPosture(ctx context.Context, p Posture) error
}

// Controller runs posture adjustment cycles against an actuator. A cycle is
// synchronous: it senses (or takes a reference), transforms all four legs,
// validates the result, and either commands the whole candidate or commands
// nothing. Controllers are not safe for concurrent use.
type Controller struct {
	cfg Config
	act Actuator

	committed    Posture
	hasCommitted bool
}

// NewController creates a Controller driving the given actuator.
func NewController(act Actuator, cfg *Config) *Controller {
	if cfg == nil {
		c := DefaultConfig()
		cfg = &c
	}
	return &Controller{cfg: *cfg, act: act}
}

// Adjust runs one control cycle starting from the actuator's sensed posture.
// On success the committed candidate is returned; on rejection nothing is
// commanded and the previous posture remains in force.
//
// Deriving every cycle from sensed values accumulates floating-point error
// over a long run. Callers holding an attitude for many cycles should use
// AdjustFrom with a fixed reference, or periodically quantize.
func (c *Controller) Adjust(ctx context.Context, att Attitude) (Posture, error) {
	start, err := c.act.SensedPosture(ctx)
	if err != nil {
		return Posture{}, fmt.Errorf("sense posture: %w", err)
	}
	return c.runCycle(ctx, att, start)
}

// AdjustFrom runs one control cycle starting from the supplied reference
// posture instead of sensing, so repeated adjustments against the same
// reference cannot drift.
func (c *Controller) AdjustFrom(ctx context.Context, att Attitude, reference Posture) (Posture, error) {
	return c.runCycle(ctx, att, reference)
}

// Command validates a posture and dispatches it unchanged. Used for direct
// stance changes that bypass the attitude transform.
func (c *Controller) Command(ctx context.Context, p Posture) error {
	if err := CheckPosture(c.cfg.Limits, p); err != nil {
		return err
	}
	if err := c.act.CommandPosture(ctx, p); err != nil {
		return fmt.Errorf("command posture: %w", err)
	}
	c.committed = p
	c.hasCommitted = true
	return nil
}

// Committed returns the posture from the last successful commit, and whether
// any commit has happened yet.
func (c *Controller) Committed() (Posture, bool) {
	return c.committed, c.hasCommitted
}

// Config returns a copy of the controller's configuration.
func (c *Controller) Config() Config {
	return c.cfg
}

func (c *Controller) runCycle(ctx context.Context, att Attitude, start Posture) (Posture, error) {
	candidate, err := TransformPosture(c.cfg.Geometry, start, att)
	if err != nil {
		return Posture{}, err
	}
	if err := CheckPosture(c.cfg.Limits, candidate); err != nil {
		return Posture{}, err
	}
	if err := c.act.CommandPosture(ctx, candidate); err != nil {
		return Posture{}, fmt.Errorf("command posture: %w", err)
	}
	c.committed = candidate
	c.hasCommitted = true
	return candidate, nil
}
