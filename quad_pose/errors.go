package quadpose

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnreachableTarget is returned when an inverse kinematics target lies
	// outside the leg's workspace.
	ErrUnreachableTarget = errors.New("target outside leg workspace")

	// ErrJointLimit is returned when a candidate posture places at least one
	// motor outside its mechanical range. Use errors.As with *LimitError to
	// inspect the individual violations.
	ErrJointLimit = errors.New("joint limit exceeded")

	// ErrWrongJointCount is returned when an actuator reports a leg with a
	// number of joint values other than three.
	ErrWrongJointCount = errors.New("leg must have exactly three joint values")
)

// LimitViolation records one motor angle that fell outside its range.
type LimitViolation struct {
	Leg   Leg
	Motor Motor
	Angle float64
	Min   float64
	Max   float64
}

func (v LimitViolation) String() string {
	return fmt.Sprintf("%s %s: %.4f rad outside [%.3f, %.3f]", v.Leg, v.Motor, v.Angle, v.Min, v.Max)
}

// LimitError reports every violation found in a rejected posture.
type LimitError struct {
	Violations []LimitViolation
}

func (e *LimitError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	return fmt.Sprintf("%v: %s", ErrJointLimit, strings.Join(parts, "; "))
}

func (e *LimitError) Unwrap() error {
	return ErrJointLimit
}
