package quadpose

import "math"

// JointAngles is the angular position of one leg's three motors in radians,
// indexed by Motor.
type JointAngles [MotorCount]float64

// Posture is the full set of motor angles for all four legs, indexed by Leg.
// It is a value type: assigning or passing a Posture copies all twelve
// angles, so a candidate can be built and discarded without touching the
// posture it was derived from.
type Posture [LegCount]JointAngles

// HomePosture returns the neutral standing posture: hips centered, thighs
// swept forward 0.7 rad and knees bent -1.4 rad so the toes sit directly
// beneath the hips.
func HomePosture() Posture {
	home := JointAngles{0, 0.7, -1.4}
	return Posture{home, home, home, home}
}

// Quantize rounds every angle to the given number of decimal places.
// Re-deriving a posture from sensed values every cycle accumulates
// floating-point error; rounding the committed posture keeps a long-running
// zero-attitude loop from slowly distorting the stance.
func (p Posture) Quantize(decimals int) Posture {
	scale := math.Pow(10, float64(decimals))
	var out Posture
	for leg := range p {
		for m := range p[leg] {
			out[leg][m] = math.Round(p[leg][m]*scale) / scale
		}
	}
	return out
}
