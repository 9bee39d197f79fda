package quadpose

// CheckPosture validates every motor angle in a posture against the
// configured ranges. The policy is all-or-nothing: a single out-of-range
// angle rejects the whole posture, so a caller never commits a stance where
// three legs moved and one stayed behind.
//
// On rejection the returned *LimitError lists every violation with the leg,
// motor, offending angle and the range it left.
func CheckPosture(limits [MotorCount]MotorRange, p Posture) error {
	var violations []LimitViolation
	for _, leg := range Legs() {
		for _, motor := range Motors() {
			angle := p[leg][motor]
			rng := limits[motor]
			if angle < rng.Min || angle > rng.Max {
				violations = append(violations, LimitViolation{
					Leg:   leg,
					Motor: motor,
					Angle: angle,
					Min:   rng.Min,
					Max:   rng.Max,
				})
			}
		}
	}
	if violations != nil {
		return &LimitError{Violations: violations}
	}
	return nil
}
