package quadpose

// Geometry holds the fixed link lengths and frame offsets of the robot.
// All distances are in millimeters.
type Geometry struct {
	ThighLengthMm float64 // hip flexion axis to knee axis
	ShankLengthMm float64 // knee axis to toe center
	HipOffsetMm   float64 // lateral offset from the hip-aa axis to the leg plane
	BodyLengthMm  float64 // front hip axis to hind hip axis
	BodyWidthMm   float64 // right hip axis to left hip axis
}

// MotorRange is the mechanical angular range of one motor in radians.
// Commanding a motor outside its range risks damaging the linkage.
type MotorRange struct {
	Min float64
	Max float64
}

// Config holds all configuration for the posture engine.
type Config struct {
	Geometry Geometry
	Limits   [MotorCount]MotorRange
}

// DefaultConfig returns a Config with the measured values for the A1 frame.
// Link lengths were measured from the thigh and calf STL files; motor ranges
// come from the joint descriptions in the vendor URDF.
func DefaultConfig() Config {
	return Config{
		Geometry: Geometry{
			ThighLengthMm: 200,
			ShankLengthMm: 200,
			HipOffsetMm:   80,
			BodyLengthMm:  360,
			BodyWidthMm:   200,
		},
		Limits: [MotorCount]MotorRange{
			MotorHipAA: {Min: -0.803, Max: 0.803},
			MotorHipFE: {Min: -1.047, Max: 4.189},
			MotorKnee:  {Min: -2.697, Max: -0.916},
		},
	}
}
