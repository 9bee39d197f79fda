package quadpose

// Leg identifies one of the four legs.
type Leg int

const (
	// LegFrontRight is the front-right leg.
	LegFrontRight Leg = iota
	// LegFrontLeft is the front-left leg.
	LegFrontLeft
	// LegHindRight is the hind-right leg.
	LegHindRight
	// LegHindLeft is the hind-left leg.
	LegHindLeft

	// LegCount is the number of legs.
	LegCount = 4
)

func (l Leg) String() string {
	switch l {
	case LegFrontRight:
		return "front-right"
	case LegFrontLeft:
		return "front-left"
	case LegHindRight:
		return "hind-right"
	case LegHindLeft:
		return "hind-left"
	default:
		return "unknown"
	}
}

// Legs returns all four legs in index order.
func Legs() [LegCount]Leg {
	return [LegCount]Leg{LegFrontRight, LegFrontLeft, LegHindRight, LegHindLeft}
}

// Motor identifies one of the three motors on a leg.
type Motor int

const (
	// MotorHipAA is the hip abduction/adduction motor.
	MotorHipAA Motor = iota
	// MotorHipFE is the hip flexion/extension motor.
	MotorHipFE
	// MotorKnee is the knee motor.
	MotorKnee

	// MotorCount is the number of motors per leg.
	MotorCount = 3
)

func (m Motor) String() string {
	switch m {
	case MotorHipAA:
		return "hip-aa"
	case MotorHipFE:
		return "hip-fe"
	case MotorKnee:
		return "knee"
	default:
		return "unknown"
	}
}

// Motors returns all three motors in index order.
func Motors() [MotorCount]Motor {
	return [MotorCount]Motor{MotorHipAA, MotorHipFE, MotorKnee}
}

// legFrame carries the mirror signs that distinguish the four legs in the
// kinematics and transform formulas. lateral is +1 for right legs and -1 for
// left legs; sagittal is +1 for front legs and -1 for hind legs.
type legFrame struct {
	lateral  float64
	sagittal float64
}

var legFrames = [LegCount]legFrame{
	LegFrontRight: {lateral: 1, sagittal: 1},
	LegFrontLeft:  {lateral: -1, sagittal: 1},
	LegHindRight:  {lateral: 1, sagittal: -1},
	LegHindLeft:   {lateral: -1, sagittal: -1},
}
