package maestro

import (
	"bytes"
	"context"
	"math"
	"strings"
	"testing"

	quadpose "github.com/biotinker/sitstay/quad_pose"
)

// fakePort records written frames and serves scripted read bytes.
type fakePort struct {
	wrote  bytes.Buffer
	reads  bytes.Buffer
	closed bool
}

func (f *fakePort) Write(p []byte) (int, error) { return f.wrote.Write(p) }
func (f *fakePort) Read(p []byte) (int, error)  { return f.reads.Read(p) }
func (f *fakePort) Close() error                { f.closed = true; return nil }

func TestSetTargetFrame(t *testing.T) {
	port := &fakePort{}
	bus := NewBus(port)

	if err := bus.SetTarget(3, 6000); err != nil {
		t.Fatalf("SetTarget failed: %v", err)
	}

	want := []byte{0x84, 3, 0x70, 0x2e}
	if !bytes.Equal(port.wrote.Bytes(), want) {
		t.Errorf("frame = % x, want % x", port.wrote.Bytes(), want)
	}
}

func TestSetMultipleTargetsFrame(t *testing.T) {
	port := &fakePort{}
	bus := NewBus(port)

	if err := bus.SetMultipleTargets(2, []uint16{5000, 6000, 7000}); err != nil {
		t.Fatalf("SetMultipleTargets failed: %v", err)
	}

	want := []byte{
		0x9f, 3, 2,
		0x08, 0x27, // 5000
		0x70, 0x2e, // 6000
		0x58, 0x36, // 7000
	}
	if !bytes.Equal(port.wrote.Bytes(), want) {
		t.Errorf("frame = % x, want % x", port.wrote.Bytes(), want)
	}
}

func TestPositionReadsLittleEndian(t *testing.T) {
	port := &fakePort{}
	port.reads.Write([]byte{0x70, 0x17})
	bus := NewBus(port)

	pos, err := bus.Position(5)
	if err != nil {
		t.Fatalf("Position failed: %v", err)
	}
	if pos != 6000 {
		t.Errorf("position = %d, want 6000", pos)
	}

	wantReq := []byte{0x90, 5}
	if !bytes.Equal(port.wrote.Bytes(), wantReq) {
		t.Errorf("request = % x, want % x", port.wrote.Bytes(), wantReq)
	}
}

func TestErrorsDecodesBitmap(t *testing.T) {
	port := &fakePort{}
	port.reads.Write([]byte{0x21, 0x00}) // bits 0 and 5
	bus := NewBus(port)

	err := bus.Errors()
	if err == nil {
		t.Fatal("expected a decoded controller error")
	}
	for _, want := range []string{"serial signal error", "serial timeout"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
}

func TestErrorsClearRegisterIsNil(t *testing.T) {
	port := &fakePort{}
	port.reads.Write([]byte{0x00, 0x00})
	bus := NewBus(port)

	if err := bus.Errors(); err != nil {
		t.Errorf("clear register decoded to error: %v", err)
	}
}

func TestGoHomeFrame(t *testing.T) {
	port := &fakePort{}
	bus := NewBus(port)

	if err := bus.GoHome(); err != nil {
		t.Fatalf("GoHome failed: %v", err)
	}
	if !bytes.Equal(port.wrote.Bytes(), []byte{0xa2}) {
		t.Errorf("frame = % x, want a2", port.wrote.Bytes())
	}
}

func TestChannelLayoutIsLegMajor(t *testing.T) {
	cases := []struct {
		leg   quadpose.Leg
		motor quadpose.Motor
		want  uint8
	}{
		{quadpose.LegFrontRight, quadpose.MotorHipAA, 0},
		{quadpose.LegFrontRight, quadpose.MotorKnee, 2},
		{quadpose.LegFrontLeft, quadpose.MotorHipAA, 3},
		{quadpose.LegHindRight, quadpose.MotorHipFE, 7},
		{quadpose.LegHindLeft, quadpose.MotorKnee, 11},
	}
	for _, tc := range cases {
		if got := Channel(tc.leg, tc.motor); got != tc.want {
			t.Errorf("Channel(%s, %s) = %d, want %d", tc.leg, tc.motor, got, tc.want)
		}
	}
}

func TestCalibrationRoundTrip(t *testing.T) {
	limits := quadpose.DefaultConfig().Limits
	cal := DefaultCalibrations(limits)

	for _, motor := range quadpose.Motors() {
		lim := limits[motor]
		c := cal[Channel(quadpose.LegFrontRight, motor)]

		// Pulse quantization bounds the roundtrip error at half a
		// quarter microsecond.
		maxErr := 0.5 / math.Abs(c.QuarterUsPerRad)

		for _, frac := range []float64{0, 0.25, 0.5, 0.75, 1} {
			angle := lim.Min + frac*(lim.Max-lim.Min)
			back := c.angle(c.target(angle))
			if math.Abs(back-angle) > maxErr {
				t.Errorf("%s angle %.4f roundtripped to %.4f (max err %.5f)",
					motor, angle, back, maxErr)
			}
		}
	}
}

func TestCalibrationCenterIsMidPulse(t *testing.T) {
	cal := DefaultCalibrations(quadpose.DefaultConfig().Limits)
	c := cal[Channel(quadpose.LegFrontRight, quadpose.MotorHipAA)]

	// hip-aa limits are symmetric about zero, so zero must land exactly on
	// the mid pulse.
	if got := c.target(0); got != 5984 {
		t.Errorf("center target = %d, want 5984", got)
	}
}

func TestCalibrationClampsOutOfRangeAngles(t *testing.T) {
	cal := DefaultCalibrations(quadpose.DefaultConfig().Limits)
	c := cal[Channel(quadpose.LegFrontRight, quadpose.MotorKnee)]

	if got := c.target(10); got != c.MaxQuarterUs {
		t.Errorf("target(10) = %d, want clamp to %d", got, c.MaxQuarterUs)
	}
	if got := c.target(-10); got != c.MinQuarterUs {
		t.Errorf("target(-10) = %d, want clamp to %d", got, c.MinQuarterUs)
	}
}

func TestCommandPostureSendsOneFrame(t *testing.T) {
	port := &fakePort{}
	act := NewActuator(NewBus(port), nil)

	if err := act.CommandPosture(context.Background(), quadpose.HomePosture()); err != nil {
		t.Fatalf("CommandPosture failed: %v", err)
	}

	frame := port.wrote.Bytes()
	if len(frame) != 3+2*ChannelCount {
		t.Fatalf("frame length = %d, want %d", len(frame), 3+2*ChannelCount)
	}
	if frame[0] != 0x9f || frame[1] != ChannelCount || frame[2] != 0 {
		t.Errorf("frame header = % x, want 9f 0c 00", frame[:3])
	}

	// Channel 0 is front-right hip-aa at angle 0, which is the exact mid
	// pulse 5984.
	if frame[3] != 0x60 || frame[4] != 0x2e {
		t.Errorf("channel 0 bytes = % x, want 60 2e", frame[3:5])
	}
}

func TestSensedPostureRoundTrip(t *testing.T) {
	stance := quadpose.HomePosture()
	stance[quadpose.LegFrontLeft] = quadpose.JointAngles{-0.3, 1.1, -1.9}

	cal := DefaultCalibrations(quadpose.DefaultConfig().Limits)
	port := &fakePort{}
	for _, leg := range quadpose.Legs() {
		for _, motor := range quadpose.Motors() {
			target := cal[Channel(leg, motor)].target(stance[leg][motor])
			port.reads.Write([]byte{byte(target & 0xff), byte(target >> 8)})
		}
	}

	act := NewActuator(NewBus(port), nil)
	sensed, err := act.SensedPosture(context.Background())
	if err != nil {
		t.Fatalf("SensedPosture failed: %v", err)
	}

	for _, leg := range quadpose.Legs() {
		for _, motor := range quadpose.Motors() {
			c := cal[Channel(leg, motor)]
			maxErr := 0.5 / math.Abs(c.QuarterUsPerRad)
			if diff := math.Abs(sensed[leg][motor] - stance[leg][motor]); diff > maxErr {
				t.Errorf("%s %s sensed %.4f, want %.4f within %.5f",
					leg, motor, sensed[leg][motor], stance[leg][motor], maxErr)
			}
		}
	}
}

func TestSensedPostureRejectsUnenergizedChannel(t *testing.T) {
	port := &fakePort{}
	port.reads.Write([]byte{0x00, 0x00})

	act := NewActuator(NewBus(port), nil)
	_, err := act.SensedPosture(context.Background())
	if err == nil {
		t.Fatal("expected error for unenergized channel")
	}
	if !strings.Contains(err.Error(), "not energized") {
		t.Errorf("error = %q, want mention of unenergized channel", err)
	}
}
