// Package maestro drives the robot's twelve joint servos through a Pololu
// Maestro controller using its compact serial protocol.
package maestro

import (
	"fmt"
	"io"
	"strings"

	"github.com/tarm/serial"
)

// Compact protocol command bytes.
const (
	cmdSetTarget          = 0x84
	cmdSetSpeed           = 0x87
	cmdSetAcceleration    = 0x89
	cmdGetPosition        = 0x90
	cmdGetMovingState     = 0x93
	cmdSetMultipleTargets = 0x9f
	cmdGetErrors          = 0xa1
	cmdGoHome             = 0xa2
)

// Bus is a connection to a Maestro controller. Targets and positions are in
// quarter microseconds of pulse width; a target of zero de-energizes the
// servo.
type Bus struct {
	port io.ReadWriteCloser
}

// Open connects to the controller on the named serial port.
func Open(name string, baud int) (*Bus, error) {
	port, err := serial.OpenPort(&serial.Config{Name: name, Baud: baud})
	if err != nil {
		return nil, fmt.Errorf("open maestro port %s: %w", name, err)
	}
	return NewBus(port), nil
}

// NewBus wraps an already-open port.
func NewBus(port io.ReadWriteCloser) *Bus {
	return &Bus{port: port}
}

// Close releases the serial port.
func (b *Bus) Close() error {
	return b.port.Close()
}

// lo7 and hi7 split a 14-bit value into the protocol's 7-bit data bytes.
func lo7(v uint16) byte { return byte(v & 0x7f) }
func hi7(v uint16) byte { return byte((v >> 7) & 0x7f) }

func (b *Bus) send(frame []byte) error {
	if _, err := b.port.Write(frame); err != nil {
		return fmt.Errorf("write maestro command 0x%02x: %w", frame[0], err)
	}
	return nil
}

// SetTarget commands one channel to a pulse width target.
func (b *Bus) SetTarget(channel uint8, target uint16) error {
	return b.send([]byte{cmdSetTarget, channel, lo7(target), hi7(target)})
}

// SetMultipleTargets commands a contiguous block of channels starting at
// first, applied by the controller as a unit.
func (b *Bus) SetMultipleTargets(first uint8, targets []uint16) error {
	frame := make([]byte, 0, 3+2*len(targets))
	frame = append(frame, cmdSetMultipleTargets, byte(len(targets)), first)
	for _, t := range targets {
		frame = append(frame, lo7(t), hi7(t))
	}
	return b.send(frame)
}

// SetSpeed limits a channel's slew rate in quarter microseconds per 10ms.
// Zero removes the limit.
func (b *Bus) SetSpeed(channel uint8, speed uint16) error {
	return b.send([]byte{cmdSetSpeed, channel, lo7(speed), hi7(speed)})
}

// SetAcceleration limits how fast a channel's speed ramps, 0 to 255.
func (b *Bus) SetAcceleration(channel uint8, accel uint16) error {
	return b.send([]byte{cmdSetAcceleration, channel, lo7(accel), hi7(accel)})
}

// Position reads back a channel's current pulse width.
func (b *Bus) Position(channel uint8) (uint16, error) {
	if err := b.send([]byte{cmdGetPosition, channel}); err != nil {
		return 0, err
	}
	var buf [2]byte
	if _, err := io.ReadFull(b.port, buf[:]); err != nil {
		return 0, fmt.Errorf("read channel %d position: %w", channel, err)
	}
	return uint16(buf[0]) | uint16(buf[1])<<8, nil
}

// Moving reports whether any channel is still slewing toward its target.
func (b *Bus) Moving() (bool, error) {
	if err := b.send([]byte{cmdGetMovingState}); err != nil {
		return false, err
	}
	var buf [1]byte
	if _, err := io.ReadFull(b.port, buf[:]); err != nil {
		return false, fmt.Errorf("read moving state: %w", err)
	}
	return buf[0] != 0, nil
}

// Errors reads and clears the controller's error register, returning a
// decoded error or nil when the register is clear.
func (b *Bus) Errors() error {
	if err := b.send([]byte{cmdGetErrors}); err != nil {
		return err
	}
	var buf [2]byte
	if _, err := io.ReadFull(b.port, buf[:]); err != nil {
		return fmt.Errorf("read error register: %w", err)
	}
	return decodeErrors(uint16(buf[0])&0x7f | (uint16(buf[1])&0x7f)<<8)
}

// GoHome sends every channel to its configured home position.
func (b *Bus) GoHome() error {
	return b.send([]byte{cmdGoHome})
}

var errorBitNames = []string{
	"serial signal error",          // bit 0
	"serial overrun error",         // bit 1
	"serial buffer full",           // bit 2
	"serial crc error",             // bit 3
	"serial protocol error",        // bit 4
	"serial timeout",               // bit 5
	"script stack error",           // bit 6
	"script call stack error",      // bit 7
	"script program counter error", // bit 8
}

func decodeErrors(bits uint16) error {
	if bits == 0 {
		return nil
	}
	var s []string
	for i, name := range errorBitNames {
		if bits&(1<<i) != 0 {
			s = append(s, name)
		}
	}
	if len(s) == 0 {
		return fmt.Errorf("unknown controller error 0x%04x", bits)
	}
	return fmt.Errorf("controller reports: %s", strings.Join(s, ", "))
}
