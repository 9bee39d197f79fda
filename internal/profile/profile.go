// Package profile loads the robot connection profile from a YAML file.
package profile

import (
	"fmt"

	"github.com/spf13/viper"

	quadpose "github.com/biotinker/sitstay/quad_pose"
)

const (
	configName = "sitstay"
	configType = "yaml"
)

// Profile selects how the drivers reach the robot and where artifacts go.
// Set Address for a viam machine, or SerialPort for a directly attached
// servo controller.
type Profile struct {
	// Address, EntityID and APIKey identify a viam machine.
	Address  string `mapstructure:"address"`
	EntityID string `mapstructure:"entity_id"`
	APIKey   string `mapstructure:"api_key"`

	// SerialPort switches the drivers to a servo controller on a local
	// serial port instead of a viam machine.
	SerialPort string `mapstructure:"serial_port"`
	SerialBaud int    `mapstructure:"serial_baud"`

	// TeleopAddr is the listen address of the teleoperation server.
	TeleopAddr string `mapstructure:"teleop_addr"`

	// RefDir is where reference stances are saved.
	RefDir string `mapstructure:"ref_dir"`

	// Geometry overrides in millimeters. Zero values keep the stock
	// dimensions.
	ThighLengthMm float64 `mapstructure:"thigh_length_mm"`
	ShankLengthMm float64 `mapstructure:"shank_length_mm"`
	HipOffsetMm   float64 `mapstructure:"hip_offset_mm"`
	BodyLengthMm  float64 `mapstructure:"body_length_mm"`
	BodyWidthMm   float64 `mapstructure:"body_width_mm"`
}

// Load reads a profile. With an explicit path the file must exist; with an
// empty path it searches the working directory and $HOME/.config/sitstay,
// and a missing file just yields the defaults.
func Load(path string) (*Profile, error) {
	v := viper.New()
	v.SetDefault("serial_baud", 9600)
	v.SetDefault("teleop_addr", ":8090")
	v.SetDefault("ref_dir", "references")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read profile %s: %w", path, err)
		}
	} else {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/sitstay")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read profile: %w", err)
			}
			// Missing profile file is not an error; defaults apply.
		}
	}

	var p Profile
	if err := v.Unmarshal(&p); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return &p, nil
}

// PostureConfig is the kinematic config with the profile's geometry
// overrides applied.
func (p *Profile) PostureConfig() quadpose.Config {
	cfg := quadpose.DefaultConfig()
	if p.ThighLengthMm > 0 {
		cfg.Geometry.ThighLengthMm = p.ThighLengthMm
	}
	if p.ShankLengthMm > 0 {
		cfg.Geometry.ShankLengthMm = p.ShankLengthMm
	}
	if p.HipOffsetMm > 0 {
		cfg.Geometry.HipOffsetMm = p.HipOffsetMm
	}
	if p.BodyLengthMm > 0 {
		cfg.Geometry.BodyLengthMm = p.BodyLengthMm
	}
	if p.BodyWidthMm > 0 {
		cfg.Geometry.BodyWidthMm = p.BodyWidthMm
	}
	return cfg
}
