// Package config holds the runtime's tunable constants and loading
// precedence: struct defaults, then environment variables, then any
// keys set in viper (typically from a config file).
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/viper"
)

// Config holds the runtime's tunables. Env tags let an operator
// override any of them without a file. Only TickRateHz (through
// CurrentStepTimeMs) and LogBufferEntries are read by the commands;
// the sequencer, play-queues, and motion package use their own
// compiled-in constants with the same default values, so the other
// fields do not change their behaviour.
type Config struct {
	TickRateHz float64 `yaml:"tick_rate_hz" env:"STEINA_TICK_RATE_HZ" envDefault:"30"`

	WorkFraction float64       `yaml:"work_fraction" env:"STEINA_WORK_FRACTION" envDefault:"0.33"`
	WarpTime     time.Duration `yaml:"warp_time" env:"STEINA_WARP_TIME" envDefault:"500ms"`

	MaxNonblockingSounds int `yaml:"max_nonblocking_sounds" env:"STEINA_MAX_NONBLOCKING_SOUNDS" envDefault:"25"`

	TiltThreshold    float64 `yaml:"tilt_threshold" env:"STEINA_TILT_THRESHOLD" envDefault:"15.0"`
	CompassThreshold float64 `yaml:"compass_threshold" env:"STEINA_COMPASS_THRESHOLD" envDefault:"20.0"`

	DefaultSampleRate float64 `yaml:"default_sample_rate" env:"STEINA_DEFAULT_SAMPLE_RATE" envDefault:"48000"`

	LogBufferEntries int    `yaml:"log_buffer_entries" env:"STEINA_LOG_BUFFER_ENTRIES" envDefault:"10000"`
	LogLevel         string `yaml:"log_level" env:"STEINA_LOG_LEVEL" envDefault:"info"`

	TurboMode bool `yaml:"turbo_mode" env:"STEINA_TURBO_MODE" envDefault:"false"`
}

// CurrentStepTimeMs derives the nominal tick period in milliseconds
// from TickRateHz.
func (c Config) CurrentStepTimeMs() float64 {
	if c.TickRateHz <= 0 {
		return 1000.0 / 30.0
	}
	return 1000.0 / c.TickRateHz
}

// Default returns a Config populated with the stock tunable values.
func Default() Config {
	return Config{
		TickRateHz:           30,
		WorkFraction:         0.33,
		WarpTime:             500 * time.Millisecond,
		MaxNonblockingSounds: 25,
		TiltThreshold:        15.0,
		CompassThreshold:     20.0,
		DefaultSampleRate:    48000,
		LogBufferEntries:     10000,
		LogLevel:             "info",
		TurboMode:            false,
	}
}

// Validate checks the loaded configuration for internally-consistent values.
func (c Config) Validate() error {
	if c.TickRateHz <= 0 {
		return fmt.Errorf("tick_rate_hz must be positive, got %f", c.TickRateHz)
	}
	if c.WorkFraction <= 0 || c.WorkFraction > 1 {
		return fmt.Errorf("work_fraction must be in (0, 1], got %f", c.WorkFraction)
	}
	if c.MaxNonblockingSounds < 0 {
		return fmt.Errorf("max_nonblocking_sounds must be >= 0, got %d", c.MaxNonblockingSounds)
	}
	return nil
}

// LoadFromViper builds a Config starting from the struct's env-tagged
// defaults/environment overrides, then lets whatever keys are set in
// viper (e.g. loaded from a config file under the "steina" key) win.
func LoadFromViper() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("config: parsing environment: %w", err)
	}

	if viper.IsSet("steina.tick_rate_hz") {
		cfg.TickRateHz = viper.GetFloat64("steina.tick_rate_hz")
	}
	if viper.IsSet("steina.work_fraction") {
		cfg.WorkFraction = viper.GetFloat64("steina.work_fraction")
	}
	if viper.IsSet("steina.warp_time") {
		if d, err := time.ParseDuration(viper.GetString("steina.warp_time")); err == nil {
			cfg.WarpTime = d
		}
	}
	if viper.IsSet("steina.max_nonblocking_sounds") {
		cfg.MaxNonblockingSounds = viper.GetInt("steina.max_nonblocking_sounds")
	}
	if viper.IsSet("steina.tilt_threshold") {
		cfg.TiltThreshold = viper.GetFloat64("steina.tilt_threshold")
	}
	if viper.IsSet("steina.compass_threshold") {
		cfg.CompassThreshold = viper.GetFloat64("steina.compass_threshold")
	}
	if viper.IsSet("steina.default_sample_rate") {
		cfg.DefaultSampleRate = viper.GetFloat64("steina.default_sample_rate")
	}
	if viper.IsSet("steina.log_buffer_entries") {
		cfg.LogBufferEntries = viper.GetInt("steina.log_buffer_entries")
	}
	if viper.IsSet("steina.log_level") {
		cfg.LogLevel = viper.GetString("steina.log_level")
	}
	if viper.IsSet("steina.turbo_mode") {
		cfg.TurboMode = viper.GetBool("steina.turbo_mode")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: invalid configuration: %w", err)
	}
	return cfg, nil
}

// SetDefaults registers Default()'s values into viper so a missing
// config file still yields usable settings.
func SetDefaults() {
	d := Default()
	viper.SetDefault("steina.tick_rate_hz", d.TickRateHz)
	viper.SetDefault("steina.work_fraction", d.WorkFraction)
	viper.SetDefault("steina.warp_time", d.WarpTime.String())
	viper.SetDefault("steina.max_nonblocking_sounds", d.MaxNonblockingSounds)
	viper.SetDefault("steina.tilt_threshold", d.TiltThreshold)
	viper.SetDefault("steina.compass_threshold", d.CompassThreshold)
	viper.SetDefault("steina.default_sample_rate", d.DefaultSampleRate)
	viper.SetDefault("steina.log_buffer_entries", d.LogBufferEntries)
	viper.SetDefault("steina.log_level", d.LogLevel)
	viper.SetDefault("steina.turbo_mode", d.TurboMode)
}
