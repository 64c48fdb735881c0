// Package config loads STFT engine settings from defaults, an optional YAML
// file, STFT_ environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-stft/dsp/fft"
	"github.com/cwbudde/algo-stft/dsp/stft"
	"github.com/cwbudde/algo-stft/dsp/window"
)

// EnvPrefix is prepended to every environment variable, e.g. STFT_WINDOW_SIZE.
const EnvPrefix = "STFT"

// Supported transform backends.
const (
	BackendAlgoFFT = "algo-fft"
	BackendGonum   = "gonum"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid value")

// Config holds the analysis settings.
type Config struct {
	Window     window.Type `mapstructure:"window" yaml:"window"`
	WindowSize int         `mapstructure:"window_size" yaml:"window_size"`
	StepSize   int         `mapstructure:"step_size" yaml:"step_size"`
	// 0 means same as WindowSize.
	FFTSize    int     `mapstructure:"fft_size" yaml:"fft_size"`
	Chunk      int     `mapstructure:"chunk" yaml:"chunk"`
	SampleRate float64 `mapstructure:"sample_rate" yaml:"sample_rate"`
	Backend    string  `mapstructure:"backend" yaml:"backend"`
	LogLevel   string  `mapstructure:"log_level" yaml:"log_level"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("window", "hanning")
	v.SetDefault("window_size", 1024)
	v.SetDefault("step_size", 512)
	v.SetDefault("fft_size", 0)
	v.SetDefault("chunk", 3000)
	v.SetDefault("sample_rate", 44100)
	v.SetDefault("backend", BackendAlgoFFT)
	v.SetDefault("log_level", "info")
}

// New returns a viper instance with defaults and environment lookup set
// up. If file is not empty it is read as YAML.
func New(file string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", file, err)
		}
	}

	return v, nil
}

// Load decodes and validates the configuration held by v. A zero FFTSize
// resolves to WindowSize.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config

	if err := v.Unmarshal(&cfg, viper.DecodeHook(windowHook())); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}

	if cfg.FFTSize == 0 {
		cfg.FFTSize = cfg.WindowSize
	}

	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// windowHook decodes window names through window.Parse.
func windowHook() mapstructure.DecodeHookFuncType {
	target := reflect.TypeOf(window.Type(0))

	return func(from, to reflect.Type, data any) (any, error) {
		if to != target {
			return data, nil
		}

		switch d := data.(type) {
		case string:
			return window.Parse(d)
		case window.Type:
			return d, nil
		default:
			return data, nil
		}
	}
}

// Validate checks the engine invariants and the CLI settings.
func (c Config) Validate() error {
	switch {
	case !c.Window.Valid():
		return fmt.Errorf("%w: window %s", ErrInvalid, c.Window)
	case c.WindowSize <= 0:
		return fmt.Errorf("%w: window_size must be > 0: %d", ErrInvalid, c.WindowSize)
	case c.StepSize <= 0 || c.StepSize >= c.WindowSize:
		return fmt.Errorf("%w: step_size must be in (0, %d): %d", ErrInvalid, c.WindowSize, c.StepSize)
	case c.FFTSize < c.WindowSize:
		return fmt.Errorf("%w: fft_size %d must be >= window_size %d", ErrInvalid, c.FFTSize, c.WindowSize)
	case c.Chunk <= 0:
		return fmt.Errorf("%w: chunk must be > 0: %d", ErrInvalid, c.Chunk)
	case c.SampleRate <= 0:
		return fmt.Errorf("%w: sample_rate must be > 0: %g", ErrInvalid, c.SampleRate)
	}

	if c.Backend != BackendAlgoFFT && c.Backend != BackendGonum {
		return fmt.Errorf("%w: backend %q (want %s or %s)", ErrInvalid, c.Backend, BackendAlgoFFT, BackendGonum)
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level: %w", ErrInvalid, err)
	}

	return nil
}

// Level returns the parsed log level, falling back to info.
func (c Config) Level() logrus.Level {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}

	return lvl
}

// NewEngine builds a float64 engine for c.
func (c Config) NewEngine() (*stft.STFT, error) {
	opts := []stft.Option{
		stft.WithWindow(c.Window),
		stft.WithFFTSize(c.FFTSize),
	}

	if c.Backend == BackendGonum {
		opts = append(opts, stft.WithTransformer(fft.FourierFactory))
	}

	return stft.NewWithOptions(c.WindowSize, c.StepSize, opts...)
}

// YAML renders c in the config file format.
func (c Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
