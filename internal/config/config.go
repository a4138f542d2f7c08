package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file probed in the working directory when no
// --config flag is given. Missing is fine; every key has a default.
const DefaultFile = "frigate-confgen.yaml"

// Duration accepts Go duration strings ("3s") in YAML.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("invalid duration node: %w", err)
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

type ProbeConfig struct {
	Enabled bool     `yaml:"enabled"`
	Timeout Duration `yaml:"timeout"`
	Workers int      `yaml:"workers"`
}

type RTSPConfig struct {
	Port         int    `yaml:"port"`
	MainPath     string `yaml:"main_path"`
	SubPath      string `yaml:"sub_path"`
	RestreamBase string `yaml:"restream_base"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

type Config struct {
	Input  string      `yaml:"input"`
	Output string      `yaml:"output"`
	Probe  ProbeConfig `yaml:"probe"`
	RTSP   RTSPConfig  `yaml:"rtsp"`
	Log    LogConfig   `yaml:"log"`
}

func Default() Config {
	return Config{
		Input:  "cameralist.csv",
		Output: "config.yaml",
		Probe: ProbeConfig{
			Enabled: true,
			Timeout: Duration(3 * time.Second),
			Workers: 16,
		},
		RTSP: RTSPConfig{
			Port:         554,
			MainPath:     "s0",
			SubPath:      "s1",
			RestreamBase: "rtsp://127.0.0.1:8554",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load layers the optional YAML config file and CONFGEN_* environment
// variables on top of the defaults. An explicitly named file must exist;
// the default file may be absent.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if path == "" {
		path = DefaultFile
	}

	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
		// No config file in cwd; defaults apply.
	default:
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Input == "" {
		return errors.New("input path must not be empty")
	}
	if c.Output == "" {
		return errors.New("output path must not be empty")
	}
	if t := c.Probe.Timeout.Std(); t <= 0 || t > time.Minute {
		return fmt.Errorf("probe timeout out of range: %s", t)
	}
	if c.Probe.Workers < 1 || c.Probe.Workers > 256 {
		return fmt.Errorf("probe workers out of range: %d", c.Probe.Workers)
	}
	if c.RTSP.Port < 1 || c.RTSP.Port > 65535 {
		return fmt.Errorf("invalid rtsp port: %d", c.RTSP.Port)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.Input = envOr("CONFGEN_INPUT", cfg.Input)
	cfg.Output = envOr("CONFGEN_OUTPUT", cfg.Output)
	cfg.Log.Level = envOr("CONFGEN_LOG_LEVEL", cfg.Log.Level)

	if v := os.Getenv("CONFGEN_PROBE_TIMEOUT"); v != "" {
		if t, err := time.ParseDuration(v); err == nil {
			cfg.Probe.Timeout = Duration(t)
		}
	}
	if v := os.Getenv("CONFGEN_PROBE_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Probe.Workers = n
		}
	}
	if v := os.Getenv("CONFGEN_PROBE_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Probe.Enabled = b
		}
	}
}

func envOr(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}
