package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultEnvFile is read when present; a missing file is not an error.
const DefaultEnvFile = ".env"

// Loader handles loading configuration from multiple sources
type Loader struct {
	koanf   *koanf.Koanf
	envFile string
	environ func() []string
}

// NewLoader creates a new configuration loader reading envFile and the process environment
func NewLoader(envFile string) *Loader {
	return &Loader{
		koanf:   koanf.New("."),
		envFile: envFile,
		environ: os.Environ,
	}
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the .env file
// 3. Override with TM_* environment variables
func (l *Loader) Load() (*Config, error) {
	return l.LoadWithOverrides(nil)
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	if err := l.koanf.Load(structs.Provider(NewConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if err := l.loadEnvironment(); err != nil {
		return nil, err
	}

	config, err := l.unmarshal()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		l.applyOverrides(config, overrides)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// loadEnvironment merges the .env file with the process environment. Real
// environment variables win over the file.
func (l *Loader) loadEnvironment() error {
	dotenv, err := l.readEnvFile()
	if err != nil {
		return err
	}

	return l.koanf.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, value string) (string, any) {
			return transformEnvKey(key), value
		},
		EnvironFunc: func() []string {
			vars := make([]string, 0, len(dotenv))
			for k, v := range dotenv {
				vars = append(vars, k+"="+v)
			}
			return append(vars, l.environ()...)
		},
	}), nil)
}

func (l *Loader) readEnvFile() (map[string]string, error) {
	if l.envFile == "" {
		return nil, nil
	}
	values, err := godotenv.Read(l.envFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read env file %s: %w", l.envFile, err)
	}
	return values, nil
}

// transformEnvKey maps TM_SERVER_REQUEST_TIMEOUT to server.request_timeout.
// The first segment names the section; the rest is the field.
func transformEnvKey(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	parts := strings.Split(key, "_")
	if len(parts) < 2 {
		return ""
	}
	return parts[0] + "." + strings.Join(parts[1:], "_")
}

func (l *Loader) unmarshal() (*Config, error) {
	var config Config
	if err := l.koanf.UnmarshalWithConf("", &config, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           &config,
			TagName:          "koanf",
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	return &config, nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	Environment *string
	Provider    *string
	DSN         *string
	Addr        *string
	LogLevel    *string
	LogJSON     *bool
}

// applyOverrides applies command line overrides to the configuration
func (l *Loader) applyOverrides(config *Config, overrides *ConfigOverrides) {
	if overrides.Environment != nil {
		config.App.Environment = *overrides.Environment
	}
	if overrides.Provider != nil {
		config.Database.Provider = *overrides.Provider
	}
	if overrides.DSN != nil {
		config.Database.DSN = *overrides.DSN
	}
	if overrides.Addr != nil {
		config.Server.Addr = *overrides.Addr
	}
	if overrides.LogLevel != nil {
		config.Log.Level = *overrides.LogLevel
	}
	if overrides.LogJSON != nil {
		config.Log.JSON = *overrides.LogJSON
	}
}
