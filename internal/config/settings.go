package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Settings holds service configuration for the paycalc binary.
type Settings struct {
	Server    ServerSettings `mapstructure:"server"`
	Log       LogSettings    `mapstructure:"log"`
	RulesFile string         `mapstructure:"rules_file"`
}

// ServerSettings configures the HTTP listener.
type ServerSettings struct {
	ListenAddr   string        `mapstructure:"listen_addr"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// LogSettings configures logrus output.
type LogSettings struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// flagBindings maps settings keys to the command-line flags that override them.
var flagBindings = map[string]string{
	"server.listen_addr": "addr",
	"log.level":          "log-level",
	"log.format":         "log-format",
}

// LoadSettings reads settings from an optional file and the environment.
// Env var overrides use prefix PAYCALC_, e.g. PAYCALC_SERVER_LISTEN_ADDR.
// Flags present in flags and set by the user take precedence over both.
func LoadSettings(configFile string, flags *pflag.FlagSet) (Settings, error) {
	v := viper.New()

	v.SetDefault("server.listen_addr", ":8080")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("rules_file", "")

	v.SetEnvPrefix("PAYCALC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range flagBindings {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Settings{}, err
				}
			}
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("read settings %s: %w", configFile, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("unmarshal settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks the settings values.
func (s Settings) Validate() error {
	if s.Server.ListenAddr == "" {
		return fmt.Errorf("server.listen_addr is required")
	}
	if s.Server.ReadTimeout <= 0 || s.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server timeouts must be positive")
	}
	switch strings.ToLower(s.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be 'text' or 'json', got %q", s.Log.Format)
	}
	return nil
}
