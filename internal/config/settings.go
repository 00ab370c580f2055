package config

import (
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
	"obd-dashboard.klederson.com/internal/errors"
)

// Settings are the user-tunable values, read from an optional
// obd-dashboard.yaml and OBDDASH_* environment variables.
type Settings struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
	QueryTimeout    time.Duration `mapstructure:"query_timeout"`
	ConnectTimeout  time.Duration `mapstructure:"connect_timeout"`
	CommandsFile    string        `mapstructure:"commands_file"`
	LogFile         string        `mapstructure:"log_file"`
	LogLevel        string        `mapstructure:"log_level"`
}

// Option customises Load.
type Option func(*options) error

type options struct {
	configPath string
	envPrefix  string
}

// WithConfigFile specifies an explicit configuration file path
func WithConfigFile(path string) Option {
	return func(o *options) error {
		o.configPath = path
		return nil
	}
}

// WithEnvPrefix specifies a custom environment variable prefix.
// Default is "OBDDASH".
func WithEnvPrefix(prefix string) Option {
	return func(o *options) error {
		if prefix == "" {
			return errors.Newf(errors.ErrInvalidConfig, "empty environment prefix")
		}
		o.envPrefix = prefix
		return nil
	}
}

// Load reads settings from defaults, then the config file, then the
// environment. A missing config file is not an error.
func Load(opts ...Option) (*Settings, error) {
	o := &options{envPrefix: "OBDDASH"}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(o.envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if o.configPath != "" {
		v.SetConfigFile(o.configPath)
	} else {
		v.SetConfigName("obd-dashboard")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "obd-dashboard"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(errors.ErrReadConfig, err)
		}
	}

	s := &Settings{}
	if err := v.Unmarshal(s); err != nil {
		return nil, errors.Wrap(errors.ErrReadConfig, err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("host", DefaultHost)
	v.SetDefault("port", DefaultPort)
	v.SetDefault("refresh_interval", DefaultRefreshInterval)
	v.SetDefault("query_timeout", DefaultQueryTimeout)
	v.SetDefault("connect_timeout", DefaultConnectTimeout)
	v.SetDefault("commands_file", DefaultCommandsFile)
	v.SetDefault("log_file", filepath.Join(os.TempDir(), "obd-dashboard.log"))
	v.SetDefault("log_level", "info")
}

// Validate rejects settings the refresh loop or adapter cannot run with.
func (s *Settings) Validate() error {
	switch {
	case s.Host == "":
		return errors.Newf(errors.ErrInvalidConfig, "host must not be empty")
	case s.Port <= 0 || s.Port > 65535:
		return errors.Newf(errors.ErrInvalidConfig, "port %d out of range", s.Port)
	case s.RefreshInterval <= 0:
		return errors.Newf(errors.ErrInvalidConfig, "refresh_interval must be positive, got %s", s.RefreshInterval)
	case s.QueryTimeout <= 0:
		return errors.Newf(errors.ErrInvalidConfig, "query_timeout must be positive, got %s", s.QueryTimeout)
	case s.ConnectTimeout <= 0:
		return errors.Newf(errors.ErrInvalidConfig, "connect_timeout must be positive, got %s", s.ConnectTimeout)
	}
	return nil
}

// Address is the adapter's host:port.
func (s *Settings) Address() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}
