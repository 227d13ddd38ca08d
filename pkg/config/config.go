package config

import (
	"fmt"
	"net"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/Motmedel/bundle_server/pkg/bundle/responder/responder_config"
	configErrors "github.com/Motmedel/bundle_server/pkg/config/errors"
	bundleServerEnv "github.com/Motmedel/bundle_server/pkg/env"
	bundleServerErrors "github.com/Motmedel/bundle_server/pkg/errors"
	bundleServerLog "github.com/Motmedel/bundle_server/pkg/log"
)

const (
	DefaultPort                   = 8000
	DefaultDirectory              = "Build"
	DefaultLogLevel               = "info"
	DefaultLogFormat              = "text"
	DefaultShutdownTimeoutSeconds = 5
)

const (
	EnvHost             = "BUNDLE_SERVER_HOST"
	EnvPort             = "BUNDLE_SERVER_PORT"
	EnvDirectory        = "BUNDLE_SERVER_DIRECTORY"
	EnvDirectoryListing = "BUNDLE_SERVER_DIRECTORY_LISTING"
	EnvLogLevel         = "BUNDLE_SERVER_LOG_LEVEL"
	EnvLogFormat        = "BUNDLE_SERVER_LOG_FORMAT"
	EnvIndexFiles       = "BUNDLE_SERVER_INDEX_FILES"
)

type Config struct {
	Host                   string   `toml:"host"`
	Port                   int      `toml:"port"`
	Directory              string   `toml:"directory"`
	DirectoryListing       bool     `toml:"directory_listing"`
	IndexFiles             []string `toml:"index_files"`
	LogLevel               string   `toml:"log_level"`
	LogFormat              string   `toml:"log_format"`
	ShutdownTimeoutSeconds int      `toml:"shutdown_timeout_seconds"`
}

func New() *Config {
	return &Config{
		Port:                   DefaultPort,
		Directory:              DefaultDirectory,
		DirectoryListing:       true,
		IndexFiles:             slices.Clone(responder_config.DefaultIndexFiles),
		LogLevel:               DefaultLogLevel,
		LogFormat:              DefaultLogFormat,
		ShutdownTimeoutSeconds: DefaultShutdownTimeoutSeconds,
	}
}

// Address is the listen address; an empty host listens on all interfaces.
func (config *Config) Address() string {
	return net.JoinHostPort(config.Host, strconv.Itoa(config.Port))
}

// Url is the address a local browser can open.
func (config *Config) Url() string {
	host := config.Host
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, strconv.Itoa(config.Port))
}

func (config *Config) ShutdownTimeout() time.Duration {
	return time.Duration(config.ShutdownTimeoutSeconds) * time.Second
}

// DecodeFile overlays the values of a TOML file. Keys that match no field are an error.
func (config *Config) DecodeFile(path string) error {
	metadata, err := toml.DecodeFile(path, config)
	if err != nil {
		return bundleServerErrors.New(fmt.Errorf("toml decode file: %w", err), path)
	}

	if undecoded := metadata.Undecoded(); len(undecoded) != 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		return bundleServerErrors.NewWithTrace(
			fmt.Errorf("%w: %s", configErrors.ErrUndecodedKeys, strings.Join(keys, ", ")),
			path,
		)
	}

	return nil
}

// ApplyEnv overlays the values of the set, non-empty environment variables.
func (config *Config) ApplyEnv() error {
	if value, ok := bundleServerEnv.LookupNonEmpty(EnvHost); ok {
		config.Host = value
	}

	port, ok, err := bundleServerEnv.LookupInt(EnvPort)
	if err != nil {
		return fmt.Errorf("lookup int: %w", err)
	}
	if ok {
		config.Port = port
	}

	if value, ok := bundleServerEnv.LookupNonEmpty(EnvDirectory); ok {
		config.Directory = value
	}

	directoryListing, ok, err := bundleServerEnv.LookupBool(EnvDirectoryListing)
	if err != nil {
		return fmt.Errorf("lookup bool: %w", err)
	}
	if ok {
		config.DirectoryListing = directoryListing
	}

	// A comma-separated list, tried in order.
	if value, ok := bundleServerEnv.LookupNonEmpty(EnvIndexFiles); ok {
		config.IndexFiles = nil
		for _, name := range strings.Split(value, ",") {
			if name = strings.TrimSpace(name); name != "" {
				config.IndexFiles = append(config.IndexFiles, name)
			}
		}
	}

	if value, ok := bundleServerEnv.LookupNonEmpty(EnvLogLevel); ok {
		config.LogLevel = value
	}

	if value, ok := bundleServerEnv.LookupNonEmpty(EnvLogFormat); ok {
		config.LogFormat = value
	}

	return nil
}

// ApplyArgs overlays the positional arguments `[port|directory] [directory]`. A first argument that is not an integer
// is taken as the directory.
func (config *Config) ApplyArgs(args []string) error {
	switch len(args) {
	case 0:
		return nil
	case 1, 2:
	default:
		return bundleServerErrors.NewWithTrace(
			fmt.Errorf("%w: expected at most 2, got %d", configErrors.ErrTooManyArguments, len(args)),
			args,
		)
	}

	port, err := strconv.Atoi(args[0])
	if err != nil {
		if len(args) == 2 {
			return bundleServerErrors.NewWithTrace(
				fmt.Errorf("%w: strconv atoi: %w", configErrors.ErrInvalidPort, err),
				args[0],
			)
		}
		config.Directory = args[0]
		return nil
	}
	config.Port = port

	if len(args) == 2 {
		config.Directory = args[1]
	}

	return nil
}

func (config *Config) Validate() error {
	if config.Port < 0 || config.Port > 65535 {
		return bundleServerErrors.NewWithTrace(
			fmt.Errorf("%w: %d is outside of 0-65535", configErrors.ErrInvalidPort, config.Port),
			config.Port,
		)
	}

	if config.Directory == "" {
		return bundleServerErrors.NewWithTrace(configErrors.ErrEmptyDirectory)
	}

	// Index files are looked up inside the requested directory, so they must be plain file names.
	for _, name := range config.IndexFiles {
		if name == "" || name == "." || name == ".." || filepath.Base(name) != name {
			return bundleServerErrors.NewWithTrace(configErrors.ErrInvalidIndexFile, name)
		}
	}

	if config.ShutdownTimeoutSeconds < 0 {
		return bundleServerErrors.NewWithTrace(configErrors.ErrInvalidTimeout, config.ShutdownTimeoutSeconds)
	}

	if _, err := bundleServerLog.ParseLevel(config.LogLevel); err != nil {
		return fmt.Errorf("parse level: %w", err)
	}

	if _, err := bundleServerLog.ParseFormat(config.LogFormat); err != nil {
		return fmt.Errorf("parse format: %w", err)
	}

	return nil
}

// Load builds the configuration from the defaults, the optional TOML file, the environment and the positional
// arguments, each overriding the ones before it.
func Load(path string, args []string) (*Config, error) {
	config := New()

	if path != "" {
		if err := config.DecodeFile(path); err != nil {
			return nil, fmt.Errorf("decode file: %w", err)
		}
	}

	if err := config.ApplyEnv(); err != nil {
		return nil, fmt.Errorf("apply env: %w", err)
	}

	if err := config.ApplyArgs(args); err != nil {
		return nil, fmt.Errorf("apply args: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}

	return config, nil
}
