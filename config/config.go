package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	// DefaultConfigFile is looked up in the current directory when no
	// config path is given.
	DefaultConfigFile = "config.toml"
)

// Config is the application-wide configuration.
type Config struct {
	Debug bool `toml:"debug"`
	Log   struct {
		Filename string `toml:"filename"`
	} `toml:"log"`
	Instrument struct {
		Name       string `toml:"name"`
		Transport  string `toml:"transport"` // "fake", "tcp" or "websocket"
		Address    string `toml:"address"`   // host:port or ws:// URL
		WriteDelay string `toml:"write_delay"`
		Timeout    string `toml:"timeout"`
	} `toml:"instrument"`
}

// NewConfig creates a Config with default values.
func NewConfig() *Config {
	cfg := &Config{}
	cfg.Log.Filename = "benchtop.log"
	cfg.Instrument.Name = "bench"
	cfg.Instrument.Transport = "fake"
	cfg.Instrument.WriteDelay = "0s"
	cfg.Instrument.Timeout = "5s"
	return cfg
}

// LoadConfig loads the configuration with the following precedence:
// 1. the config file at the given path, when one is given
// 2. the default config file in the current directory, when it exists
// 3. built-in defaults
func LoadConfig(configPath string) (*Config, error) {
	config := NewConfig()

	filePath := configPath
	if filePath == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			filePath = DefaultConfigFile
		} else {
			return config, nil
		}
	}

	if _, err := toml.DecodeFile(filePath, config); err != nil {
		return nil, err
	}
	return config, nil
}

// WriteDelay parses the configured write delay.
func (c *Config) WriteDelay() (time.Duration, error) {
	return parseDuration(c.Instrument.WriteDelay)
}

// Timeout parses the configured transport timeout.
func (c *Config) Timeout() (time.Duration, error) {
	return parseDuration(c.Instrument.Timeout)
}

func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	return d, nil
}

// Validate checks the transport selection.
func (c *Config) Validate() error {
	switch c.Instrument.Transport {
	case "fake":
		return nil
	case "tcp", "websocket":
		if c.Instrument.Address == "" {
			return fmt.Errorf("transport %q requires an address", c.Instrument.Transport)
		}
		return nil
	}
	return fmt.Errorf("unknown transport %q", c.Instrument.Transport)
}

// ApplyCommandLineArgs overrides the configuration with the values that were
// explicitly given on the command line.
func (c *Config) ApplyCommandLineArgs(args CommandLineArgs) {
	if args.DebugSpecified {
		c.Debug = args.Debug
	}
	if args.LogFilenameSpecified {
		c.Log.Filename = args.LogFilename
	}
	if args.TransportSpecified {
		c.Instrument.Transport = args.Transport
	}
	if args.AddressSpecified {
		c.Instrument.Address = args.Address
	}
	if args.WriteDelaySpecified {
		c.Instrument.WriteDelay = args.WriteDelay
	}
}

// CommandLineArgs holds the command line values together with whether each
// flag was actually given, so that unset flags do not clobber file values.
type CommandLineArgs struct {
	ConfigFile      string
	ConfigSpecified bool

	Debug          bool
	DebugSpecified bool

	LogFilename          string
	LogFilenameSpecified bool

	Transport          string
	TransportSpecified bool

	Address          string
	AddressSpecified bool

	WriteDelay          string
	WriteDelaySpecified bool
}

// ParseCommandLineArgs parses the command line.
func ParseCommandLineArgs() CommandLineArgs {
	var args CommandLineArgs

	configFileFlag := flag.String("config", "", "path of the TOML config file")
	debugFlag := flag.Bool("debug", false, "enable debug logging")
	logFilenameFlag := flag.String("log", "benchtop.log", "log file name")
	transportFlag := flag.String("transport", "fake", "instrument transport (fake, tcp, websocket)")
	addressFlag := flag.String("address", "", "instrument address (host:port or ws:// URL)")
	delayFlag := flag.String("write-delay", "0s", "minimum interval between command transmissions")

	flag.Parse()

	specified := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		specified[f.Name] = true
	})

	args.ConfigFile = *configFileFlag
	args.ConfigSpecified = specified["config"]
	args.Debug = *debugFlag
	args.DebugSpecified = specified["debug"]
	args.LogFilename = *logFilenameFlag
	args.LogFilenameSpecified = specified["log"]
	args.Transport = strings.ToLower(*transportFlag)
	args.TransportSpecified = specified["transport"]
	args.Address = *addressFlag
	args.AddressSpecified = specified["address"]
	args.WriteDelay = *delayFlag
	args.WriteDelaySpecified = specified["write-delay"]

	return args
}
