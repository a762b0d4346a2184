package midi

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/leandrodaf/ump/sdk/contracts"
	"github.com/leandrodaf/ump/sdk/ump"
)

// Config is the YAML form of the client options.
//
//	client_name: Studio Capture
//	log_level: debug
//	log_file: /var/log/ump.log
//	group: 0
//	protocol: midi2
//	capture_file: session.ump
//	filter:
//	  types: [MIDI1ChannelVoice, System]
//	  groups: [0, 1]
type Config struct {
	ClientName  string        `yaml:"client_name"`
	LogLevel    string        `yaml:"log_level"`
	LogFile     string        `yaml:"log_file"`
	Group       uint8         `yaml:"group"`
	Protocol    string        `yaml:"protocol"`
	CaptureFile string        `yaml:"capture_file"`
	Filter      *FilterConfig `yaml:"filter"`
}

// FilterConfig selects packets by message type name and group.
type FilterConfig struct {
	Types  []string `yaml:"types"`
	Groups []uint8  `yaml:"groups"`
}

// ConfigError reports a configuration file that cannot be used.
type ConfigError struct {
	// File is the path to the file that failed to load, if any.
	File string

	// Message describes the error.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

func (e *ConfigError) Error() string {
	msg := e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	if e.File == "" {
		return msg
	}
	return e.File + ": " + msg
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// ParseConfig parses a configuration from YAML bytes.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, &ConfigError{Message: "failed to parse YAML", Cause: err}
	}
	if _, err := cfg.Options(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfig loads a configuration from a file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{File: path, Message: "failed to read file", Cause: err}
	}

	cfg, err := ParseConfig(data)
	if err != nil {
		if ce, ok := err.(*ConfigError); ok {
			ce.File = path
		}
		return nil, err
	}
	return cfg, nil
}

// Options converts the configuration into client options. Unset fields
// produce no option, leaving the defaults in place.
func (c *Config) Options() ([]contracts.Option, error) {
	var opts []contracts.Option

	if c.ClientName != "" {
		opts = append(opts, contracts.WithCoreMIDIConfig(contracts.CoreMIDIConfig{ClientName: c.ClientName}))
	}
	if c.LogLevel != "" {
		level, err := parseLogLevel(c.LogLevel)
		if err != nil {
			return nil, err
		}
		opts = append(opts, contracts.WithLogLevel(level))
	}
	if c.LogFile != "" {
		opts = append(opts, contracts.WithLogFile(c.LogFile))
	}

	g, err := ump.NewGroup(c.Group)
	if err != nil {
		return nil, &ConfigError{Message: "invalid group", Cause: err}
	}
	opts = append(opts, contracts.WithGroup(g))

	if c.Protocol != "" {
		p, err := parseProtocol(c.Protocol)
		if err != nil {
			return nil, err
		}
		opts = append(opts, contracts.WithProtocol(p))
	}
	if c.CaptureFile != "" {
		opts = append(opts, contracts.WithCaptureFile(c.CaptureFile))
	}
	if c.Filter != nil {
		filter, err := c.Filter.filter()
		if err != nil {
			return nil, err
		}
		opts = append(opts, contracts.WithMIDIEventFilter(filter))
	}
	return opts, nil
}

func (f *FilterConfig) filter() (contracts.MIDIEventFilter, error) {
	var out contracts.MIDIEventFilter
	for _, name := range f.Types {
		t, err := parseMessageType(name)
		if err != nil {
			return contracts.MIDIEventFilter{}, err
		}
		out.Types = append(out.Types, t)
	}
	for _, v := range f.Groups {
		g, err := ump.NewGroup(v)
		if err != nil {
			return contracts.MIDIEventFilter{}, &ConfigError{Message: "invalid filter group", Cause: err}
		}
		out.Groups = append(out.Groups, g)
	}
	return out, nil
}

func parseLogLevel(s string) (contracts.LogLevel, error) {
	for l := contracts.InfoLevel; l <= contracts.FatalLevel; l++ {
		if strings.EqualFold(s, l.String()) {
			return l, nil
		}
	}
	return 0, &ConfigError{Message: fmt.Sprintf("unknown log level %q", s)}
}

func parseProtocol(s string) (ump.Protocol, error) {
	switch strings.ToLower(s) {
	case "midi1", "midi1.0":
		return ump.ProtocolMIDI1, nil
	case "midi2", "midi2.0":
		return ump.ProtocolMIDI2, nil
	}
	return 0, &ConfigError{Message: fmt.Sprintf("unknown protocol %q", s)}
}

func parseMessageType(s string) (ump.MessageType, error) {
	for t := ump.MessageType(0); t <= 0xF; t++ {
		if strings.EqualFold(s, t.String()) {
			return t, nil
		}
	}
	return 0, &ConfigError{Message: fmt.Sprintf("unknown message type %q", s)}
}
