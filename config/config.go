// Package config handles qimpp.toml runtime configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/chazu/qimpp/rt"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file FindAndLoad looks for first.
const FileName = "qimpp.toml"

// DefaultManifest is the ABI manifest path used when none is configured.
const DefaultManifest = "qimpp.abi"

// fileNames are tried in order in each directory.
var fileNames = []string{FileName, "qimpp.yaml", "qimpp.yml"}

// Config represents a qimpp.toml runtime configuration.
type Config struct {
	Log     Log     `toml:"log" yaml:"log"`
	Runtime Runtime `toml:"runtime" yaml:"runtime"`
	ABI     ABI     `toml:"abi" yaml:"abi"`

	// Dir is the directory containing the configuration file (set at load
	// time). Relative paths in the file resolve against it.
	Dir string `toml:"-" yaml:"-"`
}

// Log configures the commonlog backend.
type Log struct {
	// Verbosity follows commonlog: -4 silences everything, 0 is Notice,
	// 2 and above is Debug.
	Verbosity int    `toml:"verbosity" yaml:"verbosity"`
	Path      string `toml:"path" yaml:"path"`
}

// Runtime configures the object runtime.
type Runtime struct {
	Trace bool `toml:"trace" yaml:"trace"`
}

// ABI configures where the ABI manifest lives.
type ABI struct {
	Manifest string `toml:"manifest" yaml:"manifest"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		ABI: ABI{Manifest: DefaultManifest},
	}
}

// Load parses qimpp.toml from the given directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, FileName))
}

// LoadFile parses a configuration file. The format follows the extension:
// .toml, .yaml or .yml. Keys the file leaves out keep their defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	c := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, c)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	default:
		return nil, fmt.Errorf("unsupported config format %q in %s", ext, path)
	}
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	c.Dir, err = filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", path, err)
	}
	return c, nil
}

// FindAndLoad walks up from startDir to find a configuration file,
// then loads and returns it. Returns nil if no file is found.
func FindAndLoad(startDir string) (*Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		for _, name := range fileNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return LoadFile(path)
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, nil
		}
		dir = parent
	}
}

// ApplyEnv overrides fields from QIMPP_TRACE, QIMPP_LOG_VERBOSITY and
// QIMPP_LOG_PATH when they are set.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("QIMPP_TRACE"); v != "" {
		on, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("QIMPP_TRACE: %w", err)
		}
		c.Runtime.Trace = on
	}
	if v := os.Getenv("QIMPP_LOG_VERBOSITY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("QIMPP_LOG_VERBOSITY: %w", err)
		}
		c.Log.Verbosity = n
	}
	if v := os.Getenv("QIMPP_LOG_PATH"); v != "" {
		c.Log.Path = v
	}
	return nil
}

// Apply configures logging and runtime tracing.
func (c *Config) Apply() {
	var path *string
	if c.Log.Path != "" {
		p := c.resolve(c.Log.Path)
		path = &p
	}
	commonlog.Configure(c.Log.Verbosity, path)
	rt.SetTrace(c.Runtime.Trace)
}

// ManifestPath returns the absolute path of the ABI manifest.
func (c *Config) ManifestPath() string {
	m := c.ABI.Manifest
	if m == "" {
		m = DefaultManifest
	}
	return c.resolve(m)
}

func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) || c.Dir == "" {
		return p
	}
	return filepath.Join(c.Dir, p)
}
