// Package config loads varscan settings from an optional TOML file.
//
// A file holds the same settings as the scan flags:
//
//	path = "D:/VaM"
//	source = "E:/VaM-archive"
//	dest = "D:/VaM/AddonPackages/restored"
//	copy_found = true
//	strict = false
//
// Flags given on the command line override file values.
package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lightfinesthour/VAM-Dependency-Scanner/pkg/errors"
)

const (
	appName  = "varscan"
	fileName = "config.toml"

	// DefaultOutput is the report file used when --output is given
	// without a value.
	DefaultOutput = "SearchVarOutput.txt"
)

// Config holds the settings of one run.
type Config struct {
	Path        string `toml:"path"`         // main VaM folder
	Source      string `toml:"source"`       // extra library searched for missing packages
	Dest        string `toml:"dest"`         // copy destination for resolved packages
	CopyFound   bool   `toml:"copy_found"`   // copy resolved packages into Dest
	Output      string `toml:"output"`       // plain-text copy of the report
	JSON        string `toml:"json"`         // JSON report file
	Name        string `toml:"name"`         // name query
	MissingOnly bool   `toml:"missing_only"` // stop after the missing-reference report
	Strict      bool   `toml:"strict"`       // disable version fallback
	Verbose     bool   `toml:"verbose"`
}

// Default returns the settings used when neither a file nor flags set them.
func Default() Config {
	return Config{Path: "."}
}

// Load reads the config file at path over [Default]. An empty path means
// [DefaultPath], which may be absent. Keys the file sets that Config does
// not know are returned as warnings.
func Load(path string) (Config, []string, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if !explicit && stderrors.Is(err, fs.ErrNotExist) {
			return Default(), nil, nil
		}
		return Default(), nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load config %s", path)
	}

	var warnings []string
	for _, key := range md.Undecoded() {
		warnings = append(warnings, "unknown config key "+key.String()+" in "+path)
	}
	return cfg, warnings, nil
}

// DefaultPath returns the config file location using the XDG standard
// (~/.config/varscan/config.toml).
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, fileName), nil
}

// Abs makes every path setting absolute and strips a ".var" suffix from
// Name.
func (c *Config) Abs() error {
	for _, p := range []*string{&c.Path, &c.Source, &c.Dest, &c.Output, &c.JSON} {
		if *p == "" {
			continue
		}
		abs, err := filepath.Abs(*p)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "resolve path %s", *p)
		}
		*p = abs
	}
	c.Name = strings.TrimSuffix(c.Name, ".var")
	return nil
}

// Validate checks the settings before any scanning. Paths are expected to
// be absolute; see [Config.Abs].
func (c *Config) Validate() error {
	if c.Path == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "a VaM path is required")
	}
	if !isDir(c.Path) {
		return errors.New(errors.ErrCodeInvalidConfig, "the given path doesn't exist: %s", c.Path)
	}
	if c.Source != "" && !isDir(c.Source) {
		return errors.New(errors.ErrCodeInvalidConfig, "the given source path doesn't exist: %s", c.Source)
	}
	if c.CopyFound && c.Dest == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "a destination folder (--dest) must be specified when using --copy-found")
	}
	if c.CopyFound && c.Source == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "--copy-found needs a source path (--source)")
	}
	if c.Dest != "" && c.Source != "" && filepath.Clean(c.Dest) == filepath.Clean(c.Source) {
		return errors.New(errors.ErrCodeInvalidConfig, "the destination folder must differ from the source path: %s", c.Dest)
	}
	return nil
}

// CopyDest returns the copy destination, or "" when copying is off.
func (c *Config) CopyDest() string {
	if !c.CopyFound {
		return ""
	}
	return c.Dest
}

func isDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}
