package cli

import (
	"os"
	"path/filepath"
)

const (
	// DefaultBaseDir is the base configuration directory name.
	DefaultBaseDir = ".optistream"
	// DefaultConfigFile is the configuration filename.
	DefaultConfigFile = "config.yaml"
)

// Paths provides access to the optistream directory structure.
type Paths struct {
	// HomeDir is the user's home directory.
	HomeDir string
}

// NewPaths creates a Paths instance.
func NewPaths() (*Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return &Paths{HomeDir: home}, nil
}

// BaseDir returns the base directory (~/.optistream).
func (p *Paths) BaseDir() string {
	return filepath.Join(p.HomeDir, DefaultBaseDir)
}

// ConfigFile returns the config file path (~/.optistream/config.yaml).
func (p *Paths) ConfigFile() string {
	return filepath.Join(p.BaseDir(), DefaultConfigFile)
}

// CaptureDir returns the directory for captured stream transcripts.
func (p *Paths) CaptureDir() string {
	return filepath.Join(p.BaseDir(), "captures")
}

// EnsureBaseDir creates the base directory if needed.
func (p *Paths) EnsureBaseDir() error {
	return os.MkdirAll(p.BaseDir(), 0o755)
}
