package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/goccy/go-yaml"
)

// Config is the optistream CLI configuration.
type Config struct {
	// CurrentContext is the name of the currently active context.
	CurrentContext string `yaml:"current_context,omitempty"`

	// Contexts maps context name to server configuration.
	Contexts map[string]*Context `yaml:"contexts,omitempty"`

	// configPath is where the config was loaded from.
	configPath string
}

// Context names one pipeline server and the identity queries run under.
type Context struct {
	// Name is the context name.
	Name string `yaml:"name"`

	// BaseURL is the pipeline server address.
	BaseURL string `yaml:"base_url,omitempty"`

	// App is the server-side app name queries are routed to.
	App string `yaml:"app,omitempty"`

	// User is the user id sessions are created under.
	User string `yaml:"user,omitempty"`

	// Timeout is the non-streaming request timeout in seconds.
	Timeout int `yaml:"timeout,omitempty"`
}

// defaultContext is used when no config file exists yet.
func defaultContext() *Context {
	return &Context{
		Name: "default",
		App:  "app",
		User: "cli_user",
	}
}

// LoadConfig loads the configuration from the default path, creating an
// in-memory default when no file exists.
func LoadConfig() (*Config, error) {
	paths, err := NewPaths()
	if err != nil {
		return nil, err
	}
	return LoadConfigWithPath(paths.ConfigFile())
}

// LoadConfigWithPath loads configuration from a custom path.
func LoadConfigWithPath(path string) (*Config, error) {
	cfg := &Config{configPath: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		dc := defaultContext()
		cfg.CurrentContext = dc.Name
		cfg.Contexts = map[string]*Context{dc.Name: dc}
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cli: read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("cli: parse config %s: %w", path, err)
	}
	if cfg.Contexts == nil {
		cfg.Contexts = make(map[string]*Context)
	}
	return cfg, nil
}

// Save writes the configuration back to its path.
func (c *Config) Save() error {
	if err := os.MkdirAll(filepath.Dir(c.configPath), 0o755); err != nil {
		return fmt.Errorf("cli: create config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("cli: marshal config: %w", err)
	}
	if err := os.WriteFile(c.configPath, data, 0o600); err != nil {
		return fmt.Errorf("cli: write config: %w", err)
	}
	return nil
}

// Current returns the active context.
func (c *Config) Current() (*Context, error) {
	if c.CurrentContext == "" {
		return nil, fmt.Errorf("cli: no current context; run 'optistream ctx use <name>'")
	}
	ctx, ok := c.Contexts[c.CurrentContext]
	if !ok {
		return nil, fmt.Errorf("cli: current context %q not found", c.CurrentContext)
	}
	return ctx, nil
}

// Use switches the active context.
func (c *Config) Use(name string) error {
	if _, ok := c.Contexts[name]; !ok {
		return fmt.Errorf("cli: context %q not found", name)
	}
	c.CurrentContext = name
	return nil
}

// Add registers a context, overwriting one with the same name, and makes it
// current when it is the first.
func (c *Config) Add(ctx *Context) {
	if c.Contexts == nil {
		c.Contexts = make(map[string]*Context)
	}
	c.Contexts[ctx.Name] = ctx
	if c.CurrentContext == "" {
		c.CurrentContext = ctx.Name
	}
}

// Delete removes a context.
func (c *Config) Delete(name string) error {
	if _, ok := c.Contexts[name]; !ok {
		return fmt.Errorf("cli: context %q not found", name)
	}
	delete(c.Contexts, name)
	if c.CurrentContext == name {
		c.CurrentContext = ""
	}
	return nil
}

// Names returns the context names, sorted.
func (c *Config) Names() []string {
	names := make([]string, 0, len(c.Contexts))
	for name := range c.Contexts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
