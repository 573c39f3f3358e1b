package vite

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/nilotpaul/spaboot/setting"
	"gopkg.in/yaml.v3"
)

// Config is the build tool run configuration. Relative paths are resolved
// against ProjectDir.
type Config struct {
	ProjectDir string `yaml:"-"`

	Root  string      `yaml:"root"`
	Build BuildConfig `yaml:"build"`
	// Entry is the client entry module referenced by index.html.
	Entry        string       `yaml:"entry"`
	ReactRefresh bool         `yaml:"reactRefresh"`
	Server       ServerConfig `yaml:"server"`
}

type BuildConfig struct {
	OutDir string `yaml:"outDir"`
}

type ServerConfig struct {
	URL string `yaml:"url"`
	// Attach uses a dev server already running at URL instead of starting Command.
	Attach       bool          `yaml:"attach"`
	Command      []string      `yaml:"command"`
	ReadyTimeout time.Duration `yaml:"readyTimeout"`
}

// FallbackConfig is used when no project config file can be loaded.
func FallbackConfig(projectDir string) *Config {
	cfg := &Config{
		ProjectDir: projectDir,
		Root:       filepath.Join(projectDir, setting.ClientDir),
		Build: BuildConfig{
			OutDir: filepath.Join(projectDir, setting.DistDir, setting.PublicDir),
		},
	}
	cfg.applyDefaults()

	return cfg
}

// LoadConfig tries each candidate file in order and returns the first that
// loads, along with its path. When none do, the fallback config is returned
// with an empty path.
func LoadConfig(projectDir string, candidates ...string) (*Config, string) {
	for _, c := range candidates {
		if len(c) == 0 {
			continue
		}
		if !filepath.IsAbs(c) {
			c = filepath.Join(projectDir, c)
		}

		cfg, err := readConfig(c)
		if err != nil {
			continue
		}
		cfg.ProjectDir = projectDir
		cfg.applyDefaults()

		return cfg, c
	}

	return FallbackConfig(projectDir), ""
}

func readConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if len(c.Root) == 0 {
		c.Root = setting.ClientDir
	}
	if !filepath.IsAbs(c.Root) {
		c.Root = filepath.Join(c.ProjectDir, c.Root)
	}
	if len(c.Build.OutDir) == 0 {
		c.Build.OutDir = filepath.Join(setting.DistDir, setting.PublicDir)
	}
	if !filepath.IsAbs(c.Build.OutDir) {
		c.Build.OutDir = filepath.Join(c.ProjectDir, c.Build.OutDir)
	}
	if len(c.Entry) == 0 {
		c.Entry = setting.DefaultEntry
	}
	if len(c.Server.URL) == 0 {
		c.Server.URL = setting.DefaultViteURL
	}
	if c.Server.Attach {
		c.Server.Command = nil
	} else if len(c.Server.Command) == 0 {
		c.Server.Command = defaultCommand()
	}
	if c.Server.ReadyTimeout <= 0 {
		c.Server.ReadyTimeout = setting.ViteReadyTimeout
	}
}

func defaultCommand() []string {
	return []string{"npx", "vite"}
}

// Port is the port component of Server.URL.
func (c *Config) Port() string {
	u, err := url.Parse(c.Server.URL)
	if err != nil || len(u.Port()) == 0 {
		return setting.DefaultVitePort
	}

	return u.Port()
}
