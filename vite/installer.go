// Package vite wires the Vite dev server into a fiber app for development
// runs. Production binaries never import it.
package vite

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/nilotpaul/spaboot/setting"
	"github.com/nilotpaul/spaboot/util"
)

var (
	ErrDevSetup  = errors.New("vite setup failed - this should only be called in development")
	ErrBuildTool = errors.New("vite reported an error")
)

type Options struct {
	ProjectDir string
	// ConfigFile is tried before the default config files.
	ConfigFile string
	// URL attaches to a dev server that is already running instead of starting one.
	URL    string
	Logger Logger
}

// Installer is the development frontend.
type Installer struct {
	opts   Options
	fatal  chan error
	server *Server
	tool   *Tool
	mu     sync.Mutex
}

func NewInstaller(opts Options) *Installer {
	if len(opts.ProjectDir) == 0 {
		opts.ProjectDir = util.WorkDir()
	}
	if opts.Logger == nil {
		opts.Logger = NewConsoleLogger()
	}

	return &Installer{
		opts:  opts,
		fatal: make(chan error, 1),
	}
}

// Install starts (or attaches to) the dev server and registers the HMR
// bridge, the module proxy and the catch-all page route on app.
func (i *Installer) Install(app *fiber.App) (err error) {
	defer func() {
		if err != nil {
			slog.Error("vite setup", "err", err)
			util.Log("Vite not available, skipping development setup")
			err = fmt.Errorf("%w: %w", ErrDevSetup, err)
		}
	}()

	candidates := append([]string{i.opts.ConfigFile}, setting.ViteConfigFiles...)
	cfg, source := LoadConfig(i.opts.ProjectDir, candidates...)
	if len(source) == 0 {
		slog.Debug("no vite config found, using fallback", "root", cfg.Root, "outDir", cfg.Build.OutDir)
	} else {
		slog.Debug("loaded vite config", "file", source)
	}
	if len(i.opts.URL) > 0 {
		cfg.Server.URL = i.opts.URL
		cfg.Server.Attach = true
		cfg.Server.Command = nil
	}

	logger := NewFatalLogger(i.opts.Logger, i.raise)
	tool, err := LoadTool(context.Background(), *cfg, logger)
	if err != nil {
		return err
	}

	server := NewServer(*cfg, tool)

	i.mu.Lock()
	i.tool = tool
	i.server = server
	i.mu.Unlock()

	app.Use(server.HMRHandler())
	app.Use(server.Middleware())
	app.All("*", server.PageHandler())

	util.Log(fmt.Sprintf("Vite dev server ready at %s", tool.URL()), logSource)

	return nil
}

func (i *Installer) raise(msg string) {
	select {
	case i.fatal <- fmt.Errorf("%w: %s", ErrBuildTool, msg):
	default:
	}
}

// Fatal yields a build tool error. The dev build can't recover from it.
func (i *Installer) Fatal() <-chan error {
	return i.fatal
}

func (i *Installer) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.tool == nil {
		return nil
	}

	return i.tool.Stop()
}
