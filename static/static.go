// Package static serves a prebuilt client bundle with an SPA fallback.
package static

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/nilotpaul/spaboot/metrics"
	"github.com/nilotpaul/spaboot/setting"
	"github.com/nilotpaul/spaboot/util"
)

var ErrBuildDirNotFound = errors.New("build directory not found")

type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Could not find the build directory: %s, make sure to build the client first", e.Path)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrBuildDirNotFound
}

// Candidates lists the build output locations in lookup order.
func Candidates(baseDir, workDir string) []string {
	return []string{
		filepath.Join(baseDir, setting.PublicDir),
		filepath.Join(baseDir, "..", setting.PublicDir),
		filepath.Join(workDir, setting.DistDir, setting.PublicDir),
	}
}

// Resolve returns the first candidate that exists as a directory.
func Resolve(candidates ...string) (string, error) {
	if len(candidates) == 0 {
		return "", ErrBuildDirNotFound
	}

	for _, dir := range candidates {
		if util.IsDir(dir) {
			abs, err := filepath.Abs(dir)
			if err != nil {
				return dir, nil
			}
			return abs, nil
		}
	}

	return "", &NotFoundError{Path: candidates[len(candidates)-1]}
}

type Config struct {
	// Dir skips the candidate search when set.
	Dir     string
	BaseDir string
	WorkDir string
	// Static is passed through to fiber's static handler.
	Static fiber.Static
}

// Server serves the production bundle.
type Server struct {
	cfg Config
}

func NewServer(cfg Config) *Server {
	if len(cfg.BaseDir) == 0 {
		cfg.BaseDir = util.ExecutableDir()
	}
	if len(cfg.WorkDir) == 0 {
		cfg.WorkDir = util.WorkDir()
	}

	return &Server{cfg: cfg}
}

func (s *Server) Install(app *fiber.App) error {
	candidates := Candidates(s.cfg.BaseDir, s.cfg.WorkDir)
	if len(s.cfg.Dir) > 0 {
		candidates = []string{s.cfg.Dir}
	}

	dir, err := Resolve(candidates...)
	if err != nil {
		return err
	}

	util.Log(fmt.Sprintf("Serving static files from: %s", dir))
	app.Static("/", dir, s.cfg.Static)

	// fall through to index.html if the file doesn't exist
	index := filepath.Join(dir, setting.IndexFile)
	app.All("*", func(c *fiber.Ctx) error {
		metrics.SPAFallbacks.Inc()
		return c.SendFile(index)
	})

	return nil
}

// Fatal never fires in production.
func (s *Server) Fatal() <-chan error {
	return nil
}

func (s *Server) Close() error {
	return nil
}
