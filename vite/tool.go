package vite

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nilotpaul/spaboot/setting"
	"github.com/valyala/fasthttp"
)

var ErrToolExited = errors.New("dev server exited")

const (
	readyInterval = 250 * time.Millisecond
	readyTimeout  = 2 * time.Second
	stopTimeout   = 5 * time.Second
)

// Tool is a running dev build server, either spawned by us or attached to.
type Tool struct {
	cfg    Config
	logger Logger

	cmd      *exec.Cmd
	done     chan struct{}
	stopping atomic.Bool
	stopOnce sync.Once
}

// LoadTool starts the dev server when cfg.Server.Command is set and waits
// until it answers on cfg.Server.URL.
func LoadTool(ctx context.Context, cfg Config, logger Logger) (*Tool, error) {
	t := &Tool{
		cfg:    cfg,
		logger: logger,
	}

	if !cfg.Server.Attach && len(cfg.Server.Command) > 0 {
		if err := t.spawn(); err != nil {
			return nil, err
		}
	}

	if err := t.Ready(ctx); err != nil {
		if stopErr := t.Stop(); stopErr != nil {
			slog.Debug("failed to stop the dev server", "err", stopErr)
		}
		return nil, err
	}

	return t, nil
}

func (t *Tool) URL() string {
	return strings.TrimSuffix(t.cfg.Server.URL, "/")
}

func (t *Tool) spawn() error {
	name := t.cfg.Server.Command[0]
	path, err := exec.LookPath(name)
	if err != nil {
		return fmt.Errorf("failed to locate %s: %w", name, err)
	}

	cmd := exec.Command(path, t.args()...)
	cmd.Dir = t.cfg.ProjectDir
	cmd.Env = append(os.Environ(), "NO_COLOR=1")

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return err
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", name, err)
	}
	slog.Debug("dev server started", "cmd", cmd.String(), "pid", cmd.Process.Pid)

	t.cmd = cmd
	t.done = make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		t.scan(stdout, t.logger.Info)
	}()
	go func() {
		defer wg.Done()
		t.scan(stderr, t.stderrLine)
	}()

	go func() {
		wg.Wait()
		err := cmd.Wait()
		close(t.done)

		if !t.stopping.Load() {
			t.logger.Error(fmt.Sprintf("%s: %v", ErrToolExited, err))
		}
	}()

	return nil
}

// args passes root and port on the command line. Plugins still come from the
// tool's own vite.config.* in Root.
func (t *Tool) args() []string {
	args := append([]string{}, t.cfg.Server.Command[1:]...)

	return append(args,
		t.cfg.Root,
		"--port", t.cfg.Port(),
		"--strictPort",
		"--clearScreen", "false",
	)
}

func (t *Tool) scan(r io.Reader, emit func(string)) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if len(line) == 0 {
			continue
		}
		emit(line)
	}
}

func (t *Tool) stderrLine(line string) {
	if isErrorLine(line) {
		t.logger.Error(line)
		return
	}
	t.logger.Warn(line)
}

func isErrorLine(line string) bool {
	return strings.Contains(strings.ToLower(line), "error")
}

// Ready polls the dev client module until it is served.
func (t *Tool) Ready(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, t.cfg.Server.ReadyTimeout)
	defer cancel()

	clientURL := t.URL() + setting.ViteClientPath
	ticker := time.NewTicker(readyInterval)
	defer ticker.Stop()

	var lastErr error
	for {
		status, _, err := fasthttp.GetTimeout(nil, clientURL, readyTimeout)
		if err == nil && status == fasthttp.StatusOK {
			return nil
		}
		if err == nil {
			err = fmt.Errorf("unexpected status %d from %s", status, clientURL)
		}
		lastErr = err

		select {
		case <-ctx.Done():
			return fmt.Errorf("dev server not ready at %s: %w", t.URL(), lastErr)
		case <-t.exited():
			return ErrToolExited
		case <-ticker.C:
		}
	}
}

// exited is nil (blocks forever) for attached servers.
func (t *Tool) exited() <-chan struct{} {
	return t.done
}

// Stop terminates a spawned dev server. Attached servers are left alone.
func (t *Tool) Stop() error {
	if t.cmd == nil || t.cmd.Process == nil {
		return nil
	}

	var err error
	t.stopOnce.Do(func() {
		t.stopping.Store(true)
		select {
		case <-t.done:
			return
		default:
		}

		if sigErr := t.cmd.Process.Signal(os.Interrupt); sigErr != nil {
			err = t.cmd.Process.Kill()
			return
		}

		select {
		case <-t.done:
		case <-time.After(stopTimeout):
			err = t.cmd.Process.Kill()
		}
	})

	return err
}
