package vite

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

const clientIndex = `<!doctype html>
<html lang="en">
  <head>
    <meta charset="UTF-8" />
  </head>
  <body>
    <div id="root"></div>
    <script type="module" src="/src/main.tsx"></script>
  </body>
</html>
`

// newFakeVite serves the few dev server paths the bridge relies on.
func newFakeVite(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/@vite/client", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/javascript")
		io.WriteString(w, "// vite client")
	})
	mux.HandleFunc("/src/main.tsx", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/javascript")
		w.Header().Set("X-Upstream-Host", r.Host)
		io.WriteString(w, "export default 1")
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/vite-shell" {
			w.Header().Set("Content-Type", "text/html")
			io.WriteString(w, "<html>vite shell</html>")
			return
		}
		http.NotFound(w, r)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv
}

// newProject lays out a project dir with client/index.html.
func newProject(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "client"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "client", "index.html"), []byte(clientIndex), 0o644))

	return dir
}

func testConfig(project, url string) Config {
	cfg := FallbackConfig(project)
	cfg.Server.URL = url
	cfg.Server.Attach = true
	cfg.Server.Command = nil
	cfg.Server.ReadyTimeout = 2 * time.Second

	return *cfg
}

type recordLogger struct {
	infos, warns, errors []string
}

func (l *recordLogger) Info(msg string)  { l.infos = append(l.infos, msg) }
func (l *recordLogger) Warn(msg string)  { l.warns = append(l.warns, msg) }
func (l *recordLogger) Error(msg string) { l.errors = append(l.errors, msg) }

func doRequest(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, string) {
	t.Helper()

	res, err := app.Test(req, 5000)
	require.NoError(t, err)
	defer res.Body.Close()

	b, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	return res, string(b)
}
