package vite

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/proxy"
	"github.com/google/uuid"
	"github.com/nilotpaul/spaboot/metrics"
	"github.com/nilotpaul/spaboot/setting"
	"github.com/nilotpaul/spaboot/util"
	"github.com/valyala/fasthttp"
)

var ErrEmptyTemplate = errors.New("empty index template")

const reactRefreshPreamble = `<script type="module">
import RefreshRuntime from "/@react-refresh"
RefreshRuntime.injectIntoGlobalHook(window)
window.$RefreshReg$ = () => {}
window.$RefreshSig$ = () => (type) => type
window.__vite_plugin_react_preamble_installed__ = true
</script>`

var (
	headTag    = regexp.MustCompile(`(?i)<head(\s[^>]*)?>`)
	htmlTag    = regexp.MustCompile(`(?i)<html(\s[^>]*)?>`)
	doctypeTag = regexp.MustCompile(`(?i)<!doctype[^>]*>`)
)

// Server bridges the dev build tool into a fiber app running in
// middleware mode: the tool serves modules, the app owns the HTML shell.
type Server struct {
	cfg    Config
	tool   *Tool
	client *fasthttp.Client
	newID  func() string
}

func NewServer(cfg Config, tool *Tool) *Server {
	return &Server{
		cfg:    cfg,
		tool:   tool,
		client: &fasthttp.Client{NoDefaultUserAgentHeader: true},
		newID:  uuid.NewString,
	}
}

// Middleware forwards module and asset requests to the tool. Navigations,
// 404s and HTML answers from the tool fall through to the next handler.
func (s *Server) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if isNavigation(c) {
			return c.Next()
		}

		// The tool sees its own host, so any inbound Host is accepted.
		if err := proxy.Do(c, s.tool.URL()+c.OriginalURL(), s.client); err != nil {
			metrics.DevProxyRequests.WithLabelValues("error").Inc()
			return util.NewAppError(
				fiber.StatusBadGateway,
				"dev server unavailable",
				s.FixStacktrace(err),
			)
		}

		res := c.Response()
		if res.StatusCode() == fiber.StatusNotFound ||
			strings.HasPrefix(string(res.Header.ContentType()), fiber.MIMETextHTML) {
			metrics.DevProxyRequests.WithLabelValues("miss").Inc()
			res.Reset()
			return c.Next()
		}

		metrics.DevProxyRequests.WithLabelValues("hit").Inc()
		return nil
	}
}

func isNavigation(c *fiber.Ctx) bool {
	if c.Method() != fiber.MethodGet && c.Method() != fiber.MethodHead {
		return false
	}

	return strings.Contains(c.Get(fiber.HeaderAccept), fiber.MIMETextHTML)
}

// PageHandler answers every request with the client index document, read
// from disk on each request so edits show up without a restart.
func (s *Server) PageHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, err := s.renderPage(c.OriginalURL())
		if err != nil {
			metrics.DevPageRenders.WithLabelValues("error").Inc()
			return s.FixStacktrace(err)
		}
		metrics.DevPageRenders.WithLabelValues("ok").Inc()

		c.Set(fiber.HeaderContentType, fiber.MIMETextHTML)
		return c.Status(fiber.StatusOK).SendString(page)
	}
}

func (s *Server) renderPage(url string) (string, error) {
	b, err := os.ReadFile(filepath.Join(s.cfg.Root, setting.IndexFile))
	if err != nil {
		return "", err
	}

	entry := fmt.Sprintf(`src="%s"`, s.cfg.Entry)
	busted := fmt.Sprintf(`src="%s?%s=%s"`, s.cfg.Entry, setting.CacheBustParam, s.newID())
	template := strings.Replace(string(b), entry, busted, 1)

	return s.TransformIndexHTML(url, template)
}

// TransformIndexHTML injects the dev client runtime into html.
func (s *Server) TransformIndexHTML(url, html string) (string, error) {
	if len(strings.TrimSpace(html)) == 0 {
		return "", fmt.Errorf("transform %s: %w", url, ErrEmptyTemplate)
	}

	tags := fmt.Sprintf(`<script type="module" src="%s"></script>`, setting.ViteClientPath)
	if s.cfg.ReactRefresh {
		tags = reactRefreshPreamble + tags
	}

	return injectHead(html, tags), nil
}

func injectHead(html, tags string) string {
	for _, re := range []*regexp.Regexp{headTag, htmlTag, doctypeTag} {
		if loc := re.FindStringIndex(html); loc != nil {
			return html[:loc[1]] + tags + html[loc[1]:]
		}
	}

	return tags + html
}

// StackError carries an error whose message has source paths rewritten
// relative to the client root.
type StackError struct {
	Message string
	Err     error
}

func (e *StackError) Error() string {
	return e.Message
}

func (e *StackError) Unwrap() error {
	return e.Err
}

// FixStacktrace maps absolute client paths in err back to their dev URLs.
func (s *Server) FixStacktrace(err error) error {
	if err == nil {
		return nil
	}

	var se *StackError
	if errors.As(err, &se) {
		return err
	}

	msg := err.Error()
	for _, root := range []string{s.cfg.Root, filepath.ToSlash(s.cfg.Root)} {
		root = strings.TrimRight(root, `/\`)
		// an empty root is "/" itself, paths are already root-relative.
		if len(root) == 0 {
			continue
		}
		msg = strings.ReplaceAll(msg, root+"/", "/")
		msg = strings.ReplaceAll(msg, root+`\`, "/")
	}

	return &StackError{Message: msg, Err: err}
}
