package setting

import "time"

// run modes
const (
	DevelopmentMode string = "development"
	ProductionMode  string = "production"
)

const (
	APIPrefix   string = "/api/v1"
	MetricsPath string = "/metrics"
	DefaultPort string = "3000"

	// Source tag used by util.Log when none is given.
	DefaultLogSource string = "fiber"
)

const (
	IndexFile      string = "index.html"
	PublicDir      string = "public"
	DistDir        string = "dist"
	ClientDir      string = "client"
	DefaultEntry   string = "/src/main.tsx"
	CacheBustParam string = "v"
)

const (
	ViteClientPath   string = "/@vite/client"
	ViteHMRProtocol  string = "vite-hmr"
	DefaultVitePort  string = "5173"
	DefaultViteURL   string = "http://localhost:" + DefaultVitePort
	ViteReadyTimeout        = 30 * time.Second
)

// project-level build tool config files, tried in order.
var ViteConfigFiles = []string{
	"vite.config.yaml",
	"vite.config.yml",
}
