package vite

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Fallback(t *testing.T) {
	project := t.TempDir()

	cfg, source := LoadConfig(project, "", "vite.config.yaml")
	assert.Empty(t, source)
	assert.Equal(t, filepath.Join(project, "client"), cfg.Root)
	assert.Equal(t, filepath.Join(project, "dist", "public"), cfg.Build.OutDir)
	assert.Equal(t, "/src/main.tsx", cfg.Entry)
	assert.Equal(t, "http://localhost:5173", cfg.Server.URL)
	assert.Equal(t, []string{"npx", "vite"}, cfg.Server.Command)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadyTimeout)
	assert.Equal(t, "5173", cfg.Port())
}

func TestLoadConfig_FirstLoadableWins(t *testing.T) {
	project := t.TempDir()
	// broken yaml is skipped
	require.NoError(t, os.WriteFile(filepath.Join(project, "broken.yaml"), []byte("root: [\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(project, "vite.config.yml"), []byte(`
root: web
build:
  outDir: out/static
entry: /src/index.ts
reactRefresh: true
server:
  attach: true
  url: http://127.0.0.1:4000
  readyTimeout: 5s
`), 0o644))

	cfg, source := LoadConfig(project, "broken.yaml", "vite.config.yaml", "vite.config.yml")
	assert.Equal(t, filepath.Join(project, "vite.config.yml"), source)
	assert.Equal(t, filepath.Join(project, "web"), cfg.Root)
	assert.Equal(t, filepath.Join(project, "out", "static"), cfg.Build.OutDir)
	assert.Equal(t, "/src/index.ts", cfg.Entry)
	assert.True(t, cfg.ReactRefresh)
	assert.True(t, cfg.Server.Attach)
	assert.Empty(t, cfg.Server.Command)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadyTimeout)
	assert.Equal(t, "4000", cfg.Port())
}

func TestLoadConfig_AbsolutePaths(t *testing.T) {
	project := t.TempDir()
	other := t.TempDir()
	file := filepath.Join(other, "dev.yaml")
	require.NoError(t, os.WriteFile(file, []byte("root: "+other+"\n"), 0o644))

	cfg, source := LoadConfig(project, file)
	assert.Equal(t, file, source)
	assert.Equal(t, other, cfg.Root)
	assert.Equal(t, project, cfg.ProjectDir)
}

func TestLoadConfig_RootOnlyStillSpawns(t *testing.T) {
	project := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(project, "vite.config.yaml"), []byte("root: web\n"), 0o644))

	cfg, source := LoadConfig(project, "vite.config.yaml")
	assert.Equal(t, filepath.Join(project, "vite.config.yaml"), source)
	assert.Equal(t, filepath.Join(project, "web"), cfg.Root)
	assert.False(t, cfg.Server.Attach)
	assert.Equal(t, []string{"npx", "vite"}, cfg.Server.Command)
	assert.Equal(t, "http://localhost:5173", cfg.Server.URL)
}

func TestLoadConfig_CustomCommand(t *testing.T) {
	project := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(project, "vite.config.yaml"),
		[]byte("server:\n  command: [pnpm, exec, vite]\n  url: http://localhost:5200\n"), 0o644))

	cfg, _ := LoadConfig(project, "vite.config.yaml")
	assert.Equal(t, []string{"pnpm", "exec", "vite"}, cfg.Server.Command)

	tool := &Tool{cfg: *cfg}
	assert.Equal(t, []string{
		"exec", "vite", filepath.Join(project, "client"),
		"--port", "5200", "--strictPort", "--clearScreen", "false",
	}, tool.args())
}
