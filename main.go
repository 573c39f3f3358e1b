package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/nilotpaul/spaboot/api"
	"github.com/nilotpaul/spaboot/config"
	"github.com/nilotpaul/spaboot/util"
)

var CLI struct {
	Port       string `short:"p" help:"Port to listen on (overrides PORT)"`
	DistDir    string `help:"Prebuilt client directory, production only (overrides DIST_DIR)" type:"path"`
	ProjectDir string `help:"Project root holding the client sources (overrides PROJECT_DIR)" type:"path"`
	Verbose    bool   `short:"v" help:"Enable verbose logging"`
}

func main() {
	kong.Parse(&CLI, kong.Description("Serves the client app: Vite in dev builds, the prebuilt bundle otherwise."))

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))

	// Loads all Env vars from .env file.
	env := config.MustLoadEnv()
	if len(CLI.Port) > 0 {
		env.Port = CLI.Port
	}
	if len(CLI.DistDir) > 0 {
		env.DistDir = CLI.DistDir
	}
	if len(CLI.ProjectDir) > 0 {
		env.ProjectDir = CLI.ProjectDir
	}

	util.Log(runMode + " build")

	// frontend() is provided by build_dev.go or build_prod.go
	// depending on the dev build tag.
	s := api.NewAPIServer(env.Port, *env, frontend(*env))

	// A frontend fatal error ends up here and exits non-zero.
	s.Run()
}
