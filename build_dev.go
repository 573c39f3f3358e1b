//go:build dev
// +build dev

package main

import (
	"log/slog"

	"github.com/nilotpaul/spaboot/api"
	"github.com/nilotpaul/spaboot/config"
	"github.com/nilotpaul/spaboot/setting"
	"github.com/nilotpaul/spaboot/util"
	"github.com/nilotpaul/spaboot/vite"
)

const runMode = setting.DevelopmentMode

func frontend(env config.EnvConfig) api.Frontend {
	if util.IsProduction() {
		slog.Warn("dev build started with a production ENVIRONMENT")
	}

	return vite.NewInstaller(vite.Options{
		ProjectDir: env.ProjectDir,
		ConfigFile: env.ViteConfig,
		URL:        env.ViteURL,
	})
}
