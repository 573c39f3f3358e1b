//go:build !dev
// +build !dev

package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nilotpaul/spaboot/api"
	"github.com/nilotpaul/spaboot/config"
	"github.com/nilotpaul/spaboot/setting"
	"github.com/nilotpaul/spaboot/static"
)

const runMode = setting.ProductionMode

func frontend(env config.EnvConfig) api.Frontend {
	return static.NewServer(static.Config{
		Dir: env.DistDir,
		Static: fiber.Static{
			MaxAge: env.StaticMaxAge,
		},
	})
}
