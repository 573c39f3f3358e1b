package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nilotpaul/spaboot/config"
	"github.com/nilotpaul/spaboot/metrics"
	"github.com/nilotpaul/spaboot/setting"
	"github.com/nilotpaul/spaboot/util"
)

type Router struct {
	env config.EnvConfig
}

func NewRouter(env config.EnvConfig) *Router {
	return &Router{
		env: env,
	}
}

func (h *Router) RegisterRoutes(app *fiber.App) {
	v1 := app.Group(setting.APIPrefix)

	v1.Get("/healthcheck", func(c *fiber.Ctx) error {
		return c.JSON("OK")
	})
	// Unknown API routes must not fall through to the SPA shell.
	v1.All("/*", func(c *fiber.Ctx) error {
		return util.NewAppError(
			fiber.StatusNotFound,
			"route not found",
			c.Method()+" "+c.Path(),
		)
	})

	app.Get(setting.MetricsPath, makeFiberHandler(metrics.Handler()))
}
