package api

import (
	"log"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	MW "github.com/nilotpaul/spaboot/api/middleware"
	"github.com/nilotpaul/spaboot/config"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

// Frontend serves the client application. Exactly one is installed per
// process, chosen by run mode.
type Frontend interface {
	Install(app *fiber.App) error
	// Fatal yields errors the frontend can't recover from.
	Fatal() <-chan error
	Close() error
}

type APIServer struct {
	listenAddr string
	env        config.EnvConfig
	frontend   Frontend
}

func NewAPIServer(listenAddr string, env config.EnvConfig, frontend Frontend) *APIServer {
	return &APIServer{
		listenAddr: listenAddr,
		env:        env,
		frontend:   frontend,
	}
}

// App builds the fiber app with API routes first and the frontend last,
// so the frontend's catch-all never shadows the API.
func (s *APIServer) App() (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		AppName:               s.env.AppName,
		ErrorHandler:          MW.ErrorHandler,
		DisableStartupMessage: true,
	})
	logger := logger.New(logger.Config{
		Format: "[${ip}]:${port} ${status} - ${method} ${path}\n",
	})

	app.Use(logger)

	handler := NewRouter(s.env)
	handler.RegisterRoutes(app)

	if err := s.frontend.Install(app); err != nil {
		return nil, err
	}

	return app, nil
}

// Start serves until the listener fails or the frontend reports a fatal error.
func (s *APIServer) Start() error {
	app, err := s.App()
	if err != nil {
		return err
	}
	defer func() {
		if err := s.frontend.Close(); err != nil {
			log.Printf("error closing the frontend: %s", err)
		}
	}()

	errc := make(chan error, 1)
	go func() {
		errc <- app.Listen(":" + s.listenAddr)
	}()

	log.Printf("Server started on http://localhost:%s", s.listenAddr)

	select {
	case err := <-errc:
		return err
	case err := <-s.frontend.Fatal():
		if shutdownErr := app.Shutdown(); shutdownErr != nil {
			log.Printf("error shutting down: %s", shutdownErr)
		}
		return err
	}
}

// Run starts the server and exits the process when it stops.
func (s *APIServer) Run() {
	log.Fatal(s.Start())
}

func makeFiberHandler(h http.Handler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fasthttpadaptor.NewFastHTTPHandler(h)(c.Context())
		return nil
	}
}
