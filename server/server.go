package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

type ServerConfig struct {

	// The pre-rendered page served to every connection
	Page []byte
}

// Returns a fiber.App instance that serves the pre-rendered page. Every
// method and path gets the identical static body; the page was fully built
// before the app starts listening, so handlers share it read-only without
// locking.
func Server(config *ServerConfig) *fiber.App {

	app := fiber.New()

	// Middleware to track the latency of each request
	app.Use(func(c *fiber.Ctx) error {
		// start timer
		start := time.Now()

		// next routes
		err := c.Next()

		// stop timer
		stop := time.Now()

		// Diff
		log.WithFields(log.Fields{
			"method":  c.Method(),
			"path":    c.Path(),
			"latency": stop.Sub(start),
		}).Info("Request")
		return err
	})

	app.Use(func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderConnection, "keep-alive")
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.Status(fiber.StatusOK).Send(config.Page)
	})

	return app
}
