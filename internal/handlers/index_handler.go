package handlers

import (
	_ "embed"
	"time"

	"github.com/gofiber/fiber/v2"
)

//go:embed static/index.html
var indexPage []byte

// HandleIndex handles GET /
func HandleIndex(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(indexPage)
}

// HandleHealth handles GET /health
func HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "healthy",
		"time":   time.Now(),
	})
}
