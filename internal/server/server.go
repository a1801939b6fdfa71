package server

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"alfredoptarigan/resume-matcher/internal/handlers"
	"alfredoptarigan/resume-matcher/internal/models"
)

type Options struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimit    int64
	// AccessLog turns on the request logger middleware.
	AccessLog bool
}

// New assembles the fiber app with its middleware and routes. documentHandler
// may be nil when the upload ledger is disabled.
func New(uploadHandler *handlers.UploadHandler, documentHandler *handlers.DocumentHandler, opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Resume Matcher",
		ReadTimeout:           opts.ReadTimeout,
		WriteTimeout:          opts.WriteTimeout,
		BodyLimit:             bodyLimit(opts.BodyLimit),
		ErrorHandler:          ErrorHandler,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	if opts.AccessLog {
		app.Use(logger.New(logger.Config{
			Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
			TimeFormat: "2006-01-02 15:04:05",
		}))
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	app.Get("/", handlers.HandleIndex)
	app.Get("/health", handlers.HandleHealth)
	app.Post("/upload", uploadHandler.HandleUpload)
	if documentHandler != nil {
		app.Get("/documents/:id", documentHandler.HandleGetDocument)
	}

	return app
}

// ErrorHandler renders every error as {"error": message}. fiber errors keep
// their status code; anything else is a processing failure and becomes a 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	return c.Status(code).JSON(models.ErrorResponse{
		Error: err.Error(),
	})
}

// bodyLimit leaves headroom over the file size for the multipart envelope.
func bodyLimit(maxFileSize int64) int {
	if maxFileSize <= 0 {
		return fiber.DefaultBodyLimit
	}
	return int(maxFileSize) + 1<<20
}
