package api

import (
	"errors"

	"bid-leveler/docs"
	"bid-leveler/internal/api/handlers"
	"bid-leveler/pkg/auth"
	"bid-leveler/pkg/config"
	"bid-leveler/pkg/metrics"
	"bid-leveler/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	Project    *handlers.ProjectHandler
	Bid        *handlers.BidHandler
	Comparison *handlers.ComparisonHandler
	Preprocess *handlers.PreprocessHandler
	Usage      *handlers.UsageHandler
}

func SetupRouter(
	h Handlers,
	jwtManager *auth.JWTManager,
	serverCfg config.ServerConfig,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit:    serverCfg.BodyLimit,
		ReadTimeout:  serverCfg.ReadTimeout,
		WriteTimeout: serverCfg.WriteTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			if code == fiber.StatusInternalServerError {
				appLogger.Error("Unhandled request error", zap.String("path", c.Path()), zap.Error(err))
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())
	app.Use(metrics.Middleware())

	// Importing docs registers the swagger document.
	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Auth routes (public)
	authGroup := app.Group("/user/auth")
	authGroup.Post("/register", h.Auth.Register)
	authGroup.Post("/login", h.Auth.Login)
	authGroup.Post("/refresh", h.Auth.RefreshToken)

	// Protected routes
	protected := app.Group("/api/v1", middleware.AuthMiddleware(jwtManager, appLogger))

	protected.Post("/preprocess", h.Preprocess.Preprocess)
	protected.Get("/usage", h.Usage.GetUsage)

	projects := protected.Group("/projects")
	projects.Post("", h.Project.CreateProject)
	projects.Get("", h.Project.ListProjects)
	projects.Get("/:id", h.Project.GetProject)
	projects.Put("/:id", h.Project.UpdateProject)
	projects.Delete("/:id", h.Project.DeleteProject)

	projects.Post("/:id/bids", h.Bid.UploadBid)
	projects.Get("/:id/bids", h.Bid.ListBids)
	projects.Post("/:id/compare", h.Comparison.CompareBids)
	projects.Get("/:id/comparisons", h.Comparison.ListComparisons)
	projects.Get("/:id/export", h.Comparison.ExportComparison)

	bids := protected.Group("/bids")
	bids.Get("/:id", h.Bid.GetBid)
	bids.Delete("/:id", h.Bid.DeleteBid)

	return app
}
