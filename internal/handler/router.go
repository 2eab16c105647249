package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sefazor/eventos-backend/internal/i18n"
	"github.com/sefazor/eventos-backend/internal/middleware"
	"github.com/sefazor/eventos-backend/internal/service"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps are the services the HTTP layer is built on.
type Deps struct {
	DB          *gorm.DB
	Auth        *service.AuthService
	Users       *service.UserService
	Events      *service.EventService
	Enrollments *service.EnrollmentService
	Rosters     *service.RosterService
	Translator  *i18n.Translator
	Log         *zap.Logger
}

type RouterConfig struct {
	CORSOrigins  string
	RateLimitMax int
}

// NewApp builds the fiber app with middleware and every route registered.
func NewApp(d Deps, cfg RouterConfig) *fiber.App {
	resp := NewResponder(d.Translator, d.Log)

	app := fiber.New(fiber.Config{
		AppName:      "eventos",
		ErrorHandler: resp.ErrorHandler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger(d.Log.Named("http")))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Accept-Language, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE",
	}))

	health := NewHealthHandler(d.DB)
	app.Get("/healthz", health.Health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")
	api.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimitMax,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return fiber.NewError(fiber.StatusTooManyRequests, "too many requests")
		},
	}))

	authHandler := NewAuthHandler(d.Auth, resp)
	userHandler := NewUserHandler(d.Users, resp)
	eventHandler := NewEventHandler(d.Events, d.Enrollments, d.Rosters, resp)
	requireAuth := middleware.AuthMiddleware(d.Auth)

	// Public routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/logout", requireAuth, middleware.NoCache(), authHandler.Logout)

	// Protected routes
	profile := api.Group("/profile", requireAuth)
	profile.Get("/", userHandler.GetMyProfile)
	profile.Post("/", userHandler.UpdateProfile)
	profile.Put("/", userHandler.UpdateProfile)

	events := api.Group("/events", requireAuth)
	events.Get("/", eventHandler.ListEvents)
	events.Post("/", eventHandler.CreateEvent)
	events.Get("/mine", eventHandler.MyEvents)
	events.Get("/:id", eventHandler.GetEvent)
	events.Delete("/:id", eventHandler.DeleteEvent)
	events.Post("/:id/delete", eventHandler.DeleteEvent)
	events.Post("/:id/enroll", eventHandler.Enroll)
	events.Get("/:id/ticket", eventHandler.Ticket)
	events.Post("/:id/roster", eventHandler.ExportRoster)

	return app
}
