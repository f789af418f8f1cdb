package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	_ "temperature-dashboard/docs"
	"temperature-dashboard/internal/services/dashboard"
	"temperature-dashboard/pkg/logger"
)

const defaultCookieName = "dashboard_session"

type RouterOptions struct {
	CookieName string
	// CookieTTL bounds the session cookie; it matches the session store TTL.
	CookieTTL time.Duration
	// SecureCookie sets the Secure flag on the session cookie.
	SecureCookie bool
}

type routes struct {
	service *dashboard.DashboardService
	l       *logger.Logger
	opts    RouterOptions
}

func NewRouter(
	app *fiber.App,
	dashboardService *dashboard.DashboardService,
	l *logger.Logger,
	opts RouterOptions,
) {
	if opts.CookieName == "" {
		opts.CookieName = defaultCookieName
	}

	r := &routes{
		service: dashboardService,
		l:       l,
		opts:    opts,
	}

	// Swagger documentation
	app.Get("/swagger/*", swagger.New(swagger.Config{
		URL:         "/swagger/doc.json",
		DeepLinking: true,
	}))

	// Dashboard
	app.Get("/", r.handlePage)
	app.Post("/selection", r.handleSelection)
	app.Post("/compare", r.handleCompare)
	app.Post("/back", r.handleBack)

	// API routes
	api := app.Group("/api/v1")
	api.Get("/state", r.handleState)
}
