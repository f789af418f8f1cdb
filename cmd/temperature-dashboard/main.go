package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"

	"temperature-dashboard/config"
	v1 "temperature-dashboard/internal/controllers/http/v1"
	"temperature-dashboard/internal/repositories"
	"temperature-dashboard/internal/scheduler"
	"temperature-dashboard/internal/services/dashboard"
	"temperature-dashboard/internal/views"
	"temperature-dashboard/pkg/httpserver"
	"temperature-dashboard/pkg/logger"
	"temperature-dashboard/pkg/observe"
)

// @title Temperature Comparison Dashboard
// @version 1.0.0
// @description Server-rendered dashboard comparing hourly temperatures of two cities.
// @description The JSON endpoint exposes the session state behind the page.

// @contact.name Temperature Dashboard Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @tag.name Dashboard
// @tag.description Dashboard session state
func main() {
	ctx, cancel := context.WithCancel(context.Background())

	cnf, err := config.NewConfig()
	if err != nil {
		log.Fatalf("cannot load configuration: %v", err)
	}

	writers := []io.Writer{os.Stdout}
	var hook *observe.SentryHook
	if cnf.Sentry.DSN != "" {
		hook = observe.NewSentryHook(cnf.App.Env, cnf.App.Name, cnf.Sentry.Debug, cnf.Sentry.DSN)
		writers = append(writers, hook)
	}

	l := logger.New(logger.Options{
		AppName: cnf.App.Name,
		AppEnv:  cnf.App.Env,
		Level:   cnf.Log.Level,
	}, writers...)
	if hook != nil {
		hook.SetLogger(l)
	}

	repo, err := repositories.InitTemperatureRepository(cnf, l)
	if err != nil {
		l.Fatal("cannot init backend repository", map[string]any{"err": err.Error()})
	}

	sessions, closeSessions, err := repositories.InitSessionRepository(ctx, cnf)
	if err != nil {
		l.Fatal("cannot init session store", map[string]any{"err": err.Error(), "store": cnf.Session.Store})
	}

	service := dashboard.NewDashboardService(repo, sessions, l).
		WithLoadingTimeout(2 * cnf.BackendTimeout())

	sweeper := scheduler.NewSweeper(sessions, cnf.SweepInterval(), l)
	if err := sweeper.Start(); err != nil {
		l.Fatal("cannot start session sweeper", map[string]any{"err": err.Error()})
	}

	app := httpserver.InitFiberServer(httpserver.Options{
		AppName:      cnf.App.Name,
		Views:        views.NewEngine(),
		ReadTimeout:  time.Duration(cnf.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cnf.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cnf.Server.IdleTimeout) * time.Second,
		Ready: func(c *fiber.Ctx) bool {
			_, err := sessions.Get(c.UserContext(), "readiness-probe")
			return err == nil || errors.Is(err, repositories.ErrSessionNotFound)
		},
	})

	v1.NewRouter(
		app,
		service,
		l,
		v1.RouterOptions{
			CookieName:   cnf.Session.CookieName,
			CookieTTL:    cnf.SessionTTL(),
			SecureCookie: cnf.IsProduction(),
		},
	)

	go func() {
		if err := app.Listen(":" + cnf.Server.Port); err != nil {
			l.Fatal("cannot run the server", map[string]any{"err": err})
		}
	}()

	l.Info("application started successfully", map[string]any{
		"port":    cnf.Server.Port,
		"backend": cnf.Backend.BaseURL,
		"store":   cnf.Session.Store,
	})

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer func() {
		l.Warning("stopping application services")
		signal.Stop(sigCh)
		close(sigCh)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		_ = app.ShutdownWithContext(shutdownCtx)
		sweeper.Stop()
		_ = closeSessions()
		if hook != nil {
			hook.Flush()
		}
		_ = l.Stop()
		cancel()
	}()

	select {
	case <-sigCh:
		fmt.Println("received shutdown signal")
	case <-ctx.Done():
		fmt.Println("context cancelled")
	}
}
