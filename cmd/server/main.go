package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alenapavlenkko/lifetracker/internal/api"
	"github.com/alenapavlenkko/lifetracker/internal/app"
	"github.com/alenapavlenkko/lifetracker/internal/auth"
	"github.com/alenapavlenkko/lifetracker/internal/config"
	"github.com/alenapavlenkko/lifetracker/pkg/utils"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.ParseFlags("lifetracker", "Personal routines, planning and health tracker API",
		(*config.Config).ValidateServer)
	if err != nil {
		utils.Log.Error("Invalid configuration", "err", err)
		os.Exit(1)
	}
	utils.Configure(utils.LogConfig{Level: cfg.Log.Level, File: cfg.Log.File})
	gin.SetMode(cfg.Server.GinMode)

	application, err := app.New(cfg)
	if err != nil {
		utils.Log.Error("Startup failed", "err", err)
		os.Exit(1)
	}
	defer application.Close()

	if count, err := application.Store.Users.Count(context.Background()); err == nil {
		utils.Log.Info("Users registered", "count", count)
	}

	// -----------------------
	// HTTP
	sessions := auth.NewSessions(cfg.Session.Secret, cfg.Session.TTL)
	handlers := api.NewHandlers(sessions, cfg.Session.Secure, api.Services{
		Accounts:  application.Accounts,
		Routines:  application.Routines,
		Planning:  application.Planning,
		Health:    application.Health,
		Workouts:  application.Workouts,
		Dashboard: application.Dashboard,
	})
	router := api.NewRouter(handlers)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           api.WrapHTTP(router, cfg.Server.CORSOrigins, utils.Log.Writer()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.Log.Info("API server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Log.Error("Server failed", "err", err)
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	utils.Log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.Log.Error("Graceful shutdown failed", "err", err)
	}
}
