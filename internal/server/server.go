package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/farellandr/travel-maker/config"
	"github.com/farellandr/travel-maker/internal/handlers"
	"github.com/farellandr/travel-maker/internal/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func Start(ctx context.Context, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := config.Connect(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           NewRouter(db, cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", srv.Addr, "version", config.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	return nil
}

func NewRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(slog.Default()))
	r.Use(middleware.CORSMiddleware())

	setupRoutes(r, db, cfg)
	return r
}

func setupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	r.Use(middleware.DatabaseMiddleware(db))
	r.Use(middleware.ConfigMiddleware(cfg))

	r.GET("/", handlers.Root)
	r.GET("/health", handlers.HealthCheck)

	users := r.Group("/users")
	{
		users.POST("/signup", handlers.Signup)
		users.POST("/login", handlers.Login)
		users.GET("/me", middleware.JWTAuthMiddleware(cfg.JWTSecret), handlers.GetCurrentUser)
		users.GET("/:id", handlers.GetUser)
	}

	plans := r.Group("/plans")
	{
		plans.POST("", handlers.CreatePlan)
		plans.GET("", handlers.ListPlans)
		plans.GET("/all", handlers.SearchPlans)
		plans.GET("/:id", handlers.GetPlan)
		plans.PUT("/:id", handlers.UpdatePlan)
		plans.DELETE("/:id", handlers.DeletePlan)
		plans.POST("/:id/join", handlers.JoinPlan)
		plans.POST("/:id/transfer", handlers.TransferOwnership)
		plans.GET("/:id/members", handlers.ListPlanMembers)
		plans.GET("/:id/invite.png", handlers.GetPlanInvite)
		plans.GET("/:id/feed", handlers.GetPlanFeed)
	}

	markers := r.Group("/markers")
	{
		markers.POST("", handlers.CreateMarker)
		markers.GET("", handlers.ListMarkers)
		markers.GET("/:id", handlers.GetMarker)
	}

	daySchedules := r.Group("/day-schedules")
	{
		daySchedules.POST("", handlers.CreateDaySchedule)
		daySchedules.GET("", handlers.ListDaySchedules)
		daySchedules.PUT("/:id", handlers.UpdateDaySchedule)
		daySchedules.DELETE("/:id", handlers.DeleteDaySchedule)
	}

	slots := r.Group("/schedule-slots")
	{
		slots.POST("", handlers.CreateScheduleSlot)
		slots.GET("", handlers.ListScheduleSlots)
		slots.POST("/reorder", handlers.ReorderScheduleSlots)
		slots.POST("/vote", handlers.VoteScheduleSlot)
		slots.GET("/:id", handlers.GetScheduleSlot)
		slots.PUT("/:id", handlers.UpdateScheduleSlot)
		slots.DELETE("/:id", handlers.DeleteScheduleSlot)
		slots.POST("/:id/confirm", handlers.ConfirmScheduleSlot)
		slots.GET("/:id/votes", handlers.ListScheduleSlotVotes)
	}
}
