package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"metabolic-care/config"
	"metabolic-care/planner"
	"metabolic-care/routes"
	"metabolic-care/services"
	"metabolic-care/triage"
	"metabolic-care/utils"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			config.SetupLogger(cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	db, err := config.InitDB(cfg)
	if err != nil {
		return err
	}
	deps, err := buildDeps(ctx, cfg, db)
	if err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	router := routes.SetupRouter(deps)

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           c.Handler(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server starting")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func buildDeps(ctx context.Context, cfg *config.Config, db *gorm.DB) (routes.Deps, error) {
	th, err := triage.LoadThresholds(cfg.ThresholdsFile)
	if err != nil {
		return routes.Deps{}, err
	}
	catalog, err := planner.LoadCatalog(cfg.CatalogFile)
	if err != nil {
		return routes.Deps{}, err
	}
	pl, err := planner.New(catalog)
	if err != nil {
		return routes.Deps{}, err
	}

	engine := triage.NewEngine(th)
	coach := services.NewCoachService(cfg.GroqAPIKey, cfg.GroqBaseURL, cfg.GroqModel)
	if cfg.GroqAPIKey == "" {
		log.Warn().Msg("GROQ_API_KEY not set, coaching uses the static fallback")
	}

	rt := services.NewRealtimeHub()
	var push *services.PushService
	var pusher services.Pusher
	if cfg.SNSFCMArn != "" {
		push, err = services.NewPushService(ctx, db, cfg.AWSRegion, cfg.SNSFCMArn)
		if err != nil {
			return routes.Deps{}, fmt.Errorf("push notifications: %w", err)
		}
		pusher = push
	} else {
		log.Info().Msg("SNS_FCM_ARN not set, push notifications disabled")
	}

	profiles := services.NewProfileService(db, engine)
	alerts := services.NewAlertService(db, rt, pusher)
	checkins := services.NewCheckInService(db, profiles, coach)
	glucose := services.NewGlucoseService(db, profiles, alerts, th)

	return routes.Deps{
		Engine:    engine,
		Catalog:   catalog,
		Sessions:  services.NewSessionService(cfg.IdentityPepper, []byte(cfg.JWTSecret), utils.DefaultTokenTTL),
		Profiles:  profiles,
		Plans:     services.NewPlanService(db, pl, profiles, coach),
		CheckIns:  checkins,
		Glucose:   glucose,
		Dashboard: services.NewDashboardService(checkins, glucose, th),
		Alerts:    alerts,
		Realtime:  rt,
		Push:      push,

		AllowedOrigins: cfg.CORSOrigins,
	}, nil
}
