package main

import (
	"context"
	"errors"
	"net/http"

	"gymdesk/clock"
	"gymdesk/config"
	"gymdesk/database"
	"gymdesk/handlers"
	"gymdesk/services"
	"gymdesk/store"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	app := fx.New(
		fx.Provide(
			config.Load,
			zap.NewProduction,
			database.Connect,
			store.New,
			func() clock.Clock { return clock.SystemClock{} },
			func() (*snowflake.Node, error) { return snowflake.NewNode(1) },
			services.NewAuthService,
			services.NewMemberService,
			services.NewPlanService,
			services.NewMembershipService,
			services.NewPaymentService,
			services.NewDashboardService,
			handlers.NewServer,
		),
		fx.Invoke(run),
	)
	app.Run()
}

func run(lc fx.Lifecycle, cfg config.Config, db *gorm.DB, srv *handlers.Server, logger *zap.Logger) {
	r := gin.Default()
	srv.Routes(r)

	httpServer := &http.Server{Addr: cfg.ListenAddr, Handler: r}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("http server listening", zap.String("addr", cfg.ListenAddr))
			go func() {
				if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := httpServer.Shutdown(ctx); err != nil {
				return err
			}
			return database.Close(db)
		},
	})
}
