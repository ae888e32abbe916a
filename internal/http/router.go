package http

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/rowanvale/usersvc/internal/http/handlers"
	"github.com/rowanvale/usersvc/internal/http/middlewares"
	"github.com/rowanvale/usersvc/internal/observability"
	"github.com/rowanvale/usersvc/internal/repo/postgres"
)

func NewRouter(log *slog.Logger, pool *pgxpool.Pool, prom *observability.Prom, promReg *prometheus.Registry) *gin.Engine {
	cfgEnv := os.Getenv("APP_ENV")

	if cfgEnv != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// middleware

	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(log))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.MaxBodyBytes(1 << 20))
	r.Use(middlewares.RequireJSON())
	r.Use(otelgin.Middleware("usersvc"))

	if prom != nil {
		r.Use(prom.GinHandleMiddleware())
	}

	// health: liveness never touches the store, readiness pings it
	ping := func() error {
		if pool == nil {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		return pool.Ping(ctx)
	}

	h := handlers.NewHealthHandler(ping)
	r.GET("/health", h.Healthz)
	r.GET("/readyz", h.Readyz)

	if promReg != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(promReg, promhttp.HandlerOpts{})))
	}

	// wire up the repository and user routes
	usersRepo := postgres.NewUsersRepo(pool, prom)
	usersHandler := handlers.NewUsersHandler(usersRepo, log)

	r.POST("/users", usersHandler.CreateUser)
	r.GET("/users/:id", usersHandler.GetUserByID)
	r.PUT("/users/:id", usersHandler.UpdateUser)
	r.DELETE("/users/:id", usersHandler.DeleteUser)

	return r
}
