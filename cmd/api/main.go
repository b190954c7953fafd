package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"frontend-api/internal/handlers/traces"
	"frontend-api/internal/handlers/workspaces"
	"frontend-api/internal/middleware"
	"frontend-api/internal/routers"
	"frontend-api/internal/session"
	"frontend-api/internal/shared"
	"frontend-api/internal/upstream"

	_ "github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"
	emw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/manifold-inc/manifold-sdk/lib/eflag"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Flags / ENV Variables
	port := flag.String("port", "80", "Port to listen on")
	upstreamURL := flag.String("upstream-url", "", "Base url of the upstream api")
	readDSN := flag.String("read-dsn", "", "Read replica DSN for the session store, must set parseTime=true")
	redisAddr := flag.String("redis-addr", "", "Redis host:port")
	sessionCookie := flag.String("session-cookie", shared.DefaultSessionCookie, "Name of the session cookie")
	workspacePolicy := flag.String("workspace-response-policy", string(routers.PolicyBodyOnly), "How workspace responses are returned: body-only or passthrough")
	metricsAPIKey := flag.String("metrics-api-key", "", "Metrics api key")
	debug := flag.Bool("debug", false, "Debug enabled")

	err := eflag.SetFlagsFromEnvironment()
	if err != nil {
		panic(err)
	}
	flag.Parse()

	if *upstreamURL == "" {
		panic("missing upstream url")
	}
	policy, err := routers.ParseResponsePolicy(*workspacePolicy)
	if err != nil {
		panic(err)
	}
	fetcher, err := upstream.NewClient(*upstreamURL)
	if err != nil {
		panic(err)
	}

	// Read db init
	readDB, err := sql.Open("mysql", *readDSN)
	if err != nil {
		panic(fmt.Sprintf("failed initializing readSqlClient: %s", err))
	}
	err = readDB.Ping()
	if err != nil {
		panic(fmt.Sprintf("failed to ping read replica sql db: %s", err))
	}

	// Load Redis connection
	redisClient := redis.NewClient(&redis.Options{
		Addr:     *redisAddr,
		Password: "",
		DB:       0,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		panic(fmt.Sprintf("failed ping to redis db: %s", err))
	}

	defer func() {
		if redisClient != nil {
			_ = redisClient.Close()
		}
		if readDB != nil {
			_ = readDB.Close()
		}
	}()

	var logger *zap.Logger
	if !*debug {
		logger, err = zap.NewProduction()
		if err != nil {
			panic("Failed init logger")
		}
	}
	if *debug {
		logger, err = zap.NewDevelopment()
		if err != nil {
			panic("Failed init logger")
		}
	}
	log := logger.Sugar()
	defer func() {
		_ = log.Sync()
	}()

	e := echo.New()
	e.HideBanner = true
	e.GET(("/ping"), func(c echo.Context) error {
		return c.String(200, "")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()), func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			apiKey, err := shared.ExtractBearer(c)
			if err != nil {
				return c.String(401, "Missing or invalid API key")
			}

			if *metricsAPIKey == "" || apiKey != *metricsAPIKey {
				return c.String(401, "Unauthorized API key")
			}
			return next(c)
		}
	})
	base := e.Group("")
	base.Use(emw.CORS())
	base.Use(middleware.NewRecoverMiddleware(log))
	base.Use(middleware.NewTrackMiddleware(log))

	resolver := session.NewRedisResolver(redisClient, session.NewSQLLoader(readDB), log)
	smw := middleware.NewSessionMiddleware(resolver, *sessionCookie)

	api := base.Group("/api")
	routers.RegisterTraceRoutes(api, traces.NewTraceHandler(fetcher, log), smw)
	routers.RegisterWorkspaceRoutes(api, workspaces.NewWorkspaceHandler(fetcher, log), smw, policy)
	log.Infow("Routes registered", "upstream", *upstreamURL, "workspace_response_policy", policy)

	go func() {
		if err := e.Start(":" + *port); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal("shutting down the server")
		}
	}()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	// Wait for interrupt signal to gracefully shut down the server
	<-ctx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), shared.DefaultShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Fatal(err)
	}
}
