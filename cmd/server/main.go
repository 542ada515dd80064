package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	ossignal "os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bsujalnaik/GoogleHackathon/internal/bot"
	"github.com/bsujalnaik/GoogleHackathon/internal/cache"
	"github.com/bsujalnaik/GoogleHackathon/internal/chart"
	"github.com/bsujalnaik/GoogleHackathon/internal/config"
	"github.com/bsujalnaik/GoogleHackathon/internal/db"
	"github.com/bsujalnaik/GoogleHackathon/internal/handler"
	"github.com/bsujalnaik/GoogleHackathon/internal/job"
	"github.com/bsujalnaik/GoogleHackathon/internal/portfolio"
	"github.com/bsujalnaik/GoogleHackathon/internal/provider"
	"github.com/bsujalnaik/GoogleHackathon/internal/repository"
	"github.com/bsujalnaik/GoogleHackathon/internal/service"
	"github.com/bsujalnaik/GoogleHackathon/internal/tax"
	"github.com/bsujalnaik/GoogleHackathon/pkg/tracing"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	_ "github.com/bsujalnaik/GoogleHackathon/docs"
)

var (
	loadEnvFunc            = godotenv.Load
	loadConfigFunc         = config.Load
	connectPostgresFunc    = db.Connect
	connectRedisFunc       = cache.NewClient
	initTracerFunc         = tracing.InitTracer
	newRepositoryFunc      = repository.NewPortfolioRepository
	newProviderFunc        = provider.NewYahooProvider
	newStockServiceFunc    = service.NewStockService
	newPortfolioSvcFunc    = service.NewPortfolioService
	newTaxServiceFunc      = service.NewTaxService
	newSnapshotPollerFunc  = job.NewSnapshotPoller
	startPollerFunc        = func(p *job.SnapshotPoller, ctx context.Context) { go p.Start(ctx) }
	startTelegramBotFunc   = bot.StartTelegramBot
	newHandlerFunc         = handler.New
	newRouterFunc          = gin.New
	setupSignalNotify      = ossignal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           Portfolio Valuation and Tax Engine API
// @version         1.0
// @description     Stock quotes, portfolio valuation and Indian tax assessment.

// @host      localhost:8080
// @BasePath  /
func main() {
	loadEnvFunc()

	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	var persistence service.PortfolioPersistence
	pool, err := connectPostgresFunc(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Printf("postgres unavailable, history will not survive restarts: %v", err)
	} else if pool != nil {
		repo := newRepositoryFunc(pool, tracer)
		if err := repo.RunMigrations(ctx); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
		persistence = repo
		defer pool.Close()
	}

	var quotes service.QuoteCache
	if cfg.RedisURL != "" {
		client, err := connectRedisFunc(ctx, cfg.RedisURL)
		if err != nil {
			log.Printf("redis unavailable, quote caching disabled: %v", err)
		} else {
			quotes = cache.NewQuoteCache(client, time.Duration(cfg.QuoteCacheTTLSecs)*time.Second)
			defer client.Close()
		}
	}

	market := newProviderFunc(tracer)
	market.FetchTimeout = time.Duration(cfg.FetchTimeoutSecs) * time.Second

	stockService := newStockServiceFunc(tracer, market, quotes)
	portfolioService := newPortfolioSvcFunc(tracer, portfolio.NewStore(), stockService, persistence)
	if err := portfolioService.Load(ctx); err != nil {
		log.Printf("failed to restore portfolio from persistence: %v", err)
	}
	taxService := newTaxServiceFunc(tracer, tax.DefaultEngine())

	poller := newSnapshotPollerFunc(tracer, portfolioService, cfg.SnapshotPollSecs)
	startPollerFunc(poller, ctx)

	startTelegramBotFunc(portfolioService, stockService)

	h := newHandlerFunc(tracer, stockService, portfolioService, taxService, chart.NewRenderer())

	r := newRouterFunc()
	r.Use(gin.Logger())
	r.Use(handler.Recovery())
	r.Use(cors.Default())
	r.Use(otelgin.Middleware("finance-engine"))

	h.RegisterRoutes(r)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    httpAddrFromEnv(cfg.HTTPPort),
		Handler: r,
	}

	go func() {
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}

func httpAddrFromEnv(defaultPort int) string {
	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		if strings.HasPrefix(v, ":") {
			return v
		}
		return ":" + v
	}
	return fmt.Sprintf(":%d", defaultPort)
}
