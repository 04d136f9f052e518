package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bryanwahyu/chain-compliance/internal/application"
	appanalysis "github.com/bryanwahyu/chain-compliance/internal/application/analysis"
	"github.com/bryanwahyu/chain-compliance/internal/config"
	"github.com/bryanwahyu/chain-compliance/internal/domain/advisor"
	"github.com/bryanwahyu/chain-compliance/internal/domain/contract"
	"github.com/bryanwahyu/chain-compliance/internal/domain/regulation"
	"github.com/bryanwahyu/chain-compliance/internal/domain/reports"
	openaiClient "github.com/bryanwahyu/chain-compliance/internal/infra/ai/openai"
	"github.com/bryanwahyu/chain-compliance/internal/infra/ai/prompt"
	"github.com/bryanwahyu/chain-compliance/internal/infra/compiler/simplicity"
	mysqlp "github.com/bryanwahyu/chain-compliance/internal/infra/db/mysql"
	postgresp "github.com/bryanwahyu/chain-compliance/internal/infra/db/postgres"
	"github.com/bryanwahyu/chain-compliance/internal/infra/httpserver"
	weaviateIndex "github.com/bryanwahyu/chain-compliance/internal/infra/search/weaviate"
	minioStore "github.com/bryanwahyu/chain-compliance/internal/infra/storage"
	"github.com/bryanwahyu/chain-compliance/internal/middleware"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	// load config
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx := context.Background()

	// connect database (mysql or postgres)
	var db *sql.DB
	var repo reports.Repository
	switch cfg.Database.Driver {
	case "postgres":
		db, err = postgresp.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			log.Fatalf("postgres connect error: %v", err)
		}
		repo = postgresp.NewReportRepository(db)
	default:
		db, err = mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			log.Fatalf("mysql connect error: %v", err)
		}
		repo = mysqlp.NewReportRepository(db)
	}
	defer db.Close()

	// init minio
	store, err := minioStore.New(ctx,
		cfg.Minio.Endpoint,
		cfg.Minio.Region,
		cfg.Minio.BucketName,
		cfg.Minio.AccessKey,
		cfg.Minio.SecretKey,
		cfg.Minio.UseSSL,
	)
	if err != nil {
		log.Fatalf("minio init error: %v", err)
	}

	// init weaviate index; service degrades when absent
	var index regulation.Index
	if cfg.Weaviate.URL != "" {
		idx, werr := weaviateIndex.New(cfg.Weaviate.URL, cfg.Weaviate.APIKey)
		if werr != nil {
			log.Printf("weaviate init error, search disabled: %v", werr)
		} else if serr := idx.EnsureSchema(ctx); serr != nil {
			log.Printf("weaviate schema error, search disabled: %v", serr)
		} else {
			index = idx
		}
	}

	// init advisor: OpenAI when configured, keyword classifier otherwise
	var adv advisor.Client
	if cfg.AI.APIKey != "" {
		adv = openaiClient.NewClient(cfg.AI.APIKey, cfg.AI.Model)
	} else {
		log.Printf("no AI key configured, using local classifier")
		adv = &prompt.LocalClassifier{}
	}

	// init compiler runner
	runner := simplicity.NewRunner(cfg.Compiler.Bin, time.Duration(cfg.Compiler.TimeoutSeconds)*time.Second)

	// init service
	svc := &appanalysis.Service{
		Analyzer:  &contract.Analyzer{Compiler: runner},
		Repo:      repo,
		Artifacts: store,
		Advisor:   adv,
		Index:     index,
		Clock:     application.SystemClock{},
	}

	// health checkers
	checkers := map[string]middleware.HealthChecker{
		"database": &middleware.DatabaseHealthChecker{DB: db},
	}
	if index != nil {
		checkers["weaviate"] = middleware.CheckerFunc(index.Ready)
	}

	// init router + middleware chain
	mux := chi.NewRouter()
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)
	if cfg.RateLimit.Capacity > 0 {
		mux.Use(middleware.RateLimitMiddleware(cfg.RateLimit.Capacity, cfg.RateLimit.RefillRate))
	}
	if len(cfg.Auth.Keys) > 0 {
		mux.Use(middleware.APIKeyAuth(cfg.Auth.Keys))
	}
	mux.Mount("/", httpserver.NewRouter(svc, checkers))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		log.Printf("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
