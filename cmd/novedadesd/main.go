package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/contacto-solutions/novedades-tracker/internal/api"
	"github.com/contacto-solutions/novedades-tracker/internal/bitacora"
	"github.com/contacto-solutions/novedades-tracker/internal/common"
	"github.com/contacto-solutions/novedades-tracker/internal/export"
	"github.com/contacto-solutions/novedades-tracker/internal/extract"
	"github.com/contacto-solutions/novedades-tracker/internal/llm"
	"github.com/contacto-solutions/novedades-tracker/internal/llm/openai"
	"github.com/contacto-solutions/novedades-tracker/internal/pipeline"
	"github.com/contacto-solutions/novedades-tracker/internal/session"
)

func main() {
	// Logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	log := logger.Sugar()

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// Config
	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	impactLabels, err := common.LoadImpactLabels(cfg.Bitacora.ImpactLabels)
	if err != nil {
		log.Fatalf("impact labels: %v", err)
	}

	// Context with signal
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Durable storage
	hist, err := bitacora.OpenStore(cfg.Bitacora.HistoryDB, slogger)
	if err != nil {
		log.Fatalf("history store: %v", err)
	}
	wb := bitacora.NewWorkbook(cfg.Bitacora.WorkbookPath, slogger)

	// Classifier: degrade to the manual-review sentinel when the remote
	// service cannot be initialized. The operator workflow never blocks
	// on AI availability.
	var classifier llm.Classifier
	client, ok := openai.NewClient(openai.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: &cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	}, slogger)
	if ok {
		classifier = client
		log.Infow("classification service ready", "model", cfg.LLM.Model)
	} else {
		classifier = llm.Disabled{Logger: slogger}
		log.Warn("no OPENAI_API_KEY; classifications degrade to VALIDAR MANUALMENTE")
	}

	// Pipeline
	sess := session.New()
	extractor := extract.NewExtractor(slogger)
	exporter := export.NewService(impactLabels, slogger)
	proc := pipeline.NewProcessor(slogger, extractor, classifier, sess, wb, hist)
	h := api.NewHandler(slogger, proc, sess, exporter, wb, hist)

	// HTTP server
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = api.ErrorHandler
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			return strings.HasSuffix(c.Request().URL.Path, "/health")
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	api.RegisterRoutes(e, h)

	s := &http.Server{
		Addr:         cfg.Server.Addr,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Infof("serving on %s", cfg.Server.Addr)
		if err := e.StartServer(s); err != nil && err != http.ErrServerClosed {
			log.Fatalf("serve: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Errorf("shutdown: %v", err)
	}
	log.Info("stopped.")
}
