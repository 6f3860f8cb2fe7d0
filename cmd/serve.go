package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/orienta/internal/ai/gemini"
	"github.com/spigell/orienta/internal/api"
	"github.com/spigell/orienta/internal/logger"
	"github.com/spigell/orienta/internal/metrics"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the interview over HTTP",
	Run: func(_ *cobra.Command, _ []string) {
		serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "listen address, overrides server.addr")
	viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
}

func serve() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the orienta api", zap.String("version", version))

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	engine, release, err := buildEngine(ctx, config, nil, m, logger)
	if err != nil {
		logger.Fatal("building the engine", zap.Error(err))
	}
	defer release()

	requestTimeout, writeTimeout := timeouts(config)
	logger.Info("request timeouts",
		zap.Duration("request_timeout", requestTimeout),
		zap.Duration("write_timeout", writeTimeout),
	)

	srv := &http.Server{
		Addr: config.Server.Addr,
		Handler: api.NewRouter(engine, api.Options{
			Logger:          logger,
			Metrics:         m,
			Gatherer:        reg,
			AllowedOrigins:  config.Server.AllowedOrigins,
			RateLimitPerMin: config.Server.RateLimitPerMin,
			RequestTimeout:  requestTimeout,
		}),
		ReadHeaderTimeout: config.Server.ReadTimeout,
		ReadTimeout:       config.Server.ReadTimeout,
		WriteTimeout:      writeTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("graceful shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("listening", zap.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("serving http", zap.Error(err))
	}

	logger.Info("exiting", zap.String("reason", "server stopped"))
}

// requestSlack covers the store round trips around generation.
const requestSlack = 10 * time.Second

// timeouts returns the handler timeout and the server write timeout. The write
// timeout never cuts a handler short.
func timeouts(config *Config) (request, write time.Duration) {
	request = config.Server.RequestTimeout
	if request <= 0 {
		call := gemini.DefaultTimeout
		if config.AI != nil && config.AI.Gemini != nil && config.AI.Gemini.Timeout > 0 {
			call = config.AI.Gemini.Timeout
		}
		request = max(config.Engine.Generation.Budget(call), config.Results.Budget(call)) + requestSlack
	}
	return request, max(config.Server.WriteTimeout, request+requestSlack)
}
