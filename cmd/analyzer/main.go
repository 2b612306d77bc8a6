package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"stock-analyzer/internal/analyzer"
	"stock-analyzer/internal/analyzer/analyzerobs"
	"stock-analyzer/internal/config"
	"stock-analyzer/internal/interfaces"
	"stock-analyzer/internal/logger"
	"stock-analyzer/internal/metrics"
	"stock-analyzer/internal/news"
	"stock-analyzer/internal/provider/kite"
	"stock-analyzer/internal/provider/mock"
	"stock-analyzer/internal/provider/yahoo"
	"stock-analyzer/internal/report"
	"stock-analyzer/internal/sentiment"
	"stock-analyzer/internal/server"
	"stock-analyzer/internal/trace"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "analyzer",
	Short: "Single-ticker stock analysis from the terminal or over HTTP",
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <ticker>",
	Short: "Print an analysis report for one ticker",
	Args:  cobra.ExactArgs(1),
	Run:   runAnalyze,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve analysis reports over HTTP",
	Run:   runServe,
}

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

// bootstrap loads the environment, config, logging and tracing, then wires
// the analyzer pipeline behind its observability wrapper.
func bootstrap() (*config.Config, interfaces.Analyzer) {
	_ = godotenv.Load()
	must(logger.Init())
	must(trace.Init())

	cfg, err := config.Load(configPath)
	must(err)

	classifier := sentiment.NewClassifier(sentiment.NewEngine())
	an := analyzer.New(cfg, buildProvider(cfg), buildNewsSource(cfg), classifier)
	return cfg, analyzerobs.Wrap(an)
}

func buildProvider(cfg *config.Config) interfaces.MarketDataProvider {
	switch cfg.Provider {
	case "kite":
		return kite.New(kite.Params{
			APIKey:      os.Getenv("KITE_API_KEY"),
			AccessToken: os.Getenv("KITE_ACCESS_TOKEN"),
			Exchange:    cfg.Exchange,
		})
	case "mock":
		return mock.New()
	default:
		return yahoo.New(cfg)
	}
}

func buildNewsSource(cfg *config.Config) interfaces.NewsSource {
	if cfg.News.Source == "scrape" {
		return news.NewScrapeSource()
	}
	return news.NewRSSSource(cfg.News.FeedURL)
}

func runAnalyze(cmd *cobra.Command, args []string) {
	cfg, an := bootstrap()
	ticker := strings.ToUpper(strings.TrimSpace(args[0]))

	rep, err := an.Analyze(context.Background(), ticker)
	if err != nil {
		switch {
		case errors.Is(err, metrics.ErrInvalidSnapshot):
			fmt.Fprintf(os.Stderr, "Invalid Ticker: '%s'. Please check the symbol and exchange (e.g., use .NS for NSE).\n", ticker)
		case errors.Is(err, metrics.ErrMissingHistory):
			fmt.Fprintf(os.Stderr, "No price history found for '%s'; metrics cannot be computed.\n", ticker)
		default:
			fmt.Fprintf(os.Stderr, "Analysis failed: %v\n", err)
		}
		shutdown()
		os.Exit(1)
	}

	report.Render(os.Stdout, rep, cfg.TopNews)
	shutdown()
}

func runServe(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, an := bootstrap()
	srv := server.New(cfg, an)

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.ErrorWithErr(context.Background(), "HTTP server failed to start", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info(context.Background(), "Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorWithErr(shutdownCtx, "Server forced to shutdown", err)
	}
	shutdown()
}

// shutdown flushes tracing and logging; safe to call on every exit path.
func shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = trace.Shutdown(ctx)
	_ = logger.Sync()
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Path to the configuration file")
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(serveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing analyzer CLI: %s\n", err)
		os.Exit(1)
	}
}
